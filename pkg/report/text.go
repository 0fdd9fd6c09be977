/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/carverauto/ifcompare/pkg/compare"
	"github.com/carverauto/ifcompare/pkg/models"
)

const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaComment    = "#6272A4"

	// Separator ends every comparison block.
	Separator = "======"

	missingValue = "-"
)

type textStyles struct {
	header, label, ok, mismatch, muted, border lipgloss.Style
}

func newTextStyles(r *lipgloss.Renderer) textStyles {
	return textStyles{
		header:   r.NewStyle().Foreground(lipgloss.Color(draculaCyan)).Bold(true),
		label:    r.NewStyle().Foreground(lipgloss.Color(draculaPurple)),
		ok:       r.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
		mismatch: r.NewStyle().Foreground(lipgloss.Color(draculaRed)).Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color(draculaComment)),
		border:   r.NewStyle().Foreground(lipgloss.Color(draculaComment)),
	}
}

// Text renders each comparison as a header line, the two series side by side
// and a separator. Colors are only emitted when w is a terminal.
type Text struct {
	mu     sync.Mutex
	w      io.Writer
	debug  bool
	styles textStyles
	cell   lipgloss.Style
}

func NewText(w io.Writer, debug bool) *Text {
	r := lipgloss.NewRenderer(w)

	return &Text{
		w:      w,
		debug:  debug,
		styles: newTextStyles(r),
		cell:   r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(draculaForeground)),
	}
}

// HeaderLine is the first line of a comparison block.
func HeaderLine(b *models.ComparisonBundle) string {
	return fmt.Sprintf("%s %s %s %d", b.Device, b.Interface, b.Counter, b.Frequency)
}

func (t *Text) Report(_ context.Context, c *models.Comparison) error {
	var sb strings.Builder

	sb.WriteString(t.styles.header.Render(HeaderLine(c.Bundle)))
	sb.WriteString("\n")
	sb.WriteString(t.seriesTable(c))
	sb.WriteString("\n")
	sb.WriteString(t.diffLine(c.Diff))
	sb.WriteString("\n")

	t.writeRaw(&sb, c)

	sb.WriteString(Separator)
	sb.WriteString("\n")

	return t.write(sb.String())
}

func (t *Text) seriesTable(c *models.Comparison) string {
	legacyName, currentName := "legacy", "new_store"
	if c.Bundle.Legacy != nil && c.Bundle.Legacy.Source != "" {
		legacyName = c.Bundle.Legacy.Source
	}

	if c.Current != nil && c.Current.Source != "" {
		currentName = c.Current.Source
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.border).
		Headers("ts", legacyName, currentName).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.cell.Bold(true)
			}

			return t.cell
		})

	for _, r := range compare.Align(c.Bundle.Legacy, c.Current) {
		tbl.Row(strconv.FormatInt(r.Timestamp, 10), formatValue(r.Legacy), formatValue(r.New))
	}

	return tbl.Render()
}

func (t *Text) diffLine(d models.SeriesDiff) string {
	if !d.Comparable {
		return t.styles.mismatch.Render("not comparable: legacy payload has no samples")
	}

	line := fmt.Sprintf("matched=%d mismatched=%d legacy_only=%d new_only=%d max_abs_delta=%g",
		d.Matched, d.Mismatched, d.LegacyOnly, d.NewOnly, d.MaxAbsDelta)

	if d.Mismatched > 0 || d.LegacyOnly > 0 || d.NewOnly > 0 {
		return t.styles.mismatch.Render(line)
	}

	return t.styles.ok.Render(line)
}

// writeRaw prints the legacy payload verbatim, and the new store's result
// too in debug mode.
func (t *Text) writeRaw(sb *strings.Builder, c *models.Comparison) {
	series := []*models.Series{c.Bundle.Legacy}
	if t.debug {
		series = append(series, c.Current)
	}

	for _, s := range series {
		if s == nil || len(s.Raw) == 0 {
			continue
		}

		sb.WriteString(t.styles.label.Render(s.Source + " raw:"))
		sb.WriteString("\n")
		sb.WriteString(t.styles.muted.Render(string(s.Raw)))
		sb.WriteString("\n")
	}
}

// Summary prints the run totals and every result that was not ok.
func (t *Text) Summary(_ context.Context, s *models.RunSummary) error {
	var sb strings.Builder

	skippedDevices := 0

	for i := range s.Results {
		r := &s.Results[i]
		if r.Status == models.StatusOK {
			continue
		}

		if r.Interface == "" && r.Status == models.StatusSkipped {
			skippedDevices++
		}

		style := t.styles.muted
		switch r.Status {
		case models.StatusError:
			style = t.styles.mismatch
		case models.StatusPlanned:
			style = t.styles.label
		case models.StatusOK, models.StatusSkipped:
		}

		sb.WriteString(style.Render(resultLine(r)))
		sb.WriteString("\n")
	}

	sb.WriteString(t.styles.header.Render(fmt.Sprintf(
		"run %s window=[%d,%d) devices=%d skipped_devices=%d ok=%d skipped=%d errors=%d planned=%d duration=%s",
		s.RunID, s.Window.Begin, s.Window.End, s.Devices, skippedDevices,
		s.Count(models.StatusOK), s.Count(models.StatusSkipped), s.Count(models.StatusError),
		s.Count(models.StatusPlanned), s.Duration)))
	sb.WriteString("\n")

	return t.write(sb.String())
}

func resultLine(r *models.UnitResult) string {
	parts := []string{string(r.Status), r.Device}
	if r.Interface != "" {
		parts = append(parts, r.Interface)
	}

	if r.Direction != "" {
		parts = append(parts, string(r.Direction))
	}

	line := strings.Join(parts, " ")
	if r.Reason != "" {
		line += ": " + r.Reason
	}

	if r.Err != nil && r.Status != models.StatusPlanned {
		line += " (" + r.Err.Error() + ")"
	}

	return line
}

func (t *Text) write(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := io.WriteString(t.w, s); err != nil {
		return fmt.Errorf("writing text report: %w", err)
	}

	return nil
}

func formatValue(v *float64) string {
	if v == nil {
		return missingValue
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}
