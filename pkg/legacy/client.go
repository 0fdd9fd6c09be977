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

// Package legacy talks to the legacy SNMP REST store: it lists the
// interfaces of a device and fetches raw counter samples per direction.
package legacy

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
	"github.com/carverauto/ifcompare/pkg/version"
)

// SourceName identifies legacy series in reports.
const SourceName = "legacy"

const maxBodyBytes = 64 << 20

// Client is a single-attempt client for the legacy REST API.
type Client struct {
	baseURL        string
	ignorePrefixes []string
	httpClient     HTTPClient
	tracer         trace.Tracer
	logger         logger.Logger
}

// NewClient builds a Client from config. A nil httpClient gets a default
// client honouring the configured timeout and TLS verification setting.
func NewClient(cfg *models.LegacyConfig, httpClient HTTPClient, log logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errEmptyBaseURL
	}

	if httpClient == nil {
		//nolint:gosec // verification is only disabled when the operator asks for it
		httpClient = &http.Client{
			Timeout: time.Duration(cfg.Timeout),
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: cfg.InsecureSkipVerify,
				},
			},
		}
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		ignorePrefixes: cfg.IgnorePrefixes,
		httpClient:     httpClient,
		tracer:         logger.GetTracer("ifcompare/legacy"),
		logger:         log,
	}, nil
}

// Name implements the reconciler's series source.
func (*Client) Name() string { return SourceName }

// InterfaceListURL is the listing endpoint for a device. The device name is
// path-escaped; interface identifiers come from the server already encoded.
func (c *Client) InterfaceListURL(device string) string {
	return fmt.Sprintf("%s/%s/interface/", c.baseURL, url.PathEscape(device))
}

// SamplesURL is the per-direction sample endpoint including the window query.
func (c *Client) SamplesURL(req *models.SeriesRequest) string {
	params := url.Values{}
	params.Set("begin", strconv.FormatInt(req.Window.Begin, 10))
	params.Set("end", strconv.FormatInt(req.Window.End, 10))

	return fmt.Sprintf("%s/%s/interface/%s/%s?%s",
		c.baseURL, url.PathEscape(req.Device), req.Interface, req.Direction, params.Encode())
}

// ListInterfaces returns the identifiers of the device's interfaces that have
// an alias and do not match an ignore prefix, in server order.
func (c *Client) ListInterfaces(ctx context.Context, device string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "legacy.ListInterfaces",
		trace.WithAttributes(attribute.String("device", device)))
	defer span.End()

	body, status, err := c.get(ctx, c.InterfaceListURL(device))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if status < 200 || status > 299 {
		err = fmt.Errorf("%w: %w %d listing interfaces for %s", models.ErrTransport, errUnexpectedStatusCode, status, device)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	var resp interfaceListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding interface list for %s: %w", models.ErrTransport, device, err)
	}

	descriptors := make([]models.InterfaceDescriptor, 0, len(resp.Children))
	for _, child := range resp.Children {
		descriptors = append(descriptors, models.InterfaceDescriptor{
			Device: device,
			Name:   child.Name,
			Alias:  child.IfAlias,
			URI:    child.URI,
		})
	}

	ifaces := FilterInterfaces(descriptors, c.ignorePrefixes)

	c.logger.Debug().
		Str("device", device).
		Int("listed", len(resp.Children)).
		Int("eligible", len(ifaces)).
		Msg("Listed legacy interfaces")

	span.SetAttributes(attribute.Int("eligible", len(ifaces)))

	return ifaces, nil
}

// FilterInterfaces drops interfaces without an alias or whose name starts
// with one of ignorePrefixes and returns the remaining identifiers.
func FilterInterfaces(descriptors []models.InterfaceDescriptor, ignorePrefixes []string) []string {
	ifaces := make([]string, 0, len(descriptors))

	for _, d := range descriptors {
		if d.Alias == "" {
			continue
		}

		if hasAnyPrefix(d.Name, ignorePrefixes) {
			continue
		}

		ifaces = append(ifaces, d.ID())
	}

	return ifaces
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}

	return false
}

// FetchSeries fetches one direction of samples for an interface. A 404 is
// reported as models.ErrNoData.
func (c *Client) FetchSeries(ctx context.Context, req *models.SeriesRequest) (*models.Series, error) {
	if req.Direction != models.DirectionIn && req.Direction != models.DirectionOut {
		return nil, fmt.Errorf("%w: %q", errBadDirection, req.Direction)
	}

	ctx, span := c.tracer.Start(ctx, "legacy.FetchSeries", trace.WithAttributes(
		attribute.String("device", req.Device),
		attribute.String("interface", req.Interface),
		attribute.String("direction", string(req.Direction)),
	))
	defer span.End()

	body, status, err := c.get(ctx, c.SamplesURL(req))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: legacy store has no %s data for %s %s",
			models.ErrNoData, req.Direction, req.Device, req.Interface)
	case status < 200 || status > 299:
		err = fmt.Errorf("%w: %w %d fetching %s %s %s", models.ErrTransport, errUnexpectedStatusCode,
			status, req.Device, req.Interface, req.Direction)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid JSON for %s %s %s", models.ErrTransport, req.Device, req.Interface, req.Direction)
	}

	return &models.Series{
		Source: SourceName,
		Raw:    json.RawMessage(body),
		Points: ParsePoints(body),
	}, nil
}

// ParsePoints extracts [timestamp, value] pairs from a sample payload's
// "data" array. Entries that are not such pairs are skipped; null values
// become gaps. Payloads without a data array return nil, which marks the
// series as not comparable.
func ParsePoints(body []byte) []models.Point {
	var payload samplePayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Data == nil {
		return nil
	}

	points := make([]models.Point, 0, len(payload.Data))

	for _, pair := range payload.Data {
		if len(pair) < 2 {
			continue
		}

		var ts float64
		if err := json.Unmarshal(pair[0], &ts); err != nil {
			continue
		}

		var value *float64
		if err := json.Unmarshal(pair[1], &value); err != nil {
			continue
		}

		points = append(points, models.Point{Timestamp: int64(ts), Value: value})
	}

	return points
}

func (c *Client) get(ctx context.Context, rawURL string) (body []byte, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: building request for %s: %w", models.ErrTransport, rawURL, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GET %s: %w", models.ErrTransport, rawURL, err)
	}
	defer c.closeResponse(resp)

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: reading %s: %w", models.ErrTransport, rawURL, err)
	}

	return body, resp.StatusCode, nil
}

// closeResponse closes the HTTP response body, logging any errors.
func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}

// Describe renders the request FetchSeries would issue, for dry runs.
func (c *Client) Describe(req *models.SeriesRequest) string {
	return "GET " + c.SamplesURL(req)
}
