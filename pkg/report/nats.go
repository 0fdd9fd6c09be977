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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

// CloudEvent attributes for published records.
const (
	EventSource         = "ifcompare/reconcile"
	EventTypeComparison = "com.carverauto.ifcompare.comparison"
	EventTypeSummary    = "com.carverauto.ifcompare.run.summary"

	summaryToken = "summary"
)

// NATS publishes every comparison as a CloudEvent on
// <subject>.<device>.<interface>.<direction> and the run summary on
// <subject>.summary.
type NATS struct {
	js      jetstream.JetStream
	stream  string
	subject string
	debug   bool
	now     func() time.Time
	logger  logger.Logger
}

// ConnectNATS dials the configured server, using a creds file when one is set.
func ConnectNATS(cfg *models.NATSConfig, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("ifcompare"),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	if cfg.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(cfg.CredsFile))
	}

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return nc, nil
}

// NewNATS makes sure the stream exists and captures the subject prefix.
func NewNATS(ctx context.Context, nc *nats.Conn, cfg *models.NATSConfig, debug bool, log logger.Logger) (*NATS, error) {
	if cfg == nil || cfg.Subject == "" || cfg.Stream == "" {
		return nil, errNATSConfig
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err = js.Stream(ctx, cfg.Stream); err != nil {
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     cfg.Stream,
			Subjects: []string{cfg.Subject + ".>"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create or get stream %s: %w", cfg.Stream, err)
		}

		log.Info().Str("stream", cfg.Stream).Msg("Created NATS JetStream stream")
	}

	return &NATS{
		js:      js,
		stream:  cfg.Stream,
		subject: cfg.Subject,
		debug:   debug,
		now:     time.Now,
		logger:  log,
	}, nil
}

// ComparisonSubject is the subject a comparison for b is published on.
func (n *NATS) ComparisonSubject(b *models.ComparisonBundle) string {
	return strings.Join([]string{
		n.subject,
		SubjectToken(b.Device),
		SubjectToken(b.Interface),
		SubjectToken(string(b.Direction)),
	}, ".")
}

func (n *NATS) Report(ctx context.Context, c *models.Comparison) error {
	if !n.debug {
		c = withoutCurrentRaw(c)
	}

	return n.publish(ctx, n.ComparisonSubject(c.Bundle), EventTypeComparison, c)
}

func (n *NATS) Summary(ctx context.Context, s *models.RunSummary) error {
	return n.publish(ctx, n.subject+"."+summaryToken, EventTypeSummary, s)
}

func (n *NATS) publish(ctx context.Context, subject, eventType string, data interface{}) error {
	now := n.now()

	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          EventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &now,
		Data:            data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	ack, err := n.js.Publish(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	n.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", subject).
		Uint64("seq", ack.Sequence).
		Msg("Published event")

	return nil
}

// SubjectToken makes s usable as a single NATS subject token.
func SubjectToken(s string) string {
	if s == "" {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}

		return r
	}, s)
}
