package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subjects published by the service.
const (
	SubjectEntryRecorded    = "health.entry.recorded"
	SubjectScribeRegistered = "health.scribe.registered"
	SubjectParamUpdated     = "health.param.updated"
)

// EntryRecorded is emitted after an interpreted entry is persisted, so
// downstream consumers (dashboards, alerting) can react without polling.
type EntryRecorded struct {
	EntryID    string `json:"entry_id"`
	OwnerID    string `json:"owner_id"`
	Table      string `json:"table"`
	EntryType  string `json:"entry_type"`
	Category   string `json:"category"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	Unit       string `json:"unit,omitempty"`
	RecordedAt int64  `json:"recorded_at"`
}

// ParamUpdated signals a reference-corpus change so every instance can drop
// its matcher cache instead of waiting out the TTL.
type ParamUpdated struct {
	Code      string `json:"param_code"`
	UpdatedAt int64  `json:"updated_at"`
}

// ScribeRegistered announces the service on startup.
type ScribeRegistered struct {
	Service   string `json:"service"`
	Model     string `json:"model,omitempty"`
	StartedAt int64  `json:"started_at"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
