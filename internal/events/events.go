// Package events connects the session engine to the clinic event bus. It
// publishes session lifecycle events for downstream consumers (reception
// dashboard, reporting) and receives gateway call-ended callbacks that
// arrive over the bus instead of HTTP.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Session lifecycle subjects.
const (
	SubjectSessionOpened = "clinic.session.opened"
	SubjectSessionUrgent = "clinic.session.urgent"
	SubjectSessionClosed = "clinic.session.closed"
)

// SubjectCallEnded carries the telephony gateway's end-of-session callback.
const SubjectCallEnded = "clinic.gateway.call.ended"

// CallEnded is the gateway's end-of-session payload. Statuses follow the
// gateway's vocabulary: completed, failed, busy, no-answer.
type CallEnded struct {
	CallSID string `json:"call_sid"`
	Status  string `json:"status"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
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

// SubscribeCallEnded delivers gateway end-of-session callbacks to the
// handler. Malformed payloads are logged and dropped.
func (c *Client) SubscribeCallEnded(handler func(CallEnded)) error {
	sub, err := c.conn.Subscribe(SubjectCallEnded, func(msg *nats.Msg) {
		var evt CallEnded
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			c.logger.Error("failed to parse call-ended event", "error", err)
			return
		}
		if evt.CallSID == "" {
			c.logger.Warn("call-ended event without call sid")
			return
		}
		handler(evt)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", SubjectCallEnded, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", SubjectCallEnded)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
