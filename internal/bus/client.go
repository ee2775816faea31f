package bus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectRewriteCompleted carries the audit payload of one synthesis
// invocation, consumed by the audit recorder.
const SubjectRewriteCompleted = "mimic.rewrite.completed"

// SubjectAgentReady announces the service on startup.
const SubjectAgentReady = "mimic.agent.ready"

// RewriteCompleted is the audit event published after a successful rewrite.
// EventID lets the recorder log failed writes with enough identity to replay.
type RewriteCompleted struct {
	EventID       string  `json:"event_id"`
	StyleID       int64   `json:"style_id"`
	StyleName     string  `json:"style_name"`
	UserTask      string  `json:"user_task"`
	WordCount     int     `json:"word_count"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Tags          string  `json:"tags"`
	ExecutionTime float64 `json:"execution_time"`
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
