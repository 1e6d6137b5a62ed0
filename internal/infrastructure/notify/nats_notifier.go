package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/errs"
	"devpulse/internal/ports"
)

// NATSNotifier publishes run-completion events as JSON on one subject.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	if url == "" {
		return nil, errors.New("nats url is required")
	}
	if subject == "" {
		return nil, errors.New("nats subject is required")
	}

	conn, err := nats.Connect(url, nats.Name("devpulse"))
	if err != nil {
		return nil, errs.Wrap(err, "connect to nats")
	}
	return &NATSNotifier{conn: conn, subject: subject}, nil
}

func (n *NATSNotifier) PublishRunCompleted(ctx context.Context, event ports.RunEvent) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "marshal run event")
	}
	if err := n.conn.Publish(n.subject, payload); err != nil {
		return errs.Wrap(err, "publish run event")
	}

	logging.Debug(ctx, "run event published",
		slog.String("subject", n.subject),
		slog.String("run_id", event.RunID),
	)
	return nil
}

// Close drains in-flight messages before disconnecting.
func (n *NATSNotifier) Close() error {
	if n.conn == nil || n.conn.IsClosed() {
		return nil
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return errs.Wrap(err, "drain nats connection")
	}
	return nil
}

var _ ports.RunNotifier = (*NATSNotifier)(nil)
