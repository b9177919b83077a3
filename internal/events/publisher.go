package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher emits match lifecycle events.
type Publisher interface {
	Publish(subject string, payload any) error
}

// NATSPublisher publishes events onto a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher creates a publisher over an established connection.
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

// Publish marshals payload as JSON and publishes it on subject.
func (p *NATSPublisher) Publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
