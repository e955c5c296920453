// Package events announces ledger and billing changes to other systems.
package events

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionUpdated Type = "transaction.updated"
	TransactionDeleted Type = "transaction.deleted"
	BillPaid           Type = "bill.paid"
	AccountCreated     Type = "account.created"
)

type Event struct {
	Type       Type      `json:"type"`
	UserID     uuid.UUID `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

func New(eventType Type, userID uuid.UUID, data any) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events on a best-effort basis. Failures are logged by
// the publisher and never reach the caller.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct {
	log *logrus.Logger
}

func NewLogPublisher(log *logrus.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) {
	p.log.WithFields(logrus.Fields{
		"eventType": event.Type,
		"userID":    event.UserID.String(),
	}).Debug("Events.Publish.Skipped")
}
