// Package events persists drained domain events to an outbox table. A
// separate relay (out of scope here) forwards published rows to external
// consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	judgedomain "github.com/judgefinder/platform/internal/judge/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DomainEvent is the outbox row.
type DomainEvent struct {
	ID          snowflake.ID   `gorm:"primaryKey"`
	AggregateID snowflake.ID   `gorm:"not null;index"`
	EventType   string         `gorm:"type:text;not null;index"`
	Payload     datatypes.JSON `gorm:"not null"`
	Published   bool           `gorm:"not null;default:false"`
	OccurredAt  time.Time      `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null"`
}

// TableName sets the database table name.
func (DomainEvent) TableName() string { return "domain_events" }

// Publisher writes aggregate events to the outbox, inside the caller's
// transaction so events and state changes commit atomically.
type Publisher interface {
	Publish(ctx context.Context, tx *gorm.DB, events ...judgedomain.Event) error
}

type outboxPublisher struct {
	genID *snowflake.Node
}

func NewOutboxPublisher(genID *snowflake.Node) Publisher {
	return &outboxPublisher{genID: genID}
}

func (p *outboxPublisher) Publish(ctx context.Context, tx *gorm.DB, events ...judgedomain.Event) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]DomainEvent, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return err
		}
		rows = append(rows, DomainEvent{
			ID:          p.genID.Generate(),
			AggregateID: e.AggregateID(),
			EventType:   e.EventType(),
			Payload:     datatypes.JSON(payload),
			OccurredAt:  e.OccurredAt(),
			CreatedAt:   now,
		})
	}

	return tx.WithContext(ctx).Create(&rows).Error
}
