// Package events defines the link lifecycle events published by the service.
package events

import (
	"context"
	"time"

	"github.com/JoshGearou/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// TopicLinkCreated carries LinkCreatedEvent.
const TopicLinkCreated = "link.created"

// LinkCreatedEvent is emitted after a code is allocated and stored.
type LinkCreatedEvent struct {
	EventID   string    `json:"eventId"`
	Code      string    `json:"code"`
	LongURL   string    `json:"longUrl"`
	Strategy  string    `json:"strategy"`
	Attempts  int       `json:"attempts"`
	Salted    bool      `json:"salted,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LogHandler returns a handler that records link creation in the service log.
// Resolves that needed more than one attempt surface the collision pressure
// of the weaker 32-bit strategies.
func LogHandler(logger *zap.Logger) messaging.Handler[LinkCreatedEvent] {
	return func(_ context.Context, e *LinkCreatedEvent) error {
		fields := []zap.Field{
			zap.String("event_id", e.EventID),
			zap.String("code", e.Code),
			zap.String("strategy", e.Strategy),
			zap.Int("attempts", e.Attempts),
		}

		if e.Salted {
			fields = append(fields, zap.Bool("salted", true))
		}

		logger.Info("link created", fields...)

		return nil
	}
}
