package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sensor_relay/internal/logger"
	"sensor_relay/internal/models"
	"sensor_relay/internal/repository"
)

// appendEvent writes an audit entry. The write outlives a canceled request
// so a failed cycle is still recorded; errors only reach the log.
func appendEvent(
	ctx context.Context,
	repo repository.EventRepo,
	log *logger.Logger,
	typ, desc string,
	meta map[string]any,
	at time.Time,
) {
	if repo == nil {
		return
	}
	ev := models.RelayEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  at.UTC(),
		Type:        typ,
		Description: desc,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := repo.Append(context.WithoutCancel(ctx), ev); err != nil && log != nil {
		log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}
