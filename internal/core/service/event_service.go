package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
	"github.com/samudra-paket/tracking-service/internal/core/ports"
	"github.com/samudra-paket/tracking-service/internal/pkg/metrics"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, trackingNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, trackingNumber, status string, ts time.Time) error
}

// TimelineInvalidator drops the cached timeline for a shipment after its
// history changes.
type TimelineInvalidator interface {
	Invalidate(ctx context.Context, trackingNumber string) error
}

type eventService struct {
	shipmentRepo ports.ShipmentRepository
	eventRepo    ports.EventRepository
	dedup        DedupChecker
	cache        TimelineInvalidator
	log          zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(
	shipmentRepo ports.ShipmentRepository,
	eventRepo ports.EventRepository,
	dedup DedupChecker,
	cache TimelineInvalidator,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		shipmentRepo: shipmentRepo,
		eventRepo:    eventRepo,
		dedup:        dedup,
		cache:        cache,
		log:          log,
	}
}

// Process validates, deduplicates, and persists a single tracking event.
//
// Status tokens are open-ended: any non-terminal shipment accepts any token.
// The only guard is that closed shipments (delivered, completed, cancelled,
// returned) reject further events.
func (s *eventService) Process(ctx context.Context, in ports.TrackingEventInput) error {
	newStatus := domain.ShipmentStatus(in.Status)

	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.TrackingNumber, in.Status, in.Timestamp)
	switch {
	case err != nil:
		metrics.EventsDedupTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("tracking", in.TrackingNumber).Msg("dedup check failed, processing anyway")
	case isDup:
		metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("tracking", in.TrackingNumber).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	default:
		metrics.EventsDedupTotal.WithLabelValues("miss").Inc()
	}

	// 2. Find shipment (no client filter — events come from external sources).
	shipment, err := s.shipmentRepo.FindByTrackingNumber(ctx, in.TrackingNumber, "")
	if err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("shipment_not_found").Inc()
		return fmt.Errorf("process event: %w", err)
	}

	// 3. Closed shipments accept no further events.
	if shipment.Status.IsTerminal() {
		metrics.EventsErrorsTotal.WithLabelValues("shipment_closed").Inc()
		return fmt.Errorf("process event: %w (current %s, received %s)", domain.ErrShipmentClosed, shipment.Status, newStatus)
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.TrackingNumber, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("tracking", in.TrackingNumber).Msg("failed to set dedup key")
	}

	// 5. Atomically update shipment status + history.
	entry := domain.StatusHistoryEntry{
		Status:    newStatus,
		Timestamp: in.Timestamp,
		Location:  in.Location,
		Notes:     in.Notes,
		Actor:     in.Actor,
	}
	if err := s.eventRepo.AppendStatus(ctx, in.TrackingNumber, entry); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process event: update status: %w", err)
	}

	// 6. Insert into audit trail (non-fatal on failure).
	auditEvent := &domain.TrackingEvent{
		TrackingNumber: in.TrackingNumber,
		Status:         newStatus,
		Timestamp:      in.Timestamp,
		Source:         in.Source,
		Location:       in.Location,
		Notes:          in.Notes,
		Actor:          in.Actor,
	}
	if err := s.eventRepo.InsertEvent(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("tracking", in.TrackingNumber).Msg("failed to insert audit event")
	}

	// 7. Drop the cached timeline so the next read reflects this event (non-fatal).
	if err := s.cache.Invalidate(ctx, in.TrackingNumber); err != nil {
		s.log.Warn().Err(err).Str("tracking", in.TrackingNumber).Msg("failed to invalidate timeline cache")
	}

	metrics.EventsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	s.log.Info().
		Str("tracking", in.TrackingNumber).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("event processed")

	return nil
}
