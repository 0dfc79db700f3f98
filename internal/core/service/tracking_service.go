package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
	"github.com/samudra-paket/tracking-service/internal/core/ports"
	"github.com/samudra-paket/tracking-service/internal/core/timeline"
	"github.com/samudra-paket/tracking-service/internal/pkg/metrics"
)

// CachedTimeline is the cache payload: the projected result plus the owning
// client, so RBAC can be enforced on cache hits without a repository round trip.
type CachedTimeline struct {
	ClientID string               `json:"client_id"`
	Result   ports.TimelineResult `json:"result"`
}

// TimelineCache abstracts the Redis-backed timeline cache.
type TimelineCache interface {
	TimelineInvalidator
	// Get returns the cached timeline, or nil on a miss.
	Get(ctx context.Context, trackingNumber string) (*CachedTimeline, error)
	Set(ctx context.Context, trackingNumber string, t *CachedTimeline) error
}

type trackingService struct {
	repo  ports.ShipmentRepository
	cache TimelineCache
	log   zerolog.Logger
}

// NewTrackingService returns a TrackingService implementation.
func NewTrackingService(repo ports.ShipmentRepository, cache TimelineCache, log zerolog.Logger) ports.TrackingService {
	return &trackingService{repo: repo, cache: cache, log: log}
}

// GetTimeline serves the display-ready status timeline for a shipment,
// preferring the cache. Cache errors degrade to a repository read.
func (s *trackingService) GetTimeline(ctx context.Context, in ports.GetTimelineInput) (*ports.TimelineResult, error) {
	cached, err := s.cache.Get(ctx, in.TrackingNumber)
	if err != nil {
		s.log.Warn().Err(err).Str("tracking", in.TrackingNumber).Msg("timeline cache read failed")
	} else if cached != nil {
		if in.Role != domain.RoleAdmin && cached.ClientID != in.ClientID {
			// Same answer a scoped repository lookup would give.
			return nil, domain.ErrShipmentNotFound
		}
		metrics.TimelineCacheTotal.WithLabelValues("hit").Inc()
		result := cached.Result
		return &result, nil
	}
	metrics.TimelineCacheTotal.WithLabelValues("miss").Inc()

	clientFilter := ""
	if in.Role != domain.RoleAdmin {
		clientFilter = in.ClientID
	}
	shipment, err := s.repo.FindByTrackingNumber(ctx, in.TrackingNumber, clientFilter)
	if err != nil {
		return nil, fmt.Errorf("get timeline: %w", err)
	}

	result := projectTimeline(shipment)
	metrics.TimelinesProjectedTotal.Inc()

	if err := s.cache.Set(ctx, in.TrackingNumber, &CachedTimeline{ClientID: shipment.ClientID, Result: *result}); err != nil {
		s.log.Warn().Err(err).Str("tracking", in.TrackingNumber).Msg("timeline cache write failed")
	}

	return result, nil
}

// projectTimeline runs the pure projection and flattens it into the transport
// DTO.
func projectTimeline(shipment *domain.Shipment) *ports.TimelineResult {
	projection := timeline.Project(shipment.StatusHistory)

	entries := make([]ports.TimelineEntry, len(projection.Entries))
	for i, e := range projection.Entries {
		entries[i] = ports.TimelineEntry{
			Status:    e.Status,
			Label:     e.Presentation.Label,
			Color:     string(e.Presentation.Color),
			Timestamp: e.Timestamp,
			Location:  e.Location,
			Notes:     e.Notes,
			Actor:     e.Actor,
		}
	}

	return &ports.TimelineResult{
		TrackingNumber: shipment.TrackingNumber,
		CurrentStatus:  string(shipment.Status),
		Empty:          projection.Empty,
		Entries:        entries,
	}
}
