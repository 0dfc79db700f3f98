package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
	"github.com/samudra-paket/tracking-service/internal/core/ports"
	"github.com/samudra-paket/tracking-service/internal/pkg/metrics"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	appendErr error
	insertErr error
	appended  []domain.StatusHistoryEntry
	updated   []string // tracking numbers updated
	inserted  []*domain.TrackingEvent
}

func (r *stubEventRepo) AppendStatus(_ context.Context, tracking string, entry domain.StatusHistoryEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.updated = append(r.updated, tracking)
	r.appended = append(r.appended, entry)
	return nil
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.TrackingEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, tracking, status string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, tracking, status string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, tracking+":"+status)
	return nil
}

type stubInvalidator struct {
	err         error
	invalidated []string
}

func (c *stubInvalidator) Invalidate(_ context.Context, tracking string) error {
	if c.err != nil {
		return c.err
	}
	c.invalidated = append(c.invalidated, tracking)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newEventSvc(shipRepo *stubShipmentRepo, eventRepo *stubEventRepo, dedup *stubDedup, cache *stubInvalidator) ports.EventService {
	return NewEventService(shipRepo, eventRepo, dedup, cache, discardLogger)
}

func seededRepo(tracking, clientID string, status domain.ShipmentStatus) *stubShipmentRepo {
	repo := newStubShipmentRepo()
	now := time.Now().UTC()
	repo.byTracking[tracking] = &domain.Shipment{
		TrackingNumber: tracking,
		ClientID:       clientID,
		Status:         status,
		CreatedAt:      now,
		StatusHistory:  []domain.StatusHistoryEntry{{Status: status, Timestamp: now}},
	}
	return repo
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEventService_Process_HappyPath(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusPending)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}
	cache := &stubInvalidator{}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "picked_up",
		Timestamp:      time.Now(),
		Source:         "courier_app",
		Location:       "Jl. Merdeka 1, Jakarta",
		Actor:          domain.ActorRef{Name: "Budi Santoso"},
	})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.updated) != 1 || evRepo.updated[0] != "SPK-AABBCCDD" {
		t.Errorf("expected shipment status updated, got: %v", evRepo.updated)
	}
	if len(evRepo.inserted) != 1 {
		t.Errorf("expected audit event inserted")
	}
	if len(dedup.marked) != 1 {
		t.Errorf("expected dedup key marked")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "SPK-AABBCCDD" {
		t.Errorf("expected timeline cache invalidated, got: %v", cache.invalidated)
	}
	if evRepo.appended[0].Location != "Jl. Merdeka 1, Jakarta" {
		t.Errorf("expected location carried into history entry, got %q", evRepo.appended[0].Location)
	}
	if evRepo.appended[0].Actor.DisplayName() != "Budi Santoso" {
		t.Errorf("expected actor carried into history entry, got %q", evRepo.appended[0].Actor.DisplayName())
	}
}

func TestEventService_Process_DuplicateSkipped(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusPending)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{dupResult: true} // simulate already processed
	cache := &stubInvalidator{}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "picked_up",
		Timestamp:      time.Now(),
		Source:         "courier_app",
	})

	if err != nil {
		t.Fatalf("expected no error for duplicate, got: %v", err)
	}
	if len(evRepo.updated) != 0 {
		t.Errorf("expected no update for duplicate event")
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("expected no cache invalidation for duplicate event")
	}
}

func TestEventService_Process_ShipmentNotFound(t *testing.T) {
	repo := newStubShipmentRepo() // empty
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}
	cache := &stubInvalidator{}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-NOTFOUND",
		Status:         "picked_up",
		Timestamp:      time.Now(),
		Source:         "courier_app",
	})

	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Errorf("expected ErrShipmentNotFound, got: %v", err)
	}
}

func TestEventService_Process_ClosedShipmentRejected(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusDelivered)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}
	cache := &stubInvalidator{}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "in_transit", // shipment already delivered
		Timestamp:      time.Now(),
		Source:         "courier_app",
	})

	if !errors.Is(err, domain.ErrShipmentClosed) {
		t.Errorf("expected ErrShipmentClosed, got: %v", err)
	}
	if len(evRepo.updated) != 0 {
		t.Errorf("expected no update on closed shipment")
	}
}

func TestEventService_Process_UnknownTokenAccepted(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusInTransit)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}
	cache := &stubInvalidator{}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "arrived_at_destination", // partner token outside the known set
		Timestamp:      time.Now(),
		Source:         "partner_webhook",
	})

	if err != nil {
		t.Fatalf("open-ended tokens must be accepted, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Errorf("expected history append for unknown token")
	}
}

func TestEventService_Process_DedupCheckError_ProcessesAnyway(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusPending)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{dupErr: errors.New("redis timeout")} // dedup check fails
	cache := &stubInvalidator{}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "picked_up",
		Timestamp:      time.Now(),
		Source:         "courier_app",
	})

	// Should still process despite dedup check failure
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Errorf("expected update to proceed when dedup check errors")
	}
}

func TestEventService_Process_DedupCheckError_CountedAsError(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusPending)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{dupErr: errors.New("redis timeout")}
	cache := &stubInvalidator{}

	missBefore := testutil.ToFloat64(metrics.EventsDedupTotal.WithLabelValues("miss"))
	errBefore := testutil.ToFloat64(metrics.EventsDedupTotal.WithLabelValues("error"))

	svc := newEventSvc(repo, evRepo, dedup, cache)
	if err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "picked_up",
		Timestamp:      time.Now(),
		Source:         "courier_app",
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// A checker failure is not a cache miss; it gets its own label.
	if got := testutil.ToFloat64(metrics.EventsDedupTotal.WithLabelValues("miss")); got != missBefore {
		t.Errorf("miss counter moved on checker error: %v -> %v", missBefore, got)
	}
	if got := testutil.ToFloat64(metrics.EventsDedupTotal.WithLabelValues("error")); got != errBefore+1 {
		t.Errorf("expected error counter %v, got %v", errBefore+1, got)
	}
}

func TestEventService_Process_AuditFailureIsNonFatal(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusPending)
	evRepo := &stubEventRepo{insertErr: errors.New("mongo unavailable")}
	dedup := &stubDedup{}
	cache := &stubInvalidator{}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "picked_up",
		Timestamp:      time.Now(),
		Source:         "courier_app",
	})

	// InsertEvent failure must NOT fail the overall operation
	if err != nil {
		t.Fatalf("expected audit failure to be non-fatal, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Error("expected shipment status to be updated")
	}
}

func TestEventService_Process_CacheInvalidationFailureIsNonFatal(t *testing.T) {
	repo := seededRepo("SPK-AABBCCDD", "client_1", domain.StatusPending)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}
	cache := &stubInvalidator{err: errors.New("redis unavailable")}

	svc := newEventSvc(repo, evRepo, dedup, cache)
	err := svc.Process(context.Background(), ports.TrackingEventInput{
		TrackingNumber: "SPK-AABBCCDD",
		Status:         "picked_up",
		Timestamp:      time.Now(),
		Source:         "courier_app",
	})

	if err != nil {
		t.Fatalf("expected cache failure to be non-fatal, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Error("expected shipment status to be updated")
	}
}
