package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
	"github.com/samudra-paket/tracking-service/internal/core/ports"
)

type stubTrackingService struct {
	getFn func(ctx context.Context, input ports.GetTimelineInput) (*ports.TimelineResult, error)
}

func (s *stubTrackingService) GetTimeline(ctx context.Context, input ports.GetTimelineInput) (*ports.TimelineResult, error) {
	return s.getFn(ctx, input)
}

func newTimelineContext(e *echo.Echo, trackingNumber string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/shipments/:tracking_number/timeline")
	c.SetParamNames("tracking_number")
	c.SetParamValues(trackingNumber)
	return c, rec
}

func TestTimelineHandler_Get_Success(t *testing.T) {
	e := echo.New()
	delivered := time.Date(2026, 3, 14, 16, 45, 0, 0, time.UTC)
	picked := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	stub := &stubTrackingService{
		getFn: func(ctx context.Context, input ports.GetTimelineInput) (*ports.TimelineResult, error) {
			if input.TrackingNumber != "SPK-7A8B9C2D" {
				t.Fatalf("unexpected tracking number: %s", input.TrackingNumber)
			}
			if input.Role != "client" || input.ClientID != "CL-JKT-001" {
				t.Fatalf("claims not forwarded: %s %s", input.Role, input.ClientID)
			}
			return &ports.TimelineResult{
				TrackingNumber: "SPK-7A8B9C2D",
				CurrentStatus:  "delivered",
				Entries: []ports.TimelineEntry{
					{Status: "delivered", Label: "Delivered", Color: "green", Timestamp: delivered, Location: "Jakarta Selatan", Actor: "Budi Santoso"},
					{Status: "picked_up", Label: "Picked Up", Color: "blue", Timestamp: picked},
				},
			}, nil
		},
	}
	handler := NewTimelineHandler(stub)

	c, rec := newTimelineContext(e, "SPK-7A8B9C2D")
	c.Set("role", "client")
	c.Set("client_id", "CL-JKT-001")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["current_status"] != "delivered" || resp["empty"] != false {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	entries, ok := resp["entries"].([]any)
	if !ok || len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", resp["entries"])
	}
	first := entries[0].(map[string]any)
	if first["label"] != "Delivered" || first["color"] != "green" || first["user"] != "Budi Santoso" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	second := entries[1].(map[string]any)
	if _, present := second["user"]; present {
		t.Fatalf("empty user should be omitted: %+v", second)
	}
}

func TestTimelineHandler_Get_EmptyTimeline(t *testing.T) {
	e := echo.New()
	stub := &stubTrackingService{
		getFn: func(ctx context.Context, input ports.GetTimelineInput) (*ports.TimelineResult, error) {
			return &ports.TimelineResult{
				TrackingNumber: "SPK-00000001",
				CurrentStatus:  "pending",
				Empty:          true,
				Entries:        []ports.TimelineEntry{},
			}, nil
		},
	}
	handler := NewTimelineHandler(stub)

	c, rec := newTimelineContext(e, "SPK-00000001")
	c.Set("role", "admin")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["empty"] != true {
		t.Fatalf("expected empty=true, got %+v", resp)
	}
	if entries, ok := resp["entries"].([]any); !ok || len(entries) != 0 {
		t.Fatalf("expected empty entries array, got %+v", resp["entries"])
	}
}

func TestTimelineHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubTrackingService{
		getFn: func(ctx context.Context, input ports.GetTimelineInput) (*ports.TimelineResult, error) {
			return nil, domain.ErrShipmentNotFound
		},
	}
	handler := NewTimelineHandler(stub)

	c, _ := newTimelineContext(e, "SPK-MISSING")
	c.Set("role", "admin")

	err := handler.Get(c)
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestTimelineHandler_Get_MissingClaims(t *testing.T) {
	e := echo.New()
	stub := &stubTrackingService{
		getFn: func(ctx context.Context, input ports.GetTimelineInput) (*ports.TimelineResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewTimelineHandler(stub)

	c, _ := newTimelineContext(e, "SPK-7A8B9C2D")

	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
