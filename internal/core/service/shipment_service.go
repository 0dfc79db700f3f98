package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
	"github.com/samudra-paket/tracking-service/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ShipmentService struct {
	repo   ports.ShipmentRepository
	logger zerolog.Logger
}

func NewShipmentService(repo ports.ShipmentRepository, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{repo: repo, logger: logger}
}

// CreateShipment creates a new shipment. If an idempotency key is provided and
// already seen, the previously created shipment is returned without side effects.
func (s *ShipmentService) CreateShipment(ctx context.Context, input ports.CreateShipmentInput) (*ports.ShipmentResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("tracking_number", existing.TrackingNumber).Msg("idempotent replay")
			return &ports.ShipmentResult{
				TrackingNumber:    existing.TrackingNumber,
				Status:            string(existing.Status),
				CreatedAt:         existing.CreatedAt,
				EstimatedDelivery: existing.EstimatedDelivery,
				AlreadyExisted:    true,
			}, nil
		}
	}

	now := time.Now().UTC()
	shipment := &domain.Shipment{
		TrackingNumber:    generateTrackingNumber(),
		ClientID:          input.ClientID,
		Status:            domain.StatusPending,
		ServiceType:       input.ServiceType,
		CreatedAt:         now,
		EstimatedDelivery: estimatedDelivery(input.ServiceType, now),
		IdempotencyKey:    input.IdempotencyKey,
		Sender: domain.Person{
			Name:  input.Sender.Name,
			Email: input.Sender.Email,
			Phone: input.Sender.Phone,
		},
		Recipient: domain.Person{
			Name:  input.Recipient.Name,
			Email: input.Recipient.Email,
			Phone: input.Recipient.Phone,
		},
		Origin: domain.Address{
			Address: input.Origin.Address,
			City:    input.Origin.City,
			ZipCode: input.Origin.ZipCode,
		},
		Destination: domain.Address{
			Address: input.Destination.Address,
			City:    input.Destination.City,
			ZipCode: input.Destination.ZipCode,
		},
		Package: domain.Package{
			WeightKg:      input.Package.WeightKg,
			Description:   input.Package.Description,
			DeclaredValue: input.Package.DeclaredValue,
			Currency:      input.Package.Currency,
		},
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Notes: "shipment registered"},
		},
	}

	if err := s.repo.Create(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Msg("failed to create shipment")
		return nil, err
	}

	s.logger.Info().Str("tracking_number", shipment.TrackingNumber).Str("client_id", input.ClientID).Msg("shipment created")

	return &ports.ShipmentResult{
		TrackingNumber:    shipment.TrackingNumber,
		Status:            string(shipment.Status),
		CreatedAt:         shipment.CreatedAt,
		EstimatedDelivery: shipment.EstimatedDelivery,
	}, nil
}

// GetShipment retrieves a single shipment. Client-role callers are scoped to
// their own client_id at the repository level.
func (s *ShipmentService) GetShipment(ctx context.Context, input ports.GetShipmentInput) (*ports.ShipmentDetail, error) {
	shipment, err := s.findScoped(ctx, input.TrackingNumber, input.Role, input.ClientID)
	if err != nil {
		return nil, err
	}

	history := make([]ports.StatusHistoryItem, len(shipment.StatusHistory))
	for i, h := range shipment.StatusHistory {
		history[i] = ports.StatusHistoryItem{
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
			Location:  h.Location,
			Notes:     h.Notes,
			Actor:     h.Actor.DisplayName(),
		}
	}

	return &ports.ShipmentDetail{
		TrackingNumber:    shipment.TrackingNumber,
		Status:            string(shipment.Status),
		ServiceType:       shipment.ServiceType,
		CreatedAt:         shipment.CreatedAt,
		EstimatedDelivery: shipment.EstimatedDelivery,
		Sender:            toPersonInput(shipment.Sender),
		Recipient:         toPersonInput(shipment.Recipient),
		Origin:            toAddressInput(shipment.Origin),
		Destination:       toAddressInput(shipment.Destination),
		Package: ports.PackageInput{
			WeightKg:      shipment.Package.WeightKg,
			Description:   shipment.Package.Description,
			DeclaredValue: shipment.Package.DeclaredValue,
			Currency:      shipment.Package.Currency,
		},
		StatusHistory: history,
	}, nil
}

// ListShipments returns a filtered page of shipments. Client-role callers are
// always scoped to their own client_id regardless of the requested filter.
func (s *ShipmentService) ListShipments(ctx context.Context, input ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	page := input.Page
	if page < 1 {
		page = 1
	}

	clientID := ""
	if input.Role != domain.RoleAdmin {
		clientID = input.ClientID
	}

	shipments, total, err := s.repo.List(ctx, ports.ListShipmentsFilter{
		ClientID:    clientID,
		Status:      input.Status,
		ServiceType: input.ServiceType,
		Search:      input.Search,
		DateFrom:    input.DateFrom,
		DateTo:      input.DateTo,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list shipments")
		return nil, err
	}

	items := make([]ports.ShipmentSummary, len(shipments))
	for i, sh := range shipments {
		items[i] = ports.ShipmentSummary{
			TrackingNumber:    sh.TrackingNumber,
			Status:            string(sh.Status),
			ServiceType:       sh.ServiceType,
			ClientID:          sh.ClientID,
			Sender:            toPersonInput(sh.Sender),
			Origin:            toAddressInput(sh.Origin),
			Destination:       toAddressInput(sh.Destination),
			CreatedAt:         sh.CreatedAt,
			EstimatedDelivery: sh.EstimatedDelivery,
		}
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListShipmentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// findScoped loads a shipment applying the role-based client filter.
func (s *ShipmentService) findScoped(ctx context.Context, trackingNumber, role, clientID string) (*domain.Shipment, error) {
	filter := ""
	if role != domain.RoleAdmin {
		filter = clientID
	}
	return s.repo.FindByTrackingNumber(ctx, trackingNumber, filter)
}

func toPersonInput(p domain.Person) ports.PersonInput {
	return ports.PersonInput{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func toAddressInput(a domain.Address) ports.AddressInput {
	return ports.AddressInput{Address: a.Address, City: a.City, ZipCode: a.ZipCode}
}

// generateTrackingNumber returns a unique tracking number in the format SPK-XXXXXXXX.
func generateTrackingNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("SPK-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("SPK-%08X", b)
}

// estimatedDelivery calculates the estimated delivery time based on service type.
func estimatedDelivery(serviceType string, from time.Time) time.Time {
	base := time.Date(from.Year(), from.Month(), from.Day(), 18, 0, 0, 0, time.UTC)
	switch serviceType {
	case "same_day":
		return base
	case "express":
		return base.AddDate(0, 0, 1)
	default: // "regular" or unknown → 3 days
		return base.AddDate(0, 0, 3)
	}
}
