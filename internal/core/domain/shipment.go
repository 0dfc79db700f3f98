package domain

import (
	"errors"
	"time"
)

// ShipmentStatus is a lifecycle token of a shipment or pickup.
//
// The token set is open-ended: statuses are lowercase, underscore-separated
// identifiers produced by couriers, warehouse scanners, and partner systems.
// Unrecognized tokens are accepted and recorded as-is; only the terminal set
// below carries behaviour (a closed shipment accepts no further events).
type ShipmentStatus string

const (
	StatusPending         ShipmentStatus = "pending"
	StatusPickupScheduled ShipmentStatus = "pickup_scheduled"
	StatusPickedUp        ShipmentStatus = "picked_up"
	StatusInWarehouse     ShipmentStatus = "in_warehouse"
	StatusDeparted        ShipmentStatus = "departed"
	StatusInTransit       ShipmentStatus = "in_transit"
	StatusOutForDelivery  ShipmentStatus = "out_for_delivery"
	StatusDelivered       ShipmentStatus = "delivered"
	StatusCompleted       ShipmentStatus = "completed"
	StatusDelayed         ShipmentStatus = "delayed"
	StatusOnHold          ShipmentStatus = "on_hold"
	StatusFailed          ShipmentStatus = "failed"
	StatusCancelled       ShipmentStatus = "cancelled"
	StatusReturned        ShipmentStatus = "returned"
)

// terminalStatuses closes the shipment: no tracking event may follow.
var terminalStatuses = map[ShipmentStatus]struct{}{
	StatusDelivered: {},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusReturned:  {},
}

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateShipment = errors.New("shipment already exists")
var ErrShipmentClosed = errors.New("shipment is in a terminal status")
var ErrForbidden = errors.New("access forbidden")

// IsTerminal reports whether the status closes the shipment.
func (s ShipmentStatus) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// Address represents a physical location.
type Address struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
}

// Person represents a sender or recipient.
type Person struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// Package contains the details of what is being shipped.
type Package struct {
	WeightKg      float64 `json:"weight_kg" bson:"weight_kg"`
	Description   string  `json:"description" bson:"description"`
	DeclaredValue float64 `json:"declared_value" bson:"declared_value"`
	Currency      string  `json:"currency" bson:"currency"`
}

// StatusHistoryEntry records a single status transition on a shipment.
// Entries are immutable once recorded; readers derive display views from
// them but never modify the stored record.
type StatusHistoryEntry struct {
	Status    ShipmentStatus `json:"status" bson:"status"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Location  string         `json:"location,omitempty" bson:"location,omitempty"`
	Notes     string         `json:"notes,omitempty" bson:"notes,omitempty"`
	Actor     ActorRef       `json:"user,omitempty" bson:"user,omitempty"`
}

// Shipment is the core aggregate root.
type Shipment struct {
	ID                string               `json:"id" bson:"_id,omitempty"`
	TrackingNumber    string               `json:"tracking_number" bson:"tracking_number"`
	ClientID          string               `json:"client_id" bson:"client_id"`
	Sender            Person               `json:"sender" bson:"sender"`
	Recipient         Person               `json:"recipient" bson:"recipient"`
	Origin            Address              `json:"origin" bson:"origin"`
	Destination       Address              `json:"destination" bson:"destination"`
	Package           Package              `json:"package" bson:"package"`
	ServiceType       string               `json:"service_type" bson:"service_type"`
	Status            ShipmentStatus       `json:"status" bson:"status"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
	EstimatedDelivery time.Time            `json:"estimated_delivery" bson:"estimated_delivery"`
	IdempotencyKey    string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory     []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}
