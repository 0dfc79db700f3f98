package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type addressRequest struct {
	Address string `json:"address"  validate:"required"`
	City    string `json:"city"     validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
}

type personRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type packageRequest struct {
	WeightKg      float64 `json:"weight_kg"      validate:"required,gt=0"`
	Description   string  `json:"description"    validate:"required"`
	DeclaredValue float64 `json:"declared_value" validate:"required,gt=0"`
	Currency      string  `json:"currency"       validate:"required"`
}

type createShipmentRequest struct {
	Sender      personRequest  `json:"sender"       validate:"required"`
	Recipient   personRequest  `json:"recipient"    validate:"required"`
	Origin      addressRequest `json:"origin"       validate:"required"`
	Destination addressRequest `json:"destination"  validate:"required"`
	Package     packageRequest `json:"package"      validate:"required"`
	ServiceType string         `json:"service_type" validate:"required,oneof=same_day express regular"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type shipmentLinks struct {
	Self     string `json:"self"`
	Timeline string `json:"timeline"`
}

type createShipmentResponse struct {
	TrackingNumber    string        `json:"tracking_number"`
	Status            string        `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	Links             shipmentLinks `json:"_links"`
}

type personResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type addressResponse struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

type packageResponse struct {
	WeightKg      float64 `json:"weight_kg"`
	Description   string  `json:"description"`
	DeclaredValue float64 `json:"declared_value"`
	Currency      string  `json:"currency"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	User      string    `json:"user,omitempty"`
}

type getShipmentResponse struct {
	TrackingNumber    string                      `json:"tracking_number"`
	Status            string                      `json:"status"`
	ServiceType       string                      `json:"service_type"`
	CreatedAt         time.Time                   `json:"created_at"`
	EstimatedDelivery time.Time                   `json:"estimated_delivery"`
	Sender            personResponse              `json:"sender"`
	Recipient         personResponse              `json:"recipient"`
	Origin            addressResponse             `json:"origin"`
	Destination       addressResponse             `json:"destination"`
	Package           packageResponse             `json:"package"`
	StatusHistory     []statusHistoryItemResponse `json:"status_history"`
	Links             shipmentLinks               `json:"_links"`
}

// shipmentSummaryResponse is the lightweight item used in list responses.
// It intentionally omits status_history to keep payloads small.
type shipmentSummaryResponse struct {
	TrackingNumber    string          `json:"tracking_number"`
	Status            string          `json:"status"`
	ServiceType       string          `json:"service_type"`
	CreatedAt         time.Time       `json:"created_at"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	Sender            personResponse  `json:"sender"`
	Origin            addressResponse `json:"origin"`
	Destination       addressResponse `json:"destination"`
	Links             shipmentLinks   `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listShipmentsResponse struct {
	Data       []shipmentSummaryResponse `json:"data"`
	Pagination paginationResponse        `json:"pagination"`
}
