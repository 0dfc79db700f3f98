package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/samudra-paket/tracking-service/internal/core/ports"
	"github.com/samudra-paket/tracking-service/internal/pkg/metrics"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /v1/shipments.
//
// @Summary      Register a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createShipmentRequest  true   "Shipment details"
// @Success      201              {object}  createShipmentResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	claims, err := requireClaims(c)
	if err != nil {
		return err
	}
	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req, claims.ClientID, idempotencyKey))
	if err != nil {
		return err
	}

	if !result.AlreadyExisted {
		metrics.ShipmentsCreatedTotal.WithLabelValues(req.ServiceType).Inc()
	}
	return c.JSON(http.StatusCreated, toCreateResponse(result))
}

// Get handles GET /v1/shipments/:tracking_number.
//
// @Summary      Get a shipment by tracking number
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_number  path      string  true  "Tracking number (e.g. SPK-7A8B9C2D)"
// @Success      200              {object}  getShipmentResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /v1/shipments/{tracking_number} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetShipment(c.Request().Context(), ports.GetShipmentInput{
		TrackingNumber: c.Param("tracking_number"),
		Role:           claims.Role,
		ClientID:       claims.ClientID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toGetResponse(detail))
}

// List handles GET /v1/shipments.
//
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        status        query     string  false  "Filter by current status token"
// @Param        service_type  query     string  false  "Filter by service type"
// @Param        search        query     string  false  "Partial match on tracking number or sender name"
// @Param        date_from     query     string  false  "created_at lower bound (RFC3339)"
// @Param        date_to       query     string  false  "created_at upper bound (RFC3339)"
// @Param        page          query     int     false  "Page number (1-based)"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Success      200           {object}  listShipmentsResponse
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	input := ports.ListShipmentsInput{
		Role:        claims.Role,
		ClientID:    claims.ClientID,
		Status:      c.QueryParam("status"),
		ServiceType: c.QueryParam("service_type"),
		Search:      c.QueryParam("search"),
	}

	if v := c.QueryParam("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_from must be RFC3339")
		}
		input.DateFrom = t
	}
	if v := c.QueryParam("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_to must be RFC3339")
		}
		input.DateTo = t
	}
	if v := c.QueryParam("page"); v != "" {
		input.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("limit"); v != "" {
		input.Limit, _ = strconv.Atoi(v)
	}

	result, err := h.service.ListShipments(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}
