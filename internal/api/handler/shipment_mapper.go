package handler

import (
	"github.com/samudra-paket/tracking-service/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest, clientID, idempotencyKey string) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		Sender:         toPersonInput(req.Sender),
		Recipient:      toPersonInput(req.Recipient),
		Origin:         toAddressInput(req.Origin),
		Destination:    toAddressInput(req.Destination),
		Package:        toPackageInput(req.Package),
		ServiceType:    req.ServiceType,
		ClientID:       clientID,
		IdempotencyKey: idempotencyKey,
	}
}

func toPersonInput(p personRequest) ports.PersonInput {
	return ports.PersonInput{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func toAddressInput(a addressRequest) ports.AddressInput {
	return ports.AddressInput{Address: a.Address, City: a.City, ZipCode: a.ZipCode}
}

func toPackageInput(p packageRequest) ports.PackageInput {
	return ports.PackageInput{
		WeightKg:      p.WeightKg,
		Description:   p.Description,
		DeclaredValue: p.DeclaredValue,
		Currency:      p.Currency,
	}
}

// --- Service result → HTTP response ---

func links(trackingNumber string) shipmentLinks {
	return shipmentLinks{
		Self:     "/v1/shipments/" + trackingNumber,
		Timeline: "/v1/shipments/" + trackingNumber + "/timeline",
	}
}

func toCreateResponse(r *ports.ShipmentResult) createShipmentResponse {
	return createShipmentResponse{
		TrackingNumber:    r.TrackingNumber,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt.UTC(),
		EstimatedDelivery: r.EstimatedDelivery.UTC(),
		Links:             links(r.TrackingNumber),
	}
}

func toGetResponse(d *ports.ShipmentDetail) getShipmentResponse {
	return getShipmentResponse{
		TrackingNumber:    d.TrackingNumber,
		Status:            d.Status,
		ServiceType:       d.ServiceType,
		CreatedAt:         d.CreatedAt.UTC(),
		EstimatedDelivery: d.EstimatedDelivery.UTC(),
		Sender:            toPersonResponse(d.Sender),
		Recipient:         toPersonResponse(d.Recipient),
		Origin:            toAddressResponse(d.Origin),
		Destination:       toAddressResponse(d.Destination),
		Package: packageResponse{
			WeightKg:      d.Package.WeightKg,
			Description:   d.Package.Description,
			DeclaredValue: d.Package.DeclaredValue,
			Currency:      d.Package.Currency,
		},
		StatusHistory: toStatusHistoryResponse(d.StatusHistory),
		Links:         links(d.TrackingNumber),
	}
}

func toPersonResponse(p ports.PersonInput) personResponse {
	return personResponse{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func toAddressResponse(a ports.AddressInput) addressResponse {
	return addressResponse{Address: a.Address, City: a.City, ZipCode: a.ZipCode}
}

func toStatusHistoryResponse(items []ports.StatusHistoryItem) []statusHistoryItemResponse {
	out := make([]statusHistoryItemResponse, len(items))
	for i, item := range items {
		out[i] = statusHistoryItemResponse{
			Status:    item.Status,
			Timestamp: item.Timestamp.UTC(),
			Location:  item.Location,
			Notes:     item.Notes,
			User:      item.Actor,
		}
	}
	return out
}

func toListResponse(r *ports.ListShipmentsResult) listShipmentsResponse {
	items := make([]shipmentSummaryResponse, len(r.Items))
	for i, s := range r.Items {
		items[i] = toSummaryResponse(s)
	}
	return listShipmentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toSummaryResponse(s ports.ShipmentSummary) shipmentSummaryResponse {
	return shipmentSummaryResponse{
		TrackingNumber:    s.TrackingNumber,
		Status:            s.Status,
		ServiceType:       s.ServiceType,
		CreatedAt:         s.CreatedAt.UTC(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		Sender:            toPersonResponse(s.Sender),
		Origin:            toAddressResponse(s.Origin),
		Destination:       toAddressResponse(s.Destination),
		Links:             links(s.TrackingNumber),
	}
}
