package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
)

// authClaims carries the identity values the Auth middleware stores on the
// echo context. Handlers pass them through to the service layer, where RBAC
// scoping happens.
type authClaims struct {
	Role     string
	ClientID string
}

// requireClaims reads the identity claims off the context. An empty role
// means the Auth middleware never ran on this route. A client-role token
// without a client_id cannot be scoped to any shipment, so it is rejected
// here rather than producing an unscoped query downstream.
func requireClaims(c echo.Context) (authClaims, error) {
	claims := authClaims{}
	claims.Role, _ = c.Get("role").(string)
	if claims.Role == "" {
		return claims, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	claims.ClientID, _ = c.Get("client_id").(string)
	if claims.Role == domain.RoleClient && claims.ClientID == "" {
		return claims, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}

	return claims, nil
}
