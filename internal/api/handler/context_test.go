package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func claimsContext(role, clientID string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if role != "" {
		c.Set("role", role)
	}
	if clientID != "" {
		c.Set("client_id", clientID)
	}
	return c
}

func TestRequireClaims_AdminWithoutClientID(t *testing.T) {
	claims, err := requireClaims(claimsContext("admin", ""))
	if err != nil {
		t.Fatalf("admin should not need a client_id: %v", err)
	}
	if claims.Role != "admin" || claims.ClientID != "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRequireClaims_ClientWithoutClientIDRejected(t *testing.T) {
	_, err := requireClaims(claimsContext("client", ""))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRequireClaims_MissingRoleRejected(t *testing.T) {
	_, err := requireClaims(claimsContext("", ""))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRequireClaims_ClientScoped(t *testing.T) {
	claims, err := requireClaims(claimsContext("client", "CL-JKT-001"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.ClientID != "CL-JKT-001" {
		t.Fatalf("client_id not carried: %+v", claims)
	}
}
