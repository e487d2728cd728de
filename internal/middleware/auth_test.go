package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeValidator struct {
	claims interface{}
	err    error
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

type fakeOwnerProvider struct {
	ownerID uuid.UUID
	err     error
	calls   int
}

func (f *fakeOwnerProvider) GetOwnerIDByAuth0ID(auth0ID string) (uuid.UUID, error) {
	f.calls++
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.ownerID, nil
}

func validClaims() *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|test"},
		CustomClaims:     &CustomClaims{Email: "test@example.com", Name: "Test"},
	}
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var seen echo.Context
	err := mw(func(c echo.Context) error {
		called = true
		seen = c
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec, seen, called
}

func TestAuthenticate_InjectsOwner(t *testing.T) {
	ownerID := uuid.New()
	provider := &fakeOwnerProvider{ownerID: ownerID}
	m := NewAuthMiddlewareWithValidator(&fakeValidator{claims: validClaims()}, provider)

	rec, c, called := runAuth(t, m.Authenticate(), "Bearer good-token")

	if !called {
		t.Fatalf("Expected handler to be called, got status %d", rec.Code)
	}
	if GetOwnerID(c) != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID, GetOwnerID(c))
	}
	if GetAuth0ID(c) != "auth0|test" {
		t.Errorf("Expected auth0 id 'auth0|test', got %q", GetAuth0ID(c))
	}
	if GetCustomClaims(c).Email != "test@example.com" {
		t.Errorf("Expected email claim to be available")
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		validator *fakeValidator
		provider  *fakeOwnerProvider
	}{
		{"missing header", "", &fakeValidator{claims: validClaims()}, &fakeOwnerProvider{ownerID: uuid.New()}},
		{"no bearer prefix", "invalid-token", &fakeValidator{claims: validClaims()}, &fakeOwnerProvider{ownerID: uuid.New()}},
		{"wrong scheme", "Basic abc", &fakeValidator{claims: validClaims()}, &fakeOwnerProvider{ownerID: uuid.New()}},
		{"empty token", "Bearer   ", &fakeValidator{claims: validClaims()}, &fakeOwnerProvider{ownerID: uuid.New()}},
		{"invalid token", "Bearer bad", &fakeValidator{err: errors.New("expired")}, &fakeOwnerProvider{ownerID: uuid.New()}},
		{"unexpected claims type", "Bearer odd", &fakeValidator{claims: "not claims"}, &fakeOwnerProvider{ownerID: uuid.New()}},
		{"unknown owner", "Bearer good", &fakeValidator{claims: validClaims()}, &fakeOwnerProvider{err: domain.ErrOwnerNotFound}},
		{"lookup failure", "Bearer good", &fakeValidator{claims: validClaims()}, &fakeOwnerProvider{err: errors.New("db down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddlewareWithValidator(tt.validator, tt.provider)
			rec, _, called := runAuth(t, m.Authenticate(), tt.header)

			if called {
				t.Error("Handler should not be called")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthenticateToken_SkipsOwnerLookup(t *testing.T) {
	provider := &fakeOwnerProvider{err: domain.ErrOwnerNotFound}
	m := NewAuthMiddlewareWithValidator(&fakeValidator{claims: validClaims()}, provider)

	_, c, called := runAuth(t, m.AuthenticateToken(), "bearer token")

	if !called {
		t.Fatal("Expected handler to be called")
	}
	if provider.calls != 0 {
		t.Errorf("Expected no owner lookups, got %d", provider.calls)
	}
	if GetOwnerID(c) != uuid.Nil {
		t.Error("Expected no owner in context")
	}
	if GetAuth0ID(c) != "auth0|test" {
		t.Errorf("Expected auth0 id, got %q", GetAuth0ID(c))
	}
}

func TestContextAccessors_Empty(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if GetAuth0ID(c) != "" {
		t.Error("Expected empty auth0 id")
	}
	if GetClaims(c) != nil {
		t.Error("Expected nil claims")
	}
	if GetCustomClaims(c) != nil {
		t.Error("Expected nil custom claims")
	}
	if GetOwnerID(c) != uuid.Nil {
		t.Error("Expected nil owner id")
	}
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{Email: "test@example.com", Name: "Test"}
	if err := claims.Validate(context.Background()); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
