package middleware

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// Auth0IDKey is the context key for the Auth0 subject
	Auth0IDKey contextKey = "auth0_id"
	// OwnerIDKey is the context key for the resolved owner ID
	OwnerIDKey contextKey = "owner_id"
)

// OwnerProvider resolves the owner record behind an Auth0 subject
type OwnerProvider interface {
	GetOwnerIDByAuth0ID(auth0ID string) (uuid.UUID, error)
}

// TokenValidator validates a raw bearer token. *validator.Validator satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// AuthMiddleware provides JWT validation middleware
type AuthMiddleware struct {
	validator     TokenValidator
	ownerProvider OwnerProvider
}

// NewAuthMiddleware creates a new AuthMiddleware with Auth0 configuration
func NewAuthMiddleware(auth0Domain, audience string, ownerProvider OwnerProvider) (*AuthMiddleware, error) {
	issuerURL, err := url.Parse("https://" + auth0Domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return NewAuthMiddlewareWithValidator(jwtValidator, ownerProvider), nil
}

// NewAuthMiddlewareWithValidator builds the middleware around an existing validator
func NewAuthMiddlewareWithValidator(v TokenValidator, ownerProvider OwnerProvider) *AuthMiddleware {
	return &AuthMiddleware{validator: v, ownerProvider: ownerProvider}
}

// AuthenticateToken validates the bearer token only. Used by the login callback,
// which runs before the owner record exists.
func (m *AuthMiddleware) AuthenticateToken() echo.MiddlewareFunc {
	return m.authenticate(false)
}

// Authenticate validates the bearer token and requires a registered owner
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return m.authenticate(true)
}

func (m *AuthMiddleware) authenticate(requireOwner bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return unauthorizedError(c, "missing or malformed authorization header")
			}

			claims, err := m.validator.ValidateToken(c.Request().Context(), token)
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "invalid token")
			}

			validatedClaims, ok := claims.(*validator.ValidatedClaims)
			if !ok {
				return unauthorizedError(c, "invalid claims")
			}

			auth0ID := validatedClaims.RegisteredClaims.Subject
			ctx := context.WithValue(c.Request().Context(), ClaimsKey, validatedClaims)
			ctx = context.WithValue(ctx, Auth0IDKey, auth0ID)

			if requireOwner {
				ownerID, err := m.ownerProvider.GetOwnerIDByAuth0ID(auth0ID)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						return unauthorizedError(c, "owner not registered")
					}
					log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Owner lookup failed")
					return unauthorizedError(c, "owner lookup failed")
				}
				ctx = context.WithValue(ctx, OwnerIDKey, ownerID)
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// GetAuth0ID extracts the Auth0 subject from the context
func GetAuth0ID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(Auth0IDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the validated claims from the context
func GetClaims(c echo.Context) *validator.ValidatedClaims {
	if claims, ok := c.Request().Context().Value(ClaimsKey).(*validator.ValidatedClaims); ok {
		return claims
	}
	return nil
}

// GetCustomClaims extracts the custom claims from the context
func GetCustomClaims(c echo.Context) *CustomClaims {
	claims := GetClaims(c)
	if claims == nil {
		return nil
	}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok {
		return custom
	}
	return nil
}

// GetOwnerID extracts the owner ID from the context, or uuid.Nil
func GetOwnerID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(OwnerIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithOwnerID stores an owner ID on the request context
func WithOwnerID(c echo.Context, ownerID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), OwnerIDKey, ownerID)
	c.SetRequest(c.Request().WithContext(ctx))
}
