package websocket

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when JWT validation fails
	ErrInvalidToken = errors.New("invalid token")
	// ErrOwnerNotFound is returned when the token subject has no owner record
	ErrOwnerNotFound = errors.New("owner not found")
)

// OwnerLookup resolves the owner for an Auth0 subject
type OwnerLookup interface {
	GetOwnerIDByAuth0ID(auth0ID string) (uuid.UUID, error)
}

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct{}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Auth0JWTValidator validates the token passed on the websocket query string
type Auth0JWTValidator struct {
	validator   *validator.Validator
	ownerLookup OwnerLookup
}

// NewAuth0JWTValidator creates a new Auth0JWTValidator
func NewAuth0JWTValidator(domain, audience string, ownerLookup OwnerLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
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

	return &Auth0JWTValidator{
		validator:   jwtValidator,
		ownerLookup: ownerLookup,
	}, nil
}

// ValidateToken validates a JWT and returns the owner it belongs to
func (v *Auth0JWTValidator) ValidateToken(token string) (uuid.UUID, error) {
	claims, err := v.validator.ValidateToken(context.Background(), token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	ownerID, err := v.ownerLookup.GetOwnerIDByAuth0ID(validatedClaims.RegisteredClaims.Subject)
	if err != nil {
		return uuid.Nil, ErrOwnerNotFound
	}
	return ownerID, nil
}
