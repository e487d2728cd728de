package handler

import (
	"net/http"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	ownerService *service.OwnerService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(ownerService *service.OwnerService) *AuthHandler {
	return &AuthHandler{ownerService: ownerService}
}

// OwnerResponse represents an owner in API responses
type OwnerResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// AuthCallbackResponse represents the response from the auth callback
type AuthCallbackResponse struct {
	Owner      OwnerResponse `json:"owner"`
	IsNewOwner bool          `json:"isNewOwner"`
}

func toOwnerResponse(o *domain.Owner) OwnerResponse {
	return OwnerResponse{ID: o.ID.String(), Email: o.Email, Name: o.Name}
}

// Callback registers the owner on first login
// @Summary Complete login
// @Tags auth
// @Produce json
// @Success 200 {object} AuthCallbackResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Security BearerAuth
// @Router /auth/callback [post]
func (h *AuthHandler) Callback(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		log.Error().Msg("No Auth0 ID in context - middleware may not be configured")
		return NewUnauthorizedError(c, "Authentication required")
	}

	var email, name string
	if claims := middleware.GetCustomClaims(c); claims != nil {
		email = claims.Email
		name = claims.Name
	}
	if email == "" {
		log.Error().Str("auth0_id", auth0ID).Msg("No email in JWT claims")
		return NewValidationError(c, "Email is required for authentication", []ValidationError{
			{Field: "email", Message: "Email claim is missing from token"},
		})
	}

	var namePtr *string
	if name != "" {
		namePtr = &name
	}

	result, err := h.ownerService.AuthenticateOwner(auth0ID, email, namePtr)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to authenticate owner")
		return NewInternalError(c, "Failed to authenticate owner")
	}

	return c.JSON(http.StatusOK, AuthCallbackResponse{
		Owner:      toOwnerResponse(result.Owner),
		IsNewOwner: result.IsNewOwner,
	})
}

// Me returns the authenticated owner
// @Summary Current owner
// @Tags auth
// @Produce json
// @Success 200 {object} OwnerResponse
// @Failure 401 {object} ProblemDetails
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	owner, err := h.ownerService.GetOwner(ownerID)
	if err != nil {
		return respondServiceError(c, err, "get owner")
	}
	return c.JSON(http.StatusOK, toOwnerResponse(owner))
}

// LogoutResponse represents the response from logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// Logout records the logout; Auth0 terminates the session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} LogoutResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	log.Info().Str("auth0_id", auth0ID).Msg("Owner logged out")
	return c.JSON(http.StatusOK, LogoutResponse{Message: "Logged out successfully"})
}
