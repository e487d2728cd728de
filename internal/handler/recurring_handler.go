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

// RecurringHandler handles recurring rule HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// RecurringRequest is the body for creating or replacing a rule
type RecurringRequest struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Frequency   string  `json:"frequency"`
	DayOfMonth  int     `json:"dayOfMonth"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Description *string `json:"description,omitempty"`
}

// RecurringResponse represents a recurring rule in API responses
type RecurringResponse struct {
	ID          int64   `json:"id"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Frequency   string  `json:"frequency"`
	DayOfMonth  int     `json:"dayOfMonth"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	IsActive    bool    `json:"isActive"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// RecurringListResponse represents the list response
type RecurringListResponse struct {
	Data []RecurringResponse `json:"data"`
}

// InstanceResponse is a preview of one rule materialized into a period
type InstanceResponse struct {
	RecurringID int64   `json:"recurringId"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"isRecurring"`
}

// InstanceListResponse represents the generated instances for a period
type InstanceListResponse struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Data  []InstanceResponse `json:"data"`
}

func toRecurringResponse(r *domain.RecurringRule) RecurringResponse {
	resp := RecurringResponse{
		ID:          r.ID,
		Kind:        string(r.Kind),
		Name:        r.Name,
		Amount:      formatAmount(r.Amount),
		Category:    r.Category,
		Frequency:   string(r.Frequency),
		DayOfMonth:  r.DayOfMonth,
		StartDate:   formatDate(r.StartDate),
		IsActive:    r.IsActive,
		Description: r.Description,
		CreatedAt:   formatTimestamp(r.CreatedAt),
		UpdatedAt:   formatTimestamp(r.UpdatedAt),
	}
	if r.EndDate != nil {
		end := formatDate(*r.EndDate)
		resp.EndDate = &end
	}
	return resp
}

func (h *RecurringHandler) bindInput(c echo.Context) (service.RuleInput, bool, error) {
	var req RecurringRequest
	if err := c.Bind(&req); err != nil {
		return service.RuleInput{}, false, NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		return service.RuleInput{}, false, invalidAmount(c, "amount")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return service.RuleInput{}, false, NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be formatted as YYYY-MM-DD"},
		})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return service.RuleInput{}, false, NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "endDate", Message: "Must be formatted as YYYY-MM-DD"},
		})
	}

	return service.RuleInput{
		Kind:        domain.EntryKind(req.Kind),
		Name:        req.Name,
		Amount:      amount,
		Category:    req.Category,
		Frequency:   domain.Frequency(req.Frequency),
		DayOfMonth:  req.DayOfMonth,
		StartDate:   start,
		EndDate:     end,
		IsActive:    req.IsActive,
		Description: req.Description,
	}, true, nil
}

// CreateRecurring handles POST /api/v1/recurring
// @Summary Create a monthly recurring rule
// @Tags recurring
// @Accept json
// @Produce json
// @Param body body RecurringRequest true "Rule"
// @Success 201 {object} RecurringResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /recurring [post]
func (h *RecurringHandler) CreateRecurring(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	rule, err := h.recurringService.CreateRule(ownerID, input)
	if err != nil {
		return respondServiceError(c, err, "create recurring rule")
	}

	log.Info().Str("owner_id", ownerID.String()).Int64("recurring_id", rule.ID).Str("name", rule.Name).Msg("Recurring rule created")
	return c.JSON(http.StatusCreated, toRecurringResponse(rule))
}

// ListRecurring handles GET /api/v1/recurring?active=
// @Summary List recurring rules
// @Tags recurring
// @Produce json
// @Param active query bool false "Filter on active flag"
// @Success 200 {object} RecurringListResponse
// @Security BearerAuth
// @Router /recurring [get]
func (h *RecurringHandler) ListRecurring(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	var activeOnly *bool
	if activeParam := c.QueryParam("active"); activeParam != "" {
		active := activeParam == "true"
		activeOnly = &active
	}

	rules, err := h.recurringService.ListRules(ownerID, activeOnly)
	if err != nil {
		return respondServiceError(c, err, "list recurring rules")
	}

	response := make([]RecurringResponse, len(rules))
	for i, r := range rules {
		response[i] = toRecurringResponse(r)
	}
	return c.JSON(http.StatusOK, RecurringListResponse{Data: response})
}

// GetRecurring handles GET /api/v1/recurring/:id
// @Summary Get a recurring rule
// @Tags recurring
// @Produce json
// @Param id path int true "Rule ID"
// @Success 200 {object} RecurringResponse
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /recurring/{id} [get]
func (h *RecurringHandler) GetRecurring(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid recurring rule ID", nil)
	}

	rule, err := h.recurringService.GetRule(ownerID, id)
	if err != nil {
		return respondServiceError(c, err, "get recurring rule")
	}
	return c.JSON(http.StatusOK, toRecurringResponse(rule))
}

// UpdateRecurring handles PUT /api/v1/recurring/:id
// @Summary Replace a recurring rule
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path int true "Rule ID"
// @Param body body RecurringRequest true "Rule"
// @Success 200 {object} RecurringResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /recurring/{id} [put]
func (h *RecurringHandler) UpdateRecurring(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid recurring rule ID", nil)
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	rule, err := h.recurringService.UpdateRule(ownerID, id, input)
	if err != nil {
		return respondServiceError(c, err, "update recurring rule")
	}
	return c.JSON(http.StatusOK, toRecurringResponse(rule))
}

// DeleteRecurring handles DELETE /api/v1/recurring/:id
// @Summary Delete a recurring rule
// @Tags recurring
// @Param id path int true "Rule ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /recurring/{id} [delete]
func (h *RecurringHandler) DeleteRecurring(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid recurring rule ID", nil)
	}

	if err := h.recurringService.DeleteRule(ownerID, id); err != nil {
		return respondServiceError(c, err, "delete recurring rule")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetInstances handles GET /api/v1/recurring/instances/:year/:month
// @Summary Preview the entries active rules produce for a month
// @Tags recurring
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month 1-12"
// @Success 200 {object} InstanceListResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /recurring/instances/{year}/{month} [get]
func (h *RecurringHandler) GetInstances(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	year, month, ok := parsePeriodParams(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	instances, err := h.recurringService.GenerateInstances(ownerID, year, month)
	if err != nil {
		return respondServiceError(c, err, "generate recurring instances")
	}

	response := make([]InstanceResponse, len(instances))
	for i, inst := range instances {
		response[i] = InstanceResponse{
			RecurringID: inst.RuleID,
			Kind:        string(inst.Kind),
			Name:        inst.Name,
			Amount:      formatAmount(inst.Amount),
			Category:    inst.Category,
			Date:        formatDate(inst.Date),
			Description: inst.Description,
			IsRecurring: inst.IsRecurring,
		}
	}
	return c.JSON(http.StatusOK, InstanceListResponse{Year: year, Month: month, Data: response})
}
