package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// EntryHandler handles ledger entry HTTP requests
type EntryHandler struct {
	ledgerService *service.LedgerService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(ledgerService *service.LedgerService) *EntryHandler {
	return &EntryHandler{ledgerService: ledgerService}
}

// EntryRequest is the body for creating or replacing an entry
type EntryRequest struct {
	Kind            string  `json:"kind"`
	Name            string  `json:"name"`
	Amount          string  `json:"amount"`
	Category        string  `json:"category"`
	Date            *string `json:"date"`
	Description     *string `json:"description,omitempty"`
	RecurringRuleID *int64  `json:"recurringRuleId,omitempty"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID              int64   `json:"id"`
	Kind            string  `json:"kind"`
	Name            string  `json:"name"`
	Amount          string  `json:"amount"`
	Category        string  `json:"category"`
	Date            string  `json:"date"`
	Description     *string `json:"description,omitempty"`
	RecurringRuleID *int64  `json:"recurringRuleId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// EntryListResponse represents the list response
type EntryListResponse struct {
	Data []EntryResponse `json:"data"`
}

func toEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:              e.ID,
		Kind:            string(e.Kind),
		Name:            e.Name,
		Amount:          formatAmount(e.Amount),
		Category:        e.Category,
		Date:            formatDate(e.EntryDate),
		Description:     e.Description,
		RecurringRuleID: e.RecurringRuleID,
		CreatedAt:       formatTimestamp(e.CreatedAt),
		UpdatedAt:       formatTimestamp(e.UpdatedAt),
	}
}

func (h *EntryHandler) bindInput(c echo.Context) (service.EntryInput, bool, error) {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return service.EntryInput{}, false, NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		return service.EntryInput{}, false, invalidAmount(c, "amount")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return service.EntryInput{}, false, NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be formatted as YYYY-MM-DD"},
		})
	}

	return service.EntryInput{
		Kind:            domain.EntryKind(req.Kind),
		Name:            req.Name,
		Amount:          amount,
		Category:        req.Category,
		EntryDate:       date,
		Description:     req.Description,
		RecurringRuleID: req.RecurringRuleID,
	}, true, nil
}

// CreateEntry handles POST /api/v1/entries
// @Summary Record an income or expense
// @Tags entries
// @Accept json
// @Produce json
// @Param body body EntryRequest true "Entry"
// @Success 201 {object} EntryResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /entries [post]
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	entry, err := h.ledgerService.CreateEntry(ownerID, input)
	if err != nil {
		return respondServiceError(c, err, "create entry")
	}

	log.Info().Str("owner_id", ownerID.String()).Int64("entry_id", entry.ID).Msg("Ledger entry created")
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// ListEntries handles GET /api/v1/entries?kind=&start=&end=
// @Summary List entries, newest first
// @Tags entries
// @Produce json
// @Param kind query string false "income or expense"
// @Param start query string false "YYYY-MM-DD inclusive"
// @Param end query string false "YYYY-MM-DD inclusive"
// @Success 200 {object} EntryListResponse
// @Security BearerAuth
// @Router /entries [get]
func (h *EntryHandler) ListEntries(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	filters := &domain.LedgerFilters{}
	if kind := c.QueryParam("kind"); kind != "" {
		k := domain.EntryKind(kind)
		filters.Kind = &k
	}
	for _, p := range []struct {
		name   string
		target **time.Time
	}{{"start", &filters.StartDate}, {"end", &filters.EndDate}} {
		raw := c.QueryParam(p.name)
		date, err := parseDate(&raw)
		if err != nil {
			return NewValidationError(c, "Invalid date filter", []ValidationError{
				{Field: p.name, Message: "Must be formatted as YYYY-MM-DD"},
			})
		}
		*p.target = date
	}

	entries, err := h.ledgerService.ListEntries(ownerID, filters)
	if err != nil {
		return respondServiceError(c, err, "list entries")
	}

	response := make([]EntryResponse, len(entries))
	for i, e := range entries {
		response[i] = toEntryResponse(e)
	}
	return c.JSON(http.StatusOK, EntryListResponse{Data: response})
}

// GetEntry handles GET /api/v1/entries/:id
// @Summary Get an entry
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} EntryResponse
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *EntryHandler) GetEntry(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	entry, err := h.ledgerService.GetEntry(ownerID, id)
	if err != nil {
		return respondServiceError(c, err, "get entry")
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// UpdateEntry handles PUT /api/v1/entries/:id
// @Summary Replace an entry
// @Tags entries
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param body body EntryRequest true "Entry"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	entry, err := h.ledgerService.UpdateEntry(ownerID, id, input)
	if err != nil {
		return respondServiceError(c, err, "update entry")
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry handles DELETE /api/v1/entries/:id
// @Summary Delete an entry
// @Tags entries
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	if err := h.ledgerService.DeleteEntry(ownerID, id); err != nil {
		return respondServiceError(c, err, "delete entry")
	}
	return c.NoContent(http.StatusNoContent)
}
