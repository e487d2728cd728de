package handler

import (
	"net/http"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BalanceHandler serves period balances, projections and exports
type BalanceHandler struct {
	balanceService    *service.BalanceService
	projectionService *service.ProjectionService
	exportService     *service.ExportService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(
	balanceService *service.BalanceService,
	projectionService *service.ProjectionService,
	exportService *service.ExportService,
) *BalanceHandler {
	return &BalanceHandler{
		balanceService:    balanceService,
		projectionService: projectionService,
		exportService:     exportService,
	}
}

// BalanceResponse represents a stored period balance
type BalanceResponse struct {
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	OpeningBalance string `json:"openingBalance"`
	TotalIncome    string `json:"totalIncome"`
	TotalExpense   string `json:"totalExpense"`
	ClosingBalance string `json:"closingBalance"`
	UpdatedAt      string `json:"updatedAt"`
}

// BalanceListResponse represents the list of stored balances, newest first
type BalanceListResponse struct {
	Data []BalanceResponse `json:"data"`
}

// ProjectionResponse represents a forecast for a period
type ProjectionResponse struct {
	Year                    int    `json:"year"`
	Month                   int    `json:"month"`
	Mode                    string `json:"mode"`
	OpeningBalance          string `json:"openingBalance"`
	ActualIncome            string `json:"actualIncome"`
	ActualExpense           string `json:"actualExpense"`
	ProjectedIncome         string `json:"projectedIncome"`
	ProjectedExpense        string `json:"projectedExpense"`
	TotalIncome             string `json:"totalIncome"`
	TotalExpense            string `json:"totalExpense"`
	ProjectedClosingBalance string `json:"projectedClosingBalance"`
	RulesApplied            int    `json:"rulesApplied"`
	RulesSkipped            int    `json:"rulesSkipped"`
}

// ExportResponse describes an uploaded export
type ExportResponse struct {
	ObjectKey string `json:"objectKey"`
	URL       string `json:"url"`
	Rows      int    `json:"rows"`
	ExpiresAt string `json:"expiresAt"`
}

func toBalanceResponse(b *domain.PeriodBalance) BalanceResponse {
	return BalanceResponse{
		Year:           b.Year,
		Month:          b.Month,
		OpeningBalance: formatAmount(b.OpeningBalance),
		TotalIncome:    formatAmount(b.TotalIncome),
		TotalExpense:   formatAmount(b.TotalExpense),
		ClosingBalance: formatAmount(b.ClosingBalance),
		UpdatedAt:      formatTimestamp(b.UpdatedAt),
	}
}

func toProjectionResponse(p *domain.Projection) ProjectionResponse {
	return ProjectionResponse{
		Year:                    p.Year,
		Month:                   p.Month,
		Mode:                    string(p.Mode),
		OpeningBalance:          formatAmount(p.OpeningBalance),
		ActualIncome:            formatAmount(p.ActualIncome),
		ActualExpense:           formatAmount(p.ActualExpense),
		ProjectedIncome:         formatAmount(p.ProjectedIncome),
		ProjectedExpense:        formatAmount(p.ProjectedExpense),
		TotalIncome:             formatAmount(p.TotalIncome()),
		TotalExpense:            formatAmount(p.TotalExpense()),
		ProjectedClosingBalance: formatAmount(p.ProjectedClosingBalance),
		RulesApplied:            p.RulesApplied,
		RulesSkipped:            p.RulesSkipped,
	}
}

// ListBalances handles GET /api/v1/balances
// @Summary List stored period balances, newest first
// @Tags balances
// @Produce json
// @Success 200 {object} BalanceListResponse
// @Security BearerAuth
// @Router /balances [get]
func (h *BalanceHandler) ListBalances(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	balances, err := h.balanceService.ListBalances(ownerID)
	if err != nil {
		return respondServiceError(c, err, "list balances")
	}

	response := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		response[i] = toBalanceResponse(b)
	}
	return c.JSON(http.StatusOK, BalanceListResponse{Data: response})
}

// GetBalance handles GET /api/v1/balances/:year/:month
// @Summary Get the stored balance for a month
// @Tags balances
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month 1-12"
// @Success 200 {object} BalanceResponse
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /balances/{year}/{month} [get]
func (h *BalanceHandler) GetBalance(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	year, month, ok := parsePeriodParams(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	balance, err := h.balanceService.GetBalance(ownerID, year, month)
	if err != nil {
		return respondServiceError(c, err, "get balance")
	}
	return c.JSON(http.StatusOK, toBalanceResponse(balance))
}

// Recalculate handles POST /api/v1/balances/:year/:month/recalculate
// @Summary Recalculate and store one month's balance
// @Tags balances
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month 1-12"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /balances/{year}/{month}/recalculate [post]
func (h *BalanceHandler) Recalculate(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	year, month, ok := parsePeriodParams(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	balance, err := h.balanceService.Recalculate(c.Request().Context(), ownerID, year, month)
	if err != nil {
		return respondServiceError(c, err, "recalculate balance")
	}
	return c.JSON(http.StatusOK, toBalanceResponse(balance))
}

// Cascade handles POST /api/v1/balances/:year/:month/cascade
// @Summary Recalculate a month and every stored later month
// @Tags balances
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month 1-12"
// @Success 200 {object} BalanceListResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /balances/{year}/{month}/cascade [post]
func (h *BalanceHandler) Cascade(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	year, month, ok := parsePeriodParams(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	balances, err := h.balanceService.RecalculateFrom(c.Request().Context(), ownerID, year, month)
	if err != nil {
		return respondServiceError(c, err, "cascade balances")
	}

	response := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		response[i] = toBalanceResponse(b)
	}
	return c.JSON(http.StatusOK, BalanceListResponse{Data: response})
}

// GetProjection handles GET /api/v1/projections/:year/:month
// @Summary Forecast a month's closing balance from actuals and recurring rules
// @Tags projections
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month 1-12"
// @Success 200 {object} ProjectionResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /projections/{year}/{month} [get]
func (h *BalanceHandler) GetProjection(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	year, month, ok := parsePeriodParams(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	projection, err := h.projectionService.Project(c.Request().Context(), ownerID, year, month)
	if err != nil {
		return respondServiceError(c, err, "project balance")
	}
	return c.JSON(http.StatusOK, toProjectionResponse(projection))
}

// ExportBalances handles POST /api/v1/balances/export
// @Summary Export stored balances as CSV to object storage
// @Tags balances
// @Produce json
// @Success 201 {object} ExportResponse
// @Failure 503 {object} ProblemDetails
// @Security BearerAuth
// @Router /balances/export [post]
func (h *BalanceHandler) ExportBalances(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	if h.exportService == nil {
		return respondServiceError(c, service.ErrExportStorageNotConfigured, "export balances")
	}

	result, err := h.exportService.ExportBalances(c.Request().Context(), ownerID)
	if err != nil {
		return respondServiceError(c, err, "export balances")
	}

	return c.JSON(http.StatusCreated, ExportResponse{
		ObjectKey: result.ObjectKey,
		URL:       result.URL,
		Rows:      result.Rows,
		ExpiresAt: formatTimestamp(result.ExpiresAt),
	})
}
