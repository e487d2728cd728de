package handler

import (
	"net/http"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest is the body for creating or replacing a goal
type GoalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount string  `json:"currentAmount"`
	TargetDate    *string `json:"targetDate"`
	Description   *string `json:"description,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// GoalResponse represents a goal with its progress
type GoalResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount string  `json:"currentAmount"`
	Remaining     string  `json:"remaining"`
	Progress      string  `json:"progress"`
	TargetDate    string  `json:"targetDate"`
	Description   *string `json:"description,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// GoalListResponse represents the list response
type GoalListResponse struct {
	Data []GoalResponse `json:"data"`
}

func toGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  formatAmount(g.TargetAmount),
		CurrentAmount: formatAmount(g.CurrentAmount),
		Remaining:     formatAmount(g.Remaining()),
		Progress:      formatAmount(g.Progress()),
		TargetDate:    formatDate(g.TargetDate),
		Description:   g.Description,
		Status:        string(g.Status),
		CreatedAt:     formatTimestamp(g.CreatedAt),
		UpdatedAt:     formatTimestamp(g.UpdatedAt),
	}
}

func (h *GoalHandler) bindInput(c echo.Context) (service.GoalInput, bool, error) {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return service.GoalInput{}, false, NewValidationError(c, "Invalid request body", nil)
	}

	target, ok := parseAmount(req.TargetAmount)
	if !ok {
		return service.GoalInput{}, false, invalidAmount(c, "targetAmount")
	}

	current := decimal.Zero
	if req.CurrentAmount != "" {
		if current, ok = parseAmount(req.CurrentAmount); !ok {
			return service.GoalInput{}, false, invalidAmount(c, "currentAmount")
		}
	}

	date, err := parseDate(req.TargetDate)
	if err != nil {
		return service.GoalInput{}, false, NewValidationError(c, "Invalid target date", []ValidationError{
			{Field: "targetDate", Message: "Must be formatted as YYYY-MM-DD"},
		})
	}

	return service.GoalInput{
		Name:          req.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    date,
		Description:   req.Description,
		Status:        domain.GoalStatus(req.Status),
	}, true, nil
}

// CreateGoal handles POST /api/v1/goals
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param body body GoalRequest true "Goal"
// @Success 201 {object} GoalResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	goal, err := h.goalService.CreateGoal(ownerID, input)
	if err != nil {
		return respondServiceError(c, err, "create goal")
	}
	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// ListGoals handles GET /api/v1/goals?status=
// @Summary List goals, nearest target date first
// @Tags goals
// @Produce json
// @Param status query string false "in_progress, completed or cancelled"
// @Success 200 {object} GoalListResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /goals [get]
func (h *GoalHandler) ListGoals(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	var status *domain.GoalStatus
	if param := c.QueryParam("status"); param != "" {
		s := domain.GoalStatus(param)
		status = &s
	}

	goals, err := h.goalService.ListGoals(ownerID, status)
	if err != nil {
		return respondServiceError(c, err, "list goals")
	}

	response := make([]GoalResponse, len(goals))
	for i, g := range goals {
		response[i] = toGoalResponse(g)
	}
	return c.JSON(http.StatusOK, GoalListResponse{Data: response})
}

// GetGoal handles GET /api/v1/goals/:id
// @Summary Get a goal
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} GoalResponse
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := h.goalService.GetGoal(ownerID, id)
	if err != nil {
		return respondServiceError(c, err, "get goal")
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateGoal handles PUT /api/v1/goals/:id
// @Summary Replace a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param body body GoalRequest true "Goal"
// @Success 200 {object} GoalResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	goal, err := h.goalService.UpdateGoal(ownerID, id, input)
	if err != nil {
		return respondServiceError(c, err, "update goal")
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal handles DELETE /api/v1/goals/:id
// @Summary Delete a goal
// @Tags goals
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.DeleteGoal(ownerID, id); err != nil {
		return respondServiceError(c, err, "delete goal")
	}
	return c.NoContent(http.StatusNoContent)
}
