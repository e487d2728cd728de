package handler

import (
	"net/http"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NetWorthHandler handles net worth snapshot HTTP requests
type NetWorthHandler struct {
	netWorthService *service.NetWorthService
}

// NewNetWorthHandler creates a new NetWorthHandler
func NewNetWorthHandler(netWorthService *service.NetWorthService) *NetWorthHandler {
	return &NetWorthHandler{netWorthService: netWorthService}
}

// SnapshotRequest is the body for creating or replacing a snapshot.
// Omitted totals are summed from the owner's recorded assets and liabilities.
type SnapshotRequest struct {
	TotalAssets          *string `json:"totalAssets,omitempty"`
	TotalLiabilities     *string `json:"totalLiabilities,omitempty"`
	RecordDate           *string `json:"recordDate"`
	AssetsBreakdown      *string `json:"assetsBreakdown,omitempty"`
	LiabilitiesBreakdown *string `json:"liabilitiesBreakdown,omitempty"`
}

// SnapshotResponse represents a net worth snapshot
type SnapshotResponse struct {
	ID                   int64   `json:"id"`
	TotalAssets          string  `json:"totalAssets"`
	TotalLiabilities     string  `json:"totalLiabilities"`
	NetWorth             string  `json:"netWorth"`
	RecordDate           string  `json:"recordDate"`
	AssetsBreakdown      *string `json:"assetsBreakdown,omitempty"`
	LiabilitiesBreakdown *string `json:"liabilitiesBreakdown,omitempty"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// SnapshotListResponse represents the list response
type SnapshotListResponse struct {
	Data []SnapshotResponse `json:"data"`
}

func toSnapshotResponse(s *domain.NetWorthSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:                   s.ID,
		TotalAssets:          formatAmount(s.TotalAssets),
		TotalLiabilities:     formatAmount(s.TotalLiabilities),
		NetWorth:             formatAmount(s.NetWorth),
		RecordDate:           formatDate(s.RecordDate),
		AssetsBreakdown:      s.AssetsBreakdown,
		LiabilitiesBreakdown: s.LiabilitiesBreakdown,
		CreatedAt:            formatTimestamp(s.CreatedAt),
		UpdatedAt:            formatTimestamp(s.UpdatedAt),
	}
}

func (h *NetWorthHandler) bindInput(c echo.Context) (service.SnapshotInput, bool, error) {
	var req SnapshotRequest
	if err := c.Bind(&req); err != nil {
		return service.SnapshotInput{}, false, NewValidationError(c, "Invalid request body", nil)
	}

	assets, ok := parseOptionalAmount(req.TotalAssets)
	if !ok {
		return service.SnapshotInput{}, false, invalidAmount(c, "totalAssets")
	}
	liabilities, ok := parseOptionalAmount(req.TotalLiabilities)
	if !ok {
		return service.SnapshotInput{}, false, invalidAmount(c, "totalLiabilities")
	}

	date, err := parseDate(req.RecordDate)
	if err != nil {
		return service.SnapshotInput{}, false, NewValidationError(c, "Invalid record date", []ValidationError{
			{Field: "recordDate", Message: "Must be formatted as YYYY-MM-DD"},
		})
	}

	return service.SnapshotInput{
		TotalAssets:          assets,
		TotalLiabilities:     liabilities,
		RecordDate:           date,
		AssetsBreakdown:      req.AssetsBreakdown,
		LiabilitiesBreakdown: req.LiabilitiesBreakdown,
	}, true, nil
}

// CreateSnapshot handles POST /api/v1/networth
// @Summary Record a net worth snapshot
// @Tags networth
// @Accept json
// @Produce json
// @Param body body SnapshotRequest true "Snapshot"
// @Success 201 {object} SnapshotResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /networth [post]
func (h *NetWorthHandler) CreateSnapshot(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	snapshot, err := h.netWorthService.CreateSnapshot(ownerID, input)
	if err != nil {
		return respondServiceError(c, err, "create snapshot")
	}
	return c.JSON(http.StatusCreated, toSnapshotResponse(snapshot))
}

// ListSnapshots handles GET /api/v1/networth
// @Summary List snapshots, most recent first
// @Tags networth
// @Produce json
// @Success 200 {object} SnapshotListResponse
// @Security BearerAuth
// @Router /networth [get]
func (h *NetWorthHandler) ListSnapshots(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	snapshots, err := h.netWorthService.ListSnapshots(ownerID)
	if err != nil {
		return respondServiceError(c, err, "list snapshots")
	}

	response := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		response[i] = toSnapshotResponse(s)
	}
	return c.JSON(http.StatusOK, SnapshotListResponse{Data: response})
}

// GetSnapshot handles GET /api/v1/networth/:id
// @Summary Get a snapshot
// @Tags networth
// @Produce json
// @Param id path int true "Snapshot ID"
// @Success 200 {object} SnapshotResponse
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /networth/{id} [get]
func (h *NetWorthHandler) GetSnapshot(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid snapshot ID", nil)
	}

	snapshot, err := h.netWorthService.GetSnapshot(ownerID, id)
	if err != nil {
		return respondServiceError(c, err, "get snapshot")
	}
	return c.JSON(http.StatusOK, toSnapshotResponse(snapshot))
}

// UpdateSnapshot handles PUT /api/v1/networth/:id
// @Summary Replace a snapshot
// @Tags networth
// @Accept json
// @Produce json
// @Param id path int true "Snapshot ID"
// @Param body body SnapshotRequest true "Snapshot"
// @Success 200 {object} SnapshotResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /networth/{id} [put]
func (h *NetWorthHandler) UpdateSnapshot(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid snapshot ID", nil)
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	snapshot, err := h.netWorthService.UpdateSnapshot(ownerID, id, input)
	if err != nil {
		return respondServiceError(c, err, "update snapshot")
	}
	return c.JSON(http.StatusOK, toSnapshotResponse(snapshot))
}

// DeleteSnapshot handles DELETE /api/v1/networth/:id
// @Summary Delete a snapshot
// @Tags networth
// @Param id path int true "Snapshot ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /networth/{id} [delete]
func (h *NetWorthHandler) DeleteSnapshot(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid snapshot ID", nil)
	}

	if err := h.netWorthService.DeleteSnapshot(ownerID, id); err != nil {
		return respondServiceError(c, err, "delete snapshot")
	}
	return c.NoContent(http.StatusNoContent)
}
