package handler

import (
	"net/http"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AssetHandler handles asset and liability HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// AssetRequest is the body for creating or replacing an asset
type AssetRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Value       string  `json:"value"`
	IsAsset     *bool   `json:"isAsset"`
	Description *string `json:"description,omitempty"`
}

// AssetResponse represents an asset or liability
type AssetResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Value       string  `json:"value"`
	IsAsset     bool    `json:"isAsset"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// AssetListResponse represents the list response
type AssetListResponse struct {
	Data []AssetResponse `json:"data"`
}

// AssetSummaryResponse holds the owner's totals and derived net worth
type AssetSummaryResponse struct {
	TotalAssets      string `json:"totalAssets"`
	TotalLiabilities string `json:"totalLiabilities"`
	NetWorth         string `json:"netWorth"`
}

func toAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:          a.ID,
		Name:        a.Name,
		Type:        string(a.Type),
		Value:       formatAmount(a.Value),
		IsAsset:     a.IsAsset,
		Description: a.Description,
		CreatedAt:   formatTimestamp(a.CreatedAt),
		UpdatedAt:   formatTimestamp(a.UpdatedAt),
	}
}

func (h *AssetHandler) bindInput(c echo.Context) (service.AssetInput, bool, error) {
	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return service.AssetInput{}, false, NewValidationError(c, "Invalid request body", nil)
	}

	value, ok := parseAmount(req.Value)
	if !ok {
		return service.AssetInput{}, false, invalidAmount(c, "value")
	}

	return service.AssetInput{
		Name:        req.Name,
		Type:        domain.AssetType(req.Type),
		Value:       value,
		IsAsset:     req.IsAsset,
		Description: req.Description,
	}, true, nil
}

// CreateAsset handles POST /api/v1/assets
// @Summary Record an asset or liability
// @Tags assets
// @Accept json
// @Produce json
// @Param body body AssetRequest true "Asset"
// @Success 201 {object} AssetResponse
// @Failure 400 {object} ProblemDetails
// @Security BearerAuth
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	asset, err := h.assetService.CreateAsset(ownerID, input)
	if err != nil {
		return respondServiceError(c, err, "create asset")
	}
	return c.JSON(http.StatusCreated, toAssetResponse(asset))
}

// ListAssets handles GET /api/v1/assets?isAsset=
// @Summary List assets and liabilities
// @Tags assets
// @Produce json
// @Param isAsset query bool false "true for assets only, false for liabilities only"
// @Success 200 {object} AssetListResponse
// @Security BearerAuth
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	var isAsset *bool
	if param := c.QueryParam("isAsset"); param != "" {
		v := param == "true"
		isAsset = &v
	}

	assets, err := h.assetService.ListAssets(ownerID, isAsset)
	if err != nil {
		return respondServiceError(c, err, "list assets")
	}

	response := make([]AssetResponse, len(assets))
	for i, a := range assets {
		response[i] = toAssetResponse(a)
	}
	return c.JSON(http.StatusOK, AssetListResponse{Data: response})
}

// GetSummary handles GET /api/v1/assets/summary
// @Summary Total assets, total liabilities and net worth
// @Tags assets
// @Produce json
// @Success 200 {object} AssetSummaryResponse
// @Security BearerAuth
// @Router /assets/summary [get]
func (h *AssetHandler) GetSummary(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	summary, err := h.assetService.Summary(ownerID)
	if err != nil {
		return respondServiceError(c, err, "summarize assets")
	}
	return c.JSON(http.StatusOK, AssetSummaryResponse{
		TotalAssets:      formatAmount(summary.TotalAssets),
		TotalLiabilities: formatAmount(summary.TotalLiabilities),
		NetWorth:         formatAmount(summary.NetWorth),
	})
}

// GetAsset handles GET /api/v1/assets/:id
// @Summary Get an asset
// @Tags assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} AssetResponse
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /assets/{id} [get]
func (h *AssetHandler) GetAsset(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid asset ID", nil)
	}

	asset, err := h.assetService.GetAsset(ownerID, id)
	if err != nil {
		return respondServiceError(c, err, "get asset")
	}
	return c.JSON(http.StatusOK, toAssetResponse(asset))
}

// UpdateAsset handles PUT /api/v1/assets/:id
// @Summary Replace an asset
// @Tags assets
// @Accept json
// @Produce json
// @Param id path int true "Asset ID"
// @Param body body AssetRequest true "Asset"
// @Success 200 {object} AssetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid asset ID", nil)
	}

	input, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	asset, err := h.assetService.UpdateAsset(ownerID, id, input)
	if err != nil {
		return respondServiceError(c, err, "update asset")
	}
	return c.JSON(http.StatusOK, toAssetResponse(asset))
}

// DeleteAsset handles DELETE /api/v1/assets/:id
// @Summary Delete an asset
// @Tags assets
// @Param id path int true "Asset ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Owner required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid asset ID", nil)
	}

	if err := h.assetService.DeleteAsset(ownerID, id); err != nil {
		return respondServiceError(c, err, "delete asset")
	}
	return c.NoContent(http.StatusNoContent)
}
