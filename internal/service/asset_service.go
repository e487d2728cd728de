package service

import (
	"strings"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetService tracks what the owner holds and owes
type AssetService struct {
	assetRepo      domain.AssetRepository
	eventPublisher websocket.EventPublisher
}

// NewAssetService creates a new AssetService
func NewAssetService(assetRepo domain.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *AssetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AssetService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// AssetInput holds the fields for creating or replacing an asset
type AssetInput struct {
	Name        string
	Type        domain.AssetType
	Value       decimal.Decimal
	IsAsset     *bool
	Description *string
}

func validateAssetInput(input AssetInput) (*domain.Asset, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	assetType := domain.AssetType(strings.ToLower(strings.TrimSpace(string(input.Type))))
	if !assetType.Valid() {
		return nil, domain.ErrInvalidAssetType
	}

	if err := domain.ValidatePositiveAmount(input.Value); err != nil {
		return nil, err
	}

	if input.IsAsset == nil {
		return nil, domain.ErrAssetClassRequired
	}

	description, err := trimDescription(input.Description)
	if err != nil {
		return nil, err
	}

	return &domain.Asset{
		Name:        name,
		Type:        assetType,
		Value:       input.Value,
		IsAsset:     *input.IsAsset,
		Description: description,
	}, nil
}

// CreateAsset validates and stores a new asset or liability
func (s *AssetService) CreateAsset(ownerID uuid.UUID, input AssetInput) (*domain.Asset, error) {
	asset, err := validateAssetInput(input)
	if err != nil {
		return nil, err
	}
	asset.OwnerID = ownerID

	created, err := s.assetRepo.Create(asset)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.AssetCreated(created))
	return created, nil
}

// GetAsset retrieves one asset
func (s *AssetService) GetAsset(ownerID uuid.UUID, id int64) (*domain.Asset, error) {
	return s.assetRepo.GetByID(ownerID, id)
}

// ListAssets returns holdings, optionally only assets or only liabilities
func (s *AssetService) ListAssets(ownerID uuid.UUID, isAsset *bool) ([]*domain.Asset, error) {
	return s.assetRepo.ListByOwner(ownerID, isAsset)
}

// UpdateAsset replaces an asset's fields
func (s *AssetService) UpdateAsset(ownerID uuid.UUID, id int64, input AssetInput) (*domain.Asset, error) {
	asset, err := validateAssetInput(input)
	if err != nil {
		return nil, err
	}
	asset.ID = id
	asset.OwnerID = ownerID

	updated, err := s.assetRepo.Update(asset)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.AssetUpdated(updated))
	return updated, nil
}

// DeleteAsset removes an asset
func (s *AssetService) DeleteAsset(ownerID uuid.UUID, id int64) error {
	if err := s.assetRepo.Delete(ownerID, id); err != nil {
		return err
	}
	s.publishEvent(ownerID, websocket.AssetDeleted(map[string]interface{}{"id": id}))
	return nil
}

// Summary totals current holdings and derives net worth from them
func (s *AssetService) Summary(ownerID uuid.UUID) (domain.AssetSummary, error) {
	assets, liabilities, err := s.assetRepo.Totals(ownerID)
	if err != nil {
		return domain.AssetSummary{}, err
	}
	return domain.NewAssetSummary(assets, liabilities), nil
}
