package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType classifies a holding
type AssetType string

const (
	AssetTypeCar        AssetType = "car"
	AssetTypeProperty   AssetType = "property"
	AssetTypeSavings    AssetType = "savings"
	AssetTypeInvestment AssetType = "investment"
	AssetTypeOther      AssetType = "other"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeCar, AssetTypeProperty, AssetTypeSavings, AssetTypeInvestment, AssetTypeOther:
		return true
	}
	return false
}

// Asset is something the owner holds (IsAsset) or owes (a liability)
type Asset struct {
	ID          int64           `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Name        string          `json:"name"`
	Type        AssetType       `json:"type"`
	Value       decimal.Decimal `json:"value"`
	IsAsset     bool            `json:"isAsset"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AssetSummary holds the owner's current totals. NetWorth = TotalAssets - TotalLiabilities.
type AssetSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

// NewAssetSummary derives net worth from the two totals
func NewAssetSummary(assets, liabilities decimal.Decimal) AssetSummary {
	return AssetSummary{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets.Sub(liabilities),
	}
}

type AssetRepository interface {
	Create(asset *Asset) (*Asset, error)
	GetByID(ownerID uuid.UUID, id int64) (*Asset, error)
	// ListByOwner filters on IsAsset when isAsset is set, ordered by name
	ListByOwner(ownerID uuid.UUID, isAsset *bool) ([]*Asset, error)
	Update(asset *Asset) (*Asset, error)
	Delete(ownerID uuid.UUID, id int64) error
	// Totals sums asset and liability values; both are zero when nothing is held
	Totals(ownerID uuid.UUID) (assets, liabilities decimal.Decimal, err error)
}
