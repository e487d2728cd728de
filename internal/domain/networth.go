package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NetWorthSnapshot records assets and liabilities at a point in time
type NetWorthSnapshot struct {
	ID                   int64           `json:"id"`
	OwnerID              uuid.UUID       `json:"ownerId"`
	TotalAssets          decimal.Decimal `json:"totalAssets"`
	TotalLiabilities     decimal.Decimal `json:"totalLiabilities"`
	NetWorth             decimal.Decimal `json:"netWorth"`
	RecordDate           time.Time       `json:"recordDate"`
	AssetsBreakdown      *string         `json:"assetsBreakdown,omitempty"`
	LiabilitiesBreakdown *string         `json:"liabilitiesBreakdown,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

type NetWorthRepository interface {
	Create(snapshot *NetWorthSnapshot) (*NetWorthSnapshot, error)
	GetByID(ownerID uuid.UUID, id int64) (*NetWorthSnapshot, error)
	// ListByOwner returns snapshots, most recent record date first
	ListByOwner(ownerID uuid.UUID) ([]*NetWorthSnapshot, error)
	Update(snapshot *NetWorthSnapshot) (*NetWorthSnapshot, error)
	Delete(ownerID uuid.UUID, id int64) error
}
