package service

import (
	"strings"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/util"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxBreakdownLength bounds the free-text asset/liability breakdowns
const maxBreakdownLength = 4000

// NetWorthService records point-in-time net worth snapshots
type NetWorthService struct {
	netWorthRepo   domain.NetWorthRepository
	assetRepo      domain.AssetRepository
	eventPublisher websocket.EventPublisher
}

// NewNetWorthService creates a new NetWorthService. Totals missing from a snapshot
// are taken from the owner's current holdings in assetRepo.
func NewNetWorthService(netWorthRepo domain.NetWorthRepository, assetRepo domain.AssetRepository) *NetWorthService {
	return &NetWorthService{netWorthRepo: netWorthRepo, assetRepo: assetRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *NetWorthService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *NetWorthService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// SnapshotInput holds the fields for creating or replacing a snapshot.
// A nil total defaults to the sum of the owner's recorded assets or liabilities.
type SnapshotInput struct {
	TotalAssets          *decimal.Decimal
	TotalLiabilities     *decimal.Decimal
	RecordDate           *time.Time
	AssetsBreakdown      *string
	LiabilitiesBreakdown *string
}

// withHoldingTotals fills nil totals from the asset summary
func (s *NetWorthService) withHoldingTotals(ownerID uuid.UUID, input SnapshotInput) (SnapshotInput, error) {
	if input.TotalAssets != nil && input.TotalLiabilities != nil {
		return input, nil
	}
	assets, liabilities := decimal.Zero, decimal.Zero
	if s.assetRepo != nil {
		var err error
		if assets, liabilities, err = s.assetRepo.Totals(ownerID); err != nil {
			return input, err
		}
	}
	if input.TotalAssets == nil {
		input.TotalAssets = &assets
	}
	if input.TotalLiabilities == nil {
		input.TotalLiabilities = &liabilities
	}
	return input, nil
}

func validateSnapshotInput(input SnapshotInput) (*domain.NetWorthSnapshot, error) {
	totalAssets, totalLiabilities := decimal.Zero, decimal.Zero
	if input.TotalAssets != nil {
		totalAssets = *input.TotalAssets
	}
	if input.TotalLiabilities != nil {
		totalLiabilities = *input.TotalLiabilities
	}
	for _, amount := range []decimal.Decimal{totalAssets, totalLiabilities} {
		if amount.IsNegative() {
			return nil, domain.ErrNegativeAmount
		}
		if err := domain.ValidateMoney(amount); err != nil {
			return nil, err
		}
	}

	recordDate := time.Now().UTC()
	if input.RecordDate != nil && !input.RecordDate.IsZero() {
		recordDate = *input.RecordDate
	}

	assets, err := trimBreakdown(input.AssetsBreakdown)
	if err != nil {
		return nil, err
	}
	liabilities, err := trimBreakdown(input.LiabilitiesBreakdown)
	if err != nil {
		return nil, err
	}

	return &domain.NetWorthSnapshot{
		TotalAssets:          totalAssets,
		TotalLiabilities:     totalLiabilities,
		NetWorth:             totalAssets.Sub(totalLiabilities),
		RecordDate:           util.DateOnly(recordDate),
		AssetsBreakdown:      assets,
		LiabilitiesBreakdown: liabilities,
	}, nil
}

func trimBreakdown(text *string) (*string, error) {
	if text == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > maxBreakdownLength {
		return nil, domain.ErrDescriptionTooLong
	}
	return &trimmed, nil
}

// CreateSnapshot records a new snapshot. Net worth is always assets minus liabilities.
func (s *NetWorthService) CreateSnapshot(ownerID uuid.UUID, input SnapshotInput) (*domain.NetWorthSnapshot, error) {
	input, err := s.withHoldingTotals(ownerID, input)
	if err != nil {
		return nil, err
	}
	snapshot, err := validateSnapshotInput(input)
	if err != nil {
		return nil, err
	}
	snapshot.OwnerID = ownerID

	created, err := s.netWorthRepo.Create(snapshot)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.NetWorthCreated(created))
	return created, nil
}

// GetSnapshot retrieves one snapshot
func (s *NetWorthService) GetSnapshot(ownerID uuid.UUID, id int64) (*domain.NetWorthSnapshot, error) {
	return s.netWorthRepo.GetByID(ownerID, id)
}

// ListSnapshots returns snapshots, most recent first
func (s *NetWorthService) ListSnapshots(ownerID uuid.UUID) ([]*domain.NetWorthSnapshot, error) {
	return s.netWorthRepo.ListByOwner(ownerID)
}

// UpdateSnapshot replaces a snapshot's figures
func (s *NetWorthService) UpdateSnapshot(ownerID uuid.UUID, id int64, input SnapshotInput) (*domain.NetWorthSnapshot, error) {
	if _, err := s.netWorthRepo.GetByID(ownerID, id); err != nil {
		return nil, err
	}
	input, err := s.withHoldingTotals(ownerID, input)
	if err != nil {
		return nil, err
	}
	snapshot, err := validateSnapshotInput(input)
	if err != nil {
		return nil, err
	}

	snapshot.ID = id
	snapshot.OwnerID = ownerID
	updated, err := s.netWorthRepo.Update(snapshot)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.NetWorthUpdated(updated))
	return updated, nil
}

// DeleteSnapshot removes a snapshot
func (s *NetWorthService) DeleteSnapshot(ownerID uuid.UUID, id int64) error {
	if err := s.netWorthRepo.Delete(ownerID, id); err != nil {
		return err
	}
	s.publishEvent(ownerID, websocket.NetWorthDeleted(map[string]interface{}{"id": id}))
	return nil
}
