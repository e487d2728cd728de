package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const netWorthColumns = `id, owner_id, total_assets, total_liabilities, net_worth, record_date,
	assets_breakdown, liabilities_breakdown, created_at, updated_at`

// NetWorthRepository implements domain.NetWorthRepository using PostgreSQL
type NetWorthRepository struct {
	pool *pgxpool.Pool
}

// NewNetWorthRepository creates a new NetWorthRepository
func NewNetWorthRepository(pool *pgxpool.Pool) *NetWorthRepository {
	return &NetWorthRepository{pool: pool}
}

// Create inserts a new snapshot
func (r *NetWorthRepository) Create(snapshot *domain.NetWorthSnapshot) (*domain.NetWorthSnapshot, error) {
	assets, liabilities, netWorth, err := netWorthNumerics(snapshot)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO net_worth_snapshots (owner_id, total_assets, total_liabilities, net_worth, record_date,
			assets_breakdown, liabilities_breakdown)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+netWorthColumns,
		snapshot.OwnerID, assets, liabilities, netWorth, timeToPgDate(snapshot.RecordDate),
		stringPtrToPgText(snapshot.AssetsBreakdown), stringPtrToPgText(snapshot.LiabilitiesBreakdown))
	return scanNetWorthSnapshot(row)
}

// GetByID retrieves a snapshot owned by ownerID
func (r *NetWorthRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.NetWorthSnapshot, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+netWorthColumns+` FROM net_worth_snapshots WHERE owner_id = $1 AND id = $2`, ownerID, id)
	snapshot, err := scanNetWorthSnapshot(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNetWorthNotFound
		}
		return nil, err
	}
	return snapshot, nil
}

// ListByOwner returns snapshots, most recent record date first
func (r *NetWorthRepository) ListByOwner(ownerID uuid.UUID) ([]*domain.NetWorthSnapshot, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+netWorthColumns+`
		FROM net_worth_snapshots
		WHERE owner_id = $1
		ORDER BY record_date DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []*domain.NetWorthSnapshot{}
	for rows.Next() {
		snapshot, err := scanNetWorthSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// Update replaces a snapshot's figures
func (r *NetWorthRepository) Update(snapshot *domain.NetWorthSnapshot) (*domain.NetWorthSnapshot, error) {
	assets, liabilities, netWorth, err := netWorthNumerics(snapshot)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE net_worth_snapshots
		SET total_assets = $3, total_liabilities = $4, net_worth = $5, record_date = $6,
		    assets_breakdown = $7, liabilities_breakdown = $8, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+netWorthColumns,
		snapshot.OwnerID, snapshot.ID, assets, liabilities, netWorth, timeToPgDate(snapshot.RecordDate),
		stringPtrToPgText(snapshot.AssetsBreakdown), stringPtrToPgText(snapshot.LiabilitiesBreakdown))
	updated, err := scanNetWorthSnapshot(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNetWorthNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a snapshot
func (r *NetWorthRepository) Delete(ownerID uuid.UUID, id int64) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM net_worth_snapshots WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNetWorthNotFound
	}
	return nil
}

func netWorthNumerics(s *domain.NetWorthSnapshot) (assets, liabilities, netWorth pgtype.Numeric, err error) {
	if assets, err = decimalToPgNumeric(s.TotalAssets); err != nil {
		return
	}
	if liabilities, err = decimalToPgNumeric(s.TotalLiabilities); err != nil {
		return
	}
	netWorth, err = decimalToPgNumeric(s.NetWorth)
	return
}

func scanNetWorthSnapshot(row rowScanner) (*domain.NetWorthSnapshot, error) {
	var (
		s                             domain.NetWorthSnapshot
		assets, liabilities, netWorth pgtype.Numeric
		recordDate                    pgtype.Date
		assetsText, liabilitiesText   pgtype.Text
	)
	err := row.Scan(&s.ID, &s.OwnerID, &assets, &liabilities, &netWorth, &recordDate,
		&assetsText, &liabilitiesText, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.TotalAssets = pgNumericToDecimal(assets)
	s.TotalLiabilities = pgNumericToDecimal(liabilities)
	s.NetWorth = pgNumericToDecimal(netWorth)
	s.RecordDate = pgDateToTime(recordDate)
	s.AssetsBreakdown = pgTextToStringPtr(assetsText)
	s.LiabilitiesBreakdown = pgTextToStringPtr(liabilitiesText)
	return &s, nil
}
