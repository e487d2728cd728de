package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const assetColumns = `id, owner_id, name, type, value, is_asset, description, created_at, updated_at`

// AssetRepository implements domain.AssetRepository using PostgreSQL
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

// Create inserts a new asset or liability
func (r *AssetRepository) Create(asset *domain.Asset) (*domain.Asset, error) {
	value, err := decimalToPgNumeric(asset.Value)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO assets (owner_id, name, type, value, is_asset, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+assetColumns,
		asset.OwnerID, asset.Name, string(asset.Type), value, asset.IsAsset, stringPtrToPgText(asset.Description))
	return scanAsset(row)
}

// GetByID retrieves an asset owned by ownerID
func (r *AssetRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.Asset, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+assetColumns+` FROM assets WHERE owner_id = $1 AND id = $2`, ownerID, id)
	asset, err := scanAsset(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// ListByOwner returns holdings ordered by name, optionally only assets or only liabilities
func (r *AssetRepository) ListByOwner(ownerID uuid.UUID, isAsset *bool) ([]*domain.Asset, error) {
	var class pgtype.Bool
	if isAsset != nil {
		class = pgtype.Bool{Bool: *isAsset, Valid: true}
	}

	rows, err := r.pool.Query(context.Background(), `
		SELECT `+assetColumns+`
		FROM assets
		WHERE owner_id = $1 AND ($2::boolean IS NULL OR is_asset = $2)
		ORDER BY name, id`,
		ownerID, class)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []*domain.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// Update replaces an asset's fields
func (r *AssetRepository) Update(asset *domain.Asset) (*domain.Asset, error) {
	value, err := decimalToPgNumeric(asset.Value)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE assets
		SET name = $3, type = $4, value = $5, is_asset = $6, description = $7, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+assetColumns,
		asset.OwnerID, asset.ID, asset.Name, string(asset.Type), value, asset.IsAsset,
		stringPtrToPgText(asset.Description))
	updated, err := scanAsset(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an asset
func (r *AssetRepository) Delete(ownerID uuid.UUID, id int64) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM assets WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// Totals sums asset and liability values in one pass
func (r *AssetRepository) Totals(ownerID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var assets, liabilities pgtype.Numeric
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(value) FILTER (WHERE is_asset), 0),
		       COALESCE(SUM(value) FILTER (WHERE NOT is_asset), 0)
		FROM assets
		WHERE owner_id = $1`,
		ownerID).Scan(&assets, &liabilities)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return pgNumericToDecimal(assets), pgNumericToDecimal(liabilities), nil
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		asset       domain.Asset
		assetType   string
		value       pgtype.Numeric
		description pgtype.Text
	)
	err := row.Scan(&asset.ID, &asset.OwnerID, &asset.Name, &assetType, &value, &asset.IsAsset,
		&description, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return nil, err
	}
	asset.Type = domain.AssetType(assetType)
	asset.Value = pgNumericToDecimal(value)
	asset.Description = pgTextToStringPtr(description)
	return &asset, nil
}
