package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/repository/storage"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrExportStorageNotConfigured is returned when no object storage is wired
var ErrExportStorageNotConfigured = errors.New("export storage not configured")

const defaultExportExpiry = 15 * time.Minute

// ExportResult describes an uploaded export
type ExportResult struct {
	ObjectKey string    `json:"objectKey"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExportService renders an owner's balance history as CSV and uploads it
type ExportService struct {
	balanceRepo    domain.PeriodBalanceRepository
	storage        storage.ExportRepository
	expiry         time.Duration
	now            func() time.Time
	eventPublisher websocket.EventPublisher
}

// NewExportService creates a new ExportService. A nil storage disables exports.
func NewExportService(balanceRepo domain.PeriodBalanceRepository, store storage.ExportRepository, expiry time.Duration) *ExportService {
	if expiry <= 0 {
		expiry = defaultExportExpiry
	}
	return &ExportService{
		balanceRepo: balanceRepo,
		storage:     store,
		expiry:      expiry,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ExportService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// IsEnabled indicates whether exports are supported (storage configured)
func (s *ExportService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

var balanceCSVHeader = []string{"year", "month", "opening_balance", "total_income", "total_expense", "closing_balance", "updated_at"}

// RenderBalancesCSV writes balances oldest first with two-decimal amounts
func RenderBalancesCSV(balances []*domain.PeriodBalance) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(balanceCSVHeader); err != nil {
		return nil, err
	}
	for i := len(balances) - 1; i >= 0; i-- {
		b := balances[i]
		record := []string{
			strconv.Itoa(b.Year),
			fmt.Sprintf("%02d", b.Month),
			b.OpeningBalance.StringFixed(2),
			b.TotalIncome.StringFixed(2),
			b.TotalExpense.StringFixed(2),
			b.ClosingBalance.StringFixed(2),
			b.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportBalances uploads the owner's full balance history and returns a presigned link
func (s *ExportService) ExportBalances(ctx context.Context, ownerID uuid.UUID) (*ExportResult, error) {
	if !s.IsEnabled() {
		return nil, ErrExportStorageNotConfigured
	}

	// ListByOwner is newest first; RenderBalancesCSV reverses it
	balances, err := s.balanceRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	data, err := RenderBalancesCSV(balances)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}

	now := s.now()
	key := storage.GenerateExportPath(ownerID, "balances", now, "csv")
	if err := s.storage.Upload(ctx, key, data, "text/csv"); err != nil {
		return nil, err
	}

	url, err := s.storage.GeneratePresignedURL(ctx, key, s.expiry)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		ObjectKey: key,
		URL:       url,
		Rows:      len(balances),
		ExpiresAt: now.Add(s.expiry).UTC(),
	}

	log.Info().
		Str("owner_id", ownerID.String()).
		Str("object_key", key).
		Int("rows", result.Rows).
		Msg("Exported period balances")

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, websocket.BalanceExported(result))
	}
	return result, nil
}
