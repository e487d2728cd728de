package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExportStore struct {
	uploads     map[string][]byte
	contentType string
	uploadErr   error
}

func newFakeExportStore() *fakeExportStore {
	return &fakeExportStore{uploads: make(map[string][]byte)}
}

func (f *fakeExportStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[objectPath] = data
	f.contentType = contentType
	return nil
}

func (f *fakeExportStore) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://exports.example.com/" + objectPath + "?expires=" + expiry.String(), nil
}

func addBalance(repo *testutil.MockPeriodBalanceRepository, owner uuid.UUID, year, month int, opening, income, expense string) {
	o, i, e := d(opening), d(income), d(expense)
	repo.AddBalance(&domain.PeriodBalance{
		OwnerID:        owner,
		Year:           year,
		Month:          month,
		OpeningBalance: o,
		TotalIncome:    i,
		TotalExpense:   e,
		ClosingBalance: o.Add(i).Sub(e),
		UpdatedAt:      time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestRenderBalancesCSV_OldestFirst(t *testing.T) {
	owner := uuid.New()
	repo := testutil.NewMockPeriodBalanceRepository()
	addBalance(repo, owner, 2024, 1, "0", "100", "0")
	addBalance(repo, owner, 2024, 2, "100", "50", "20.5")

	balances, err := repo.ListByOwner(owner)
	require.NoError(t, err)

	data, err := RenderBalancesCSV(balances)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "year,month,opening_balance,total_income,total_expense,closing_balance,updated_at", lines[0])
	assert.Equal(t, "2024,01,0.00,100.00,0.00,100.00,2024-04-01T12:00:00Z", lines[1])
	assert.Equal(t, "2024,02,100.00,50.00,20.50,129.50,2024-04-01T12:00:00Z", lines[2])
}

func TestExportBalances_Uploads(t *testing.T) {
	owner := uuid.New()
	repo := testutil.NewMockPeriodBalanceRepository()
	addBalance(repo, owner, 2024, 1, "0", "100", "0")
	store := newFakeExportStore()
	pub := &recordingPublisher{}

	svc := NewExportService(repo, store, 10*time.Minute)
	svc.SetEventPublisher(pub)
	fixed := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result, err := svc.ExportBalances(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rows)
	assert.True(t, strings.HasPrefix(result.ObjectKey, "exports/"+owner.String()+"/balances/20240502-083000_"))
	assert.True(t, strings.HasSuffix(result.ObjectKey, ".csv"))
	assert.Contains(t, result.URL, result.ObjectKey)
	assert.Equal(t, fixed.Add(10*time.Minute), result.ExpiresAt)
	assert.Equal(t, "text/csv", store.contentType)
	assert.Contains(t, string(store.uploads[result.ObjectKey]), "2024,01,0.00,100.00")
	assert.Equal(t, []string{"balance.exported"}, pub.types())
}

func TestExportBalances_NotConfigured(t *testing.T) {
	svc := NewExportService(testutil.NewMockPeriodBalanceRepository(), nil, 0)

	assert.False(t, svc.IsEnabled())
	_, err := svc.ExportBalances(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrExportStorageNotConfigured)
}

func TestExportBalances_UploadError(t *testing.T) {
	store := newFakeExportStore()
	store.uploadErr = errors.New("bucket missing")
	svc := NewExportService(testutil.NewMockPeriodBalanceRepository(), store, 0)

	_, err := svc.ExportBalances(context.Background(), uuid.New())
	assert.EqualError(t, err, "bucket missing")
}
