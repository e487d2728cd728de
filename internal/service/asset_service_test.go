package service

import (
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAssetInput() AssetInput {
	return AssetInput{
		Name:    "Brokerage",
		Type:    domain.AssetTypeInvestment,
		Value:   d("15000.25"),
		IsAsset: ptr(true),
	}
}

func TestCreateAsset_Success(t *testing.T) {
	repo := testutil.NewMockAssetRepository()
	svc := NewAssetService(repo)
	pub := &recordingPublisher{}
	svc.SetEventPublisher(pub)
	owner := uuid.New()

	input := validAssetInput()
	input.Type = " Investment "
	input.Description = ptr("  index funds ")
	asset, err := svc.CreateAsset(owner, input)
	require.NoError(t, err)

	assert.Equal(t, owner, asset.OwnerID)
	assert.Equal(t, domain.AssetTypeInvestment, asset.Type)
	assert.True(t, asset.IsAsset)
	assert.Equal(t, "index funds", *asset.Description)
	assert.Equal(t, []string{"asset.created"}, pub.types())
}

func TestCreateAsset_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AssetInput)
		want   error
	}{
		{"missing name", func(in *AssetInput) { in.Name = " " }, domain.ErrNameRequired},
		{"unknown type", func(in *AssetInput) { in.Type = "boat" }, domain.ErrInvalidAssetType},
		{"zero value", func(in *AssetInput) { in.Value = d("0") }, domain.ErrInvalidAmount},
		{"sub-cent value", func(in *AssetInput) { in.Value = d("1.999") }, domain.ErrInvalidAmountPrecision},
		{"value too large", func(in *AssetInput) { in.Value = d("1000000000000") }, domain.ErrAmountOutOfRange},
		{"missing class", func(in *AssetInput) { in.IsAsset = nil }, domain.ErrAssetClassRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockAssetRepository()
			svc := NewAssetService(repo)
			input := validAssetInput()
			tt.mutate(&input)

			_, err := svc.CreateAsset(uuid.New(), input)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, repo.Assets)
		})
	}
}

func TestListAssets_FiltersByClass(t *testing.T) {
	svc := NewAssetService(testutil.NewMockAssetRepository())
	owner := uuid.New()

	_, err := svc.CreateAsset(owner, validAssetInput())
	require.NoError(t, err)
	loan := validAssetInput()
	loan.Name = "Car loan"
	loan.Type = domain.AssetTypeCar
	loan.IsAsset = ptr(false)
	_, err = svc.CreateAsset(owner, loan)
	require.NoError(t, err)

	all, err := svc.ListAssets(owner, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	liabilities, err := svc.ListAssets(owner, ptr(false))
	require.NoError(t, err)
	require.Len(t, liabilities, 1)
	assert.Equal(t, "Car loan", liabilities[0].Name)
}

func TestAssetSummary(t *testing.T) {
	svc := NewAssetService(testutil.NewMockAssetRepository())
	owner := uuid.New()

	summary, err := svc.Summary(owner)
	require.NoError(t, err)
	assert.True(t, summary.TotalAssets.IsZero())
	assert.True(t, summary.NetWorth.IsZero())

	_, err = svc.CreateAsset(owner, validAssetInput())
	require.NoError(t, err)
	debt := validAssetInput()
	debt.Name = "Student loan"
	debt.Type = domain.AssetTypeOther
	debt.Value = d("20000")
	debt.IsAsset = ptr(false)
	_, err = svc.CreateAsset(owner, debt)
	require.NoError(t, err)

	summary, err = svc.Summary(owner)
	require.NoError(t, err)
	assert.Equal(t, "15000.25", summary.TotalAssets.StringFixed(2))
	assert.Equal(t, "20000.00", summary.TotalLiabilities.StringFixed(2))
	assert.Equal(t, "-4999.75", summary.NetWorth.StringFixed(2))
}

func TestAssetLifecycle(t *testing.T) {
	repo := testutil.NewMockAssetRepository()
	svc := NewAssetService(repo)
	pub := &recordingPublisher{}
	svc.SetEventPublisher(pub)
	owner := uuid.New()

	created, err := svc.CreateAsset(owner, validAssetInput())
	require.NoError(t, err)

	input := validAssetInput()
	input.Value = d("16000")
	updated, err := svc.UpdateAsset(owner, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "16000.00", updated.Value.StringFixed(2))

	_, err = svc.UpdateAsset(uuid.New(), created.ID, input)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)

	require.NoError(t, svc.DeleteAsset(owner, created.ID))
	assert.ErrorIs(t, svc.DeleteAsset(owner, created.ID), domain.ErrNotFound)
	assert.Equal(t, []string{"asset.created", "asset.updated", "asset.deleted"}, pub.types())
}
