package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEntryHandler() (*EntryHandler, *testutil.MockLedgerRepository, *domain.Owner) {
	ownerRepo := testutil.NewMockOwnerRepository()
	ledgerRepo := testutil.NewMockLedgerRepository()
	return NewEntryHandler(service.NewLedgerService(ledgerRepo, testutil.NewMockRecurringRepository())), ledgerRepo, ownerRepo.NewOwner()
}

func TestEntryHandler_CreateEntry(t *testing.T) {
	h, ledgerRepo, owner := setupEntryHandler()

	body := `{"kind":"expense","name":" Groceries ","amount":"12.5","category":"food","date":"2024-02-10"}`
	c, rec := newOwnerContext(http.MethodPost, "/api/v1/entries", body, owner)

	require.NoError(t, h.CreateEntry(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var response EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Groceries", response.Name)
	assert.Equal(t, "12.50", response.Amount)
	assert.Equal(t, "2024-02-10", response.Date)
	assert.Equal(t, "expense", response.Kind)

	require.Len(t, ledgerRepo.Entries, 1)
	assert.Equal(t, owner.ID, ledgerRepo.Entries[0].OwnerID)
}

func TestEntryHandler_CreateEntry_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed amount", `{"kind":"income","name":"Pay","amount":"abc","category":"salary","date":"2024-02-01"}`, "amount"},
		{"zero amount", `{"kind":"income","name":"Pay","amount":"0","category":"salary","date":"2024-02-01"}`, "amount"},
		{"sub-cent amount", `{"kind":"income","name":"Pay","amount":"0.001","category":"salary","date":"2024-02-01"}`, "amount"},
		{"amount too large", `{"kind":"income","name":"Pay","amount":"1000000000000","category":"salary","date":"2024-02-01"}`, "amount"},
		{"bad date", `{"kind":"income","name":"Pay","amount":"10","category":"salary","date":"02/01/2024"}`, "date"},
		{"missing date", `{"kind":"income","name":"Pay","amount":"10","category":"salary"}`, "date"},
		{"unknown kind", `{"kind":"transfer","name":"Pay","amount":"10","category":"salary","date":"2024-02-01"}`, "kind"},
		{"blank name", `{"kind":"income","name":"  ","amount":"10","category":"salary","date":"2024-02-01"}`, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ledgerRepo, owner := setupEntryHandler()
			c, rec := newOwnerContext(http.MethodPost, "/api/v1/entries", tt.body, owner)

			require.NoError(t, h.CreateEntry(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			problem := decodeProblem(t, rec)
			require.Len(t, problem.Errors, 1)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Empty(t, ledgerRepo.Entries)
		})
	}
}

func TestEntryHandler_CreateEntry_UnknownRule(t *testing.T) {
	h, ledgerRepo, owner := setupEntryHandler()
	body := `{"kind":"expense","name":"Rent","amount":"1200","category":"housing","date":"2024-02-03","recurringRuleId":987654}`
	c, rec := newOwnerContext(http.MethodPost, "/api/v1/entries", body, owner)

	require.NoError(t, h.CreateEntry(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, ledgerRepo.Entries)
}

func TestEntryHandler_ListEntries(t *testing.T) {
	h, ledgerRepo, owner := setupEntryHandler()
	for _, e := range []*domain.LedgerEntry{
		{OwnerID: owner.ID, Kind: domain.EntryKindIncome, Name: "Pay", Amount: decimal.NewFromInt(3000), Category: "salary", EntryDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{OwnerID: owner.ID, Kind: domain.EntryKindExpense, Name: "Rent", Amount: decimal.NewFromInt(1200), Category: "housing", EntryDate: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{OwnerID: owner.ID, Kind: domain.EntryKindExpense, Name: "Rent", Amount: decimal.NewFromInt(1200), Category: "housing", EntryDate: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)},
	} {
		ledgerRepo.AddEntry(e)
	}

	c, rec := newOwnerContext(http.MethodGet, "/api/v1/entries?kind=expense&start=2024-02-01&end=2024-02-29", "", owner)
	require.NoError(t, h.ListEntries(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response EntryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "2024-02-03", response.Data[0].Date)
	assert.Equal(t, "1200.00", response.Data[0].Amount)
}

func TestEntryHandler_ListEntries_BadFilter(t *testing.T) {
	h, _, owner := setupEntryHandler()

	c, rec := newOwnerContext(http.MethodGet, "/api/v1/entries?end=yesterday", "", owner)
	require.NoError(t, h.ListEntries(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "end", decodeProblem(t, rec).Errors[0].Field)
}

func TestEntryHandler_GetUpdateDelete(t *testing.T) {
	h, ledgerRepo, owner := setupEntryHandler()
	ledgerRepo.AddEntry(&domain.LedgerEntry{
		OwnerID: owner.ID, Kind: domain.EntryKindExpense, Name: "Coffee", Amount: decimal.RequireFromString("4.20"),
		Category: "food", EntryDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
	})
	id := ledgerRepo.Entries[0].ID
	idParam := func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(strconv.FormatInt(id, 10))
	}

	c, rec := newOwnerContext(http.MethodGet, "/api/v1/entries/1", "", owner)
	idParam(c)
	require.NoError(t, h.GetEntry(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := `{"kind":"expense","name":"Coffee","amount":"5.10","category":"food","date":"2024-03-01"}`
	c, rec = newOwnerContext(http.MethodPut, "/api/v1/entries/1", body, owner)
	idParam(c)
	require.NoError(t, h.UpdateEntry(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var updated EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "5.10", updated.Amount)
	assert.Equal(t, "2024-03-01", updated.Date)

	c, rec = newOwnerContext(http.MethodDelete, "/api/v1/entries/1", "", owner)
	idParam(c)
	require.NoError(t, h.DeleteEntry(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newOwnerContext(http.MethodGet, "/api/v1/entries/1", "", owner)
	idParam(c)
	require.NoError(t, h.GetEntry(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntryHandler_OtherOwnerCannotSeeEntry(t *testing.T) {
	h, ledgerRepo, owner := setupEntryHandler()
	ledgerRepo.AddEntry(&domain.LedgerEntry{
		OwnerID: owner.ID, Kind: domain.EntryKindIncome, Name: "Pay", Amount: decimal.NewFromInt(10),
		Category: "salary", EntryDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	intruder := testutil.NewMockOwnerRepository().NewOwner()

	c, rec := newOwnerContext(http.MethodDelete, "/api/v1/entries/1", "", intruder)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(ledgerRepo.Entries[0].ID, 10))
	require.NoError(t, h.DeleteEntry(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, ledgerRepo.Entries, 1)
}

func TestEntryHandler_InvalidID(t *testing.T) {
	h, _, owner := setupEntryHandler()

	for _, raw := range []string{"abc", "0", "-3"} {
		c, rec := newOwnerContext(http.MethodGet, "/api/v1/entries/"+raw, "", owner)
		c.SetParamNames("id")
		c.SetParamValues(raw)
		require.NoError(t, h.GetEntry(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}
}

func TestEntryHandler_RequiresOwner(t *testing.T) {
	h, _, _ := setupEntryHandler()

	c, rec := newOwnerContext(http.MethodGet, "/api/v1/entries", "", nil)
	require.NoError(t, h.ListEntries(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
