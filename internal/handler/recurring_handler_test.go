package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRecurringHandler() (*RecurringHandler, *testutil.MockRecurringRepository, *domain.Owner) {
	recurringRepo := testutil.NewMockRecurringRepository()
	owner := testutil.NewMockOwnerRepository().NewOwner()
	return NewRecurringHandler(service.NewRecurringService(recurringRepo)), recurringRepo, owner
}

func createRule(t *testing.T, h *RecurringHandler, owner *domain.Owner, body string) RecurringResponse {
	t.Helper()
	c, rec := newOwnerContext(http.MethodPost, "/api/v1/recurring", body, owner)
	require.NoError(t, h.CreateRecurring(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var response RecurringResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestRecurringHandler_CreateRecurring_Defaults(t *testing.T) {
	h, _, owner := setupRecurringHandler()

	rule := createRule(t, h, owner, `{"kind":"expense","name":"Rent","amount":"1200","category":"housing","dayOfMonth":1,"startDate":"2024-01-01"}`)

	assert.Equal(t, "monthly", rule.Frequency)
	assert.True(t, rule.IsActive)
	assert.Equal(t, "1200.00", rule.Amount)
	assert.Nil(t, rule.EndDate)
}

func TestRecurringHandler_CreateRecurring_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"weekly frequency", `{"kind":"expense","name":"Gym","amount":"10","category":"health","frequency":"weekly","dayOfMonth":1,"startDate":"2024-01-01"}`, "frequency"},
		{"day out of range", `{"kind":"expense","name":"Gym","amount":"10","category":"health","dayOfMonth":32,"startDate":"2024-01-01"}`, "dayOfMonth"},
		{"end before start", `{"kind":"expense","name":"Gym","amount":"10","category":"health","dayOfMonth":1,"startDate":"2024-06-01","endDate":"2024-01-01"}`, "endDate"},
		{"unparseable end", `{"kind":"expense","name":"Gym","amount":"10","category":"health","dayOfMonth":1,"startDate":"2024-06-01","endDate":"soon"}`, "endDate"},
		{"bad amount", `{"kind":"expense","name":"Gym","amount":"ten","category":"health","dayOfMonth":1,"startDate":"2024-06-01"}`, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, recurringRepo, owner := setupRecurringHandler()
			c, rec := newOwnerContext(http.MethodPost, "/api/v1/recurring", tt.body, owner)

			require.NoError(t, h.CreateRecurring(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			problem := decodeProblem(t, rec)
			require.Len(t, problem.Errors, 1)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Empty(t, recurringRepo.Rules)
		})
	}
}

func TestRecurringHandler_ListRecurring_ActiveFilter(t *testing.T) {
	h, _, owner := setupRecurringHandler()
	createRule(t, h, owner, `{"kind":"expense","name":"Rent","amount":"1200","category":"housing","dayOfMonth":1,"startDate":"2024-01-01"}`)
	createRule(t, h, owner, `{"kind":"expense","name":"Old gym","amount":"30","category":"health","dayOfMonth":5,"startDate":"2023-01-01","isActive":false}`)

	c, rec := newOwnerContext(http.MethodGet, "/api/v1/recurring?active=true", "", owner)
	require.NoError(t, h.ListRecurring(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response RecurringListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "Rent", response.Data[0].Name)

	c, rec = newOwnerContext(http.MethodGet, "/api/v1/recurring", "", owner)
	require.NoError(t, h.ListRecurring(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)
}

func TestRecurringHandler_UpdateAndDelete(t *testing.T) {
	h, _, owner := setupRecurringHandler()
	rule := createRule(t, h, owner, `{"kind":"income","name":"Salary","amount":"3000","category":"salary","dayOfMonth":25,"startDate":"2024-01-01"}`)
	id := strconv.FormatInt(rule.ID, 10)

	body := `{"kind":"income","name":"Salary","amount":"3200","category":"salary","dayOfMonth":28,"startDate":"2024-01-01","endDate":"2024-12-31"}`
	c, rec := newOwnerContext(http.MethodPut, "/api/v1/recurring/"+id, body, owner)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.UpdateRecurring(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated RecurringResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "3200.00", updated.Amount)
	assert.Equal(t, 28, updated.DayOfMonth)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2024-12-31", *updated.EndDate)

	c, rec = newOwnerContext(http.MethodDelete, "/api/v1/recurring/"+id, "", owner)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.DeleteRecurring(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newOwnerContext(http.MethodGet, "/api/v1/recurring/"+id, "", owner)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.GetRecurring(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecurringHandler_GetInstances(t *testing.T) {
	h, _, owner := setupRecurringHandler()
	createRule(t, h, owner, `{"kind":"expense","name":"Card bill","amount":"250.75","category":"credit","dayOfMonth":31,"startDate":"2024-01-01"}`)
	createRule(t, h, owner, `{"kind":"expense","name":"Paused","amount":"5","category":"misc","dayOfMonth":3,"startDate":"2024-01-01","isActive":false}`)
	createRule(t, h, owner, `{"kind":"income","name":"Bonus","amount":"500","category":"salary","dayOfMonth":15,"startDate":"2024-06-01"}`)

	c, rec := newOwnerContext(http.MethodGet, "/api/v1/recurring/instances/2024/2", "", owner)
	c.SetParamNames("year", "month")
	c.SetParamValues("2024", "2")
	require.NoError(t, h.GetInstances(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response InstanceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2024, response.Year)
	assert.Equal(t, 2, response.Month)
	require.Len(t, response.Data, 1)
	assert.Equal(t, "Card bill", response.Data[0].Name)
	assert.Equal(t, "2024-02-29", response.Data[0].Date)
	assert.Equal(t, "250.75", response.Data[0].Amount)
	assert.True(t, response.Data[0].IsRecurring)
}

func TestRecurringHandler_GetInstances_InvalidPeriod(t *testing.T) {
	h, _, owner := setupRecurringHandler()

	tests := []struct {
		name        string
		year, month string
	}{
		{"month 13", "2024", "13"},
		{"month 0", "2024", "0"},
		{"non-numeric", "2024", "feb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newOwnerContext(http.MethodGet, "/api/v1/recurring/instances", "", owner)
			c.SetParamNames("year", "month")
			c.SetParamValues(tt.year, tt.month)
			require.NoError(t, h.GetInstances(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
