package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     1,
		"name":   "Salary",
		"amount": "100.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeEntry, payload)
	after := time.Now()

	assert.Equal(t, "entry.created", evt.Type)
	assert.Equal(t, EntityTypeEntry, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_ToJSON(t *testing.T) {
	evt := BalanceRecalculated(map[string]interface{}{
		"year":           float64(2024),
		"month":          float64(2),
		"closingBalance": "130.00",
	})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "balance.recalculated", decoded["type"])
	assert.Equal(t, "balance", decoded["entity"])
	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "130.00", payload["closingBalance"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestEventHelpers(t *testing.T) {
	payload := map[string]interface{}{"id": float64(1)}

	tests := []struct {
		name   string
		evt    Event
		typ    string
		entity EntityType
	}{
		{"EntryCreated", EntryCreated(payload), "entry.created", EntityTypeEntry},
		{"EntryUpdated", EntryUpdated(payload), "entry.updated", EntityTypeEntry},
		{"EntryDeleted", EntryDeleted(payload), "entry.deleted", EntityTypeEntry},
		{"RecurringCreated", RecurringCreated(payload), "recurring.created", EntityTypeRecurring},
		{"RecurringUpdated", RecurringUpdated(payload), "recurring.updated", EntityTypeRecurring},
		{"RecurringDeleted", RecurringDeleted(payload), "recurring.deleted", EntityTypeRecurring},
		{"BalanceRecalculated", BalanceRecalculated(payload), "balance.recalculated", EntityTypeBalance},
		{"BalanceExported", BalanceExported(payload), "balance.exported", EntityTypeBalance},
		{"NetWorthCreated", NetWorthCreated(payload), "net_worth.created", EntityTypeNetWorth},
		{"NetWorthUpdated", NetWorthUpdated(payload), "net_worth.updated", EntityTypeNetWorth},
		{"NetWorthDeleted", NetWorthDeleted(payload), "net_worth.deleted", EntityTypeNetWorth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.evt.Type)
			assert.Equal(t, tt.entity, tt.evt.Entity)
			assert.Equal(t, payload, tt.evt.Payload)
		})
	}
}
