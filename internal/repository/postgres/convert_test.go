package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1200.00", "0.1", "-4999.50", "12345678901.23"} {
		t.Run(s, func(t *testing.T) {
			in := decimal.RequireFromString(s)
			num, err := decimalToPgNumeric(in)
			require.NoError(t, err)
			assert.True(t, pgNumericToDecimal(num).Equal(in), "got %s", pgNumericToDecimal(num))
		})
	}
}

func TestPgNumericToDecimal_Null(t *testing.T) {
	assert.True(t, pgNumericToDecimal(pgtype.Numeric{}).IsZero())
}

func TestPgDateToTime_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	got := pgDateToTime(pgtype.Date{Time: time.Date(2024, 2, 29, 0, 0, 0, 0, loc), Valid: true})
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	assert.Nil(t, pgDateToTimePtr(pgtype.Date{}))
	assert.True(t, pgDateToTime(pgtype.Date{}).IsZero())
}

func TestNullableConversions(t *testing.T) {
	assert.False(t, stringPtrToPgText(nil).Valid)
	assert.Nil(t, pgTextToStringPtr(pgtype.Text{}))

	id := int64(42)
	assert.Equal(t, &id, pgInt8ToInt64Ptr(int64PtrToPgInt8(&id)))
	assert.Nil(t, pgInt8ToInt64Ptr(int64PtrToPgInt8(nil)))
	assert.False(t, timePtrToPgDate(nil).Valid)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "000001_init.down.sql", entries[0].Name())
	assert.Equal(t, "000001_init.up.sql", entries[1].Name())
}
