package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateExportPath(t *testing.T) {
	owner := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	p := GenerateExportPath(owner, "balances", at, "csv")

	assert.True(t, strings.HasPrefix(p, "exports/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/balances/20240305-140709_"), p)
	assert.True(t, strings.HasSuffix(p, ".csv"), p)
	assert.NotEqual(t, p, GenerateExportPath(owner, "balances", at, "csv"))
}
