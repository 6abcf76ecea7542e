package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourorg/crossval/internal/server"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := server.LoadConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 3, cfg.DateToleranceDays)
	assert.Equal(t, 0.10, cfg.WeightDiscrepancyThreshold)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 4, cfg.MaxConcurrentAttachments)
	assert.False(t, cfg.DebugCompare)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CROSSVAL_ADDR", ":9090")
	t.Setenv("DATE_TOLERANCE_DAYS", "7")
	t.Setenv("WEIGHT_DISCREPANCY_THRESHOLD", "0.25")
	t.Setenv("CROSSVAL_TZ", "America/Sao_Paulo")
	t.Setenv("CROSSVAL_DEBUG_COMPARE", "true")

	cfg := server.LoadConfig()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 7, cfg.DateToleranceDays)
	assert.Equal(t, 0.25, cfg.WeightDiscrepancyThreshold)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.True(t, cfg.DebugCompare)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DATE_TOLERANCE_DAYS", "soon")
	t.Setenv("WEIGHT_DISCREPANCY_THRESHOLD", "-")
	t.Setenv("CROSSVAL_READ_TIMEOUT", "fast")

	cfg := server.LoadConfig()

	assert.Equal(t, 3, cfg.DateToleranceDays)
	assert.Equal(t, 0.10, cfg.WeightDiscrepancyThreshold)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}
