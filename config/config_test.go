package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROJECT_ID", "test-project")

	cfg := Load()

	assert.Equal(t, "test-project", cfg.ProjectID)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 10, cfg.DefaultTopK)
	assert.Equal(t, 0.3, cfg.DefaultMinScore)
	assert.Equal(t, 100, cfg.MaxBulkIngest)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROJECT_ID", "test-project")
	t.Setenv("DEFAULT_TOP_K", "25")
	t.Setenv("DEFAULT_MIN_SCORE", "0.5")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	assert.Equal(t, 25, cfg.DefaultTopK)
	assert.Equal(t, 0.5, cfg.DefaultMinScore)
	assert.True(t, cfg.Debug)
}

func TestValidateRequiresProjectID(t *testing.T) {
	cfg := &Config{DefaultTopK: 10, DefaultMinScore: 0.3}

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "PROJECT_ID", cfgErr.Field)
}

func TestValidateRejectsBadRankingDefaults(t *testing.T) {
	cfg := &Config{ProjectID: "p", DefaultTopK: 0, DefaultMinScore: 0.3}
	require.Error(t, cfg.Validate())

	cfg = &Config{ProjectID: "p", DefaultTopK: 10, DefaultMinScore: 1.5}
	require.Error(t, cfg.Validate())
}
