package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dreamingbumblebee/biopaper-parser/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		require.Equal(t, 120, cfg.OpenAI.Timeout)
		require.Equal(t, 2, cfg.OpenAI.MaxRetries)
		require.Empty(t, cfg.OpenAI.APIKey)
		require.Equal(t, "cost_summary.json", cfg.Output.SummaryPath)
		require.True(t, cfg.History.Enabled)
		require.Equal(t, "requests.db", cfg.History.DBPath)
		require.Equal(t, "logs", cfg.Log.Dir)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("OPENAI_API_KEY", "sk-test-key")
		t.Setenv("OPENAI_BASE_URL", "https://test.openai.com")
		t.Setenv("OPENAI_TIMEOUT", "30")
		t.Setenv("OPENAI_MAX_RETRIES", "5")
		t.Setenv("COST_SUMMARY_PATH", "out/costs.json")
		t.Setenv("HISTORY_ENABLED", "false")
		t.Setenv("HISTORY_DB_PATH", "out/history.db")
		t.Setenv("LOG_DIR", "")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, "sk-test-key", cfg.OpenAI.APIKey)
		require.Equal(t, "https://test.openai.com", cfg.OpenAI.BaseURL)
		require.Equal(t, 30, cfg.OpenAI.Timeout)
		require.Equal(t, 5, cfg.OpenAI.MaxRetries)
		require.Equal(t, "out/costs.json", cfg.Output.SummaryPath)
		require.False(t, cfg.History.Enabled)
		require.Equal(t, "out/history.db", cfg.History.DBPath)
		require.Empty(t, cfg.Log.Dir)
	})
}
