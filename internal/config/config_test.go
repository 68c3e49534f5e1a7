package config_test

import (
	"os"
	"testing"

	"github.com/KirkDiggler/charsheet/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "CHARSHEET_DIR", "CHARSHEET_LOG_LEVEL", "CHARSHEET_LOG_FORMAT")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CHARSHEET_DIR", "/srv/party")
	t.Setenv("CHARSHEET_LOG_LEVEL", "debug")
	t.Setenv("CHARSHEET_LOG_FORMAT", "json")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "/srv/party", cfg.Dir)

	logger := cfg.Log.NewLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{name: "bad level", level: "loud", format: "text"},
		{name: "bad format", level: "info", format: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetenv(t, "CHARSHEET_DIR")
			t.Setenv("CHARSHEET_LOG_LEVEL", tt.level)
			t.Setenv("CHARSHEET_LOG_FORMAT", tt.format)

			_, err := config.Load()

			assert.Error(t, err)
		})
	}
}

// unsetenv clears variables for the duration of the test
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
