package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "EMAIL_TEST_MODE", "TEAM_SYNC_SCHEDULE", "CASE_NUMBER_PREFIX", "API_RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.True(t, cfg.EmailTestMode)
	assert.Equal(t, "0 2 * * *", cfg.TeamSyncSchedule)
	assert.Equal(t, "CASE", cfg.CaseNumberPrefix)
	assert.Equal(t, 300, cfg.APIRateLimit)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("EMAIL_TEST_MODE", "off")
	t.Setenv("API_RATE_LIMIT", "not-a-number")

	cfg := Load()
	assert.Equal(t, "0.0.0.0:9000", cfg.Address())
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.EmailTestMode)
	assert.Equal(t, 300, cfg.APIRateLimit)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"off", false},
		{"0", false},
		{"maybe", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Setenv("CASE_TEAM_FLAG", tt.value)
		assert.Equal(t, tt.want, getEnvBool("CASE_TEAM_FLAG", true), "value %q", tt.value)
	}
}
