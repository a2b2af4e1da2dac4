package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE", "")
	cfg := Load()

	assert.Equal(t, DefaultAPIBase, cfg.APIBase)
	assert.Equal(t, "web-app", cfg.ServiceName)
	assert.Equal(t, 30*time.Second, cfg.MatchesCacheTTL)
	assert.False(t, cfg.LotoRequireDistinct)
	assert.True(t, cfg.LotoEnforceRanges)
}

func TestLoad_APIBaseOverride(t *testing.T) {
	t.Setenv("API_BASE", "https://backend.example.com/")
	t.Setenv("LOTO_REQUIRE_DISTINCT", "true")
	t.Setenv("MATCHES_CACHE_TTL", "2m")
	t.Setenv("SUBMIT_BURST", "not-a-number")

	cfg := Load()

	assert.Equal(t, "https://backend.example.com", cfg.APIBase)
	assert.True(t, cfg.LotoRequireDistinct)
	assert.Equal(t, 2*time.Minute, cfg.MatchesCacheTTL)
	assert.Equal(t, 3, cfg.SubmitBurst)
}
