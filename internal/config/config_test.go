package config_test

import (
	"testing"

	"github.com/straye-as/fieldservice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Field Service API", cfg.App.Name)
	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, ":3000", cfg.App.Addr())
	assert.False(t, cfg.Lifecycle.LinkQuoteOnConvert)
	assert.True(t, cfg.Seed.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"/health", "/metrics"}, cfg.RateLimit.WhitelistPaths)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LIFECYCLE_LINKQUOTEONCONVERT", "true")
	t.Setenv("SEED_ENABLED", "false")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Lifecycle.LinkQuoteOnConvert)
	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_PortAlias(t *testing.T) {
	t.Setenv("PORT", "4100")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.App.Port)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			App:     config.AppConfig{Port: 3000},
			Jobs:    config.JobsConfig{Enabled: true, StatsCron: "*/30 * * * * *"},
			Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "port out of range", mutate: func(c *config.Config) { c.App.Port = 70000 }, wantErr: true},
		{name: "zero port", mutate: func(c *config.Config) { c.App.Port = 0 }, wantErr: true},
		{name: "metrics path without slash", mutate: func(c *config.Config) { c.Metrics.Path = "metrics" }, wantErr: true},
		{name: "bad cron", mutate: func(c *config.Config) { c.Jobs.StatsCron = "every minute" }, wantErr: true},
		{name: "bad cron ignored when jobs disabled", mutate: func(c *config.Config) {
			c.Jobs.Enabled = false
			c.Jobs.StatsCron = "every minute"
		}},
		{name: "descriptor cron", mutate: func(c *config.Config) { c.Jobs.StatsCron = "@every 1m" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
