package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 4, cfg.Settings.Concurrency)
	assert.Equal(t, "text", cfg.Settings.ReporterType)
	assert.False(t, cfg.Settings.FailOnDrift)
	require.NotNil(t, cfg.Settings.Reporter.Text)
	require.NotNil(t, cfg.Settings.Reporter.JSON)
	assert.True(t, cfg.Settings.Reporter.JSON.Indent)
	require.NotNil(t, cfg.Source.File)
	assert.Equal(t, ".", cfg.Source.File.BaseDir)

	validate := validator.New(validator.WithRequiredStructEnabled())
	assert.NoError(t, validate.Struct(cfg))
}

func TestConfig_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid device",
			mutate: func(c *Config) { c.Devices = []DeviceConfig{{Name: "r1", NetworkOS: "ios", Running: "r1.cfg", Baseline: "b.cfg"}} },
		},
		{
			name:    "device missing running",
			mutate:  func(c *Config) { c.Devices = []DeviceConfig{{Name: "r1", NetworkOS: "ios", Baseline: "b.cfg"}} },
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Settings.Concurrency = -1 },
			wantErr: true,
		},
		{
			name:    "unknown reporter",
			mutate:  func(c *Config) { c.Settings.ReporterType = "html" },
			wantErr: true,
		},
		{
			name:   "sections for supported tag",
			mutate: func(c *Config) { c.Sections["comware"] = []SectionConfig{{Start: "local-user"}} },
		},
		{
			name:    "sections for unsupported tag",
			mutate:  func(c *Config) { c.Sections["junos"] = []SectionConfig{{Start: "set system"}} },
			wantErr: true,
		},
		{
			name:    "section without start",
			mutate:  func(c *Config) { c.Sections["ios"] = []SectionConfig{{Name: "aaa"}} },
			wantErr: true,
		},
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := validate.Struct(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SectionsByPlatform(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sections = map[string][]SectionConfig{
		"nxos":    {{Name: "nxos-aaa", Start: "aaa group"}},
		"ios":     {{Name: "ios-logging", Start: "logging host"}},
		"ce":      {{Name: "ce-aaa", Start: "aaa", Block: true}},
		"comware": {},
	}

	got := cfg.SectionsByPlatform()
	assert.Len(t, got, 3)
	assert.Equal(t, []SectionConfig{
		{Name: "ios-logging", Start: "logging host"},
		{Name: "nxos-aaa", Start: "aaa group"},
	}, got[domain.PlatformCisco], "merged in tag order")
	assert.Equal(t, []SectionConfig{{Name: "ce-aaa", Start: "aaa", Block: true}}, got[domain.PlatformHuawei])
	assert.Empty(t, got[domain.PlatformH3C])
}
