package config

import (
	"github.com/olusolaa/config-baseline-auditor/internal/adapters/source/file"
	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/log"
	"github.com/olusolaa/config-baseline-auditor/internal/reporting/json"
	"github.com/olusolaa/config-baseline-auditor/internal/reporting/text"
)

type Config struct {
	Settings SettingsConfig             `mapstructure:"settings"`
	Source   SourceConfig               `mapstructure:"source"`
	Sections map[string][]SectionConfig `mapstructure:"sections" validate:"dive,keys,oneof=ios nxos eos comware ce,endkeys,dive"`
	Devices  []DeviceConfig             `mapstructure:"devices" validate:"dive"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat    log.Format      `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	Concurrency  int             `mapstructure:"concurrency" validate:"min=0"`
	ReporterType string          `mapstructure:"reporter" validate:"oneof=text json"`
	FailOnDrift  bool            `mapstructure:"fail_on_drift"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config"`
}

type SourceConfig struct {
	File *file.Config `mapstructure:"file"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text"`
	JSON *json.Config `mapstructure:"json"`
}

// SectionConfig adds a stanza to the extraction table of a network OS.
// Start is an RE2 expression matched at the beginning of a line.
type SectionConfig struct {
	Name        string   `mapstructure:"name"`
	Start       string   `mapstructure:"start" validate:"required"`
	Block       bool     `mapstructure:"block"`
	Terminators []string `mapstructure:"terminators"`
}

// DeviceConfig names the running configuration and baseline of one device.
type DeviceConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	NetworkOS   string `mapstructure:"network_os" validate:"required"`
	Running     string `mapstructure:"running" validate:"required"`
	Baseline    string `mapstructure:"baseline" validate:"required"`
	SkipExtract bool   `mapstructure:"skip_extract"`
}

// SectionsByPlatform groups the configured custom sections by platform. Several
// network OS tags can map to the same platform; their sections are merged in
// tag order.
func (c *Config) SectionsByPlatform() map[domain.Platform][]SectionConfig {
	out := make(map[domain.Platform][]SectionConfig)
	for _, tag := range domain.SupportedNetworkOS() {
		sections, ok := c.Sections[tag]
		if !ok {
			continue
		}
		p := domain.ResolvePlatform(tag)
		out[p] = append(out[p], sections...)
	}
	return out
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  4,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{},
				JSON: &json.Config{Indent: true},
			},
		},
		Source: SourceConfig{
			File: &file.Config{BaseDir: "."},
		},
		Sections: map[string][]SectionConfig{},
		Devices:  []DeviceConfig{},
	}
}
