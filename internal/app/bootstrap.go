package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/olusolaa/config-baseline-auditor/internal/adapters/source/file"
	"github.com/olusolaa/config-baseline-auditor/internal/baseline"
	"github.com/olusolaa/config-baseline-auditor/internal/config"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	"github.com/olusolaa/config-baseline-auditor/internal/core/service"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
	"github.com/olusolaa/config-baseline-auditor/internal/extract"
	"github.com/olusolaa/config-baseline-auditor/internal/log"
	"github.com/olusolaa/config-baseline-auditor/internal/normalize"
	"github.com/olusolaa/config-baseline-auditor/internal/reporting/json"
	"github.com/olusolaa/config-baseline-auditor/internal/reporting/text"
)

type buildOptions struct {
	fs           afero.Fs
	logWriter    io.Writer
	reportWriter io.Writer
}

type BuildOption func(*buildOptions)

// WithFs replaces the OS filesystem used to read configurations.
func WithFs(fs afero.Fs) BuildOption {
	return func(o *buildOptions) { o.fs = fs }
}

func WithLogWriter(w io.Writer) BuildOption {
	return func(o *buildOptions) { o.logWriter = w }
}

func WithReportWriter(w io.Writer) BuildOption {
	return func(o *buildOptions) { o.reportWriter = w }
}

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, opts ...BuildOption) (*Application, error) {
	o := buildOptions{fs: afero.NewOsFs(), logWriter: os.Stderr, reportWriter: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError, "failed to unmarshal configuration", "Check the configuration file syntax.")
	}

	logger, err := log.NewLoggerWithWriter(log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}, o.logWriter)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if err := validateConfig(ctx, cfg); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	extractor, err := buildExtractor(cfg)
	if err != nil {
		return nil, err
	}

	filters, err := service.NewDefaultFilterRegistry(extractor, normalize.Normalize, baseline.Compare)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "Filter registry initialized with %v", filters.Names())

	source, err := buildSource(ctx, cfg, o.fs, logger)
	if err != nil {
		return nil, err
	}

	reporter, err := buildReporter(ctx, cfg, o.reportWriter, logger)
	if err != nil {
		return nil, err
	}

	engine, err := service.NewAuditEngine(
		source, extractor, normalize.Normalize, baseline.Compare, reporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		cfg.Devices, cfg.Settings.Concurrency,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize audit engine")
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return &Application{
		Engine:    engine,
		Filters:   filters,
		Extractor: extractor,
		Source:    source,
		Logger:    logger,
		Config:    cfg,
	}, nil
}

func validateConfig(ctx context.Context, cfg *config.Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeInternal, "configuration validation could not run")
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
}

// buildExtractor appends the configured custom sections to the built-in tables.
func buildExtractor(cfg *config.Config) (*extract.Extractor, error) {
	var opts []extract.Option
	for platform, sections := range cfg.SectionsByPlatform() {
		compiled := make([]extract.Section, 0, len(sections))
		for _, sc := range sections {
			s, err := extract.NewSection(sc.Name, sc.Start, sc.Block, sc.Terminators...)
			if err != nil {
				return nil, errors.WrapUserFacing(err, errors.CodePatternError,
					fmt.Sprintf("invalid custom section %q for platform %s", sc.Start, platform),
					"Section start patterns use RE2 syntax.")
			}
			compiled = append(compiled, s)
		}
		opts = append(opts, extract.WithSections(platform, compiled...))
	}
	return extract.New(opts...), nil
}

func buildSource(ctx context.Context, cfg *config.Config, fs afero.Fs, logger ports.Logger) (ports.ConfigSource, error) {
	if cfg.Source.File == nil {
		cfg.Source.File = config.DefaultConfig().Source.File
	}
	source, err := file.NewSource(*cfg.Source.File, fs, logger)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize file source")
	}
	logger.Debugf(ctx, "Using file source (base dir: %s)", cfg.Source.File.BaseDir)
	return source, nil
}

func buildReporter(ctx context.Context, cfg *config.Config, w io.Writer, logger ports.Logger) (ports.Reporter, error) {
	defaults := config.DefaultConfig().Settings.Reporter

	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText})
		if cfg.Settings.Reporter.Text == nil {
			cfg.Settings.Reporter.Text = defaults.Text
		}
		reporter, err := text.NewReporter(*cfg.Settings.Reporter.Text, reportLog, text.WithWriter(w))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
		reportLog.Debugf(ctx, "Using Text reporter (Color: %t)", !cfg.Settings.Reporter.Text.NoColor)
		return reporter, nil
	case json.ReporterTypeJSON:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": json.ReporterTypeJSON})
		if cfg.Settings.Reporter.JSON == nil {
			cfg.Settings.Reporter.JSON = defaults.JSON
		}
		reporter, err := json.NewReporter(*cfg.Settings.Reporter.JSON, reportLog, json.WithWriter(w))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
		reportLog.Debugf(ctx, "Using JSON reporter (Indent: %t)", cfg.Settings.Reporter.JSON.Indent)
		return reporter, nil
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
}
