package app

import (
	"context"
	"fmt"

	"github.com/olusolaa/config-baseline-auditor/internal/config"
	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	"github.com/olusolaa/config-baseline-auditor/internal/core/service"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
	"github.com/olusolaa/config-baseline-auditor/internal/extract"
)

// Application holds the wired components shared by every command.
type Application struct {
	Engine    ports.AuditEngine
	Filters   *service.FilterRegistry
	Extractor *extract.Extractor
	Source    ports.ConfigSource
	Logger    ports.Logger
	Config    *config.Config
}

// Run audits every configured device. With fail_on_drift set, a drifted or
// failed device turns into a CodeDriftDetected error after the report is written.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting baseline audit...")

	results, err := a.Engine.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Baseline audit failed")
		return err
	}

	nonCompliant := 0
	for _, r := range results {
		if r.Status != domain.StatusCompliant {
			nonCompliant++
		}
	}
	a.Logger.Infof(ctx, "Baseline audit completed: %d of %d devices not compliant", nonCompliant, len(results))

	if a.Config.Settings.FailOnDrift && nonCompliant > 0 {
		return errors.NewUserFacing(errors.CodeDriftDetected,
			fmt.Sprintf("%d of %d devices are not compliant with their baseline", nonCompliant, len(results)),
			"Review the report above or unset settings.fail_on_drift.")
	}
	return nil
}

// ExtractFile reads a configuration and returns its security sections.
func (a *Application) ExtractFile(ctx context.Context, path, networkOS string) (string, error) {
	text, err := a.Source.Read(ctx, path)
	if err != nil {
		return "", err
	}
	out, err := a.Filters.Call(ctx, service.FilterExtractConfigSections, map[string]any{
		"running_config": text,
		"network_os":     networkOS,
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// NormalizeFile reads a configuration and returns its normalized lines,
// extracting security sections first when extractFirst is set.
func (a *Application) NormalizeFile(ctx context.Context, path, networkOS string, extractFirst bool) ([]string, error) {
	var text string
	var err error
	if extractFirst {
		text, err = a.ExtractFile(ctx, path, networkOS)
	} else {
		text, err = a.Source.Read(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	out, err := a.Filters.Call(ctx, service.FilterNormalizeConfig, map[string]any{
		"config":     text,
		"network_os": networkOS,
	})
	if err != nil {
		return nil, err
	}
	return out.([]string), nil
}

// CompareFiles runs the extract, normalize and compare chain on a running
// configuration and a baseline file. The baseline is normalized as is.
func (a *Application) CompareFiles(ctx context.Context, runningPath, baselinePath, networkOS string, skipExtract bool) (domain.DiffResult, error) {
	running, err := a.NormalizeFile(ctx, runningPath, networkOS, !skipExtract)
	if err != nil {
		return domain.DiffResult{}, err
	}
	baseline, err := a.NormalizeFile(ctx, baselinePath, networkOS, false)
	if err != nil {
		return domain.DiffResult{}, err
	}

	out, err := a.Filters.Call(ctx, service.FilterCompareWithBaseline, map[string]any{
		"running_config_lines": running,
		"baseline_lines":       baseline,
		"network_os":           networkOS,
	})
	if err != nil {
		return domain.DiffResult{}, err
	}
	return out.(domain.DiffResult), nil
}
