package service

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/config-baseline-auditor/internal/config"
	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
	"github.com/olusolaa/config-baseline-auditor/pkg/compare"
)

const defaultConcurrency = 4

// AuditEngine runs extract, normalize and compare for every configured device
// and hands the results to a reporter. A device that cannot be audited yields
// an ERROR result; it does not stop the run.
type AuditEngine struct {
	source      ports.ConfigSource
	extractor   ports.SectionExtractor
	normalize   ports.Normalizer
	comparer    ports.BaselineComparer
	reporter    ports.Reporter
	logger      ports.Logger
	devices     []config.DeviceConfig
	concurrency int
}

type indexedResult struct {
	index  int
	result domain.AuditResult
}

func NewAuditEngine(
	source ports.ConfigSource,
	extractor ports.SectionExtractor,
	normalize ports.Normalizer,
	comparer ports.BaselineComparer,
	reporter ports.Reporter,
	logger ports.Logger,
	devices []config.DeviceConfig,
	concurrency int,
) (*AuditEngine, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if source == nil {
		return nil, errors.New(errors.CodeConfigValidation, "config source cannot be nil")
	}
	if extractor == nil || normalize == nil || comparer == nil {
		return nil, errors.New(errors.CodeInternal, "audit engine requires an extractor, a normalizer and a comparer")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil")
	}

	return &AuditEngine{
		source:      source,
		extractor:   extractor,
		normalize:   normalize,
		comparer:    comparer,
		reporter:    reporter,
		logger:      logger,
		devices:     devices,
		concurrency: concurrency,
	}, nil
}

// Run audits the devices with a bounded worker pool. Results keep the
// configured device order.
func (e *AuditEngine) Run(ctx context.Context) ([]domain.AuditResult, error) {
	if len(e.devices) == 0 {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "no devices configured for audit", "Add entries under 'devices' in the configuration file.")
	}
	e.logger.Infof(ctx, "Starting baseline audit of %d devices using %s source", len(e.devices), e.source.Type())

	deviceChan := make(chan int)
	resultChan := make(chan indexedResult, len(e.devices))

	g, childCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(deviceChan)
		for i := range e.devices {
			select {
			case deviceChan <- i:
			case <-childCtx.Done():
				return childCtx.Err()
			}
		}
		return nil
	})

	workers, workerCtx := errgroup.WithContext(childCtx)
	workers.SetLimit(e.concurrency)
	g.Go(func() error {
		defer close(resultChan)
		for i := range deviceChan {
			workers.Go(func() error {
				if err := workerCtx.Err(); err != nil {
					return err
				}
				resultChan <- indexedResult{index: i, result: e.AuditDevice(workerCtx, e.devices[i])}
				return nil
			})
		}
		return workers.Wait()
	})

	results := make([]domain.AuditResult, len(e.devices))
	done := make([]bool, len(e.devices))
	g.Go(func() error {
		for r := range resultChan {
			results[r.index] = r.result
			done[r.index] = true
		}
		return nil
	})

	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}
	if runErr != nil {
		if stderrors.Is(runErr, context.Canceled) || stderrors.Is(runErr, context.DeadlineExceeded) {
			e.logger.Warnf(ctx, "Baseline audit cancelled or timed out: %v", runErr)
		} else {
			e.logger.Errorf(ctx, runErr, "baseline audit encountered an error")
		}
		return completed(results, done), runErr
	}

	e.logger.Infof(ctx, "Baseline audit completed, reporting %d results", len(results))
	if err := e.reporter.Report(ctx, results); err != nil {
		return results, errors.Wrap(err, errors.CodeReportError, "failed to generate audit report")
	}
	return results, nil
}

func completed(results []domain.AuditResult, done []bool) []domain.AuditResult {
	var out []domain.AuditResult
	for i, ok := range done {
		if ok {
			out = append(out, results[i])
		}
	}
	return out
}

// AuditDevice audits a single device. Read failures are recorded on the
// result.
func (e *AuditEngine) AuditDevice(ctx context.Context, dev config.DeviceConfig) domain.AuditResult {
	platform := domain.ResolvePlatform(dev.NetworkOS)
	result := domain.AuditResult{
		Device:    dev.Name,
		NetworkOS: dev.NetworkOS,
		Platform:  platform,
	}

	log := e.logger.WithFields(map[string]any{
		"device":     dev.Name,
		"network_os": dev.NetworkOS,
	})
	if !platform.Known() {
		log.Warnf(ctx, "No section table for network OS %q, comparing the whole configuration", dev.NetworkOS)
	}

	running, err := e.source.Read(ctx, dev.Running)
	if err != nil {
		log.Errorf(ctx, err, "failed reading running configuration")
		return failed(result, errors.Wrap(err, errors.CodeAuditError, "reading running configuration"))
	}
	baselineText, err := e.source.Read(ctx, dev.Baseline)
	if err != nil {
		log.Errorf(ctx, err, "failed reading baseline")
		return failed(result, errors.Wrap(err, errors.CodeAuditError, "reading baseline"))
	}

	if !dev.SkipExtract {
		running = e.extractor.Extract(running, platform)
	}
	runningLines := e.normalize(running, platform)
	baselineLines := e.normalize(baselineText, platform)
	log.Debugf(ctx, "Comparing %d running lines against %d baseline lines", len(runningLines), len(baselineLines))

	result.Diff = e.comparer(runningLines, baselineLines, platform)
	if !result.Diff.HasDifferences {
		result.Status = domain.StatusCompliant
		return result
	}

	result.Status = domain.StatusDrifted
	result.DiffLines = compare.RenderDiff(baselineLines, runningLines)
	log.Infof(ctx, "Drift detected: %s", result.Diff.Summary)
	return result
}

func failed(result domain.AuditResult, err error) domain.AuditResult {
	result.Status = domain.StatusError
	result.Error = err
	return result
}
