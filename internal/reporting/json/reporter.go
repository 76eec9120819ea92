package json

import (
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
)

const ReporterTypeJSON = "json"

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Indent bool `mapstructure:"indent"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

type Option func(*Reporter)

func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.writer = w
		}
	}
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

type jsonReport struct {
	Summary jsonSummary      `json:"summary"`
	Results []jsonResultItem `json:"results"`
}

type jsonSummary struct {
	DevicesAudited int `json:"devices_audited"`
	Compliant      int `json:"compliant"`
	Drifted        int `json:"drifted"`
	Errors         int `json:"errors"`
}

type jsonResultItem struct {
	Device       string             `json:"device"`
	NetworkOS    string             `json:"network_os"`
	Platform     string             `json:"platform"`
	Status       domain.AuditStatus `json:"status"`
	Diff         *domain.DiffResult `json:"diff,omitempty"`
	DiffLines    []string           `json:"diff_lines,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, results []domain.AuditResult) error {
	report := jsonReport{
		Summary: jsonSummary{DevicesAudited: len(results)},
		Results: make([]jsonResultItem, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled")
			return ctx.Err()
		}

		item := jsonResultItem{
			Device:    res.Device,
			NetworkOS: res.NetworkOS,
			Platform:  res.Platform.String(),
			Status:    res.Status,
			DiffLines: res.DiffLines,
		}

		switch res.Status {
		case domain.StatusCompliant:
			report.Summary.Compliant++
		case domain.StatusDrifted:
			report.Summary.Drifted++
		case domain.StatusError:
			report.Summary.Errors++
		}

		if res.Error != nil {
			item.ErrorMessage = res.Error.Error()
		} else {
			diff := res.Diff
			item.Diff = &diff
		}

		report.Results = append(report.Results, item)
	}

	var (
		out []byte
		err error
	)
	if r.config.Indent {
		out, err = codec.MarshalIndent(report, "", "  ")
	} else {
		out, err = codec.Marshal(report)
	}
	if err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return errors.Wrap(err, errors.CodeReportError, "failed to encode JSON report")
	}

	if _, err := r.writer.Write(append(out, '\n')); err != nil {
		return errors.Wrap(err, errors.CodeReportError, "failed to write JSON report")
	}
	r.logger.Debugf(ctx, "JSON report written (%d devices)", len(results))
	return nil
}
