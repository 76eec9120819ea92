package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	apperrors "github.com/olusolaa/config-baseline-auditor/internal/errors"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
	// ShowDiff prints the rendered baseline-to-running diff of drifted devices.
	ShowDiff bool `mapstructure:"show_diff"`
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

	if cfg.NoColor || !isTerminal(r.writer) {
		color.NoColor = true
	}
	return r, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, results []domain.AuditResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No devices audited.")
		return nil
	}

	sorted := make([]domain.AuditResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Device < sorted[j].Device
	})

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Baseline Audit Report")
	fmt.Fprintln(tw, "=====================")
	fmt.Fprintln(tw, "Status\tDevice\tNetwork OS\tDetails")
	fmt.Fprintln(tw, "------\t------\t----------\t-------")

	compliant, drifted, failed := 0, 0, 0
	for _, res := range sorted {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var status, details string
		switch res.Status {
		case domain.StatusCompliant:
			compliant++
			status = green("[OK]")
			details = res.Diff.Summary
		case domain.StatusDrifted:
			drifted++
			status = red("[DRIFT]")
			details = res.Diff.Summary
		case domain.StatusError:
			failed++
			status = magenta("[ERROR]")
			details = errorDetails(res.Error)
		default:
			status = "[UNKNOWN]"
			details = "Unknown audit status."
		}

		networkOS := res.NetworkOS
		if !res.Platform.Known() {
			networkOS += yellow(" (no extraction)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, res.Device, networkOS, details)
	}
	if err := tw.Flush(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeReportError, "writing report table")
	}

	for _, res := range sorted {
		if res.Status == domain.StatusDrifted {
			r.writeDriftDetails(res, red, green, yellow)
		}
	}

	tw = tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Devices Audited:\t%d\n", len(sorted))
	fmt.Fprintf(tw, "Compliant:\t%s\n", green(compliant))
	fmt.Fprintf(tw, "Drifted:\t%s\n", red(drifted))
	fmt.Fprintf(tw, "Errors:\t%s\n", magenta(failed))
	if err := tw.Flush(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeReportError, "writing report summary")
	}
	return nil
}

func (r *Reporter) writeDriftDetails(res domain.AuditResult, red, green, yellow func(a ...any) string) {
	fmt.Fprintf(r.writer, "\n%s (%s): %s\n", res.Device, res.NetworkOS, res.Diff.Summary)
	for _, line := range res.Diff.MissingConfigs {
		fmt.Fprintf(r.writer, "  %s %s\n", red("missing:"), line)
	}
	for _, pair := range res.Diff.DifferentConfigs {
		fmt.Fprintf(r.writer, "  %s %s\n", yellow("changed:"), formatLine(pair.Baseline))
		fmt.Fprintf(r.writer, "  %s %s\n", yellow("     now:"), formatLine(pair.Running))
	}

	if !r.config.ShowDiff || len(res.DiffLines) == 0 {
		return
	}
	fmt.Fprintln(r.writer, "  diff (baseline -> running):")
	for _, line := range res.DiffLines {
		switch {
		case strings.HasPrefix(line, "- "):
			line = red(line)
		case strings.HasPrefix(line, "+ "):
			line = green(line)
		case strings.HasPrefix(line, "? "):
			line = yellow(line)
		}
		fmt.Fprintf(r.writer, "    %s\n", line)
	}
}

func errorDetails(err error) string {
	if err == nil {
		return "Audit failed."
	}
	details := fmt.Sprintf("Audit failed: %v", err)
	if appErr := (*apperrors.AppError)(nil); errors.As(err, &appErr) && appErr.IsUserFacing {
		details = fmt.Sprintf("Audit failed: %s", appErr.Message)
		if appErr.SuggestedAction != "" {
			details += fmt.Sprintf(" (%s)", appErr.SuggestedAction)
		}
	}
	return details
}

func formatLine(line string) string {
	const maxLen = 100
	if line == "" {
		return "<empty>"
	}
	if len(line) > maxLen {
		return line[:maxLen-3] + "..."
	}
	return line
}
