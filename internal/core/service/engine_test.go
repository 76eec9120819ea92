package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/config-baseline-auditor/internal/adapters/source/file"
	"github.com/olusolaa/config-baseline-auditor/internal/baseline"
	"github.com/olusolaa/config-baseline-auditor/internal/config"
	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports/mocks"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
	"github.com/olusolaa/config-baseline-auditor/internal/extract"
	"github.com/olusolaa/config-baseline-auditor/internal/log"
	"github.com/olusolaa/config-baseline-auditor/internal/normalize"
)

const r1Running = `hostname r1
!
service password-encryption
snmp-server community ops RO
!
end
`

func discardLogger(t *testing.T) ports.Logger {
	t.Helper()
	logger, err := log.NewLoggerWithWriter(log.Config{Level: log.LevelDebug, Format: log.FormatText}, io.Discard)
	require.NoError(t, err)
	return logger
}

func newTestEngine(t *testing.T, files map[string]string, reporter ports.Reporter, devices []config.DeviceConfig) *AuditEngine {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, "/configs/"+name, []byte(content), 0o644))
	}
	logger := discardLogger(t)
	source, err := file.NewSource(file.Config{BaseDir: "/configs"}, fs, logger)
	require.NoError(t, err)

	engine, err := NewAuditEngine(source, extract.New(), normalize.Normalize, baseline.Compare, reporter, logger, devices, 2)
	require.NoError(t, err)
	return engine
}

func TestAuditEngine_Run(t *testing.T) {
	files := map[string]string{
		"r1.cfg":          r1Running,
		"r1-baseline.cfg": "service password-encryption\nsnmp-server community ops RO\n",
		"r2-baseline.cfg": "service password-encryption\nsnmp-server community public RO\ntacacs-server host 10.0.0.1\n",
		"srx.cfg":         "set system services ssh\n",
	}
	devices := []config.DeviceConfig{
		{Name: "r1", NetworkOS: "ios", Running: "r1.cfg", Baseline: "r1-baseline.cfg"},
		{Name: "r2", NetworkOS: "ios", Running: "r1.cfg", Baseline: "r2-baseline.cfg"},
		{Name: "r3", NetworkOS: "nxos", Running: "missing.cfg", Baseline: "r1-baseline.cfg"},
		{Name: "srx", NetworkOS: "junos", Running: "srx.cfg", Baseline: "srx.cfg"},
	}

	reporter := mocks.NewReporter(t)
	reporter.On("Report", mock.Anything, mock.Anything).Return(nil).Once()

	results, err := newTestEngine(t, files, reporter, devices).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, dev := range devices {
		assert.Equal(t, dev.Name, results[i].Device, "results keep configured order")
	}

	assert.Equal(t, domain.StatusCompliant, results[0].Status)
	assert.Equal(t, domain.PlatformCisco, results[0].Platform)
	assert.Nil(t, results[0].DiffLines)

	assert.Equal(t, domain.StatusDrifted, results[1].Status)
	assert.Equal(t, []string{"tacacs-server host 10.0.0.1"}, results[1].Diff.MissingConfigs)
	assert.Equal(t, []domain.ConfigPair{
		{Baseline: "snmp-server community public RO", Running: "snmp-server community ops RO"},
	}, results[1].Diff.DifferentConfigs)
	assert.Contains(t, results[1].DiffLines, "- tacacs-server host 10.0.0.1")

	assert.Equal(t, domain.StatusError, results[2].Status)
	assert.True(t, errors.Is(results[2].Error, errors.CodeSourceNotFound))

	assert.Equal(t, domain.StatusCompliant, results[3].Status)
	assert.Equal(t, domain.PlatformUnknown, results[3].Platform)

	reported := reporter.Calls[0].Arguments.Get(1).([]domain.AuditResult)
	assert.Equal(t, results, reported)
}

func TestAuditEngine_SkipExtract(t *testing.T) {
	files := map[string]string{
		"r1.cfg":       r1Running,
		"hostname.cfg": "hostname r1\n",
	}
	devices := []config.DeviceConfig{
		{Name: "extracted", NetworkOS: "ios", Running: "r1.cfg", Baseline: "hostname.cfg"},
		{Name: "raw", NetworkOS: "ios", Running: "r1.cfg", Baseline: "hostname.cfg", SkipExtract: true},
	}

	reporter := mocks.NewReporter(t)
	reporter.On("Report", mock.Anything, mock.Anything).Return(nil).Once()

	results, err := newTestEngine(t, files, reporter, devices).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDrifted, results[0].Status)
	assert.Equal(t, []string{"hostname r1"}, results[0].Diff.MissingConfigs)
	assert.Equal(t, domain.StatusCompliant, results[1].Status)
}

func TestAuditEngine_AuditDevice_BaselineReadFailure(t *testing.T) {
	source := mocks.NewConfigSource(t)
	source.On("Read", mock.Anything, "r1.cfg").Return(r1Running, nil).Once()
	source.On("Read", mock.Anything, "gone.cfg").Return("", fmt.Errorf("connection reset")).Once()

	logger := mocks.NewLogger(t)
	logger.On("WithFields", mock.Anything).Return(logger)
	logger.On("Errorf", mock.Anything, mock.Anything, "failed reading baseline", mock.Anything).Return().Once()

	engine, err := NewAuditEngine(source, extract.New(), normalize.Normalize, baseline.Compare, mocks.NewReporter(t), logger, nil, 1)
	require.NoError(t, err)

	result := engine.AuditDevice(context.Background(), config.DeviceConfig{
		Name: "r1", NetworkOS: "ios", Running: "r1.cfg", Baseline: "gone.cfg",
	})
	assert.Equal(t, domain.StatusError, result.Status)
	assert.Equal(t, domain.PlatformCisco, result.Platform)
	assert.True(t, errors.Is(result.Error, errors.CodeAuditError))
	assert.ErrorContains(t, result.Error, "connection reset")
}

func TestAuditEngine_NoDevices(t *testing.T) {
	_, err := newTestEngine(t, nil, mocks.NewReporter(t), nil).Run(context.Background())
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
}

func TestAuditEngine_ReporterFailure(t *testing.T) {
	files := map[string]string{"r1.cfg": r1Running}
	devices := []config.DeviceConfig{{Name: "r1", NetworkOS: "ios", Running: "r1.cfg", Baseline: "r1.cfg"}}

	reporter := mocks.NewReporter(t)
	reporter.On("Report", mock.Anything, mock.Anything).Return(fmt.Errorf("disk full")).Once()

	results, err := newTestEngine(t, files, reporter, devices).Run(context.Background())
	assert.True(t, errors.Is(err, errors.CodeReportError))
	assert.Len(t, results, 1)
}

func TestAuditEngine_Cancelled(t *testing.T) {
	files := map[string]string{"r1.cfg": r1Running}
	devices := []config.DeviceConfig{{Name: "r1", NetworkOS: "ios", Running: "r1.cfg", Baseline: "r1.cfg"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(t, files, mocks.NewReporter(t), devices).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAuditEngine_Validation(t *testing.T) {
	logger := discardLogger(t)
	source, err := file.NewSource(file.Config{}, afero.NewMemMapFs(), logger)
	require.NoError(t, err)
	reporter := mocks.NewReporter(t)

	_, err = NewAuditEngine(nil, extract.New(), normalize.Normalize, baseline.Compare, reporter, logger, nil, 1)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))

	_, err = NewAuditEngine(source, nil, normalize.Normalize, baseline.Compare, reporter, logger, nil, 1)
	assert.True(t, errors.Is(err, errors.CodeInternal))

	_, err = NewAuditEngine(source, extract.New(), normalize.Normalize, baseline.Compare, nil, logger, nil, 1)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))

	engine, err := NewAuditEngine(source, extract.New(), normalize.Normalize, baseline.Compare, reporter, logger, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultConcurrency, engine.concurrency)
}
