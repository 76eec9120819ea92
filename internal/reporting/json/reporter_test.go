package json

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports/mocks"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
)

func TestReporter_Report(t *testing.T) {
	logger := mocks.NewLogger(t)
	logger.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Return()

	var buf bytes.Buffer
	r, err := NewReporter(Config{Indent: true}, logger, WithWriter(&buf))
	require.NoError(t, err)

	results := []domain.AuditResult{
		{
			Device:    "edge-1",
			NetworkOS: "ios",
			Platform:  domain.PlatformCisco,
			Status:    domain.StatusDrifted,
			Diff: domain.DiffResult{
				HasDifferences:   true,
				MissingConfigs:   []string{"tacacs-server host 10.0.0.1"},
				ExtraConfigs:     []string{},
				DifferentConfigs: []domain.ConfigPair{},
				Summary:          "Missing 1 baseline configuration(s)",
			},
			DiffLines: []string{"- tacacs-server host 10.0.0.1"},
		},
		{
			Device:    "leaf-1",
			NetworkOS: "ce",
			Platform:  domain.PlatformHuawei,
			Status:    domain.StatusError,
			Error:     errors.New(errors.CodeSourceNotFound, "missing running config"),
		},
	}
	require.NoError(t, r.Report(context.Background(), results))

	var decoded map[string]any
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &decoded))

	summary := decoded["summary"].(map[string]any)
	assert.EqualValues(t, 2, summary["devices_audited"])
	assert.EqualValues(t, 1, summary["drifted"])
	assert.EqualValues(t, 1, summary["errors"])
	assert.EqualValues(t, 0, summary["compliant"])

	items := decoded["results"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, "cisco", first["platform"])
	assert.Equal(t, "DRIFTED", first["status"])
	diff := first["diff"].(map[string]any)
	assert.Equal(t, true, diff["has_differences"])
	assert.Equal(t, []any{"tacacs-server host 10.0.0.1"}, diff["missing_configs"])
	assert.Equal(t, []any{}, diff["extra_configs"])
	assert.Equal(t, "Missing 1 baseline configuration(s)", diff["summary"])

	second := items[1].(map[string]any)
	assert.NotContains(t, second, "diff")
	assert.Equal(t, "[SOURCE_NOT_FOUND] missing running config", second["error_message"])
}

func TestReporter_Compact(t *testing.T) {
	logger := mocks.NewLogger(t)
	logger.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Return()

	var buf bytes.Buffer
	r, err := NewReporter(Config{}, logger, WithWriter(&buf))
	require.NoError(t, err)

	require.NoError(t, r.Report(context.Background(), nil))
	assert.Equal(t, `{"summary":{"devices_audited":0,"compliant":0,"drifted":0,"errors":0},"results":[]}`+"\n", buf.String())
}

func TestReporter_CancelledContext(t *testing.T) {
	logger := mocks.NewLogger(t)
	logger.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Return()

	r, err := NewReporter(Config{}, logger, WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Report(ctx, []domain.AuditResult{{Device: "edge-1"}})
	assert.ErrorIs(t, err, context.Canceled)
}
