package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/olusolaa/config-baseline-auditor/internal/errors"
)

func TestNewLoggerWithWriter(t *testing.T) {
	t.Run("level filters output", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLoggerWithWriter(Config{Level: LevelWarn, Format: FormatText}, &buf)
		require.NoError(t, err)

		logger.Infof(context.Background(), "hidden %d", 1)
		logger.Warnf(context.Background(), "device %s drifted", "edge-1")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "device edge-1 drifted")
	})

	t.Run("json with fields and app error", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLoggerWithWriter(Config{Level: LevelDebug, Format: FormatJSON}, &buf)
		require.NoError(t, err)

		appErr := apperrors.Wrap(fmt.Errorf("no such file"), apperrors.CodeSourceReadError, "reading baseline")
		logger.WithFields(map[string]any{"device": "edge-1", "component": "engine"}).
			Errorf(context.Background(), appErr, "audit failed")

		out := buf.String()
		assert.Contains(t, out, `"error_code":"SOURCE_READ_ERROR"`)
		assert.Contains(t, out, `"error_wrapped":"no such file"`)
		assert.Contains(t, out, `"device":"edge-1"`)
		assert.Less(t, strings.Index(out, `"component"`), strings.Index(out, `"device"`))
	})

	t.Run("nil context", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLoggerWithWriter(DefaultConfig(), &buf)
		require.NoError(t, err)
		//nolint:staticcheck
		logger.Infof(nil, "still logged")
		assert.Contains(t, buf.String(), "still logged")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := NewLoggerWithWriter(Config{Format: "xml"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeConfigValidation))
	})

	t.Run("nil writer", func(t *testing.T) {
		_, err := NewLoggerWithWriter(DefaultConfig(), nil)
		assert.Error(t, err)
	})
}
