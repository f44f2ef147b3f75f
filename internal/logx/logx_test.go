package logx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	var logger = NewLogger(&buf, false)
	logger.Debug().Msg("hidden")
	require.Empty(t, buf.String())
	logger.Info().Int("depth", 3).Msg("shown")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "depth:")
	require.Contains(t, buf.String(), "INFO")

	buf.Reset()
	var debugLogger = NewLogger(&buf, true)
	debugLogger.Debug().Msg("visible")
	require.Contains(t, buf.String(), "visible")
}
