package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_QuietDisablesLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true, false)

	logger.Info().Msg("should not appear")

	require.Empty(t, buf.String())
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false, true)

	require.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNew_DefaultIsInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false, false)

	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
