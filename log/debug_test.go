package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggersUsableBeforeInitialize(t *testing.T) {
	require.NotNil(t, InfoLog)
	require.NotNil(t, WarningLog)
	require.NotNil(t, ErrorLog)

	InfoLog.Printf("info %d", 1)
	WarningLog.Printf("warning %d", 2)
	ErrorLog.Printf("error %d", 3)
	assert.NotNil(t, Zap())
	assert.NotNil(t, Named("sheet"))
}

func TestDebugDisabledByDefault(t *testing.T) {
	t.Setenv("TGSHEET_DEBUG", "")
	InitDebug()

	assert.False(t, DebugEnabled)
	assert.NotNil(t, DebugLog)
}

func TestDebugEnabledWithEnvVar(t *testing.T) {
	t.Setenv("TGSHEET_DEBUG", "1")
	InitDebug()
	defer func() {
		DebugEnabled = false
	}()

	assert.True(t, DebugEnabled)
	assert.NotNil(t, DebugLog)
}

func TestTraceHelpersNeverPanic(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		DebugEnabled = enabled
		DebugLog = nil

		Debug("test %s", "arg")
		SheetTrace("test %s", "arg")
		ScrollTrace("test %s", "arg")
		LayoutTrace("test %s", "arg")
		InputTrace("test %s", "arg")
	}
	DebugEnabled = false
}

func TestFrameProfiler(t *testing.T) {
	t.Run("noop when disabled", func(t *testing.T) {
		DebugEnabled = false
		profiler.Reset()

		profiler.Start("sheet")()
		assert.Empty(t, profiler.components)
	})

	t.Run("records when enabled", func(t *testing.T) {
		DebugEnabled = true
		defer func() { DebugEnabled = false }()
		profiler.Reset()

		for i := 0; i < 3; i++ {
			profiler.Start("sheet")()
		}
		profiler.record("popup", 20*time.Millisecond)

		require.Contains(t, profiler.components, "sheet")
		assert.EqualValues(t, 3, profiler.components["sheet"].Count)
		assert.EqualValues(t, 4, profiler.frames)
		assert.EqualValues(t, 1, profiler.slowFrames)
		assert.Contains(t, profiler.Stats(), "popup")
	})
}
