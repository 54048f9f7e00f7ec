package logger

import (
	"testing"

	"github.com/jasu-us/business-card/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func resetLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		Log = prev
		SetLogHook(nil)
	})
}

func TestNamedRequiresInit(t *testing.T) {
	resetLogger(t)
	Log = nil

	_, err := Named("http")
	require.Error(t, err)
}

func TestHookReceivesNamedEntries(t *testing.T) {
	resetLogger(t)
	require.NoError(t, Init(Config{Debug: true}))

	var got []types.Log
	SetLogHook(func(log types.Log) { got = append(got, log) })
	got = nil

	l, err := Named("http")
	require.NoError(t, err)
	assert.Equal(t, "http", l.Name)
	assert.Equal(t, Log.LogsPath, l.LogsPath)

	l.Warnf("slow export (person: %s)", "dvazquez")

	require.Len(t, got, 1)
	assert.Equal(t, "main.http", got[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, got[0].Level)
	assert.Equal(t, "slow export (person: dvazquez)", got[0].Message)
	assert.Contains(t, got[0].Caller, "logger_test.go")
}

func TestInfoLevelDropsDebug(t *testing.T) {
	resetLogger(t)
	require.NoError(t, Init(Config{}))

	var got []types.Log
	SetLogHook(func(log types.Log) { got = append(got, log) })

	Log.Debug("hidden")
	Log.Info("shown")

	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0].Message)
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() { l.Errorf("ignored %d", 1) })
}
