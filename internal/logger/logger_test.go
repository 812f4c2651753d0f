package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name  string
		log   func()
		level string
		msg   string
	}{
		{"debug", func() { Debug("refresh %s", "started") }, "DBG", "refresh started"},
		{"info", func() { Info("loaded %d accounts", 2) }, "INF", "loaded 2 accounts"},
		{"warn", func() { Warn("no token") }, "WRN", "no token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), tt.msg)
		})
	}
}

func TestError_IncludesCause(t *testing.T) {
	buf := capture(t, true)
	Error(errors.New("boom"), "refresh failed for %s", "a@x.com")

	out := buf.String()
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "refresh failed for a@x.com")
	assert.Contains(t, out, "boom")
}

func TestSection_WhenVerbose(t *testing.T) {
	buf := capture(t, true)
	Section("Accounts")
	assert.Contains(t, buf.String(), "Accounts")
}

func TestSilent_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)
	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Error(errors.New("x"), "hidden")
	Section("hidden")
	assert.Empty(t, buf.String())
}
