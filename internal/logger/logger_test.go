package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(LevelWarn))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(LevelError))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestFields(t *testing.T) {
	assert.Equal(t, "rule", String("rule", "ORDER").Key)
	assert.Equal(t, "error", Error(errors.New("boom")).Key)
	assert.Equal(t, int64(3), Int("rows", 3).Integer)
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop()
	l.Info("converted", Any("columns", []string{"id"}))
	Cleanup(l)
}
