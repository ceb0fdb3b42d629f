package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruido"))
}

func TestComponent(t *testing.T) {
	l := Nop().Component("engine")
	assert.NotNil(t, l)
	l.Info().Msg("sin salida")
}

func TestWithStr(t *testing.T) {
	var buf bytes.Buffer
	l := (&Logger{zl: zerolog.New(&buf)}).WithStr("request_id", "abc")
	l.Info().Msg("hola")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}
