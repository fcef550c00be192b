package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Logger{Level: "debug", Format: "json"}.Setup()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Logger{Level: "bogus"}.Setup()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer

	json := Logger{Format: "json"}.writer(&buf)
	assert.Same(t, &buf, json)

	text := Logger{Format: "text", NoColor: true}.writer(&buf)
	log := zerolog.New(text)
	log.Info().Str("map", "lanka").Msg("Layout built")
	assert.Contains(t, buf.String(), "Layout built")
	assert.Contains(t, buf.String(), "map=lanka")
}
