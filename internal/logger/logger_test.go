package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitParsesLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Init(Config{Level: "DEBUG", Format: FormatJSON})
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", zerolog.GlobalLevel())
	}

	Init(Config{Level: "nonsense"})
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %s", zerolog.GlobalLevel())
	}
}

func TestComponentTagsOutput(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	l := Component("grammar")
	l.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"grammar"`) {
		t.Fatalf("expected component field, got %s", buf.String())
	}
}

func TestWriterFormats(t *testing.T) {
	var buf bytes.Buffer
	if w := writer(Config{Format: "JSON"}, &buf); w != &buf {
		t.Fatal("json format should write directly to the output")
	}
	if _, ok := writer(Config{Format: FormatConsole}, &buf).(zerolog.ConsoleWriter); !ok {
		t.Fatal("console format should use zerolog.ConsoleWriter")
	}
}
