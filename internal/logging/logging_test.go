package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != InfoLevel {
		t.Errorf("expected Level to be InfoLevel, got %v", cfg.Level)
	}
	if cfg.Output != os.Stderr {
		t.Errorf("expected Output to be os.Stderr")
	}
	if cfg.TimeFormat != time.RFC3339 {
		t.Errorf("expected TimeFormat to be RFC3339, got %s", cfg.TimeFormat)
	}
	if cfg.LogToFile || cfg.LogDir != "/tmp" {
		t.Errorf("expected file logging off with /tmp dir, got %v %s", cfg.LogToFile, cfg.LogDir)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"DEBUG":   DebugLevel,
		" debug ": DebugLevel,
		"info":    InfoLevel,
		"WARN":    WarnLevel,
		"warning": WarnLevel,
		"Error":   ErrorLevel,
		"fatal":   FatalLevel,
		"verbose": InfoLevel,
		"":        InfoLevel,
	}

	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: WarnLevel, Output: &buf})

	Debug().Msg("resolving command")
	Info().Msg("parser built")
	Warn().Msg("slow handler")
	Error().Err(os.ErrNotExist).Msg("handler failed")

	out := buf.String()
	for _, hidden := range []string{"resolving command", "parser built"} {
		if strings.Contains(out, hidden) {
			t.Errorf("%q should be filtered at warn level", hidden)
		}
	}
	for _, shown := range []string{"slow handler", "handler failed", "file does not exist"} {
		if !strings.Contains(out, shown) {
			t.Errorf("expected %q in output, got %s", shown, out)
		}
	}
}

func TestStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})

	l := With().Str("component", "parser").Logger()
	l.Debug().
		Str("command", "attack heavy").
		Int("keywords", 2).
		Bool("handled", true).
		Msg("command resolved")

	out := buf.String()
	for _, field := range []string{
		`"component":"parser"`,
		`"command":"attack heavy"`,
		`"keywords":2`,
		`"handled":true`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("expected %s in output, got %s", field, out)
		}
	}
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf, Pretty: true})

	Info().Msg("pretty message")

	if !strings.Contains(buf.String(), "pretty message") {
		t.Errorf("expected pretty output to contain message, got %s", buf.String())
	}
}

func TestInitWithZeroConfig(t *testing.T) {
	// Nil output and empty time format fall back to defaults.
	Init(Config{Level: InfoLevel})
	Init(DefaultConfig())
}

func TestLogToFile(t *testing.T) {
	dir := t.TempDir()

	Init(Config{Level: InfoLevel, Output: &bytes.Buffer{}, LogToFile: true, LogDir: dir})
	defer Close()

	Info().Msg("written to file")

	path := GetLogFilePath()
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("log file %q should be in %s", path, dir)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "rpgbot-") || !strings.HasSuffix(name, ".log") {
		t.Errorf("unexpected log file name: %s", name)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "written to file") {
		t.Errorf("log file should contain the message, got %s", content)
	}
}

func TestCloseClearsPath(t *testing.T) {
	Init(Config{Level: InfoLevel, Output: &bytes.Buffer{}, LogToFile: true, LogDir: t.TempDir()})
	if GetLogFilePath() == "" {
		t.Fatal("expected a log file path before Close")
	}

	Close()
	if GetLogFilePath() != "" {
		t.Error("expected empty log file path after Close")
	}

	Init(Config{Level: InfoLevel, Output: &bytes.Buffer{}})
	if GetLogFilePath() != "" {
		t.Error("expected no log file when LogToFile is off")
	}
}

func TestSilence(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})
	Silence()

	Error().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output after Silence, got %s", buf.String())
	}
	Init(DefaultConfig())
}
