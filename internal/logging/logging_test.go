package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lfm.log")
	logger, closer, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info().Str("component", "test").Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"test"`) || !strings.Contains(string(data), `"message":"hello"`) {
		t.Errorf("unexpected log contents %q", data)
	}
}

func TestAdapter(t *testing.T) {
	var buf bytes.Buffer
	a := Adapter{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	a.Debugf("calling %s (attempt %d/%d)", "artist.getInfo", 1, 3)

	if !strings.Contains(buf.String(), "calling artist.getInfo (attempt 1/3)") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Errorf("expected debug level, got %q", buf.String())
	}
}
