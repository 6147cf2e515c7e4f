package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		width     int
		want      string
		wantWidth int
	}{
		{name: "no width", text: "Cher", width: 0, want: "Cher", wantWidth: 4},
		{name: "pad", text: "Cher", width: 6, want: "Cher  ", wantWidth: 6},
		{name: "exact", text: "Cher", width: 4, want: "Cher", wantWidth: 4},
		{name: "truncate", text: "Sonny & Cher", width: 8, want: "Sonny...", wantWidth: 8},
		{name: "tiny", text: "Madonna", width: 2, want: "..", wantWidth: 2},
		{name: "wide runes", text: "宇多田ヒカル", width: 7, wantWidth: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.text, tt.width)
			if tt.want != "" && got != tt.want {
				t.Errorf("Fit(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
			if w := runewidth.StringWidth(got); w != tt.wantWidth {
				t.Errorf("Fit(%q, %d) has width %d, want %d", tt.text, tt.width, w, tt.wantWidth)
			}
		})
	}
}

func TestTable_Write(t *testing.T) {
	table := NewTable("RANK", "ARTIST", "PLAYS")
	table.Row(1, "Cher", 50)
	table.Row(10, "宇多田ヒカル", 7)

	var buf bytes.Buffer
	if err := table.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	// The last column starts at the same display offset on every line.
	col := func(line, cell string) int {
		return runewidth.StringWidth(line[:strings.LastIndex(line, cell)])
	}
	if a, b := col(lines[0], "PLAYS"), col(lines[2], "7"); a != b {
		t.Errorf("misaligned columns: %d vs %d\n%s", a, b, buf.String())
	}
	if table.Len() != 2 {
		t.Errorf("Len = %d, want 2", table.Len())
	}
}
