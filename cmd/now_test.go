package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
)

func TestNowPlaying(t *testing.T) {
	played := lastfm.RecentTrack{
		Track: lastfm.Track{Artist: "Björk", Title: "Jóga"},
		At:    time.Unix(1700000000, 0),
	}
	playing := lastfm.RecentTrack{
		Track:      lastfm.Track{Artist: "Cher", Title: "Believe"},
		Album:      "Believe",
		NowPlaying: true,
	}

	tests := []struct {
		name   string
		tracks []lastfm.RecentTrack
		want   playingTrack
		wantOK bool
	}{
		{name: "empty", tracks: nil},
		{name: "only history", tracks: []lastfm.RecentTrack{played}},
		{
			name:   "playing first",
			tracks: []lastfm.RecentTrack{playing, played},
			want:   playingTrack{Artist: "Cher", Name: "Believe", Album: "Believe"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nowPlaying(tt.tracks)
			if ok != tt.wantOK {
				t.Fatalf("nowPlaying ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("nowPlaying = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatNowPlaying(t *testing.T) {
	track := playingTrack{Artist: "Cher", Name: "Believe", Album: "Believe (Deluxe)"}

	tests := []struct {
		name     string
		template string
		expected string
		wantErr  bool
	}{
		{
			name:     "default format",
			template: "{{.Artist}} - {{.Name}}",
			expected: "Cher - Believe",
		},
		{
			name:     "with album",
			template: "{{.Name}} [{{.Album}}]",
			expected: "Believe [Believe (Deluxe)]",
		},
		{
			name:     "invalid template",
			template: "{{.Artist",
			wantErr:  true,
		},
		{
			name:     "unknown field",
			template: "{{.Duration}}",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatNowPlaying(track, tt.template)
			if tt.wantErr {
				if err == nil {
					t.Errorf("formatNowPlaying(%q) expected error, got %q", tt.template, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("formatNowPlaying(%q) error: %v", tt.template, err)
			}
			if result != tt.expected {
				t.Errorf("formatNowPlaying(%q) = %q, expected %q", tt.template, result, tt.expected)
			}
		})
	}
}

func TestParseSpan(t *testing.T) {
	span, err := parseSpan("", "")
	if err != nil || span != nil {
		t.Fatalf("parseSpan(empty) = %v, %v; want nil, nil", span, err)
	}

	if _, err := parseSpan("1000", ""); err == nil {
		t.Error("parseSpan with only --from should fail")
	}

	span, err = parseSpan("1000", "2000")
	if err != nil {
		t.Fatalf("parseSpan: %v", err)
	}
	if span.From.Unix() != 1000 || span.To.Unix() != 2000 {
		t.Errorf("span = %v..%v, want 1000..2000", span.From.Unix(), span.To.Unix())
	}
}

func TestSplitRecipients(t *testing.T) {
	got := splitRecipients(" rj, ,a@b.c ,")
	if len(got) != 2 || got[0] != "rj" || got[1] != "a@b.c" {
		t.Errorf("splitRecipients = %q, want [rj a@b.c]", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(3*time.Minute + 59600*time.Millisecond); got != "4:00" {
		t.Errorf("formatDuration = %q, want 4:00", got)
	}
}

func TestParseScrobbleLog(t *testing.T) {
	input := "# exported\n" +
		"1700000000\tCher\tBelieve\tBelieve\t239\n" +
		"1700000300\tBjörk\tJóga\n"

	scrobbles, err := parseScrobbleLog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseScrobbleLog: %v", err)
	}
	if len(scrobbles) != 2 {
		t.Fatalf("got %d scrobbles, want 2", len(scrobbles))
	}

	first := scrobbles[0]
	if first.Play.Artist != "Cher" || first.Play.Album != "Believe" || first.Play.Duration != 239*time.Second {
		t.Errorf("first = %+v", first.Play)
	}
	if first.Timestamp.Unix() != 1700000000 {
		t.Errorf("first timestamp = %d", first.Timestamp.Unix())
	}
	if scrobbles[1].Play.Album != "" || scrobbles[1].Play.Duration != 0 {
		t.Errorf("second = %+v, want no album or duration", scrobbles[1].Play)
	}
}

func TestParseScrobbleLog_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few columns", "1700000000\tCher\n"},
		{"bad timestamp", "yesterday\tCher\tBelieve\n"},
		{"bad duration", "1700000000\tCher\tBelieve\tBelieve\tlong\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseScrobbleLog(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
