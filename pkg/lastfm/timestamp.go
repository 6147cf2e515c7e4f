package lastfm

import (
	"strconv"
	"strings"
	"time"
)

// FormatTimestamp converts t to the unix-seconds string Last.fm expects
// in request parameters.
func FormatTimestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// ParseTimestamp converts a unix-seconds attribute value from a response.
func ParseTimestamp(s string) (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, malformed("invalid timestamp %q", s)
	}
	return time.Unix(secs, 0).UTC(), nil
}
