package lastfm

import "time"

// Submission thresholds for track.scrobble.
const (
	// MinScrobbleDuration is the shortest track that may be scrobbled.
	MinScrobbleDuration = 30 * time.Second

	// MaxScrobbleThreshold caps how long a long track must play.
	MaxScrobbleThreshold = 4 * time.Minute
)

// ScrobbleThreshold returns how long a track of the given length must
// play before it qualifies: half its length, capped at four minutes.
// Tracks shorter than MinScrobbleDuration never qualify and get -1.
func ScrobbleThreshold(length time.Duration) time.Duration {
	if length < MinScrobbleDuration {
		return -1
	}
	return min(length/2, MaxScrobbleThreshold)
}

// ShouldScrobble reports whether a play lasting played of a track of
// the given length should be submitted.
func ShouldScrobble(length, played time.Duration) bool {
	threshold := ScrobbleThreshold(length)
	return threshold >= 0 && played >= threshold
}
