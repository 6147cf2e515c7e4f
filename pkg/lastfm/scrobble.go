package lastfm

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// MaxBatchSize is the maximum number of scrobbles accepted per request.
const MaxBatchSize = 50

// ScrobbleService submits plays on behalf of the authenticated user.
type ScrobbleService struct {
	resource
}

// UpdateNowPlaying sets the user's now playing track.
//
// This should be called when a track starts playing. It does not count
// as a scrobble and does not affect play counts. Requires authentication.
//
// Example:
//
//	play := lastfm.Play{
//	    Artist: "The Beatles",
//	    Track:  "Yesterday",
//	    Album:  "Help!",
//	}
//	if _, err := client.Scrobble().UpdateNowPlaying(ctx, play); err != nil {
//	    log.Printf("Failed to update now playing: %v", err)
//	}
func (s *ScrobbleService) UpdateNowPlaying(ctx context.Context, play Play) (*NowPlayingResponse, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	params := Params{}
	setPlayParams(params, play, "")

	doc, err := s.call(ctx, "track.updateNowPlaying", params)
	if err != nil {
		return nil, err
	}

	n, err := doc.Child("nowplaying")
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse now playing response: %w", err)
	}
	return &NowPlayingResponse{
		Artist:         n.OptionalChildText("artist"),
		Track:          n.OptionalChildText("track"),
		Album:          n.OptionalChildText("album"),
		AlbumArtist:    n.OptionalChildText("albumArtist"),
		IgnoredMessage: ignoredMessage(n),
	}, nil
}

// Scrobble submits a single play that started at timestamp. See
// ShouldScrobble for when a play qualifies. Requires authentication.
func (s *ScrobbleService) Scrobble(ctx context.Context, play Play, timestamp time.Time) (*ScrobbleResponse, error) {
	return s.ScrobbleBatch(ctx, []Scrobble{{Play: play, Timestamp: timestamp}})
}

// ScrobbleBatch submits up to MaxBatchSize scrobbles in one request.
// Anything past MaxBatchSize is dropped; callers with more plays split
// them. Requires authentication.
//
// Example:
//
//	resp, err := client.Scrobble().ScrobbleBatch(ctx, []lastfm.Scrobble{
//	    {Play: yesterday, Timestamp: time.Now().Add(-10 * time.Minute)},
//	    {Play: letItBe, Timestamp: time.Now().Add(-5 * time.Minute)},
//	})
//	if err != nil {
//	    log.Printf("Failed to scrobble batch: %v", err)
//	}
//	fmt.Printf("Accepted: %d, Ignored: %d\n", resp.Accepted, resp.Ignored)
func (s *ScrobbleService) ScrobbleBatch(ctx context.Context, scrobbles []Scrobble) (*ScrobbleResponse, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if len(scrobbles) == 0 {
		return &ScrobbleResponse{}, nil
	}
	if len(scrobbles) > MaxBatchSize {
		scrobbles = scrobbles[:MaxBatchSize]
	}

	params := Params{}
	for i, sc := range scrobbles {
		idx := "[" + strconv.Itoa(i) + "]"
		setPlayParams(params, sc.Play, idx)
		params.Set("timestamp"+idx, FormatTimestamp(sc.Timestamp))
	}

	doc, err := s.call(ctx, "track.scrobble", params)
	if err != nil {
		return nil, err
	}
	resp, err := decodeScrobbles(doc)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse scrobble response: %w", err)
	}
	return resp, nil
}

// setPlayParams writes play's fields with an optional "[i]" key suffix.
func setPlayParams(p Params, play Play, suffix string) {
	p.Set("artist"+suffix, play.Artist)
	p.Set("track"+suffix, play.Track)
	if play.Album != "" {
		p.Set("album"+suffix, play.Album)
	}
	if play.AlbumArtist != "" {
		p.Set("albumArtist"+suffix, play.AlbumArtist)
	}
	if play.Duration > 0 {
		p.SetInt("duration"+suffix, int(play.Duration/time.Second))
	}
	if play.TrackNumber > 0 {
		p.SetInt("trackNumber"+suffix, play.TrackNumber)
	}
	if play.MBTrackID != "" {
		p.Set("mbid"+suffix, play.MBTrackID)
	}
}

func ignoredMessage(n Node) IgnoredMessage {
	m, err := n.Child("ignoredMessage")
	if err != nil {
		return IgnoredMessage{}
	}
	code, _ := m.AttrInt("code")
	return IgnoredMessage{Code: code, Text: m.Text()}
}

func decodeScrobbles(doc Node) (*ScrobbleResponse, error) {
	n, err := doc.Child("scrobbles")
	if err != nil {
		return nil, err
	}
	resp := &ScrobbleResponse{}
	if resp.Accepted, err = n.AttrInt("accepted"); err != nil {
		return nil, err
	}
	if resp.Ignored, err = n.AttrInt("ignored"); err != nil {
		return nil, err
	}
	for _, sc := range n.Children("scrobble") {
		r := ScrobbleResult{
			Artist:         sc.OptionalChildText("artist"),
			Track:          sc.OptionalChildText("track"),
			Album:          sc.OptionalChildText("album"),
			IgnoredMessage: ignoredMessage(sc),
		}
		if ts := sc.OptionalChildText("timestamp"); ts != "" {
			if r.Timestamp, err = ParseTimestamp(ts); err != nil {
				return nil, err
			}
		}
		resp.Scrobbles = append(resp.Scrobbles, r)
	}
	return resp, nil
}
