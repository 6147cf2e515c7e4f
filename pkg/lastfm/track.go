package lastfm

import (
	"context"
	"time"
)

// TrackService provides track.* methods other than scrobbling.
type TrackService struct {
	resource
	tags tagging
}

// NewTrackService binds track operations to s.
func NewTrackService(s Session) *TrackService {
	r := resource{session: s}
	return &TrackService{resource: r, tags: tagging{resource: r, kind: "track"}}
}

// GetInfo returns the track's metadata and statistics.
func (s *TrackService) GetInfo(ctx context.Context, t Track) (*TrackInfo, error) {
	doc, err := s.get(ctx, "track.getInfo", t)
	if err != nil {
		return nil, err
	}
	n, err := doc.Child("track")
	if err != nil {
		return nil, err
	}
	track, err := decodeTrack(n)
	if err != nil {
		return nil, err
	}
	info := &TrackInfo{
		Track: track,
		MBID:  n.OptionalChildText("mbid"),
		URL:   n.OptionalChildText("url"),
	}
	if _, err := n.Child("id"); err == nil {
		if info.ID, err = n.ChildInt("id"); err != nil {
			return nil, err
		}
	}
	if _, err := n.Child("duration"); err == nil {
		ms, err := n.ChildInt("duration")
		if err != nil {
			return nil, err
		}
		info.Duration = time.Duration(ms) * time.Millisecond
	}
	if info.Listeners, err = n.ChildInt("listeners"); err != nil {
		return nil, err
	}
	if info.Playcount, err = n.ChildInt("playcount"); err != nil {
		return nil, err
	}
	if albumNode, err := n.Child("album"); err == nil {
		album, err := decodeAlbum(albumNode)
		if err != nil {
			return nil, err
		}
		info.Album = &album
	}
	if toptags, err := n.Child("toptags"); err == nil {
		if info.TopTags, err = decodeEach(toptags, "tag", decodeTag); err != nil {
			return nil, err
		}
	}
	return info, nil
}

// GetSimilar returns tracks similar to t, weighted by play count.
func (s *TrackService) GetSimilar(ctx context.Context, t Track, limit int) ([]TopTrack, error) {
	doc, err := s.call(ctx, "track.getSimilar", limitParams(t, limit))
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "track", "playcount", decodeTrack)
}

// GetTopFans returns the track's top listeners.
func (s *TrackService) GetTopFans(ctx context.Context, t Track) ([]TopFan, error) {
	doc, err := s.get(ctx, "track.getTopFans", t)
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "user", "weight", decodeUser)
}

// GetTopTags returns the tags most applied to t.
func (s *TrackService) GetTopTags(ctx context.Context, t Track) ([]TopTag, error) {
	doc, err := s.get(ctx, "track.getTopTags", t)
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "tag", "count", decodeTag)
}

// Love marks t as loved. Requires authentication.
func (s *TrackService) Love(ctx context.Context, t Track) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	_, err := s.get(ctx, "track.love", t)
	return err
}

// Unlove removes t from the loved tracks. Requires authentication.
func (s *TrackService) Unlove(ctx context.Context, t Track) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	_, err := s.get(ctx, "track.unlove", t)
	return err
}

// Ban bans t from radio. Requires authentication.
func (s *TrackService) Ban(ctx context.Context, t Track) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	_, err := s.get(ctx, "track.ban", t)
	return err
}

// Share recommends t to each recipient, one call per recipient. Requires
// authentication.
func (s *TrackService) Share(ctx context.Context, t Track, recipients []string, message string) error {
	return s.share(ctx, "track.share", t, recipients, message)
}

// Search starts a track search by title, optionally narrowed to an
// artist. pageSize <= 0 uses DefaultPageSize.
func (s *TrackService) Search(title, artist string, pageSize int) *Search[Track] {
	terms := Params{"track": title}
	if artist != "" {
		terms.Set("artist", artist)
	}
	return newSearch(s.session, "track", terms, pageSize, decodeTrack)
}

// GetTags returns the tags the authenticated user applied to t.
func (s *TrackService) GetTags(ctx context.Context, t Track) ([]Tag, error) {
	return s.tags.getTags(ctx, t)
}

// AddTags tags t, one call per tag. Requires authentication.
func (s *TrackService) AddTags(ctx context.Context, t Track, tags ...Tag) error {
	return s.tags.addTags(ctx, t, tags)
}

// RemoveTags untags t, one call per tag. Requires authentication.
func (s *TrackService) RemoveTags(ctx context.Context, t Track, tags ...Tag) error {
	return s.tags.removeTags(ctx, t, tags)
}

// SetTags makes the user's tags on t exactly desired. Requires
// authentication.
func (s *TrackService) SetTags(ctx context.Context, t Track, desired []Tag, opts ...DiffOption) (TagDiff, error) {
	return s.tags.setTags(ctx, t, desired, opts...)
}

// ClearTags removes all of the user's tags from t. Requires authentication.
func (s *TrackService) ClearTags(ctx context.Context, t Track) ([]Tag, error) {
	return s.tags.clearTags(ctx, t)
}
