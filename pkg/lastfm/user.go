package lastfm

import (
	"context"
	"fmt"
)

// Period selects the time range of a user's top lists.
type Period string

const (
	PeriodOverall Period = "overall"
	Period7Day    Period = "7day"
	Period1Month  Period = "1month"
	Period3Month  Period = "3month"
	Period6Month  Period = "6month"
	Period12Month Period = "12month"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodOverall, Period7Day, Period1Month, Period3Month, Period6Month, Period12Month:
		return p, nil
	}
	return "", fmt.Errorf("lastfm: unknown period %q", s)
}

// UserService provides user.* methods.
type UserService struct {
	resource
}

// NewUserService binds user operations to s.
func NewUserService(s Session) *UserService {
	return &UserService{resource: resource{session: s}}
}

func periodParams(u User, period Period) Params {
	p := baseParams(u)
	if period != "" {
		p.Set("period", string(period))
	}
	return p
}

// GetTopArtists returns the user's most played artists over period.
func (s *UserService) GetTopArtists(ctx context.Context, u User, period Period) ([]TopArtist, error) {
	doc, err := s.call(ctx, "user.getTopArtists", periodParams(u, period))
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "artist", "playcount", decodeArtist)
}

// GetTopAlbums returns the user's most played albums over period.
func (s *UserService) GetTopAlbums(ctx context.Context, u User, period Period) ([]TopAlbum, error) {
	doc, err := s.call(ctx, "user.getTopAlbums", periodParams(u, period))
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "album", "playcount", decodeAlbum)
}

// GetTopTracks returns the user's most played tracks over period.
func (s *UserService) GetTopTracks(ctx context.Context, u User, period Period) ([]TopTrack, error) {
	doc, err := s.call(ctx, "user.getTopTracks", periodParams(u, period))
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "track", "playcount", decodeTrack)
}

// GetTopTags returns the tags the user applied most.
func (s *UserService) GetTopTags(ctx context.Context, u User) ([]TopTag, error) {
	doc, err := s.get(ctx, "user.getTopTags", u)
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "tag", "count", decodeTag)
}

// GetFriends returns the user's friends.
func (s *UserService) GetFriends(ctx context.Context, u User) ([]User, error) {
	doc, err := s.get(ctx, "user.getFriends", u)
	if err != nil {
		return nil, err
	}
	friends, err := doc.Child("friends")
	if err != nil {
		return nil, err
	}
	return decodeEach(friends, "user", decodeUser)
}

// GetNeighbours returns users with similar taste.
func (s *UserService) GetNeighbours(ctx context.Context, u User) ([]User, error) {
	doc, err := s.get(ctx, "user.getNeighbours", u)
	if err != nil {
		return nil, err
	}
	neighbours, err := doc.Child("neighbours")
	if err != nil {
		return nil, err
	}
	return decodeEach(neighbours, "user", decodeUser)
}

// GetLovedTracks returns the user's loved tracks, most recent first.
func (s *UserService) GetLovedTracks(ctx context.Context, u User) ([]LovedTrack, error) {
	doc, err := s.get(ctx, "user.getLovedTracks", u)
	if err != nil {
		return nil, err
	}
	return decodeEach(doc, "track", func(n Node) (LovedTrack, error) {
		t, err := decodeTrack(n)
		if err != nil {
			return LovedTrack{}, err
		}
		date, err := n.Child("date")
		if err != nil {
			return LovedTrack{}, err
		}
		uts, err := date.Attr("uts")
		if err != nil {
			return LovedTrack{}, err
		}
		at, err := ParseTimestamp(uts)
		if err != nil {
			return LovedTrack{}, err
		}
		return LovedTrack{Track: t, At: at}, nil
	})
}

// GetRecentTracks returns the user's latest scrobbles. limit <= 0 leaves
// the count to the service.
func (s *UserService) GetRecentTracks(ctx context.Context, u User, limit int) ([]RecentTrack, error) {
	doc, err := s.call(ctx, "user.getRecentTracks", limitParams(u, limit))
	if err != nil {
		return nil, err
	}
	return decodeEach(doc, "track", func(n Node) (RecentTrack, error) {
		t, err := decodeTrack(n)
		if err != nil {
			return RecentTrack{}, err
		}
		rt := RecentTrack{Track: t, Album: n.OptionalChildText("album")}
		if np, err := n.Attr("nowplaying"); err == nil && np == "true" {
			rt.NowPlaying = true
			return rt, nil
		}
		date, err := n.Child("date")
		if err != nil {
			return RecentTrack{}, err
		}
		uts, err := date.Attr("uts")
		if err != nil {
			return RecentTrack{}, err
		}
		if rt.At, err = ParseTimestamp(uts); err != nil {
			return RecentTrack{}, err
		}
		return rt, nil
	})
}

// GetWeeklyChartTimeSpans lists the spans weekly charts exist for.
func (s *UserService) GetWeeklyChartTimeSpans(ctx context.Context, u User) ([]TimeSpan, error) {
	doc, err := s.get(ctx, "user.getWeeklyChartList", u)
	if err != nil {
		return nil, err
	}
	return parseChartList(doc)
}

// GetWeeklyArtistChart returns the user's artist chart for span, or the
// latest week when span is nil.
func (s *UserService) GetWeeklyArtistChart(ctx context.Context, u User, span *TimeSpan) (WeeklyArtistChart, error) {
	doc, err := s.call(ctx, "user.getWeeklyArtistChart", chartParams(u, span))
	if err != nil {
		return WeeklyArtistChart{}, err
	}
	return assembleChart(doc, chartShape{root: "weeklyartistchart", item: "artist", weightField: "playcount"}, decodeArtist)
}

// GetWeeklyAlbumChart returns the user's album chart for span, or the
// latest week when span is nil.
func (s *UserService) GetWeeklyAlbumChart(ctx context.Context, u User, span *TimeSpan) (WeeklyAlbumChart, error) {
	doc, err := s.call(ctx, "user.getWeeklyAlbumChart", chartParams(u, span))
	if err != nil {
		return WeeklyAlbumChart{}, err
	}
	return assembleChart(doc, chartShape{root: "weeklyalbumchart", item: "album", weightField: "playcount"}, decodeAlbum)
}

// GetWeeklyTrackChart returns the user's track chart for span, or the
// latest week when span is nil.
func (s *UserService) GetWeeklyTrackChart(ctx context.Context, u User, span *TimeSpan) (WeeklyTrackChart, error) {
	doc, err := s.call(ctx, "user.getWeeklyTrackChart", chartParams(u, span))
	if err != nil {
		return WeeklyTrackChart{}, err
	}
	return assembleChart(doc, chartShape{root: "weeklytrackchart", item: "track", weightField: "playcount"}, decodeTrack)
}
