package lastfm

import "context"

// TagService provides tag.* methods.
type TagService struct {
	resource
}

// NewTagService binds tag operations to s.
func NewTagService(s Session) *TagService {
	return &TagService{resource: resource{session: s}}
}

// GetSimilar returns tags similar to t.
func (s *TagService) GetSimilar(ctx context.Context, t Tag) ([]Tag, error) {
	doc, err := s.get(ctx, "tag.getSimilar", t)
	if err != nil {
		return nil, err
	}
	names, err := namesOf(doc)
	if err != nil {
		return nil, err
	}
	return tagsFromNames(names), nil
}

// GetTopAlbumsWithCount returns the albums most tagged with t and how
// often each was tagged.
func (s *TagService) GetTopAlbumsWithCount(ctx context.Context, t Tag) (map[Album]int, error) {
	doc, err := s.get(ctx, "tag.getTopAlbums", t)
	if err != nil {
		return nil, err
	}
	albums, err := decodeWeighted(doc, "album", "tagcount", decodeAlbum)
	if err != nil {
		return nil, err
	}
	return countMap(albums), nil
}

// GetTopAlbums returns the albums most tagged with t, best first.
func (s *TagService) GetTopAlbums(ctx context.Context, t Tag) ([]Album, error) {
	doc, err := s.get(ctx, "tag.getTopAlbums", t)
	if err != nil {
		return nil, err
	}
	return decodeEach(doc, "album", decodeAlbum)
}

// GetTopArtistsWithCount returns the artists most tagged with t and how
// often each was tagged.
func (s *TagService) GetTopArtistsWithCount(ctx context.Context, t Tag) (map[Artist]int, error) {
	doc, err := s.get(ctx, "tag.getTopArtists", t)
	if err != nil {
		return nil, err
	}
	artists, err := decodeWeighted(doc, "artist", "tagcount", decodeArtist)
	if err != nil {
		return nil, err
	}
	return countMap(artists), nil
}

// GetTopArtists returns the artists most tagged with t, best first.
func (s *TagService) GetTopArtists(ctx context.Context, t Tag) ([]Artist, error) {
	doc, err := s.get(ctx, "tag.getTopArtists", t)
	if err != nil {
		return nil, err
	}
	names, err := namesOf(doc)
	if err != nil {
		return nil, err
	}
	return artistsFromNames(names), nil
}

// GetTopTracksWithCount returns the tracks most tagged with t and how
// often each was tagged.
func (s *TagService) GetTopTracksWithCount(ctx context.Context, t Tag) (map[Track]int, error) {
	doc, err := s.get(ctx, "tag.getTopTracks", t)
	if err != nil {
		return nil, err
	}
	tracks, err := decodeWeighted(doc, "track", "tagcount", decodeTrack)
	if err != nil {
		return nil, err
	}
	return countMap(tracks), nil
}

// GetTopTracks returns the tracks most tagged with t, best first.
func (s *TagService) GetTopTracks(ctx context.Context, t Tag) ([]Track, error) {
	doc, err := s.get(ctx, "tag.getTopTracks", t)
	if err != nil {
		return nil, err
	}
	return decodeEach(doc, "track", decodeTrack)
}

// Search starts a tag search. pageSize <= 0 uses DefaultPageSize.
func (s *TagService) Search(name string, pageSize int) *Search[Tag] {
	return newSearch(s.session, "tag", Params{"tag": name}, pageSize, decodeTag)
}

// GetWeeklyChartTimeSpans lists the spans weekly charts exist for.
func (s *TagService) GetWeeklyChartTimeSpans(ctx context.Context, t Tag) ([]TimeSpan, error) {
	doc, err := s.get(ctx, "tag.getWeeklyChartList", t)
	if err != nil {
		return nil, err
	}
	return parseChartList(doc)
}

// GetWeeklyArtistChart returns the artist chart for span, or for the most
// recent week when span is nil.
func (s *TagService) GetWeeklyArtistChart(ctx context.Context, t Tag, span *TimeSpan) (WeeklyArtistChart, error) {
	doc, err := s.call(ctx, "tag.getWeeklyArtistChart", chartParams(t, span))
	if err != nil {
		return WeeklyArtistChart{}, err
	}
	return assembleChart(doc, chartShape{root: "weeklyartistchart", item: "artist", weightField: "weight"}, decodeArtist)
}
