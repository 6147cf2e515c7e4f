package lastfm

import (
	"context"
	"strconv"
)

// ArtistService provides artist.* methods.
type ArtistService struct {
	resource
	tags tagging
}

// NewArtistService binds artist operations to s.
func NewArtistService(s Session) *ArtistService {
	r := resource{session: s}
	return &ArtistService{resource: r, tags: tagging{resource: r, kind: "artist"}}
}

// GetSimilar returns artists similar to a. A negative or zero limit
// leaves the count to the service.
func (s *ArtistService) GetSimilar(ctx context.Context, a Artist, limit int) ([]Artist, error) {
	doc, err := s.call(ctx, "artist.getSimilar", limitParams(a, limit))
	if err != nil {
		return nil, err
	}
	names, err := namesOf(doc)
	if err != nil {
		return nil, err
	}
	return artistsFromNames(names), nil
}

// getInfoNode returns the <artist> element of artist.getInfo.
func (s *ArtistService) getInfoNode(ctx context.Context, a Artist) (Node, error) {
	doc, err := s.get(ctx, "artist.getInfo", a)
	if err != nil {
		return Node{}, err
	}
	return doc.Child("artist")
}

// GetInfo returns the artist's metadata, statistics, images and bio.
func (s *ArtistService) GetInfo(ctx context.Context, a Artist) (*ArtistInfo, error) {
	n, err := s.getInfoNode(ctx, a)
	if err != nil {
		return nil, err
	}
	name, err := n.ChildText("name", 0)
	if err != nil {
		return nil, err
	}
	info := &ArtistInfo{
		Artist: Artist{Name: name},
		MBID:   n.OptionalChildText("mbid"),
		URL:    n.OptionalChildText("url"),
		Images: imageURLs(n),
	}
	if stats, err := n.Child("stats"); err == nil {
		if info.Listeners, err = stats.ChildInt("listeners"); err != nil {
			return nil, err
		}
		if info.Playcount, err = stats.ChildInt("playcount"); err != nil {
			return nil, err
		}
	}
	if bio, err := n.Child("bio"); err == nil {
		info.Bio = decodeBio(bio)
	}
	return info, nil
}

func decodeBio(n Node) ArtistBio {
	return ArtistBio{
		Published: n.OptionalChildText("published"),
		Summary:   n.OptionalChildText("summary"),
		Content:   n.OptionalChildText("content"),
	}
}

// GetListenerCount returns the number of distinct listeners.
func (s *ArtistService) GetListenerCount(ctx context.Context, a Artist) (int, error) {
	n, err := s.getInfoNode(ctx, a)
	if err != nil {
		return 0, err
	}
	listeners, err := n.PathText("stats", "listeners")
	if err != nil {
		return 0, err
	}
	return parseCount(listeners)
}

// GetPlaycount returns the artist's total play count.
func (s *ArtistService) GetPlaycount(ctx context.Context, a Artist) (int, error) {
	n, err := s.getInfoNode(ctx, a)
	if err != nil {
		return 0, err
	}
	plays, err := n.PathText("stats", "playcount")
	if err != nil {
		return 0, err
	}
	return parseCount(plays)
}

// GetImageURL returns the URL of the artist's image in the given size.
func (s *ArtistService) GetImageURL(ctx context.Context, a Artist, size ImageSize) (string, error) {
	n, err := s.getInfoNode(ctx, a)
	if err != nil {
		return "", err
	}
	return imageURL(n, size)
}

// GetBio returns the artist's biography.
func (s *ArtistService) GetBio(ctx context.Context, a Artist) (ArtistBio, error) {
	n, err := s.getInfoNode(ctx, a)
	if err != nil {
		return ArtistBio{}, err
	}
	bio, err := n.Child("bio")
	if err != nil {
		return ArtistBio{}, err
	}
	return decodeBio(bio), nil
}

// GetTopTracks returns the artist's most played tracks.
func (s *ArtistService) GetTopTracks(ctx context.Context, a Artist) ([]TopTrack, error) {
	doc, err := s.get(ctx, "artist.getTopTracks", a)
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "track", "playcount", decodeTrack)
}

// GetTopAlbums returns the artist's most played albums.
func (s *ArtistService) GetTopAlbums(ctx context.Context, a Artist) ([]TopAlbum, error) {
	doc, err := s.get(ctx, "artist.getTopAlbums", a)
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "album", "playcount", decodeAlbum)
}

// GetTopFans returns the artist's top listeners.
func (s *ArtistService) GetTopFans(ctx context.Context, a Artist) ([]TopFan, error) {
	doc, err := s.get(ctx, "artist.getTopFans", a)
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "user", "weight", decodeUser)
}

// GetTopTags returns the most applied tags. A negative limit returns all
// of them.
func (s *ArtistService) GetTopTags(ctx context.Context, a Artist, limit int) ([]TopTag, error) {
	doc, err := s.get(ctx, "artist.getTopTags", a)
	if err != nil {
		return nil, err
	}
	tags, err := decodeWeighted(doc, "tag", "count", decodeTag)
	if err != nil {
		return nil, err
	}
	return truncate(tags, limit), nil
}

// GetEvents returns the artist's upcoming events.
func (s *ArtistService) GetEvents(ctx context.Context, a Artist) ([]Event, error) {
	doc, err := s.get(ctx, "artist.getEvents", a)
	if err != nil {
		return nil, err
	}
	// Venues carry their own <id>, so read it from each <event> only.
	return decodeEach(doc, "event", decodeEvent)
}

func decodeEvent(n Node) (Event, error) {
	raw, err := n.ChildText("id", 0)
	if err != nil {
		return Event{}, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return Event{}, malformed("invalid event id %q", raw)
	}
	return Event{ID: id}, nil
}

// Share recommends the artist to each recipient (user names or email
// addresses), one call per recipient. Requires authentication.
func (s *ArtistService) Share(ctx context.Context, a Artist, recipients []string, message string) error {
	return s.share(ctx, "artist.share", a, recipients, message)
}

// Search starts an artist search. pageSize <= 0 uses DefaultPageSize.
func (s *ArtistService) Search(name string, pageSize int) *Search[Artist] {
	return newSearch(s.session, "artist", Params{"artist": name}, pageSize, decodeArtist)
}

// GetTags returns the tags the authenticated user applied to a.
func (s *ArtistService) GetTags(ctx context.Context, a Artist) ([]Tag, error) {
	return s.tags.getTags(ctx, a)
}

// AddTags tags a, one call per tag. Requires authentication.
func (s *ArtistService) AddTags(ctx context.Context, a Artist, tags ...Tag) error {
	return s.tags.addTags(ctx, a, tags)
}

// RemoveTags untags a, one call per tag. Requires authentication.
func (s *ArtistService) RemoveTags(ctx context.Context, a Artist, tags ...Tag) error {
	return s.tags.removeTags(ctx, a, tags)
}

// SetTags makes the user's tags on a exactly desired. Requires
// authentication.
func (s *ArtistService) SetTags(ctx context.Context, a Artist, desired []Tag, opts ...DiffOption) (TagDiff, error) {
	return s.tags.setTags(ctx, a, desired, opts...)
}

// ClearTags removes all of the user's tags from a and returns them.
// Requires authentication.
func (s *ArtistService) ClearTags(ctx context.Context, a Artist) ([]Tag, error) {
	return s.tags.clearTags(ctx, a)
}
