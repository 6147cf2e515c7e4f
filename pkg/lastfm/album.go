package lastfm

import "context"

// AlbumService provides album.* methods.
type AlbumService struct {
	resource
	tags tagging
}

// NewAlbumService binds album operations to s.
func NewAlbumService(s Session) *AlbumService {
	r := resource{session: s}
	return &AlbumService{resource: r, tags: tagging{resource: r, kind: "album"}}
}

func (s *AlbumService) getInfoNode(ctx context.Context, a Album) (Node, error) {
	doc, err := s.get(ctx, "album.getInfo", a)
	if err != nil {
		return Node{}, err
	}
	return doc.Child("album")
}

// GetInfo returns the album's metadata and statistics.
func (s *AlbumService) GetInfo(ctx context.Context, a Album) (*AlbumInfo, error) {
	n, err := s.getInfoNode(ctx, a)
	if err != nil {
		return nil, err
	}
	album, err := decodeAlbum(n)
	if err != nil {
		return nil, err
	}
	info := &AlbumInfo{
		Album:       album,
		MBID:        n.OptionalChildText("mbid"),
		URL:         n.OptionalChildText("url"),
		ReleaseDate: n.OptionalChildText("releasedate"),
		Images:      imageURLs(n),
	}
	if _, err := n.Child("id"); err == nil {
		if info.ID, err = n.ChildInt("id"); err != nil {
			return nil, err
		}
	}
	if info.Listeners, err = n.ChildInt("listeners"); err != nil {
		return nil, err
	}
	if info.Playcount, err = n.ChildInt("playcount"); err != nil {
		return nil, err
	}
	if toptags, err := n.Child("toptags"); err == nil {
		if info.TopTags, err = decodeEach(toptags, "tag", decodeTag); err != nil {
			return nil, err
		}
	}
	return info, nil
}

// GetImageURL returns the URL of the album cover in the given size.
func (s *AlbumService) GetImageURL(ctx context.Context, a Album, size ImageSize) (string, error) {
	n, err := s.getInfoNode(ctx, a)
	if err != nil {
		return "", err
	}
	return imageURL(n, size)
}

// GetTopTags returns the tags most applied to a.
func (s *AlbumService) GetTopTags(ctx context.Context, a Album) ([]TopTag, error) {
	doc, err := s.get(ctx, "album.getTopTags", a)
	if err != nil {
		return nil, err
	}
	return decodeWeighted(doc, "tag", "count", decodeTag)
}

// Search starts an album search. pageSize <= 0 uses DefaultPageSize.
func (s *AlbumService) Search(title string, pageSize int) *Search[Album] {
	return newSearch(s.session, "album", Params{"album": title}, pageSize, decodeAlbum)
}

// GetTags returns the tags the authenticated user applied to a.
func (s *AlbumService) GetTags(ctx context.Context, a Album) ([]Tag, error) {
	return s.tags.getTags(ctx, a)
}

// AddTags tags a, one call per tag. Requires authentication.
func (s *AlbumService) AddTags(ctx context.Context, a Album, tags ...Tag) error {
	return s.tags.addTags(ctx, a, tags)
}

// RemoveTags untags a, one call per tag. Requires authentication.
func (s *AlbumService) RemoveTags(ctx context.Context, a Album, tags ...Tag) error {
	return s.tags.removeTags(ctx, a, tags)
}

// SetTags makes the user's tags on a exactly desired. Requires
// authentication.
func (s *AlbumService) SetTags(ctx context.Context, a Album, desired []Tag, opts ...DiffOption) (TagDiff, error) {
	return s.tags.setTags(ctx, a, desired, opts...)
}

// ClearTags removes all of the user's tags from a. Requires authentication.
func (s *AlbumService) ClearTags(ctx context.Context, a Album) ([]Tag, error) {
	return s.tags.clearTags(ctx, a)
}
