package lastfm

import (
	"strconv"
	"time"
)

// The entity types below carry only their natural key, so == compares
// identity and they can be used as map keys. Comparison is exact:
// Tag{Name: "rock"} and Tag{Name: "Rock"} are different tags.

// Tag is a Last.fm tag.
type Tag struct {
	Name string
}

func (t Tag) Params() Params { return Params{"tag": t.Name} }
func (t Tag) String() string { return t.Name }

// Artist is a Last.fm artist.
type Artist struct {
	Name string
}

func (a Artist) Params() Params { return Params{"artist": a.Name} }
func (a Artist) String() string { return a.Name }

// Album is an album, identified by its artist and title.
type Album struct {
	Artist string
	Title  string
}

func (a Album) Params() Params { return Params{"artist": a.Artist, "album": a.Title} }
func (a Album) String() string { return a.Artist + " - " + a.Title }

// Track is a track, identified by its artist and title.
type Track struct {
	Artist string
	Title  string
}

func (t Track) Params() Params { return Params{"artist": t.Artist, "track": t.Title} }
func (t Track) String() string { return t.Artist + " - " + t.Title }

// User is a Last.fm user.
type User struct {
	Name string
}

func (u User) Params() Params { return Params{"user": u.Name} }
func (u User) String() string { return u.Name }

// Event is a Last.fm event.
type Event struct {
	ID int
}

func (e Event) Params() Params { return Params{"event": strconv.Itoa(e.ID)} }
func (e Event) String() string { return strconv.Itoa(e.ID) }

// Tags converts names to tags, keeping order.
func Tags(names ...string) []Tag {
	tags := make([]Tag, len(names))
	for i, n := range names {
		tags[i] = Tag{Name: n}
	}
	return tags
}

// Weighted pairs a value with the count or weight the service ranked it by.
type Weighted[T any] struct {
	Item   T
	Weight int
}

type (
	TopTrack  = Weighted[Track]
	TopAlbum  = Weighted[Album]
	TopArtist = Weighted[Artist]
	TopFan    = Weighted[User]
	TopTag    = Weighted[Tag]
)

// ArtistBio is the biography section of artist.getInfo.
type ArtistBio struct {
	Published string
	Summary   string
	Content   string
}

// ArtistInfo is the result of artist.getInfo.
type ArtistInfo struct {
	Artist    Artist
	MBID      string
	URL       string
	Listeners int
	Playcount int
	Images    []string // ordered small to mega, see ImageSize
	Bio       ArtistBio
}

// AlbumInfo is the result of album.getInfo.
type AlbumInfo struct {
	Album       Album
	ID          int
	MBID        string
	URL         string
	ReleaseDate string
	Listeners   int
	Playcount   int
	Images      []string
	TopTags     []Tag
}

// TrackInfo is the result of track.getInfo.
type TrackInfo struct {
	Track     Track
	ID        int
	MBID      string
	URL       string
	Duration  time.Duration
	Listeners int
	Playcount int
	Album     *Album // nil when the track is not attached to an album
	TopTags   []Tag
}

// EventInfo is the result of event.getInfo.
type EventInfo struct {
	Event     Event
	Title     string
	Headliner Artist
	Artists   []Artist
	Venue     string
	StartDate string // as rendered by the service
}

// LovedTrack is one entry of user.getLovedTracks.
type LovedTrack struct {
	Track Track
	At    time.Time
}

// RecentTrack is one entry of user.getRecentTracks.
type RecentTrack struct {
	Track      Track
	Album      string
	At         time.Time // zero while NowPlaying
	NowPlaying bool
}

// Play describes a track for scrobbling or now playing updates.
type Play struct {
	Artist      string        // Required: Artist name
	Track       string        // Required: Track name
	Album       string        // Optional: Album name
	AlbumArtist string        // Optional: Album artist (if different from track artist)
	Duration    time.Duration // Optional: Track duration
	TrackNumber int           // Optional: Track number on album
	MBTrackID   string        // Optional: MusicBrainz track ID
}

// Scrobble represents a single scrobble with timestamp.
type Scrobble struct {
	Play      Play      // The track being scrobbled
	Timestamp time.Time // When the track started playing
}

// Token represents an authentication token from auth.getToken.
type Token struct {
	Token string // The authentication token
}

// SessionInfo is the result of auth.getSession.
type SessionInfo struct {
	Key        string // Session key for authenticated requests
	Username   string // Last.fm username
	Subscriber bool   // Whether user is a subscriber
}

// IgnoredMessage explains why the service ignored a scrobble.
type IgnoredMessage struct {
	Code int
	Text string
}

// NowPlayingResponse represents the response from track.updateNowPlaying.
type NowPlayingResponse struct {
	Artist         string
	Track          string
	Album          string
	AlbumArtist    string
	IgnoredMessage IgnoredMessage
}

// ScrobbleResult is one accepted or ignored scrobble.
type ScrobbleResult struct {
	Artist         string
	Track          string
	Album          string
	Timestamp      time.Time
	IgnoredMessage IgnoredMessage
}

// ScrobbleResponse represents the response from track.scrobble.
type ScrobbleResponse struct {
	Accepted  int // Number of scrobbles accepted
	Ignored   int // Number of scrobbles ignored
	Scrobbles []ScrobbleResult
}
