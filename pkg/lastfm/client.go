package lastfm

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	APIKey     string       // Required: Last.fm API key
	APISecret  string       // Required: Last.fm API secret
	SessionKey string       // Optional: Session key for authenticated requests
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: Base URL for API (defaults to Last.fm API, used for testing)
	UserAgent  string       // Optional: User-Agent header (defaults to DefaultUserAgent)
	MaxRetries int          // Optional: attempts per call for temporary failures (defaults to 3, 1 disables retrying). Writes are not retried after network errors.
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Last.fm API operations. It is the
// concrete Session every service issues its calls through.
type Client struct {
	apiKey     string
	apiSecret  string
	sessionKey string
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	logger     Logger

	auth     *AuthService
	scrobble *ScrobbleService
	artists  *ArtistService
	albums   *AlbumService
	tags     *TagService
	tracks   *TrackService
	users    *UserService
	events   *EventService
}

const (
	// DefaultBaseURL is the default Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "lfm/1.0"

	defaultMaxRetries = 3
)

var _ Session = (*Client)(nil)

// NewClient creates a new Last.fm API client.
//
// Returns an error if required configuration (APIKey, APISecret) is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}
	if cfg.APISecret == "" {
		return nil, fmt.Errorf("%w: APISecret is required", ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		sessionKey: cfg.SessionKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		maxRetries: maxRetries,
		logger:     cfg.Logger,
	}

	c.auth = &AuthService{client: c, resource: resource{session: c}}
	c.scrobble = &ScrobbleService{resource: resource{session: c}}
	c.artists = NewArtistService(c)
	c.albums = NewAlbumService(c)
	c.tags = NewTagService(c)
	c.tracks = NewTrackService(c)
	c.users = NewUserService(c)
	c.events = NewEventService(c)

	return c, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService { return c.auth }

// Scrobble returns the scrobbling service.
func (c *Client) Scrobble() *ScrobbleService { return c.scrobble }

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService { return c.artists }

// Albums returns the album service.
func (c *Client) Albums() *AlbumService { return c.albums }

// Tags returns the tag service.
func (c *Client) Tags() *TagService { return c.tags }

// Tracks returns the track service.
func (c *Client) Tracks() *TrackService { return c.tracks }

// Users returns the user service.
func (c *Client) Users() *UserService { return c.users }

// Events returns the event service.
func (c *Client) Events() *EventService { return c.events }

// SetSessionKey sets the session key for authenticated requests.
func (c *Client) SetSessionKey(key string) {
	c.sessionKey = key
}

// GetSessionKey returns the current session key.
func (c *Client) GetSessionKey() string {
	return c.sessionKey
}

// Authenticated reports whether the client holds a session key.
func (c *Client) Authenticated() bool {
	return c.sessionKey != ""
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
