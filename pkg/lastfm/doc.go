// Package lastfm is a typed client for the Last.fm web service, API 2.0.
//
// # Sessions and services
//
// A *Client signs and sends requests. It hands out one service per
// entity kind:
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:    "your-api-key",
//	    APISecret: "your-api-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	similar, err := client.Artists().GetSimilar(ctx, lastfm.Artist{Name: "Cher"}, 10)
//
// Services only depend on the Session interface, so they can be built
// over any implementation with NewArtistService, NewTagService and so on.
//
// Entities (Artist, Album, Track, Tag, User, Event) are plain values that
// hold only their identifying fields. Two entities are equal exactly when
// those fields are equal, case included.
//
// # Authentication
//
// Reads need only an API key. Writes (tagging, love, ban, share,
// scrobbling) need a session key obtained through the token flow:
//
//	token, err := client.Auth().GetToken(ctx)
//	fmt.Println("Please visit:", client.Auth().GetAuthURL(token.Token))
//	// wait for the user to authorize
//	session, err := client.Auth().GetSession(ctx, token.Token)
//	client.SetSessionKey(session.Key)
//
// A write attempted without a session key fails with
// ErrAuthenticationRequired before any request is sent.
//
// # Tags
//
// SetTags reconciles the user's tags on an entity with a desired list. It
// reads the current tags, adds the missing ones and then removes the
// extra ones, one call per tag:
//
//	diff, err := client.Artists().SetTags(ctx, cher, lastfm.Tags("pop", "diva"))
//
// # Searches and charts
//
// Search values page through results lazily; TotalResults and FetchPage
// each cost one request. Weekly charts carry the span they cover, and
// every item of a chart shares that span.
//
// # Errors
//
// Service errors are returned as *Error and keep the service's code:
//
//	var apiErr *lastfm.Error
//	if errors.As(err, &apiErr) && apiErr.Code == lastfm.ErrCodeInvalidSessionKey {
//	    // re-authenticate
//	}
//
// Missing response fields are reported as *NotFoundError, which matches
// ErrNotFound. Temporary failures are retried by the Client up to
// Config.MaxRetries attempts; the services themselves never retry.
package lastfm
