package lastfm

import (
	"context"
	"net/url"
)

// AuthURL is where users authorize a request token.
const AuthURL = "https://www.last.fm/api/auth/"

// AuthService implements the desktop authentication flow.
type AuthService struct {
	resource
	client *Client
}

// GetToken requests an unauthorized request token.
//
// This is the first step in the authentication flow. After obtaining a token,
// the user must authorize it by visiting the URL returned by GetAuthURL.
//
// Example:
//
//	token, err := client.Auth().GetToken(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Visit:", client.Auth().GetAuthURL(token.Token))
func (a *AuthService) GetToken(ctx context.Context) (*Token, error) {
	doc, err := a.call(ctx, "auth.getToken", Params{})
	if err != nil {
		return nil, err
	}
	token, err := doc.ChildText("token", 0)
	if err != nil {
		return nil, err
	}
	return &Token{Token: token}, nil
}

// GetAuthURL returns the URL where users authorize the token.
func (a *AuthService) GetAuthURL(token string) string {
	q := url.Values{}
	q.Set("api_key", a.client.apiKey)
	q.Set("token", token)
	return AuthURL + "?" + q.Encode()
}

// GetSession exchanges an authorized token for a session key.
//
// The key does not expire; store it and pass it back through
// Config.SessionKey or SetSessionKey. GetSession does not install the key
// on the client.
//
// Example:
//
//	session, err := client.Auth().GetSession(ctx, token.Token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.SetSessionKey(session.Key)
func (a *AuthService) GetSession(ctx context.Context, token string) (*SessionInfo, error) {
	doc, err := a.call(ctx, "auth.getSession", Params{"token": token})
	if err != nil {
		return nil, err
	}
	n, err := doc.Child("session")
	if err != nil {
		return nil, err
	}
	key, err := n.ChildText("key", 0)
	if err != nil {
		return nil, err
	}
	name, err := n.ChildText("name", 0)
	if err != nil {
		return nil, err
	}
	return &SessionInfo{
		Key:        key,
		Username:   name,
		Subscriber: n.OptionalChildText("subscriber") == "1",
	}, nil
}
