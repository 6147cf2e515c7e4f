package lastfm

import "context"

// Session executes remote methods on behalf of the services. *Client is
// the production implementation; tests substitute canned responses.
type Session interface {
	// Call invokes method with params and returns the <lfm> root of the
	// response.
	Call(ctx context.Context, method string, params Params) (Node, error)

	// Authenticated reports whether the session may perform writes.
	Authenticated() bool
}

// Entity is implemented by every domain value that identifies itself to
// the service, e.g. Artist{Name: "Cher"} contributes artist=Cher.
type Entity interface {
	Params() Params
}

// baseParams returns a fresh parameter set identifying e. Callers add
// their own keys on top of it.
func baseParams(e Entity) Params {
	return e.Params().Clone()
}

// RequireAuth fails with ErrAuthenticationRequired unless s can write.
// Mutating operations call it before building their request.
func RequireAuth(s Session) error {
	if s == nil || !s.Authenticated() {
		return ErrAuthenticationRequired
	}
	return nil
}

// resource is embedded by every service. It holds the session by
// reference; the caller owns its lifetime.
type resource struct {
	session Session
}

func (r resource) call(ctx context.Context, method string, params Params) (Node, error) {
	return r.session.Call(ctx, method, params)
}

// get issues method with only e's identifying parameters.
func (r resource) get(ctx context.Context, method string, e Entity) (Node, error) {
	return r.call(ctx, method, baseParams(e))
}

func (r resource) requireAuth() error {
	return RequireAuth(r.session)
}

// share sends method once per recipient, as the service accepts a single
// recipient per call. It stops at the first failure.
func (r resource) share(ctx context.Context, method string, e Entity, recipients []string, message string) error {
	if err := r.requireAuth(); err != nil {
		return err
	}
	if len(recipients) == 0 {
		return ErrNoRecipients
	}
	for _, recipient := range recipients {
		p := baseParams(e)
		p.Set("recipient", recipient)
		if message != "" {
			p.Set("message", message)
		}
		if _, err := r.call(ctx, method, p); err != nil {
			return err
		}
	}
	return nil
}
