package lastfm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordedCall struct {
	method string
	params Params
}

// fakeSession answers calls with canned documents keyed by method and
// records every call it receives.
type fakeSession struct {
	authed    bool
	responses map[string]string
	failOn    func(method string, p Params) error
	calls     []recordedCall
}

func newFakeSession(authed bool) *fakeSession {
	return &fakeSession{authed: authed, responses: make(map[string]string)}
}

func (f *fakeSession) respond(method, body string) *fakeSession {
	f.responses[method] = body
	return f
}

func (f *fakeSession) Authenticated() bool { return f.authed }

func (f *fakeSession) Call(_ context.Context, method string, params Params) (Node, error) {
	f.calls = append(f.calls, recordedCall{method: method, params: params.Clone()})
	if f.failOn != nil {
		if err := f.failOn(method, params); err != nil {
			return Node{}, err
		}
	}
	body, ok := f.responses[method]
	if !ok {
		body = `<lfm status="ok"></lfm>`
	}
	return ParseString(body)
}

func (f *fakeSession) methods() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.method
	}
	return out
}

func (f *fakeSession) count(method string) int {
	n := 0
	for _, c := range f.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

// newTestClient starts a server that writes body for every request and
// returns a client pointed at it. Retries are disabled.
func newTestClient(t *testing.T, sessionKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:     "test-api-key",
		APISecret:  "test-secret",
		SessionKey: sessionKey,
		BaseURL:    server.URL,
		MaxRetries: 1,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func lfmOK(inner string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">%s</lfm>`, inner)
}

func lfmFailed(code int, message string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<lfm status="failed"><error code="%d">%s</error></lfm>`, code, message)
}
