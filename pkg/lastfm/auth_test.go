package lastfm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAuthService_GetToken(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantToken   string
		wantCode    int
		errContains string
	}{
		{
			name:      "success",
			response:  lfmOK(`<token>test-token-123</token>`),
			wantToken: "test-token-123",
		},
		{
			name:        "invalid api key",
			response:    lfmFailed(10, "Invalid API key"),
			wantCode:    ErrCodeInvalidAPIKey,
			errContains: "error 10",
		},
		{
			name:        "service offline",
			response:    lfmFailed(11, "Service Offline"),
			wantCode:    ErrCodeServiceOffline,
			errContains: "error 11",
		},
		{
			name:        "missing token element",
			response:    lfmOK(``),
			errContains: `"token"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST request, got %s", r.Method)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
					t.Errorf("expected form Content-Type, got %s", ct)
				}
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}
				if method := r.FormValue("method"); method != "auth.getToken" {
					t.Errorf("expected method auth.getToken, got %s", method)
				}
				if apiKey := r.FormValue("api_key"); apiKey != "test-api-key" {
					t.Errorf("expected api_key test-api-key, got %s", apiKey)
				}
				if r.FormValue("api_sig") == "" {
					t.Error("expected api_sig to be present")
				}
				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			})

			token, err := client.Auth().GetToken(context.Background())
			if tt.errContains != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error to contain %q, got %q", tt.errContains, err.Error())
				}
				if tt.wantCode != 0 {
					var apiErr *Error
					if !errors.As(err, &apiErr) || apiErr.Code != tt.wantCode {
						t.Errorf("expected *Error with code %d, got %v", tt.wantCode, err)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token.Token != tt.wantToken {
				t.Errorf("expected token %q, got %q", tt.wantToken, token.Token)
			}
		})
	}
}

func TestAuthService_GetAuthURL(t *testing.T) {
	client, err := NewClient(Config{APIKey: "my-api-key", APISecret: "my-secret"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	got := client.Auth().GetAuthURL("test-token-123")
	want := "https://www.last.fm/api/auth/?api_key=my-api-key&token=test-token-123"
	if got != want {
		t.Errorf("expected URL %q, got %q", want, got)
	}
}

func TestAuthService_GetSession(t *testing.T) {
	tests := []struct {
		name           string
		response       string
		wantKey        string
		wantUsername   string
		wantSubscriber bool
		errContains    string
	}{
		{
			name: "subscriber",
			response: lfmOK(`<session>
	<name>testuser</name>
	<key>session-key-abc123</key>
	<subscriber>1</subscriber>
</session>`),
			wantKey:        "session-key-abc123",
			wantUsername:   "testuser",
			wantSubscriber: true,
		},
		{
			name: "non-subscriber",
			response: lfmOK(`<session>
	<name>freeuser</name>
	<key>free-session-key</key>
	<subscriber>0</subscriber>
</session>`),
			wantKey:      "free-session-key",
			wantUsername: "freeuser",
		},
		{
			name:        "unauthorized token",
			response:    lfmFailed(14, "Unauthorized Token"),
			errContains: "error 14",
		},
		{
			name:        "expired token",
			response:    lfmFailed(15, "Token has expired"),
			errContains: "error 15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}
				if method := r.FormValue("method"); method != "auth.getSession" {
					t.Errorf("expected method auth.getSession, got %s", method)
				}
				if token := r.FormValue("token"); token != "test-token" {
					t.Errorf("expected token test-token, got %s", token)
				}
				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			})

			session, err := client.Auth().GetSession(context.Background(), "test-token")
			if tt.errContains != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error to contain %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.Key != tt.wantKey {
				t.Errorf("expected key %q, got %q", tt.wantKey, session.Key)
			}
			if session.Username != tt.wantUsername {
				t.Errorf("expected username %q, got %q", tt.wantUsername, session.Username)
			}
			if session.Subscriber != tt.wantSubscriber {
				t.Errorf("expected subscriber %v, got %v", tt.wantSubscriber, session.Subscriber)
			}
			if client.Authenticated() {
				t.Error("GetSession should not install the key on the client")
			}
		})
	}
}

func TestAuthService_GetToken_ContextCancellation(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(lfmOK(`<token>late</token>`)))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Auth().GetToken(ctx)
	if err == nil {
		t.Fatal("expected context deadline error, got nil")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected context deadline error, got %v", err)
	}
}
