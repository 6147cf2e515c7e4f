package lastfm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	apiStatusOK     = "ok"
	apiStatusFailed = "failed"
)

// Call sends one request for method and returns the <lfm> root of the
// response.
//
// Every request is signed. The session key is attached whenever the
// client has one. Service errors come back as *Error. Temporary service
// errors and 5xx responses are retried with exponential backoff up to
// Config.MaxRetries attempts. Network errors are retried only for read
// methods: a write whose response was lost may already have been applied.
func (c *Client) Call(ctx context.Context, method string, params Params) (Node, error) {
	reqParams := params.Clone()
	reqParams.Set("method", method)
	reqParams.Set("api_key", c.apiKey)
	if c.sessionKey != "" {
		reqParams.Set("sk", c.sessionKey)
	}

	formData := url.Values{}
	for _, k := range reqParams.Keys() {
		formData.Set(k, reqParams[k])
	}
	formData.Set("api_sig", calculateSignature(reqParams, c.apiSecret))
	body := formData.Encode()

	readOnly := isReadMethod(method)
	var lastErr error
	backoff := 1 * time.Second

	for i := 0; i < c.maxRetries; i++ {
		c.logDebugf("lastfm: calling %s (attempt %d/%d)", method, i+1, c.maxRetries)

		root, err := c.do(ctx, body)
		if err == nil {
			c.logDebugf("lastfm: %s succeeded", method)
			return root, nil
		}
		lastErr = err

		if !isRetryable(err, readOnly) || i == c.maxRetries-1 {
			break
		}
		c.logDebugf("lastfm: %s failed, retrying: %v", method, err)
		if !sleep(ctx, backoff) {
			return Node{}, ctx.Err()
		}
		backoff = nextBackoff(backoff)
	}

	return Node{}, lastErr
}

// do performs a single HTTP round trip.
func (c *Client) do(ctx context.Context, body string) (Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(body))
	if err != nil {
		return Node{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Node{}, &transportError{err: fmt.Errorf("http request failed: %w", err), retry: isNetworkError(err), network: true}
	}

	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return Node{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return Node{}, &transportError{err: fmt.Errorf("server error: %s", resp.Status), retry: true}
	}

	// Last.fm reports most failures as 4xx with an <lfm status="failed">
	// body, so parse before looking at the status code.
	root, perr := ParseDocument(bytes.NewReader(data))
	if perr != nil || root.Name() != "lfm" {
		if resp.StatusCode != http.StatusOK {
			return Node{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		if perr == nil {
			perr = fmt.Errorf("unexpected root element %q", root.Name())
		}
		return Node{}, fmt.Errorf("failed to parse XML response: %w", perr)
	}

	status, _ := root.Attr("status")
	if status == apiStatusFailed {
		return Node{}, parseAPIError(root)
	}
	if resp.StatusCode != http.StatusOK {
		return Node{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if status != apiStatusOK {
		return Node{}, fmt.Errorf("unexpected response status %q", status)
	}
	return root, nil
}

func parseAPIError(root Node) error {
	errNode, err := root.Child("error")
	if err != nil {
		return fmt.Errorf("failed to parse error response: %w", err)
	}
	code, err := errNode.AttrInt("code")
	if err != nil {
		return fmt.Errorf("failed to parse error response: %w", err)
	}
	return &Error{Code: code, Message: errNode.Text()}
}

// transportError marks failures below the service protocol. network is
// set when no response was received.
type transportError struct {
	err     error
	retry   bool
	network bool
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isRetryable(err error, readOnly bool) bool {
	var te *transportError
	if errors.As(err, &te) {
		return te.retry && (readOnly || !te.network)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return false
}

// isReadMethod reports whether method only reads, like artist.getInfo
// or track.search.
func isReadMethod(method string) bool {
	_, name, _ := strings.Cut(method, ".")
	return strings.HasPrefix(name, "get") || name == "search"
}

// isNetworkError checks if an http.Client error came from the network.
func isNetworkError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	t := time.NewTimer(duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff doubles the backoff, capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
