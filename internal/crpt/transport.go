package crpt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Doer issues one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type DoerFunc func(*http.Request) (*http.Response, error)

func (f DoerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

// Middleware decorates outbound requests (logging, metrics, headers).
type Middleware func(Doer) Doer

// Chain wraps d so that the first middleware is the outermost.
func Chain(d Doer, mws ...Middleware) Doer {
	for i := len(mws) - 1; i >= 0; i-- {
		d = mws[i](d)
	}
	return d
}

// Transport performs the single registry POST. Implementations return the raw
// response body or a transport error; the submitter never retries.
type Transport interface {
	Post(ctx context.Context, url, authorization string, payload []byte) ([]byte, error)
}

// HTTPTransport posts JSON payloads over a pooled http.Client.
type HTTPTransport struct {
	doer Doer
}

// NewHTTPTransport builds the registry transport. Middlewares wrap the
// underlying client outermost-first.
func NewHTTPTransport(timeout time.Duration, mws ...Middleware) *HTTPTransport {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          200,
			MaxIdleConnsPerHost:   100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
	return &HTTPTransport{doer: Chain(client, mws...)}
}

func (t *HTTPTransport) Post(ctx context.Context, url, authorization string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := t.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("registry returned %s", resp.Status)
	}
	return raw, nil
}
