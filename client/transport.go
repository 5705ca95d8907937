package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// HTTPTransport is the default [Transport], issuing requests through an
// [http.Client]. Relative addresses are resolved against an optional base URL.
type HTTPTransport struct {
	c     *http.Client
	base  *url.URL
	logFn func() *slog.Logger
}

// NewHTTPTransport returns a transport over hc. base may be nil, in which
// case every address must be absolute. logFn lazily resolves the logger
// used for body cleanup failures; a nil logFn uses [slog.Default].
func NewHTTPTransport(hc *http.Client, base *url.URL, logFn func() *slog.Logger) *HTTPTransport {
	if hc == nil {
		hc = &http.Client{}
	}
	if logFn == nil {
		logFn = slog.Default
	}

	return &HTTPTransport{c: hc, base: base, logFn: logFn}
}

// Do sends req and reads the whole response body.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := t.resolve(req.Address)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	httpReq.Header = req.Header.Clone()
	if httpReq.Header == nil {
		httpReq.Header = make(http.Header)
	}
	if req.ContentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	resp, err := t.c.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "exec http do", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.logFn().Error("failed to close response body", "error", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "reading response body", Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: ReasonPhrase(resp.Status, resp.StatusCode),
		Header:     resp.Header,
		Body:       b,
	}, nil
}

func (t *HTTPTransport) resolve(address string) (string, error) {
	if t.base == nil {
		return address, nil
	}

	ref, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("parsing address: %w", err)
	}

	return t.base.ResolveReference(ref).String(), nil
}
