// Package rest provides a [client.Transport] backed by
// [github.com/go-resty/resty/v2].
package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/adamwoolhether/apiclient/client"
	"github.com/go-resty/resty/v2"
)

// untypedBodyKey marks a request whose body must go out without a
// Content-Type.
type untypedBodyKey struct{}

// Transport adapts a resty.Client to the client.Transport interface.
type Transport struct {
	rc *resty.Client
}

// New wraps a copy of rc. A nil rc gets a default resty.Client. Base URLs,
// TLS and proxies are configured on rc itself. The copy's pre-request hook
// is replaced.
func New(rc *resty.Client) *Transport {
	if rc == nil {
		rc = resty.New()
	}

	return &Transport{rc: rc.Clone().SetPreRequestHook(dropDetectedContentType)}
}

// NewWithBaseURL returns a Transport resolving relative addresses against baseURL.
func NewWithBaseURL(baseURL string) *Transport {
	return New(resty.New().SetBaseURL(baseURL))
}

// Do sends req through resty. Non-2xx statuses are returned as responses,
// never as errors.
func (t *Transport) Do(ctx context.Context, req *client.Request) (*client.Response, error) {
	if req == nil {
		return nil, errors.New("request must not be nil")
	}

	r := t.rc.R()
	for k, vs := range req.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if req.ContentType != "" && req.Header.Get("Content-Type") == "" {
		r.SetHeader("Content-Type", req.ContentType)
	}
	if req.Body != nil {
		if r.Header.Get("Content-Type") == "" {
			ctx = context.WithValue(ctx, untypedBodyKey{}, true)
		}
		r.SetBody(req.Body)
	}
	r.SetContext(ctx)

	resp, err := r.Execute(req.Method, req.Address)
	if err != nil {
		return nil, &client.TransportError{Op: "exec resty request", Err: err}
	}

	return &client.Response{
		StatusCode: resp.StatusCode(),
		StatusText: client.ReasonPhrase(resp.Status(), resp.StatusCode()),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// dropDetectedContentType removes the Content-Type resty infers for a
// body sent without one.
func dropDetectedContentType(_ *resty.Client, r *http.Request) error {
	if untyped, _ := r.Context().Value(untypedBodyKey{}).(bool); untyped {
		r.Header.Del("Content-Type")
	}

	return nil
}
