package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const (
	// defaultContentType is sent by Get and Post unless the caller overrides it.
	defaultContentType = "application/json"

	// fallbackErrMessage is the normalized message when a failure carries
	// neither a message nor a status.
	fallbackErrMessage = "Server error"
)

// emptyFormBody is the body PostFormData sends when it is given no form.
var emptyFormBody = []byte("{}")

var (
	// ErrInvalidAddress is returned before any network activity when the
	// target address is empty or cannot be parsed.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrEncodingPayload is returned before any network activity when the
	// request body cannot be encoded.
	ErrEncodingPayload = errors.New("encoding payload")
	// ErrUnexpectedStatusCode is wrapped by [ResponseError] for non-2xx responses.
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrNoResponse is returned when a [Transport] reports neither a response nor an error.
	ErrNoResponse = errors.New("transport returned no response")
)

// Request describes a single call handed to a [Transport].
type Request struct {
	Method  string
	Address string
	Header  http.Header
	Body    []byte

	// ContentType is the wire content type produced by the body encoding,
	// such as a multipart boundary. Transports apply it only when Header
	// carries no Content-Type.
	ContentType string
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	cpy := *r
	cpy.Header = r.Header.Clone()
	if cpy.Header == nil {
		cpy.Header = make(http.Header)
	}
	if r.Body != nil {
		cpy.Body = append([]byte(nil), r.Body...)
	}

	return &cpy
}

// Response is the raw result of a [Transport] call. The body is fully read.
type Response struct {
	StatusCode int
	// StatusText is the reason phrase, without the status code.
	StatusText string
	Header     http.Header
	Body       []byte
}

func (r *Response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport performs the network I/O for a [Client]. It is called only
// once a returned result is activated, and must be safe for concurrent use.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the [Transport] interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req).
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// ReasonPhrase extracts the reason phrase from an HTTP status line such as
// "404 Not Found". It falls back to the standard text for code.
func ReasonPhrase(status string, code int) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}

	return text
}
