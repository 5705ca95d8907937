package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adamwoolhether/apiclient/client/deferred"
	"github.com/adamwoolhether/apiclient/client/form"
	"github.com/adamwoolhether/apiclient/client/throttle"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Client issues requests through a shared [Transport] and hands back lazy,
// shareable results. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	transport  Transport
	logger     *slog.Logger
	tracer     trace.Tracer
	useJSONNum bool
}

// Build creates a Client. Without [WithTransport] it issues requests
// through an [HTTPTransport] configured by the remaining options.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("no-op tracer"),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	client.useJSONNum = opts.useJSONNum

	if opts.transport != nil {
		if opts.usesHTTPOptions() {
			return nil, errors.New("http transport options cannot be combined with WithTransport")
		}
		client.transport = opts.transport

		return client, nil
	}

	hc := &http.Client{}
	if opts.client != nil {
		cpy := *opts.client
		hc = &cpy
	}

	if opts.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case hc.Transport != nil:
		transport = hc.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	hc.Transport = transport

	client.transport = NewHTTPTransport(hc, opts.baseURL, func() *slog.Logger { return client.logger })

	return client, nil
}

// Get prepares a GET of address. Content-Type defaults to application/json;
// extraHeaders are applied on top and win on conflict.
func (c *Client) Get(address string, extraHeaders map[string]string) (*deferred.Deferred[any], error) {
	if err := checkAddress(address); err != nil {
		return nil, err
	}

	req := &Request{
		Method:  http.MethodGet,
		Address: address,
		Header:  jsonHeader(extraHeaders),
	}

	return c.prepare(req), nil
}

// Post prepares a POST of data, JSON-encoded, to address. Headers follow
// the same rules as [Client.Get]. Data that cannot be encoded is reported
// here, before anything is sent.
func (c *Client) Post(address string, data any, extraHeaders map[string]string) (*deferred.Deferred[any], error) {
	if err := checkAddress(address); err != nil {
		return nil, err
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	req := &Request{
		Method:  http.MethodPost,
		Address: address,
		Header:  jsonHeader(extraHeaders),
		Body:    body,
	}

	return c.prepare(req), nil
}

// PostFormData prepares a multipart POST of data to address. Only
// extraHeaders are sent; the multipart Content-Type is supplied by the
// transport unless the caller sets one. A nil data sends the literal body
// "{}" with no content type.
func (c *Client) PostFormData(address string, data *form.Data, extraHeaders map[string]string) (*deferred.Deferred[any], error) {
	if err := checkAddress(address); err != nil {
		return nil, err
	}

	req := &Request{
		Method:  http.MethodPost,
		Address: address,
		Header:  header(extraHeaders),
		Body:    emptyFormBody,
	}

	if data != nil {
		body, contentType, err := data.Encode()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
		}
		req.Body = body
		req.ContentType = contentType
	}

	return c.prepare(req), nil
}

// prepare wraps the call for req in a Deferred without issuing it.
func (c *Client) prepare(req *Request) *deferred.Deferred[any] {
	return deferred.New(func(ctx context.Context) (any, error) {
		return c.send(ctx, req)
	})
}

// send performs one transport call for req and applies the success or
// failure transform.
func (c *Client) send(ctx context.Context, req *Request) (any, error) {
	ctx, span := c.tracer.Start(ctx, "apiclient."+strings.ToLower(req.Method), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", req.Address),
	)

	traceID := span.SpanContext().TraceID().String()
	if !span.SpanContext().TraceID().IsValid() {
		traceID = uuid.New().String()
	}
	log := c.logger.With("trace_id", traceID, "method", req.Method, "address", req.Address)

	out := req.Clone()
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	resp, err := c.transport.Do(ctx, out)
	switch {
	case err != nil:
	case resp == nil:
		err = ErrNoResponse
	case !resp.ok():
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		err = newResponseError(resp)
	}

	if err != nil {
		msg := c.handleError(log, err)
		span.SetStatus(codes.Error, msg.Error())
		return nil, msg
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	return c.extract(log, resp), nil
}

// extract returns the parsed JSON body, else the raw body text, else an
// empty object. It never fails.
func (c *Client) extract(log *slog.Logger, resp *Response) any {
	v, err := c.decode(resp.Body)
	if err != nil {
		if len(resp.Body) > 0 {
			return string(resp.Body)
		}

		log.Warn("decoding response body as JSON failed, the body could be empty", "error", err)
		return map[string]any{}
	}

	if v == nil {
		return map[string]any{}
	}

	return v
}

func (c *Client) decode(body []byte) (any, error) {
	d := json.NewDecoder(bytes.NewReader(body))
	if c.useJSONNum {
		d.UseNumber()
	}

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}

	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding body: trailing data after JSON value")
	}

	return v, nil
}

// handleError normalizes err and logs it. The returned error carries only
// the normalized message.
func (c *Client) handleError(log *slog.Logger, err error) Error {
	msg := NormalizeError(err)
	log.Error("request failed", "error", string(msg))

	return msg
}

func header(extra map[string]string) http.Header {
	h := make(http.Header, len(extra))
	for k, v := range extra {
		h.Set(k, v)
	}

	return h
}

func jsonHeader(extra map[string]string) http.Header {
	h := make(http.Header, len(extra)+1)
	h.Set("Content-Type", defaultContentType)
	for k, v := range extra {
		h.Set(k, v)
	}

	return h
}
