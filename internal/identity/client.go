package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/rango/core/logger"
)

// Endpoint paths relative to the base URL.
const (
	PathClientIDs  = "/v1/clients/client-ids"
	PathAuthTokens = "/v1/clients/auth-tokens"
)

const (
	tracerName      = "github.com/dmitrymomot/rango/internal/identity"
	maxResponseSize = 1 << 20
)

// Record is a decoded JSON object returned by the identity service.
type Record map[string]any

// Client talks to the identity service.
type Client struct {
	baseURL string
	headers http.Header
	http    *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
	breaker *breaker

	timeout          time.Duration
	retryAttempts    int
	retryInterval    time.Duration
	breakerThreshold int
	breakerCooldown  time.Duration
}

// New creates a client for baseURL sending headers with every call.
// The base URL must be absolute; certificates are always verified by the default client.
func New(baseURL string, headers http.Header, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}

	c := &Client{
		baseURL:          baseURL,
		headers:          headers.Clone(),
		http:             &http.Client{Transport: http.DefaultTransport},
		logger:           logger.Discard(),
		tracer:           otel.GetTracerProvider().Tracer(tracerName),
		now:              time.Now,
		timeout:          5 * time.Second,
		retryAttempts:    2,
		retryInterval:    200 * time.Millisecond,
		breakerThreshold: 5,
		breakerCooldown:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.headers == nil {
		c.headers = http.Header{}
	}
	c.breaker = newBreaker(c.breakerThreshold, c.breakerCooldown, c.now)

	return c, nil
}

// SendRequest POSTs an empty form to path with the static headers merged with
// extra. An empty 2xx body yields an absent record.
func (c *Client) SendRequest(ctx context.Context, path string, extra http.Header) (Optional[Record], error) {
	ctx, span := c.tracer.Start(ctx, "identity.send_request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	if err := c.breaker.allow(); err != nil {
		err = fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "circuit open")
		return None[Record](), err
	}

	var (
		result   Optional[Record]
		attempts int
	)
	backoff := retry.WithMaxRetries(uint64(c.retryAttempts), retry.NewExponential(c.retryInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		res, err := c.post(ctx, path, extra)
		if err == nil {
			result = res
			return nil
		}
		if errors.Is(err, ErrServiceUnavailable) && ctx.Err() == nil {
			c.logger.WarnContext(ctx, "identity request attempt failed",
				logger.Component("identity"),
				logger.Path(path),
				logger.RetryCount(attempts),
				logger.Error(err),
			)
			return retry.RetryableError(err)
		}
		return err
	})
	span.SetAttributes(attribute.Int("identity.attempts", attempts))

	if err != nil && ctx.Err() != nil && !errors.Is(err, ErrServiceUnavailable) {
		err = fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	switch {
	case err == nil:
		c.breaker.success()
	case errors.Is(err, ErrServiceUnavailable):
		c.breaker.failure()
	default:
		// the service answered, so it is reachable
		c.breaker.success()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return None[Record](), err
	}
	return result, nil
}

// FetchClientID requests a client id. An empty response or an empty id is absent.
func (c *Client) FetchClientID(ctx context.Context) (Optional[string], error) {
	return c.fetchString(ctx, PathClientIDs, nil, "id")
}

// FetchAuthToken requests an auth token, sending headers along with the static ones.
func (c *Client) FetchAuthToken(ctx context.Context, headers http.Header) (Optional[string], error) {
	return c.fetchString(ctx, PathAuthTokens, headers, "authToken")
}

func (c *Client) fetchString(ctx context.Context, path string, headers http.Header, key string) (Optional[string], error) {
	rec, err := c.SendRequest(ctx, path, headers)
	if err != nil {
		return None[string](), err
	}
	r, ok := rec.Get()
	if !ok {
		return None[string](), nil
	}
	v, ok := r[key].(string)
	if !ok {
		return None[string](), fmt.Errorf("%w: %q: %w", ErrBadResponse, key, errMissingKey)
	}
	if v == "" {
		return None[string](), nil
	}
	return Some(v), nil
}

func (c *Client) post(ctx context.Context, path string, extra http.Header) (Optional[Record], error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, http.NoBody)
	if err != nil {
		return None[Record](), fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range extra {
		req.Header[k] = append([]string(nil), vs...)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return None[Record](), fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return None[Record](), fmt.Errorf("%w: read body: %w", ErrServiceUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return None[Record](), &StatusError{StatusCode: resp.StatusCode}
	}
	if len(body) > maxResponseSize {
		return None[Record](), fmt.Errorf("%w: %w", ErrBadResponse, errResponseTooLong)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return None[Record](), nil
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return None[Record](), fmt.Errorf("%w: decode body: %w", ErrBadResponse, err)
	}
	if rec == nil {
		// JSON null
		return None[Record](), nil
	}
	return Some(rec), nil
}
