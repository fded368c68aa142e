package rapidapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"linkedin-dashboard/lib/restyutil"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/rapidapi")

const (
	CredentialHeader = "x-rapidapi-key"

	MaxAttempts    = 3
	PreSendDelay   = 700 * time.Millisecond
	InitialBackoff = time.Second
)

// CredentialProvider supplies the API key at the start of every call.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

// StaticCredential is a fixed API key.
type StaticCredential string

func (s StaticCredential) Credential(context.Context) (string, error) {
	return string(s), nil
}

// Upload is a file sent as the multipart field "file".
type Upload struct {
	Filename string
	Contents []byte
}

type Request struct {
	Endpoint string
	Params   Params
	// defaults to GET
	Method string
	// marshalled as JSON when non-nil
	Body   any
	Upload *Upload
}

type ClientOptions struct {
	BaseUrl     string
	Credentials CredentialProvider
	// per attempt, defaults to 60 seconds
	Timeout time.Duration
	// defaults to SystemClock
	Clock Clock
	// receives full HTTP dumps when debug logging is enabled, can be nil
	InstrumentOutput restyutil.InstrumentOutput
	// called before every retry with the number of the upcoming attempt
	OnRetry func(attempt int, wait time.Duration)
}

// Client executes requests against the API, retrying rate limited ones.
// It holds no per-call state and can be used concurrently.
type Client struct {
	http        *resty.Client
	baseUrl     string
	credentials CredentialProvider
	clock       Clock
	onRetry     func(attempt int, wait time.Duration)
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if opts.Credentials == nil {
		return nil, fmt.Errorf("credential provider is required")
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)
	client.SetHeader("accept", "application/json")
	restyutil.InstrumentClient(client, otel.Tracer("lib/rapidapi/http"), opts.InstrumentOutput)

	return &Client{
		http:        client,
		baseUrl:     opts.BaseUrl,
		credentials: opts.Credentials,
		clock:       opts.Clock,
		onRetry:     opts.OnRetry,
	}, nil
}

func (c *Client) Get(ctx context.Context, endpoint string, params Params) (json.RawMessage, error) {
	return c.Do(ctx, Request{Endpoint: endpoint, Params: params})
}

func (c *Client) Post(ctx context.Context, endpoint string, params Params, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{
		Endpoint: endpoint,
		Params:   params,
		Method:   http.MethodPost,
		Body:     body,
	})
}

// Do executes a request. On success the response body is returned as is,
// otherwise the error is one of ErrMissingCredential, ErrRateLimited,
// *RemoteError, *NetworkError or the context's error.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Do")
	defer span.End()
	span.SetAttributes(attribute.String("endpoint", req.Endpoint))

	data, attempts, err := c.do(ctx, req)
	span.SetAttributes(attribute.Int("attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, req Request) (json.RawMessage, int, error) {
	key, err := c.credentials.Credential(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("read credential: %w", err)
	}
	if key == "" {
		return nil, 0, ErrMissingCredential
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var body []byte
	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
	}
	url := BuildURL(c.baseUrl, req.Endpoint, req.Params)

	attempt := 0
	var data json.RawMessage
	operation := func() error {
		attempt++
		err := c.wait(ctx, PreSendDelay)
		if err != nil {
			return backoff.Permanent(err)
		}
		data, err = c.send(ctx, key, method, url, body, req.Upload)
		return err
	}
	notify := func(err error, wait time.Duration) {
		slog.InfoContext(
			ctx, "retrying request",
			"endpoint", req.Endpoint,
			"attempt", attempt+1,
			"wait", wait,
		)
		if c.onRetry != nil {
			c.onRetry(attempt+1, wait)
		}
	}

	err = backoff.RetryNotifyWithTimer(
		operation,
		backoff.WithContext(newBackoff(), ctx),
		notify,
		&clockTimer{clock: c.clock},
	)
	if errors.Is(err, errRetryableRateLimit) {
		return nil, attempt, ErrRateLimited
	}
	if err != nil {
		return nil, attempt, err
	}
	return data, attempt, nil
}

// waits 1s before the 2nd attempt and 2s before the 3rd.
func newBackoff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     InitialBackoff,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Minute,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return backoff.WithMaxRetries(b, MaxAttempts-1)
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(d):
		return nil
	}
}

var errRetryableRateLimit = errors.New("rate limited")

func (c *Client) send(ctx context.Context, key, method, url string, body []byte, upload *Upload) (json.RawMessage, error) {
	r := c.http.R().
		SetContext(ctx).
		SetHeader(CredentialHeader, key)
	if body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if upload != nil {
		r.SetFileReader("file", upload.Filename, bytes.NewReader(upload.Contents))
	}

	res, err := r.Execute(method, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, backoff.Permanent(&NetworkError{Err: err})
	}

	status := res.StatusCode()
	if status == http.StatusTooManyRequests {
		return nil, errRetryableRateLimit
	}
	if status < 200 || status > 299 {
		return nil, backoff.Permanent(&RemoteError{
			Status: status,
			Detail: errorDetail(status, res.Body()),
		})
	}

	payload := res.Body()
	if !json.Valid(payload) {
		return nil, backoff.Permanent(&RemoteError{
			Status: status,
			Detail: "invalid JSON response",
		})
	}
	out := make(json.RawMessage, len(payload))
	copy(out, payload)
	return out, nil
}
