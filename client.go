package tlq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// healthCheckRetries pins the probe to a single retry regardless of the
// configured retry limit; a health check should fail fast.
const healthCheckRetries = 1

// Client talks to a TLQ server over its fixed HTTP/JSON API.
type Client struct {
	cfg     Config
	http    *resty.Client
	log     *zap.Logger
	limiter *rate.Limiter
	metrics *metrics
}

// New creates a client. Configuration is read from the TLQ_HOST,
// TLQ_PORT, TLQ_TIMEOUT and TLQ_MAX_RETRIES environment variables;
// options override environment values.
func New(opts ...Option) (*Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	// Pooled transport from retryablehttp; the pipeline below owns the
	// retry loop, so both layers have their retries disabled.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	c.http = resty.New().
		SetBaseURL(c.cfg.BaseURL()).
		SetTimeout(c.cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "tlq-go/"+Version).
		SetHeader("Content-Type", "application/json").
		SetTransport(retryClient.HTTPClient.Transport)

	return c, nil
}

// Config returns a copy of the client's effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Close releases the underlying transport's idle connections. Safe to
// call more than once.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// HealthCheck probes the server (GET /hello). It never fails: any error
// is converted to false.
func (c *Client) HealthCheck(ctx context.Context) bool {
	err := c.do(ctx, "health", http.MethodGet, "/hello", nil, nil, healthCheckRetries, nil)
	return err == nil
}

// AddMessage enqueues a message body (POST /add) and returns the
// server-assigned identifier. Bodies must be non-empty and at most
// MaxMessageSize bytes.
//
// Each call carries an X-Idempotency-Key header that stays constant
// across retries, so a retried insert cannot duplicate the message on
// servers that honor the key.
func (c *Client) AddMessage(ctx context.Context, body string) (string, error) {
	if body == "" {
		return "", &ValidationError{Field: "body", Reason: "must not be empty"}
	}
	if len(body) > MaxMessageSize {
		return "", &ValidationError{Field: "body", Reason: fmt.Sprintf("exceeds maximum size of %d bytes", MaxMessageSize)}
	}

	headers := map[string]string{"X-Idempotency-Key": uuid.NewString()}
	var res addResponse
	if err := c.do(ctx, "add", http.MethodPost, "/add", addRequest{Body: body}, &res, c.cfg.MaxRetries, headers); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", &ServerError{StatusCode: http.StatusOK, Body: "response missing message id"}
	}
	return res.ID, nil
}

// GetMessages pulls up to count messages from the queue (POST /get).
// The result may be shorter than count, including empty, when the queue
// has fewer messages ready.
func (c *Client) GetMessages(ctx context.Context, count int) ([]Message, error) {
	if count < 1 {
		return nil, &ValidationError{Field: "count", Reason: "must be a positive integer"}
	}

	var res getResponse
	if err := c.do(ctx, "get", http.MethodPost, "/get", getRequest{Count: count}, &res, c.cfg.MaxRetries, nil); err != nil {
		return nil, err
	}
	return res.Messages, nil
}

// DeleteMessages removes processed messages from the queue
// (POST /delete). One or many identifiers are sent as a single batch.
func (c *Client) DeleteMessages(ctx context.Context, ids ...string) error {
	if err := validateIDs(ids); err != nil {
		return err
	}
	return c.do(ctx, "delete", http.MethodPost, "/delete", idsRequest{IDs: ids}, nil, c.cfg.MaxRetries, nil)
}

// RetryMessages returns messages to the queue for redelivery
// (POST /retry). One or many identifiers are sent as a single batch.
func (c *Client) RetryMessages(ctx context.Context, ids ...string) error {
	if err := validateIDs(ids); err != nil {
		return err
	}
	return c.do(ctx, "retry", http.MethodPost, "/retry", idsRequest{IDs: ids}, nil, c.cfg.MaxRetries, nil)
}

// PurgeQueue removes all messages from the queue (POST /purge).
func (c *Client) PurgeQueue(ctx context.Context) error {
	return c.do(ctx, "purge", http.MethodPost, "/purge", nil, nil, c.cfg.MaxRetries, nil)
}

func validateIDs(ids []string) error {
	if len(ids) == 0 {
		return &ValidationError{Field: "ids", Reason: "must not be empty"}
	}
	for _, id := range ids {
		if id == "" {
			return &ValidationError{Field: "ids", Reason: "must not contain empty identifiers"}
		}
	}
	return nil
}

// do runs one operation through the retry pipeline: attempt, classify,
// back off on transient failures, surface the last failure once retries
// are exhausted. 4xx responses are surfaced immediately without retry.
func (c *Client) do(ctx context.Context, op, method, path string, payload, out any, maxRetries int, headers map[string]string) error {
	start := time.Now()
	err := c.attemptLoop(ctx, op, method, path, payload, out, maxRetries, headers)
	c.metrics.observe(op, start, err)
	return err
}

func (c *Client) attemptLoop(ctx context.Context, op, method, path string, payload, out any, maxRetries int, headers map[string]string) error {
	url := c.cfg.BaseURL() + path

	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return c.classify(url, err)
			}
		}

		req := c.http.R().SetContext(ctx)
		if payload != nil {
			req.SetBody(payload)
		}
		for k, v := range headers {
			req.SetHeader(k, v)
		}

		resp, err := req.Execute(method, path)

		var attemptErr error
		switch {
		case err != nil:
			attemptErr = c.classify(url, err)
		case resp.StatusCode() >= http.StatusInternalServerError:
			attemptErr = &ServerError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(string(resp.Body()))}
		case resp.IsError():
			// 4xx: the request itself is wrong, retrying cannot help.
			return &ServerError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(string(resp.Body()))}
		default:
			return c.decode(resp, out)
		}

		if attempt >= maxRetries {
			return attemptErr
		}

		var raw *http.Response
		if err == nil {
			raw = resp.RawResponse
		}
		wait := retryablehttp.DefaultBackoff(c.cfg.RetryWaitMin, c.cfg.RetryWaitMax, attempt, raw)
		c.log.Debug("attempt failed, backing off",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", wait),
			zap.Error(attemptErr),
		)
		c.metrics.retry(op)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return c.classify(url, ctx.Err())
		case <-timer.C:
		}
	}
}

// classify maps a transport-level failure onto the error taxonomy.
func (c *Client) classify(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{URL: url, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: url, Err: err}
	}
	return &ConnectionError{URL: url, Err: err}
}

// decode unmarshals a successful response body. A 2xx response the
// client cannot decode counts as a server failure.
func (c *Client) decode(resp *resty.Response, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &ServerError{StatusCode: resp.StatusCode(), Body: fmt.Sprintf("malformed response body: %v", err)}
	}
	return nil
}
