package tlq

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option configures a Client at construction time. Options take
// precedence over values read from the environment.
type Option func(*Client)

// WithHost sets the TLQ server hostname.
func WithHost(host string) Option {
	return func(c *Client) {
		c.cfg.Host = host
	}
}

// WithPort sets the TLQ server port.
func WithPort(port int) Option {
	return func(c *Client) {
		c.cfg.Port = port
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.cfg.Timeout = d
	}
}

// WithMaxRetries sets the number of additional attempts made after a
// transient failure. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.cfg.MaxRetries = n
	}
}

// WithRetryWait bounds the exponential backoff delay between retry
// attempts. The delay starts at min, doubles each retry, and is capped
// at max.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		c.cfg.RetryWaitMin = min
		c.cfg.RetryWaitMax = max
	}
}

// WithLogger attaches a logger. The client logs attempts and retries at
// debug level only; the default logger discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMetrics registers client metrics with the given registerer and
// enables instrumentation of every request.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(reg)
	}
}

// WithRateLimit caps outbound requests (including retries) at rps
// requests per second using a token bucket. Zero or negative disables
// the limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}
