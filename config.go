package tlq

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Defaults applied when neither the environment nor an explicit option
// provides a value.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 1337
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// Backoff bounds between retry attempts; the delay doubles from min each
// retry and never exceeds max.
const (
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 30 * time.Second
)

// Config holds client configuration. It is immutable once a Client has
// been constructed from it.
type Config struct {
	Host       string
	Port       int
	Timeout    time.Duration
	MaxRetries int

	// RetryWaitMin and RetryWaitMax bound the exponential backoff delay
	// between retry attempts.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// envConfig mirrors the TLQ environment variable contract. The timeout
// is expressed in seconds, matching the server project's documentation.
type envConfig struct {
	Host       string  `envconfig:"TLQ_HOST" default:"localhost"`
	Port       int     `envconfig:"TLQ_PORT" default:"1337"`
	Timeout    float64 `envconfig:"TLQ_TIMEOUT" default:"30.0"`
	MaxRetries int     `envconfig:"TLQ_MAX_RETRIES" default:"3"`
}

// loadConfig reads configuration from the environment, falling back to
// defaults for unset variables.
func loadConfig() (Config, error) {
	var ec envConfig
	if err := envconfig.Process("", &ec); err != nil {
		return Config{}, fmt.Errorf("tlq: failed to load config: %w", err)
	}
	return Config{
		Host:         ec.Host,
		Port:         ec.Port,
		Timeout:      time.Duration(ec.Timeout * float64(time.Second)),
		MaxRetries:   ec.MaxRetries,
		RetryWaitMin: defaultRetryWaitMin,
		RetryWaitMax: defaultRetryWaitMax,
	}, nil
}

// BaseURL returns the server base URL derived from host and port.
func (c Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

func (c Config) validate() error {
	if c.Host == "" {
		return &ValidationError{Field: "host", Reason: "must not be empty"}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &ValidationError{Field: "port", Reason: fmt.Sprintf("must be between 1 and 65535, got %d", c.Port)}
	}
	if c.Timeout <= 0 {
		return &ValidationError{Field: "timeout", Reason: "must be positive"}
	}
	if c.MaxRetries < 0 {
		return &ValidationError{Field: "max_retries", Reason: "must not be negative"}
	}
	if c.RetryWaitMin <= 0 || c.RetryWaitMax < c.RetryWaitMin {
		return &ValidationError{Field: "retry_wait", Reason: "min must be positive and not exceed max"}
	}
	return nil
}
