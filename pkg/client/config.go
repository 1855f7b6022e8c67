package client

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type RequestConfig struct {
	URL   string
	Token string

	Client *http.Client

	// RequestID is sent as X-Request-Id on every request of a task.
	RequestID string

	Limiter *rate.Limiter

	MaxAttempts int
	Interval    time.Duration

	Progress func(progress int)
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = url
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func WithRequestID(id string) RequestOption {
	return func(c *RequestConfig) {
		c.RequestID = id
	}
}

func WithLimiter(l *rate.Limiter) RequestOption {
	return func(c *RequestConfig) {
		c.Limiter = l
	}
}

func WithPolling(attempts int, interval time.Duration) RequestOption {
	return func(c *RequestConfig) {
		c.MaxAttempts = attempts
		c.Interval = interval
	}
}

func WithProgress(fn func(progress int)) RequestOption {
	return func(c *RequestConfig) {
		c.Progress = fn
	}
}
