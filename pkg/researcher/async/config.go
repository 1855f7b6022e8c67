package async

import (
	"net/http"

	"github.com/adrianliechti/wingman-research/pkg/client"
)

type Option func(*Client)

func WithClient(hc *http.Client) Option {
	return func(c *Client) {
		c.options = append(c.options, client.WithClient(hc))
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.options = append(c.options, client.WithToken(token))
	}
}

func WithRequestOptions(options ...client.RequestOption) Option {
	return func(c *Client) {
		c.options = append(c.options, options...)
	}
}
