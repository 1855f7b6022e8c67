package async

import (
	"context"
	"errors"

	"github.com/adrianliechti/wingman-research/pkg/client"
	"github.com/adrianliechti/wingman-research/pkg/researcher"
	"github.com/adrianliechti/wingman-research/pkg/task"
)

var _ researcher.Provider = (*Client)(nil)

// Client researches through a service that runs research as background
// tasks and reports their status on request.
type Client struct {
	url     string
	options []client.RequestOption

	client *client.Client
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		url: url,
	}

	for _, option := range options {
		option(c)
	}

	c.client = client.New(c.url, c.options...)

	return c, nil
}

func (c *Client) Research(ctx context.Context, instructions string, options *researcher.ResearchOptions) (*researcher.Result, error) {
	if options == nil {
		options = new(researcher.ResearchOptions)
	}

	var opts []client.RequestOption

	if options.Progress != nil {
		opts = append(opts, client.WithProgress(options.Progress))
	}

	outcome := c.client.Research.Run(ctx, instructions, opts...)

	result, ok := outcome.(task.Success)

	if !ok {
		return nil, task.Err(outcome)
	}

	return &researcher.Result{
		Content: result.Raw,
		Report:  result.Report,
	}, nil
}
