package research

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/wingman-research/pkg/researcher"
	"github.com/adrianliechti/wingman-research/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

type Client struct {
	name     string
	provider researcher.Provider
}

func New(provider researcher.Provider, options ...Option) (*Client, error) {
	if provider == nil {
		return nil, errors.New("invalid provider")
	}

	c := &Client{
		name:     "research_online",
		provider: provider,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name:        c.name,
			Description: "Deeply research a topic on the internet. The research runs in the background and can take a few minutes. Returns a summary and the sources it is based on.",

			Parameters: map[string]any{
				"type": "object",

				"properties": map[string]any{
					"instructions": map[string]any{
						"type":        "string",
						"description": "topic or question to research",
					},
				},

				"required": []string{"instructions"},
			},
		},
	}, nil
}

func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	if name != c.name {
		return nil, tool.ErrInvalidTool
	}

	instructions, ok := parameters["instructions"].(string)

	if !ok || strings.TrimSpace(instructions) == "" {
		return nil, errors.New("missing instructions parameter")
	}

	data, err := c.provider.Research(ctx, instructions, nil)

	if err != nil {
		return nil, err
	}

	result := Result{
		Content: data.Content,
	}

	if data.Report != nil {
		result.Summary = data.Report.Summary

		for _, s := range data.Report.Sources {
			result.Sources = append(result.Sources, Source{
				Title: s.Text,
				URL:   s.URL,
			})
		}
	}

	return result, nil
}
