package research

type Option func(*Client)

func WithName(name string) Option {
	return func(c *Client) {
		c.name = name
	}
}
