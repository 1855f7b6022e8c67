package config

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/adrianliechti/wingman-research/pkg/client"
	"github.com/adrianliechti/wingman-research/pkg/otel"
	"github.com/adrianliechti/wingman-research/pkg/task"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const DefaultURL = "http://localhost:5000"

type Config struct {
	URL   string
	Token string

	MaxAttempts int
	Interval    time.Duration

	Limiter *rate.Limiter
	Client  *http.Client
}

// Parse reads a config file. An empty path yields the defaults.
func Parse(path string) (*Config, error) {
	file := &configFile{}

	if path != "" {
		f, err := parseFile(path)

		if err != nil {
			return nil, err
		}

		file = f
	}

	c := &Config{
		URL: DefaultURL,

		MaxAttempts: task.DefaultMaxAttempts,
		Interval:    task.DefaultInterval,
	}

	if file.URL != "" {
		c.URL = file.URL
	}

	c.Token = file.Token

	if err := c.registerPolling(file.Polling); err != nil {
		return nil, err
	}

	c.Limiter = createLimiter(file.Limit)

	transport, err := file.Proxy.proxyTransport()

	if err != nil {
		return nil, err
	}

	c.Client = &http.Client{
		Transport: otel.Transport(transport),
	}

	return c, nil
}

func (c *Config) Options() []client.RequestOption {
	options := []client.RequestOption{
		client.WithURL(c.URL),
		client.WithPolling(c.MaxAttempts, c.Interval),
	}

	if c.Token != "" {
		options = append(options, client.WithToken(c.Token))
	}

	if c.Client != nil {
		options = append(options, client.WithClient(c.Client))
	}

	if c.Limiter != nil {
		options = append(options, client.WithLimiter(c.Limiter))
	}

	return options
}

type configFile struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Polling *pollingConfig `yaml:"polling"`

	Limit *int         `yaml:"limit"`
	Proxy *proxyConfig `yaml:"proxy"`
}

type pollingConfig struct {
	Attempts int    `yaml:"attempts"`
	Interval string `yaml:"interval"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return &config, nil
}

func (c *Config) registerPolling(cfg *pollingConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.Attempts < 0 {
		return errors.New("invalid polling attempts")
	}

	if cfg.Attempts > 0 {
		c.MaxAttempts = cfg.Attempts
	}

	if cfg.Interval != "" {
		interval, err := time.ParseDuration(cfg.Interval)

		if err != nil {
			return err
		}

		if interval <= 0 {
			return errors.New("invalid polling interval: " + cfg.Interval)
		}

		c.Interval = interval
	}

	return nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
