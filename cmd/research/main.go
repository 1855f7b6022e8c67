package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/adrianliechti/wingman-research/config"
	"github.com/adrianliechti/wingman-research/pkg/client"
	"github.com/adrianliechti/wingman-research/pkg/mcp"
	"github.com/adrianliechti/wingman-research/pkg/otel"
	"github.com/adrianliechti/wingman-research/pkg/researcher/async"
	"github.com/adrianliechti/wingman-research/pkg/task"
	"github.com/adrianliechti/wingman-research/pkg/tool"
	"github.com/adrianliechti/wingman-research/pkg/tool/research"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "", "config file")
	urlFlag := flag.String("url", "", "research service url")
	tokenFlag := flag.String("token", "", "research service token")
	formatFlag := flag.String("format", "text", "output format (text, html, json, raw)")
	mcpFlag := flag.Bool("mcp", false, "serve the research tool over MCP stdio")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "research", version)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := run(ctx, *configFlag, *urlFlag, *tokenFlag, *formatFlag, *mcpFlag, flag.Args())

	if err := shutdown(context.Background()); err != nil {
		slog.Warn("telemetry shutdown failed", "error", err)
	}

	stop()
	os.Exit(code)
}

func run(ctx context.Context, path, url, token, format string, serve bool, args []string) int {
	cfg, err := config.Parse(path)

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("invalid config: "+err.Error()))
		return 1
	}

	if url != "" {
		cfg.URL = url
	}

	if token != "" {
		cfg.Token = token
	}

	if serve {
		if err := serveMCP(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
			return 1
		}

		return 0
	}

	output, err := parseFormat(format)

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 2
	}

	topic := strings.Join(args, " ")

	if strings.TrimSpace(topic) == "" {
		topic, err = readTopic(os.Stdin, os.Stderr)

		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
			return 1
		}
	}

	c := client.New(cfg.URL, cfg.Options()...)

	bar := newProgressBar(os.Stderr)

	outcome := c.Research.Run(ctx, topic, client.WithProgress(bar.Update))

	bar.Clear()

	switch o := outcome.(type) {
	case task.Success:
		if err := writeReport(os.Stdout, output, o); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
			return 1
		}

		return 0

	case task.TimedOut:
		fmt.Fprintln(os.Stderr, errorStyle.Render("Research took too long to complete. Try a narrower topic."))

	case task.Cancelled:
		fmt.Fprintln(os.Stderr, dimStyle.Render("Research cancelled."))

	case task.Failure:
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+o.Reason))
	}

	return 1
}

func serveMCP(ctx context.Context, cfg *config.Config) error {
	r, err := async.New(cfg.URL, async.WithRequestOptions(cfg.Options()...))

	if err != nil {
		return err
	}

	t, err := research.New(otel.NewResearcher("async", r))

	if err != nil {
		return err
	}

	s, err := mcp.New("research", version, []tool.Provider{otel.NewTool("research", t)})

	if err != nil {
		return err
	}

	return s.Run(ctx)
}

func readTopic(r io.Reader, w io.Writer) (string, error) {
	reader := bufio.NewReader(r)

	fmt.Fprint(w, promptStyle.Render("Research topic: "))

	input, err := reader.ReadString('\n')

	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	input = strings.TrimSpace(input)

	if input == "" {
		return "", client.ErrTopicRequired
	}

	return input, nil
}
