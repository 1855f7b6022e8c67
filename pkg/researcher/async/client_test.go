package async_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adrianliechti/wingman-research/pkg/client"
	"github.com/adrianliechti/wingman-research/pkg/researcher"
	"github.com/adrianliechti/wingman-research/pkg/researcher/async"
	"github.com/adrianliechti/wingman-research/pkg/task"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, state string) *httptest.Server {
	r := chi.NewRouter()

	r.Post("/research", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"research_id": "r-1"})
	})

	r.Get("/research/status/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":   state,
			"progress": 100,
			"summary":  "## Summary\n\nGo is fun.\n### Sources:\n* Go : https://go.dev",
			"error":    "backend exploded",
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func TestResearch(t *testing.T) {
	server := newServer(t, "complete")

	c, err := async.New(server.URL, async.WithRequestOptions(client.WithPolling(3, time.Millisecond)))
	require.NoError(t, err)

	result, err := c.Research(context.Background(), "golang", nil)
	require.NoError(t, err)

	require.Contains(t, result.Content, "### Sources:")
	require.Equal(t, []string{"Go is fun."}, result.Report.Summary)
	require.Equal(t, "https://go.dev", result.Report.Sources[0].URL)
}

func TestResearchFailure(t *testing.T) {
	server := newServer(t, "error")

	c, err := async.New(server.URL, async.WithRequestOptions(client.WithPolling(3, time.Millisecond)))
	require.NoError(t, err)

	_, err = c.Research(context.Background(), "golang", &researcher.ResearchOptions{})

	require.ErrorIs(t, err, task.ErrJob)
	require.EqualError(t, err, "backend exploded")
}

func TestResearchTimeout(t *testing.T) {
	server := newServer(t, "pending")

	var progress []int

	c, err := async.New(server.URL, async.WithRequestOptions(client.WithPolling(2, time.Millisecond)))
	require.NoError(t, err)

	_, err = c.Research(context.Background(), "golang", &researcher.ResearchOptions{
		Progress: func(value int) {
			progress = append(progress, value)
		},
	})

	require.ErrorIs(t, err, task.ErrTimeout)
	require.Equal(t, []int{100, 100}, progress)
}

func TestNewInvalidURL(t *testing.T) {
	_, err := async.New("")
	require.Error(t, err)
}
