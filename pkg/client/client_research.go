package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/wingman-research/pkg/limiter"
	"github.com/adrianliechti/wingman-research/pkg/otel"
	"github.com/adrianliechti/wingman-research/pkg/report"
	"github.com/adrianliechti/wingman-research/pkg/task"

	"github.com/google/uuid"
)

const (
	DefaultSubmissionError = "Error generating research"
)

var (
	ErrTopicRequired = errors.New("research topic is required")
	ErrMissingID     = errors.New("research response without id")
)

type ResearchService struct {
	Options []RequestOption
}

func NewResearchService(opts ...RequestOption) ResearchService {
	return ResearchService{
		Options: opts,
	}
}

type Submission struct {
	ID string `json:"research_id,omitempty"`

	// Summary is set instead of ID by services that answer synchronously.
	Summary string `json:"summary,omitempty"`
}

type researchRequest struct {
	Topic string `json:"research_topic"`
}

type statusResponse struct {
	Status   string   `json:"status"`
	Progress *float64 `json:"progress,omitempty"`

	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Run submits a topic and tracks the task until it reaches a terminal outcome.
func (r *ResearchService) Run(ctx context.Context, topic string, opts ...RequestOption) task.Outcome {
	c := newRequestConfig(append(r.Options, opts...)...)

	topic = strings.TrimSpace(topic)

	if topic == "" {
		return task.Failure{
			Kind:   task.FailureValidation,
			Reason: ErrTopicRequired.Error(),
			Err:    ErrTopicRequired,
		}
	}

	if c.RequestID == "" {
		c.RequestID = uuid.NewString()
	}

	logger := slog.With("request_id", c.RequestID)

	submission, err := r.submit(ctx, c, topic)

	if err != nil {
		if ctx.Err() != nil {
			return task.Cancelled{Err: ctx.Err()}
		}

		logger.WarnContext(ctx, "research submission failed", "error", err)

		reason := DefaultSubmissionError

		var e *Error

		if errors.As(err, &e) && e.Message != "" {
			reason = e.Message
		}

		return task.Failure{
			Kind:   task.FailureSubmission,
			Reason: reason,
			Err:    err,
		}
	}

	if submission.ID == "" {
		if submission.Summary != "" {
			logger.DebugContext(ctx, "research answered synchronously")

			return task.Success{
				Report: report.Parse(submission.Summary),
				Raw:    submission.Summary,
			}
		}

		return task.Failure{
			Kind:   task.FailureSubmission,
			Reason: DefaultSubmissionError,
			Err:    ErrMissingID,
		}
	}

	logger.InfoContext(ctx, "research task submitted", "id", submission.ID)

	var endpoint task.StatusEndpoint = task.StatusFunc(func(ctx context.Context, id string) (*task.Snapshot, error) {
		return r.status(ctx, c, id)
	})

	endpoint = limiter.NewStatusEndpoint(c.Limiter, endpoint)
	endpoint = otel.NewStatusEndpoint("research", endpoint)

	poller := &task.Poller{
		MaxAttempts: c.MaxAttempts,
		Interval:    c.Interval,

		Progress: c.Progress,
	}

	return poller.Run(ctx, endpoint, submission.ID)
}

func (r *ResearchService) Submit(ctx context.Context, topic string, opts ...RequestOption) (*Submission, error) {
	c := newRequestConfig(append(r.Options, opts...)...)
	return r.submit(ctx, c, topic)
}

func (r *ResearchService) Status(ctx context.Context, id string, opts ...RequestOption) (*task.Snapshot, error) {
	c := newRequestConfig(append(r.Options, opts...)...)
	return r.status(ctx, c, id)
}

func (r *ResearchService) submit(ctx context.Context, c *RequestConfig, topic string) (*Submission, error) {
	var data bytes.Buffer

	if err := json.NewEncoder(&data).Encode(researchRequest{Topic: topic}); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+"/research", &data)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	setHeaders(req, c)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, convertError(resp)
	}

	var result Submission

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid research response: %w", err)
	}

	return &result, nil
}

func (r *ResearchService) status(ctx context.Context, c *RequestConfig, id string) (*task.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"/research/status/"+url.PathEscape(id), nil)

	if err != nil {
		return nil, err
	}

	setHeaders(req, c)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, convertError(resp)
	}

	var result statusResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid status response: %w", err)
	}

	snapshot := &task.Snapshot{
		State: task.State(result.Status),
	}

	if result.Progress != nil {
		snapshot.Progress = int(math.Max(0, math.Min(100, *result.Progress)))
	}

	switch snapshot.State {
	case task.StateComplete:
		snapshot.Result = result.Summary

	case task.StateError:
		snapshot.Error = result.Error
	}

	return snapshot, nil
}

func setHeaders(req *http.Request, c *RequestConfig) {
	req.Header.Set("Accept", "application/json")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	if c.RequestID != "" {
		req.Header.Set("X-Request-Id", c.RequestID)
	}
}
