package client

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Error is a non-2xx response of the research service.
type Error struct {
	StatusCode int

	// Message is the service provided error text, if any.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return http.StatusText(e.StatusCode)
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var body struct {
		Error string `json:"error"`
	}

	json.Unmarshal(data, &body)

	return &Error{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(body.Error),
	}
}
