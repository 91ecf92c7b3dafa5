package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthorized marks a 401-class response. Callers treat it as "token
// invalid": the session is logged out and the user is sent to the login view.
var ErrUnauthorized = errors.New("invalid or expired token")

// ErrNotFound marks a missing article or comment. Rendered as an empty view,
// not a notification.
var ErrNotFound = errors.New("not found")

// ValidationError carries the server's structured 4xx error body verbatim, so
// create/edit forms can surface it inline.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// checkStatus maps a non-2xx response onto the error taxonomy. The body is
// read through a LimitReader so a misbehaving server cannot balloon memory.
func checkStatus(resp *http.Response, op string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ValidationError{Detail: detailFromBody(body, resp.StatusCode)}
	}
	return fmt.Errorf("%s failed with status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}

// detailFromBody pulls the human-readable message out of a DRF-style error
// body: {"detail": "..."} or {"field": ["msg", ...], ...}.
func detailFromBody(body []byte, status int) string {
	var withDetail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &withDetail); err == nil && withDetail.Detail != "" {
		return withDetail.Detail
	}

	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for field, msgs := range fields {
			if len(msgs) == 0 {
				continue
			}
			if field == "non_field_errors" {
				parts = append(parts, msgs[0])
				continue
			}
			parts = append(parts, field+": "+msgs[0])
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("request rejected with status %d", status)
}
