package rapidapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"linkedin-dashboard/lib/htmlutil"
)

var (
	ErrMissingCredential = errors.New("please enter your RapidAPI key")
	ErrRateLimited       = errors.New("RapidAPI rate limit reached, try again later")
)

// RemoteError is a non-2xx (other than 429) response from the API.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	return e.Detail
}

// NetworkError is a failure to reach the API at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// errorDetail derives a human readable message from an error response body.
func errorDetail(status int, body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	err := json.Unmarshal(body, &payload)
	if err == nil && len(payload.Detail) > 0 && string(payload.Detail) != "null" {
		var text string
		if json.Unmarshal(payload.Detail, &text) == nil {
			if text != "" {
				return text
			}
		} else {
			var compact bytes.Buffer
			if json.Compact(&compact, payload.Detail) == nil {
				return compact.String()
			}
		}
	}

	if htmlutil.LooksLikeHTML(body) {
		summary := htmlutil.Summary(body)
		if summary != "" {
			return summary
		}
	}

	return fmt.Sprintf("HTTP error %d", status)
}
