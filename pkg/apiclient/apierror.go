package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBodyBytes caps how much of an error response is read for message
// extraction.
const maxErrorBodyBytes = 64 << 10

// APIError is the normalized form of a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// NewAPIError builds an APIError from a response, extracting a human-readable
// message from the JSON body on a best-effort basis. The body is read at most
// once and read failures fall back silently to the status text.
func NewAPIError(resp *http.Response) *APIError {
	message := http.StatusText(resp.StatusCode)
	if message == "" {
		message = resp.Status
	}

	if resp.Body != nil {
		if body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)); err == nil {
			var payload struct {
				Message string `json:"message"`
				Detail  string `json:"detail"`
				Error   string `json:"error"`
			}
			if json.Unmarshal(body, &payload) == nil {
				switch {
				case payload.Message != "":
					message = payload.Message
				case payload.Detail != "":
					message = payload.Detail
				case payload.Error != "":
					message = payload.Error
				}
			}
		}
	}

	return &APIError{Status: resp.StatusCode, Message: message}
}
