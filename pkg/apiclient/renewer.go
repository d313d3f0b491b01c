package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stocklane/authkit/pkg/refresh"
)

// NewRenewer returns a refresh.RenewFunc posting the refresh token to the
// renewal endpoint. It uses its own bare http.Client so a renewal can never
// pass through the interceptor and trigger itself recursively. The client
// timeout bounds the renewal; a timed-out renewal surfaces as a plain error,
// which the coordinator treats as a failed cycle.
func NewRenewer(cfg Config) refresh.RenewFunc {
	client := &http.Client{Timeout: cfg.Timeout}
	url := cfg.renewalURL()

	return func(ctx context.Context, refreshToken string) (string, error) {
		payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
		if err != nil {
			return "", fmt.Errorf("encode renewal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return "", NewAPIError(resp)
		}

		var out struct {
			Access string `json:"access"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", fmt.Errorf("decode renewal response: %w", err)
		}
		if out.Access == "" {
			return "", ErrEmptyRenewalResponse
		}
		return out.Access, nil
	}
}
