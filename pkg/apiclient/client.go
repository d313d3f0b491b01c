package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stocklane/authkit/pkg/credentials"
	"github.com/stocklane/authkit/pkg/logger"
)

// Client is a JSON API client with the interceptor Transport installed.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New creates a client for the configured API. All calls pass through the
// interceptor; the token issuance and renewal paths are exempt from bearer
// attachment.
func New(cfg Config, tokens *credentials.Tokens, refresher Refresher, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}

	options := clientOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	c.log = options.log
	if c.log == nil {
		c.log = logger.Noop()
	}

	transportOpts := []TransportOption{
		WithExemptPaths(cfg.TokenPath, cfg.RefreshPath),
		WithTransportLogger(c.log),
	}
	if options.base != nil {
		transportOpts = append(transportOpts, WithBase(options.base))
	}

	c.http = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: NewTransport(tokens, refresher, transportOpts...),
	}

	return c
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		// bytes.Reader gives the request a GetBody, which the interceptor
		// needs to replay the call after a renewal.
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return NewAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
