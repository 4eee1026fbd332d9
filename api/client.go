/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package api speaks the Clueless game server's JSON-over-HTTP protocol.
// Every endpoint is a POST; a non-200 reply becomes a *StatusError carrying
// the server's own explanation when it gave one.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type Logger interface {
	Printf(format string, args ...any)
}

// StatusError is a non-200 reply from the game server.
type StatusError struct {
	Endpoint string
	Status   int
	Detail   string
}

// Error returns the server's detail unmodified when present, so messages such
// as "Cannot move to an occupied hallway." reach the player verbatim.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: request failed: %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
}

type Client struct {
	base   *url.URL
	client *http.Client
	logger Logger
}

func NewClient(baseURL string, timeout time.Duration, logger Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &Client{
		base: base,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()
	return u.String()
}

// post sends body (if non-nil) as JSON and decodes a 200 reply into out (if
// non-nil).
func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, query), reader)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	startTime := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	c.logger.Printf("API: POST %s (%s) returned %d in %s",
		path,
		requestID,
		resp.StatusCode,
		time.Since(startTime).Round(time.Microsecond),
	)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			Endpoint: path,
			Status:   resp.StatusCode,
			Detail:   detail(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", path, err)
	}

	return nil
}

// detail extracts {"detail": "..."} from an error body. Validation failures
// carry a structured detail, which is not a message for the player.
func detail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err != nil {
		return ""
	}

	return s
}
