// Package flow talks to the remote automation triggers that list storage
// folders, save an email into a folder and create a folder from the sender's
// domain.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"go.withmatt.com/mailflow/internal/log"
)

// Endpoints holds the signed trigger URLs.
type Endpoints struct {
	ListFoldersURL  string
	UploadURL       string
	CreateFolderURL string
}

// Client calls the triggers. Requests carry no timeout of their own; the
// HTTP client's setting applies.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the HTTP client, used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a Client for the given endpoints.
func New(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints:  endpoints,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is the outcome of a trigger call that reached the server.
type Response struct {
	StatusCode int
	Status     string
}

// OK reports whether the trigger accepted the request.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// post sends body (nil for an empty request) and returns the response with
// its body still open. Callers must close it.
func (c *Client) post(ctx context.Context, op, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, newNetworkError(op, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	log.Printf("%s request id=%s", op, requestID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(op, url, err)
	}
	log.Printf("%s response id=%s status=%s", op, requestID, resp.Status)
	return resp, nil
}

// send posts body and reduces the reply to its status.
func (c *Client) send(ctx context.Context, op, url string, body any) (Response, error) {
	resp, err := c.post(ctx, op, url, body)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return Response{StatusCode: resp.StatusCode, Status: resp.Status}, nil
}
