// Package client talks to a running dagcheck server over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/specialistvlad/dagcheck/internal/ctxlog"
	"github.com/specialistvlad/dagcheck/internal/pipeline"
	"resty.dev/v3"
)

// Client is a thin wrapper around a resty client bound to one server.
type Client struct {
	http *resty.Client
}

// errorBody is the error envelope returned by the server. Detail is either a
// string or a list of validation problems.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.http.Close()
}

// Ping calls the liveness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var pong map[string]string
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&pong).
		Get("/")
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("ping failed: server returned %s", res.Status())
	}
	if pong["Ping"] != "Pong" {
		return fmt.Errorf("ping failed: unexpected response %q", res.String())
	}
	return nil
}

// Parse submits g to the server and returns its report.
func (c *Client) Parse(ctx context.Context, g *pipeline.Graph) (pipeline.Report, error) {
	logger := ctxlog.FromContext(ctx)

	var report pipeline.Report
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(g).
		SetResult(&report).
		Post("/pipelines/parse")
	if err != nil {
		return pipeline.Report{}, fmt.Errorf("failed to submit pipeline: %w", err)
	}
	logger.Debug("Pipeline submitted.", "status", res.StatusCode())

	if res.IsError() {
		var failure errorBody
		if err := json.Unmarshal([]byte(res.String()), &failure); err != nil {
			return pipeline.Report{}, fmt.Errorf("server rejected pipeline: %s", res.Status())
		}
		var details []pipeline.Detail
		if json.Unmarshal(failure.Detail, &details) == nil && len(details) > 0 {
			return pipeline.Report{}, &pipeline.ValidationError{Details: details}
		}
		return pipeline.Report{}, fmt.Errorf("server rejected pipeline: %s: %s", res.Status(), string(failure.Detail))
	}
	return report, nil
}
