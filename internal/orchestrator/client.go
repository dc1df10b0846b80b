// Package orchestrator contains the client for the Security Orchestrator's
// MSPL endpoint.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const msplPath = "/mspl"

// Client forwards MSPL documents to the Security Orchestrator.
type Client struct {
	rest *resty.Client
}

// NewClient creates a client for the Security Orchestrator at host (without
// scheme), e.g. "155.54.95.79:8002".
func NewClient(host string) *Client {
	base := host
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	rest := resty.New().
		SetBaseURL(base).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &Client{rest: rest}
}

// SendMSPL posts the raw MSPL document to the orchestrator.
func (c *Client) SendMSPL(ctx context.Context, mspl []byte) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/xml").
		SetBody(mspl).
		Post(msplPath)
	if err != nil {
		return fmt.Errorf("send mspl: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("send mspl: orchestrator returned status %d", resp.StatusCode())
	}
	return nil
}
