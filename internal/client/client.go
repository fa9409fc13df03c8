// Package client talks to a running HUSH backend over HTTP. hushctl uses it
// to submit updates and read back the aggregate.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"hush-backend/internal/adapters/primary/http/dto"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hush api: status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) SubmitUpdate(ctx context.Context, userID string, attributions map[string]float64) (*dto.SubmitUpdateResponse, error) {
	req := dto.SubmitUpdateRequest{UserID: userID, FeatureAttributions: attributions}
	var resp dto.SubmitUpdateResponse
	if err := c.do(ctx, http.MethodPost, "/v1/submit-update", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DashboardData(ctx context.Context) ([]dto.DashboardDataPointResponse, error) {
	var resp []dto.DashboardDataPointResponse
	if err := c.do(ctx, http.MethodGet, "/v1/dashboard-data", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GlobalModel(ctx context.Context) (*dto.GlobalModelResponse, error) {
	var resp dto.GlobalModelResponse
	if err := c.do(ctx, http.MethodGet, "/v1/model", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	url := c.baseURL + path

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.WithFields(log.Fields{
		"method": method,
		"url":    url,
	}).Debug("sending request to hush backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
