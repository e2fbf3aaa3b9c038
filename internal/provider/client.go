// Package provider is the HTTP client for the external image-generation
// API. The platform core never calls it on a balance-mutating path:
// generations are recorded only after this client returns a successful
// image, so a provider failure never debits credits.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Closed failure contract. Callers branch on these, never on message text.
var (
	ErrContentPolicy  = errors.New("prompt rejected by content policy")
	ErrCapacity       = errors.New("service is at capacity")
	ErrInvalidRequest = errors.New("invalid generation request")
	ErrUnavailable    = errors.New("generation service unavailable")
)

// AspectRatios are the five frame shapes the generator offers.
var AspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}

type Request struct {
	Prompt      string
	AspectRatio string
	// Resolution is advisory; the model decides the actual output size.
	Resolution string
}

type Image struct {
	URL   string
	Bytes []byte
	Mime  string
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(apiKey, baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Generate submits an asynchronous task and polls it until the image is
// ready or the task fails.
func (c *Client) Generate(ctx context.Context, req Request) (*Image, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("%w: prompt cannot be empty", ErrInvalidRequest)
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "1:1"
	}
	if req.Resolution == "" {
		req.Resolution = "1024x1024"
	}

	payload := map[string]any{
		"model": "imagen-4.0-generate-001",
		"input": map[string]any{
			"prompt":        req.Prompt,
			"aspect_ratio":  req.AspectRatio,
			"resolution":    req.Resolution,
			"output_format": "jpeg",
		},
	}

	taskID, err := c.createTask(ctx, payload)
	if err != nil {
		return nil, err
	}
	return c.pollTask(ctx, taskID)
}

func (c *Client) createTask(ctx context.Context, payload map[string]any) (string, error) {
	endpoint, err := c.endpoint("/api/v1/jobs/createTask", nil)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		c.log.Error("provider create task failed", "status", resp.StatusCode, "body", truncateBody(rawBody))
		return "", classifyHTTP(resp.StatusCode, rawBody)
	}

	var createResp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			TaskID string `json:"taskId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rawBody, &createResp); err != nil {
		return "", fmt.Errorf("%w: decode create response: %v", ErrUnavailable, err)
	}
	if createResp.Code != 200 {
		return "", classifyMessage(createResp.Msg)
	}
	if createResp.Data.TaskID == "" {
		return "", fmt.Errorf("%w: empty taskId in response", ErrUnavailable)
	}
	return createResp.Data.TaskID, nil
}

func (c *Client) pollTask(ctx context.Context, taskID string) (*Image, error) {
	endpoint, err := c.endpoint("/api/v1/jobs/recordInfo", url.Values{"taskId": {taskID}})
	if err != nil {
		return nil, err
	}

	const maxAttempts = 60
	pollInterval := 2 * time.Second

	for attempt := 0; attempt < maxAttempts; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("new request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		rawBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
		}
		if resp.StatusCode >= 300 {
			c.log.Error("provider poll failed", "status", resp.StatusCode, "task_id", taskID, "body", truncateBody(rawBody))
			return nil, classifyHTTP(resp.StatusCode, rawBody)
		}

		var statusResp struct {
			Code int `json:"code"`
			Data struct {
				State      string `json:"state"`
				ResultJSON string `json:"resultJson"`
				FailCode   string `json:"failCode"`
				FailMsg    string `json:"failMsg"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rawBody, &statusResp); err != nil {
			return nil, fmt.Errorf("%w: decode status response: %v", ErrUnavailable, err)
		}

		switch statusResp.Data.State {
		case "success":
			var result struct {
				ResultURLs []string `json:"resultUrls"`
			}
			if err := json.Unmarshal([]byte(statusResp.Data.ResultJSON), &result); err != nil {
				return nil, fmt.Errorf("%w: parse resultJson: %v", ErrUnavailable, err)
			}
			if len(result.ResultURLs) == 0 {
				return nil, fmt.Errorf("%w: no result urls", ErrUnavailable)
			}
			return &Image{URL: result.ResultURLs[0], Mime: "image/jpeg"}, nil

		case "fail":
			c.log.Warn("provider task failed", "task_id", taskID, "fail_code", statusResp.Data.FailCode, "fail_msg", statusResp.Data.FailMsg)
			return nil, classifyMessage(statusResp.Data.FailMsg)

		case "waiting", "generating", "processing", "queued", "queueing":
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pollInterval):
			}

		default:
			return nil, fmt.Errorf("%w: unknown task state %q", ErrUnavailable, statusResp.Data.State)
		}
	}
	return nil, fmt.Errorf("%w: task did not finish after %d polls", ErrUnavailable, maxAttempts)
}

func (c *Client) endpoint(path string, query url.Values) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	ref := &url.URL{Path: path}
	if query != nil {
		ref.RawQuery = query.Encode()
	}
	return base.ResolveReference(ref).String(), nil
}

// classifyHTTP maps transport-level failures onto the closed contract.
func classifyHTTP(status int, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status=%d", ErrCapacity, status)
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status=%d body=%s", ErrInvalidRequest, status, truncateBody(body))
	default:
		return fmt.Errorf("%w: status=%d", ErrUnavailable, status)
	}
}

// classifyMessage maps the provider's free-text failure reasons onto the
// closed contract. Unknown reasons degrade to ErrUnavailable.
func classifyMessage(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "blocked"), strings.Contains(lower, "policy"), strings.Contains(lower, "safety"):
		return fmt.Errorf("%w: %s", ErrContentPolicy, msg)
	case strings.Contains(lower, "quota"), strings.Contains(lower, "exhausted"), strings.Contains(lower, "capacity"):
		return fmt.Errorf("%w: %s", ErrCapacity, msg)
	case strings.Contains(lower, "invalid"):
		return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
	default:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
