package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

// Client talks to a local Ollama server.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL, model string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Complete sends prompt to the model and returns its raw text output.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0,
		},
	}

	var resp GenerateResponse
	if err := c.makeRequest(ctx, http.MethodPost, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Ping lists the installed models; used by the health checker.
func (c *Client) Ping(ctx context.Context) error {
	var tags TagsResponse
	return c.makeRequest(ctx, http.MethodGet, "/api/tags", nil, &tags)
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}, result interface{}) error {
	err := utils.DoJSON(ctx, c.httpClient, c.logger.WithField("model", c.model), utils.JSONRequest{
		Method:  method,
		URL:     c.baseURL + endpoint,
		Payload: payload,
	}, result)
	if err != nil {
		return fmt.Errorf("LLM request failed: %w", err)
	}
	return nil
}
