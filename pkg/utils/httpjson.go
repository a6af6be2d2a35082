package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrTransport marks failures to reach the server or read its reply.
var ErrTransport = errors.New("transport failure")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

// JSONRequest describes one JSON call. Payload is encoded when non-nil.
type JSONRequest struct {
	Method  string
	URL     string
	Header  http.Header
	Payload interface{}
}

// DoJSON sends req and decodes a 2xx body into result. An empty body leaves
// result untouched.
func DoJSON(ctx context.Context, client *http.Client, logger logrus.FieldLogger, req JSONRequest, result interface{}) error {
	var body io.Reader
	var contentLength int

	if req.Payload != nil {
		jsonData, err := json.Marshal(req.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
		contentLength = len(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	logger.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL,
		"size":   contentLength,
	}).Debug("Making request")

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"url":           req.URL,
		"response_size": len(responseBody),
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Debug("Response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(responseBody)}
	}

	if result != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
