package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

var ErrNoJSON = errors.New("no JSON object in model output")

// Completer produces raw model text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Resolver asks a language model to interpret queries the pattern
// extractor could not handle. Every failure degrades to an empty result.
type Resolver struct {
	completer Completer
	schema    *jsonschema.Schema
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewResolver(completer Completer, timeout time.Duration, logger *logrus.Logger) (*Resolver, error) {
	schema, err := compileFallbackSchema()
	if err != nil {
		return nil, err
	}
	return &Resolver{
		completer: completer,
		schema:    schema,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

func (r *Resolver) Resolve(ctx context.Context, query string) models.FallbackResult {
	if strings.TrimSpace(query) == "" {
		return models.FallbackResult{}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := r.completer.Complete(ctx, BuildPrompt(query))
	if err != nil {
		r.logger.WithError(err).WithField("query", query).Warn("LLM fallback unavailable")
		return models.FallbackResult{}
	}

	result, err := r.parse(raw)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"query":  query,
			"output": truncate(raw, 200),
		}).Warn("LLM fallback returned unusable output")
		return models.FallbackResult{}
	}

	r.logger.WithFields(logrus.Fields{
		"query":       query,
		"intent":      result.Intent,
		"is_question": result.IsQuestion,
		"filters":     len(result.Filters),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("LLM fallback resolved query")

	return result
}

func (r *Resolver) parse(raw string) (models.FallbackResult, error) {
	obj, err := ExtractJSON(raw)
	if err != nil {
		return models.FallbackResult{}, err
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(obj), &doc); err != nil {
		return models.FallbackResult{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := r.schema.Validate(doc); err != nil {
		return models.FallbackResult{}, fmt.Errorf("schema mismatch: %w", err)
	}

	var result models.FallbackResult
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return models.FallbackResult{}, fmt.Errorf("invalid reply: %w", err)
	}
	result.Intent = strings.ToLower(strings.TrimSpace(result.Intent))
	return result, nil
}

// ExtractJSON returns the first balanced {...} block in s. Braces inside
// string literals are ignored.
func ExtractJSON(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
