package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

type fakeCompleter struct {
	output string
	err    error
	block  bool
	prompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.output, f.err
}

func newTestResolver(t *testing.T, c Completer) *Resolver {
	t.Helper()
	r, err := NewResolver(c, time.Second, utils.NullLogger())
	require.NoError(t, err)
	return r
}

func TestResolver_ParsesReplyWrappedInProse(t *testing.T) {
	c := &fakeCompleter{output: `Sure! Here you go:
{"filters": {"property_types": ["villas"], "location_query": "Dubai", "rooms": 3}, "is_question": true, "intent": "Price_Info"}
Let me know if you need more.`}
	r := newTestResolver(t, c)

	got := r.Resolve(context.Background(), "price range of villas in dubai")

	assert.True(t, got.IsQuestion)
	assert.Equal(t, "price_info", got.Intent)
	assert.Equal(t, "Dubai", got.Filters["location_query"])
	assert.Equal(t, float64(3), got.Filters["rooms"])
	assert.Contains(t, c.prompt, "User: price range of villas in dubai\nOutput:")
}

func TestResolver_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		c    *fakeCompleter
	}{
		{"transport error", &fakeCompleter{err: errors.New("connection refused")}},
		{"no json", &fakeCompleter{output: "I cannot help with that."}},
		{"unbalanced", &fakeCompleter{output: `{"filters": {"rooms": 2}`}},
		{"broken json", &fakeCompleter{output: `{"filters": {rooms: 2}}`}},
		{"missing filters", &fakeCompleter{output: `{"is_question": true}`}},
		{"filters not an object", &fakeCompleter{output: `{"filters": "villas"}`}},
		{"wrong flag type", &fakeCompleter{output: `{"filters": {}, "is_question": "yes"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, tt.c)
			assert.Equal(t, models.FallbackResult{}, r.Resolve(context.Background(), "something odd"))
		})
	}
}

func TestResolver_Timeout(t *testing.T) {
	r, err := NewResolver(&fakeCompleter{block: true}, 20*time.Millisecond, utils.NullLogger())
	require.NoError(t, err)

	start := time.Now()
	got := r.Resolve(context.Background(), "villas")
	assert.Equal(t, models.FallbackResult{}, got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestResolver_EmptyQuery(t *testing.T) {
	c := &fakeCompleter{output: `{"filters": {"rooms": 1}}`}
	r := newTestResolver(t, c)

	assert.Equal(t, models.FallbackResult{}, r.Resolve(context.Background(), "   "))
	assert.Empty(t, c.prompt)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{`{"a":1}`, `{"a":1}`, nil},
		{`Output: {"a":{"b":2}} trailing {"c":3}`, `{"a":{"b":2}}`, nil},
		{`{"k":"has } brace"}`, `{"k":"has } brace"}`, nil},
		{`{"k":"escaped \" quote {"}`, `{"k":"escaped \" quote {"}`, nil},
		{`no object here`, "", ErrNoJSON},
		{`{"open": {`, "", ErrNoJSON},
	}

	for _, tt := range tests {
		got, err := ExtractJSON(tt.in)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
