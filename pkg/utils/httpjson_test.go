package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "villa", in["q"])

		w.Write([]byte(`{"hits":3}`))
	}))
	defer server.Close()

	var out struct {
		Hits int `json:"hits"`
	}
	err := DoJSON(context.Background(), server.Client(), NullLogger(), JSONRequest{
		Method:  http.MethodPost,
		URL:     server.URL + "/search",
		Header:  http.Header{"X-Api-Key": {"secret"}},
		Payload: map[string]string{"q": "villa"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, 3, out.Hits)
}

func TestDoJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	err := DoJSON(context.Background(), server.Client(), NullLogger(), JSONRequest{Method: http.MethodGet, URL: server.URL}, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "status 502: upstream down", err.Error())
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestDoJSONTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := DoJSON(context.Background(), http.DefaultClient, NullLogger(), JSONRequest{Method: http.MethodGet, URL: url}, nil)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestDoJSONBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	var out map[string]any
	err := DoJSON(context.Background(), server.Client(), NullLogger(), JSONRequest{Method: http.MethodGet, URL: server.URL}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal response")
	assert.False(t, errors.Is(err, ErrTransport))
}
