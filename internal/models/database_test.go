package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommaList(t *testing.T) {
	v, err := CommaList{"a.webp", "b.webp"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "a.webp,b.webp", v)

	var s CommaList
	require.NoError(t, s.Scan([]byte("x,y")))
	assert.Equal(t, CommaList{"x", "y"}, s)

	require.NoError(t, s.Scan(""))
	assert.Empty(t, s)

	assert.Error(t, s.Scan(42))
}

func TestCachedPropertyGeohash(t *testing.T) {
	p := NewCachedProperty("q1", 0, Listing{
		ID:        "42",
		Title:     "Marina view",
		Latitude:  Float64Ptr(25.0805),
		Longitude: Float64Ptr(55.1403),
	})
	require.NoError(t, p.BeforeCreate(nil))
	assert.Len(t, p.Geohash, 12)
	assert.Equal(t, "thrn", p.Geohash[:4])

	bare := NewCachedProperty("q1", 1, Listing{ID: "43"})
	require.NoError(t, bare.BeforeCreate(nil))
	assert.Empty(t, bare.Geohash)
}

func TestCachedPropertyListing(t *testing.T) {
	l := Listing{ID: "7", Title: "Villa", Price: Float64Ptr(1500000), ImageURLs: []string{"a", "b"}}
	got := NewCachedProperty("q", 3, l).Listing()
	assert.Equal(t, l, got)
}
