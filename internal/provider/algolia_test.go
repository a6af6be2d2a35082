package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

const sampleResponse = `{
  "results": [{
    "nbHits": 42,
    "page": 1,
    "hits": [{
      "objectID": "obj-1",
      "externalID": "8812",
      "title": "Spacious villa",
      "price": 3200000,
      "area": 4100.5,
      "rooms": 4,
      "baths": 5,
      "purpose": "for-sale",
      "completionStatus": "completed",
      "category": [{"slug": "residential"}, {"slug": "villas"}],
      "geography": {"lat": 25.06, "lng": 55.21},
      "location": [{"name": "UAE"}, {"name": "Dubai"}, {"name": "Jumeirah Village Circle"}],
      "coverPhoto": {"url": "https://cdn.example/cover.jpg"},
      "photoIDs": [101, 102],
      "agency": {"name": "Acme Realty"},
      "contactName": "Sara",
      "phoneNumber": {"mobile": "+971500000000", "whatsapp": "+971500000001"},
      "paymentPlanSummaries": [{"breakdown": {"downPaymentPercentage": 20}}]
    }, {
      "objectID": "obj-2",
      "title": "No extras"
    }]
  }]
}`

func TestAlgoliaClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/1/indexes/*/queries", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-Algolia-API-Key"))
		assert.Equal(t, "app", r.Header.Get("X-Algolia-Application-Id"))

		var req multiQueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		assert.Equal(t, "listings", req.Requests[0].IndexName)

		params, err := url.ParseQuery(req.Requests[0].Params)
		require.NoError(t, err)
		assert.Equal(t, "1", params.Get("page"))
		assert.Equal(t, "10", params.Get("hitsPerPage"))

		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := NewAlgoliaClient(server.URL+"/", "key", "app", "listings", 5*time.Second, utils.NullLogger())

	page, err := client.Search(context.Background(), models.FilterRecord{Purpose: models.PurposeForSale}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 42, page.Total)
	require.Len(t, page.Listings, 2)

	l := page.Listings[0]
	assert.Equal(t, "8812", l.ID)
	assert.Equal(t, "Spacious villa", l.Title)
	require.NotNil(t, l.Price)
	assert.Equal(t, 3200000.0, *l.Price)
	require.NotNil(t, l.Rooms)
	assert.Equal(t, 4, *l.Rooms)
	require.NotNil(t, l.Latitude)
	assert.Equal(t, 25.06, *l.Latitude)
	assert.Equal(t, "villas", l.PropertyType)
	assert.Equal(t, "Jumeirah Village Circle", l.LocationName)
	assert.Equal(t, "https://cdn.example/cover.jpg", l.CoverPhotoURL)
	assert.Equal(t, []string{
		"https://images.bayut.com/thumbnails/101-400x300.webp",
		"https://images.bayut.com/thumbnails/102-400x300.webp",
	}, l.ImageURLs)
	assert.Equal(t, "Acme Realty", l.AgencyName)
	assert.Equal(t, "+971500000001", l.WhatsappNumber)
	require.NotNil(t, l.DownPaymentPercentage)
	assert.Equal(t, 20.0, *l.DownPaymentPercentage)

	bare := page.Listings[1]
	assert.Equal(t, "obj-2", bare.ID)
	assert.Nil(t, bare.Price)
	assert.Nil(t, bare.Latitude)
	assert.Empty(t, bare.ImageURLs)
}

func TestAlgoliaClient_ErrorHandling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewAlgoliaClient(server.URL, "", "", "listings", time.Second, utils.NullLogger())

	_, err := client.Search(context.Background(), models.FilterRecord{}, 1, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "status 502")
}

func TestAlgoliaClient_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewAlgoliaClient(server.URL, "", "", "listings", time.Second, utils.NullLogger())

	page, err := client.Search(context.Background(), models.FilterRecord{}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Listings)
	assert.Zero(t, page.Total)
}

func TestBuildFilters(t *testing.T) {
	f := models.FilterRecord{
		Purpose:      models.PurposeForRent,
		PropertyType: models.Apartment,
		Rooms:        models.IntPtr(2),
		Baths:        models.IntPtr(2),
		MinPrice:     models.IntPtr(50000),
		MaxPrice:     models.IntPtr(90000),
		MaxArea:      models.IntPtr(1200),
	}

	assert.Equal(t,
		`purpose:"for-rent" AND category.slug:"apartment" AND rooms:2 AND baths:2 AND price>=50000 AND price<=90000 AND area<=1200`,
		BuildFilters(f))
	assert.Empty(t, BuildFilters(models.FilterRecord{}))
}

func TestBuildParams(t *testing.T) {
	f := models.FilterRecord{
		Rooms:         models.IntPtr(0),
		LocationQuery: "Dubai Marina",
		Keywords:      "sea view",
	}

	params, err := url.ParseQuery(BuildParams(f, 1, 25))
	require.NoError(t, err)

	assert.Equal(t, "0", params.Get("page"))
	assert.Equal(t, "25", params.Get("hitsPerPage"))
	assert.Equal(t, "Dubai Marina sea view", params.Get("query"))
	assert.Equal(t, "rooms:0", params.Get("filters"))
}
