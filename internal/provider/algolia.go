package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

const photoURLTemplate = "https://images.bayut.com/thumbnails/%d-400x300.webp"

// AlgoliaClient queries an Algolia-hosted listings index.
type AlgoliaClient struct {
	baseURL    string
	apiKey     string
	appID      string
	index      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewAlgoliaClient(baseURL, apiKey, appID, index string, timeout time.Duration, logger *logrus.Logger) *AlgoliaClient {
	return &AlgoliaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		appID:   appID,
		index:   index,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *AlgoliaClient) Search(ctx context.Context, filters models.FilterRecord, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}

	req := multiQueryRequest{
		Requests: []indexQuery{{
			IndexName: c.index,
			Params:    BuildParams(filters, page, limit),
		}},
	}

	var resp multiQueryResponse
	if err := c.makeRequest(ctx, http.MethodPost, "/1/indexes/*/queries", req, &resp); err != nil {
		return Page{}, err
	}
	if len(resp.Results) == 0 {
		return Page{}, nil
	}

	result := resp.Results[0]
	listings := make([]models.Listing, 0, len(result.Hits))
	for _, h := range result.Hits {
		listings = append(listings, h.toListing())
	}

	c.logger.WithFields(logrus.Fields{
		"page":  page,
		"limit": limit,
		"hits":  len(listings),
		"total": result.NbHits,
	}).Debug("Provider search completed")

	return Page{Listings: listings, Total: result.NbHits}, nil
}

// Ping issues a one-hit query against the index.
func (c *AlgoliaClient) Ping(ctx context.Context) error {
	_, err := c.Search(ctx, models.FilterRecord{}, 1, 1)
	return err
}

// BuildParams encodes the Algolia query parameters. The wire page is 0-based.
func BuildParams(f models.FilterRecord, page, limit int) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page-1))
	params.Set("hitsPerPage", strconv.Itoa(limit))

	query := strings.TrimSpace(strings.Join([]string{f.LocationQuery, f.Keywords}, " "))
	if query != "" {
		params.Set("query", query)
	}
	if clause := BuildFilters(f); clause != "" {
		params.Set("filters", clause)
	}
	return params.Encode()
}

// BuildFilters renders the filter clause joined with AND.
func BuildFilters(f models.FilterRecord) string {
	var clauses []string
	if f.Purpose != "" {
		clauses = append(clauses, fmt.Sprintf("purpose:%q", string(f.Purpose)))
	}
	if f.PropertyType != "" {
		clauses = append(clauses, fmt.Sprintf("category.slug:%q", string(f.PropertyType)))
	}
	if f.Rooms != nil {
		clauses = append(clauses, fmt.Sprintf("rooms:%d", *f.Rooms))
	}
	if f.Baths != nil {
		clauses = append(clauses, fmt.Sprintf("baths:%d", *f.Baths))
	}
	if f.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price>=%d", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price<=%d", *f.MaxPrice))
	}
	if f.MinArea != nil {
		clauses = append(clauses, fmt.Sprintf("area>=%d", *f.MinArea))
	}
	if f.MaxArea != nil {
		clauses = append(clauses, fmt.Sprintf("area<=%d", *f.MaxArea))
	}
	return strings.Join(clauses, " AND ")
}

func (h hit) toListing() models.Listing {
	l := models.Listing{
		ID:               h.ExternalID,
		Title:            h.Title,
		Price:            h.Price,
		Area:             h.Area,
		Rooms:            h.Rooms,
		Baths:            h.Baths,
		Purpose:          h.Purpose,
		CompletionStatus: h.CompletionStatus,
		ContactName:      h.ContactName,
	}
	if l.ID == "" {
		l.ID = h.ObjectID
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if h.Geography != nil {
		l.Latitude = models.Float64Ptr(h.Geography.Lat)
		l.Longitude = models.Float64Ptr(h.Geography.Lng)
	}
	if n := len(h.Category); n > 0 {
		l.PropertyType = h.Category[n-1].Slug
	}
	if n := len(h.Location); n > 0 {
		l.LocationName = h.Location[n-1].Name
	}
	if h.CoverPhoto != nil {
		l.CoverPhotoURL = h.CoverPhoto.URL
	}
	for _, id := range h.PhotoIDs {
		l.ImageURLs = append(l.ImageURLs, fmt.Sprintf(photoURLTemplate, id))
	}
	if h.Agency != nil {
		l.AgencyName = h.Agency.Name
	}
	if h.PhoneNumber != nil {
		l.MobileNumber = h.PhoneNumber.Mobile
		l.WhatsappNumber = h.PhoneNumber.Whatsapp
	}
	if len(h.PaymentPlanSummaries) > 0 {
		l.DownPaymentPercentage = h.PaymentPlanSummaries[0].Breakdown.DownPaymentPercentage
	}
	return l
}

func (c *AlgoliaClient) makeRequest(ctx context.Context, method, endpoint string, payload interface{}, result interface{}) error {
	header := http.Header{}
	if c.apiKey != "" {
		header.Set("X-Algolia-API-Key", c.apiKey)
	}
	if c.appID != "" {
		header.Set("X-Algolia-Application-Id", c.appID)
	}

	err := utils.DoJSON(ctx, c.httpClient, c.logger.WithField("index", c.index), utils.JSONRequest{
		Method:  method,
		URL:     c.baseURL + endpoint,
		Header:  header,
		Payload: payload,
	}, result)

	var statusErr *utils.StatusError
	if errors.Is(err, utils.ErrTransport) || errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
