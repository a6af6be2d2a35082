package provider

import (
	"context"
	"errors"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

// ErrUnavailable wraps transport and server failures of the listings API.
var ErrUnavailable = errors.New("listings provider unavailable")

// Page is one provider response: the listings plus the provider's total hit count.
type Page struct {
	Listings []models.Listing
	Total    int
}

// Provider is the external listings search. Page numbers are 1-based.
type Provider interface {
	Search(ctx context.Context, filters models.FilterRecord, page, limit int) (Page, error)
}
