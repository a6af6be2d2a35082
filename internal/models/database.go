package models

// GORM models

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
	"gorm.io/gorm"
)

// CommaList stores a string slice as one comma-joined text column.
type CommaList []string

func (s CommaList) Value() (driver.Value, error) {
	return strings.Join(s, ","), nil
}

func (s *CommaList) Scan(value interface{}) error {
	if value == nil {
		*s = CommaList{}
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			*s = CommaList{}
			return nil
		}
		*s = CommaList(strings.Split(v, ","))
	case []byte:
		return s.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CommaList", value)
	}
	return nil
}

// SearchQuery is one cached provider fetch, unique per canonical key.
type SearchQuery struct {
	QueryID     string    `json:"query_id" gorm:"column:query_id;primaryKey;size:36"`
	QueryString string    `json:"query_string" gorm:"column:query_string;uniqueIndex;not null"`
	TotalCount  int       `json:"total_count" gorm:"default:0"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`

	// Associations
	Properties []CachedProperty `json:"properties,omitempty" gorm:"foreignKey:QueryID;references:QueryID;constraint:OnDelete:CASCADE"`
}

func (SearchQuery) TableName() string {
	return "search_queries"
}

// CachedProperty is a Listing row scoped to the query that fetched it.
type CachedProperty struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	QueryID               string    `json:"query_id" gorm:"size:36;not null;uniqueIndex:idx_cached_query_listing"`
	ListingID             string    `json:"listing_id" gorm:"not null;uniqueIndex:idx_cached_query_listing"`
	Position              int       `json:"position" gorm:"not null"`
	Title                 string    `json:"title"`
	Price                 *float64  `json:"price"`
	Area                  *float64  `json:"area"`
	Rooms                 *int      `json:"rooms"`
	Baths                 *int      `json:"baths"`
	Purpose               string    `json:"purpose"`
	PropertyType          string    `json:"property_type"`
	CompletionStatus      string    `json:"completion_status"`
	Latitude              *float64  `json:"latitude"`
	Longitude             *float64  `json:"longitude"`
	Geohash               string    `json:"geohash" gorm:"size:12;index"`
	LocationName          string    `json:"location_name"`
	CoverPhotoURL         string    `json:"cover_photo_url"`
	AllImageURLs          CommaList `json:"all_image_urls" gorm:"type:text"`
	AgencyName            string    `json:"agency_name"`
	ContactName           string    `json:"contact_name"`
	MobileNumber          string    `json:"mobile_number"`
	WhatsappNumber        string    `json:"whatsapp_number"`
	DownPaymentPercentage *float64  `json:"down_payment_percentage"`
	CreatedAt             time.Time `json:"created_at"`
}

func (CachedProperty) TableName() string {
	return "cached_properties"
}

// BeforeCreate fills the geohash from the coordinates.
func (p *CachedProperty) BeforeCreate(tx *gorm.DB) error {
	if p.Latitude != nil && p.Longitude != nil && p.Geohash == "" {
		p.Geohash = geohash.Encode(*p.Latitude, *p.Longitude)
	}
	return nil
}

func NewCachedProperty(queryID string, position int, l Listing) CachedProperty {
	return CachedProperty{
		QueryID:               queryID,
		ListingID:             l.ID,
		Position:              position,
		Title:                 l.Title,
		Price:                 l.Price,
		Area:                  l.Area,
		Rooms:                 l.Rooms,
		Baths:                 l.Baths,
		Purpose:               l.Purpose,
		PropertyType:          l.PropertyType,
		CompletionStatus:      l.CompletionStatus,
		Latitude:              l.Latitude,
		Longitude:             l.Longitude,
		LocationName:          l.LocationName,
		CoverPhotoURL:         l.CoverPhotoURL,
		AllImageURLs:          CommaList(l.ImageURLs),
		AgencyName:            l.AgencyName,
		ContactName:           l.ContactName,
		MobileNumber:          l.MobileNumber,
		WhatsappNumber:        l.WhatsappNumber,
		DownPaymentPercentage: l.DownPaymentPercentage,
	}
}

func (p CachedProperty) Listing() Listing {
	var images []string
	if len(p.AllImageURLs) > 0 {
		images = []string(p.AllImageURLs)
	}
	return Listing{
		ID:                    p.ListingID,
		Title:                 p.Title,
		Price:                 p.Price,
		Area:                  p.Area,
		Rooms:                 p.Rooms,
		Baths:                 p.Baths,
		Purpose:               p.Purpose,
		PropertyType:          p.PropertyType,
		CompletionStatus:      p.CompletionStatus,
		Latitude:              p.Latitude,
		Longitude:             p.Longitude,
		LocationName:          p.LocationName,
		CoverPhotoURL:         p.CoverPhotoURL,
		ImageURLs:             images,
		AgencyName:            p.AgencyName,
		ContactName:           p.ContactName,
		MobileNumber:          p.MobileNumber,
		WhatsappNumber:        p.WhatsappNumber,
		DownPaymentPercentage: p.DownPaymentPercentage,
	}
}

// Repository interfaces

type SearchQueryRepository interface {
	Create(ctx context.Context, query *SearchQuery) error
	FindByID(ctx context.Context, queryID string) (*SearchQuery, error)
	FindByQueryString(ctx context.Context, queryString string) (*SearchQuery, error)
	FindLive(ctx context.Context, queryString string, now time.Time) (*SearchQuery, error)
	DeleteExpired(ctx context.Context, queryString string, now time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountLive(ctx context.Context, now time.Time) (int64, error)
}

type CachedPropertyRepository interface {
	CreateBatch(ctx context.Context, properties []CachedProperty) error
	ListByQueryID(ctx context.Context, queryID string) ([]CachedProperty, error)
}
