package models

// Listing is a snapshot of a property as returned by the search provider.
type Listing struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Price                 *float64 `json:"price,omitempty"`
	Area                  *float64 `json:"area,omitempty"`
	Rooms                 *int     `json:"rooms,omitempty"`
	Baths                 *int     `json:"baths,omitempty"`
	Purpose               string   `json:"purpose,omitempty"`
	PropertyType          string   `json:"property_type,omitempty"`
	CompletionStatus      string   `json:"completion_status,omitempty"`
	Latitude              *float64 `json:"latitude,omitempty"`
	Longitude             *float64 `json:"longitude,omitempty"`
	LocationName          string   `json:"location_name,omitempty"`
	CoverPhotoURL         string   `json:"cover_photo_url,omitempty"`
	ImageURLs             []string `json:"all_image_urls,omitempty"`
	AgencyName            string   `json:"agency_name,omitempty"`
	ContactName           string   `json:"contact_name,omitempty"`
	MobileNumber          string   `json:"mobile_number,omitempty"`
	WhatsappNumber        string   `json:"whatsapp_number,omitempty"`
	DownPaymentPercentage *float64 `json:"down_payment_percentage,omitempty"`
}

func Float64Ptr(v float64) *float64 {
	return &v
}

// SearchResult is one page of listings.
type SearchResult struct {
	Listings   []Listing `json:"properties"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalCount int       `json:"total_properties"`
	TotalPages int       `json:"total_pages"`
	Cached     bool      `json:"cached"`
}
