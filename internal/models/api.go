package models

type QueryRequest struct {
	Query string `json:"query" binding:"required"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// SearchParams binds the plain search query string.
type SearchParams struct {
	Purpose       string `form:"purpose"`
	PropertyType  string `form:"property_type"`
	Rooms         *int   `form:"rooms"`
	Baths         *int   `form:"baths"`
	MinPrice      *int   `form:"min_price"`
	MaxPrice      *int   `form:"max_price"`
	MinArea       *int   `form:"min_area"`
	MaxArea       *int   `form:"max_area"`
	LocationQuery string `form:"query"`
	Keywords      string `form:"keywords"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

func (p SearchParams) Filters() FilterRecord {
	purpose := Purpose(p.Purpose)
	if purpose == "" {
		purpose = PurposeForSale
	}
	return FilterRecord{
		Purpose:       purpose,
		PropertyType:  PropertyType(p.PropertyType),
		Rooms:         p.Rooms,
		Baths:         p.Baths,
		MinPrice:      p.MinPrice,
		MaxPrice:      p.MaxPrice,
		MinArea:       p.MinArea,
		MaxArea:       p.MaxArea,
		LocationQuery: p.LocationQuery,
		Keywords:      p.Keywords,
	}
}

// AskResponse carries the parse plus exactly one of Answer or Multi.
type AskResponse struct {
	SessionID string       `json:"session_id"`
	Parsed    ParseResult  `json:"parsed"`
	Answer    *Answer      `json:"answer,omitempty"`
	Multi     *MultiAnswer `json:"multi,omitempty"`
}

type CacheStats struct {
	Backend     string `json:"backend"`
	Entries     int64  `json:"entries"`
	LiveEntries int64  `json:"live_entries"`
}
