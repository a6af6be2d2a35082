package provider

type multiQueryRequest struct {
	Requests []indexQuery `json:"requests"`
}

type indexQuery struct {
	IndexName string `json:"indexName"`
	Params    string `json:"params"`
}

type multiQueryResponse struct {
	Results []queryResult `json:"results"`
}

type queryResult struct {
	Hits   []hit `json:"hits"`
	NbHits int   `json:"nbHits"`
	Page   int   `json:"page"`
}

type hit struct {
	ObjectID         string   `json:"objectID"`
	ExternalID       string   `json:"externalID"`
	Title            string   `json:"title"`
	Price            *float64 `json:"price"`
	Area             *float64 `json:"area"`
	Rooms            *int     `json:"rooms"`
	Baths            *int     `json:"baths"`
	Purpose          string   `json:"purpose"`
	CompletionStatus string   `json:"completionStatus"`
	Category         []struct {
		Slug string `json:"slug"`
	} `json:"category"`
	Geography        *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"geography"`
	Location []struct {
		Name string `json:"name"`
	} `json:"location"`
	CoverPhoto *struct {
		URL string `json:"url"`
	} `json:"coverPhoto"`
	PhotoIDs []int64 `json:"photoIDs"`
	Agency   *struct {
		Name string `json:"name"`
	} `json:"agency"`
	ContactName string `json:"contactName"`
	PhoneNumber *struct {
		Mobile   string `json:"mobile"`
		Whatsapp string `json:"whatsapp"`
	} `json:"phoneNumber"`
	PaymentPlanSummaries []struct {
		Breakdown struct {
			DownPaymentPercentage *float64 `json:"downPaymentPercentage"`
		} `json:"breakdown"`
	} `json:"paymentPlanSummaries"`
}
