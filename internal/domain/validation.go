package domain

// PhoneIntel is the carrier lookup result for one number. Valid is nil when
// the lookup could not give an answer.
type PhoneIntel struct {
	Valid    *bool  `json:"valid"`
	Country  string `json:"country,omitempty"`
	LineType string `json:"type,omitempty"`
	Carrier  string `json:"carrier,omitempty"`
}

// Location is the result of an IP geolocation lookup.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Location sentinels.
const (
	LocationLocal   = "Local"
	LocationUnknown = "Unknown"
)

// ReviewDigest summarizes the review records produced by one ingestion.
type ReviewDigest struct {
	SourceFile string
	Counts     map[ReviewType]int
	Total      int
}
