package models

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

type College struct {
	Name     string    `json:"name"`
	Type     string    `json:"type,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// CollegeStats is derived from the cached reviews and never stored.
type CollegeStats struct {
	CollegeName   string  `json:"college_name"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}
