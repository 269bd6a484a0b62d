package growth

type GrowResponse struct {
	Allowed          bool    `json:"allowed"`
	DisplayName      string  `json:"display_name"`
	Growth           float64 `json:"growth,omitempty"`
	Size             float64 `json:"size"`
	RemainingMinutes int     `json:"remaining_minutes,omitempty"`
	RemainingSeconds int     `json:"remaining_seconds,omitempty"`
	RetryAfter       int     `json:"retry_after,omitempty"`
}

type StatusResponse struct {
	DisplayName string  `json:"display_name"`
	Size        float64 `json:"size"`
	Exists      bool    `json:"exists"`
	// NextGrowthIn is in seconds, zero when growing is allowed now.
	NextGrowthIn int `json:"next_growth_in"`
}
