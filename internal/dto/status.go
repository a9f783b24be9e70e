package dto

type RootResponse struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	AudioSource string `json:"audio_source"`
}

type HealthResponse struct {
	Status          string              `json:"status"`
	DataLoaded      DataLoadedStatus    `json:"data_loaded"`
	RateLimiter     RateLimiterHealth   `json:"rate_limiter"`
	XenoCanto       XenoCantoAPIStatus  `json:"xeno_canto_api"`
	RecordingSource string              `json:"recording_source"`
	SessionStore    *SessionStoreStatus `json:"session_store,omitempty"`
}

type DataLoadedStatus struct {
	Taxonomy     bool `json:"taxonomy"`
	SpeciesCount int  `json:"species_count"`
	TargetCount  int  `json:"target_count"`
}

type RateLimiterHealth struct {
	NextRequestWait float64 `json:"next_request_wait"`
}

type XenoCantoAPIStatus struct {
	Version          string `json:"version"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

type SessionStoreStatus struct {
	Backend string `json:"backend"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type RateLimitStatusResponse struct {
	XenoCanto RateLimitStatus `json:"xeno_canto"`
}

type RateLimitStatus struct {
	MinIntervalSeconds     float64 `json:"min_interval_seconds"`
	NextRequestWaitSeconds float64 `json:"next_request_wait_seconds"`
	Ready                  bool    `json:"ready"`
}
