package immich

// Config holds configuration for the Immich API client.
type Config struct {
	// URL is the base URL of the Immich API (e.g. https://photos.example.com/api).
	URL string `mapstructure:"url" default:""`
	// ApiKey is the API key used to authenticate requests.
	ApiKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the page size for paginated metadata searches.
	PageSize int `mapstructure:"page_size" default:"100"`
	// RateLimit caps outgoing requests per second; 0 disables the limiter.
	RateLimit int `mapstructure:"rate_limit" default:"10"`
	// RateBurst is the burst allowance for the rate limiter.
	RateBurst int `mapstructure:"rate_burst" default:"5"`
}
