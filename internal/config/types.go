package config

import "time"

// settings for the mock REST server
type ServerConfig struct {
	Environment    string
	Port           string
	JWTSecret      string
	TokenTTL       time.Duration
	LoginRateLimit string // ulule limiter format, e.g. "5-M"
	CORSOrigins    []string
	SeedFile       string
}

// settings for API clients (services, shopctl)
type ClientConfig struct {
	Environment    string
	APIBaseURL     string
	RequestTimeout time.Duration
	RateLimit      float64 // requests per second, 0 disables throttling
	RateBurst      int
}
