package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultTokenTTL       = 24 * time.Hour
	defaultLoginRateLimit = "10-M"
	defaultAPIBaseURL     = "http://localhost:8080/api"
	defaultRequestTimeout = 10 * time.Second
)

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}
}

// loads mock server configuration from environment variables
func LoadServerConfig() (*ServerConfig, error) {
	loadDotEnv()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	tokenTTL, err := durationEnv("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		return nil, err
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &ServerConfig{
		Environment:    stringEnv("ENVIRONMENT", "development"),
		Port:           stringEnv("PORT", defaultPort),
		JWTSecret:      jwtSecret,
		TokenTTL:       tokenTTL,
		LoginRateLimit: stringEnv("LOGIN_RATE_LIMIT", defaultLoginRateLimit),
		CORSOrigins:    origins,
		SeedFile:       os.Getenv("SEED_FILE"),
	}, nil
}

// loads client configuration from environment variables
func LoadClientConfig() (*ClientConfig, error) {
	loadDotEnv()

	timeout, err := durationEnv("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	rateLimit := 0.0
	if raw := os.Getenv("CLIENT_RATE_LIMIT"); raw != "" {
		rateLimit, err = strconv.ParseFloat(raw, 64)
		if err != nil || rateLimit < 0 {
			return nil, fmt.Errorf("CLIENT_RATE_LIMIT must be a non-negative number, got %q", raw)
		}
	}

	burst := 1
	if raw := os.Getenv("CLIENT_RATE_BURST"); raw != "" {
		burst, err = strconv.Atoi(raw)
		if err != nil || burst < 1 {
			return nil, fmt.Errorf("CLIENT_RATE_BURST must be a positive integer, got %q", raw)
		}
	}

	return &ClientConfig{
		Environment:    stringEnv("ENVIRONMENT", "development"),
		APIBaseURL:     strings.TrimRight(stringEnv("API_BASE_URL", defaultAPIBaseURL), "/"),
		RequestTimeout: timeout,
		RateLimit:      rateLimit,
		RateBurst:      burst,
	}, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}

	return d, nil
}
