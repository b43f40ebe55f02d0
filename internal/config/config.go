package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chronica/backend/pkg/apperrors"
)

type Config struct {
	// Server
	Port        string
	Env         string
	APIUrl      string
	FrontendURL string

	// NMKR Studio
	NMKRBaseURL         string
	NMKRAPIKey          string
	NMKRProjectUID      string
	NMKRPolicyID        string
	NMKRReceiverAddress string
	NMKRCustomerID      int
	MintOnCreate        bool
	IPFSMediaBaseURL    string

	// Cardano network the verification URLs point at ("mainnet" | "preprod")
	CardanoNetwork string

	// Blockfrost (read path)
	BlockfrostBaseURL   string
	BlockfrostProjectID string

	// Reverse geocoding
	GeocodingBaseURL   string
	GeocodingUserAgent string

	// QR overlay
	QRSizeFraction      float64
	QRBackgroundOpacity float64
	QRMargin            int
	QRPosition          string

	// Uploads
	UploadMaxSize   int64
	UploadMaxPerDay int

	// Redis / rate limiting
	RateLimitEnabled  bool
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	RateLimitRequests int
	RateLimitDuration time.Duration

	// CORS
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		APIUrl:      getEnv("API_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		// NMKR Studio
		NMKRBaseURL:         getEnv("NMKR_BASE_URL", ""),
		NMKRAPIKey:          getEnv("NMKR_API_KEY", ""),
		NMKRProjectUID:      getEnv("NMKR_PROJECT_UID", ""),
		NMKRPolicyID:        getEnv("NMKR_POLICY_ID", ""),
		NMKRReceiverAddress: getEnv("NMKR_RECEIVER_ADDRESS", ""),
		NMKRCustomerID:      getEnvAsInt("NMKR_CUSTOMER_ID", 0),
		MintOnCreate:        getEnv("MINT_NFTS", "false") == "true",
		IPFSMediaBaseURL:    getEnv("IPFS_MEDIA_BASE_URL", "https://ipfs.io/ipfs/"),

		CardanoNetwork: getEnv("CARDANO_NETWORK", "preprod"),

		// Blockfrost
		BlockfrostBaseURL:   getEnv("BLOCKFROST_BASE_URL", "https://cardano-preprod.blockfrost.io/api/v0"),
		BlockfrostProjectID: getEnv("BLOCKFROST_PROJECT_ID", ""),

		// Reverse geocoding
		GeocodingBaseURL:   getEnv("GEOCODING_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodingUserAgent: getEnv("GEOCODING_USER_AGENT", "Chronica/1.0"),

		// QR overlay
		QRSizeFraction:      getEnvAsFloat("QR_SIZE_FRACTION", 0.05),
		QRBackgroundOpacity: getEnvAsFloat("QR_BACKGROUND_OPACITY", 0.7),
		QRMargin:            getEnvAsInt("QR_MARGIN", 10),
		QRPosition:          getEnv("QR_POSITION", "bottom-right"),

		// Uploads
		UploadMaxSize:   getEnvAsInt64("UPLOAD_MAX_SIZE", 50*1024*1024),
		UploadMaxPerDay: getEnvAsInt("UPLOAD_MAX_PER_DAY", 100),

		// Redis / rate limiting
		RateLimitEnabled:  getEnv("RATE_LIMIT_ENABLED", "false") == "true",
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitDuration: getEnvAsDuration("RATE_LIMIT_DURATION", "1m"),

		// CORS
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods: getEnvAsSlice("ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: getEnvAsSlice("ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
	}
}

// Validate fails fast on missing minting-service configuration. Every value
// checked here is required before any creation request can be processed, and
// the failure is distinguishable from a per-request validation error.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"NMKR_BASE_URL", c.NMKRBaseURL},
		{"NMKR_API_KEY", c.NMKRAPIKey},
		{"NMKR_PROJECT_UID", c.NMKRProjectUID},
		{"NMKR_POLICY_ID", c.NMKRPolicyID},
		{"NMKR_RECEIVER_ADDRESS", c.NMKRReceiverAddress},
	}
	for _, r := range required {
		if r.value == "" {
			return &apperrors.ConfigurationError{Message: r.name + " environment variable is required"}
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Hour
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
