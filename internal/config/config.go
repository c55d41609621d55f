package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default values
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = "8080"

	// Ingestion limits (§4.6 "Size gate")
	DefaultMaxUploadBytes = 100 << 20 // 100MB
	DefaultIngestTimeout  = 30 * time.Second

	// Storage (C10)
	DefaultFileTTL         = 1 * time.Hour
	DefaultCleanupInterval = 5 * time.Minute

	// Resolver (C6)
	DefaultMinConfidence     = 0.70
	DefaultResolutionTimeout = 5 * time.Second
	DefaultStreamingRowLimit = 50000 // §4.7 "Large-file streaming"
	DefaultXMLBatchSize      = 1000

	// Embedding Index (C4)
	DefaultEmbeddingCacheDir     = ".cache/embeddings"
	DefaultEmbeddingModel        = "text-embedding-3-small"
	DefaultEmbeddingBuildTimeout = 60 * time.Second

	// Rate limiting (ambient, HTTP driver only)
	DefaultIngestRateLimit = 30
	DefaultMapRateLimit    = 60
	DefaultRateLimitWindow = time.Minute
	DefaultTrustedProxies  = "127.0.0.1,::1"

	// Schema Registry (C1) / Alias Dictionary (C2): on-disk overrides,
	// relative to the process's working directory. Missing is fine —
	// built-in defaults cover Candidate/Employee/Position.
	DefaultSchemaDir = "assets/schemas"
	DefaultAliasDir  = "assets/aliases"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	// Server
	Host        string
	Port        string
	CORSOrigins []string

	// Ingestion (C7)
	MaxUploadBytes int64
	IngestTimeout  time.Duration

	// Storage (C10)
	FileTTL         time.Duration
	CleanupInterval time.Duration

	// Resolver (C6)
	MinConfidence      float64
	ResolutionTimeout  time.Duration
	StreamingRowLimit  int
	XMLBatchSize       int
	UseValueStatistics bool // supplemented Stage C tie-break signal, off by default

	// Schema Registry (C1) / Alias Dictionary (C2): on-disk overrides.
	// Empty means built-in defaults only.
	SchemaDir string
	AliasDir  string

	// Embedding Index (C4)
	OpenAIAPIKey          string
	EmbeddingModel        string
	EmbeddingCacheDir     string
	EmbeddingEnabled      bool // auto-enabled when OPENAI_API_KEY is set; degraded mode otherwise
	EmbeddingBuildTimeout time.Duration

	// Rate limiting (HTTP driver)
	IngestRateLimit int
	MapRateLimit    int
	RateLimitWindow time.Duration
	TrustedProxies  []string
}

// LoadConfig builds a Config from environment variables, falling back to
// defaults where unset.
func LoadConfig() *Config {
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:3000"}
	}

	openAIAPIKey := getEnv("OPENAI_API_KEY", "")
	embeddingEnabled := openAIAPIKey != ""
	if embeddingEnabled {
		slog.Info("embedding index enabled", "model", getEnv("EMBEDDING_MODEL", DefaultEmbeddingModel))
	} else {
		slog.Warn("OPENAI_API_KEY not set, resolver runs in degraded mode (stages A and C only, no semantic match)")
	}

	return &Config{
		Host:        getEnv("HOST", DefaultHost),
		Port:        getEnv("PORT", DefaultPort),
		CORSOrigins: corsOrigins,

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		IngestTimeout:  getEnvDuration("INGEST_TIMEOUT", DefaultIngestTimeout),

		FileTTL:         getEnvDuration("FILE_TTL", DefaultFileTTL),
		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", DefaultCleanupInterval),

		MinConfidence:      getEnvFloat64("MIN_CONFIDENCE", DefaultMinConfidence),
		ResolutionTimeout:  getEnvDuration("RESOLUTION_TIMEOUT", DefaultResolutionTimeout),
		StreamingRowLimit:  getEnvInt("STREAMING_ROW_LIMIT", DefaultStreamingRowLimit),
		XMLBatchSize:       getEnvInt("XML_BATCH_SIZE", DefaultXMLBatchSize),
		UseValueStatistics: getEnvBool("USE_VALUE_STATISTICS", false),

		SchemaDir: getEnv("SCHEMA_DIR", DefaultSchemaDir),
		AliasDir:  getEnv("ALIAS_DIR", DefaultAliasDir),

		OpenAIAPIKey:          openAIAPIKey,
		EmbeddingModel:        getEnv("EMBEDDING_MODEL", DefaultEmbeddingModel),
		EmbeddingCacheDir:     getEnv("EMBEDDING_CACHE_DIR", DefaultEmbeddingCacheDir),
		EmbeddingEnabled:      embeddingEnabled,
		EmbeddingBuildTimeout: getEnvDuration("EMBEDDING_BUILD_TIMEOUT", DefaultEmbeddingBuildTimeout),

		IngestRateLimit: getEnvInt("INGEST_RATE_LIMIT", DefaultIngestRateLimit),
		MapRateLimit:    getEnvInt("MAP_RATE_LIMIT", DefaultMapRateLimit),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),
		TrustedProxies:  splitCSV(getEnv("TRUSTED_PROXIES", DefaultTrustedProxies)),
	}
}

// ValidateConfig checks config values for internal consistency and returns
// an error describing the first problem found. Call right after LoadConfig
// to fail fast rather than faulting deep in a request handler.
func ValidateConfig(cfg *Config) error {
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.MaxUploadBytes > 100<<20 {
		return fmt.Errorf("MAX_UPLOAD_BYTES (%d) exceeds the 100MB ceiling", cfg.MaxUploadBytes)
	}
	if cfg.Port != "" {
		if _, err := strconv.Atoi(cfg.Port); err != nil {
			return fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, origin := range cfg.CORSOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must be a valid http(s) URL", origin)
		}
	}
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
		return fmt.Errorf("MIN_CONFIDENCE must be in range [0, 1], got %v", cfg.MinConfidence)
	}
	if cfg.StreamingRowLimit <= 0 {
		return fmt.Errorf("STREAMING_ROW_LIMIT must be positive")
	}
	if cfg.XMLBatchSize <= 0 {
		return fmt.Errorf("XML_BATCH_SIZE must be positive")
	}
	if cfg.FileTTL <= 0 {
		return fmt.Errorf("FILE_TTL must be positive")
	}
	if cfg.CleanupInterval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL must be positive")
	}
	if cfg.IngestRateLimit <= 0 || cfg.MapRateLimit <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	if len(cfg.TrustedProxies) == 0 {
		return fmt.Errorf("TRUSTED_PROXIES must list at least one entry")
	}
	for _, proxy := range cfg.TrustedProxies {
		if proxy == "" {
			return fmt.Errorf("TRUSTED_PROXIES entries must not be empty")
		}
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err == nil {
			continue
		}
		return fmt.Errorf("TRUSTED_PROXIES entry %q is not a valid IP or CIDR", proxy)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat64(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
