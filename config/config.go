package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the application.
type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	// PublicBaseURL is where the web client lives; printed menus link back to it.
	PublicBaseURL      string
	CORSAllowedOrigins []string

	// PDFFontPath is an optional UTF-8 TTF for printed recipe names.
	PDFFontPath string

	LogLevel  string
	LogFormat string

	RateLimitPerMinute int
}

// Load creates a new Config object from environment variables.
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	port := getenv("PORT", "8080")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	ttl := getenv("TOKEN_TTL", "12h")
	tokenTTL, err := time.ParseDuration(ttl)
	if err != nil || tokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be a positive duration, got %q", ttl)
	}

	logFormat := getenv("LOG_FORMAT", "json")
	if logFormat != "json" && logFormat != "text" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or text, got %q", logFormat)
	}

	rpm, err := intEnv("RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return nil, err
	}
	if rpm <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", rpm)
	}

	fontPath := os.Getenv("PDF_FONT_PATH")
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			return nil, fmt.Errorf("PDF_FONT_PATH: %w", err)
		}
	}

	var origins []string
	for _, o := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:               port,
		MongoURI:           getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getenv("MONGO_DB", "mealprep"),
		RedisAddr:          getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		JWTSecret:          jwtSecret,
		TokenTTL:           tokenTTL,
		PublicBaseURL:      strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		CORSAllowedOrigins: origins,
		PDFFontPath:        fontPath,
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          logFormat,
		RateLimitPerMinute: rpm,
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
