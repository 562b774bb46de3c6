package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/joho/godotenv"

	"bookfixture/internal/platform/validation"
)

type Config struct {
	Addr               string `validate:"required"`
	BooksRoutesEnabled bool
	RateLimitRPS       float64           `validate:"gt=0"`
	RateLimitBurst     int               `validate:"gte=1"`
	MaxRequestSize     datasize.ByteSize `validate:"gt=0"`
	CORSAllowedOrigins []string
	EnableHSTS         bool
	MetricsEnabled     bool
	TrustProxy         bool
	ShutdownTimeout    time.Duration `validate:"gt=0"`
}

func defaultConfig() Config {
	return Config{
		Addr:               ":8080",
		BooksRoutesEnabled: true,
		RateLimitRPS:       50,
		RateLimitBurst:     100,
		MaxRequestSize:     datasize.MB,
		MetricsEnabled:     true,
		ShutdownTimeout:    10 * time.Second,
	}
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// loadConfig reads the environment on top of defaultConfig and validates
// the result.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	var err error

	cfg.Addr = getEnv("APP_ADDR", cfg.Addr)
	if cfg.BooksRoutesEnabled, err = envBool("BOOKS_ROUTES_ENABLED", cfg.BooksRoutesEnabled); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("MAX_REQUEST_SIZE"); v != "" {
		if err := cfg.MaxRequestSize.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("MAX_REQUEST_SIZE: %w", err)
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if cfg.EnableHSTS, err = envBool("ENABLE_HSTS", cfg.EnableHSTS); err != nil {
		return Config{}, err
	}
	if cfg.MetricsEnabled, err = envBool("METRICS_ENABLED", cfg.MetricsEnabled); err != nil {
		return Config{}, err
	}
	if cfg.TrustProxy, err = envBool("TRUST_PROXY", cfg.TrustProxy); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if cfg.ShutdownTimeout, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	if err := validation.Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
