package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the platform core and its
// supporting services.
type Config struct {
	// Store selection: "file" (default), "mysql" or "redis".
	StoreBackend  string
	StoreDir      string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Bootstrap admin seeded on first boot.
	AdminEmail    string
	AdminPassword string

	// Credit economy.
	SignupCredits        int
	CreditsPerGeneration int

	// Simulated network latency applied to the auth and submission flows.
	SimulatedLatency time.Duration

	// Image provider.
	ProviderAPIKey  string
	ProviderBaseURL string
	RequestTimeout  time.Duration

	// Ops HTTP surface.
	ListenAddr  string
	OpsUsername string
	OpsPassword string

	// Optional S3 re-hosting of generated/uploaded assets.
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string
	S3UsePathStyle  bool
	S3Prefix        string
}

// Load reads configuration from environment variables, applying sane defaults.
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		StoreBackend:         getEnv("STORE_BACKEND", "file"),
		StoreDir:             getEnv("STORE_DIR", "data"),
		MySQLDSN:             os.Getenv("MYSQL_DSN"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getInt("REDIS_DB", 0),
		AdminEmail:           getEnv("ADMIN_EMAIL", "admin@dot-ai.local"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		SignupCredits:        getInt("SIGNUP_CREDITS", 25),
		CreditsPerGeneration: getInt("CREDITS_PER_GENERATION", 1),
		SimulatedLatency:     time.Millisecond * time.Duration(getInt("SIMULATED_LATENCY_MS", 500)),
		ProviderAPIKey:       os.Getenv("PROVIDER_API_KEY"),
		ProviderBaseURL:      getEnv("PROVIDER_BASE_URL", "https://api.kie.ai"),
		RequestTimeout:       time.Second * time.Duration(getInt("HTTP_TIMEOUT_SECONDS", 60)),
		ListenAddr:           getEnv("LISTEN_ADDR", ":8080"),
		OpsUsername:          getEnv("OPS_USERNAME", "ops"),
		OpsPassword:          getEnv("OPS_PASSWORD", "change-me"),
		S3Endpoint:           getEnv("S3_ENDPOINT", ""),
		S3Region:             os.Getenv("S3_REGION"),
		S3AccessKey:          os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:          os.Getenv("S3_SECRET_KEY"),
		S3Bucket:             os.Getenv("S3_BUCKET"),
		S3PublicBaseURL:      os.Getenv("S3_PUBLIC_BASE_URL"),
		S3UsePathStyle:       getBool("S3_USE_PATH_STYLE", false),
		S3Prefix:             getEnv("S3_PREFIX", "generations"),
	}

	var missing []string
	if cfg.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	switch cfg.StoreBackend {
	case "file":
	case "mysql":
		if cfg.MySQLDSN == "" {
			missing = append(missing, "MYSQL_DSN")
		}
	case "redis":
		if cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	default:
		return Config{}, fmt.Errorf("unsupported STORE_BACKEND: %s", cfg.StoreBackend)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return cfg, nil
}

// S3Configured reports whether asset re-hosting can be enabled.
func (c Config) S3Configured() bool {
	return c.S3Region != "" && c.S3AccessKey != "" && c.S3SecretKey != "" &&
		c.S3Bucket != "" && c.S3PublicBaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func loadEnvFile() error {
	candidates := []string{}
	if custom, ok := os.LookupEnv("CONFIG_ENV_PATH"); ok && custom != "" {
		candidates = append(candidates, custom)
	}
	candidates = append(candidates,
		filepath.Join("configs", ".env"),
		".env",
	)

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("access env file %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		if err := godotenv.Overload(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	// Environment-only configuration is fine; the env file is optional.
	return nil
}
