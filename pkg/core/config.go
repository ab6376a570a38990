package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/eventmem/eventmem-go/pkg/reconcile"
)

// Config contains the complete configuration for an eventmem client.
//
// It includes settings for:
//   - The record store (directory, owner, default expiry horizon)
//   - The extraction provider (for turning messages into drafts)
//   - Publication (week-start weekday, page title)
//
// Example:
//
//	config := &core.Config{
//	    Store: core.StoreConfig{
//	        Dir:        "./memories",
//	        ExpiryDays: 30,
//	    },
//	    Extractor: core.ExtractorConfig{
//	        Provider: "openai",
//	        APIKey:   "sk-...",
//	    },
//	    Publish: core.PublishConfig{
//	        WeekStart: time.Monday,
//	        SiteTitle: "Upcoming Events",
//	    },
//	}
type Config struct {
	// Store contains record store configuration.
	Store StoreConfig `json:"store"`

	// Extractor contains extraction provider configuration.
	Extractor ExtractorConfig `json:"extractor"`

	// Publish contains publication configuration.
	Publish PublishConfig `json:"publish"`
}

// StoreConfig contains configuration for the record store.
type StoreConfig struct {
	// Dir is the directory holding the record documents.
	Dir string `json:"dir"`

	// UserID is the owner written to new records and used to filter
	// loads (optional; empty disables owner scoping).
	UserID string `json:"user_id,omitempty"`

	// ExpiryDays is the default expiration horizon in days past the
	// target date when a draft supplies no expires date.
	ExpiryDays int `json:"expiry_days,omitempty"`
}

// ExtractorConfig contains configuration for the extraction provider.
//
// Supported providers: openai, anthropic, gemini
type ExtractorConfig struct {
	// Provider is the extraction provider name (openai, anthropic, gemini).
	Provider string `json:"provider"`

	// APIKey is the API key for the provider.
	APIKey string `json:"api_key"`

	// Model is the model name to use (optional, uses provider default if empty).
	Model string `json:"model,omitempty"`

	// BaseURL is the base URL for the API (optional, uses provider default if empty).
	BaseURL string `json:"base_url,omitempty"`
}

// PublishConfig contains configuration for publication.
type PublishConfig struct {
	// WeekStart is the weekday on which the "This Week" window begins.
	WeekStart time.Weekday `json:"week_start"`

	// SiteTitle is the heading of the generated page.
	SiteTitle string `json:"site_title,omitempty"`
}

// LoadConfigFromEnv loads configuration from environment variables.
//
// The function:
//  1. Searches for .env or .env.example files (up to 5 directory levels up)
//  2. Loads environment variables from the found file
//  3. Parses environment variables into a Config struct
//
// Supported environment variables:
//   - MEMORIES_DIR (default "./memories")
//   - MEMORIES_USER_ID
//   - MEMORIES_EXPIRY_DAYS (default 30)
//   - MEMORIES_WEEK_START (weekday name, default "monday")
//   - LLM_PROVIDER (openai, anthropic, gemini; default "openai")
//   - LLM_API_KEY, LLM_MODEL, LLM_BASE_URL
//   - SITE_TITLE
//
// Returns a Config instance, or an error if loading fails.
//
// Example:
//
//	config, err := core.LoadConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadConfigFromEnv() (*Config, error) {
	if envPath, found := FindEnvFile(); found {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	expiryDays := reconcile.DefaultExpiryDays
	if raw := os.Getenv("MEMORIES_EXPIRY_DAYS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%w: MEMORIES_EXPIRY_DAYS=%q", ErrInvalidConfig, raw)
		}
		expiryDays = parsed
	}

	weekStart, err := ParseWeekday(getEnvOrDefault("MEMORIES_WEEK_START", "monday"))
	if err != nil {
		return nil, err
	}

	provider := getEnvOrDefault("LLM_PROVIDER", "openai")
	var defaultModel string
	switch provider {
	case "anthropic":
		defaultModel = "claude-3-5-sonnet-20240620"
	case "gemini":
		defaultModel = "gemini-2.5-flash"
	default:
		defaultModel = "gpt-4o-mini"
	}

	return &Config{
		Store: StoreConfig{
			Dir:        getEnvOrDefault("MEMORIES_DIR", "./memories"),
			UserID:     os.Getenv("MEMORIES_USER_ID"),
			ExpiryDays: expiryDays,
		},
		Extractor: ExtractorConfig{
			Provider: provider,
			APIKey:   os.Getenv("LLM_API_KEY"),
			Model:    getEnvOrDefault("LLM_MODEL", defaultModel),
			BaseURL:  os.Getenv("LLM_BASE_URL"),
		},
		Publish: PublishConfig{
			WeekStart: weekStart,
			SiteTitle: os.Getenv("SITE_TITLE"),
		},
	}, nil
}

// LoadConfigFromEnvFile loads configuration from a specific .env file.
func LoadConfigFromEnvFile(envPath string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return LoadConfigFromEnv()
}

// LoadConfigFromJSON loads configuration from a JSON file.
func LoadConfigFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewMemoryError("LoadConfigFromJSON", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, NewMemoryError("LoadConfigFromJSON", err)
	}
	return &config, nil
}

// Validate validates the configuration.
//
// Checks that all required fields are set:
//   - Store directory must be specified
//   - Expiry horizon must not be negative
//   - Extraction provider must be specified
//   - Week start must be a valid weekday
//
// Returns an error if validation fails, nil otherwise.
func (c *Config) Validate() error {
	if c.Store.Dir == "" {
		return NewMemoryError("Validate", ErrInvalidConfig)
	}
	if c.Store.ExpiryDays < 0 {
		return NewMemoryError("Validate", ErrInvalidConfig)
	}
	if c.Extractor.Provider == "" {
		return NewMemoryError("Validate", ErrInvalidConfig)
	}
	if c.Publish.WeekStart < time.Sunday || c.Publish.WeekStart > time.Saturday {
		return NewMemoryError("Validate", ErrInvalidConfig)
	}
	return nil
}

// ParseWeekday parses an English weekday name (case-insensitive).
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
}

// getEnvOrDefault gets an environment variable or returns the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FindEnvFile searches for .env or .env.example files.
//
// The search:
//  1. Checks the current directory
//  2. Searches up to 5 directory levels up
//  3. Returns the first .env or .env.example file found
//
// Returns:
//   - path: Path to the found file (empty if not found)
//   - found: True if a file was found, false otherwise
func FindEnvFile() (string, bool) {
	if _, err := os.Stat(".env"); err == nil {
		return ".env", true
	}
	if _, err := os.Stat(".env.example"); err == nil {
		return ".env.example", true
	}

	dir, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		envExamplePath := filepath.Join(dir, ".env.example")

		if _, err := os.Stat(envPath); err == nil {
			return envPath, true
		}
		if _, err := os.Stat(envExamplePath); err == nil {
			return envExamplePath, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", false
}
