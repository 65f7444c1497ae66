// ABOUTME: Environment-driven configuration for the movie chat backend
// ABOUTME: Loads .env when present, applies defaults, validates required Azure OpenAI settings

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the process reads. Loaded once at startup,
// never mutated afterwards.
type Config struct {
	AzureEndpoint   string
	AzureAPIVersion string
	AzureDeployment string
	AzureAPIKey     string

	MaxTokens   int
	Temperature float64

	Port      string
	LogLevel  string
	LogFormat string
}

const (
	defaultMaxTokens   = 800
	defaultTemperature = 0.7
	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
)

// Load reads configuration from the environment. A .env file is loaded
// first if one can be found, but real environment variables always win.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		AzureEndpoint:   strings.TrimSuffix(os.Getenv("AZURE_OPENAI_ENDPOINT"), "/"),
		AzureAPIVersion: os.Getenv("AZURE_OPENAI_API_VERSION"),
		AzureDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"),
		AzureAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		MaxTokens:       defaultMaxTokens,
		Temperature:     defaultTemperature,
		Port:            defaultPort,
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
	}

	if v := os.Getenv("AZURE_OPENAI_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AZURE_OPENAI_MAX_TOKENS %q: %w", v, err)
		}
		cfg.MaxTokens = n
	}
	if v := os.Getenv("AZURE_OPENAI_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid AZURE_OPENAI_TEMPERATURE %q: %w", v, err)
		}
		cfg.Temperature = f
	}
	if v := os.Getenv("WEB_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	var missing []string
	if cfg.AzureEndpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	if cfg.AzureAPIVersion == "" {
		missing = append(missing, "AZURE_OPENAI_API_VERSION")
	}
	if cfg.AzureDeployment == "" {
		missing = append(missing, "AZURE_OPENAI_DEPLOYMENT_NAME")
	}
	if cfg.AzureAPIKey == "" {
		missing = append(missing, "AZURE_OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// loadEnvFile tries .env in the current directory, then walks up toward the
// module root so the server behaves the same when run from cmd/server.
func loadEnvFile() {
	paths := []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")}
	if root := findModuleRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
