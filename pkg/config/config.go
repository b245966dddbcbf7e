package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "config.yaml"
	defaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	defaultTMDBLanguage   = "en-US"
	defaultProvider       = ProviderGemini
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultVertexModel    = "gemini-2.0-flash"
	defaultVertexLocation = "us-central1"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultOutputLocation = "./output"
	defaultTMDBSecret     = "tmdb-api-key"
	defaultGeminiSecret   = "gemini-api-key"
	defaultGroqSecret     = "groq-api-key"
)

const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
	ProviderGroq   = "groq"
)

type Config struct {
	TMDBAPIKey   string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`
	GroqAPIKey   string `yaml:"-"`
	GCPProject   string `yaml:"-"`
	GCPLocation  string `yaml:"-"`

	TMDB    TMDBConfig    `yaml:"tmdb"`
	LLM     LLMConfig     `yaml:"llm"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Vertex  VertexConfig  `yaml:"vertex"`
	Groq    GroqConfig    `yaml:"groq"`
	HTTP    HTTPConfig    `yaml:"http"`
	Prompts PromptsConfig `yaml:"prompts"`
	Output  OutputConfig  `yaml:"output"`
	Secrets SecretsConfig `yaml:"secrets"`
}

type TMDBConfig struct {
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "gemini", "vertex" or "groq"
}

type GeminiConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type VertexConfig struct {
	Model    string `yaml:"model"`
	Location string `yaml:"location"`
}

type GroqConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// HTTPConfig bounds upstream calls. A zero timeout leaves them unbounded.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type PromptsConfig struct {
	Path string `yaml:"path"`
}

type OutputConfig struct {
	Location string `yaml:"location"` // directory or gs://bucket/prefix
}

type SecretsConfig struct {
	Project      string `yaml:"project"`
	TMDBSecret   string `yaml:"tmdb"`
	GeminiSecret string `yaml:"gemini"`
	GroqSecret   string `yaml:"groq"`
}

// Load reads .env and config.yaml from the working directory. A missing config.yaml
// leaves every section at its default.
func Load(ctx context.Context) (*Config, error) {
	cfg := fromEnv()

	data, err := os.ReadFile(defaultConfigPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("No config.yaml found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	return finish(ctx, cfg)
}

// LoadFrom is Load with an explicit config file, which must exist.
func LoadFrom(ctx context.Context, path string) (*Config, error) {
	cfg := fromEnv()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(ctx, cfg)
}

func fromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	return &Config{
		TMDBAPIKey:   os.Getenv("TMDB_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GCPProject:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GCPLocation:  os.Getenv("GOOGLE_CLOUD_LOCATION"),
	}
}

func finish(ctx context.Context, cfg *Config) (*Config, error) {
	applyDefaults(cfg)

	if err := loadSecrets(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyTMDBDefaults(cfg)
	applyLLMDefaults(cfg)
	applyVertexDefaults(cfg)
	applyOutputDefaults(cfg)
	applySecretsDefaults(cfg)
}

func applyTMDBDefaults(cfg *Config) {
	if cfg.TMDB.BaseURL == "" {
		cfg.TMDB.BaseURL = defaultTMDBBaseURL
	}
	if cfg.TMDB.Language == "" {
		cfg.TMDB.Language = defaultTMDBLanguage
	}
}

func applyLLMDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = getEnvOrDefault("LLM_PROVIDER", defaultProvider)
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = defaultGeminiModel
	}
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = defaultGroqModel
	}
}

func applyVertexDefaults(cfg *Config) {
	if cfg.Vertex.Model == "" {
		cfg.Vertex.Model = defaultVertexModel
	}
	if cfg.Vertex.Location == "" {
		cfg.Vertex.Location = getEnvOrDefault("GOOGLE_CLOUD_LOCATION", defaultVertexLocation)
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Location == "" {
		cfg.Output.Location = defaultOutputLocation
	}
}

func applySecretsDefaults(cfg *Config) {
	if cfg.Secrets.TMDBSecret == "" {
		cfg.Secrets.TMDBSecret = defaultTMDBSecret
	}
	if cfg.Secrets.GeminiSecret == "" {
		cfg.Secrets.GeminiSecret = defaultGeminiSecret
	}
	if cfg.Secrets.GroqSecret == "" {
		cfg.Secrets.GroqSecret = defaultGroqSecret
	}
}

// Validate reports every key the selected provider needs but does not have.
func (c *Config) Validate() error {
	var errs []error
	if c.TMDBAPIKey == "" {
		errs = append(errs, errors.New("TMDB_API_KEY is not set"))
	}

	switch c.LLM.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
		}
	case ProviderVertex:
		if c.GCPProject == "" && c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_CLOUD_PROJECT or GEMINI_API_KEY must be set for vertex"))
		}
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			errs = append(errs, errors.New("GROQ_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
