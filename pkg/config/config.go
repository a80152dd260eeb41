package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from an optional
// YAML file (CONFIG_FILE) and are then overridden by environment variables.
type Config struct {
	// Server
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	AppName string `yaml:"app_name"`

	// Ollama
	OllamaEndpoint   string `yaml:"ollama_endpoint"`
	OllamaChatModel  string `yaml:"ollama_chat_model"`
	OllamaEmbedModel string `yaml:"ollama_embed_model"`
	OllamaToken      string `yaml:"ollama_token"`           // Bearer token (empty = local)
	OllamaTimeout    int    `yaml:"ollama_timeout_seconds"` // 0 = no client timeout

	// Retrieval
	TopN                int     `yaml:"retrieval_top_n"`
	SimilarityThreshold float64 `yaml:"retrieval_similarity_threshold"`

	// CORS
	CORSOrigins []string `yaml:"cors_origins"`

	// MCP
	MCPEnabled bool   `yaml:"mcp_enabled"`
	MCPPort    string `yaml:"mcp_port"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Host:    "0.0.0.0",
		Port:    "8000",
		AppName: "Resume Insight Assistant",

		OllamaEndpoint:   "http://localhost:11434",
		OllamaChatModel:  "llama3.2:3b",
		OllamaEmbedModel: "all-minilm",

		TopN:                3,
		SimilarityThreshold: 0.35,

		CORSOrigins: []string{
			"http://localhost",
			"http://localhost:5500",
			"http://127.0.0.1",
			"http://127.0.0.1:5500",
		},

		MCPPort: "8001",
	}
}

// Load builds the configuration: defaults, then CONFIG_FILE if set, then environment.
func Load() (*Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// mergeFile overlays YAML values onto cfg. A missing file leaves cfg untouched.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	c.Host = envOrDefault("HOST", c.Host)
	c.Port = envOrDefault("PORT", c.Port)
	c.AppName = envOrDefault("APP_NAME", c.AppName)

	c.OllamaEndpoint = strings.TrimRight(envOrDefault("OLLAMA_ENDPOINT", c.OllamaEndpoint), "/")
	c.OllamaChatModel = envOrDefault("OLLAMA_CHAT_MODEL", c.OllamaChatModel)
	c.OllamaEmbedModel = envOrDefault("OLLAMA_EMBED_MODEL", c.OllamaEmbedModel)
	c.OllamaToken = envOrDefault("OLLAMA_TOKEN", c.OllamaToken)
	c.OllamaTimeout = envOrDefaultInt("OLLAMA_TIMEOUT_SECONDS", c.OllamaTimeout)

	c.TopN = envOrDefaultInt("RETRIEVAL_TOP_N", c.TopN)
	c.SimilarityThreshold = envOrDefaultFloat("RETRIEVAL_SIMILARITY_THRESHOLD", c.SimilarityThreshold)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	c.MCPEnabled = envOrDefaultBool("MCP_ENABLED", c.MCPEnabled)
	c.MCPPort = envOrDefault("MCP_PORT", c.MCPPort)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Timeout returns the Ollama client timeout.
func (c *Config) Timeout() time.Duration {
	if c.OllamaTimeout <= 0 {
		return 0
	}
	return time.Duration(c.OllamaTimeout) * time.Second
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}

func envOrDefaultFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func envOrDefaultBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
