package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppHost string `yaml:"app_host"`
	AppPort int    `yaml:"app_port"`

	SerpAPIKey  string `yaml:"serp_api_key"`
	SerpAPIURL  string `yaml:"serp_api_url"`
	SerpCountry string `yaml:"serp_country"`
	SerpPage    int    `yaml:"serp_page"`

	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIModel   string `yaml:"openai_model"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`
	LogLevel    string        `yaml:"log_level"`
}

// Default returns the configuration used when neither a file nor the
// environment overrides a value.
func Default() *Config {
	return &Config{
		AppHost:     "0.0.0.0",
		AppPort:     10000,
		SerpAPIURL:  "https://google.serper.dev/search",
		SerpCountry: "us",
		SerpPage:    10,
		OpenAIModel: "gpt-4-1106-preview",
		HTTPTimeout: 5 * time.Minute,
		LogLevel:    "info",
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_PATH (optional) and finally the environment. API keys are not
// validated; a missing key surfaces when the first request hits that API.
func Load() (*Config, error) {
	cfg := Default()

	if path := getEnv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.AppHost + ":" + strconv.Itoa(c.AppPort)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.AppHost, "APP_HOST")
	setString(&c.SerpAPIKey, "SERP_API_KEY")
	setString(&c.SerpAPIURL, "SERP_API_URL")
	setString(&c.SerpCountry, "SERP_COUNTRY")
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.OpenAIModel, "OPENAI_MODEL")
	setString(&c.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := getEnv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid APP_PORT %q: %w", v, err)
		}
		c.AppPort = port
	}

	if v := getEnv("SERP_PAGE"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERP_PAGE %q: %w", v, err)
		}
		c.SerpPage = page
	}

	if v := getEnv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		c.HTTPTimeout = timeout
	}

	return nil
}

func setString(dst *string, key string) {
	if v := getEnv(key); v != "" {
		*dst = v
	}
}

func getEnv(key string) string {
	return os.Getenv(key)
}
