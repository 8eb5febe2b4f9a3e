package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRequestTimeout bounds a single backend round trip. A timeout
// surfaces as a regular request failure, there is no retry beyond the
// one 401-triggered reauthentication.
const DefaultRequestTimeout = 30 * time.Second

// Config holds the connection settings for the groupware backend.
type Config struct {
	// URL is the backend base URL, e.g. "https://groupware.example.com/api".
	URL string `yaml:"url"`

	// Username and Password are exchanged as HTTP Basic credentials.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// APIKey is an optional additional credential some deployments require.
	APIKey string `yaml:"api_key"`

	// Offline forces mock mode even when credentials are present.
	Offline bool `yaml:"offline"`

	// RequestTimeout bounds a single backend request (default 30s).
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() Config {
	return Config{
		URL:            os.Getenv("GROUPWARE_URL"),
		Username:       os.Getenv("GROUPWARE_USERNAME"),
		Password:       os.Getenv("GROUPWARE_PASSWORD"),
		APIKey:         os.Getenv("GROUPWARE_API_KEY"),
		Offline:        envBool("GROUPWARE_OFFLINE"),
		RequestTimeout: envDuration("GROUPWARE_REQUEST_TIMEOUT"),
	}
}

// LoadFile reads a YAML config file and merges it underneath the receiver:
// values already set on c win, file values fill the gaps. A missing file is
// not an error so that the env-only setup keeps working.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if c.URL == "" {
		c.URL = file.URL
	}
	if c.Username == "" {
		c.Username = file.Username
	}
	if c.Password == "" {
		c.Password = file.Password
	}
	if c.APIKey == "" {
		c.APIKey = file.APIKey
	}
	if !c.Offline {
		c.Offline = file.Offline
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = file.RequestTimeout
	}

	return nil
}

// MockMode reports whether the server should run against the deterministic
// mock backend: either explicitly requested or implied by the absence of
// credentials.
func (c *Config) MockMode() bool {
	return c.Offline || c.URL == "" || c.Username == "" || c.Password == ""
}

// Validate checks the configuration for a live (non-mock) setup.
func (c *Config) Validate() error {
	if c.MockMode() {
		return nil
	}
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", c.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend URL %q must use http or https", c.URL)
	}
	return nil
}

// Timeout returns the configured request timeout, falling back to the
// default.
func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return DefaultRequestTimeout
}

func envBool(key string) bool {
	value := os.Getenv(key)
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

func envDuration(key string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return parsed
}
