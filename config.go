package sendcloud

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/etsoo/sendcloud-go/internal/core"
)

// Config holds the complete SMS client configuration.
type Config struct {
	// User is the SendCloud account user.
	User string `json:"smsUser" yaml:"smsUser"`

	// Key is the shared secret used to sign request payloads.
	Key string `json:"smsKey" yaml:"smsKey"`

	// Country is the home country id, e.g. "CN". Batches whose recipients
	// all live here are sent as domestic messages. Empty falls back to CN.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	// Endpoint overrides the gateway send URL. A template's own endpoint
	// takes precedence over this value.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Templates are registered with the client at construction.
	Templates []TemplateItem `json:"templates,omitempty" yaml:"templates,omitempty"`

	// Timeout bounds each gateway call made with the default transport.
	Timeout time.Duration `json:"-" yaml:"-"`

	// HTTPClient customizes the default transport. Leave nil to use a
	// dedicated client bounded by Timeout.
	HTTPClient *http.Client `json:"-" yaml:"-"`

	// Transport replaces the HTTP transport entirely, e.g. for tests.
	Transport Transport `json:"-" yaml:"-"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Country: "CN",
		Timeout: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.User == "" {
		return &ValidationError{
			Field:   "smsUser",
			Message: "user is required",
		}
	}

	if c.Key == "" {
		return &ValidationError{
			Field:   "smsKey",
			Message: "secret key is required",
		}
	}

	if c.Country != "" && core.GetCountry(c.Country) == nil {
		return &ValidationError{
			Field:   "country",
			Message: "unsupported country id: " + c.Country,
		}
	}

	if c.Timeout < 0 {
		return &ValidationError{
			Field:   "timeout",
			Message: "timeout must not be negative",
		}
	}

	return nil
}

// LoadConfig reads a configuration file on top of the defaults. The format
// follows the extension: .yaml/.yml or .json.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path) // #nosec G304 -- caller-chosen config path
	if err != nil {
		return config, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".json":
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		return config, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	return config, nil
}
