package logiwa

import (
	"errors"
	"time"
)

// Config holds configuration for the Logiwa integration API
type Config struct {
	// BaseURL is the API host, e.g. https://hubapi.logiwa.com
	BaseURL string
	// Username and Password are used for the password grant
	Username string
	Password string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// TokenPath, SearchPath and WarehouseSearchPath are appended to BaseURL
	TokenPath           string
	SearchPath          string
	WarehouseSearchPath string
	// MaxThrottleRetries caps retries of a throttled request
	MaxThrottleRetries int
	// ThrottleBackoff is the first wait after a throttled response; it doubles up to ThrottleMaxBackoff
	ThrottleBackoff    time.Duration
	ThrottleMaxBackoff time.Duration
	// Location is the zone the API interprets date filters in; nil is UTC
	Location *time.Location
}

const (
	// ProductionBaseURL is the production API host
	ProductionBaseURL = "https://hubapi.logiwa.com"

	DefaultTokenPath           = "/token"
	DefaultSearchPath          = "/en/api/IntegrationApi/WarehouseOrderSearch"
	DefaultWarehouseSearchPath = "/en/api/IntegrationApi/WarehouseSearch"
)

// Errors for Logiwa configuration
var (
	ErrConfigMissingUsername = errors.New("logiwa: username is required")
	ErrConfigMissingPassword = errors.New("logiwa: password is required")
)

// NewConfig creates a new Logiwa configuration with defaults
func NewConfig(username, password string) *Config {
	return &Config{
		BaseURL:             ProductionBaseURL,
		Username:            username,
		Password:            password,
		TimeoutSeconds:      60,
		TokenPath:           DefaultTokenPath,
		SearchPath:          DefaultSearchPath,
		WarehouseSearchPath: DefaultWarehouseSearchPath,
		MaxThrottleRetries:  8,
		ThrottleBackoff:     2 * time.Second,
		ThrottleMaxBackoff:  time.Minute,
		Location:            time.UTC,
	}
}

// Validate validates the configuration and fills unset fields with defaults
func (c *Config) Validate() error {
	if c.Username == "" {
		return ErrConfigMissingUsername
	}
	if c.Password == "" {
		return ErrConfigMissingPassword
	}
	if c.BaseURL == "" {
		c.BaseURL = ProductionBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 60
	}
	if c.TokenPath == "" {
		c.TokenPath = DefaultTokenPath
	}
	if c.SearchPath == "" {
		c.SearchPath = DefaultSearchPath
	}
	if c.WarehouseSearchPath == "" {
		c.WarehouseSearchPath = DefaultWarehouseSearchPath
	}
	if c.MaxThrottleRetries < 0 {
		c.MaxThrottleRetries = 0
	}
	if c.ThrottleBackoff <= 0 {
		c.ThrottleBackoff = 2 * time.Second
	}
	if c.ThrottleMaxBackoff < c.ThrottleBackoff {
		c.ThrottleMaxBackoff = c.ThrottleBackoff
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	return nil
}

func (c *Config) url(path string) string {
	return c.BaseURL + path
}
