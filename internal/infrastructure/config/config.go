package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	Logiwa    LogiwaConfig
	Pipeline  PipelineConfig
	Archive   ArchiveConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
	Metrics   MetricsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string `validate:"required"`
	Env  string `validate:"required,oneof=development testing staging production"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string `validate:"required"`
	Port            int    `validate:"gt=0,lte=65535"`
	User            string `validate:"required"`
	Password        string
	DBName          string `validate:"required"`
	SSLMode         string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int    // in minutes
	ConnMaxIdleTime int    // in minutes
	LogLevel        string `validate:"oneof=silent error warn info"`
	SlowThreshold   time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
	Output string // stdout, stderr, or file path
}

// LogiwaConfig holds the upstream API credentials and partition settings
type LogiwaConfig struct {
	BaseURL            string `validate:"required,url"`
	Username           string
	Password           string
	TimeoutSeconds     int `validate:"gt=0"`
	WarehouseIDs       []int64
	LookupWarehouses   bool
	MaxThrottleRetries int `validate:"gte=0"`
	ThrottleBackoff    time.Duration
	ThrottleMaxBackoff time.Duration
	TimeZone           string // IANA name of the zone the API reads and writes timestamps in
}

// PipelineConfig holds ingestion run settings
type PipelineConfig struct {
	PageSize           int `validate:"gt=0"`
	WindowDays         int `validate:"gt=0"`
	MinRequestInterval time.Duration
	Concurrency        int `validate:"gt=0"`
	RunTimeout         time.Duration
	Interval           time.Duration
	LockTTL            time.Duration
}

// ArchiveConfig selects where fetched raw pages are copied
type ArchiveConfig struct {
	Driver       string `validate:"oneof=none local s3"`
	Dir          string
	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string // S3-compatible endpoint; empty uses AWS
	AccessKey    string // empty uses the default AWS credential chain
	SecretKey    string
	UsePathStyle bool
}

// RedisConfig holds Redis connection settings for the run lock
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int `validate:"gte=0"`
}

// TelemetryConfig holds OpenTelemetry tracing settings
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64 `validate:"gte=0,lte=1"`
	ServiceName       string
	Insecure          bool
	DBTraceEnabled    bool
	LogsEnabled       bool // export zap entries over OTLP alongside the local output
}

// MetricsConfig holds Prometheus Pushgateway settings
type MetricsConfig struct {
	PushgatewayURL string
	JobName        string
}

// Load reads configuration from config.toml file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with SHIPMENTS_ prefix (e.g., SHIPMENTS_LOGIWA_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/logiwa-shipments")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHIPMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	warehouseIDs, err := parseInt64Slice(v.GetStringSlice("logiwa.warehouse_ids"))
	if err != nil {
		return nil, fmt.Errorf("logiwa.warehouse_ids: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			LogLevel:        v.GetString("database.log_level"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Logiwa: LogiwaConfig{
			BaseURL:            v.GetString("logiwa.base_url"),
			Username:           v.GetString("logiwa.username"),
			Password:           v.GetString("logiwa.password"),
			TimeoutSeconds:     v.GetInt("logiwa.timeout_seconds"),
			WarehouseIDs:       warehouseIDs,
			LookupWarehouses:   v.GetBool("logiwa.lookup_warehouses"),
			MaxThrottleRetries: v.GetInt("logiwa.max_throttle_retries"),
			ThrottleBackoff:    v.GetDuration("logiwa.throttle_backoff"),
			ThrottleMaxBackoff: v.GetDuration("logiwa.throttle_max_backoff"),
			TimeZone:           v.GetString("logiwa.timezone"),
		},
		Pipeline: PipelineConfig{
			PageSize:           v.GetInt("pipeline.page_size"),
			WindowDays:         v.GetInt("pipeline.window_days"),
			MinRequestInterval: v.GetDuration("pipeline.min_request_interval"),
			Concurrency:        v.GetInt("pipeline.concurrency"),
			RunTimeout:         v.GetDuration("pipeline.run_timeout"),
			Interval:           v.GetDuration("pipeline.interval"),
			LockTTL:            v.GetDuration("pipeline.lock_ttl"),
		},
		Archive: ArchiveConfig{
			Driver:       v.GetString("archive.driver"),
			Dir:          v.GetString("archive.dir"),
			Bucket:       v.GetString("archive.bucket"),
			Prefix:       v.GetString("archive.prefix"),
			Region:       v.GetString("archive.region"),
			Endpoint:     v.GetString("archive.endpoint"),
			AccessKey:    v.GetString("archive.access_key"),
			SecretKey:    v.GetString("archive.secret_key"),
			UsePathStyle: v.GetBool("archive.use_path_style"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
		},
		Metrics: MetricsConfig{
			PushgatewayURL: v.GetString("metrics.pushgateway_url"),
			JobName:        v.GetString("metrics.job_name"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseInt64Slice accepts "202,303" from the environment as well as TOML arrays
func parseInt64Slice(values []string) ([]int64, error) {
	var ids []int64
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			var id int64
			if _, err := fmt.Sscan(part, &id); err != nil {
				return nil, fmt.Errorf("invalid warehouse id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "logiwa-shipments"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "shipments"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
	if cfg.Database.SlowThreshold == 0 {
		cfg.Database.SlowThreshold = 200 * time.Millisecond
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Logiwa.BaseURL == "" {
		cfg.Logiwa.BaseURL = "https://hubapi.logiwa.com"
	}
	if cfg.Logiwa.TimeoutSeconds == 0 {
		cfg.Logiwa.TimeoutSeconds = 60
	}
	if len(cfg.Logiwa.WarehouseIDs) == 0 && !cfg.Logiwa.LookupWarehouses {
		cfg.Logiwa.WarehouseIDs = []int64{202}
	}
	if cfg.Logiwa.MaxThrottleRetries == 0 {
		cfg.Logiwa.MaxThrottleRetries = 8
	}
	if cfg.Logiwa.ThrottleBackoff == 0 {
		cfg.Logiwa.ThrottleBackoff = 2 * time.Second
	}
	if cfg.Logiwa.ThrottleMaxBackoff == 0 {
		cfg.Logiwa.ThrottleMaxBackoff = time.Minute
	}
	if cfg.Logiwa.TimeZone == "" {
		cfg.Logiwa.TimeZone = "UTC"
	}
	if cfg.Pipeline.PageSize == 0 {
		cfg.Pipeline.PageSize = 200
	}
	if cfg.Pipeline.WindowDays == 0 {
		cfg.Pipeline.WindowDays = 45
	}
	if cfg.Pipeline.MinRequestInterval == 0 {
		cfg.Pipeline.MinRequestInterval = 500 * time.Millisecond
	}
	if cfg.Pipeline.Concurrency == 0 {
		cfg.Pipeline.Concurrency = 1
	}
	if cfg.Pipeline.RunTimeout == 0 {
		cfg.Pipeline.RunTimeout = 2 * time.Hour
	}
	if cfg.Pipeline.Interval == 0 {
		cfg.Pipeline.Interval = 15 * time.Minute
	}
	if cfg.Pipeline.LockTTL == 0 {
		cfg.Pipeline.LockTTL = cfg.Pipeline.RunTimeout + 5*time.Minute
	}
	if cfg.Archive.Driver == "" {
		cfg.Archive.Driver = "none"
	}
	if cfg.Archive.Dir == "" {
		cfg.Archive.Dir = "./archive"
	}
	if cfg.Archive.Prefix == "" {
		cfg.Archive.Prefix = "logiwa/shipment-orders"
	}
	if cfg.Archive.Region == "" {
		cfg.Archive.Region = "us-east-1"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Metrics.JobName == "" {
		cfg.Metrics.JobName = "logiwa_shipments"
	}
}

var structValidator = validator.New()

// validate runs struct tag rules, then the cross-field checks tags cannot express
func (c *Config) validate() error {
	if err := structValidator.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			return fmt.Errorf("invalid config %s: failed %q rule (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Logiwa.ThrottleMaxBackoff < c.Logiwa.ThrottleBackoff {
		return fmt.Errorf("logiwa.throttle_max_backoff (%s) cannot be less than logiwa.throttle_backoff (%s)",
			c.Logiwa.ThrottleMaxBackoff, c.Logiwa.ThrottleBackoff)
	}
	if _, err := c.Logiwa.Location(); err != nil {
		return err
	}
	for _, id := range c.Logiwa.WarehouseIDs {
		if id <= 0 {
			return fmt.Errorf("logiwa.warehouse_ids must be positive, got %d", id)
		}
	}

	if c.Pipeline.MinRequestInterval < 0 {
		return fmt.Errorf("pipeline.min_request_interval cannot be negative")
	}
	if c.Pipeline.RunTimeout < 0 {
		return fmt.Errorf("pipeline.run_timeout cannot be negative")
	}

	switch c.Archive.Driver {
	case "local":
		if c.Archive.Dir == "" {
			return fmt.Errorf("archive.dir is required for the local archive driver")
		}
	case "s3":
		if c.Archive.Bucket == "" {
			return fmt.Errorf("archive.bucket is required for the s3 archive driver")
		}
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Logiwa.Username == "" || c.Logiwa.Password == "" {
			return fmt.Errorf("logiwa.username and logiwa.password are required in production")
		}
	}

	return nil
}

// Location resolves TimeZone; an empty name is UTC
func (l *LogiwaConfig) Location() (*time.Location, error) {
	if l.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(l.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid logiwa.timezone %q: %w", l.TimeZone, err)
	}
	return loc, nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
