package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // часовой пояс барбершопа не должен зависеть от образа

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// EnvGeminiAPIKey переопределяет gemini.api_key, чтобы ключ не хранился в файле
const EnvGeminiAPIKey = "GEMINI_API_KEY"

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Policy    PolicyConfig    `toml:"policy"`
	Retry     RetryConfig     `toml:"retry"`
	Firebase  FirebaseConfig  `toml:"firebase"`
	Gemini    GeminiConfig    `toml:"gemini"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Signup    SignupConfig    `toml:"signup"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
	// CountdownInterval период SSE обратного отсчета, миллисекунды
	CountdownInterval int `toml:"countdown_interval_ms"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type PolicyConfig struct {
	CancellationWindowHours int    `toml:"cancellation_window_hours"`
	StalenessWindowHours    int    `toml:"staleness_window_hours"`
	TimeZone                string `toml:"timezone"`
}

// Location часовой пояс барбершопа
func (c PolicyConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

type RetryConfig struct {
	MaxAttempts       int `toml:"max_attempts"`
	InitialIntervalMs int `toml:"initial_interval_ms"`
	MaxIntervalMs     int `toml:"max_interval_ms"`
}

type FirebaseConfig struct {
	// Enabled = false включает режим разработки: пользователь берется из X-User-ID
	Enabled         bool   `toml:"enabled"`
	ProjectID       string `toml:"project_id"`
	CredentialsFile string `toml:"credentials_file"`
}

type GeminiConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout int    `toml:"timeout"` // секунды
}

type RateLimitConfig struct {
	RequestsPerMinute int `toml:"requests_per_minute"`
	Burst             int `toml:"burst"`
}

type SignupConfig struct {
	DefaultEmailDomain string `toml:"default_email_domain"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:          8080,
			ReadTimeout:       10,
			WriteTimeout:      10,
			IdleTimeout:       60,
			ShutdownTimeout:   10,
			CountdownInterval: 1000,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "barber-booking",
		},
		Policy: PolicyConfig{
			CancellationWindowHours: domain.DefaultCancellationWindowHours,
			StalenessWindowHours:    domain.DefaultStalenessWindowHours,
			TimeZone:                domain.DefaultTimeZone,
		},
		Retry: RetryConfig{
			MaxAttempts:       3,
			InitialIntervalMs: 100,
			MaxIntervalMs:     2000,
		},
		Gemini: GeminiConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 15,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
			Burst:             3,
		},
		Signup: SignupConfig{
			DefaultEmailDomain: "student.ukm.my",
		},
	}
}

// Load читает конфигурацию из toml файла поверх значений по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if key := os.Getenv(EnvGeminiAPIKey); key != "" {
		cfg.Gemini.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Server.CountdownInterval <= 0 {
		errs = append(errs, errors.New("server.countdown_interval_ms must be positive"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Policy.CancellationWindowHours < 0 {
		errs = append(errs, errors.New("policy.cancellation_window_hours must not be negative"))
	}
	if c.Policy.StalenessWindowHours <= 0 {
		errs = append(errs, errors.New("policy.staleness_window_hours must be positive"))
	}
	if _, err := c.Policy.Location(); err != nil {
		errs = append(errs, fmt.Errorf("policy.timezone: %w", err))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry.max_attempts must be at least 1"))
	}
	if c.Firebase.Enabled && c.Firebase.ProjectID == "" {
		errs = append(errs, errors.New("firebase.project_id is required when firebase is enabled"))
	}
	if c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_minute and rate_limit.burst must be positive"))
	}

	return errors.Join(errs...)
}
