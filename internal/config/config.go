// Package config loads the process-wide configuration from environment
// variables. The parsed Config is injected into constructors at startup;
// business code never reads the environment directly.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting of the server.
type Config struct {
	// Env selects the runtime mode ("development" or "production").
	// Production switches gin to release mode.
	Env string `env:"APP_ENV" envDefault:"development"`

	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	DB     DBConfig
	JWT    JWTConfig
	Upload UploadConfig
	SMTP   SMTPConfig
	OTP    OTPConfig
	Redis  RedisConfig
	Chat   ChatConfig
}

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// RunMigrations enables gorm AutoMigrate on startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// DSN builds the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Asia/Jakarta",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// JWTConfig holds the token signing settings.
type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Lifetime time.Duration `env:"JWT_LIFETIME" envDefault:"24h"`
}

// UploadConfig holds the document storage settings.
type UploadConfig struct {
	// Dir is the uploads root; one folder per application is created below it.
	Dir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	// TmpDir is the staging area for files received before their
	// application row exists.
	TmpDir string `env:"UPLOAD_TMP_DIR" envDefault:"uploads/tmp"`

	// MaxFileSize is the per-file size ceiling in bytes.
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"5242880"`
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// OTPConfig holds the one-time-code settings for email verification and
// password reset.
type OTPConfig struct {
	Lifetime time.Duration `env:"OTP_LIFETIME" envDefault:"10m"`

	// ResendCooldown is the minimum interval between OTP resends per email.
	ResendCooldown time.Duration `env:"OTP_RESEND_COOLDOWN" envDefault:"60s"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Addr returns the host:port address of the Redis server.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// ChatConfig holds the FAQ chatbot settings.
type ChatConfig struct {
	Model string `env:"CHAT_MODEL" envDefault:"gemini-2.5-flash"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.DB.User == "" {
		return fmt.Errorf("missing DB_USER environment variable")
	}
	if c.DB.Name == "" {
		return fmt.Errorf("missing DB_NAME environment variable")
	}
	return nil
}
