// Package config carga la configuración del servidor: defaults, archivo
// YAML opcional y variables de entorno, en ese orden.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath apunta a un YAML opcional.
const EnvConfigPath = "PETADOPT_CONFIG"

type S3Config struct {
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	BaseEndpoint  string `yaml:"base_endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// Enabled: sin bucket las imágenes quedan como vinieron (URL o data URI).
func (s S3Config) Enabled() bool { return strings.TrimSpace(s.Bucket) != "" }

type Config struct {
	Port        string        `yaml:"port"`
	DatabaseDSN string        `yaml:"database_dsn"`
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	// DevAuth desactiva JWT y acepta X-Debug-User-ID / X-Debug-Role.
	DevAuth   bool   `yaml:"dev_auth"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	AppName   string `yaml:"app_name"`

	S3 S3Config `yaml:"s3"`

	SeedModeratorEmail    string `yaml:"seed_moderator_email"`
	SeedModeratorPassword string `yaml:"seed_moderator_password"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoadDefaults deja valores de desarrollo; JWTSecret debe pisarse en prod.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.DatabaseDSN = ""
	c.JWTSecret = "dev-secret-change-me"
	c.TokenTTL = 24 * time.Hour
	c.DevAuth = false
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.AppName = "pet-adoption"
	c.S3 = S3Config{Region: "us-east-1"}
	c.ShutdownTimeout = 10 * time.Second
}

// Load aplica defaults, el YAML (path o $PETADOPT_CONFIG) y el entorno.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile pisa solo las claves presentes en el YAML.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv pisa con las variables definidas. lookup suele ser os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("PORT", &c.Port)
	str("DB_DSN", &c.DatabaseDSN)
	str("JWT_SECRET", &c.JWTSecret)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("APP_NAME", &c.AppName)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_REGION", &c.S3.Region)
	str("S3_BASE_ENDPOINT", &c.S3.BaseEndpoint)
	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)
	str("S3_PUBLIC_BASE_URL", &c.S3.PublicBaseURL)
	str("SEED_MODERATOR_EMAIL", &c.SeedModeratorEmail)
	str("SEED_MODERATOR_PASSWORD", &c.SeedModeratorPassword)

	if v, ok := lookup("TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	if v, ok := lookup("DEV_AUTH"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: DEV_AUTH: %w", err)
		}
		c.DevAuth = b
	}
	return nil
}

// Addr es la dirección de escucha.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Validate rechaza combinaciones que no arrancan.
func (c *Config) Validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: token_ttl must be positive")
	}
	if !c.DevAuth && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: jwt_secret is required unless dev_auth is set")
	}
	if (c.SeedModeratorEmail == "") != (c.SeedModeratorPassword == "") {
		return fmt.Errorf("config: seed moderator needs both email and password")
	}
	return nil
}
