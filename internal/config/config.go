package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Public holds settings safe to expose in logs and to operators.
type Public struct {
	Media              Media    `yaml:"media" validate:"required"`
	ElevatedRoles      []string `yaml:"elevated_roles"`
	CorsAllowedOrigins []string `yaml:"cors_allowed_origins"`
	HTTPS              bool     `yaml:"https"`
	LogLevel           string   `yaml:"log_level"`
	LogJSON            bool     `yaml:"log_json"`
}

// Media configures the delivery subsystem.
type Media struct {
	// StorageRoot is the directory all resolved file paths must stay under.
	StorageRoot string `yaml:"storage_root" validate:"required"`
	// DeliveryMode selects how bytes reach the client: "direct" streams them
	// from this process, "delegated" hands off to the fronting proxy.
	DeliveryMode string `yaml:"delivery_mode" validate:"required,oneof=direct delegated"`
	// AccelPrefix is the internal-only location prefix the proxy serves.
	// Only meaningful in delegated mode.
	AccelPrefix string `yaml:"accel_prefix"`
	// CacheMaxAgeSeconds bounds how long a private cache may keep a response.
	CacheMaxAgeSeconds int `yaml:"cache_max_age_seconds"`
}

type Private struct {
	Pg     Pg            `yaml:"pg" validate:"required"`
	JwtKey string        `yaml:"jwt_key" validate:"required"`
	JwtTTL time.Duration `yaml:"jwt_ttl"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Private.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder and panics on
// any missing file, parse error, or failed validation. Config problems should
// stop the process before it accepts traffic.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if err := cfg.validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return fmt.Errorf("invalid public config: %w", err)
	}
	if err := validate.Struct(c.Private); err != nil {
		return fmt.Errorf("invalid private config: %w", err)
	}
	if c.Public.Media.DeliveryMode == "delegated" && c.Public.Media.AccelPrefix == "" {
		return fmt.Errorf("invalid public config: accel_prefix is required in delegated mode")
	}
	return nil
}
