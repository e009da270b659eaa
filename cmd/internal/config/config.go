package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CLUBCAL_"

type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" validate:"required"`

	// DatabasePath is handed to the SQLite driver (":memory:" works too).
	DatabasePath string `yaml:"database_path" validate:"required"`

	// ProductID names the product in PRODID and in the feed file name.
	ProductID string `yaml:"product_id" validate:"required,printascii,excludes=/"`

	// PublicOrigin is prepended to /feed/<id> when showing feed URLs.
	PublicOrigin string `yaml:"public_origin" validate:"required,url"`

	// JWTSecret verifies bearer tokens on the preference endpoints.
	JWTSecret string `yaml:"jwt_secret" validate:"required,min=16"`

	// LegacyTimestamps turns off zero padding of date fields in feeds.
	LegacyTimestamps bool `yaml:"legacy_timestamps"`

	LogLevel string `yaml:"log_level" validate:"loglevel"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:       ":6060",
		DatabasePath: "./database.db",
		ProductID:    "clubcal",
		PublicOrigin: "http://localhost:6060",
		LogLevel:     "info",
	}
}

// Load builds the effective configuration. Later sources win:
//
//  1. DefaultConfig
//  2. the YAML file at path, if it exists
//  3. CLUBCAL_* variables from a .env file in the working directory, if any
//  4. CLUBCAL_* variables from the process environment
//
// The result is validated with validate.
func Load(path string, validate *validator.Validate) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// no file, defaults and env only
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.PublicOrigin = strings.TrimRight(cfg.PublicOrigin, "/")

	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"LISTEN":        &c.Listen,
		"DATABASE_PATH": &c.DatabasePath,
		"PRODUCT_ID":    &c.ProductID,
		"PUBLIC_ORIGIN": &c.PublicOrigin,
		"JWT_SECRET":    &c.JWTSecret,
		"LOG_LEVEL":     &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "LEGACY_TIMESTAMPS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("CLUBCAL_LEGACY_TIMESTAMPS: " + err.Error())
		}
		c.LegacyTimestamps = b
	}
	return nil
}
