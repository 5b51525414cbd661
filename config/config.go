// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required by the API server).
	JWTSecret string
	// Users allowed to trigger runs over the API.
	AdminUsers []string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	Ratings Ratings
}

// Ratings holds the batch engine settings.
type Ratings struct {
	Season        int
	Leagues       []string
	Epsilon       float64
	MaxIterations int
	Relaxation    float64
	HomeCourt     float64
}

// ImportConfig holds configuration used by cmd/migrate to pull scraper data.
type ImportConfig struct {
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// MySQLDSN points at the scraper database.
	MySQLDSN string
	League   string
	Season   int
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg, err := load(newViper())
	if err != nil {
		log.Fatal("config: ", err)
	}
	return cfg
}

// LoadImport reads the cmd/migrate configuration.
func LoadImport() *ImportConfig {
	cfg, err := loadImport(newViper())
	if err != nil {
		log.Fatal("config: ", err)
	}
	return cfg
}

func setDBDefaults(v *viper.Viper) {
	v.SetDefault("DB_USER", "hoops")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "hoopsrank")
	v.SetDefault("DB_SSLMODE", "disable")
}

func load(v *viper.Viper) (*Config, error) {
	setDBDefaults(v)
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("ADMIN_USERS", "admin")
	v.SetDefault("DEBUG", false)
	v.SetDefault("RATINGS_LEAGUES", "men,women")
	v.SetDefault("RATINGS_EPSILON", 0.01)
	v.SetDefault("RATINGS_MAX_ITERATIONS", 100)
	v.SetDefault("RATINGS_RELAXATION", 0.5)
	v.SetDefault("RATINGS_HOME_COURT", 0.0)

	cfg := &Config{
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		AdminUsers:  splitTrimmed(v.GetString("ADMIN_USERS")),
		Debug:       v.GetBool("DEBUG"),
		Port:        v.GetString("PORT"),
		TLSDomains:  splitTrimmed(v.GetString("TLS_DOMAINS")),
		Ratings: Ratings{
			Season:        v.GetInt("RATINGS_SEASON"),
			Leagues:       splitTrimmed(v.GetString("RATINGS_LEAGUES")),
			Epsilon:       v.GetFloat64("RATINGS_EPSILON"),
			MaxIterations: v.GetInt("RATINGS_MAX_ITERATIONS"),
			Relaxation:    v.GetFloat64("RATINGS_RELAXATION"),
			HomeCourt:     v.GetFloat64("RATINGS_HOME_COURT"),
		},
	}

	return cfg, cfg.validate()
}

func loadImport(v *viper.Viper) (*ImportConfig, error) {
	setDBDefaults(v)
	v.SetDefault("IMPORT_LEAGUE", "men")

	cfg := &ImportConfig{
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
		League:      v.GetString("IMPORT_LEAGUE"),
		Season:      v.GetInt("IMPORT_SEASON"),
	}

	return cfg, cfg.validate()
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	return postgresDSN(c.DatabaseURL, c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// PostgresDSN returns the full PostgreSQL connection string.
func (c *ImportConfig) PostgresDSN() string {
	return postgresDSN(c.DatabaseURL, c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Postgres returns a Config carrying only the connection settings, for db.Setup.
func (c *ImportConfig) Postgres() *Config {
	return &Config{
		DatabaseURL: c.DatabaseURL,
		DBUser:      c.DBUser,
		DBPass:      c.DBPass,
		DBHost:      c.DBHost,
		DBPort:      c.DBPort,
		DBName:      c.DBName,
		DBSSLMode:   c.DBSSLMode,
	}
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func postgresDSN(url, user, pass, host, port, name, sslmode string) string {
	if url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user,
		pass,
		host,
		port,
		name,
		sslmode,
	)
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return errors.New("DATABASE_URL or DB_PASS must be set")
	}
	if c.Ratings.Epsilon <= 0 {
		return errors.New("RATINGS_EPSILON must be positive")
	}
	if c.Ratings.MaxIterations <= 0 {
		return errors.New("RATINGS_MAX_ITERATIONS must be positive")
	}
	if c.Ratings.Relaxation <= 0 || c.Ratings.Relaxation > 1 {
		return errors.New("RATINGS_RELAXATION must be in (0, 1]")
	}
	if len(c.Ratings.Leagues) == 0 {
		return errors.New("RATINGS_LEAGUES must name at least one league")
	}
	return nil
}

func (c *ImportConfig) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return errors.New("DATABASE_URL or DB_PASS must be set")
	}
	if c.MySQLDSN == "" {
		return errors.New("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/scraper?parseTime=true")
	}
	if c.Season == 0 {
		return errors.New("IMPORT_SEASON must be set")
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
