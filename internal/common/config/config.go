// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Explain   ExplainConfig   `mapstructure:"explain"`
	Database  DatabaseConfig  `mapstructure:"database"`
	History   HistoryConfig   `mapstructure:"history"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	ReadTimeout    int    `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"`   // milliseconds
	ScoringTimeout int    `mapstructure:"scoring_timeout"` // milliseconds
}

// ArtifactsConfig locates the trained artifact bundle. The server refuses to
// start without it.
type ArtifactsConfig struct {
	BundlePath string `mapstructure:"bundle_path"`
}

// ExplainConfig carries the versioned factor weights and the optional
// education factor toggle. Two deployed variants of the explanation engine
// disagreed on these numbers; they are configuration, not constants.
type ExplainConfig struct {
	PaymentHistoryWeight int  `mapstructure:"payment_history_weight"`
	AcademicWeight       int  `mapstructure:"academic_weight"`
	IncomeSupportWeight  int  `mapstructure:"income_support_weight"`
	EducationWeight      int  `mapstructure:"education_weight"`
	IncludeEducation     bool `mapstructure:"include_education"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HistoryConfig controls the optional score history store.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// CacheConfig controls the optional score result cache.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
