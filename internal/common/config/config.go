// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Rules    RulesConfig    `mapstructure:"rules"`
	AI       AIConfig       `mapstructure:"ai"`
	Export   ExportConfig   `mapstructure:"export"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type PipelineConfig struct {
	BatchSize      int    `mapstructure:"batch_size"`
	DuplicateCheck bool   `mapstructure:"duplicate_check"`
	CampaignPrefix string `mapstructure:"campaign_prefix"`
	SenderName     string `mapstructure:"sender_name"`
}

type RulesConfig struct {
	// Path to a rules.yaml overriding the embedded registry. Empty means
	// the embedded defaults are used.
	Path string `mapstructure:"path"`
}

type AIConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

type ExportConfig struct {
	OutputDirectory string `mapstructure:"output_directory"`
}

type StorageConfig struct {
	// Driver selects the campaign repository: memory, redis or postgres.
	Driver   string         `mapstructure:"driver"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
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

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
