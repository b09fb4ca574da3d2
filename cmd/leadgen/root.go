package main

import (
	"github.com/spf13/cobra"

	"leadgen/internal/campaign"
	"leadgen/internal/common/config"
	"leadgen/internal/common/database"
	"leadgen/internal/common/logger"
	"leadgen/internal/rules"
	"leadgen/internal/template"
)

// version is set at build time via -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "leadgen",
	Short: "Lead classification and email generation pipeline",
	Long: "Leadgen ingests Apollo CSV exports, matches each lead against the\n" +
		"configured companies, selects a message segment per ordered rules,\n" +
		"renders personalized emails and exports them for Instantly.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default: configs/config.yaml)")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(campaignsCmd)
	rootCmd.Version = version
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func buildLogger(cfg *config.Config) logger.Logger {
	return logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
}

// loadRegistry resolves the rule registry (file override or embedded
// defaults) and refuses to start when any (company, segment) pair lacks
// a template.
func loadRegistry(cfg *config.Config) (*rules.Registry, error) {
	var (
		reg *rules.Registry
		err error
	)
	if cfg.Rules.Path != "" {
		reg, err = rules.Load(cfg.Rules.Path)
		if err != nil {
			return nil, err
		}
	} else {
		reg = rules.Default()
	}
	if err := template.CheckCoverage(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// openRepository builds the campaign store for the configured driver.
// The returned closer is a no-op for the in-memory store.
func openRepository(cfg *config.Config) (campaign.Repository, func() error, error) {
	switch cfg.Storage.Driver {
	case "redis":
		client, err := database.NewRedis(cfg.Storage.Redis)
		if err != nil {
			return nil, nil, err
		}
		return campaign.NewRedisStore(client.GetClient()), client.Close, nil
	case "postgres":
		client, err := database.NewPostgres(cfg.Storage.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return campaign.NewPostgresStore(client.GetDB()), client.Close, nil
	default:
		return campaign.NewMemoryStore(), func() error { return nil }, nil
	}
}
