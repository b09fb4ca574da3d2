package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"leadgen/internal/campaign"
	"leadgen/internal/export"
	"leadgen/internal/icebreaker"
	"leadgen/internal/ingest"
	"leadgen/internal/segment"
	"leadgen/internal/template"
)

var generateFlags struct {
	input   string
	company string
	name    string
	noAI    bool
	output  string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline and export Instantly CSVs",
	Long: `Ingest a CSV export, classify every lead, generate icebreakers,
render emails and write one Instantly import CSV per company.

The campaign record is persisted through the configured storage driver
(memory, redis or postgres).`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.input, "input", "i", "", "Path to the lead CSV export (required)")
	f.StringVar(&generateFlags.company, "company", "", "Restrict matching to one company id")
	f.StringVar(&generateFlags.name, "name", "", "Campaign name (default: <prefix>_<timestamp>)")
	f.BoolVar(&generateFlags.noAI, "no-ai", false, "Force the deterministic icebreaker, skip the AI provider")
	f.StringVarP(&generateFlags.output, "output", "o", "", "Export directory (default from config)")
	_ = generateCmd.MarkFlagRequired("input")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := buildLogger(cfg)

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	raw, err := os.ReadFile(generateFlags.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	aiCfg := cfg.AI
	if generateFlags.noAI {
		aiCfg.Enabled = false
	}

	service := campaign.NewService(
		repo,
		ingest.NewParser(log),
		segment.NewEngine(registry, log),
		template.NewRenderer(registry, log),
		icebreaker.New(aiCfg, registry, log),
		log,
	)

	name := generateFlags.name
	if name == "" {
		name = fmt.Sprintf("%s_%s", cfg.Pipeline.CampaignPrefix, time.Now().Format("20060102_150405"))
	}

	c, err := service.Run(cmd.Context(), name, string(raw), campaign.RunOptions{
		CompanyFilter: generateFlags.company,
		Deduplicate:   cfg.Pipeline.DuplicateCheck,
		Progress: func(fraction float64) {
			fmt.Printf("\rGenerating emails... %3.0f%%", fraction*100)
		},
	})
	if err != nil {
		return err
	}
	fmt.Println()

	fmt.Printf("Campaign %s (%s)\n", c.Name, c.ID)
	fmt.Printf("  Leads:   %d total, %d valid, %d skipped\n", c.TotalLeads, c.ValidLeads, c.SkippedLeads)
	fmt.Printf("  Emails:  %d across %d companies\n", c.TotalEmails, len(c.Companies))
	for _, reason := range c.SkipReasons {
		fmt.Printf("  Skipped: %s\n", reason)
	}

	emails, err := service.Emails(cmd.Context(), c.ID)
	if err != nil {
		return err
	}

	outDir := generateFlags.output
	if outDir == "" {
		outDir = cfg.Export.OutputDirectory
	}
	files, err := export.ExportByCompany(outDir, cfg.Pipeline.CampaignPrefix, emails)
	if err != nil {
		return err
	}
	for _, file := range files {
		fmt.Printf("  Export:  %s\n", file)
	}
	return nil
}
