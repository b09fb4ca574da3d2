package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"leadgen/internal/icebreaker"
	"leadgen/internal/ingest"
	"leadgen/internal/segment"
	"leadgen/internal/template"
)

var previewFlags struct {
	input   string
	company string
	count   int
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the first N emails with the deterministic icebreaker",
	RunE:  runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.StringVarP(&previewFlags.input, "input", "i", "", "Path to the lead CSV export (required)")
	f.StringVar(&previewFlags.company, "company", "", "Restrict matching to one company id")
	f.IntVarP(&previewFlags.count, "count", "n", 3, "Number of emails to render")
	_ = previewCmd.MarkFlagRequired("input")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := buildLogger(cfg)

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(previewFlags.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	parser := ingest.NewParser(log)
	leads, _, err := parser.Parse(string(raw))
	if err != nil {
		return err
	}
	if cfg.Pipeline.DuplicateCheck {
		leads = parser.Deduplicate(leads)
	}

	assignments, err := segment.NewEngine(registry, log).AssignAll(leads, previewFlags.company)
	if err != nil {
		return err
	}
	if len(assignments) > previewFlags.count {
		assignments = assignments[:previewFlags.count]
	}

	renderer := template.NewRenderer(registry, log)
	fallback := icebreaker.NewFallback()
	for i, assignment := range assignments {
		text := fallback.Generate(cmd.Context(), assignment)
		rendered, err := renderer.Render(assignment, text)
		if err != nil {
			return err
		}

		fmt.Printf("--- %d/%d  %s -> %s / %s (score %.1f)\n",
			i+1, len(assignments), assignment.Lead.Email,
			assignment.CompanyID, assignment.SegmentID, assignment.MatchScore)
		fmt.Printf("Betreff: %s\n\n", rendered.SubjectLine)
		fmt.Println(rendered.Body)
		fmt.Println(strings.Repeat("-", 60))
	}
	return nil
}
