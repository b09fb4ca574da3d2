package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"leadgen/internal/ingest"
	"leadgen/internal/segment"
)

var segmentFlags struct {
	input   string
	company string
}

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Classify leads and print the company/segment breakdown",
	RunE:  runSegment,
}

func init() {
	f := segmentCmd.Flags()
	f.StringVarP(&segmentFlags.input, "input", "i", "", "Path to the lead CSV export (required)")
	f.StringVar(&segmentFlags.company, "company", "", "Restrict matching to one company id")
	_ = segmentCmd.MarkFlagRequired("input")
}

func runSegment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := buildLogger(cfg)

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(segmentFlags.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	parser := ingest.NewParser(log)
	leads, skipped, err := parser.Parse(string(raw))
	if err != nil {
		return err
	}
	if cfg.Pipeline.DuplicateCheck {
		leads = parser.Deduplicate(leads)
	}

	assignments, err := segment.NewEngine(registry, log).AssignAll(leads, segmentFlags.company)
	if err != nil {
		return err
	}

	fmt.Printf("Leads: %d valid, %d skipped\n", len(leads), len(skipped))
	for _, reason := range skipped {
		fmt.Printf("  %s\n", reason)
	}

	// company -> segment -> count
	breakdown := make(map[string]map[string]int)
	for _, a := range assignments {
		if breakdown[a.CompanyID] == nil {
			breakdown[a.CompanyID] = make(map[string]int)
		}
		breakdown[a.CompanyID][a.SegmentID]++
	}

	companies := make([]string, 0, len(breakdown))
	for id := range breakdown {
		companies = append(companies, id)
	}
	sort.Strings(companies)

	fmt.Printf("Assignments: %d\n", len(assignments))
	for _, companyID := range companies {
		segments := make([]string, 0, len(breakdown[companyID]))
		for id := range breakdown[companyID] {
			segments = append(segments, id)
		}
		sort.Strings(segments)

		fmt.Printf("  %s\n", companyID)
		for _, segmentID := range segments {
			fmt.Printf("    %-20s %d\n", segmentID, breakdown[companyID][segmentID])
		}
	}
	return nil
}
