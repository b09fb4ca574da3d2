package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"leadgen/internal/campaign"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Inspect the campaign repository",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored campaigns",
	RunE:  runCampaignsList,
}

var campaignsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one campaign with its per-company/segment counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignsShow,
}

var campaignsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a campaign and its stored leads and emails",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignsDelete,
}

func init() {
	campaignsCmd.AddCommand(campaignsListCmd)
	campaignsCmd.AddCommand(campaignsShowCmd)
	campaignsCmd.AddCommand(campaignsDeleteCmd)
}

func openService() (*campaign.Service, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := buildLogger(cfg)

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	return campaign.NewService(repo, nil, nil, nil, nil, log), closeRepo, nil
}

func runCampaignsList(cmd *cobra.Command, args []string) error {
	service, closeRepo, err := openService()
	if err != nil {
		return err
	}
	defer closeRepo()

	campaigns, err := service.Campaigns(cmd.Context())
	if err != nil {
		return err
	}
	if len(campaigns) == 0 {
		fmt.Println("No campaigns stored.")
		return nil
	}

	fmt.Printf("%-36s  %-30s  %-10s  %6s  %6s\n", "ID", "NAME", "STATUS", "LEADS", "EMAILS")
	for _, c := range campaigns {
		fmt.Printf("%-36s  %-30s  %-10s  %6d  %6d\n", c.ID, c.Name, c.Status, c.ValidLeads, c.TotalEmails)
	}
	return nil
}

func runCampaignsShow(cmd *cobra.Command, args []string) error {
	service, closeRepo, err := openService()
	if err != nil {
		return err
	}
	defer closeRepo()

	c, err := service.Campaign(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Campaign %s (%s)\n", c.Name, c.ID)
	fmt.Printf("  Status:  %s\n", c.Status)
	fmt.Printf("  Created: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Leads:   %d total, %d valid, %d skipped\n", c.TotalLeads, c.ValidLeads, c.SkippedLeads)
	fmt.Printf("  Emails:  %d\n", c.TotalEmails)
	for _, reason := range c.SkipReasons {
		fmt.Printf("  Skipped: %s\n", reason)
	}

	stats, err := service.Stats(cmd.Context(), c.ID)
	if err != nil {
		return err
	}
	fmt.Println("  By company:")
	for _, companyID := range sortedKeys(stats.ByCompany) {
		fmt.Printf("    %-20s %d\n", companyID, stats.ByCompany[companyID])
	}
	fmt.Println("  By segment:")
	for _, segmentID := range sortedKeys(stats.BySegment) {
		fmt.Printf("    %-20s %d\n", segmentID, stats.BySegment[segmentID])
	}
	return nil
}

func runCampaignsDelete(cmd *cobra.Command, args []string) error {
	service, closeRepo, err := openService()
	if err != nil {
		return err
	}
	defer closeRepo()

	if err := service.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted campaign %s\n", args[0])
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
