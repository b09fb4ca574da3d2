package models

import "time"

// CampaignStatus tracks a campaign through the pipeline stages.
type CampaignStatus string

const (
	CampaignStatusUploading  CampaignStatus = "uploading"
	CampaignStatusSegmenting CampaignStatus = "segmenting"
	CampaignStatusGenerating CampaignStatus = "generating"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusError      CampaignStatus = "error"
)

// Campaign is the aggregate record owned by the campaign repository.
type Campaign struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    CampaignStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`

	TotalLeads   int `json:"total_leads"`
	ValidLeads   int `json:"valid_leads"`
	SkippedLeads int `json:"skipped_leads"`
	TotalEmails  int `json:"total_emails"`

	// Distinct company ids that received at least one assignment.
	Companies []string `json:"companies"`

	// Reasons emitted for rows rejected during ingestion, order-preserved.
	SkipReasons []string `json:"skip_reasons,omitempty"`
}

// CampaignStats is a per-company / per-segment breakdown of a campaign.
type CampaignStats struct {
	ByCompany map[string]int `json:"by_company"`
	BySegment map[string]int `json:"by_segment"`
}
