// Package campaign orchestrates the full pipeline run and persists its
// results through an injected repository.
package campaign

import (
	"context"
	"errors"

	"leadgen/internal/models"
)

// ErrNotFound is returned when a campaign id is unknown to the store.
var ErrNotFound = errors.New("campaign not found")

// Repository is the campaign store collaborator. The pipeline treats it
// as an opaque append/merge-by-id store and never assumes transactional
// isolation across calls; concurrent-writer safety is the store's job.
type Repository interface {
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
	PutCampaign(ctx context.Context, c models.Campaign) error
	DeleteCampaign(ctx context.Context, id string) error

	AppendLeads(ctx context.Context, campaignID string, leads []models.Lead) error
	LeadsByCampaign(ctx context.Context, campaignID string) ([]models.Lead, error)

	AppendEmails(ctx context.Context, campaignID string, emails []models.GeneratedEmail) error
	EmailsByCampaign(ctx context.Context, campaignID string) ([]models.GeneratedEmail, error)
}
