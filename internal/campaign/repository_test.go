package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgen/internal/models"
)

func testCampaign(id string, created time.Time) models.Campaign {
	return models.Campaign{
		ID:           id,
		Name:         "gruppenwerk_test",
		Status:       models.CampaignStatusCompleted,
		CreatedAt:    created,
		TotalLeads:   5,
		ValidLeads:   4,
		SkippedLeads: 1,
		TotalEmails:  6,
		Companies:    []string{"seehafer_elemente"},
		SkipReasons:  []string{"Zeile übersprungen: kein Name"},
	}
}

// exerciseRepository runs the shared contract every store must satisfy.
func exerciseRepository(t *testing.T, repo Repository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	// Unknown ids.
	_, err := repo.GetCampaign(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteCampaign(ctx, "missing"), ErrNotFound)

	// Put + get round trip.
	c1 := testCampaign("c1", now)
	require.NoError(t, repo.PutCampaign(ctx, c1))

	got, err := repo.GetCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, c1.Name, got.Name)
	assert.Equal(t, c1.Status, got.Status)
	assert.Equal(t, c1.Companies, got.Companies)
	assert.True(t, c1.CreatedAt.Equal(got.CreatedAt))

	// Put merges by id.
	c1.Status = models.CampaignStatusError
	require.NoError(t, repo.PutCampaign(ctx, c1))
	got, err = repo.GetCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusError, got.Status)

	// List is ordered oldest first.
	c2 := testCampaign("c2", now.Add(time.Hour))
	require.NoError(t, repo.PutCampaign(ctx, c2))
	list, err := repo.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
	assert.Equal(t, "c2", list[1].ID)

	// Leads and emails append in order, scoped per campaign.
	leads := []models.Lead{
		{ID: "l1", CampaignID: "c1", Email: "max@acme.de", FirstName: "Max"},
		{ID: "l2", CampaignID: "c1", Email: "eva@acme.de", FirstName: "Eva"},
	}
	require.NoError(t, repo.AppendLeads(ctx, "c1", leads))

	gotLeads, err := repo.LeadsByCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, leads, gotLeads)

	otherLeads, err := repo.LeadsByCampaign(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, otherLeads)

	emails := []models.GeneratedEmail{
		{
			ID:          "e1",
			CampaignID:  "c1",
			Lead:        leads[0],
			CompanyID:   "seehafer_elemente",
			SegmentID:   "hausverwaltung",
			MatchScore:  0.8,
			SubjectLine: "Betreff",
			Body:        "Text",
			Icebreaker:  "Moin.",
		},
	}
	require.NoError(t, repo.AppendEmails(ctx, "c1", emails))

	gotEmails, err := repo.EmailsByCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, emails, gotEmails)

	// Delete removes the campaign and its collections.
	require.NoError(t, repo.DeleteCampaign(ctx, "c1"))
	_, err = repo.GetCampaign(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)

	gotLeads, err = repo.LeadsByCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, gotLeads)
}
