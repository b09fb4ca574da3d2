package campaign

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"leadgen/internal/common/logger"
	"leadgen/internal/common/metrics"
	"leadgen/internal/icebreaker"
	"leadgen/internal/ingest"
	"leadgen/internal/models"
	"leadgen/internal/segment"
	"leadgen/internal/template"
)

// RunOptions tunes a single pipeline run.
type RunOptions struct {
	// CompanyFilter restricts classification to one configured company.
	// Empty means all companies are candidates.
	CompanyFilter string

	// Deduplicate drops repeated email addresses, keeping the first.
	Deduplicate bool

	// Progress, when set, is called with a fraction in [0,1] after each
	// assignment finishes generation and rendering.
	Progress func(fraction float64)
}

// Service runs the pipeline end to end for one campaign: ingest,
// classify, generate, render, persist. One campaign at a time; the
// only blocking collaborators are the icebreaker provider and the
// repository.
type Service struct {
	repo     Repository
	parser   *ingest.Parser
	engine   *segment.Engine
	renderer *template.Renderer
	provider icebreaker.Provider
	logger   logger.Logger
}

func NewService(repo Repository, parser *ingest.Parser, engine *segment.Engine, renderer *template.Renderer, provider icebreaker.Provider, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		parser:   parser,
		engine:   engine,
		renderer: renderer,
		provider: provider,
		logger:   log,
	}
}

// Run processes one raw CSV batch under a new campaign. The returned
// campaign is in status "completed"; on any fatal error the campaign is
// persisted in status "error" and the error is returned.
//
// Row validation failures never fail the run, they are recorded as skip
// reasons. Configuration lookups (unknown company filter, missing
// template for a resolved segment) abort the whole batch.
func (s *Service) Run(ctx context.Context, name, rawCSV string, opts RunOptions) (*models.Campaign, error) {
	c := models.Campaign{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    models.CampaignStatusUploading,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.PutCampaign(ctx, c); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(map[string]interface{}{
		"campaign_id":   c.ID,
		"campaign_name": name,
	})

	leads, err := s.ingestStage(ctx, &c, rawCSV, opts, log)
	if err != nil {
		return s.fail(ctx, c, err, log)
	}

	assignments, err := s.segmentStage(ctx, &c, leads, opts, log)
	if err != nil {
		return s.fail(ctx, c, err, log)
	}

	emails, err := s.generateStage(ctx, &c, assignments, opts, log)
	if err != nil {
		return s.fail(ctx, c, err, log)
	}

	c.Status = models.CampaignStatusCompleted
	c.TotalEmails = len(emails)
	c.Companies = distinctCompanies(assignments)
	if err := s.repo.PutCampaign(ctx, c); err != nil {
		return nil, err
	}

	log.Info("campaign completed", map[string]interface{}{
		"total_leads":   c.TotalLeads,
		"valid_leads":   c.ValidLeads,
		"skipped_leads": c.SkippedLeads,
		"total_emails":  c.TotalEmails,
		"companies":     c.Companies,
	})
	return &c, nil
}

func (s *Service) ingestStage(ctx context.Context, c *models.Campaign, rawCSV string, opts RunOptions, log logger.Logger) ([]models.Lead, error) {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("ingest").Observe(time.Since(start).Seconds())
	}()

	leads, skipped, err := s.parser.Parse(rawCSV)
	if err != nil {
		return nil, err
	}
	c.TotalLeads = len(leads) + len(skipped)

	if opts.Deduplicate {
		leads = s.parser.Deduplicate(leads)
	}
	for i := range leads {
		leads[i].ID = uuid.New().String()
		leads[i].CampaignID = c.ID
	}

	c.ValidLeads = len(leads)
	c.SkippedLeads = len(skipped)
	c.SkipReasons = skipped
	c.Status = models.CampaignStatusSegmenting
	if err := s.repo.PutCampaign(ctx, *c); err != nil {
		return nil, err
	}
	if err := s.repo.AppendLeads(ctx, c.ID, leads); err != nil {
		return nil, err
	}

	log.Info("leads ingested", map[string]interface{}{
		"valid":   len(leads),
		"skipped": len(skipped),
	})
	return leads, nil
}

func (s *Service) segmentStage(ctx context.Context, c *models.Campaign, leads []models.Lead, opts RunOptions, log logger.Logger) ([]models.Assignment, error) {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("segment").Observe(time.Since(start).Seconds())
	}()

	assignments, err := s.engine.AssignAll(leads, opts.CompanyFilter)
	if err != nil {
		return nil, err
	}

	c.Status = models.CampaignStatusGenerating
	if err := s.repo.PutCampaign(ctx, *c); err != nil {
		return nil, err
	}

	log.Info("leads segmented", map[string]interface{}{
		"assignments": len(assignments),
	})
	return assignments, nil
}

// generateStage runs icebreaker generation and rendering strictly
// sequentially: one provider request in flight at a time, progress
// reported after each assignment. Cancellation stops after the current
// item.
func (s *Service) generateStage(ctx context.Context, c *models.Campaign, assignments []models.Assignment, opts RunOptions, log logger.Logger) ([]models.GeneratedEmail, error) {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	}()

	emails := make([]models.GeneratedEmail, 0, len(assignments))
	for i, assignment := range assignments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := s.provider.Generate(ctx, assignment)
		rendered, err := s.renderer.Render(assignment, text)
		if err != nil {
			return nil, err
		}

		emails = append(emails, models.GeneratedEmail{
			ID:          uuid.New().String(),
			CampaignID:  c.ID,
			Lead:        assignment.Lead,
			CompanyID:   assignment.CompanyID,
			SegmentID:   assignment.SegmentID,
			MatchScore:  assignment.MatchScore,
			SubjectLine: rendered.SubjectLine,
			Body:        rendered.Body,
			Icebreaker:  rendered.Icebreaker,
			PDFLink:     rendered.PDFLink,
		})

		if opts.Progress != nil {
			opts.Progress(float64(i+1) / float64(len(assignments)))
		}
	}

	if err := s.repo.AppendEmails(ctx, c.ID, emails); err != nil {
		return nil, err
	}

	log.Info("emails generated", map[string]interface{}{
		"count": len(emails),
	})
	return emails, nil
}

// fail persists the error status best-effort and returns the cause.
func (s *Service) fail(ctx context.Context, c models.Campaign, cause error, log logger.Logger) (*models.Campaign, error) {
	c.Status = models.CampaignStatusError
	if err := s.repo.PutCampaign(ctx, c); err != nil {
		log.WithError(err).Error("failed to persist error status", nil)
	}
	log.WithError(cause).Error("campaign failed", map[string]interface{}{
		"status": c.Status,
	})
	return nil, cause
}

// Campaigns lists all stored campaigns, oldest first.
func (s *Service) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.repo.ListCampaigns(ctx)
}

// Campaign returns one campaign by id.
func (s *Service) Campaign(ctx context.Context, id string) (*models.Campaign, error) {
	return s.repo.GetCampaign(ctx, id)
}

// Emails returns the generated emails of one campaign.
func (s *Service) Emails(ctx context.Context, id string) ([]models.GeneratedEmail, error) {
	return s.repo.EmailsByCampaign(ctx, id)
}

// Delete removes a campaign and its stored leads and emails.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCampaign(ctx, id)
}

// Stats computes per-company and per-segment email counts for one
// campaign from its stored emails.
func (s *Service) Stats(ctx context.Context, id string) (*models.CampaignStats, error) {
	emails, err := s.repo.EmailsByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := &models.CampaignStats{
		ByCompany: make(map[string]int),
		BySegment: make(map[string]int),
	}
	for _, email := range emails {
		stats.ByCompany[email.CompanyID]++
		stats.BySegment[email.SegmentID]++
	}
	return stats, nil
}

func distinctCompanies(assignments []models.Assignment) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range assignments {
		if _, ok := seen[a.CompanyID]; ok {
			continue
		}
		seen[a.CompanyID] = struct{}{}
		out = append(out, a.CompanyID)
	}
	sort.Strings(out)
	return out
}
