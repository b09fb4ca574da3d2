package campaign

import (
	"context"
	"sort"
	"sync"

	"leadgen/internal/models"
)

// MemoryStore keeps campaigns in process memory. Used as the default
// driver and as the reference implementation in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[string]models.Campaign
	leads     map[string][]models.Lead
	emails    map[string][]models.GeneratedEmail
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		campaigns: make(map[string]models.Campaign),
		leads:     make(map[string][]models.Lead),
		emails:    make(map[string][]models.GeneratedEmail),
	}
}

func (s *MemoryStore) ListCampaigns(_ context.Context) ([]models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetCampaign(_ context.Context, id string) (*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) PutCampaign(_ context.Context, c models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns[c.ID] = c
	return nil
}

func (s *MemoryStore) DeleteCampaign(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[id]; !ok {
		return ErrNotFound
	}
	delete(s.campaigns, id)
	delete(s.leads, id)
	delete(s.emails, id)
	return nil
}

func (s *MemoryStore) AppendLeads(_ context.Context, campaignID string, leads []models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads[campaignID] = append(s.leads[campaignID], leads...)
	return nil
}

func (s *MemoryStore) LeadsByCampaign(_ context.Context, campaignID string) ([]models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Lead(nil), s.leads[campaignID]...), nil
}

func (s *MemoryStore) AppendEmails(_ context.Context, campaignID string, emails []models.GeneratedEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.emails[campaignID] = append(s.emails[campaignID], emails...)
	return nil
}

func (s *MemoryStore) EmailsByCampaign(_ context.Context, campaignID string) ([]models.GeneratedEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.GeneratedEmail(nil), s.emails[campaignID]...), nil
}
