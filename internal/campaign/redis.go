package campaign

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/redis/go-redis/v9"

	"leadgen/internal/common/errors"
	"leadgen/internal/models"
)

const (
	campaignsKey    = "leadgen:campaigns"
	leadsKeyPrefix  = "leadgen:leads:"
	emailsKeyPrefix = "leadgen:emails:"
)

// RedisStore persists campaigns as JSON values in a Redis hash plus one
// list per campaign for leads and emails.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	values, err := s.client.HVals(ctx, campaignsKey).Result()
	if err != nil {
		return nil, errors.NewStorageFailedError("list campaigns", err)
	}

	out := make([]models.Campaign, 0, len(values))
	for _, raw := range values {
		var c models.Campaign
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, errors.NewStorageFailedError("decode campaign", err)
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *RedisStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	raw, err := s.client.HGet(ctx, campaignsKey, id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.NewStorageFailedError("get campaign", err)
	}

	var c models.Campaign
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, errors.NewStorageFailedError("decode campaign", err)
	}
	return &c, nil
}

func (s *RedisStore) PutCampaign(ctx context.Context, c models.Campaign) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return errors.NewStorageFailedError("encode campaign", err)
	}
	if err := s.client.HSet(ctx, campaignsKey, c.ID, raw).Err(); err != nil {
		return errors.NewStorageFailedError("put campaign", err)
	}
	return nil
}

func (s *RedisStore) DeleteCampaign(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, campaignsKey, id).Result()
	if err != nil {
		return errors.NewStorageFailedError("delete campaign", err)
	}
	if removed == 0 {
		return ErrNotFound
	}

	if err := s.client.Del(ctx, leadsKeyPrefix+id, emailsKeyPrefix+id).Err(); err != nil {
		return errors.NewStorageFailedError("delete campaign data", err)
	}
	return nil
}

func (s *RedisStore) AppendLeads(ctx context.Context, campaignID string, leads []models.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(leads))
	for _, lead := range leads {
		raw, err := json.Marshal(lead)
		if err != nil {
			return errors.NewStorageFailedError("encode lead", err)
		}
		values = append(values, raw)
	}

	if err := s.client.RPush(ctx, leadsKeyPrefix+campaignID, values...).Err(); err != nil {
		return errors.NewStorageFailedError("append leads", err)
	}
	return nil
}

func (s *RedisStore) LeadsByCampaign(ctx context.Context, campaignID string) ([]models.Lead, error) {
	values, err := s.client.LRange(ctx, leadsKeyPrefix+campaignID, 0, -1).Result()
	if err != nil {
		return nil, errors.NewStorageFailedError("list leads", err)
	}

	out := make([]models.Lead, 0, len(values))
	for _, raw := range values {
		var lead models.Lead
		if err := json.Unmarshal([]byte(raw), &lead); err != nil {
			return nil, errors.NewStorageFailedError("decode lead", err)
		}
		out = append(out, lead)
	}
	return out, nil
}

func (s *RedisStore) AppendEmails(ctx context.Context, campaignID string, emails []models.GeneratedEmail) error {
	if len(emails) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(emails))
	for _, email := range emails {
		raw, err := json.Marshal(email)
		if err != nil {
			return errors.NewStorageFailedError("encode email", err)
		}
		values = append(values, raw)
	}

	if err := s.client.RPush(ctx, emailsKeyPrefix+campaignID, values...).Err(); err != nil {
		return errors.NewStorageFailedError("append emails", err)
	}
	return nil
}

func (s *RedisStore) EmailsByCampaign(ctx context.Context, campaignID string) ([]models.GeneratedEmail, error) {
	values, err := s.client.LRange(ctx, emailsKeyPrefix+campaignID, 0, -1).Result()
	if err != nil {
		return nil, errors.NewStorageFailedError("list emails", err)
	}

	out := make([]models.GeneratedEmail, 0, len(values))
	for _, raw := range values {
		var email models.GeneratedEmail
		if err := json.Unmarshal([]byte(raw), &email); err != nil {
			return nil, errors.NewStorageFailedError("decode email", err)
		}
		out = append(out, email)
	}
	return out, nil
}
