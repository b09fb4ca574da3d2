package campaign

import (
	"context"
	"database/sql"
	"encoding/json"

	"leadgen/internal/common/errors"
	"leadgen/internal/models"
)

// PostgresStore persists campaigns relationally, with JSON payload
// columns for lead and email bodies. Schema:
//
//	campaigns       (id text primary key, payload jsonb, created_at timestamptz)
//	campaign_leads  (id serial, campaign_id text, payload jsonb)
//	campaign_emails (id serial, campaign_id text, payload jsonb)
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM campaigns ORDER BY created_at`)
	if err != nil {
		return nil, errors.NewStorageFailedError("list campaigns", err)
	}
	defer rows.Close()

	var out []models.Campaign
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.NewStorageFailedError("scan campaign", err)
		}
		var c models.Campaign
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.NewStorageFailedError("decode campaign", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageFailedError("list campaigns", err)
	}
	return out, nil
}

func (s *PostgresStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM campaigns WHERE id = $1`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.NewStorageFailedError("get campaign", err)
	}

	var c models.Campaign
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, errors.NewStorageFailedError("decode campaign", err)
	}
	return &c, nil
}

func (s *PostgresStore) PutCampaign(ctx context.Context, c models.Campaign) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return errors.NewStorageFailedError("encode campaign", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, payload, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`,
		c.ID, raw, c.CreatedAt)
	if err != nil {
		return errors.NewStorageFailedError("put campaign", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCampaign(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return errors.NewStorageFailedError("delete campaign", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageFailedError("delete campaign", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM campaign_leads WHERE campaign_id = $1`, id); err != nil {
		return errors.NewStorageFailedError("delete campaign leads", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM campaign_emails WHERE campaign_id = $1`, id); err != nil {
		return errors.NewStorageFailedError("delete campaign emails", err)
	}
	return nil
}

func (s *PostgresStore) AppendLeads(ctx context.Context, campaignID string, leads []models.Lead) error {
	for _, lead := range leads {
		raw, err := json.Marshal(lead)
		if err != nil {
			return errors.NewStorageFailedError("encode lead", err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO campaign_leads (campaign_id, payload) VALUES ($1, $2)`,
			campaignID, raw); err != nil {
			return errors.NewStorageFailedError("append lead", err)
		}
	}
	return nil
}

func (s *PostgresStore) LeadsByCampaign(ctx context.Context, campaignID string) ([]models.Lead, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM campaign_leads WHERE campaign_id = $1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, errors.NewStorageFailedError("list leads", err)
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.NewStorageFailedError("scan lead", err)
		}
		var lead models.Lead
		if err := json.Unmarshal(raw, &lead); err != nil {
			return nil, errors.NewStorageFailedError("decode lead", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageFailedError("list leads", err)
	}
	return out, nil
}

func (s *PostgresStore) AppendEmails(ctx context.Context, campaignID string, emails []models.GeneratedEmail) error {
	for _, email := range emails {
		raw, err := json.Marshal(email)
		if err != nil {
			return errors.NewStorageFailedError("encode email", err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO campaign_emails (campaign_id, payload) VALUES ($1, $2)`,
			campaignID, raw); err != nil {
			return errors.NewStorageFailedError("append email", err)
		}
	}
	return nil
}

func (s *PostgresStore) EmailsByCampaign(ctx context.Context, campaignID string) ([]models.GeneratedEmail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM campaign_emails WHERE campaign_id = $1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, errors.NewStorageFailedError("list emails", err)
	}
	defer rows.Close()

	var out []models.GeneratedEmail
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.NewStorageFailedError("scan email", err)
		}
		var email models.GeneratedEmail
		if err := json.Unmarshal(raw, &email); err != nil {
			return nil, errors.NewStorageFailedError("decode email", err)
		}
		out = append(out, email)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageFailedError("list emails", err)
	}
	return out, nil
}
