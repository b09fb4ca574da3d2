// Package ingest parses delimited Apollo exports into canonical lead
// records and rejects invalid rows with a human-readable reason.
package ingest

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"leadgen/internal/common/errors"
	"leadgen/internal/common/logger"
	"leadgen/internal/common/metrics"
	"leadgen/internal/models"
)

// emailPattern is intentionally loose: one "@", a dot in the domain, no
// whitespace. Deliverability checks are not this layer's job.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Parser struct {
	logger logger.Logger
}

func NewParser(log logger.Logger) *Parser {
	return &Parser{
		logger: log.WithFields(map[string]interface{}{"stage": "ingest"}),
	}
}

// Parse reads raw CSV text and returns the valid leads plus one skip
// reason per rejected row, both order-preserved. Parsing the same text
// twice yields identical results.
func (p *Parser) Parse(rawText string) ([]models.Lead, []string, error) {
	reader := csv.NewReader(strings.NewReader(rawText))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.NewLeadValidationFailedError(fmt.Sprintf("CSV nicht lesbar: %v", err))
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var leads []models.Lead
	var skipped []string

	for _, record := range records[1:] {
		lead := mapRowToLead(headers, record)

		if lead.Email == "" || !emailPattern.MatchString(lead.Email) {
			value := lead.Email
			if value == "" {
				value = "(leer)"
			}
			skipped = append(skipped, fmt.Sprintf(
				"Zeile übersprungen: %s %s — ungültige E-Mail '%s'",
				lead.FirstName, lead.LastName, value))
			continue
		}

		if lead.FirstName == "" && lead.LastName == "" {
			skipped = append(skipped, fmt.Sprintf(
				"Zeile übersprungen: %s — kein Name vorhanden", lead.Email))
			continue
		}

		leads = append(leads, lead)
	}

	metrics.LeadsIngested.Add(float64(len(leads)))
	metrics.LeadsSkipped.Add(float64(len(skipped)))

	p.logger.Info("CSV eingelesen", map[string]interface{}{
		"valid":   len(leads),
		"skipped": len(skipped),
	})
	for _, reason := range skipped {
		p.logger.Warn(reason, nil)
	}

	return leads, skipped, nil
}

// mapRowToLead applies the column mapping onto the empty-string skeleton.
// Unmapped columns are ignored; blank values never override the skeleton.
func mapRowToLead(headers []string, record []string) models.Lead {
	var lead models.Lead

	for i, header := range headers {
		if i >= len(record) {
			break
		}
		field, ok := apolloFieldMap[header]
		if !ok {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}
		setField(&lead, field, value)
	}

	return lead
}

func setField(lead *models.Lead, field, value string) {
	switch field {
	case FieldFirstName:
		lead.FirstName = value
	case FieldLastName:
		lead.LastName = value
	case FieldEmail:
		lead.Email = value
	case FieldTitle:
		lead.Title = value
	case FieldCompanyName:
		lead.CompanyName = value
	case FieldIndustry:
		lead.Industry = value
	case FieldCompanySize:
		lead.CompanySize = value
	case FieldCity:
		lead.City = value
	case FieldState:
		lead.State = value
	case FieldCountry:
		lead.Country = value
	case FieldCompanyWebsite:
		lead.CompanyWebsite = value
	case FieldKeywords:
		lead.Keywords = value
	case FieldSeniority:
		lead.Seniority = value
	case FieldDepartments:
		lead.Departments = value
	}
}

// Deduplicate removes leads sharing an email address, keeping the first
// occurrence.
func (p *Parser) Deduplicate(leads []models.Lead) []models.Lead {
	seen := make(map[string]bool, len(leads))
	out := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if seen[lead.Email] {
			continue
		}
		seen[lead.Email] = true
		out = append(out, lead)
	}

	if removed := len(leads) - len(out); removed > 0 {
		p.logger.Info("Duplikate entfernt", map[string]interface{}{"count": removed})
	}
	return out
}
