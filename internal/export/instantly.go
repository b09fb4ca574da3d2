// Package export serializes generated emails into the Instantly.ai
// campaign CSV schema.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"leadgen/internal/common/errors"
	"leadgen/internal/models"
)

// Row is one line of the delivery CSV. Field order is fixed by the
// external schema; campaign_id deliberately carries the company id.
type Row struct {
	Email           string
	FirstName       string
	LastName        string
	CompanyName     string
	Personalization string
	Icebreaker      string
	SubjectLine     string
	PDFLink         string
	CampaignID      string
	Segment         string
	CustomVariable1 string
	CustomVariable2 string
}

var header = []string{
	"email",
	"first_name",
	"last_name",
	"company_name",
	"personalization",
	"icebreaker",
	"subject_line",
	"pdf_link",
	"campaign_id",
	"segment",
	"custom_variable_1",
	"custom_variable_2",
}

// ToRows maps each generated email to its delivery row, in order.
func ToRows(emails []models.GeneratedEmail) []Row {
	rows := make([]Row, 0, len(emails))
	for _, email := range emails {
		rows = append(rows, Row{
			Email:           email.Lead.Email,
			FirstName:       email.Lead.FirstName,
			LastName:        email.Lead.LastName,
			CompanyName:     email.Lead.CompanyName,
			Personalization: email.Body,
			Icebreaker:      email.Icebreaker,
			SubjectLine:     email.SubjectLine,
			PDFLink:         email.PDFLink,
			CampaignID:      email.CompanyID,
			Segment:         email.SegmentID,
			CustomVariable1: email.Lead.Title,
			CustomVariable2: email.Lead.Industry,
		})
	}
	return rows
}

// GroupByCompany partitions emails by company id, preserving each
// email's original relative order within its group.
func GroupByCompany(emails []models.GeneratedEmail) map[string][]Row {
	grouped := make(map[string][]models.GeneratedEmail)
	for _, email := range emails {
		grouped[email.CompanyID] = append(grouped[email.CompanyID], email)
	}

	result := make(map[string][]Row, len(grouped))
	for companyID, companyEmails := range grouped {
		result[companyID] = ToRows(companyEmails)
	}
	return result
}

// WriteCSV writes the header plus one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Email,
			row.FirstName,
			row.LastName,
			row.CompanyName,
			row.Personalization,
			row.Icebreaker,
			row.SubjectLine,
			row.PDFLink,
			row.CampaignID,
			row.Segment,
			row.CustomVariable1,
			row.CustomVariable2,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportByCompany writes one CSV file per company into dir and returns
// the written paths in deterministic (sorted) order.
func ExportByCompany(dir, prefix string, emails []models.GeneratedEmail) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewExportFailedError(err)
	}

	grouped := GroupByCompany(emails)

	companyIDs := make([]string, 0, len(grouped))
	for companyID := range grouped {
		companyIDs = append(companyIDs, companyID)
	}
	sort.Strings(companyIDs)

	var written []string
	for _, companyID := range companyIDs {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, companyID))

		f, err := os.Create(path)
		if err != nil {
			return written, errors.NewExportFailedError(err)
		}

		if err := WriteCSV(f, grouped[companyID]); err != nil {
			f.Close()
			return written, errors.NewExportFailedError(err)
		}
		if err := f.Close(); err != nil {
			return written, errors.NewExportFailedError(err)
		}

		written = append(written, path)
	}

	return written, nil
}
