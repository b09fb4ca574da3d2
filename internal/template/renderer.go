package template

import (
	"strings"

	"leadgen/internal/common/errors"
	"leadgen/internal/common/logger"
	"leadgen/internal/common/metrics"
	"leadgen/internal/models"
	"leadgen/internal/rules"
)

type Renderer struct {
	registry *rules.Registry
	logger   logger.Logger
}

func NewRenderer(registry *rules.Registry, log logger.Logger) *Renderer {
	return &Renderer{
		registry: registry,
		logger:   log.WithFields(map[string]interface{}{"stage": "render"}),
	}
}

// Render resolves the template for an assignment and substitutes the
// placeholder set. Missing templates are configuration errors and abort
// the batch; a missing PDF link only logs a warning.
func (r *Renderer) Render(assignment models.Assignment, icebreaker string) (models.RenderedEmail, error) {
	if !HasCompany(assignment.CompanyID) {
		return models.RenderedEmail{}, errors.NewCompanyTemplatesMissingError(assignment.CompanyID)
	}

	tpl, ok := Lookup(assignment.CompanyID, assignment.SegmentID)
	if !ok {
		return models.RenderedEmail{}, errors.NewSegmentTemplateMissingError(assignment.CompanyID, assignment.SegmentID)
	}

	pdfLink := r.ResolvePDFLink(assignment.CompanyID, assignment.SegmentID)

	kernleistung := ""
	if company, ok := r.registry.Company(assignment.CompanyID); ok {
		kernleistung = company.Kernleistung
	}

	// One literal pass per token; replacement values are never re-scanned
	// for placeholders they happen to contain.
	replacer := strings.NewReplacer(
		"{{vorname}}", assignment.Lead.FirstName,
		"{{nachname}}", assignment.Lead.LastName,
		"{{firma}}", assignment.Lead.CompanyName,
		"{{position}}", assignment.Lead.Title,
		"{{kernleistung}}", kernleistung,
		"{{icebreaker}}", icebreaker,
		"{{pdf_link}}", pdfLink,
	)

	metrics.EmailsRendered.WithLabelValues(assignment.CompanyID).Inc()

	return models.RenderedEmail{
		SubjectLine: replacer.Replace(tpl.Subject),
		Body:        replacer.Replace(tpl.Body),
		Icebreaker:  icebreaker,
		PDFLink:     pdfLink,
	}, nil
}

// ResolvePDFLink looks up the brochure URL for a (company, segment)
// pair. Missing entries resolve to "" with a warning.
func (r *Renderer) ResolvePDFLink(companyID, segmentID string) string {
	companyLinks, ok := pdfLinks[companyID]
	if !ok {
		r.logger.Warn("Keine PDF-Links für Firma konfiguriert", map[string]interface{}{
			"company": companyID,
		})
		return ""
	}

	link, ok := companyLinks[segmentID]
	if !ok {
		r.logger.Warn("Kein PDF-Link für Segment konfiguriert", map[string]interface{}{
			"company": companyID,
			"segment": segmentID,
		})
		return ""
	}

	return link
}

// CheckCoverage verifies the rendering round-trip invariant: every
// (company, segment) pair the registry can return has a template.
func CheckCoverage(registry *rules.Registry) error {
	for _, companyID := range registry.CompanyIDs() {
		company, _ := registry.Company(companyID)

		if !HasCompany(companyID) {
			return errors.NewCompanyTemplatesMissingError(companyID)
		}

		for _, segmentID := range company.Templates {
			if _, ok := Lookup(companyID, segmentID); !ok {
				return errors.NewSegmentTemplateMissingError(companyID, segmentID)
			}
		}
	}
	return nil
}
