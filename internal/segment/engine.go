// Package segment implements the classification engine: scored matching
// of leads against company profiles and ordered segment selection.
package segment

import (
	"regexp"
	"strconv"
	"strings"

	"leadgen/internal/common/errors"
	"leadgen/internal/common/logger"
	"leadgen/internal/common/metrics"
	"leadgen/internal/models"
	"leadgen/internal/rules"
)

// Signal weights. Industry fit dominates: industry alone qualifies, and
// title+size together qualify, but neither title nor size alone does.
const (
	industryWeight = 0.5
	titleWeight    = 0.3
	sizeWeight     = 0.2

	matchThreshold = 0.5
)

var digitRun = regexp.MustCompile(`\d+`)

type Engine struct {
	registry *rules.Registry
	logger   logger.Logger
}

func NewEngine(registry *rules.Registry, log logger.Logger) *Engine {
	return &Engine{
		registry: registry,
		logger:   log.WithFields(map[string]interface{}{"stage": "segment"}),
	}
}

// MatchCompany scores a lead against one company profile. The score is
// additive over three independent signals, each evaluated once.
func (e *Engine) MatchCompany(lead models.Lead, company rules.CompanyRule) (bool, float64) {
	score := 0.0

	industry := strings.TrimSpace(lead.Industry)
	if matchesAny(industry, company.Branchen) {
		score += industryWeight
	}

	title := strings.TrimSpace(lead.Title)
	if titleMatchesKeywords(title, company.JobtitelKeywords) {
		score += titleWeight
	}

	if ParseCompanySize(lead.CompanySize) >= company.UnternehmensgroesseMin {
		score += sizeWeight
	}

	return score >= matchThreshold, score
}

// DetermineSegment picks the message variant for an accepted (lead,
// company) pair. Rules run in declared order; the first satisfied rule
// wins immediately, with the company default as terminal fallback.
func (e *Engine) DetermineSegment(lead models.Lead, companyID string, company rules.CompanyRule) string {
	supported := make(map[string]bool, len(company.Templates))
	for _, id := range company.Templates {
		supported[id] = true
	}

	industry := strings.TrimSpace(lead.Industry)
	title := strings.TrimSpace(lead.Title)
	keywords := strings.TrimSpace(lead.Keywords)
	companyName := strings.TrimSpace(lead.CompanyName)
	size := ParseCompanySize(lead.CompanySize)

	for _, rule := range e.registry.TemplateAuswahl {
		if !supported[rule.ID] {
			continue
		}

		cond := rule.Bedingungen

		if len(cond.KeywordsEnthalten) > 0 {
			combined := industry + " " + title + " " + keywords
			if textContainsAny(combined, cond.KeywordsEnthalten) {
				return rule.ID
			}
		}

		if len(cond.BranchenEnthalten) > 0 && matchesAny(industry, cond.BranchenEnthalten) {
			// A failing title sub-condition skips this rule entirely,
			// not just this branch.
			if len(cond.TitelEnthalten) > 0 {
				if titleMatchesKeywords(title, cond.TitelEnthalten) {
					return rule.ID
				}
				continue
			}
			return rule.ID
		}

		if cond.UnternehmensgroesseMin != nil && size >= *cond.UnternehmensgroesseMin {
			return rule.ID
		}

		// An unknown size (0) never satisfies a max-bound rule.
		if cond.UnternehmensgroesseMax != nil && size > 0 && size <= *cond.UnternehmensgroesseMax {
			return rule.ID
		}

		if cond.KeinFirmenname && companyName == "" {
			return rule.ID
		}
	}

	return company.DefaultTemplate
}

// AssignAll classifies every lead against the candidate companies. With
// a filter only that company is considered; an unknown filter fails with
// an error naming the configured ids. Multi-company leads produce one
// Assignment per matching company.
func (e *Engine) AssignAll(leads []models.Lead, companyFilter string) ([]models.Assignment, error) {
	companies := e.registry.CompanyIDs()
	if companyFilter != "" {
		if _, ok := e.registry.Company(companyFilter); !ok {
			return nil, errors.NewUnknownCompanyError(companyFilter, companies)
		}
		companies = []string{companyFilter}
	}

	var assignments []models.Assignment
	for _, lead := range leads {
		for _, companyID := range companies {
			company, _ := e.registry.Company(companyID)
			matched, score := e.MatchCompany(lead, company)
			if !matched {
				continue
			}

			segmentID := e.DetermineSegment(lead, companyID, company)
			assignments = append(assignments, models.Assignment{
				Lead:       lead,
				CompanyID:  companyID,
				SegmentID:  segmentID,
				MatchScore: score,
			})
			metrics.AssignmentsCreated.WithLabelValues(companyID, segmentID).Inc()
		}
	}

	e.logStatistics(assignments, len(leads))

	return assignments, nil
}

func (e *Engine) logStatistics(assignments []models.Assignment, totalLeads int) {
	if len(assignments) == 0 {
		e.logger.Warn("Keine Leads konnten zugeordnet werden", nil)
		return
	}

	uniqueEmails := make(map[string]bool)
	perCompany := make(map[string]int)
	for _, a := range assignments {
		uniqueEmails[a.Lead.Email] = true
		perCompany[a.CompanyID]++
	}

	e.logger.Info("Segmentierung abgeschlossen", map[string]interface{}{
		"assignments": len(assignments),
		"leads":       len(uniqueEmails),
		"unmatched":   totalLeads - len(uniqueEmails),
		"perCompany":  perCompany,
	})
}

// ParseCompanySize extracts the leading bound from free-text sizes like
// "51-200", "1.000+" or "200". Absent or non-numeric text parses to 0.
func ParseCompanySize(raw string) int {
	if raw == "" {
		return 0
	}

	cleaned := strings.NewReplacer(",", "", ".", "").Replace(raw)
	match := digitRun.FindString(cleaned)
	if match == "" {
		return 0
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

func matchesAny(value string, targets []string) bool {
	valueLower := strings.ToLower(value)
	if valueLower == "" {
		return false
	}
	for _, target := range targets {
		targetLower := strings.ToLower(target)
		if strings.Contains(valueLower, targetLower) || strings.Contains(targetLower, valueLower) {
			return true
		}
	}
	return false
}

func titleMatchesKeywords(title string, keywords []string) bool {
	titleLower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func textContainsAny(text string, keywords []string) bool {
	textLower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(textLower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
