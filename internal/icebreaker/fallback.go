package icebreaker

import (
	"context"
	"fmt"

	"leadgen/internal/common/metrics"
	"leadgen/internal/models"
)

// Fallback is the deterministic strategy: a pure function of the lead's
// industry and city with no failure mode.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Generate(_ context.Context, assignment models.Assignment) string {
	metrics.IcebreakersGenerated.WithLabelValues("fallback").Inc()
	return FallbackSentence(assignment.Lead)
}

// FallbackSentence builds the fixed-shape sentence. The industry gets a
// default phrase when absent; the city clause is omitted when absent.
func FallbackSentence(lead models.Lead) string {
	industry := lead.Industry
	if industry == "" {
		industry = "Ihrer Branche"
	}

	city := ""
	if lead.City != "" {
		city = fmt.Sprintf(" in %s", lead.City)
	}

	return fmt.Sprintf(
		"Unternehmen%s im Bereich %s stehen vor der Herausforderung, zuverlässige Handwerkspartner zu finden — besonders wenn Qualität und Termintreue entscheidend sind.",
		city, industry)
}
