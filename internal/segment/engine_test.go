package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgen/internal/common/errors"
	"leadgen/internal/common/logger"
	"leadgen/internal/models"
	"leadgen/internal/rules"
)

func intPtr(n int) *int { return &n }

func testRegistry() *rules.Registry {
	return &rules.Registry{
		Segmentierung: map[string]rules.CompanyRule{
			"seehafer_elemente": {
				DisplayName:            "Seehafer Elemente",
				Branchen:               []string{"hausverwaltung", "immobilien", "real estate"},
				JobtitelKeywords:       []string{"geschäftsführer", "hausverwalter", "inhaber"},
				UnternehmensgroesseMin: 5,
				Kernleistung:           "Wartung von Fenstern und Bauelementen",
				Templates:              []string{"hausverwaltung", "gewerbe", "oeffentlich", "privat"},
				DefaultTemplate:        "hausverwaltung",
			},
			"werner_geruestbau": {
				DisplayName:            "J. Werner Gerüstbau",
				Branchen:               []string{"bau", "construction"},
				JobtitelKeywords:       []string{"bauleiter", "projektleiter"},
				UnternehmensgroesseMin: 10,
				Kernleistung:           "Gerüstbau",
				Templates:              []string{"bauunternehmen", "hausverwaltung"},
				DefaultTemplate:        "bauunternehmen",
			},
		},
		TemplateAuswahl: []rules.TemplateRule{
			{
				ID: "denkmalschutz",
				Bedingungen: rules.Conditions{
					KeywordsEnthalten: []string{"denkmalschutz", "restaurierung"},
				},
			},
			{
				ID: "bauunternehmen",
				Bedingungen: rules.Conditions{
					BranchenEnthalten: []string{"bau", "construction"},
					TitelEnthalten:    []string{"geschäftsführer", "bauleiter"},
				},
			},
			{
				ID: "hausverwaltung",
				Bedingungen: rules.Conditions{
					BranchenEnthalten: []string{"hausverwaltung", "immobilien", "real estate"},
				},
			},
			{
				ID: "oeffentlich",
				Bedingungen: rules.Conditions{
					BranchenEnthalten: []string{"öffentliche verwaltung", "government"},
				},
			},
			{
				ID: "gewerbe",
				Bedingungen: rules.Conditions{
					UnternehmensgroesseMin: intPtr(50),
				},
			},
			{
				ID: "privat",
				Bedingungen: rules.Conditions{
					KeinFirmenname: true,
				},
			},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	return NewEngine(testRegistry(), logger.NewTestLogger(t))
}

func TestMatchCompany_ScoreDecomposition(t *testing.T) {
	company := rules.CompanyRule{
		Branchen:               []string{"hausverwaltung"},
		JobtitelKeywords:       []string{"geschäftsführer"},
		UnternehmensgroesseMin: 10,
	}

	tests := []struct {
		name          string
		lead          models.Lead
		expectedScore float64
		expectMatched bool
	}{
		{
			name:          "no signal",
			lead:          models.Lead{Industry: "Gastronomie", Title: "Koch", CompanySize: "2"},
			expectedScore: 0.0,
			expectMatched: false,
		},
		{
			name:          "size only",
			lead:          models.Lead{Industry: "Gastronomie", Title: "Koch", CompanySize: "50"},
			expectedScore: 0.2,
			expectMatched: false,
		},
		{
			name:          "title only",
			lead:          models.Lead{Industry: "Gastronomie", Title: "Geschäftsführer", CompanySize: "2"},
			expectedScore: 0.3,
			expectMatched: false,
		},
		{
			name:          "industry only",
			lead:          models.Lead{Industry: "Hausverwaltung", Title: "Koch", CompanySize: "2"},
			expectedScore: 0.5,
			expectMatched: true,
		},
		{
			name:          "title plus size",
			lead:          models.Lead{Industry: "Gastronomie", Title: "Geschäftsführer", CompanySize: "50"},
			expectedScore: 0.5,
			expectMatched: true,
		},
		{
			name:          "industry plus size",
			lead:          models.Lead{Industry: "Hausverwaltung", Title: "Koch", CompanySize: "50"},
			expectedScore: 0.7,
			expectMatched: true,
		},
		{
			name:          "industry plus title",
			lead:          models.Lead{Industry: "Hausverwaltung", Title: "Geschäftsführer", CompanySize: "2"},
			expectedScore: 0.8,
			expectMatched: true,
		},
		{
			name:          "all signals",
			lead:          models.Lead{Industry: "Hausverwaltung", Title: "Geschäftsführer", CompanySize: "50"},
			expectedScore: 1.0,
			expectMatched: true,
		},
	}

	engine := newTestEngine(t)
	valid := map[float64]bool{0: true, 0.2: true, 0.3: true, 0.5: true, 0.7: true, 0.8: true, 1.0: true}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, score := engine.MatchCompany(tt.lead, company)
			assert.InDelta(t, tt.expectedScore, score, 1e-9)
			assert.Equal(t, tt.expectMatched, matched)
			assert.True(t, valid[tt.expectedScore], "score outside the signal powerset")
		})
	}
}

// An industry keyword matching exactly, with no title and no size, must
// clear the threshold on its own.
func TestMatchCompany_IndustryAloneQualifies(t *testing.T) {
	engine := newTestEngine(t)
	company, _ := testRegistry().Company("seehafer_elemente")

	lead := models.Lead{Industry: "Hausverwaltung"}
	matched, score := engine.MatchCompany(lead, company)

	assert.True(t, matched)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestMatchCompany_SubstringBothDirections(t *testing.T) {
	engine := newTestEngine(t)
	company := rules.CompanyRule{Branchen: []string{"immobilien"}, UnternehmensgroesseMin: 100}

	// Lead industry contains the keyword.
	matched, _ := engine.MatchCompany(models.Lead{Industry: "Immobilienverwaltung"}, company)
	assert.True(t, matched)

	// Keyword contains the lead industry.
	matched, _ = engine.MatchCompany(models.Lead{Industry: "mobil"}, company)
	assert.True(t, matched)

	// Empty industry never matches, even though every keyword contains "".
	matched, score := engine.MatchCompany(models.Lead{Industry: ""}, company)
	assert.False(t, matched)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestDetermineSegment_FirstMatchWins(t *testing.T) {
	engine := newTestEngine(t)
	company, _ := testRegistry().Company("seehafer_elemente")

	// Keyword rule fires before the industry rule would.
	lead := models.Lead{
		Industry: "Hausverwaltung",
		Keywords: "Denkmalschutz, Sanierung",
	}
	// denkmalschutz is not in seehafer's supported set, so the next
	// matching rule in declared order wins.
	assert.Equal(t, "hausverwaltung", engine.DetermineSegment(lead, "seehafer_elemente", company))

	withDenkmalschutz := company
	withDenkmalschutz.Templates = append([]string{"denkmalschutz"}, company.Templates...)
	assert.Equal(t, "denkmalschutz", engine.DetermineSegment(lead, "seehafer_elemente", withDenkmalschutz))
}

func TestDetermineSegment_TitleSubConditionSkipsRule(t *testing.T) {
	engine := newTestEngine(t)
	company, _ := testRegistry().Company("werner_geruestbau")

	// Industry matches "bau" but the title fails the sub-condition. The
	// rule is skipped entirely; evaluation continues to later rules, and
	// with none matching the company default applies.
	lead := models.Lead{Industry: "Bau", Title: "Sachbearbeiter"}
	assert.Equal(t, "bauunternehmen", engine.DetermineSegment(lead, "werner_geruestbau", company))

	// Same lead with a qualifying title takes the rule directly.
	lead.Title = "Bauleiter"
	assert.Equal(t, "bauunternehmen", engine.DetermineSegment(lead, "werner_geruestbau", company))

	// With hausverwaltung also matching, the skipped bau rule must not
	// block the later industry rule.
	lead = models.Lead{Industry: "Bau und Hausverwaltung", Title: "Sachbearbeiter"}
	assert.Equal(t, "hausverwaltung", engine.DetermineSegment(lead, "werner_geruestbau", company))
}

func TestDetermineSegment_SizeBounds(t *testing.T) {
	engine := newTestEngine(t)
	company, _ := testRegistry().Company("seehafer_elemente")

	// Size >= 50 takes the gewerbe rule.
	lead := models.Lead{CompanyName: "Acme", CompanySize: "120"}
	assert.Equal(t, "gewerbe", engine.DetermineSegment(lead, "seehafer_elemente", company))

	// Unknown size falls through to the default.
	lead = models.Lead{CompanyName: "Acme"}
	assert.Equal(t, "hausverwaltung", engine.DetermineSegment(lead, "seehafer_elemente", company))
}

func TestDetermineSegment_MaxBoundIgnoresUnknownSize(t *testing.T) {
	registry := testRegistry()
	registry.TemplateAuswahl = []rules.TemplateRule{
		{
			ID: "privat",
			Bedingungen: rules.Conditions{
				UnternehmensgroesseMax: intPtr(5),
			},
		},
	}
	engine := NewEngine(registry, logger.NewNoOpLogger())
	company, _ := registry.Company("seehafer_elemente")

	// Size 0 never satisfies a max bound.
	assert.Equal(t, "hausverwaltung", engine.DetermineSegment(models.Lead{CompanyName: "Acme"}, "seehafer_elemente", company))
	assert.Equal(t, "privat", engine.DetermineSegment(models.Lead{CompanyName: "Acme", CompanySize: "3"}, "seehafer_elemente", company))
}

func TestDetermineSegment_NoCompanyName(t *testing.T) {
	engine := newTestEngine(t)
	company, _ := testRegistry().Company("seehafer_elemente")

	lead := models.Lead{FirstName: "Max", LastName: "Muster"}
	assert.Equal(t, "privat", engine.DetermineSegment(lead, "seehafer_elemente", company))
}

// Reordering two rules that would both match changes the outcome to
// whichever is declared first; identical input always yields the same
// segment.
func TestDetermineSegment_OrderDependence(t *testing.T) {
	registry := testRegistry()
	company, _ := registry.Company("seehafer_elemente")
	lead := models.Lead{Industry: "Hausverwaltung", CompanySize: "200", CompanyName: "Acme"}

	engine := NewEngine(registry, logger.NewNoOpLogger())
	first := engine.DetermineSegment(lead, "seehafer_elemente", company)
	assert.Equal(t, "hausverwaltung", first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.DetermineSegment(lead, "seehafer_elemente", company))
	}

	// Move gewerbe ahead of hausverwaltung.
	reordered := testRegistry()
	rulesList := reordered.TemplateAuswahl
	rulesList[2], rulesList[4] = rulesList[4], rulesList[2]
	engine = NewEngine(reordered, logger.NewNoOpLogger())
	assert.Equal(t, "gewerbe", engine.DetermineSegment(lead, "seehafer_elemente", company))
}

func TestAssignAll_UnknownCompanyFilter(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.AssignAll([]models.Lead{{Email: "a@b.de", FirstName: "A"}}, "unknown_org")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownCompany, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "seehafer_elemente")
	assert.Contains(t, err.Error(), "werner_geruestbau")
}

func TestAssignAll_MultiCompanyLeadNotDeduplicated(t *testing.T) {
	engine := newTestEngine(t)

	// Industry matches both companies' keyword sets.
	lead := models.Lead{
		Email:       "gf@acme.de",
		FirstName:   "Eva",
		Title:       "Geschäftsführer",
		Industry:    "Bau und Hausverwaltung",
		CompanySize: "25",
		CompanyName: "Acme",
	}

	assignments, err := engine.AssignAll([]models.Lead{lead}, "")
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	companies := []string{assignments[0].CompanyID, assignments[1].CompanyID}
	assert.ElementsMatch(t, []string{"seehafer_elemente", "werner_geruestbau"}, companies)
	for _, a := range assignments {
		assert.GreaterOrEqual(t, a.MatchScore, 0.5)
	}
}

func TestAssignAll_BelowThresholdYieldsNothing(t *testing.T) {
	engine := newTestEngine(t)

	lead := models.Lead{
		Email:     "koch@gastro.de",
		FirstName: "Tom",
		Industry:  "Gastronomie",
		Title:     "Koch",
	}

	assignments, err := engine.AssignAll([]models.Lead{lead}, "")
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestAssignAll_FilterRestrictsCandidates(t *testing.T) {
	engine := newTestEngine(t)

	lead := models.Lead{
		Email:       "gf@acme.de",
		FirstName:   "Eva",
		Title:       "Bauleiter",
		Industry:    "Bau und Hausverwaltung",
		CompanySize: "25",
		CompanyName: "Acme",
	}

	assignments, err := engine.AssignAll([]models.Lead{lead}, "werner_geruestbau")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "werner_geruestbau", assignments[0].CompanyID)
}

func TestParseCompanySize(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 0},
		{"unbekannt", 0},
		{"200", 200},
		{"51-200", 51},
		{"1.000+", 1000},
		{"1,000-5,000", 1000},
		{"ca. 80 Mitarbeiter", 80},
		{"10+", 10},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCompanySize(tt.raw))
		})
	}
}
