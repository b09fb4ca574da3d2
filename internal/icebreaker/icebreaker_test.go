package icebreaker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgen/internal/common/config"
	commonhttp "leadgen/internal/common/http"
	"leadgen/internal/common/logger"
	"leadgen/internal/common/retry"
	"leadgen/internal/models"
	"leadgen/internal/rules"
)

func testAssignment() models.Assignment {
	return models.Assignment{
		Lead: models.Lead{
			FirstName:   "Max",
			LastName:    "Muster",
			Email:       "max@acme.de",
			Title:       "Geschäftsführer",
			CompanyName: "Acme Hausverwaltung",
			Industry:    "Hausverwaltung",
			City:        "Hamburg",
		},
		CompanyID:  "seehafer_elemente",
		SegmentID:  "hausverwaltung",
		MatchScore: 0.8,
	}
}

// newTestAnthropic builds a provider pointed at a test server, with an
// immediate retry schedule so tests stay fast.
func newTestAnthropic(t *testing.T, endpoint string) *Anthropic {
	return &Anthropic{
		registry: rules.Default(),
		apiKey:   "test-key",
		model:    "claude-sonnet-4-5-20250929",
		maxToken: 200,
		endpoint: endpoint,
		client:   commonhttp.NewClient(2 * time.Second),
		policy: retry.Policy{
			MaxAttempts: 3,
			Delays:      []time.Duration{time.Millisecond, time.Millisecond},
		},
		fallback: NewFallback(),
		logger:   logger.NewTestLogger(t),
	}
}

func TestFallbackSentence(t *testing.T) {
	tests := []struct {
		name     string
		lead     models.Lead
		expected string
	}{
		{
			name: "industry and city",
			lead: models.Lead{Industry: "Hausverwaltung", City: "Hamburg"},
			expected: "Unternehmen in Hamburg im Bereich Hausverwaltung stehen vor der Herausforderung, " +
				"zuverlässige Handwerkspartner zu finden — besonders wenn Qualität und Termintreue entscheidend sind.",
		},
		{
			name: "missing city omits the clause",
			lead: models.Lead{Industry: "Hausverwaltung"},
			expected: "Unternehmen im Bereich Hausverwaltung stehen vor der Herausforderung, " +
				"zuverlässige Handwerkspartner zu finden — besonders wenn Qualität und Termintreue entscheidend sind.",
		},
		{
			name: "missing industry gets the default phrase",
			lead: models.Lead{City: "Hamburg"},
			expected: "Unternehmen in Hamburg im Bereich Ihrer Branche stehen vor der Herausforderung, " +
				"zuverlässige Handwerkspartner zu finden — besonders wenn Qualität und Termintreue entscheidend sind.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FallbackSentence(tt.lead))
		})
	}
}

func TestFallback_IsDeterministic(t *testing.T) {
	fallback := NewFallback()
	assignment := testAssignment()

	first := fallback.Generate(context.Background(), assignment)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, fallback.Generate(context.Background(), assignment))
	}
}

// Without an API key (or with AI disabled) the deterministic strategy is
// selected unconditionally.
func TestNew_SelectsFallbackWithoutCredentials(t *testing.T) {
	log := logger.NewNoOpLogger()
	registry := rules.Default()

	provider := New(config.AIConfig{Enabled: false, APIKey: "k"}, registry, log)
	_, ok := provider.(*Fallback)
	assert.True(t, ok)

	provider = New(config.AIConfig{Enabled: true, APIKey: ""}, registry, log)
	_, ok = provider.(*Fallback)
	assert.True(t, ok)

	provider = New(config.AIConfig{Enabled: true, APIKey: "k"}, registry, log)
	_, ok = provider.(*Anthropic)
	assert.True(t, ok)
}

func TestGenerate_Success(t *testing.T) {
	var gotVersion, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"  Moin aus Hamburg!  "}]}`))
	}))
	defer server.Close()

	provider := newTestAnthropic(t, server.URL)
	text := provider.Generate(context.Background(), testAssignment())

	assert.Equal(t, "Moin aus Hamburg!", text)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "test-key", gotKey)
}

// All attempts failing degrades to the deterministic fallback; the
// result is byte-identical to FallbackSentence for the lead.
func TestGenerate_ExhaustedRetriesFallsBack(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		http.Error(w, `{"error":"overloaded"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := newTestAnthropic(t, server.URL)
	assignment := testAssignment()

	text := provider.Generate(context.Background(), assignment)
	assert.Equal(t, FallbackSentence(assignment.Lead), text)
	assert.EqualValues(t, 3, atomic.LoadInt64(&calls))
}

// A well-formed response without a text block falls back immediately,
// without burning the retry budget.
func TestGenerate_NonTextResponseFallsBackWithoutRetry(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	provider := newTestAnthropic(t, server.URL)
	assignment := testAssignment()

	text := provider.Generate(context.Background(), assignment)
	assert.Equal(t, FallbackSentence(assignment.Lead), text)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestGenerate_UnknownCompanyFallsBack(t *testing.T) {
	provider := newTestAnthropic(t, "http://127.0.0.1:1") // must never be dialed
	assignment := testAssignment()
	assignment.CompanyID = "fantasie_gmbh"

	text := provider.Generate(context.Background(), assignment)
	assert.Equal(t, FallbackSentence(assignment.Lead), text)
}

func TestBuildPrompt_SubstitutesLeadData(t *testing.T) {
	provider := newTestAnthropic(t, "http://127.0.0.1:1")
	company, ok := rules.Default().Company("seehafer_elemente")
	require.True(t, ok)

	prompt := provider.buildPrompt(testAssignment().Lead, company)

	assert.Contains(t, prompt, "Max Muster")
	assert.Contains(t, prompt, "Acme Hausverwaltung")
	assert.Contains(t, prompt, "Seehafer Elemente")
	assert.Contains(t, prompt, company.Kernleistung)
	assert.NotContains(t, prompt, "{{vorname}}")
	assert.NotContains(t, prompt, "{{kernleistung}}")
}
