// Package template resolves the (company, segment) email template,
// substitutes placeholders and produces subject + body.
package template

import "sort"

// Email is one subject/body pair. Placeholders: {{vorname}},
// {{nachname}}, {{firma}}, {{position}}, {{kernleistung}},
// {{icebreaker}}, {{pdf_link}}.
type Email struct {
	Subject string
	Body    string
}

// emailTemplates maps company id → segment id → template.
var emailTemplates = map[string]map[string]Email{
	"seehafer_elemente": {
		"hausverwaltung": {
			Subject: "Wartung & Reparatur für Ihre Objekte — Seehafer Elemente",
			Body: `Guten Tag {{vorname}} {{nachname}},

als {{position}} bei {{firma}} kennen Sie die Herausforderung, Gebäude langfristig instand zu halten.

{{icebreaker}}

Seehafer Elemente ist seit 1948 Spezialist für {{kernleistung}}. Wir unterstützen Hausverwaltungen wie Ihre mit zuverlässiger Wartung und schnellen Reparaturen.

Einen Überblick über unser Leistungsspektrum finden Sie hier:
{{pdf_link}}

Hätten Sie Zeit für ein kurzes Gespräch in den nächsten Tagen?

Beste Grüße
Gruppenwerk | Seehafer Elemente`,
		},
		"gewerbe": {
			Subject: "Gewerbliche Bauelemente — Seehafer Elemente",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Seehafer Elemente bietet seit über 75 Jahren {{kernleistung}} für gewerbliche Immobilien.

Mehr Informationen:
{{pdf_link}}

Ich freue mich auf Ihre Rückmeldung.

Beste Grüße
Gruppenwerk | Seehafer Elemente`,
		},
		"oeffentlich": {
			Subject: "Bauelemente für öffentliche Einrichtungen — Seehafer",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Seehafer Elemente unterstützt öffentliche Auftraggeber mit {{kernleistung}}.

Hier finden Sie unser Leistungsangebot:
{{pdf_link}}

Beste Grüße
Gruppenwerk | Seehafer Elemente`,
		},
	},
	"brink_tischlerei": {
		"hausverwaltung": {
			Subject: "Tischlerei-Lösungen für Ihre Objekte — Karl Brink",
			Body: `Guten Tag {{vorname}} {{nachname}},

als {{position}} bei {{firma}} wissen Sie, wie wichtig hochwertige Türen und Fenster sind.

{{icebreaker}}

Karl Brink Tischlereibetrieb ist Spezialist für {{kernleistung}}.

Mehr Details:
{{pdf_link}}

Beste Grüße
Gruppenwerk | Karl Brink Tischlerei`,
		},
		"bauunternehmen": {
			Subject: "Maßgefertigte Bautischlerei — Karl Brink",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Für Ihr Bauvorhaben bieten wir {{kernleistung}}.

Informationen:
{{pdf_link}}

Beste Grüße
Gruppenwerk | Karl Brink Tischlerei`,
		},
		"privat": {
			Subject: "Einbaumöbel & Maßanfertigungen — Karl Brink",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Wir fertigen individuelle Möbel- und Einbaulösungen. {{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Karl Brink Tischlerei`,
		},
	},
	"maler_hantke": {
		"hausverwaltung": {
			Subject: "Malerarbeiten für Ihre Immobilien — Hantke",
			Body: `Guten Tag {{vorname}} {{nachname}},

als {{position}} bei {{firma}} kennen Sie den Bedarf an regelmäßigen Malerarbeiten.

{{icebreaker}}

Tomas Hantke Malermeister bietet {{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Tomas Hantke Malermeister`,
		},
		"gewerbe": {
			Subject: "Malerarbeiten für Gewerbeimmobilien — Hantke",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Wir bieten {{kernleistung}} für gewerbliche Objekte.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Tomas Hantke Malermeister`,
		},
		"denkmalschutz": {
			Subject: "Denkmalgerechte Malerarbeiten — Hantke",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Seit 1990 sind wir spezialisiert auf {{kernleistung}} — insbesondere im Bereich Denkmalschutz.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Tomas Hantke Malermeister`,
		},
		"privat": {
			Subject: "Ihr Malermeister — Tomas Hantke",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

{{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Tomas Hantke Malermeister`,
		},
	},
	"werner_geruestbau": {
		"bauunternehmen": {
			Subject: "Gerüstbau für Ihr Projekt — J. Werner",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

J. Werner Gerüstbau bietet {{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | J. Werner Gerüstbau`,
		},
		"hausverwaltung": {
			Subject: "Gerüstbau für Sanierungen — J. Werner",
			Body: `Guten Tag {{vorname}} {{nachname}},

als {{position}} bei {{firma}} stehen Sanierungsprojekte regelmäßig an.

{{icebreaker}}

J. Werner bietet {{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | J. Werner Gerüstbau`,
		},
		"oeffentlich": {
			Subject: "Gerüstbau für öffentliche Projekte — J. Werner",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

{{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | J. Werner Gerüstbau`,
		},
	},
	"werner_bau": {
		"hausverwaltung": {
			Subject: "Gebäudesanierung — Werner Bauunternehmung",
			Body: `Guten Tag {{vorname}} {{nachname}},

als {{position}} bei {{firma}} kennen Sie den Wert professioneller Gebäudesanierung.

{{icebreaker}}

Werner GmbH bietet {{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Werner GmbH Bauunternehmung`,
		},
		"oeffentlich": {
			Subject: "Sanierung öffentlicher Gebäude — Werner",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Mit fast 100 Jahren Erfahrung bieten wir {{kernleistung}}.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Werner GmbH Bauunternehmung`,
		},
		"denkmalschutz": {
			Subject: "Denkmalgerechte Sanierung — Werner Bau",
			Body: `Guten Tag {{vorname}} {{nachname}},

{{icebreaker}}

Werner GmbH ist Spezialist für {{kernleistung}}, besonders im Bereich Denkmalschutz.

{{pdf_link}}

Beste Grüße
Gruppenwerk | Werner GmbH Bauunternehmung`,
		},
	},
}

// Lookup returns the template for a (company, segment) pair.
func Lookup(companyID, segmentID string) (Email, bool) {
	segments, ok := emailTemplates[companyID]
	if !ok {
		return Email{}, false
	}
	tpl, ok := segments[segmentID]
	return tpl, ok
}

// HasCompany reports whether any templates exist for a company.
func HasCompany(companyID string) bool {
	_, ok := emailTemplates[companyID]
	return ok
}

// TemplateRef identifies one available template.
type TemplateRef struct {
	CompanyID string
	SegmentID string
	Subject   string
}

// All lists every available template, sorted by company then segment.
func All() []TemplateRef {
	var refs []TemplateRef
	for companyID, segments := range emailTemplates {
		for segmentID, tpl := range segments {
			refs = append(refs, TemplateRef{
				CompanyID: companyID,
				SegmentID: segmentID,
				Subject:   tpl.Subject,
			})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].CompanyID != refs[j].CompanyID {
			return refs[i].CompanyID < refs[j].CompanyID
		}
		return refs[i].SegmentID < refs[j].SegmentID
	})
	return refs
}
