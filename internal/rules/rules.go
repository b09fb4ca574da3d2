// Package rules holds the static segmentation registry: per-company
// matching profiles and the ordered list of segment-selection rules.
package rules

import "sort"

// CompanyRule is one company's matching profile.
type CompanyRule struct {
	DisplayName            string   `yaml:"display_name" json:"display_name"`
	Branchen               []string `yaml:"branchen" json:"branchen"`
	JobtitelKeywords       []string `yaml:"jobtitel_keywords" json:"jobtitel_keywords"`
	UnternehmensgroesseMin int      `yaml:"unternehmensgroesse_min" json:"unternehmensgroesse_min"`
	Kernleistung           string   `yaml:"kernleistung" json:"kernleistung"`
	Templates              []string `yaml:"templates" json:"templates"`
	DefaultTemplate        string   `yaml:"default_template" json:"default_template"`
}

// Conditions is the tagged set of optional sub-conditions a segment rule
// may carry. Pointers distinguish "not configured" from zero values.
type Conditions struct {
	KeywordsEnthalten      []string `yaml:"keywords_enthalten,omitempty" json:"keywords_enthalten,omitempty"`
	BranchenEnthalten      []string `yaml:"branchen_enthalten,omitempty" json:"branchen_enthalten,omitempty"`
	TitelEnthalten         []string `yaml:"titel_enthalten,omitempty" json:"titel_enthalten,omitempty"`
	UnternehmensgroesseMin *int     `yaml:"unternehmensgroesse_min,omitempty" json:"unternehmensgroesse_min,omitempty"`
	UnternehmensgroesseMax *int     `yaml:"unternehmensgroesse_max,omitempty" json:"unternehmensgroesse_max,omitempty"`
	KeinFirmenname         bool     `yaml:"kein_firmenname,omitempty" json:"kein_firmenname,omitempty"`
}

// TemplateRule is one segment-selection rule. Rules are evaluated in the
// order they are declared; the first satisfied rule wins.
type TemplateRule struct {
	ID           string     `yaml:"id" json:"id"`
	Beschreibung string     `yaml:"beschreibung" json:"beschreibung"`
	Bedingungen  Conditions `yaml:"bedingungen" json:"bedingungen"`
}

// Registry is the full rule set consulted by the classification engine.
type Registry struct {
	Segmentierung   map[string]CompanyRule `yaml:"segmentierung" json:"segmentierung"`
	TemplateAuswahl []TemplateRule         `yaml:"template_auswahl" json:"template_auswahl"`
}

// Company returns the matching profile for a company id.
func (r *Registry) Company(id string) (CompanyRule, bool) {
	c, ok := r.Segmentierung[id]
	return c, ok
}

// CompanyIDs returns the configured company ids in sorted order.
func (r *Registry) CompanyIDs() []string {
	ids := make([]string, 0, len(r.Segmentierung))
	for id := range r.Segmentierung {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TemplateRuleByID returns a segment rule by its segment id.
func (r *Registry) TemplateRuleByID(id string) (TemplateRule, bool) {
	for _, tr := range r.TemplateAuswahl {
		if tr.ID == id {
			return tr, true
		}
	}
	return TemplateRule{}, false
}
