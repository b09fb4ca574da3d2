package models

// Lead is one canonical contact record produced by ingestion. It is
// immutable once created; all fields are raw strings as imported.
type Lead struct {
	ID         string `json:"id,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	Title          string `json:"title"`
	CompanyName    string `json:"company_name"`
	Industry       string `json:"industry"`
	CompanySize    string `json:"company_size"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	CompanyWebsite string `json:"company_website"`
	Keywords       string `json:"keywords"`
	Seniority      string `json:"seniority"`
	Departments    string `json:"departments"`
}

// Assignment is a scored (lead, company, segment) triple. A single lead
// can produce one Assignment per company it matches.
type Assignment struct {
	Lead       Lead    `json:"lead"`
	CompanyID  string  `json:"company_id"`
	SegmentID  string  `json:"segment_id"`
	MatchScore float64 `json:"match_score"`
}

// RenderedEmail is the output of the template renderer for one Assignment.
type RenderedEmail struct {
	SubjectLine string `json:"subject_line"`
	Body        string `json:"body"`
	Icebreaker  string `json:"icebreaker"`
	PDFLink     string `json:"pdf_link"`
}

// GeneratedEmail is the externally persisted unit: an Assignment plus its
// rendering, tagged with the owning campaign.
type GeneratedEmail struct {
	ID         string `json:"id,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`

	Lead       Lead    `json:"lead"`
	CompanyID  string  `json:"company_id"`
	SegmentID  string  `json:"segment_id"`
	MatchScore float64 `json:"match_score"`

	SubjectLine string `json:"subject_line"`
	Body        string `json:"body"`
	Icebreaker  string `json:"icebreaker"`
	PDFLink     string `json:"pdf_link"`
}
