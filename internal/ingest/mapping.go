package ingest

// Canonical field names for lead records.
const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldEmail          = "email"
	FieldTitle          = "title"
	FieldCompanyName    = "company_name"
	FieldIndustry       = "industry"
	FieldCompanySize    = "company_size"
	FieldCity           = "city"
	FieldState          = "state"
	FieldCountry        = "country"
	FieldCompanyWebsite = "company_website"
	FieldKeywords       = "keywords"
	FieldSeniority      = "seniority"
	FieldDepartments    = "departments"
)

// apolloFieldMap maps Apollo.io export column headers to canonical lead
// fields. Several source headers alias the same canonical field; when a
// row carries more than one of them the last-applied value wins (header
// order, implementation-defined).
var apolloFieldMap = map[string]string{
	"First Name":             FieldFirstName,
	"Last Name":              FieldLastName,
	"Email":                  FieldEmail,
	"Title":                  FieldTitle,
	"Company Name for Leads": FieldCompanyName,
	"Company":                FieldCompanyName,
	"company_name":           FieldCompanyName,
	"Industry":               FieldIndustry,
	"# Employees":            FieldCompanySize,
	"Company Size":           FieldCompanySize,
	"City":                   FieldCity,
	"State":                  FieldState,
	"Country":                FieldCountry,
	"Company Website":        FieldCompanyWebsite,
	"Website":                FieldCompanyWebsite,
	"Keywords":               FieldKeywords,
	"Seniority":              FieldSeniority,
	"Departments":            FieldDepartments,
}
