// Package report loads paragraph datasets extracted from organizational
// documents. Each CSV file in the data directory is one organization's
// dataset; the file basename is the organization name.
package report

import "strings"

// SourceAll is the synthetic source that unions every organization dataset.
const SourceAll = "All"

// Paragraph is one row of an organization dataset.
type Paragraph struct {
	Organization string
	Country      string
	Year         string
	Text         string
	SourceFile   string
}

// Reference renders the citation line shown under a result:
// "{organization} {country}, {year}", with country omitted when blank.
func (p Paragraph) Reference() string {
	org := strings.TrimSpace(p.Organization)
	if org == "" {
		org = "Organization not available"
	}
	year := strings.TrimSpace(p.Year)
	if year == "" {
		year = "Year not available"
	}
	if country := strings.TrimSpace(p.Country); country != "" {
		return org + " " + country + ", " + year
	}
	return org + ", " + year
}
