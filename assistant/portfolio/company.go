// Package portfolio builds ranked company portfolios from static industry data.
package portfolio

import "strings"

// Industry identifies a supported industry dataset.
type Industry string

const (
	IndustryTechnology Industry = "technology"
	IndustryRealEstate Industry = "real_estate"
)

// ParseIndustry normalizes a free-form industry label: lower-cased, trimmed,
// inner spaces replaced with underscores, so "Real Estate" becomes
// real_estate. It does not validate; unknown labels pass through unchanged
// for the boundary validator to reject.
func ParseIndustry(raw string) Industry {
	return Industry(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_"))
}

// DisplayName returns the human readable industry name, e.g. "Real Estate".
func (i Industry) DisplayName() string {
	words := strings.Split(strings.ReplaceAll(string(i), "_", " "), " ")
	for n, w := range words {
		if w == "" {
			continue
		}
		words[n] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Company is a single portfolio constituent.
type Company struct {
	Name             string `json:"name"`
	Ticker           string `json:"ticker"`
	Industry         string `json:"industry"`
	PerformanceScore int    `json:"performance_score"`
	MarketCap        string `json:"market_cap"`
	Description      string `json:"description"`
}
