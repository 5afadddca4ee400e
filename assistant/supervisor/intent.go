package supervisor

import "strings"

// Intent represents the classified purpose of a user query.
type Intent string

const (
	IntentPortfolioCreation Intent = "portfolio_creation"
	IntentFinancialData     Intent = "financial_data"
	IntentFOMCSummary       Intent = "fomc_summary"
	IntentGeneral           Intent = "general"
)

// Keyword sets for intent scoring. Fixed at process start, matched as
// case-insensitive substrings; multi-word keywords must appear contiguously.
var (
	portfolioKeywords = []string{"portfolio", "create", "investment", "companies", "stocks"}
	dataKeywords      = []string{"data", "financial", "performance", "stats", "statistics"}
	fomcKeywords      = []string{"fomc", "federal reserve", "report", "fed", "summary"}
)

// Classify scores the query against the three keyword sets and returns the
// intent with the strictly greatest count of distinct matched keywords.
// Any tie, including the all-zero case, resolves to IntentGeneral: a
// deliberate no-confidence fallback, not an error.
//
// Matching is intentionally naive substring matching with no tokenization,
// stemming, or punctuation handling.
func Classify(query string) Intent {
	lower := strings.ToLower(query)

	portfolioCount := countMatches(lower, portfolioKeywords)
	dataCount := countMatches(lower, dataKeywords)
	fomcCount := countMatches(lower, fomcKeywords)

	switch {
	case portfolioCount > dataCount && portfolioCount > fomcCount:
		return IntentPortfolioCreation
	case fomcCount > portfolioCount && fomcCount > dataCount:
		return IntentFOMCSummary
	case dataCount > portfolioCount && dataCount > fomcCount:
		return IntentFinancialData
	default:
		return IntentGeneral
	}
}

// countMatches counts distinct keywords present in the query, not
// occurrences.
func countMatches(lowerQuery string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(lowerQuery, keyword) {
			count++
		}
	}
	return count
}
