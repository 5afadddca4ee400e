// Package insight serves canned financial insights keyed by topic.
package insight

import (
	"regexp"
	"strings"
)

// Insight is a single pre-written insight block.
type Insight struct {
	Title   string
	Content string
}

// financialTerms is the fixed vocabulary scanned for in user queries.
// Matching is case-insensitive substring matching, deliberately naive: no
// tokenization or stemming.
var financialTerms = []string{
	"inflation", "interest rates", "gdp", "growth", "recession",
	"market", "stock", "bond", "yield", "investment", "economy",
	"sector", "industry", "performance", "trends", "forecast",
}

// tickerPattern matches uppercase 1-5 letter tokens as ticker candidates.
var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// Store is the static topic-to-insight mapping. Read only.
type Store struct {
	insights map[string]Insight
}

// NewStore creates the store with the built-in insight set.
func NewStore() *Store {
	return &Store{
		insights: map[string]Insight{
			"inflation": {
				Title:   "Inflation Trends",
				Content: "Recent data shows inflation has moderated from previous highs, but remains above the Federal Reserve's target of 2%. Core inflation, which excludes food and energy, has been particularly persistent in service sectors.",
			},
			"interest rates": {
				Title:   "Interest Rate Environment",
				Content: "The Federal Reserve has maintained elevated interest rates to combat inflation. Markets are currently anticipating potential rate cuts in the coming quarters as inflation pressures ease, though the timing remains uncertain.",
			},
			"market": {
				Title:   "Market Performance",
				Content: "Equity markets have shown resilience despite higher interest rates, with technology stocks demonstrating particular strength. Fixed income markets have adjusted to the higher rate environment with yields stabilizing.",
			},
			"economy": {
				Title:   "Economic Outlook",
				Content: "The economy has maintained growth despite tighter monetary conditions. Consumer spending remains relatively strong, though there are signs of moderation in certain sectors. The labor market has shown cooling but remains historically tight.",
			},
			"technology": {
				Title:   "Technology Sector Insights",
				Content: "The technology sector continues to outperform broader markets, driven by advances in artificial intelligence, cloud computing, and digital transformation. Companies with strong AI capabilities have seen particularly robust valuations.",
			},
			"real estate": {
				Title:   "Real Estate Market Conditions",
				Content: "The real estate sector has faced challenges from higher interest rates, particularly in residential and commercial segments. REITs have experienced pressure, though certain subsectors like data centers and industrial properties have shown resilience.",
			},
		},
	}
}

// Lookup returns the insight for a term, matched case-insensitively.
func (s *Store) Lookup(term string) (Insight, bool) {
	insight, ok := s.insights[strings.ToLower(term)]
	return insight, ok
}

// ExtractKeyTerms pulls known financial terms and ticker candidates from a
// query. Terms come from the fixed vocabulary; tickers are any uppercase 1-5
// letter tokens in the raw query.
func ExtractKeyTerms(query string) []string {
	var terms []string
	queryLower := strings.ToLower(query)

	for _, term := range financialTerms {
		if strings.Contains(queryLower, term) {
			terms = append(terms, term)
		}
	}

	terms = append(terms, tickerPattern.FindAllString(query, -1)...)
	return terms
}
