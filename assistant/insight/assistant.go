package insight

import (
	"log/slog"
	"strings"
)

// noInsightsMessage is returned when nothing in the query matches the store.
const noInsightsMessage = "I don't have specific financial insights matching your query at the moment. " +
	"You can ask about market trends, industry performance, or FOMC reports."

// Assistant answers financial data queries from the static insight store.
type Assistant struct {
	store *Store
}

// NewAssistant creates the insight assistant.
func NewAssistant(store *Store) *Assistant {
	return &Assistant{store: store}
}

// Insights returns the insights matching the query, or a fixed guidance
// message when nothing matches. Repeated matches are kept as-is.
func (a *Assistant) Insights(query string) string {
	keyTerms := ExtractKeyTerms(query)
	slog.Info("extracted key terms", "terms", keyTerms)

	var matched []Insight
	for _, term := range keyTerms {
		if insight, ok := a.store.Lookup(term); ok {
			matched = append(matched, insight)
		}
	}

	if len(matched) == 0 {
		return noInsightsMessage
	}

	var b strings.Builder
	b.WriteString("📈 **Financial Insights**\n\n")
	for _, insight := range matched {
		b.WriteString("**" + insight.Title + "**\n" + insight.Content + "\n\n")
	}
	b.WriteString("Would you like to know more about any particular aspect?")
	return b.String()
}
