// Package supervisor classifies user queries and routes them to the
// specialized assistants. It is the single entry point for chat requests.
package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/finsage/finsage/assistant/metrics"
	"github.com/finsage/finsage/assistant/portfolio"
)

// generalHelpMessage is returned for queries with no confident intent.
const generalHelpMessage = "I'm your financial assistant, and I can help with:\n\n" +
	"1. Creating investment portfolios (e.g., 'Create a portfolio of 5 technology companies')\n" +
	"2. Providing financial insights (e.g., 'Tell me about financial performance trends')\n" +
	"3. Summarizing FOMC reports (e.g., 'What's in the latest FOMC report?')\n\n" +
	"Please let me know how I can assist you with these topics!"

// PortfolioCreator builds a portfolio response for the extracted parameters.
type PortfolioCreator interface {
	CreatePortfolio(ctx context.Context, industry portfolio.Industry, count int, userEmail string) string
}

// InsightProvider answers financial data queries.
type InsightProvider interface {
	Insights(query string) string
}

// ReportSummarizer produces the latest FOMC report summary.
type ReportSummarizer interface {
	Summary() string
}

// Supervisor routes each query to exactly one downstream capability and
// always returns a user-facing string, never an error. Only the portfolio
// branch has a side effect (email), and only when an address is supplied.
type Supervisor struct {
	portfolio PortfolioCreator
	insights  InsightProvider
	fomc      ReportSummarizer
	metrics   *metrics.Exporter
}

// Option configures optional supervisor behavior.
type Option func(*Supervisor)

// WithMetrics attaches a Prometheus exporter to the supervisor.
func WithMetrics(exporter *metrics.Exporter) Option {
	return func(s *Supervisor) {
		s.metrics = exporter
	}
}

// New wires the supervisor with its downstream assistants.
func New(portfolioAssistant PortfolioCreator, insightAssistant InsightProvider, fomcAssistant ReportSummarizer, opts ...Option) *Supervisor {
	s := &Supervisor{
		portfolio: portfolioAssistant,
		insights:  insightAssistant,
		fomc:      fomcAssistant,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessRequest classifies the query and dispatches it. The general intent
// answers with a fixed capability listing and never calls a collaborator.
func (s *Supervisor) ProcessRequest(ctx context.Context, query, userEmail string) string {
	start := time.Now()
	intent := Classify(query)
	slog.Info("processing user request", "intent", intent, "query", query)
	defer func() {
		s.metrics.RecordRequest(string(intent), time.Since(start))
	}()

	switch intent {
	case IntentPortfolioCreation:
		params := ExtractPortfolioParams(query)
		slog.Info("routing to portfolio assistant", "industry", params.Industry, "count", params.CompanyCount)
		return s.portfolio.CreatePortfolio(ctx, params.Industry, params.CompanyCount, userEmail)

	case IntentFinancialData:
		slog.Info("routing to insight assistant")
		return s.insights.Insights(query)

	case IntentFOMCSummary:
		slog.Info("routing to FOMC assistant")
		return s.fomc.Summary()

	default:
		return generalHelpMessage
	}
}
