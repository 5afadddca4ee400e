// Package research derives analyst-style research records from the static
// company data. All figures are deterministic functions of the performance
// score; nothing is fetched remotely.
package research

import (
	"context"

	"github.com/pkg/errors"

	"github.com/finsage/finsage/assistant/portfolio"
)

// ErrNotFound is returned when no company matches the requested ticker.
var ErrNotFound = errors.New("company not found")

// Record is the research view of a single company.
type Record struct {
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	Industry         string   `json:"industry"`
	Summary          string   `json:"summary"`
	Performance      int      `json:"performance"`
	MarketCap        string   `json:"market_cap"`
	Recommendations  []string `json:"recommendations"`
	RiskScore        float64  `json:"risk_score"`
	GrowthPotential  string   `json:"growth_potential"`
	AnalystConsensus string   `json:"analyst_consensus"`
}

// Service resolves tickers against the combined company datasets.
type Service struct {
	source portfolio.Source
}

// NewService creates a research service over the given company source.
func NewService(source portfolio.Source) *Service {
	return &Service{source: source}
}

// Lookup returns the research record for a ticker, or ErrNotFound.
// The lookup scans both industry datasets; ticker comparison is exact.
func (s *Service) Lookup(ctx context.Context, ticker string) (*Record, error) {
	if ticker == "" {
		return nil, errors.New("ticker is required")
	}

	for _, industry := range []portfolio.Industry{portfolio.IndustryTechnology, portfolio.IndustryRealEstate} {
		companies, err := s.source.GetCompanies(ctx, industry, 10)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load %s companies", industry)
		}
		for _, company := range companies {
			if company.Ticker == ticker {
				return buildRecord(company), nil
			}
		}
	}
	return nil, ErrNotFound
}

func buildRecord(company portfolio.Company) *Record {
	score := company.PerformanceScore

	recommendation := "Hold"
	growth := "Moderate"
	if score > 85 {
		recommendation = "Buy"
		growth = "High"
	}
	consensus := "Neutral"
	if score > 80 {
		consensus = "Positive"
	}

	return &Record{
		Ticker:           company.Ticker,
		Name:             company.Name,
		Industry:         company.Industry,
		Summary:          company.Description,
		Performance:      score,
		MarketCap:        company.MarketCap,
		Recommendations:  []string{recommendation},
		RiskScore:        float64(100-score) / 10,
		GrowthPotential:  growth,
		AnalystConsensus: consensus,
	}
}
