package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Source provides ranked companies for an industry.
// Implementations return at most count companies ordered by performance
// score descending.
type Source interface {
	GetCompanies(ctx context.Context, industry Industry, count int) ([]Company, error)
}

// StaticSource reads per-industry company datasets from local JSON files.
// It performs no validation and never fails: when the backing file is
// unavailable or corrupt it substitutes a single placeholder company so the
// assistant can still answer.
type StaticSource struct {
	dataDir string
}

// NewStaticSource creates a source backed by JSON files under dataDir.
func NewStaticSource(dataDir string) *StaticSource {
	return &StaticSource{dataDir: dataDir}
}

// GetCompanies returns the top companies for the industry, sorted by
// performance score descending. Ties keep the original file order.
func (s *StaticSource) GetCompanies(_ context.Context, industry Industry, count int) ([]Company, error) {
	path := filepath.Join(s.dataDir, fmt.Sprintf("companies_%s.json", industry))

	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Error("companies data file not found", "path", path, "error", err)
		return []Company{placeholderCompany(industry)}, nil
	}

	var companies []Company
	if err := json.Unmarshal(raw, &companies); err != nil {
		slog.Error("failed to parse companies data file", "path", path, "error", err)
		return []Company{placeholderCompany(industry)}, nil
	}

	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].PerformanceScore > companies[j].PerformanceScore
	})

	if count < len(companies) && count >= 0 {
		companies = companies[:count]
	}
	return companies, nil
}

func placeholderCompany(industry Industry) Company {
	return Company{
		Name:             "Example Corp",
		Ticker:           "EX",
		Industry:         string(industry),
		PerformanceScore: 85,
	}
}
