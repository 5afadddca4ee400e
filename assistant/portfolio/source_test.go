package portfolio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCompaniesFile(t *testing.T, dir string, industry Industry, content string) {
	t.Helper()
	path := filepath.Join(dir, "companies_"+string(industry)+".json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const testCompaniesJSON = `[
	{"name": "Low Corp", "ticker": "LOW", "industry": "technology", "performance_score": 70, "market_cap": "10B", "description": "low"},
	{"name": "High Corp", "ticker": "HIGH", "industry": "technology", "performance_score": 95, "market_cap": "100B", "description": "high"},
	{"name": "Mid Corp", "ticker": "MID", "industry": "technology", "performance_score": 80, "market_cap": "50B", "description": "mid"}
]`

func TestStaticSourceSortsByPerformanceScore(t *testing.T) {
	dir := t.TempDir()
	writeCompaniesFile(t, dir, IndustryTechnology, testCompaniesJSON)

	source := NewStaticSource(dir)
	companies, err := source.GetCompanies(context.Background(), IndustryTechnology, 3)
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{"HIGH", "MID", "LOW"}
	if len(companies) != len(wantOrder) {
		t.Fatalf("got %d companies, want %d", len(companies), len(wantOrder))
	}
	for i, want := range wantOrder {
		if companies[i].Ticker != want {
			t.Errorf("companies[%d].Ticker = %s, want %s", i, companies[i].Ticker, want)
		}
	}
}

func TestStaticSourceLimitsCount(t *testing.T) {
	dir := t.TempDir()
	writeCompaniesFile(t, dir, IndustryTechnology, testCompaniesJSON)

	source := NewStaticSource(dir)

	companies, err := source.GetCompanies(context.Background(), IndustryTechnology, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(companies) != 2 {
		t.Errorf("got %d companies, want 2", len(companies))
	}

	// A count beyond the dataset returns everything.
	companies, err = source.GetCompanies(context.Background(), IndustryTechnology, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(companies) != 3 {
		t.Errorf("got %d companies, want 3", len(companies))
	}
}

func TestStaticSourceMissingFileYieldsPlaceholder(t *testing.T) {
	source := NewStaticSource(t.TempDir())

	companies, err := source.GetCompanies(context.Background(), IndustryRealEstate, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(companies) != 1 {
		t.Fatalf("got %d companies, want 1 placeholder", len(companies))
	}
	if companies[0].Name != "Example Corp" || companies[0].Ticker != "EX" {
		t.Errorf("placeholder = %+v", companies[0])
	}
	if companies[0].Industry != string(IndustryRealEstate) {
		t.Errorf("placeholder industry = %s, want real_estate", companies[0].Industry)
	}
}

func TestStaticSourceCorruptFileYieldsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	writeCompaniesFile(t, dir, IndustryTechnology, "{not valid json")

	source := NewStaticSource(dir)
	companies, err := source.GetCompanies(context.Background(), IndustryTechnology, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(companies) != 1 || companies[0].Ticker != "EX" {
		t.Errorf("companies = %+v, want single placeholder", companies)
	}
}
