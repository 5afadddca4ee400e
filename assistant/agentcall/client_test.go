package agentcall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finsage/finsage/assistant/portfolio"
	"github.com/finsage/finsage/assistant/research"
)

var testCompanies = []portfolio.Company{
	{Name: "TechCorp Inc.", Ticker: "TECH", Industry: "technology", PerformanceScore: 92, MarketCap: "1.2T", Description: "Leading provider"},
	{Name: "Quantum Systems", Ticker: "QSYS", Industry: "technology", PerformanceScore: 88, MarketCap: "850B", Description: "Semiconductors"},
}

func TestHTTPClientCreatePortfolio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/createPortfolio", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "technology", payload["industry"])
		require.Equal(t, float64(2), payload["count"])

		_ = json.NewEncoder(w).Encode(&PortfolioResponse{
			Status:    "success",
			Portfolio: testCompanies,
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	companies, err := client.CreatePortfolio(context.Background(), portfolio.IndustryTechnology, 2)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, "TECH", companies[0].Ticker)
}

func TestHTTPClientDecodesErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "count must be an integer between 1 and 10"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	_, err := client.CreatePortfolio(context.Background(), portfolio.IndustryTechnology, 99)
	require.Error(t, err)
	require.Contains(t, err.Error(), "count must be an integer between 1 and 10")
	require.Contains(t, err.Error(), "400")
}

func TestHTTPClientResearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/companyResearch", r.URL.Path)
		_ = json.NewEncoder(w).Encode(&ResearchResponse{
			Status:   "success",
			Research: &research.Record{Ticker: "TECH", Name: "TechCorp Inc."},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	record, err := client.Research(context.Background(), "TECH")
	require.NoError(t, err)
	require.Equal(t, "TechCorp Inc.", record.Name)
}

func TestHTTPClientSendEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sendEmail", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "user@example.com", payload["to_address"])
		require.Equal(t, "Your Portfolio", payload["subject"])

		_ = json.NewEncoder(w).Encode(&StatusResponse{Status: "success"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	err := client.SendEmail(context.Background(), "user@example.com", "Your Portfolio", testCompanies)
	require.NoError(t, err)
}

func TestHTTPClientUnreachableServer(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1")
	_, err := client.CreatePortfolio(context.Background(), portfolio.IndustryTechnology, 2)
	require.Error(t, err)
}

type staticSource struct {
	companies []portfolio.Company
}

func (s *staticSource) GetCompanies(_ context.Context, _ portfolio.Industry, count int) ([]portfolio.Company, error) {
	if count < len(s.companies) {
		return s.companies[:count], nil
	}
	return s.companies, nil
}

func TestSimClientValidation(t *testing.T) {
	client := NewSimClient(&staticSource{companies: testCompanies}, research.NewService(&staticSource{companies: testCompanies}))

	tests := []struct {
		name     string
		industry portfolio.Industry
		count    int
		wantErr  string
	}{
		{"count too low", portfolio.IndustryTechnology, 0, "between 1 and 10"},
		{"count too high", portfolio.IndustryTechnology, 11, "between 1 and 10"},
		{"bad industry", portfolio.Industry("crypto"), 3, "industry must be either"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreatePortfolio(context.Background(), tt.industry, tt.count)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}

	companies, err := client.CreatePortfolio(context.Background(), portfolio.IndustryTechnology, 1)
	require.NoError(t, err)
	require.Len(t, companies, 1)
}

func TestSimClientSendEmail(t *testing.T) {
	client := NewSimClient(&staticSource{}, research.NewService(&staticSource{}))

	require.NoError(t, client.SendEmail(context.Background(), "user@example.com", "subject", nil))
	require.Error(t, client.SendEmail(context.Background(), "", "subject", nil))
}

func TestFormatEmailBody(t *testing.T) {
	body := FormatEmailBody(testCompanies)

	require.True(t, strings.HasPrefix(body, "Here is your requested investment portfolio:"))
	require.Contains(t, body, "1. TechCorp Inc. (TECH)")
	require.Contains(t, body, "2. Quantum Systems (QSYS)")
	require.Contains(t, body, "Performance Score: 92/100")
	require.Contains(t, body, "Market Cap: $1.2T")
	require.Contains(t, body, "Thank you for using our Financial Assistant service.")
}
