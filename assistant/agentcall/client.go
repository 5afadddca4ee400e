// Package agentcall provides clients for the agent function service, the
// remote surface that creates portfolios, researches tickers, and sends
// portfolio mail. Two implementations exist: HTTPClient talks to the service
// over the network, SimClient answers in-process from the same static data.
// Callers receive one of them by dependency injection and never branch on
// which variant they hold.
package agentcall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/finsage/finsage/assistant/portfolio"
	"github.com/finsage/finsage/assistant/research"
)

// Client is the agent function surface consumed by the assistants.
type Client interface {
	// CreatePortfolio returns the ranked companies for the industry.
	// The service validates 1 <= count <= 10 and the industry value.
	CreatePortfolio(ctx context.Context, industry portfolio.Industry, count int) ([]portfolio.Company, error)

	// Research returns the research record for a ticker.
	Research(ctx context.Context, ticker string) (*research.Record, error)

	// SendEmail delivers a portfolio to the recipient.
	SendEmail(ctx context.Context, to, subject string, companies []portfolio.Company) error
}

// PortfolioResponse is the createPortfolio payload.
type PortfolioResponse struct {
	Status    string              `json:"status"`
	Message   string              `json:"message"`
	Portfolio []portfolio.Company `json:"portfolio"`
}

// ResearchResponse is the companyResearch payload.
type ResearchResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Research *research.Record `json:"research"`
}

// StatusResponse is the generic success payload.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPClient calls the agent function service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *HTTPClient) CreatePortfolio(ctx context.Context, industry portfolio.Industry, count int) ([]portfolio.Company, error) {
	payload := map[string]any{"industry": industry, "count": count}
	var resp PortfolioResponse
	if err := c.post(ctx, "/createPortfolio", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Portfolio, nil
}

func (c *HTTPClient) Research(ctx context.Context, ticker string) (*research.Record, error) {
	payload := map[string]any{"ticker": ticker}
	var resp ResearchResponse
	if err := c.post(ctx, "/companyResearch", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Research, nil
}

func (c *HTTPClient) SendEmail(ctx context.Context, to, subject string, companies []portfolio.Company) error {
	payload := map[string]any{
		"to_address":     to,
		"subject":        subject,
		"portfolio_data": companies,
	}
	var resp StatusResponse
	return c.post(ctx, "/sendEmail", payload, &resp)
}

func (c *HTTPClient) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", endpoint)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "agent function call %s failed", endpoint)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read response from %s", endpoint)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			return errors.Errorf("agent function %s returned %d: %s", endpoint, resp.StatusCode, errResp.Error)
		}
		return errors.Errorf("agent function %s returned %d", endpoint, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", endpoint)
	}
	return nil
}

// SimClient is the deterministic in-process variant. It applies the same
// validation as the HTTP service and answers from the same static data, so
// swapping the two is invisible to callers.
type SimClient struct {
	source   portfolio.Source
	research *research.Service
}

// NewSimClient creates a simulated client over the local static data.
func NewSimClient(source portfolio.Source, researchSvc *research.Service) *SimClient {
	return &SimClient{source: source, research: researchSvc}
}

// ValidateCreatePortfolio applies the service-side parameter validation.
// Shared with the HTTP handlers so both variants reject identically.
func ValidateCreatePortfolio(industry portfolio.Industry, count int) error {
	if count < 1 || count > 10 {
		return errors.New("count must be an integer between 1 and 10")
	}
	if industry != portfolio.IndustryTechnology && industry != portfolio.IndustryRealEstate {
		return errors.New(`industry must be either "technology" or "real_estate"`)
	}
	return nil
}

func (c *SimClient) CreatePortfolio(ctx context.Context, industry portfolio.Industry, count int) ([]portfolio.Company, error) {
	if err := ValidateCreatePortfolio(industry, count); err != nil {
		return nil, err
	}
	return c.source.GetCompanies(ctx, industry, count)
}

func (c *SimClient) Research(ctx context.Context, ticker string) (*research.Record, error) {
	return c.research.Lookup(ctx, ticker)
}

func (c *SimClient) SendEmail(_ context.Context, to, _ string, _ []portfolio.Company) error {
	if to == "" {
		return errors.New("to_address is required")
	}
	// Simulated delivery always succeeds; the caller reports status inline.
	return nil
}

// FormatEmailBody renders the portfolio mail body shared by both the HTTP
// service and the local fallback path.
func FormatEmailBody(companies []portfolio.Company) string {
	var buf bytes.Buffer
	buf.WriteString("Here is your requested investment portfolio:\n\n")
	for i, company := range companies {
		fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, company.Name, company.Ticker)
		fmt.Fprintf(&buf, "   Industry: %s\n", company.Industry)
		fmt.Fprintf(&buf, "   Performance Score: %d/100\n", company.PerformanceScore)
		fmt.Fprintf(&buf, "   Market Cap: $%s\n", company.MarketCap)
		fmt.Fprintf(&buf, "   Description: %s\n\n", company.Description)
	}
	buf.WriteString("\nThank you for using our Financial Assistant service.")
	return buf.String()
}
