package portfolio

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/finsage/finsage/assistant/metrics"
)

var testCompanies = []Company{
	{Name: "High Corp", Ticker: "HIGH", Industry: "technology", PerformanceScore: 95, MarketCap: "100B"},
	{Name: "Mid Corp", Ticker: "MID", Industry: "technology", PerformanceScore: 80, MarketCap: "50B"},
}

type fakeAgent struct {
	companies    []Company
	createErr    error
	emailErr     error
	createCalls  int
	emailCalls   int
	lastEmailTo  string
	lastEmailSub string
}

func (f *fakeAgent) CreatePortfolio(_ context.Context, _ Industry, _ int) ([]Company, error) {
	f.createCalls++
	return f.companies, f.createErr
}

func (f *fakeAgent) SendEmail(_ context.Context, to, subject string, _ []Company) error {
	f.emailCalls++
	f.lastEmailTo = to
	f.lastEmailSub = subject
	return f.emailErr
}

type fakeSource struct {
	companies []Company
	calls     int
}

func (f *fakeSource) GetCompanies(_ context.Context, _ Industry, _ int) ([]Company, error) {
	f.calls++
	return f.companies, nil
}

type fakeMailer struct {
	calls int
	err   error
	to    string
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	f.calls++
	f.to = to
	return f.err
}

func TestCreatePortfolioRemoteSuccess(t *testing.T) {
	agent := &fakeAgent{companies: testCompanies}
	local := &fakeSource{companies: testCompanies}
	mailer := &fakeMailer{}
	a := NewAssistant(agent, local, mailer)

	got := a.CreatePortfolio(context.Background(), IndustryTechnology, 2, "")

	if !strings.Contains(got, "Portfolio Created: Top 2 Technology Companies") {
		t.Errorf("missing header in %q", got)
	}
	if !strings.Contains(got, "High Corp") || !strings.Contains(got, "HIGH") {
		t.Errorf("missing company details in %q", got)
	}
	if !strings.Contains(got, "Email delivery was not requested.") {
		t.Errorf("missing email status in %q", got)
	}
	if local.calls != 0 {
		t.Error("local source must not be consulted when the remote call succeeds")
	}
	if mailer.calls != 0 {
		t.Error("mailer must not be called without an email address")
	}
}

func TestCreatePortfolioFallsBackToLocalData(t *testing.T) {
	agent := &fakeAgent{createErr: errors.New("service unavailable")}
	local := &fakeSource{companies: testCompanies}
	a := NewAssistant(agent, local, &fakeMailer{})

	got := a.CreatePortfolio(context.Background(), IndustryTechnology, 2, "")

	if local.calls != 1 {
		t.Fatalf("local source calls = %d, want 1", local.calls)
	}
	if !strings.Contains(got, "High Corp") {
		t.Errorf("fallback reply missing companies: %q", got)
	}
}

func TestCreatePortfolioEmptyRemoteResultDoesNotFallBack(t *testing.T) {
	agent := &fakeAgent{companies: nil}
	local := &fakeSource{companies: testCompanies}
	a := NewAssistant(agent, local, &fakeMailer{})

	got := a.CreatePortfolio(context.Background(), IndustryTechnology, 2, "")

	if local.calls != 0 {
		t.Error("empty remote result is a valid answer, not a fallback trigger")
	}
	if !strings.Contains(got, "No companies found for this portfolio.") {
		t.Errorf("reply = %q", got)
	}
}

func TestCreatePortfolioEmailRemoteSuccess(t *testing.T) {
	agent := &fakeAgent{companies: testCompanies}
	mailer := &fakeMailer{}
	a := NewAssistant(agent, &fakeSource{}, mailer)

	got := a.CreatePortfolio(context.Background(), IndustryRealEstate, 2, "user@example.com")

	if !strings.Contains(got, "Portfolio has been emailed to you successfully.") {
		t.Errorf("reply = %q", got)
	}
	if agent.emailCalls != 1 {
		t.Errorf("remote email calls = %d, want 1", agent.emailCalls)
	}
	if agent.lastEmailTo != "user@example.com" {
		t.Errorf("email to = %q", agent.lastEmailTo)
	}
	if agent.lastEmailSub != "Your Real Estate Portfolio" {
		t.Errorf("email subject = %q", agent.lastEmailSub)
	}
	if mailer.calls != 0 {
		t.Error("local mailer must not run when the remote send succeeds")
	}
}

func TestCreatePortfolioEmailFallsBackExactlyOnce(t *testing.T) {
	agent := &fakeAgent{companies: testCompanies, emailErr: errors.New("smtp down")}
	mailer := &fakeMailer{}
	a := NewAssistant(agent, &fakeSource{}, mailer)

	got := a.CreatePortfolio(context.Background(), IndustryTechnology, 2, "user@example.com")

	if agent.emailCalls != 1 {
		t.Errorf("remote email calls = %d, want 1", agent.emailCalls)
	}
	if mailer.calls != 1 {
		t.Errorf("local mailer calls = %d, want 1", mailer.calls)
	}
	if !strings.Contains(got, "Portfolio has been emailed to you successfully.") {
		t.Errorf("reply = %q", got)
	}
}

func TestCreatePortfolioEmailBothPathsFail(t *testing.T) {
	agent := &fakeAgent{companies: testCompanies, emailErr: errors.New("smtp down")}
	mailer := &fakeMailer{err: errors.New("still down")}
	a := NewAssistant(agent, &fakeSource{}, mailer)

	got := a.CreatePortfolio(context.Background(), IndustryTechnology, 2, "user@example.com")

	if !strings.Contains(got, "Unable to send email at this time. Please try again later.") {
		t.Errorf("reply = %q", got)
	}
	if !strings.Contains(got, "Portfolio Created") {
		t.Error("portfolio content must survive a delivery failure")
	}
}

func TestCreatePortfolioRecordsFallbackMetrics(t *testing.T) {
	exporter := metrics.NewExporter(metrics.Config{})
	agent := &fakeAgent{
		createErr: errors.New("service unavailable"),
		emailErr:  errors.New("smtp down"),
	}
	local := &fakeSource{companies: testCompanies}
	mailer := &fakeMailer{}
	a := NewAssistant(agent, local, mailer, WithMetrics(exporter))

	a.CreatePortfolio(context.Background(), IndustryTechnology, 2, "user@example.com")

	rec := httptest.NewRecorder()
	exporter.HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		`finsage_assistant_agent_fallbacks_total{operation="createPortfolio"} 1`,
		`finsage_assistant_agent_fallbacks_total{operation="sendEmail"} 1`,
		`finsage_assistant_email_deliveries_total{backend="local",status="success"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func TestCreatePortfolioRecordsFailedLocalDelivery(t *testing.T) {
	exporter := metrics.NewExporter(metrics.Config{})
	agent := &fakeAgent{companies: testCompanies, emailErr: errors.New("smtp down")}
	mailer := &fakeMailer{err: errors.New("still down")}
	a := NewAssistant(agent, &fakeSource{}, mailer, WithMetrics(exporter))

	a.CreatePortfolio(context.Background(), IndustryTechnology, 2, "user@example.com")

	rec := httptest.NewRecorder()
	exporter.HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, `finsage_assistant_email_deliveries_total{backend="local",status="failure"} 1`) {
		t.Errorf("metrics output missing failed local delivery:\n%s", body)
	}
}

func TestFormatPortfolio(t *testing.T) {
	got := FormatPortfolio(testCompanies)

	if !strings.Contains(got, "1. **High Corp** (HIGH)") {
		t.Errorf("missing first entry: %q", got)
	}
	if !strings.Contains(got, "2. **Mid Corp** (MID)") {
		t.Errorf("missing second entry: %q", got)
	}
	if !strings.Contains(got, "Performance Score: 95/100") {
		t.Errorf("missing score line: %q", got)
	}
	if !strings.Contains(got, "Market Cap: $100B") {
		t.Errorf("missing market cap line: %q", got)
	}

	if got := FormatPortfolio(nil); got != "No companies found for this portfolio." {
		t.Errorf("empty list reply = %q", got)
	}
}
