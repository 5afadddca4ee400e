package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finsage/finsage/assistant/metrics"
	"github.com/finsage/finsage/plugin/email"
)

// AgentCaller is the remote agent function surface used by the assistant.
// It is satisfied by both the networked and the simulated agentcall clients.
type AgentCaller interface {
	CreatePortfolio(ctx context.Context, industry Industry, count int) ([]Company, error)
	SendEmail(ctx context.Context, to, subject string, companies []Company) error
}

// Assistant creates portfolios and delivers them by mail on request.
//
// The remote agent function is always tried first; the local static data and
// the local mail sender are fallbacks that engage only when the remote call
// fails. An empty remote result is a valid answer and does not fall back.
type Assistant struct {
	remote  AgentCaller
	local   Source
	mailer  email.Sender
	metrics *metrics.Exporter
}

// Option configures the assistant.
type Option func(*Assistant)

// WithMetrics records fallback and delivery outcomes on the exporter.
func WithMetrics(exporter *metrics.Exporter) Option {
	return func(a *Assistant) {
		a.metrics = exporter
	}
}

// NewAssistant wires the portfolio assistant.
func NewAssistant(remote AgentCaller, local Source, mailer email.Sender, opts ...Option) *Assistant {
	a := &Assistant{
		remote: remote,
		local:  local,
		mailer: mailer,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreatePortfolio builds the user-facing portfolio response. It never fails;
// every degraded path is folded into the returned message.
func (a *Assistant) CreatePortfolio(ctx context.Context, industry Industry, count int, userEmail string) string {
	slog.Info("creating portfolio", "industry", industry, "count", count)

	companies, err := a.remote.CreatePortfolio(ctx, industry, count)
	if err != nil {
		slog.Warn("agent function call failed, falling back to local data", "error", err)
		a.metrics.RecordAgentFallback("createPortfolio")
		companies, _ = a.local.GetCompanies(ctx, industry, count)
	}

	formatted := FormatPortfolio(companies)

	emailStatus := "Email delivery was not requested."
	if userEmail != "" {
		emailStatus = a.sendPortfolioEmail(ctx, userEmail, industry, companies)
	}

	return fmt.Sprintf(
		"📊 **Portfolio Created: Top %d %s Companies**\n\n%s\n\n**Email Status**: %s\n\nWould you like me to provide more details about any of these companies?",
		count, industry.DisplayName(), formatted, emailStatus,
	)
}

// FormatPortfolio renders companies as a numbered markdown list.
func FormatPortfolio(companies []Company) string {
	if len(companies) == 0 {
		return "No companies found for this portfolio."
	}

	var b strings.Builder
	for i, company := range companies {
		fmt.Fprintf(&b, "%d. **%s** (%s)\n", i+1, company.Name, company.Ticker)
		fmt.Fprintf(&b, "   Industry: %s\n", company.Industry)
		fmt.Fprintf(&b, "   Performance Score: %d/100\n", company.PerformanceScore)
		fmt.Fprintf(&b, "   Market Cap: $%s\n\n", company.MarketCap)
	}
	return b.String()
}

// sendPortfolioEmail tries the remote send path first and falls back to the
// local sender exactly once. The returned status reflects whichever path
// completed; delivery failure never propagates past the assistant.
func (a *Assistant) sendPortfolioEmail(ctx context.Context, userEmail string, industry Industry, companies []Company) string {
	subject := fmt.Sprintf("Your %s Portfolio", industry.DisplayName())

	err := a.remote.SendEmail(ctx, userEmail, subject, companies)
	if err == nil {
		return "Portfolio has been emailed to you successfully."
	}
	slog.Warn("agent function email failed, falling back to local sender", "error", err)
	a.metrics.RecordAgentFallback("sendEmail")

	body := fmt.Sprintf("Here is your requested portfolio of top %s companies:\n\n%s",
		strings.ToLower(industry.DisplayName()), FormatPortfolio(companies))
	if err := a.mailer.Send(ctx, userEmail, subject, body); err != nil {
		a.metrics.RecordEmailDelivery("local", false)
		slog.Error("email sending failed", "to", userEmail, "error", err)
		return "Unable to send email at this time. Please try again later."
	}
	a.metrics.RecordEmailDelivery("local", true)
	return "Portfolio has been emailed to you successfully."
}
