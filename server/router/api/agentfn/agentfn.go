// Package agentfn serves the agent function endpoints: portfolio creation,
// company research, and portfolio mail delivery. The endpoints mirror the
// payloads of the agentcall clients so the chat service can be pointed at
// this process or a remote one interchangeably.
package agentfn

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/finsage/finsage/assistant/agentcall"
	"github.com/finsage/finsage/assistant/metrics"
	"github.com/finsage/finsage/assistant/portfolio"
	"github.com/finsage/finsage/assistant/research"
	"github.com/finsage/finsage/internal/profile"
	"github.com/finsage/finsage/plugin/email"
)

type Service struct {
	Profile *profile.Profile

	source   portfolio.Source
	research *research.Service
	mailer   email.Sender
	metrics  *metrics.Exporter
}

// NewService wires the agent function service over the static company data.
func NewService(profile *profile.Profile, exporter *metrics.Exporter) (*Service, error) {
	source := portfolio.NewStaticSource(profile.CompanyDataDir)

	var mailer email.Sender
	if profile.UseSMTP {
		smtpSender, err := email.NewSMTPSender(&email.Config{
			SMTPHost:     profile.SMTPHost,
			SMTPPort:     profile.SMTPPort,
			SMTPUsername: profile.SMTPUsername,
			SMTPPassword: profile.SMTPPassword,
			FromEmail:    profile.SenderEmail,
			FromName:     "Financial Assistant",
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create SMTP sender")
		}
		mailer = smtpSender
	} else {
		mailer = email.NewLogSender()
	}
	slog.Info("agent functions configured", "region", profile.Region, "smtp", profile.UseSMTP)

	return &Service{
		Profile:  profile,
		source:   source,
		research: research.NewService(source),
		mailer:   mailer,
		metrics:  exporter,
	}, nil
}

// Register mounts the agent function routes.
func (s *Service) Register(e *echo.Echo) {
	g := e.Group("/agent")
	g.POST("/createPortfolio", s.CreatePortfolio)
	g.POST("/companyResearch", s.CompanyResearch)
	g.POST("/sendEmail", s.SendEmail)
}

type createPortfolioRequest struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

func (s *Service) CreatePortfolio(c echo.Context) error {
	req := &createPortfolioRequest{Industry: string(portfolio.IndustryTechnology), Count: 3}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	industry := portfolio.ParseIndustry(req.Industry)
	if err := agentcall.ValidateCreatePortfolio(industry, req.Count); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	companies, err := s.source.GetCompanies(c.Request().Context(), industry, req.Count)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	slog.Info("portfolio created", "industry", industry, "count", req.Count, "companies", len(companies))
	return c.JSON(http.StatusOK, &agentcall.PortfolioResponse{
		Status:    "success",
		Message:   fmt.Sprintf("Created portfolio with top %d companies from %s industry", req.Count, industry),
		Portfolio: companies,
	})
}

type companyResearchRequest struct {
	Ticker string `json:"ticker"`
}

func (s *Service) CompanyResearch(c echo.Context) error {
	req := &companyResearchRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Ticker == "" {
		return errorJSON(c, http.StatusBadRequest, "ticker is required")
	}

	record, err := s.research.Lookup(c.Request().Context(), req.Ticker)
	if err != nil {
		if errors.Is(err, research.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, fmt.Sprintf("no company found for ticker %q", req.Ticker))
		}
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, &agentcall.ResearchResponse{
		Status:   "success",
		Message:  fmt.Sprintf("Research for %s", req.Ticker),
		Research: record,
	})
}

type sendEmailRequest struct {
	ToAddress     string              `json:"to_address"`
	Subject       string              `json:"subject"`
	PortfolioData []portfolio.Company `json:"portfolio_data"`
}

func (s *Service) SendEmail(c echo.Context) error {
	req := &sendEmailRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ToAddress == "" {
		return errorJSON(c, http.StatusBadRequest, "to_address is required")
	}
	if req.Subject == "" {
		req.Subject = "Your Investment Portfolio"
	}

	body := agentcall.FormatEmailBody(req.PortfolioData)
	backend := "simulated"
	if s.Profile.UseSMTP {
		backend = "smtp"
	}

	if err := s.mailer.Send(c.Request().Context(), req.ToAddress, req.Subject, body); err != nil {
		s.metrics.RecordEmailDelivery(backend, false)
		slog.Error("email delivery failed", "to", req.ToAddress, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	s.metrics.RecordEmailDelivery(backend, true)

	return c.JSON(http.StatusOK, &agentcall.StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Email sent to %s", req.ToAddress),
	})
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{"error": message})
}
