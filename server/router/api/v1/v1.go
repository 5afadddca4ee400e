// Package v1 serves the chat API: conversation management, the supervisor
// entry point, ticker research, and the auxiliary agent gateway.
package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/finsage/finsage/assistant/agentcall"
	"github.com/finsage/finsage/assistant/fomc"
	"github.com/finsage/finsage/assistant/gateway"
	"github.com/finsage/finsage/assistant/insight"
	"github.com/finsage/finsage/assistant/metrics"
	"github.com/finsage/finsage/assistant/portfolio"
	"github.com/finsage/finsage/assistant/research"
	"github.com/finsage/finsage/assistant/supervisor"
	"github.com/finsage/finsage/internal/profile"
	"github.com/finsage/finsage/plugin/email"
	"github.com/finsage/finsage/plugin/markdown"
	"github.com/finsage/finsage/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	Supervisor *supervisor.Supervisor
	Research   *research.Service
	Gateway    *gateway.Gateway

	MarkdownService markdown.Service

	// One assistant request at a time, matching the single-threaded agent
	// runtime the responses were written for.
	chatSemaphore *semaphore.Weighted
	chatLimiter   *rate.Limiter
}

func NewAPIV1Service(_ context.Context, profile *profile.Profile, store *store.Store, exporter *metrics.Exporter) (*APIV1Service, error) {
	source := portfolio.NewStaticSource(profile.CompanyDataDir)
	researchService := research.NewService(source)

	var agentClient portfolio.AgentCaller
	if profile.UseRemoteAgent {
		agentClient = agentcall.NewHTTPClient(profile.AgentBaseURL)
	} else {
		agentClient = agentcall.NewSimClient(source, researchService)
	}

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

	portfolioAssistant := portfolio.NewAssistant(agentClient, source, mailer, portfolio.WithMetrics(exporter))
	insightAssistant := insight.NewAssistant(insight.NewStore())
	fomcAssistant := fomc.NewAssistant(profile.FOMCDataPath, profile.FOMCReportPath)

	llmGateway := gateway.New(&gateway.Config{
		Provider: profile.LLMProvider,
		Model:    profile.LLMModel,
		APIKey:   profile.LLMAPIKey,
		BaseURL:  profile.LLMBaseURL,
		Timeout:  profile.LLMTimeout,
	})
	if profile.IsLLMEnabled() {
		slog.Info("llm gateway enabled", "provider", profile.LLMProvider, "model", profile.LLMModel)
	} else {
		slog.Info("llm api key not set, agent invocations run simulated")
	}

	return &APIV1Service{
		Profile: profile,
		Store:   store,
		Supervisor: supervisor.New(
			portfolioAssistant,
			insightAssistant,
			fomcAssistant,
			supervisor.WithMetrics(exporter),
		),
		Research:        researchService,
		Gateway:         llmGateway,
		MarkdownService: markdown.NewService(markdown.WithHardWraps()),
		chatSemaphore:   semaphore.NewWeighted(1),
		chatLimiter:     rate.NewLimiter(rate.Limit(10), 20),
	}, nil
}

// Register mounts the v1 API routes.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/chat", s.Chat)
	g.GET("/conversations", s.ListConversations)
	g.GET("/conversations/:uid/messages", s.ListConversationMessages)
	g.GET("/research/:ticker", s.GetResearch)
	g.POST("/agent/invoke", s.InvokeAgent)
}

func (s *APIV1Service) GetResearch(c echo.Context) error {
	ticker := c.Param("ticker")

	record, err := s.Research.Lookup(c.Request().Context(), ticker)
	if err != nil {
		if errors.Is(err, research.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no company found for ticker "+ticker)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, record)
}

type invokeAgentRequest struct {
	Prompt string `json:"prompt"`
}

type invokeAgentResponse struct {
	Completion string `json:"completion"`
	Simulated  bool   `json:"simulated"`
}

// InvokeAgent answers a free-form prompt through the LLM gateway. It is not
// part of the chat routing; the supervisor never consults the model.
func (s *APIV1Service) InvokeAgent(c echo.Context) error {
	req := &invokeAgentRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}

	completion, err := s.Gateway.Invoke(c.Request().Context(), req.Prompt)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, &invokeAgentResponse{
		Completion: completion,
		Simulated:  s.Gateway.IsSimulated(),
	})
}
