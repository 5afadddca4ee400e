package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/finsage/finsage/assistant/supervisor"
	"github.com/finsage/finsage/store"
)

type chatRequest struct {
	Message string `json:"message"`
	// UserEmail, when set, asks the portfolio assistant to mail the result.
	UserEmail string `json:"user_email"`
	// ConversationUID continues an existing conversation; empty starts one.
	ConversationUID string `json:"conversation_uid"`
	// Format selects the reply rendering: "markdown" (default) or "html".
	Format string `json:"format"`
}

type chatResponse struct {
	ConversationUID string `json:"conversation_uid"`
	Intent          string `json:"intent"`
	Reply           string `json:"reply"`
	ReplyHTML       string `json:"reply_html,omitempty"`
}

type conversationResponse struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	CreatedTs int64  `json:"created_ts"`
	UpdatedTs int64  `json:"updated_ts"`
}

type chatMessageResponse struct {
	Role      string `json:"role"`
	Intent    string `json:"intent,omitempty"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"created_ts"`
}

// Chat routes one user message through the supervisor and persists both
// sides of the exchange.
func (s *APIV1Service) Chat(c echo.Context) error {
	req := &chatRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	if req.Format != "" && req.Format != "markdown" && req.Format != "html" {
		return echo.NewHTTPError(http.StatusBadRequest, `format must be "markdown" or "html"`)
	}

	if !s.chatLimiter.Allow() {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, slow down")
	}

	ctx := c.Request().Context()
	if err := s.chatSemaphore.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request canceled while waiting")
	}
	defer s.chatSemaphore.Release(1)

	conversation, err := s.resolveConversation(c, req)
	if err != nil {
		return err
	}

	if _, err := s.Store.CreateChatMessage(ctx, &store.ChatMessage{
		ConversationID: conversation.ID,
		Role:           "user",
		Content:        req.Message,
	}); err != nil {
		slog.Error("failed to persist user message", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to persist message")
	}

	intent := supervisor.Classify(req.Message)
	reply := s.Supervisor.ProcessRequest(ctx, req.Message, req.UserEmail)

	if _, err := s.Store.CreateChatMessage(ctx, &store.ChatMessage{
		ConversationID: conversation.ID,
		Role:           "assistant",
		Intent:         string(intent),
		Content:        reply,
	}); err != nil {
		slog.Error("failed to persist assistant message", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to persist message")
	}

	resp := &chatResponse{
		ConversationUID: conversation.UID,
		Intent:          string(intent),
		Reply:           reply,
	}
	if req.Format == "html" {
		html, err := s.MarkdownService.Render(reply)
		if err != nil {
			slog.Warn("failed to render reply as html", "error", err)
		} else {
			resp.ReplyHTML = html
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// resolveConversation loads the requested conversation or starts a new one
// titled with the first message.
func (s *APIV1Service) resolveConversation(c echo.Context, req *chatRequest) (*store.Conversation, error) {
	ctx := c.Request().Context()

	if req.ConversationUID != "" {
		conversation, err := s.Store.GetConversation(ctx, &store.FindConversation{UID: &req.ConversationUID})
		if err != nil {
			slog.Error("failed to load conversation", "uid", req.ConversationUID, "error", err)
			return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load conversation")
		}
		if conversation == nil {
			return nil, echo.NewHTTPError(http.StatusNotFound, "conversation not found")
		}
		return conversation, nil
	}

	title := req.Message
	if len(title) > 64 {
		title = title[:64]
	}
	conversation, err := s.Store.CreateConversation(ctx, &store.Conversation{
		UID:   shortuuid.New(),
		Title: title,
	})
	if err != nil {
		slog.Error("failed to create conversation", "error", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to create conversation")
	}
	return conversation, nil
}

func (s *APIV1Service) ListConversations(c echo.Context) error {
	conversations, err := s.Store.ListConversations(c.Request().Context(), &store.FindConversation{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list conversations")
	}

	list := make([]*conversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		list = append(list, &conversationResponse{
			UID:       conversation.UID,
			Title:     conversation.Title,
			CreatedTs: conversation.CreatedTs,
			UpdatedTs: conversation.UpdatedTs,
		})
	}
	return c.JSON(http.StatusOK, list)
}

func (s *APIV1Service) ListConversationMessages(c echo.Context) error {
	uid := c.Param("uid")
	ctx := c.Request().Context()

	conversation, err := s.Store.GetConversation(ctx, &store.FindConversation{UID: &uid})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load conversation")
	}
	if conversation == nil {
		return echo.NewHTTPError(http.StatusNotFound, "conversation not found")
	}

	messages, err := s.Store.ListChatMessages(ctx, &store.FindChatMessage{ConversationID: &conversation.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list messages")
	}

	list := make([]*chatMessageResponse, 0, len(messages))
	for _, message := range messages {
		list = append(list, &chatMessageResponse{
			Role:      message.Role,
			Intent:    message.Intent,
			Content:   message.Content,
			CreatedTs: message.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, list)
}
