package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/reflect-backend/internal/domain"
	"github.com/heartmarshall/reflect-backend/internal/service/therapy"
	"github.com/heartmarshall/reflect-backend/pkg/ctxutil"
)

const (
	detailRequired      = "user_id and message are required"
	detailProcessFailed = "failed to process message"
	detailUserRequired  = "user_id is required"
	detailHistoryFailed = "failed to load conversation"
)

// chatService defines the minimal interface needed by ChatHandler.
type chatService interface {
	Process(ctx context.Context, userID, text string) (therapy.Reply, error)
	History(ctx context.Context, userID string) ([]domain.Message, error)
}

// ChatHandler serves the chat and conversation endpoints.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SessionID *string   `json:"session_id,omitempty"`
}

type conversationResponse struct {
	UserID   string            `json:"user_id"`
	Messages []messageResponse `json:"messages"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, detailRequired)
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, detailRequired)
		return
	}

	ctx := ctxutil.WithUserID(r.Context(), req.UserID)
	reply, err := h.svc.Process(ctx, req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, detailRequired)
			return
		}
		h.log.ErrorContext(ctx, "process message failed",
			slog.String("user_id", req.UserID),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, detailProcessFailed)
		return
	}

	h.log.InfoContext(ctx, "chat turn",
		slog.String("user_id", req.UserID),
		slog.String("outcome", string(reply.Outcome)),
	)
	writeJSON(w, http.StatusOK, chatResponse{Response: reply.Text})
}

// Conversation handles GET /conversations/{userID}.
func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	ctx := ctxutil.WithUserID(r.Context(), userID)

	msgs, err := h.svc.History(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, detailUserRequired)
			return
		}
		h.log.ErrorContext(ctx, "load conversation failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, detailHistoryFailed)
		return
	}

	resp := conversationResponse{UserID: userID, Messages: make([]messageResponse, 0, len(msgs))}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, messageResponse{
			ID:        m.ID.String(),
			Role:      m.Role.String(),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			SessionID: m.SessionID,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
