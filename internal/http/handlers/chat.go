package handlers

import (
	"errors"
	"io"
	"net/http"

	"wordmint/internal/domain"
	"wordmint/internal/logger"
	"wordmint/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatRequest is the inbound turn: the full conversation so far
type ChatRequest struct {
	Messages []domain.ConversationTurn `json:"messages"`
}

// Chat processes one conversational turn. The response body is plain text:
// either a single fixed message or a chunked completion stream.
func (h *Handler) Chat(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}

	var req ChatRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages must not be empty"})
		return
	}

	reply, err := h.Orchestrator.ProcessTurn(c.Request.Context(), sessionID, req.Messages)
	if err != nil {
		if errors.Is(err, service.ErrEmptyConversation) || errors.Is(err, service.ErrLastTurnNotUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("turn processing failed", "session", sessionID, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "completion unavailable"})
		return
	}

	if reply.Stream == nil {
		c.String(http.StatusOK, reply.Text)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		tok, err := reply.Stream.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn("completion stream interrupted", "session", sessionID, "err", err)
			}
			return false
		}
		_, _ = io.WriteString(w, tok)
		return true
	})
}
