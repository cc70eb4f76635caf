package handlers

import (
	"net/http"

	"wordmint/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateSession starts a fresh game and returns the token the front end
// must present on every chat turn. Replaying after a won game means
// requesting a new session here.
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.Sessions.Create()

	token, err := service.GenerateSessionToken(sess.ID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	snap := sess.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"session_id":    sess.ID(),
		"max_questions": snap.MaxQuestions,
	})
}
