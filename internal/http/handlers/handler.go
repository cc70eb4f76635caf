package handlers

import (
	"wordmint/internal/service"
	"wordmint/internal/session"
)

type Handler struct {
	Sessions     *session.Store
	Orchestrator *service.Orchestrator
}

func NewHandler(sessions *session.Store, orch *service.Orchestrator) *Handler {
	return &Handler{
		Sessions:     sessions,
		Orchestrator: orch,
	}
}

// getSessionID extracts the session id set by the JWT middleware
func getSessionID(c interface{ Get(string) (any, bool) }) (string, bool) {
	val, ok := c.Get("session_id")
	if !ok {
		return "", false
	}
	sid, ok := val.(string)
	return sid, ok && sid != ""
}
