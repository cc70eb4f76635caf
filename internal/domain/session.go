package domain

import "time"

// Phase is the lifecycle phase of a game session
type Phase string

const (
	// PhaseActive: the game is running, questions are being answered
	PhaseActive Phase = "active"
	// PhaseWonPendingClaim: the assistant announced a win, waiting for the
	// player to send a prize address
	PhaseWonPendingClaim Phase = "won_pending_claim"
	// PhaseWonIssued: the prize transaction has been submitted
	PhaseWonIssued Phase = "won_issued"
	// PhaseExhausted: the question budget was spent without a win
	PhaseExhausted Phase = "exhausted"
)

// DefaultMaxQuestions is the question budget per game
const DefaultMaxQuestions = 20

// Session is a snapshot of one player's game state
type Session struct {
	ID             string    `json:"id"`
	SecretWord     string    `json:"-"`
	QuestionsAsked int       `json:"questions_asked"`
	Won            bool      `json:"won"`
	Phase          Phase     `json:"phase"`
	MaxQuestions   int       `json:"max_questions"`
	CreatedAt      time.Time `json:"created_at"`
	LastSeen       time.Time `json:"last_seen"`
}

// QuestionsLeft returns the remaining question budget, never negative
func (s Session) QuestionsLeft() int {
	left := s.MaxQuestions - s.QuestionsAsked
	if left < 0 {
		return 0
	}
	return left
}
