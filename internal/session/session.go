package session

import (
	"context"
	"sync"
	"time"

	"wordmint/internal/domain"
	"wordmint/internal/game"
	"wordmint/internal/logger"
)

// WordProvider supplies a fresh secret word when a new game starts
type WordProvider interface {
	SecretWord(ctx context.Context) (string, error)
}

// Decision tells the orchestrator how to handle an inbound turn
type Decision int

const (
	// DecisionAsk: answer the question through the model
	DecisionAsk Decision = iota
	// DecisionClaim: the player is supplying a prize address
	DecisionClaim
	// DecisionAlreadyWon: the prize was already issued for this session
	DecisionAlreadyWon
	// DecisionExhausted: the question budget was just spent
	DecisionExhausted
)

// Session is one player's game. All state transitions go through its methods
// under an internal lock; callers never hold the lock across network calls.
type Session struct {
	id           string
	maxQuestions int

	// turnMu serializes whole turns: it is held for the full pipeline of one
	// inbound turn, including the prize workflow, so turns for one session
	// never overlap. Distinct from mu, which only guards state transitions.
	turnMu sync.Mutex

	mu             sync.Mutex
	secretWord     string
	questionsAsked int
	won            bool
	phase          domain.Phase
	createdAt      time.Time
	lastSeen       time.Time
}

func newSession(id string, maxQuestions int) *Session {
	now := time.Now()
	return &Session{
		id:           id,
		maxQuestions: maxQuestions,
		phase:        domain.PhaseActive,
		createdAt:    now,
		lastSeen:     now,
	}
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// LockTurn blocks until no other turn is in flight for this session. Callers
// must release with UnlockTurn once the turn is fully processed. Only turns
// for the same session wait on each other.
func (s *Session) LockTurn() { s.turnMu.Lock() }

// UnlockTurn releases the turn pipeline for the next inbound turn
func (s *Session) UnlockTurn() { s.turnMu.Unlock() }

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() domain.Session {
	return domain.Session{
		ID:             s.id,
		SecretWord:     s.secretWord,
		QuestionsAsked: s.questionsAsked,
		Won:            s.won,
		Phase:          s.phase,
		MaxQuestions:   s.maxQuestions,
		CreatedAt:      s.createdAt,
		LastSeen:       s.lastSeen,
	}
}

// BeginTurn applies per-turn bookkeeping atomically and decides how the
// inbound turn should be handled. The question counter only ever grows
// within a game; it is cleared together with the secret word when the
// budget is spent without a win.
func (s *Session) BeginTurn() (Decision, domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.phase == domain.PhaseWonIssued {
		return DecisionAlreadyWon, s.snapshotLocked()
	}

	s.questionsAsked++
	if s.questionsAsked > s.maxQuestions && !s.won {
		// Budget spent. Report exhaustion and leave the session fresh for
		// the next round.
		s.secretWord = ""
		s.questionsAsked = 0
		s.won = false
		s.phase = domain.PhaseActive
		snap := s.snapshotLocked()
		snap.Phase = domain.PhaseExhausted
		return DecisionExhausted, snap
	}

	if s.phase == domain.PhaseWonPendingClaim && !s.won {
		return DecisionClaim, s.snapshotLocked()
	}
	return DecisionAsk, s.snapshotLocked()
}

// BeginClaim flips the session to won before any network call is made, so a
// second concurrent claim cannot issue a second prize. Returns false when
// the claim window has already closed.
func (s *Session) BeginClaim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseWonPendingClaim || s.won {
		return false
	}
	s.won = true
	s.phase = domain.PhaseWonIssued
	return true
}

// FailClaim reopens the claim window after the minting call failed. The
// player keeps the win announcement and may resend an address.
func (s *Session) FailClaim() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == domain.PhaseWonIssued {
		s.won = false
		s.phase = domain.PhaseWonPendingClaim
	}
}

// MarkAnnounced records that the assistant's last reply announced a win and
// asked for a claim address.
func (s *Session) MarkAnnounced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == domain.PhaseActive && !s.won {
		s.phase = domain.PhaseWonPendingClaim
	}
}

// Reset clears the game for a fresh round
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secretWord = ""
	s.questionsAsked = 0
	s.won = false
	s.phase = domain.PhaseActive
}

// EnsureSecretWord returns the game's secret word, choosing one on first
// use. Provider failures degrade to the fixed default word; this never
// errors and never blocks a turn on word generation problems.
func (s *Session) EnsureSecretWord(ctx context.Context, words WordProvider) string {
	s.mu.Lock()
	if s.secretWord != "" {
		w := s.secretWord
		s.mu.Unlock()
		return w
	}
	s.mu.Unlock()

	word := game.DefaultSecretWord
	if words != nil {
		w, err := words.SecretWord(ctx)
		switch {
		case err != nil:
			logger.Warn("word generation failed, using default", "session", s.id, "err", err)
		case w != "":
			word = w
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.secretWord == "" {
		s.secretWord = word
	}
	return s.secretWord
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
