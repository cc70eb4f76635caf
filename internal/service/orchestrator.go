package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"wordmint/internal/domain"
	"wordmint/internal/game"
	"wordmint/internal/logger"
	"wordmint/internal/mint"
	"wordmint/internal/session"
)

var (
	ErrEmptyConversation = errors.New("conversation is empty")
	ErrLastTurnNotUser   = errors.New("last turn must be from the user")
)

// Fixed player-facing messages
const (
	msgAlreadyWon     = "You already won! Thanks for playing!"
	msgExhausted      = "You've run out of questions! So close. Try again!"
	msgInvalidAddress = "That doesn't look like an Ethereum address. Please send an address like 0x1234... to receive your prize."
	msgIssueFailed    = "Something went wrong while sending your prize. Nothing was minted. Please send your address again."
	msgPrizeSent      = "Thank you! Your prize has been sent to %s. See it at %s"
	msgPrizeSentNoTx  = "Thank you! Your prize has been sent to %s, but we are unable to retrieve the transaction details at the moment."
)

// TokenStream yields completion chunks. Next returns io.EOF when the
// completion is finished.
type TokenStream interface {
	Next() (string, error)
}

// Completer is the model-completion capability: an ordered turn list in, a
// token stream out.
type Completer interface {
	Stream(ctx context.Context, turns []domain.ConversationTurn) (TokenStream, error)
}

// Issuer submits the prize transaction. A single attempt per claim.
type Issuer interface {
	Issue(ctx context.Context, req domain.PrizeRequest) (domain.TransactionRecord, error)
}

// Confirmer polls for the transaction's on-chain hash within a bound,
// returning the record with the hash attached.
type Confirmer interface {
	WaitForHash(ctx context.Context, rec domain.TransactionRecord) (domain.TransactionRecord, error)
}

// Reply is the orchestrator's answer to one inbound turn: fixed text or a
// live token stream, never both.
type Reply struct {
	Text   string
	Stream TokenStream
}

// Orchestrator sequences the game components per inbound conversational
// turn and drives the prize-issuance workflow on a win claim.
type Orchestrator struct {
	sessions  *session.Store
	completer Completer
	words     session.WordProvider
	issuer    Issuer
	confirmer Confirmer
	prizeWait time.Duration
}

// NewOrchestrator wires the game components together. prizeWait bounds the
// whole detached prize workflow (issue + confirm) per claim.
func NewOrchestrator(sessions *session.Store, completer Completer, words session.WordProvider, issuer Issuer, confirmer Confirmer, prizeWait time.Duration) *Orchestrator {
	if prizeWait <= 0 {
		prizeWait = mint.DefaultConfirmTimeout + 30*time.Second
	}
	return &Orchestrator{
		sessions:  sessions,
		completer: completer,
		words:     words,
		issuer:    issuer,
		confirmer: confirmer,
		prizeWait: prizeWait,
	}
}

// ProcessTurn handles one inbound conversational turn for a session
func (o *Orchestrator) ProcessTurn(ctx context.Context, sessionID string, turns []domain.ConversationTurn) (*Reply, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyConversation
	}
	last, _ := domain.LastTurn(turns)
	if last.Role != domain.RoleUser {
		return nil, ErrLastTurnNotUser
	}

	sess := o.sessions.GetOrCreate(sessionID)

	// One turn at a time per session: a concurrent request for the same
	// session waits here until the previous turn has fully run, including
	// its prize workflow. Other sessions are unaffected.
	sess.LockTurn()
	defer sess.UnlockTurn()

	decision, snap := sess.BeginTurn()
	TurnsProcessed.WithLabelValues(decisionLabel(decision)).Inc()

	switch decision {
	case session.DecisionAlreadyWon:
		return &Reply{Text: msgAlreadyWon}, nil
	case session.DecisionExhausted:
		GamesExhausted.Inc()
		logger.Info("game exhausted", "session", sess.ID())
		return &Reply{Text: msgExhausted}, nil
	case session.DecisionClaim:
		return o.handleClaim(ctx, sess, last.Content)
	default:
		return o.handleQuestion(ctx, sess, snap, turns)
	}
}

// handleClaim runs the prize workflow for a win claim. The session is
// flipped to won before any network call; an issue failure rolls it back so
// the player can resend an address.
func (o *Orchestrator) handleClaim(ctx context.Context, sess *session.Session, content string) (*Reply, error) {
	recipient := game.ClaimedAddress(content)
	if !mint.ValidateAddress(recipient) {
		return &Reply{Text: msgInvalidAddress}, nil
	}

	if !sess.BeginClaim() {
		return &Reply{Text: msgAlreadyWon}, nil
	}

	// The workflow must outlive a client abort: its outcome is recorded on
	// the session even when no response can be delivered.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.prizeWait)
	defer cancel()

	rec, err := o.issuer.Issue(wctx, mint.NewPrizeRequest(recipient))
	if err != nil {
		PrizeIssueFailures.Inc()
		sess.FailClaim()
		logger.Error("prize issuance failed", "session", sess.ID(), "recipient", recipient, "err", err)
		return &Reply{Text: msgIssueFailed}, nil
	}
	PrizesIssued.Inc()
	logger.Info("prize transaction submitted", "session", sess.ID(), "tx", rec.TransactionID, "recipient", recipient)

	confirmed, err := o.confirmer.WaitForHash(wctx, rec)
	if err != nil {
		if errors.Is(err, mint.ErrConfirmTimeout) {
			ConfirmTimeouts.Inc()
		}
		logger.Warn("prize confirmation unavailable", "session", sess.ID(), "tx", rec.TransactionID, "err", err)
		return &Reply{Text: fmt.Sprintf(msgPrizeSentNoTx, recipient)}, nil
	}

	return &Reply{Text: fmt.Sprintf(msgPrizeSent, recipient, mint.ExplorerTxURL(confirmed.TransactionHash))}, nil
}

// handleQuestion relays the turn to the model under the game's system
// prompt and scans the reply for a win announcement once it completes.
func (o *Orchestrator) handleQuestion(ctx context.Context, sess *session.Session, snap domain.Session, turns []domain.ConversationTurn) (*Reply, error) {
	word := sess.EnsureSecretWord(ctx, o.words)
	system := game.ComposeSystemPrompt(word, snap)

	combined := make([]domain.ConversationTurn, 0, len(turns)+1)
	combined = append(combined, system)
	combined = append(combined, turns...)

	stream, err := o.completer.Stream(ctx, combined)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	return &Reply{Stream: &announcementScanner{inner: stream, sess: sess}}, nil
}

func decisionLabel(d session.Decision) string {
	switch d {
	case session.DecisionClaim:
		return "claim"
	case session.DecisionAlreadyWon:
		return "already_won"
	case session.DecisionExhausted:
		return "exhausted"
	default:
		return "ask"
	}
}

// announcementScanner relays completion tokens while accumulating the reply
// and checks after every token whether the assistant just announced a win.
// Scanning as tokens arrive means an abandoned stream still moves the
// session to the claim phase once the congratulation has been emitted.
type announcementScanner struct {
	inner    TokenStream
	sess     *session.Session
	buf      strings.Builder
	recorded bool
}

func (a *announcementScanner) Next() (string, error) {
	tok, err := a.inner.Next()
	if err == nil {
		a.buf.WriteString(tok)
		a.scan()
		return tok, nil
	}

	if errors.Is(err, io.EOF) {
		a.scan()
	}
	return "", err
}

func (a *announcementScanner) scan() {
	if a.recorded || !game.ContainsWinAnnouncement(a.buf.String()) {
		return
	}
	a.recorded = true
	WinsAnnounced.Inc()
	a.sess.MarkAnnounced()
	logger.Info("win announced", "session", a.sess.ID())
}
