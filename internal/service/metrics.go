package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TurnsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordmint_turns_total",
			Help: "Total conversation turns processed, by orchestrator decision",
		},
		[]string{"decision"},
	)
	WinsAnnounced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordmint_wins_announced_total",
			Help: "Total win announcements detected in assistant replies",
		},
	)
	PrizesIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordmint_prizes_issued_total",
			Help: "Total prize transactions submitted to the minting service",
		},
	)
	PrizeIssueFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordmint_prize_issue_failures_total",
			Help: "Total minting calls that failed",
		},
	)
	ConfirmTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordmint_confirm_timeouts_total",
			Help: "Total prize confirmations that exceeded the polling deadline",
		},
	)
	GamesExhausted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordmint_games_exhausted_total",
			Help: "Total games that ran out of questions without a win",
		},
	)
)

func init() {
	prometheus.MustRegister(TurnsProcessed)
	prometheus.MustRegister(WinsAnnounced)
	prometheus.MustRegister(PrizesIssued)
	prometheus.MustRegister(PrizeIssueFailures)
	prometheus.MustRegister(ConfirmTimeouts)
	prometheus.MustRegister(GamesExhausted)
}
