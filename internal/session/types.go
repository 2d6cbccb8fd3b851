// Package session owns live games. Each session holds exactly one Game and
// serializes every mutation of it, so one period is never computed twice.
package session

import (
	"errors"
	"time"
)

// ID uniquely identifies a player session (CLI run or SSH connection).
type ID string

// Errors returned by sessions and the manager.
var (
	ErrBusy     = errors.New("session: a period is already being simulated")
	ErrNotFound = errors.New("session: not found")
	ErrClosed   = errors.New("session: closed")
)

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeVictory  Outcome = "victory"
	OutcomeBankrupt Outcome = "bankrupt"
	OutcomeQuit     Outcome = "quit"
)

// Config holds configuration for the manager.
type Config struct {
	IdleTimeout   time.Duration // How long before an untouched session is closed
	CleanupPeriod time.Duration // How often to look for idle sessions
	EventBuffer   int           // Per-session event buffer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:   30 * time.Minute,
		CleanupPeriod: time.Minute,
		EventBuffer:   64,
	}
}

// ResultSaver persists finished runs.
// This allows the manager to record results without depending on the storage package.
type ResultSaver interface {
	SaveRunResult(result RunResult) error
}

// RunResult contains a finished run for persistence.
type RunResult struct {
	SessionID  string
	BusinessID string
	ProfileID  string
	Player     string
	Score      int
	Periods    int
	Outcome    Outcome
}
