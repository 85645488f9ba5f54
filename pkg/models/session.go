package models

import "time"

// GameState is the lifecycle state of a game-root.
type GameState string

const (
	GameStateNoGame     GameState = "no-game"
	GameStateInProgress GameState = "in-progress"
	GameStateWon        GameState = "won"
	GameStateLost       GameState = "lost"
)

// TargetRecord is what the ledger remembers about a session.
type TargetRecord struct {
	Path      string    `json:"path" yaml:"path"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
}

// GameRecord is a finished or running game as kept in the history database.
type GameRecord struct {
	ID         string         `json:"id"`
	Root       string         `json:"root"`
	Target     string         `json:"target"`
	Strategy   HidingStrategy `json:"strategy"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Attempts   int            `json:"attempts"`
	Won        bool           `json:"won"`
}

// Duration returns how long the game took, or zero while unfinished.
func (g *GameRecord) Duration() time.Duration {
	if g.FinishedAt == nil {
		return 0
	}
	return g.FinishedAt.Sub(g.StartedAt)
}
