package game

import (
	"errors"

	"github.com/mattsolo1/find-willa/pkg/ledger"
)

var (
	// ErrAlreadyInProgress means a game-root already exists at the start path.
	ErrAlreadyInProgress = errors.New("a game is already in progress")

	// ErrSessionNotFound means no ledger could be found for a path.
	ErrSessionNotFound = ledger.ErrSessionNotFound
)
