// Package history keeps a small SQLite record of played games.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/find-willa/pkg/models"
)

// ErrGameNotFound is returned when no recorded game matches a lookup.
var ErrGameNotFound = errors.New("game not found in history")

// Registry stores game records
type Registry struct {
	db      *sql.DB
	dataDir string
}

const dbName = "history.db"

// NewRegistry opens (and if needed creates) the history database in dataDir
func NewRegistry(dataDir string) (*Registry, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbName)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := &Registry{
		db:      db,
		dataDir: dataDir,
	}

	if err := r.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history: %w", err)
	}

	return r, nil
}

// init creates the database schema
func (r *Registry) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		target TEXT NOT NULL,
		strategy INTEGER NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP,
		attempts INTEGER NOT NULL DEFAULT 0,
		won BOOLEAN NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_games_target ON games(target);
	`

	_, err := r.db.Exec(schema)
	return err
}

// RecordStart stores a newly started game. An ID is assigned when empty.
func (r *Registry) RecordStart(g *models.GameRecord) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.StartedAt.IsZero() {
		g.StartedAt = time.Now()
	}

	query := `
	INSERT INTO games (id, root, target, strategy, started_at, attempts, won)
	VALUES (?, ?, ?, ?, ?, 0, 0)
	`

	_, err := r.db.Exec(query, g.ID, g.Root, g.Target, int(g.Strategy), g.StartedAt)
	return err
}

// RecordAttempt counts a submission against the most recent unfinished game
// hiding target. A correct submission finishes the game.
func (r *Registry) RecordAttempt(target string, correct bool, at time.Time) (*models.GameRecord, error) {
	g, err := r.scanOne(`
	SELECT id, root, target, strategy, started_at, finished_at, attempts, won
	FROM games WHERE target = ? AND finished_at IS NULL
	ORDER BY started_at DESC LIMIT 1
	`, target)
	if err != nil {
		return nil, err
	}

	g.Attempts++
	if correct {
		g.Won = true
		g.FinishedAt = &at
	}

	var finished sql.NullTime
	if g.FinishedAt != nil {
		finished = sql.NullTime{Time: *g.FinishedAt, Valid: true}
	}

	_, err = r.db.Exec(
		"UPDATE games SET attempts = ?, won = ?, finished_at = ? WHERE id = ?",
		g.Attempts, g.Won, finished, g.ID,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Get retrieves a game by ID
func (r *Registry) Get(id string) (*models.GameRecord, error) {
	return r.scanOne(`
	SELECT id, root, target, strategy, started_at, finished_at, attempts, won
	FROM games WHERE id = ?
	`, id)
}

// List returns up to limit games, newest first. A limit of zero or less
// returns everything.
func (r *Registry) List(limit int) ([]*models.GameRecord, error) {
	query := `
	SELECT id, root, target, strategy, started_at, finished_at, attempts, won
	FROM games ORDER BY started_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*models.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// Path returns the location of the history database.
func (r *Registry) Path() string {
	return filepath.Join(r.dataDir, dbName)
}

// Close closes the history database
func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) scanOne(query string, args ...any) (*models.GameRecord, error) {
	g, err := scanGame(r.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrGameNotFound
	}
	return g, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(s scanner) (*models.GameRecord, error) {
	g := &models.GameRecord{}
	var (
		strategy int
		finished sql.NullTime
	)
	err := s.Scan(
		&g.ID, &g.Root, &g.Target, &strategy,
		&g.StartedAt, &finished, &g.Attempts, &g.Won,
	)
	if err != nil {
		return nil, err
	}

	g.Strategy = models.HidingStrategy(strategy)
	if finished.Valid {
		t := finished.Time
		g.FinishedAt = &t
	}
	return g, nil
}
