// Package game wires tree generation, hiding and the ledger into the start,
// submit and status operations.
package game

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mattsolo1/find-willa/pkg/generator"
	"github.com/mattsolo1/find-willa/pkg/history"
	"github.com/mattsolo1/find-willa/pkg/ledger"
	"github.com/mattsolo1/find-willa/pkg/models"
	"github.com/mattsolo1/find-willa/pkg/names"
	"github.com/mattsolo1/find-willa/pkg/rng"
)

// Config holds the settings of a game
type Config struct {
	Generation models.GenerationConfig

	// Strategy is picked at random for every game when nil.
	Strategy *models.HidingStrategy

	// Word lists; the built-in ones are used when empty.
	DirNames  []string
	FileNames []string
}

// Service runs games on a filesystem
type Service struct {
	fs      afero.Fs
	cfg     Config
	rnd     rng.Source
	history *history.Registry
	logger  *logrus.Entry
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records started games and submissions in reg.
func WithHistory(reg *history.Registry) Option {
	return func(s *Service) { s.history = reg }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Service) { s.logger = logger }
}

// WithRand sets the random source, e.g. a seeded one.
func WithRand(rnd rng.Source) Option {
	return func(s *Service) { s.rnd = rnd }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a game service
func New(fs afero.Fs, cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Generation.Validate(); err != nil {
		return nil, err
	}
	if cfg.Strategy != nil && !cfg.Strategy.Valid() {
		return nil, fmt.Errorf("invalid hiding strategy %d", int(*cfg.Strategy))
	}

	s := &Service{
		fs:  fs,
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rng.NewRandom()
	}
	if s.logger == nil {
		s.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	s.logger = s.logger.WithField("component", "game")

	return s, nil
}

// StartResult describes a freshly started game.
type StartResult struct {
	Root     string
	Target   string
	Strategy models.HidingStrategy

	// Hideout is the target's directory relative to Root, Depth its depth.
	Hideout string
	Depth   int

	Dirs      int
	Files     int
	StartedAt time.Time
}

// Start creates a new game-root inside path and hides the target in it.
func (s *Service) Start(path string) (*StartResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	isDir, err := afero.IsDir(s.fs, abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	root := filepath.Join(abs, ledger.RootName)
	exists, err := afero.Exists(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if exists {
		return nil, ErrAlreadyInProgress
	}

	if err := s.fs.Mkdir(root, 0755); err != nil {
		return nil, fmt.Errorf("create game root: %w", err)
	}
	// The ledger goes first: its timestamp is the start of the game.
	if err := ledger.Start(s.fs, root); err != nil {
		return nil, err
	}

	gen, err := s.newGenerator()
	if err != nil {
		return nil, err
	}

	node, err := gen.Generate(root)
	if err != nil {
		return nil, fmt.Errorf("generate tree: %w", err)
	}

	location, err := gen.SelectLocation(root)
	if err != nil {
		return nil, fmt.Errorf("select location: %w", err)
	}

	strategy := s.strategy()
	target, err := gen.Hide(location, strategy)
	if err != nil {
		return nil, fmt.Errorf("hide target: %w", err)
	}

	if err := ledger.Finalize(s.fs, root, target); err != nil {
		return nil, err
	}

	rec, err := ledger.Read(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("verify ledger: %w", err)
	}

	hideout := node.Lookup(location)
	if hideout == nil {
		return nil, fmt.Errorf("location %s is not part of the generated tree", location)
	}

	dirs, files := node.Count()
	result := &StartResult{
		Root:      root,
		Target:    target,
		Strategy:  strategy,
		Hideout:   hideout.RelPath(),
		Depth:     hideout.Depth,
		Dirs:      dirs,
		Files:     files + 1,
		StartedAt: rec.StartedAt,
	}

	s.logger.WithFields(logrus.Fields{
		"root":     root,
		"strategy": strategy.String(),
		"hideout":  result.Hideout,
		"dirs":     result.Dirs,
		"files":    result.Files,
	}).Debug("game started")

	if s.history != nil {
		err := s.history.RecordStart(&models.GameRecord{
			Root:      root,
			Target:    target,
			Strategy:  strategy,
			StartedAt: rec.StartedAt,
		})
		if err != nil {
			s.logger.WithError(err).Warn("failed to record game in history")
		}
	}

	return result, nil
}

// SubmitResult is the verdict on a submitted path.
type SubmitResult struct {
	State     models.GameState
	Candidate string
	Root      string
	Elapsed   time.Duration
	Attempts  int
}

// Correct reports whether the submission found the target.
func (r *SubmitResult) Correct() bool {
	return r.State == models.GameStateWon
}

// Submit checks whether candidate is the hidden target of the game it lives in.
func (s *Service) Submit(candidate string) (*SubmitResult, error) {
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", candidate, err)
	}

	root, err := ledger.FindGameRoot(abs)
	if err != nil {
		return nil, err
	}

	rec, err := ledger.Read(s.fs, root)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &SubmitResult{
		State:     models.GameStateLost,
		Candidate: abs,
		Root:      root,
		Elapsed:   now.Sub(rec.StartedAt),
	}
	if abs == filepath.Clean(rec.Path) {
		result.State = models.GameStateWon
	}

	s.logger.WithFields(logrus.Fields{
		"candidate": abs,
		"state":     result.State,
	}).Debug("submission checked")

	if s.history != nil {
		g, err := s.history.RecordAttempt(rec.Path, result.Correct(), now)
		switch {
		case errors.Is(err, history.ErrGameNotFound):
			s.logger.Debug("submission does not belong to a recorded game")
		case err != nil:
			s.logger.WithError(err).Warn("failed to record attempt in history")
		default:
			result.Attempts = g.Attempts
		}
	}

	return result, nil
}

// StatusResult describes the game at a location.
type StatusResult struct {
	State   models.GameState
	Root    string
	Elapsed time.Duration
}

// Status reports whether a game is in progress at path. path may be the
// directory a game was started in or any path inside a game-root.
func (s *Service) Status(path string) (*StatusResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	root, err := ledger.FindGameRoot(abs)
	if err != nil {
		root = filepath.Join(abs, ledger.RootName)
	}

	rec, err := ledger.Read(s.fs, root)
	if errors.Is(err, ErrSessionNotFound) {
		return &StatusResult{State: models.GameStateNoGame}, nil
	}
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		State:   models.GameStateInProgress,
		Root:    root,
		Elapsed: s.now().Sub(rec.StartedAt),
	}, nil
}

// Close releases the history database, if any.
func (s *Service) Close() error {
	if s.history == nil {
		return nil
	}
	return s.history.Close()
}

func (s *Service) strategy() models.HidingStrategy {
	if s.cfg.Strategy != nil {
		return *s.cfg.Strategy
	}
	return models.HidingStrategy(s.rnd.IntN(models.NumStrategies))
}

// newGenerator returns a generator with fresh name pools, so every game
// starts from the full word lists.
func (s *Service) newGenerator() (*generator.Generator, error) {
	dirList := s.cfg.DirNames
	if len(dirList) == 0 {
		dirList = names.DirNames()
	}
	fileList := s.cfg.FileNames
	if len(fileList) == 0 {
		fileList = names.FileNames()
	}

	markers := generator.MarkerNames()
	dirList = names.Without(dirList, markers...)
	fileList = names.Without(fileList, markers...)

	return generator.New(s.fs, s.cfg.Generation, s.rnd,
		generator.WithNamePools(names.NewPool(dirList, s.rnd), names.NewPool(fileList, s.rnd)),
		generator.WithLogger(s.logger),
	)
}
