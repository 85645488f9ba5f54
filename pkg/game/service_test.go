package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/find-willa/pkg/history"
	"github.com/mattsolo1/find-willa/pkg/ledger"
	"github.com/mattsolo1/find-willa/pkg/models"
	"github.com/mattsolo1/find-willa/pkg/names"
	"github.com/mattsolo1/find-willa/pkg/rng"
)

const gameDir = "/tmp/game"

func strategyPtr(s models.HidingStrategy) *models.HidingStrategy { return &s }

func newTestService(t *testing.T, cfg Config, seed uint64, opts ...Option) (afero.Fs, *Service) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(gameDir, 0755))

	opts = append([]Option{WithRand(rng.New(seed))}, opts...)
	svc, err := New(fs, cfg, opts...)
	require.NoError(t, err)
	return fs, svc
}

// regularFiles lists every non-ledger file below root.
func regularFiles(t *testing.T, fs afero.Fs, root string) []string {
	t.Helper()
	var files []string
	require.NoError(t, afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && info.Name() != ledger.FileName {
			files = append(files, path)
		}
		return nil
	}))
	return files
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := Config{Generation: models.GenerationConfig{MaxNestLevel: -1}}
	_, err := New(afero.NewMemMapFs(), cfg)
	assert.Error(t, err)

	cfg = Config{Generation: models.DefaultGenerationConfig(), Strategy: strategyPtr(7)}
	_, err = New(afero.NewMemMapFs(), cfg)
	assert.Error(t, err)
}

func TestStartThenSubmit(t *testing.T) {
	for s := 0; s < models.NumStrategies; s++ {
		strategy := models.HidingStrategy(s)
		t.Run(strategy.String(), func(t *testing.T) {
			cfg := Config{Generation: models.DefaultGenerationConfig(), Strategy: &strategy}
			fs, svc := newTestService(t, cfg, uint64(100+s))

			res, err := svc.Start(gameDir)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(gameDir, ledger.RootName), res.Root)
			assert.Equal(t, strategy, res.Strategy)

			exists, err := afero.Exists(fs, res.Target)
			require.NoError(t, err)
			assert.True(t, exists)

			rec, err := ledger.Read(fs, res.Root)
			require.NoError(t, err)
			assert.Equal(t, res.Target, rec.Path)

			won, err := svc.Submit(res.Target)
			require.NoError(t, err)
			assert.Equal(t, models.GameStateWon, won.State)
			assert.True(t, won.Correct())

			for _, other := range regularFiles(t, fs, res.Root) {
				if other == res.Target {
					continue
				}
				lost, err := svc.Submit(other)
				require.NoError(t, err)
				assert.Equal(t, models.GameStateLost, lost.State, other)
			}
		})
	}
}

func TestStartAlreadyInProgress(t *testing.T) {
	_, svc := newTestService(t, Config{Generation: models.DefaultGenerationConfig()}, 1)

	_, err := svc.Start(gameDir)
	require.NoError(t, err)

	_, err = svc.Start(gameDir)
	assert.ErrorIs(t, err, ErrAlreadyInProgress)
}

func TestStartRequiresDirectory(t *testing.T) {
	fs, svc := newTestService(t, Config{Generation: models.DefaultGenerationConfig()}, 1)
	require.NoError(t, afero.WriteFile(fs, "/tmp/game/file.txt", nil, 0644))

	_, err := svc.Start("/tmp/game/file.txt")
	assert.Error(t, err)

	_, err = svc.Start("/nowhere")
	assert.Error(t, err)
}

func TestStartFlatTree(t *testing.T) {
	cfg := Config{
		Generation: models.GenerationConfig{ComplexityLevel: 1.3, MaxNestLevel: 0, MinimumFolders: 1, MinimumFilesPerFolder: 2},
		Strategy:   strategyPtr(models.StrategyPlain),
	}
	fs, svc := newTestService(t, cfg, 17)

	res, err := svc.Start(gameDir)
	require.NoError(t, err)
	assert.Zero(t, res.Dirs)

	entries, err := afero.ReadDir(fs, res.Root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir(), "unexpected directory %s", e.Name())
	}
	assert.Equal(t, res.Root, filepath.Dir(res.Target))
	assert.Equal(t, ".", res.Hideout)
	assert.Zero(t, res.Depth)
	assert.GreaterOrEqual(t, len(regularFiles(t, fs, res.Root)), 3)
}

func TestStartReportsHideout(t *testing.T) {
	cfg := Config{Generation: models.GenerationConfig{ComplexityLevel: 1, MaxNestLevel: 3, MinimumFolders: 2, MinimumFilesPerFolder: 1}}
	for seed := uint64(1); seed <= 10; seed++ {
		_, svc := newTestService(t, cfg, seed)

		res, err := svc.Start(gameDir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(res.Root, res.Hideout), filepath.Dir(res.Target))
		assert.LessOrEqual(t, res.Depth, cfg.Generation.MaxNestLevel)
		if res.Hideout == "." {
			assert.Zero(t, res.Depth)
		} else {
			assert.Len(t, strings.Split(res.Hideout, string(filepath.Separator)), res.Depth)
		}
	}
}

func TestStartIgnoresMarkerNamesInWordLists(t *testing.T) {
	for _, strategy := range []models.HidingStrategy{models.StrategyPlain, models.StrategyReversedName} {
		t.Run(strategy.String(), func(t *testing.T) {
			cfg := Config{
				Generation: models.GenerationConfig{ComplexityLevel: 0, MaxNestLevel: 0, MinimumFilesPerFolder: 2},
				Strategy:   strategyPtr(strategy),
				FileNames:  []string{"Willa", "alliW"},
			}
			fs, svc := newTestService(t, cfg, 2)

			res, err := svc.Start(gameDir)
			require.NoError(t, err)

			files := regularFiles(t, fs, res.Root)
			assert.Len(t, files, 3)
			for _, f := range files {
				if f != res.Target {
					assert.Len(t, filepath.Base(f), names.RandomNameLength, "marker names must not be used as decoys")
				}
			}
		})
	}
}

func TestStartHidesExactlyOneTarget(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		cfg := Config{Generation: models.DefaultGenerationConfig(), Strategy: strategyPtr(models.StrategyReversedName)}
		fs, svc := newTestService(t, cfg, seed)

		res, err := svc.Start(gameDir)
		require.NoError(t, err)
		assert.Equal(t, "alliW", filepath.Base(res.Target))

		matches := 0
		for _, f := range regularFiles(t, fs, res.Root) {
			if filepath.Base(f) == "alliW" {
				matches++
			}
		}
		assert.Equal(t, 1, matches)
		assert.Len(t, regularFiles(t, fs, res.Root), res.Files)
	}
}

func TestRandomStrategyIsUsed(t *testing.T) {
	seen := make(map[models.HidingStrategy]bool)
	for seed := uint64(1); seed <= 60; seed++ {
		_, svc := newTestService(t, Config{Generation: models.DefaultGenerationConfig()}, seed)
		res, err := svc.Start(gameDir)
		require.NoError(t, err)
		seen[res.Strategy] = true
	}
	assert.Len(t, seen, models.NumStrategies)
}

func TestSubmitSessionNotFound(t *testing.T) {
	fs, svc := newTestService(t, Config{Generation: models.DefaultGenerationConfig()}, 1)

	_, err := svc.Submit("/tmp/game/elsewhere/Willa")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	root := filepath.Join(gameDir, ledger.RootName)
	require.NoError(t, fs.MkdirAll(root, 0755))
	_, err = svc.Submit(filepath.Join(root, "Willa"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitReportsElapsedTime(t *testing.T) {
	offset := 42 * time.Second
	clock := func() time.Time { return time.Now().Add(offset) }
	_, svc := newTestService(t, Config{Generation: models.DefaultGenerationConfig()}, 3, WithClock(clock))

	res, err := svc.Start(gameDir)
	require.NoError(t, err)

	got, err := svc.Submit(res.Target)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Elapsed, offset)
	assert.Less(t, got.Elapsed, offset+time.Minute)
}

func TestStatus(t *testing.T) {
	_, svc := newTestService(t, Config{Generation: models.DefaultGenerationConfig()}, 5)

	st, err := svc.Status(gameDir)
	require.NoError(t, err)
	assert.Equal(t, models.GameStateNoGame, st.State)

	res, err := svc.Start(gameDir)
	require.NoError(t, err)

	for _, path := range []string{gameDir, res.Root, res.Target} {
		st, err := svc.Status(path)
		require.NoError(t, err)
		assert.Equal(t, models.GameStateInProgress, st.State, path)
		assert.Equal(t, res.Root, st.Root)
	}
}

func TestHistoryIsRecorded(t *testing.T) {
	reg, err := history.NewRegistry(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	defer reg.Close()

	fs, svc := newTestService(t, Config{Generation: models.DefaultGenerationConfig()}, 8, WithHistory(reg))

	res, err := svc.Start(gameDir)
	require.NoError(t, err)

	var wrong string
	for _, f := range regularFiles(t, fs, res.Root) {
		if f != res.Target {
			wrong = f
			break
		}
	}
	require.NotEmpty(t, wrong)

	lost, err := svc.Submit(wrong)
	require.NoError(t, err)
	assert.Equal(t, 1, lost.Attempts)

	won, err := svc.Submit(res.Target)
	require.NoError(t, err)
	assert.Equal(t, 2, won.Attempts)

	games, err := reg.List(0)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.True(t, games[0].Won)
	assert.Equal(t, res.Target, games[0].Target)
	assert.Equal(t, res.Strategy, games[0].Strategy)
}
