package cmd

import (
	"errors"
	"fmt"
	"os"

	grovelogging "github.com/mattsolo1/grove-core/logging"

	"github.com/mattsolo1/find-willa/pkg/game"
	"github.com/mattsolo1/find-willa/pkg/ledger"
)

var playUlog = grovelogging.NewUnifiedLogger("find-willa.cmd.play")

// runStart starts a game in dir and reports it.
func runStart(svc *game.Service, dir string) error {
	res, err := svc.Start(dir)
	if errors.Is(err, game.ErrAlreadyInProgress) {
		return fmt.Errorf("%w: finish it, delete the entire folder '%s' and try again", err, ledger.RootName)
	}
	if err != nil {
		return err
	}

	playUlog.Success("Game started").
		Field("root", res.Root).
		Field("dirs", res.Dirs).
		Field("files", res.Files).
		Pretty(fmt.Sprintf("The game has started. Willa should be hiding somewhere in the '%s' folder.", ledger.RootName)).
		PrettyOnly().
		Emit()
	return nil
}

// runSubmit checks path against the hidden target and reports the verdict.
// A wrong guess is not an error.
func runSubmit(svc *game.Service, path string) error {
	res, err := svc.Submit(path)
	if err != nil {
		return err
	}

	if res.Correct() {
		playUlog.Success("Willa found").
			Field("path", res.Candidate).
			Field("elapsed_seconds", res.Elapsed.Seconds()).
			Pretty(fmt.Sprintf("Congratulations! You've found Willa! :)\nIt took you: %.3f sec.", res.Elapsed.Seconds())).
			PrettyOnly().
			Emit()
		return nil
	}

	playUlog.Info("Not Willa").
		Field("path", res.Candidate).
		Pretty("Sorry, that's not Willa. :(\nKeep looking!").
		PrettyOnly().
		Emit()
	return nil
}

// isFile reports whether path exists and is not a directory.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
