package cmd

import (
	"fmt"
	"os"
	"time"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/find-willa/cmd/config"
	"github.com/mattsolo1/find-willa/pkg/models"
)

var statusUlog = grovelogging.NewUnifiedLogger("find-willa.cmd.status")

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [path]",
		Short: "Show whether a game is in progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			path, err := os.Getwd()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path = args[0]
			}

			st, err := svc.Status(path)
			if err != nil {
				return err
			}

			if st.State == models.GameStateNoGame {
				statusUlog.Info("No game in progress").
					Field("path", path).
					Pretty("No game in progress. Start one with 'find-willa start'.").
					PrettyOnly().
					Emit()
				return nil
			}

			statusUlog.Info("Game in progress").
				Field("root", st.Root).
				Field("elapsed_seconds", st.Elapsed.Seconds()).
				Pretty(fmt.Sprintf("A game is in progress in %s (running for %s).", st.Root, st.Elapsed.Round(time.Second))).
				PrettyOnly().
				Emit()
			return nil
		},
	}
}
