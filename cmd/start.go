package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/find-willa/cmd/config"
)

func NewStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [path]",
		Short: "Start a new game",
		Long: `Create a 'find-willa' folder inside path (default: the current directory),
fill it with random folders and files and hide Willa somewhere inside.

Fails if a game is already in progress there. Delete the 'find-willa' folder to start over.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				dir = args[0]
			}
			return runStart(svc, dir)
		},
	}
}
