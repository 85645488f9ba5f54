package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/find-willa/cmd/config"
)

// NewRootCmd returns the find-willa command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "find-willa [path]",
		Short: "Hide Willa in a generated folder tree and go looking for her",
		Long: `find-willa builds a random tree of folders and files and hides Willa somewhere in it.

All paths can be relative.

Examples:
  find-willa                      # Start a game in the current directory
  find-willa ~/games              # Start a game in ~/games
  find-willa find-willa/Music/x   # Submit an answer (any existing file)
  find-willa start -s 1 -n 2      # Reversed name, at most two levels deep
  find-willa submit ./find-willa/Documents/Willa`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if len(args) == 1 && isFile(args[0]) {
				return runSubmit(svc, args[0])
			}

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

	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(NewStartCmd())
	rootCmd.AddCommand(NewSubmitCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
