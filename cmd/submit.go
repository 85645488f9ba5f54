package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/find-willa/cmd/config"
)

func NewSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <path-to-willa>",
		Short: "Submit the file you think is Willa",
		Long: `Check whether the given file is Willa.

A wrong guess still exits with status 0; only a missing game is an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			return runSubmit(svc, args[0])
		},
	}
}
