package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/find-willa/cmd/config"
	"github.com/mattsolo1/find-willa/pkg/history"
)

var historyUlog = grovelogging.NewUnifiedLogger("find-willa.cmd.history")

func NewHistoryCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously played games",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := history.NewRegistry(config.Current().DataDir)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer reg.Close()

			games, err := reg.List(limit)
			if err != nil {
				return fmt.Errorf("list games: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(games, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal history to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(games) == 0 {
				historyUlog.Info("No games played").
					Field("db", reg.Path()).
					Pretty(fmt.Sprintf("No games played yet (history kept in %s).", reg.Path())).
					PrettyOnly().
					Emit()
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tSTRATEGY\tATTEMPTS\tRESULT\tTIME\tROOT")
			for _, g := range games {
				result, took := "in progress", "-"
				if g.Won {
					result = "found"
					took = g.Duration().Round(time.Second).String()
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					g.StartedAt.Local().Format("2006-01-02 15:04"),
					g.Strategy.Title(),
					g.Attempts,
					result,
					took,
					g.Root,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of games to show (0 = all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
