package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-core/version"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/find-willa/pkg/models"
	"github.com/mattsolo1/find-willa/pkg/names"
)

var versionUlog = grovelogging.NewUnifiedLogger("find-willa.cmd.version")

// gameInfo summarizes what this build ships with.
type gameInfo struct {
	Strategies []string `json:"strategies"`
	DirNames   int      `json:"dir_names"`
	FileNames  int      `json:"file_names"`
}

func builtinGameInfo() gameInfo {
	gi := gameInfo{
		DirNames:  len(names.DirNames()),
		FileNames: len(names.FileNames()),
	}
	for i := 0; i < models.NumStrategies; i++ {
		gi.Strategies = append(gi.Strategies, models.HidingStrategy(i).String())
	}
	return gi
}

func (gi gameInfo) String() string {
	return fmt.Sprintf("Hiding strategies: %s\nBuilt-in word lists: %d folder names, %d file names",
		strings.Join(gi.Strategies, ", "), gi.DirNames, gi.FileNames)
}

func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display the build information for find-willa along with its hiding strategies and built-in word lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			gi := builtinGameInfo()

			pretty := info.String() + "\n" + gi.String()
			if jsonOutput {
				jsonData, err := json.MarshalIndent(struct {
					Build any      `json:"build"`
					Game  gameInfo `json:"game"`
				}{info, gi}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info to JSON: %w", err)
				}
				pretty = string(jsonData)
			}

			versionUlog.Info("Version info").
				Field("version", info.Version).
				Field("commit", info.Commit).
				Field("strategies", len(gi.Strategies)).
				Field("dir_names", gi.DirNames).
				Field("file_names", gi.FileNames).
				Pretty(pretty).
				PrettyOnly().
				Log(context.Background())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")

	return cmd
}
