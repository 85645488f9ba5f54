package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mattsolo1/find-willa/pkg/game"
	"github.com/mattsolo1/find-willa/pkg/history"
	"github.com/mattsolo1/find-willa/pkg/models"
	"github.com/mattsolo1/find-willa/pkg/names"
	"github.com/mattsolo1/find-willa/pkg/rng"
)

var cfgFile string

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"strategy":                 "strategy",
	"complexity-level":         "complexity_level",
	"max-nest-level":           "max_nest_level",
	"minimum-folders":          "minimum_folders",
	"minimum-files-per-folder": "minimum_files_per_folder",
	"nest-threshold":           "nest_threshold",
	"seed":                     "seed",
	"no-history":               "no_history",
	"verbose":                  "verbose",
}

// Settings is the effective configuration, as printed by `find-willa config`.
type Settings struct {
	Generation    models.GenerationConfig `yaml:"generation"`
	Strategy      int                     `yaml:"strategy"`
	Seed          uint64                  `yaml:"seed"`
	DataDir       string                  `yaml:"data_dir"`
	History       bool                    `yaml:"history"`
	DirNamesFile  string                  `yaml:"dir_names_file,omitempty"`
	FileNamesFile string                  `yaml:"file_names_file,omitempty"`
	ConfigFile    string                  `yaml:"config_file,omitempty"`
}

// InitConfig sets defaults and reads the config file and environment.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "find-willa")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("WILLA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	// A missing config file is fine; defaults and flags still apply.
	_ = viper.ReadInConfig()
}

// SetDefaults registers the stock values for every key.
func SetDefaults() {
	d := models.DefaultGenerationConfig()
	viper.SetDefault("strategy", -1)
	viper.SetDefault("complexity_level", d.ComplexityLevel)
	viper.SetDefault("max_nest_level", d.MaxNestLevel)
	viper.SetDefault("minimum_folders", d.MinimumFolders)
	viper.SetDefault("minimum_files_per_folder", d.MinimumFilesPerFolder)
	viper.SetDefault("nest_threshold", d.NestThreshold)
	viper.SetDefault("seed", 0)
	viper.SetDefault("no_history", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "find-willa"))
	viper.SetDefault("dir_names_file", "")
	viper.SetDefault("file_names_file", "")
}

// AddGlobalFlags adds the game flags to cmd and binds them to the configuration.
func AddGlobalFlags(cmd *cobra.Command) {
	d := models.DefaultGenerationConfig()
	flags := cmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/find-willa/config.yaml)")
	flags.IntP("strategy", "s", -1, "Hiding strategy: 0 = plain, 1 = reversed name, 2 = content clue, 3 = permissions, -1 = random")
	flags.Float64P("complexity-level", "c", d.ComplexityLevel, "The higher the number, the more files and folders are generated")
	flags.IntP("max-nest-level", "n", d.MaxNestLevel, "Maximum folder nesting depth")
	flags.IntP("minimum-folders", "f", d.MinimumFolders, "Minimum number of folders generated per folder")
	flags.IntP("minimum-files-per-folder", "m", d.MinimumFilesPerFolder, "Minimum number of files generated per folder")
	flags.Float64("nest-threshold", d.NestThreshold, "Density gate for nesting; 0 nests whenever depth allows")
	flags.Uint64("seed", 0, "Seed for the random generator (0 = random)")
	flags.Bool("no-history", false, "Do not record games in the history database")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	BindFlags(flags)
}

// BindFlags binds the known flags in flags to their configuration keys.
func BindFlags(flags *pflag.FlagSet) {
	for flag, key := range flagKeys {
		if f := flags.Lookup(flag); f != nil {
			cobra.CheckErr(viper.BindPFlag(key, f))
		}
	}
}

// Current returns the effective settings.
func Current() Settings {
	return Settings{
		Generation: models.GenerationConfig{
			ComplexityLevel:       viper.GetFloat64("complexity_level"),
			MaxNestLevel:          viper.GetInt("max_nest_level"),
			MinimumFolders:        viper.GetInt("minimum_folders"),
			MinimumFilesPerFolder: viper.GetInt("minimum_files_per_folder"),
			NestThreshold:         viper.GetFloat64("nest_threshold"),
		},
		Strategy:      viper.GetInt("strategy"),
		Seed:          viper.GetUint64("seed"),
		DataDir:       viper.GetString("data_dir"),
		History:       !viper.GetBool("no_history"),
		DirNamesFile:  viper.GetString("dir_names_file"),
		FileNamesFile: viper.GetString("file_names_file"),
		ConfigFile:    viper.ConfigFileUsed(),
	}
}

// GameConfig turns the effective settings into a game configuration.
func GameConfig(fs afero.Fs, s Settings) (game.Config, error) {
	cfg := game.Config{Generation: s.Generation}
	if err := cfg.Generation.Validate(); err != nil {
		return game.Config{}, err
	}

	if s.Strategy >= 0 {
		strategy, err := models.ParseStrategy(s.Strategy)
		if err != nil {
			return game.Config{}, err
		}
		cfg.Strategy = &strategy
	}

	if s.DirNamesFile != "" {
		list, err := names.LoadList(fs, s.DirNamesFile)
		if err != nil {
			return game.Config{}, err
		}
		cfg.DirNames = list
	}
	if s.FileNamesFile != "" {
		list, err := names.LoadList(fs, s.FileNamesFile)
		if err != nil {
			return game.Config{}, err
		}
		cfg.FileNames = list
	}

	return cfg, nil
}

// NewLogger returns the diagnostic logger. It stays quiet unless verbose
// logging is enabled.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// InitService builds the game service from the effective configuration.
func InitService() (*game.Service, error) {
	logger := NewLogger()
	settings := Current()
	fs := afero.NewOsFs()

	cfg, err := GameConfig(fs, settings)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	opts := []game.Option{game.WithLogger(logrus.NewEntry(logger))}
	if settings.Seed != 0 {
		opts = append(opts, game.WithRand(rng.New(settings.Seed)))
	}

	var reg *history.Registry
	if settings.History {
		reg, err = history.NewRegistry(settings.DataDir)
		if err != nil {
			// History is a nicety; play on without it.
			logger.WithError(err).Warn("could not open game history")
			reg = nil
		} else {
			opts = append(opts, game.WithHistory(reg))
		}
	}

	svc, err := game.New(fs, cfg, opts...)
	if err != nil {
		if reg != nil {
			reg.Close()
		}
		return nil, err
	}
	return svc, nil
}
