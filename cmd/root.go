package cmd

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/tanka/cmd/directory"
	"github.com/tphakala/tanka/cmd/file"
	"github.com/tphakala/tanka/cmd/localday"
	"github.com/tphakala/tanka/internal/conf"
	"github.com/tphakala/tanka/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tanka",
		Short: "Tanka HaikuBox detection-log analyzer",
		Long:  "Analyze HaikuBox bird detection CSV logs: daily summaries, top species, new-bird detection and time-of-day activity.",
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		logging.Fatal("error setting up flags", "error", err)
	}

	localDayCmd := localday.Command(settings)

	subcommands := []*cobra.Command{
		localDayCmd,
		file.Command(settings),
		directory.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	// Running tanka with no subcommand analyzes the default local day.
	rootCmd.RunE = localDayCmd.RunE

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Flag overrides land in settings, re-check them
		if err := conf.ValidateSettings(settings); err != nil {
			return err
		}
		if settings.Debug {
			logging.Init(slog.LevelDebug)
		}
		if configFile, err := conf.FindConfigFile(); err == nil {
			logging.Debug("using config file", "path", configFile)
		}
		logging.Info("starting analysis run",
			"run_id", uuid.New().String(),
			"command", cmd.Name(),
			"instance", settings.Main.Name)
		return nil
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().Float64VarP(&settings.Analysis.ScoreThreshold, "threshold", "t", viper.GetFloat64("analysis.scorethreshold"), "Minimum detection score to include, value between 0.0 and 1.0")
	rootCmd.PersistentFlags().IntVar(&settings.Analysis.TopN, "top", viper.GetInt("analysis.topn"), "Number of top species to report")
	rootCmd.PersistentFlags().BoolVar(&settings.Analysis.IncludeTime, "time", viper.GetBool("analysis.includetime"), "Include time-of-day analysis (hourly activity and species time ranges)")
	rootCmd.PersistentFlags().BoolVar(&settings.Output.Save, "save", viper.GetBool("output.save"), "Save analysis results to a JSON file in the analysis directory")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
