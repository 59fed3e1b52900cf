package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/emoji"
	"github.com/yildizm/scrollmark/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	endpoint  string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scrollmark",
		Short: "Social media comment analytics dashboard",
		Long: `Scrollmark turns a CSV export of posts and comments into an analytics
dashboard. The CSV is sent to an analysis service; the results are shown as
seven panels: engagement, buyer intent, advocates, publishing, diagnostics,
sentiment and virality.

Run without arguments to open the interactive dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			// config subcommands load their own file and must work on a broken one
			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			return loadGlobalConfig(cmd)
		},
		Args: cobra.MaximumNArgs(1),
		RunE: runDashboard,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "analysis service URL (default http://localhost:5000/analyze)")

	// Add subcommands
	rootCmd.AddCommand(newDashboardCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadGlobalConfig merges the config file, environment and flags, in that
// order of increasing priority.
func loadGlobalConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("endpoint") {
		cfg.Backend.Endpoint = endpoint
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.DefaultFormat = outputFmt
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Output.Verbose = verbose
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	globalConfig = cfg
	return nil
}

// GetGlobalConfig returns the effective configuration, falling back to
// defaults when the root command has not loaded one (tests).
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scrollmark %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return GetGlobalConfig().Output.Verbose
}

func newLogger() *logger.Logger {
	return logger.NewWithCallback("scrollmark", isVerbose)
}

// useColor resolves the color mode against the terminal stdout is attached to
func useColor() bool {
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
