package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/lectern"
)

var (
	verbose   bool
	mediaRoot string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Parse, resolve and inspect slide presentations",
	Long: `Lectern reads presentation documents (YAML or JSON), validates every slide
against its master and resolves the referenced media against sidecar files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&mediaRoot, "media", "", "Media directory (default: project root)")
}

// options assembles the project configuration around path, the global
// flags and the default logger.
func options(path string) []lectern.Option {
	projectOpts, err := lectern.ProjectOptions(filepath.Dir(path), slog.Default())
	if err != nil {
		fatal("Error reading project configuration", err)
	}
	opts := append(projectOpts, lectern.WithLogger(slog.Default()))
	if mediaRoot != "" {
		opts = append(opts, lectern.WithMediaRoot(mediaRoot))
	}
	return opts
}
