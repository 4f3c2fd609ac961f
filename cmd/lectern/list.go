package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/lectern"
)

var listTitles bool

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the presentations of a project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := os.Getwd()
		if err != nil {
			fatal("Error getting working directory", err)
		}
		if len(args) == 1 {
			dir = args[0]
		}

		root, err := lectern.FindRoot(dir)
		if err != nil {
			root = dir
		}
		opts, err := lectern.ProjectOptions(root, slog.Default())
		if err != nil {
			fatal("Error reading project configuration", err)
		}

		files, err := lectern.Discover(root, opts...)
		if err != nil {
			fatal("Error listing presentations", err)
		}

		for _, rel := range files {
			if !listTitles {
				fmt.Println(rel)
				continue
			}
			p, err := lectern.Open(filepath.Join(root, filepath.FromSlash(rel)), opts...)
			if err != nil {
				slog.Warn("skipping invalid presentation", "path", rel, "error", err)
				continue
			}
			fmt.Printf("%s - %s\n", rel, p.Meta.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listTitles, "titles", false, "Parse every presentation and print its title")
}
