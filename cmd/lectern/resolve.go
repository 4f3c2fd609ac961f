package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Resolve the media of a presentation and print the assets",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := open(cmd.Context(), args[0], true)
		media := p.Media()

		if resolveJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(media); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, uri := range slices.Sorted(maps.Keys(media)) {
			asset := media[uri]
			fmt.Printf("%s\t%s\t%s\n", uri, asset.UUID, asset.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
}
