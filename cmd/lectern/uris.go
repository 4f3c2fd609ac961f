package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var urisOptional bool

var urisCmd = &cobra.Command{
	Use:   "uris <file>",
	Short: "List the media URIs referenced by a presentation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := open(cmd.Context(), args[0], false)

		for _, uri := range p.Slides.MediaURIs {
			fmt.Println(uri)
		}
		if urisOptional {
			for _, uri := range p.Slides.OptionalMediaURIs {
				fmt.Printf("%s (optional)\n", uri)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(urisCmd)
	urisCmd.Flags().BoolVar(&urisOptional, "optional", false, "Include optional media URIs")
}
