package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lectern"
)

var showResolve bool

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the slide tree of a presentation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := open(cmd.Context(), args[0], showResolve)

		fmt.Printf("%s (%s)\n", p.Meta.Title, p.Meta.Ref)
		for _, s := range p.Slides.Flat {
			indent := strings.Repeat("  ", s.Level-1)
			line := fmt.Sprintf("%s%d. [%s] %s", indent, s.No, s.MasterName(), s.Title())
			if s.Ref != "" {
				line += " #" + s.Ref
			}
			if n := len(s.Steps()); n > 0 {
				line += fmt.Sprintf(" (%d steps)", n)
			}
			fmt.Println(line)
		}
	},
}

// open parses the presentation at path and optionally resolves it.
func open(ctx context.Context, path string, resolve bool) *lectern.Presentation {
	if ctx == nil {
		ctx = context.Background()
	}
	var (
		p   *lectern.Presentation
		err error
	)
	if resolve {
		p, err = lectern.Load(ctx, path, options(path)...)
	} else {
		p, err = lectern.Open(path, options(path)...)
	}
	if err != nil {
		fatal("Error loading presentation", err)
	}
	return p
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showResolve, "resolve", false, "Resolve media before printing")
}
