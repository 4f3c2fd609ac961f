package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/pkg/presentation"
)

var stateMermaid bool

var stateCmd = &cobra.Command{
	Use:   "state <file>",
	Short: "Resolve a presentation and print the state of its components",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		opts := options(path)

		p, err := lectern.Open(path, opts...)
		if err != nil {
			fatal("Error loading presentation", err)
		}
		resolver := lectern.ResolverFor(p, opts...)
		// The failure is part of the reported state.
		_ = p.Resolve(context.Background(), resolver)

		if stateMermaid {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "presentation"
			config.SecondaryLabel = "Slide Tree"
			fmt.Println(introspection.TreeDiagram(buildSlideTree(p), config))
			return
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		components := []any{p, resolver}
		for _, c := range components {
			intro, ok := c.(introspection.Introspectable)
			if !ok {
				continue
			}
			kind := "component"
			if comp, ok := c.(introspection.Component); ok {
				kind = comp.ComponentType()
			}
			if err := encoder.Encode(map[string]any{kind: intro.State()}); err != nil {
				fatal("Error encoding JSON", err)
			}
		}
	},
}

type slideNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []slideNode
}

// buildSlideTree maps the presentation onto diagram nodes. Status values
// follow the classes of introspection.DefaultStyles().
func buildSlideTree(p *lectern.Presentation) slideNode {
	status := "pending"
	switch p.Status() {
	case presentation.StatusResolved:
		status = "finished"
	case presentation.StatusFailed:
		status = "failed"
	case presentation.StatusResolving:
		status = "running"
	}

	var nodes func(slides []*lectern.Slide) []slideNode
	nodes = func(slides []*lectern.Slide) []slideNode {
		out := make([]slideNode, 0, len(slides))
		for _, s := range slides {
			out = append(out, slideNode{
				Name:   strconv.Itoa(s.No) + ". " + s.Title(),
				Status: status,
				Metadata: map[string]string{
					"master": s.MasterName(),
					"media":  strconv.Itoa(len(s.MediaURIs)),
				},
				Children: nodes(s.Slides),
			})
		}
		return out
	}

	return slideNode{
		Name:   p.Meta.Title,
		Status: status,
		Metadata: map[string]string{
			"type": "presentation",
			"ref":  p.Meta.Ref,
		},
		Children: nodes(p.Slides.Tree),
	}
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().BoolVar(&stateMermaid, "mermaid", false, "Print the slide tree as a Mermaid diagram")
}
