package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lectern/pkg/adapters/fs"
)

var (
	exportFormat  string
	exportOutput  string
	exportResolve bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a presentation as Markdown, YAML or JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := open(cmd.Context(), args[0], exportResolve)

		var data []byte
		switch exportFormat {
		case "md", "markdown":
			data = []byte(p.ExportMarkup())
		case "yaml", "yml", "json":
			doc, err := p.Export()
			if err != nil {
				fatal("Error exporting presentation", err)
			}
			serializer, err := fs.SerializerFor("export." + exportFormat)
			if err != nil {
				fatal("Error exporting presentation", err)
			}
			data, err = serializer.Encode(doc)
			if err != nil {
				fatal("Error encoding presentation", err)
			}
		default:
			fatal("Error exporting presentation", fmt.Errorf("unknown format %q", exportFormat))
		}

		if exportOutput == "" || exportOutput == "-" {
			if _, err := os.Stdout.Write(data); err != nil {
				fatal("Error writing output", err)
			}
			return
		}
		if err := fs.WriteFileAtomic(exportOutput, data, 0644); err != nil {
			fatal("Error writing output", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Output format: md, yaml or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportResolve, "resolve", false, "Resolve media before exporting")
}
