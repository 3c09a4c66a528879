package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hurou927/uml-ddl/internal/convert"
	"github.com/hurou927/uml-ddl/internal/graph"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [diagram]",
	Short: "Analyze the reference graph of a class diagram",
	Long:  `Parses the class diagram, builds the graph of REF(...) relationships between classes, and outputs it in the specified format.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := diagramPath(args)
		if err != nil {
			return err
		}

		s, err := convert.ParseSchema(path, cfg.Strict)
		if err != nil {
			return err
		}

		g := graph.Build(s)

		switch analyzeFormat {
		case "mermaid":
			return graph.WriteMermaid(cmd.OutOrStdout(), g)
		case "text":
			return graph.WriteText(cmd.OutOrStdout(), g)
		default:
			return fmt.Errorf("unknown format: %s (supported: mermaid, text)", analyzeFormat)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "mermaid", "output format: mermaid or text")
	rootCmd.AddCommand(analyzeCmd)
}
