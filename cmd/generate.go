package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/uml-ddl/internal/convert"
	"github.com/hurou927/uml-ddl/internal/logging"
)

var (
	outputPath    string
	strict        bool
	renderNotNull bool
	quoteIdents   bool
	fkGuard       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [diagram]",
	Short: "Print CREATE TABLE statements for a class diagram",
	Long:  `Parses the class diagram and writes one CREATE TABLE statement per class, in the order the classes appear.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := diagramPath(args)
		if err != nil {
			return err
		}

		sql, err := convert.ParseFile(path, convertOptions(strict, renderNotNull, quoteIdents, fkGuard))
		if err != nil {
			return err
		}

		outPath := outputPath
		if outPath == "" {
			outPath = cfg.Output
		}
		if outPath == "" || outPath == "-" {
			_, err := io.WriteString(cmd.OutOrStdout(), sql)
			return err
		}

		if err := os.WriteFile(outPath, []byte(sql), 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		logging.Log.WithField("file", outPath).Info("DDL written")
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path, - for stdout (overrides config)")
	generateCmd.Flags().BoolVar(&strict, "strict", false, "fail on malformed diagram lines instead of skipping them")
	generateCmd.Flags().BoolVar(&renderNotNull, "not-null", false, "render NOT NULL for NN columns")
	generateCmd.Flags().BoolVar(&quoteIdents, "quote", false, "quote identifiers with back-ticks")
	generateCmd.Flags().BoolVar(&fkGuard, "fk-guard", false, "wrap the script in SET FOREIGN_KEY_CHECKS statements")
	rootCmd.AddCommand(generateCmd)
}
