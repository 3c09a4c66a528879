package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hurou927/uml-ddl/internal/apply"
	"github.com/hurou927/uml-ddl/internal/convert"
	"github.com/hurou927/uml-ddl/internal/db"
	"github.com/hurou927/uml-ddl/internal/ddl"
	"github.com/hurou927/uml-ddl/internal/graph"
	"github.com/hurou927/uml-ddl/internal/logging"
)

var (
	dryRun  bool
	verbose bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [diagram]",
	Short: "Create the diagram's tables in a MySQL database",
	Long:  `Generates the CREATE TABLE statements for the class diagram and executes them on one MySQL session with foreign key checks disabled.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		path, err := diagramPath(args)
		if err != nil {
			return err
		}

		opts := convertOptions(strict, renderNotNull, quoteIdents, false)
		s, err := convert.ParseSchema(path, opts.Strict)
		if err != nil {
			return err
		}

		stmts, err := ddl.Statements(s, opts.DDLOptions()...)
		if err != nil {
			return fmt.Errorf("generating DDL for %s: %w", path, err)
		}

		g := graph.Build(s)
		for _, e := range g.ForwardReferences() {
			logging.Log.WithField("table", e.ChildTable).
				Warnf("%s.%s references %s, which is declared later", e.ChildTable, e.Column, e.ParentTable)
		}
		if err := graph.ValidateCycles(graph.TopoSortAll(g)); err != nil {
			logging.Log.Warn(err.Error())
		}

		if dryRun {
			return apply.New(nil, cmd.OutOrStdout(), verbose, true).Apply(ctx, stmts)
		}

		if err := cfg.ValidateForApply(); err != nil {
			return err
		}

		gdb, err := db.Connect(ctx, &cfg.Connection)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close(gdb)

		var applier *apply.Applier
		err = db.WithSession(gdb, func(sess *db.Session) error {
			applier = apply.New(sess, cmd.OutOrStdout(), verbose, false)
			return applier.Apply(ctx, stmts)
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Apply complete:")
		for _, line := range applier.Summary() {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the script without connecting")
	applyCmd.Flags().BoolVar(&verbose, "verbose", false, "log each table as it is created")
	applyCmd.Flags().BoolVar(&strict, "strict", false, "fail on malformed diagram lines instead of skipping them")
	applyCmd.Flags().BoolVar(&renderNotNull, "not-null", false, "render NOT NULL for NN columns")
	applyCmd.Flags().BoolVar(&quoteIdents, "quote", false, "quote identifiers with back-ticks")
	rootCmd.AddCommand(applyCmd)
}
