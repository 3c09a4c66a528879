package apply

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hurou927/uml-ddl/internal/ddl"
	"github.com/hurou927/uml-ddl/internal/logging"
)

// Executor runs a single SQL statement.
type Executor interface {
	Exec(ctx context.Context, sql string) error
}

// Applier executes generated DDL statements against a database session.
type Applier struct {
	exec    Executor
	out     io.Writer
	verbose bool
	dryRun  bool

	// applied holds the tables whose statements ran, in order
	applied []string
}

// New creates a new Applier. In dry-run mode the script is written to out
// and exec is never called.
func New(exec Executor, out io.Writer, verbose, dryRun bool) *Applier {
	return &Applier{
		exec:    exec,
		out:     out,
		verbose: verbose,
		dryRun:  dryRun,
	}
}

// Apply runs stmts in order with foreign key checks disabled, so tables may
// reference tables created later in the list. Checks are re-enabled even
// when a statement fails.
func (a *Applier) Apply(ctx context.Context, stmts []ddl.Statement) (err error) {
	if a.dryRun {
		return a.writeScript(stmts)
	}

	if err := a.exec.Exec(ctx, ddl.DisableFKChecks); err != nil {
		return fmt.Errorf("disabling foreign key checks: %w", err)
	}
	defer func() {
		if rerr := a.exec.Exec(ctx, ddl.EnableFKChecks); rerr != nil {
			err = errors.Join(err, fmt.Errorf("enabling foreign key checks: %w", rerr))
		}
	}()

	for _, st := range stmts {
		if a.verbose {
			logging.Log.WithField("table", st.Table).Info("creating table")
			logging.Log.WithField("table", st.Table).Debug(st.SQL)
		}
		if err := a.exec.Exec(ctx, st.SQL); err != nil {
			return fmt.Errorf("creating table %s: %w", st.Table, err)
		}
		a.applied = append(a.applied, st.Table)
	}
	return nil
}

func (a *Applier) writeScript(stmts []ddl.Statement) error {
	w := ddl.NewWriter(a.out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, st := range stmts {
		if err := w.WriteStatement(st); err != nil {
			return fmt.Errorf("writing %s: %w", st.Table, err)
		}
	}
	return w.WriteFooter()
}

// Summary returns a summary of applied statements for reporting.
func (a *Applier) Summary() []string {
	lines := make([]string, 0, len(a.applied)+1)
	lines = append(lines, fmt.Sprintf("  %d table(s) ensured", len(a.applied)))
	for _, t := range a.applied {
		lines = append(lines, "  "+t)
	}
	return lines
}
