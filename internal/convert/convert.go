package convert

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hurou927/uml-ddl/internal/ddl"
	"github.com/hurou927/uml-ddl/internal/diagram"
	"github.com/hurou927/uml-ddl/internal/logging"
	"github.com/hurou927/uml-ddl/internal/schema"
)

// ErrSourceUnavailable is matched when the diagram file cannot be opened or read.
var ErrSourceUnavailable = errors.New("source unavailable")

// Options controls parsing and rendering.
type Options struct {
	Strict           bool // fail on any parser diagnostic
	NotNull          bool
	QuoteIdentifiers bool
	FKChecksGuard    bool // wrap the script in SET FOREIGN_KEY_CHECKS statements
}

// DDLOptions returns the generator options matching o.
func (o Options) DDLOptions() []ddl.Option {
	var opts []ddl.Option
	if o.NotNull {
		opts = append(opts, ddl.WithNotNull())
	}
	if o.QuoteIdentifiers {
		opts = append(opts, ddl.WithQuotedIdentifiers())
	}
	return opts
}

// ParseFile reads the class diagram at path and returns the generated DDL.
func ParseFile(path string, opts Options) (string, error) {
	s, err := ParseSchema(path, opts.Strict)
	if err != nil {
		return "", err
	}
	if !opts.FKChecksGuard {
		sql, err := ddl.Generate(s, opts.DDLOptions()...)
		if err != nil {
			return "", fmt.Errorf("generating DDL for %s: %w", path, err)
		}
		return sql, nil
	}

	stmts, err := ddl.Statements(s, opts.DDLOptions()...)
	if err != nil {
		return "", fmt.Errorf("generating DDL for %s: %w", path, err)
	}
	var b strings.Builder
	w := ddl.NewWriter(&b)
	if err := w.WriteHeader(); err != nil {
		return "", err
	}
	for _, st := range stmts {
		if err := w.WriteStatement(st); err != nil {
			return "", err
		}
	}
	if err := w.WriteFooter(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ParseSchema reads the class diagram at path. Parser diagnostics are
// logged as warnings, or returned as a *diagram.SyntaxError when strict.
func ParseSchema(path string, strict bool) (*schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	res, err := diagram.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}

	for _, d := range res.Diagnostics {
		logging.Log.WithField("file", path).WithField("line", d.Line).Warn(d.Message)
	}
	if strict {
		if err := res.Strict(); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	logging.Log.WithField("file", path).Debugf("parsed %d table(s)", res.Schema.Len())
	return res.Schema, nil
}
