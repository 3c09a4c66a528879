package ddl

import (
	"fmt"
	"strings"

	"github.com/hurou927/uml-ddl/internal/schema"
)

// Statement is the CREATE TABLE statement generated for one table.
type Statement struct {
	Table string
	SQL   string
}

// Option customizes how statements are rendered.
type Option func(*options)

type options struct {
	notNull bool
	quote   bool
}

// WithNotNull renders NOT NULL for columns flagged NN.
func WithNotNull() Option {
	return func(o *options) { o.notNull = true }
}

// WithQuotedIdentifiers back-tick-quotes table and column names.
func WithQuotedIdentifiers() Option {
	return func(o *options) { o.quote = true }
}

// Generate renders the whole schema as one DDL script, tables in discovery
// order, each statement preceded by a newline.
func Generate(s *schema.Schema, opts ...Option) (string, error) {
	stmts, err := Statements(s, opts...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	w := NewWriter(&b)
	for _, st := range stmts {
		if err := w.WriteStatement(st); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Statements renders one statement per table in discovery order. Columns
// carrying a reference get their type back-filled from the referenced
// column before rendering.
func Statements(s *schema.Schema, opts ...Option) ([]Statement, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	stmts := make([]Statement, 0, s.Len())
	for _, tbl := range s.Tables() {
		sql, err := renderTable(s, tbl, &o)
		if err != nil {
			return nil, fmt.Errorf("generating table %s: %w", tbl.Name, err)
		}
		stmts = append(stmts, Statement{Table: tbl.Name, SQL: sql})
	}
	return stmts, nil
}

func renderTable(s *schema.Schema, tbl *schema.Table, o *options) (string, error) {
	var columnLines, foreignKeys []string

	for _, col := range tbl.Columns() {
		if col.Ref != nil {
			typ, err := ResolveType(s, tbl.Name, col)
			if err != nil {
				return "", err
			}
			col.Type = typ
			foreignKeys = append(foreignKeys, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
				o.ident(col.Name), o.ident(col.Ref.Table), o.ident(col.Ref.Column)))
		}
		columnLines = append(columnLines, renderColumn(col, o))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (", o.ident(tbl.Name))
	b.WriteString("\n" + strings.Join(columnLines, ",\n"))
	if len(foreignKeys) > 0 {
		b.WriteString(",\n" + strings.Join(foreignKeys, ",\n"))
	}
	b.WriteString("\n)  ENGINE=INNODB;")
	return b.String(), nil
}

func renderColumn(col *schema.Column, o *options) string {
	var b strings.Builder
	b.WriteString(o.ident(col.Name))
	if col.HasType() {
		b.WriteString(" " + col.Type)
	}
	if o.notNull && col.NotNull {
		b.WriteString(" NOT NULL")
	}
	if col.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	if col.IsPrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	return b.String()
}

func (o *options) ident(name string) string {
	if o.quote {
		return QuoteIdentifier(name)
	}
	return name
}

// ResolveType follows col's reference chain and returns the type of the
// first column in it that declares one itself. Resolving the same column
// twice yields the same type.
func ResolveType(s *schema.Schema, table string, col *schema.Column) (string, error) {
	seen := map[*schema.Column]bool{col: true}
	cur := col
	for cur.Ref != nil {
		refErr := func(reason string) error {
			return &ReferenceError{Table: table, Column: col.Name, Ref: *cur.Ref, Reason: reason}
		}

		tgtTable, target, ok := s.Lookup(*cur.Ref)
		switch {
		case tgtTable == nil:
			return "", refErr(ReasonUnknownTable)
		case !ok:
			return "", refErr(ReasonUnknownColumn)
		case seen[target]:
			return "", refErr(ReasonCycle)
		case target.Ref == nil && !target.HasType():
			return "", refErr(ReasonUntyped)
		}
		seen[target] = true
		cur = target
	}
	return cur.Type, nil
}
