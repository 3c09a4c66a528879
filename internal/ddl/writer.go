package ddl

import (
	"fmt"
	"io"
	"strings"
)

// Session statements bracketing a script whose tables reference tables
// created later in the same script.
const (
	DisableFKChecks = "SET FOREIGN_KEY_CHECKS = 0;"
	EnableFKChecks  = "SET FOREIGN_KEY_CHECKS = 1;"
)

// Writer writes DDL scripts.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new DDL writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader disables foreign key checks for the rest of the session.
func (dw *Writer) WriteHeader() error {
	_, err := fmt.Fprintln(dw.w, DisableFKChecks)
	return err
}

// WriteFooter re-enables foreign key checks.
func (dw *Writer) WriteFooter() error {
	_, err := fmt.Fprintf(dw.w, "\n%s\n", EnableFKChecks)
	return err
}

// WriteStatement writes a newline separator followed by the statement.
func (dw *Writer) WriteStatement(st Statement) error {
	_, err := fmt.Fprintf(dw.w, "\n%s\n", st.SQL)
	return err
}

// QuoteIdentifier quotes a MySQL identifier with back-ticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
