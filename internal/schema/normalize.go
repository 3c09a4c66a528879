package schema

import (
	"strings"
	"unicode/utf8"
)

// NormalizeReferenceTable maps the table part of a REF(table.column) marker
// to the name the table was declared under. Diagrams declare classes in
// PascalCase but write references in camelCase, so only the first character
// is upper-cased; the rest of the name is left alone.
//
// Declared table names are never normalized, so a class declared as
// "order_item" cannot be referenced: REF(order_item.id) looks up
// "Order_item".
func NormalizeReferenceTable(name string) string {
	if name == "" {
		return name
	}
	_, size := utf8.DecodeRuneInString(name)
	return strings.ToUpper(name[:size]) + name[size:]
}
