package ddl

import (
	"errors"
	"fmt"

	"github.com/hurou927/uml-ddl/internal/schema"
)

// ErrUnresolvedReference is matched by every *ReferenceError.
var ErrUnresolvedReference = errors.New("unresolved reference")

const (
	ReasonUnknownTable  = "unknown table"
	ReasonUnknownColumn = "unknown column"
	ReasonCycle         = "reference cycle"
	ReasonUntyped       = "referenced column has no type"
)

// ReferenceError reports a REF(...) whose type cannot be resolved.
type ReferenceError struct {
	Table  string // table owning the referencing column
	Column string // referencing column
	Ref    schema.ColumnReference
	Reason string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s.%s references %s: %s", e.Table, e.Column, e.Ref, e.Reason)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}
