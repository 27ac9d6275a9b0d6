package compiler

import "fmt"

// SchemaError reports a violation of one of the IR invariants in
// SPEC_FULL.md §3, discovered while compiling a raw schema tree into IR.
// It carries the offending path (Category/Item/field) so operators can
// locate the mistake in their source document.
type SchemaError struct {
	Path   string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Detail)
}

func schemaErrorf(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Detail: fmt.Sprintf(format, args...)}
}
