package codegen

import "strings"

// genCtx accumulates the auxiliary type declarations (item, part, subfield,
// and enum types) discovered while walking a Category's Items. The record
// type itself is assembled separately and prepended to ctx.aux's contents.
type genCtx struct {
	aux          strings.Builder
	emittedEnums map[string]bool
}

func newGenCtx() *genCtx {
	return &genCtx{emittedEnums: make(map[string]bool)}
}
