// Package bitio is the wire-codec runtime that generated code (internal/codegen's
// output) links against. It provides MSB-first bit-granular reading and
// writing over any byte-oriented source or sink, plus the ASTERIX FSPEC
// bitmap primitive. It has no dependency on internal/ir or internal/compiler:
// generated code and its runtime are decoupled from the schema tooling that
// produced them.
package bitio
