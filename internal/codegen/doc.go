// Package codegen walks a validated internal/ir.Category and emits
// self-contained Go source implementing its wire codec.
//
// The emitted source has exactly one runtime dependency: internal/bitio,
// imported under this module's own path. Nothing in internal/ir,
// internal/compiler, or internal/codegen itself is imported by generated
// code — the schema tooling is entirely build-time.
package codegen
