// Package ir provides the canonical intermediate representation for an
// ASTERIX Category after structural validation.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This ensures IR remains the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - IR values are constructed once by internal/compiler and never mutated
//   - Item order within a Category is always ascending by FRN
//   - Element order within a structure is always wire order
package ir
