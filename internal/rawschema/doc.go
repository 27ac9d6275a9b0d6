// Package rawschema materializes the raw XML schema tree described in
// SPEC_FULL.md §6.1. It is the "external collaborator" the spec treats as
// out of scope: internal/compiler consumes its output but performs no XML
// parsing of its own, so any conforming reader could stand in for it.
package rawschema
