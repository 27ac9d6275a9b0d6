// Package genconfig loads the asterixgen CLI's configuration document and
// validates it against a CUE constraint schema, the same load-then-validate
// shape the teacher's internal/cli.LoadSpecs uses for concept/sync specs,
// adapted here to a single small YAML document instead of a directory of
// CUE spec files.
package genconfig
