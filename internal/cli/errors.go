package cli

import (
	"errors"
	"os"

	"github.com/roach88/asterixgen/internal/compiler"
	"github.com/roach88/asterixgen/internal/genconfig"
)

// Error code constants - unified across all CLI commands. E0xx covers
// load/IO-level failures, E1xx covers schema-content failures, E2xx covers
// configuration failures.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Path not found
	ErrCodeWriteFailed = "E003" // File write error

	ErrCodeSchemaInvalid = "E101" // Schema violates an IR invariant

	ErrCodeConfigInvalid = "E201" // Configuration document failed a CUE constraint
)

// classifyError maps an error returned by compiler/codegen/genconfig into
// (code, message) for CLI reporting, mirroring the teacher's
// MapFieldToErrorCode/LoadError classification in internal/cli.
func classifyError(err error) (code, message string) {
	var schemaErr *compiler.SchemaError
	if errors.As(err, &schemaErr) {
		return ErrCodeSchemaInvalid, schemaErr.Error()
	}

	var cfgErr *genconfig.ConfigError
	if errors.As(err, &cfgErr) {
		return ErrCodeConfigInvalid, cfgErr.Error()
	}

	if errors.Is(err, os.ErrNotExist) {
		return ErrCodeNotFound, err.Error()
	}

	return ErrCodeGeneric, err.Error()
}
