package genconfig

import "fmt"

// ConfigError names the configuration field that failed a CUE constraint,
// mirroring internal/compiler.SchemaError's path-carrying convention for
// the generator's other build-time failure kind.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("genconfig: %s", e.Message)
	}
	return fmt.Sprintf("genconfig: %s: %s", e.Field, e.Message)
}
