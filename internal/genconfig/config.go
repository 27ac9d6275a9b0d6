package genconfig

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// Config is the asterixgen CLI's persisted configuration: the default
// output directory for generated files, the target Go package name, and
// whether an existing output file may be overwritten.
type Config struct {
	OutDir    string `yaml:"out_dir"`
	Package   string `yaml:"package"`
	Overwrite bool   `yaml:"overwrite"`
}

// constraints is the CUE schema every loaded Config is validated against.
const constraints = `
out_dir:    string & !=""
package:    =~"^[a-z][a-z0-9_]*$"
overwrite:  bool
`

// Load reads a YAML configuration document from path, decodes it, and
// validates it against constraints. A field that fails a constraint yields
// a *ConfigError naming it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("genconfig: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("genconfig: parse %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(constraints)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("genconfig: compile constraints: %w", err)
	}

	value := ctx.Encode(cfg)
	unified := schema.Unify(value)

	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ConfigError{Field: offendingField(err), Message: err.Error()}
	}

	return nil
}

// offendingField extracts a dotted field path from a CUE validation error,
// falling back to "" (whole-document) if none is available.
func offendingField(err error) string {
	for _, e := range cueerrors.Errors(err) {
		if path := e.Path(); len(path) > 0 {
			return strings.Join(path, ".")
		}
	}
	return ""
}
