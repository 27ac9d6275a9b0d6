package genconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "asterixgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfigFile(t, `
out_dir: gen
package: asterix
overwrite: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gen", cfg.OutDir)
	assert.Equal(t, "asterix", cfg.Package)
	assert.True(t, cfg.Overwrite)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "out_dir: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EmptyOutDirFailsConstraint(t *testing.T) {
	path := writeConfigFile(t, `
out_dir: ""
package: asterix
overwrite: false
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "out_dir", cfgErr.Field)
}

func TestLoad_InvalidPackageNameFailsConstraint(t *testing.T) {
	path := writeConfigFile(t, `
out_dir: gen
package: "Not-Valid"
overwrite: false
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "package", cfgErr.Field)
}

func TestConfigError_ErrorMessage(t *testing.T) {
	withField := &ConfigError{Field: "package", Message: "invalid value"}
	assert.Contains(t, withField.Error(), "package")
	assert.Contains(t, withField.Error(), "invalid value")

	whole := &ConfigError{Message: "document is empty"}
	assert.NotContains(t, whole.Error(), ":  :")
}
