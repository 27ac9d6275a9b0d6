package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema010 = `<category id="010">
  <item id="010" frn="1">
    <fixed bytes="2">
      <field name="sac" bits="8"/>
      <field name="sic" bits="8"/>
    </fixed>
  </item>
</category>
`

func writeSchemaFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cat010.xml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuild_EmitsSourceToStdout(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build", schemaPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "package asterix")
	assert.Contains(t, out.String(), "Cat010Record")
}

func TestBuild_JSONFormat(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--format", "json", "build", schemaPath})

	require.NoError(t, cmd.Execute())

	var env Envelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, "ok", env.Status)
}

func TestBuild_InvalidSchemaReportsSchemaError(t *testing.T) {
	schemaPath := writeSchemaFile(t, `<category id="not-a-number"></category>`)

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build", schemaPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), ErrCodeSchemaInvalid)
}

func TestBuild_MissingSchemaFileReportsCommandError(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build", filepath.Join(t.TempDir(), "missing.xml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBuild_UsesCacheOnSecondInvocation(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	cmd1 := NewRootCommand()
	var out1 bytes.Buffer
	cmd1.SetOut(&out1)
	cmd1.SetErr(&out1)
	cmd1.SetArgs([]string{"--verbose", "build", "--cache", cachePath, schemaPath})
	require.NoError(t, cmd1.Execute())
	assert.Contains(t, out1.String(), "generated category")

	cmd2 := NewRootCommand()
	var out2 bytes.Buffer
	cmd2.SetOut(&out2)
	cmd2.SetErr(&out2)
	cmd2.SetArgs([]string{"--verbose", "build", "--cache", cachePath, schemaPath})
	require.NoError(t, cmd2.Execute())
	assert.Contains(t, out2.String(), "cache hit")
}

func TestBuild_ConfigSuppliesDefaultPackage(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	cfgPath := filepath.Join(t.TempDir(), "asterixgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("out_dir: .\npackage: radar\noverwrite: false\n"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "build", schemaPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "package radar")
}

func TestBuild_ExplicitPackageFlagOverridesConfig(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	cfgPath := filepath.Join(t.TempDir(), "asterixgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("out_dir: .\npackage: radar\noverwrite: false\n"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "build", "--package", "explicit", schemaPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "package explicit")
}

func TestBuild_InvalidConfigReportsConfigError(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	cfgPath := filepath.Join(t.TempDir(), "asterixgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("out_dir: \"\"\npackage: Radar\noverwrite: false\n"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "build", schemaPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), ErrCodeConfigInvalid)
}

func TestBuildFile_ConfigSuppliesDefaultOutDirAndOverwrite(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "Cat010_gen.go"), []byte("stale"), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "asterixgen.yaml")
	cfgBody := "out_dir: " + outDir + "\npackage: asterix\noverwrite: true\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "build-file", schemaPath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(outDir, "Cat010_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cat010Record")
}

func TestBuildFile_WritesGeneratedFile(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	outDir := t.TempDir()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build-file", "--out-dir", outDir, schemaPath})

	require.NoError(t, cmd.Execute())

	outPath := filepath.Join(outDir, "Cat010_gen.go")
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cat010Record")
}

func TestBuildFile_RefusesOverwriteWithoutFlag(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "Cat010_gen.go"), []byte("stale"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build-file", "--out-dir", outDir, schemaPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBuildFile_OverwriteFlagReplacesExisting(t *testing.T) {
	schemaPath := writeSchemaFile(t, sampleSchema010)
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "Cat010_gen.go"), []byte("stale"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build-file", "--out-dir", outDir, "--overwrite", schemaPath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(outDir, "Cat010_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cat010Record")
}

func TestBuildDir_EmitsOneFilePerSchema(t *testing.T) {
	inDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "cat010.xml"), []byte(sampleSchema010), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("ignored"), 0o644))
	outDir := t.TempDir()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build-dir", "--out-dir", outDir, inDir})

	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cat010_gen.go", entries[0].Name())
}
