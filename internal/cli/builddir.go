package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// BuildDirOptions extends BuildOptions with the directory flags for the
// build-dir command.
type BuildDirOptions struct {
	*BuildOptions
	OutDir    string
	Overwrite bool
}

// NewBuildDirCommand creates the build-dir command: a directory of schema
// files to a directory of generated files.
func NewBuildDirCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildDirOptions{BuildOptions: &BuildOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:           "build-dir <schema-dir>",
		Short:         "Emit generated Go source for every schema in a directory",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildDir(opts, args[0], cmd)
		},
	}

	addBuildFlags(cmd, opts.BuildOptions)
	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", ".", "output directory for generated source")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "overwrite existing generated files")

	return cmd
}

func runBuildDir(opts *BuildDirOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if err := applyBuildConfig(cmd, opts.ConfigPath, &opts.Package, &opts.OutDir, &opts.Overwrite); err != nil {
		return reportBuildError(formatter, err)
	}

	entries, err := os.ReadDir(schemaDir)
	if err != nil {
		return reportBuildError(formatter, fmt.Errorf("read %s: %w", schemaDir, err))
	}

	var written []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".xml" {
			continue
		}
		schemaPath := filepath.Join(schemaDir, entry.Name())

		cat, src, err := generateSource(opts.BuildOptions, formatter, schemaPath)
		if err != nil {
			return reportBuildError(formatter, fmt.Errorf("%s: %w", schemaPath, err))
		}

		outPath, err := writeGeneratedFile(cat, opts.OutDir, src, opts.Overwrite)
		if err != nil {
			return reportBuildError(formatter, err)
		}
		written = append(written, outPath)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string][]string{"outputs": written})
	}
	for _, path := range written {
		fmt.Fprintf(formatter.Writer, "wrote %s\n", path)
	}
	fmt.Fprintf(formatter.Writer, "generated %d file(s)\n", len(written))
	return nil
}
