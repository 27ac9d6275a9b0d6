package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/asterixgen/internal/codegen"
	"github.com/roach88/asterixgen/internal/compiler"
	"github.com/roach88/asterixgen/internal/ir"
)

// BuildOptions holds flags shared by the build/build-file/build-dir
// commands.
type BuildOptions struct {
	*RootOptions
	Package string // target Go package name for emitted source
	Cache   string // path to a build cache database; "" disables caching
}

func addBuildFlags(cmd *cobra.Command, opts *BuildOptions) {
	cmd.Flags().StringVar(&opts.Package, "package", "", "Go package name for emitted source (default \"asterix\")")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "path to a build cache database (disabled if unset)")
}

// NewBuildCommand creates the build command: schema file to stdout.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "build <schema-file>",
		Short:         "Emit generated Go source for one schema to stdout",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	addBuildFlags(cmd, opts)
	return cmd
}

func runBuild(opts *BuildOptions, schemaPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if err := applyBuildConfig(cmd, opts.ConfigPath, &opts.Package, nil, nil); err != nil {
		return reportBuildError(formatter, err)
	}

	_, src, err := generateSource(opts, formatter, schemaPath)
	if err != nil {
		return reportBuildError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"source": src})
	}
	fmt.Fprint(formatter.Writer, src)
	return nil
}

// generateSource compiles the schema at schemaPath and returns its
// Category IR and emitted Go source, consulting the build cache in
// opts.Cache when set.
func generateSource(opts *BuildOptions, formatter *OutputFormatter, schemaPath string) (*ir.Category, string, error) {
	schemaData, err := readSchemaFile(schemaPath)
	if err != nil {
		return nil, "", err
	}

	cat, err := compiler.Load(schemaPath)
	if err != nil {
		return nil, "", err
	}

	cache, err := openCache(opts.Cache)
	if err != nil {
		return nil, "", err
	}
	if cache != nil {
		defer cache.Close()
	}

	emitter := codegen.NewEmitter(opts.Package)
	src, hit, err := cachedBuild(cache, schemaData, cat.ID, func() (string, error) {
		return emitter.EmitCategory(cat)
	})
	if err != nil {
		return nil, "", err
	}

	if hit {
		formatter.VerboseLog("cache hit for category %s", cat.IDText)
	} else {
		formatter.VerboseLog("generated category %s (%d item(s))", cat.IDText, len(cat.Items))
	}

	return cat, src, nil
}

// reportBuildError classifies err and reports it through formatter,
// returning the ExitError the command should propagate.
func reportBuildError(formatter *OutputFormatter, err error) error {
	code, message := classifyError(err)
	_ = formatter.Error(code, message, nil)
	if code == ErrCodeSchemaInvalid || code == ErrCodeConfigInvalid {
		return WrapExitError(ExitFailure, message, err)
	}
	return WrapExitError(ExitCommandError, message, err)
}
