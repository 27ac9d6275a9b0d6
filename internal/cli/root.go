package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by every asterixgen subcommand.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json"
	ConfigPath string // path to a genconfig YAML document, "" disables it
}

// outputFormats is the accepted set of --format values, keyed for O(1)
// membership checks rather than a linear scan.
var outputFormats = map[string]bool{
	"text": true,
	"json": true,
}

// NewRootCommand builds the asterixgen command tree. build, build-file, and
// build-dir all hang off this root and share one RootOptions instance.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "asterixgen",
		Short: "asterixgen - ASTERIX category codec generator",
		Long:  "Compiles ASTERIX category schemas into bit-exact Go codec source.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(opts.Format)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file supplying defaults for --package/--out-dir/--overwrite")

	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewBuildFileCommand(opts))
	cmd.AddCommand(NewBuildDirCommand(opts))

	return cmd
}

// validateFormat rejects any --format value outside outputFormats.
func validateFormat(format string) error {
	if !outputFormats[format] {
		return fmt.Errorf("invalid format %q: must be text or json", format)
	}
	return nil
}
