package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/asterixgen/internal/genconfig"
)

// applyBuildConfig loads the genconfig document at path, if any, and uses it
// to fill pkg/outDir/overwrite wherever the corresponding flag was not set
// explicitly on cmd. Explicit flags always win over the config file, and the
// config file always wins over the flag's own built-in default. Any of
// pkg/outDir/overwrite may be nil for commands that don't expose that flag.
func applyBuildConfig(cmd *cobra.Command, path string, pkg, outDir *string, overwrite *bool) error {
	if path == "" {
		return nil
	}

	cfg, err := genconfig.Load(path)
	if err != nil {
		return err
	}

	if pkg != nil && cfg.Package != "" && !cmd.Flags().Changed("package") {
		*pkg = cfg.Package
	}
	if outDir != nil && cfg.OutDir != "" && !cmd.Flags().Changed("out-dir") {
		*outDir = cfg.OutDir
	}
	if overwrite != nil && !cmd.Flags().Changed("overwrite") {
		*overwrite = cfg.Overwrite
	}

	return nil
}
