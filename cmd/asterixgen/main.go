// Command asterixgen compiles ASTERIX category schemas into bit-exact Go
// codec source.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/asterixgen/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
