// Command avrogen compiles Avro schemas and generates codecs for them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/primait/avrogen/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag and argument errors cobra reports before a command runs.
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
