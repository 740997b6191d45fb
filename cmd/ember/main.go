// Command ember runs the Ember interpreter: a script file, an inline
// expression, or an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/ember/cmd/ember/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
