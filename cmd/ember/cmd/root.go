package cmd

import (
	"fmt"

	"github.com/cwbudde/ember/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "Ember interpreter",
	Long: `ember is a tree-walking interpreter for the Ember scripting language:
a small class-based language with single inheritance, exceptions, and a
module system, evaluated directly over its parsed AST.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose logging")
}
