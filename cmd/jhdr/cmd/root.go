package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jhdr",
	Short: "Header compiler for classpath-based dependency binding",
	Long: `jhdr reads source declarations and a classpath of pre-compiled class
files and binds them into fully-resolved, signature-typed declarations:
hierarchy, type parameters, member signatures, constant values, and
annotations — never method bodies or debug info.

It exists so a build system can resolve the header-level shape of a large
source tree's dependency graph in parallel, without waiting for full
compilation of any of it.`,
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

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
