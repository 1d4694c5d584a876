// Command quill serves the blog graph over a JSON-lines request stream or
// as an AWS Lambda function.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "quill: %v\n", err)
		return 1
	}
	return 0
}

// options holds the persistent flags.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	seedFile   string

	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stderr: stderr}

	root := &cobra.Command{
		Use:           "quill",
		Short:         "In-memory user/post/comment graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to the YAML configuration file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text, json (overrides config)")
	pf.StringVar(&opts.seedFile, "seed", "", "YAML seed fixture to import at startup (overrides config)")

	root.AddCommand(newExecCmd(opts))
	root.AddCommand(newLambdaCmd(opts))
	return root
}
