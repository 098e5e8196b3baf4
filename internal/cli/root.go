// Package cli implements the csvprofile command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/csvprofile/internal/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that set flag values,
// e.g. CSVPROFILE_FORMAT=json or CSVPROFILE_LOG_LEVEL=debug.
const EnvPrefix = "CSVPROFILE"

// NewRootCommand builds the command tree. Flags, CSVPROFILE_* variables and
// an optional YAML config file all feed one viper instance, in that order
// of precedence.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "csvprofile",
		Short:         "Profile CSV files: size, shape, column widths, types and statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfigFile(v)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file with flag defaults")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	_ = v.BindPFlags(pf)

	root.AddCommand(newProfileCommand(v))
	return root
}

func readConfigFile(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are printed to stderr as their user message and support code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var userErr *core.UserError
	if errors.As(err, &userErr) {
		fmt.Fprintf(stderr, "Error: %s (Code: %s). %s\n", userErr.User.Message, userErr.User.Code, userErr.User.Action)
		fmt.Fprintf(stderr, "  %v\n", userErr.Technical)
		return 1
	}
	fmt.Fprintln(stderr, "Error:", err)
	var rtErr *runtimeError
	if errors.As(err, &rtErr) {
		return 1
	}
	return 2
}

// runtimeError marks a failure after the options were accepted, such as
// an unwritable output file. It exits 1 like a profiling failure.
type runtimeError struct {
	err error
}

func (e *runtimeError) Error() string { return e.err.Error() }

func (e *runtimeError) Unwrap() error { return e.err }
