package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JonMunkholm/csvprofile/internal/core"
	"github.com/JonMunkholm/csvprofile/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newProfileCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <file>",
		Short: "Profile a CSV file and print its report",
		Long: `Profile reads a CSV (or TSV) file and reports its size, row and column
counts, the maximum width of each column, the describe statistics of each
column, and each column's data type and category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, v, args[0])
		},
	}

	f := cmd.Flags()
	f.StringP("format", "f", "text", "output format: text, json or yaml")
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.StringP("delimiter", "d", "", "field delimiter: comma, semicolon, tab or pipe (default: by extension)")
	f.String("encoding", "utf-8", "source encoding: utf-8, latin1, windows-1252, utf-16, utf-16le, utf-16be")
	f.Duration("timeout", 0, "abort profiling after this long (0 = no limit)")
	_ = v.BindPFlags(f)

	return cmd
}

func runProfile(cmd *cobra.Command, v *viper.Viper, path string) error {
	// Option errors are usage mistakes, reported without a support code.
	format, err := core.ParseFormat(v.GetString("format"), core.FormatText)
	if err != nil {
		return err
	}
	comma, err := core.ParseDelimiter(v.GetString("delimiter"))
	if err != nil {
		return err
	}
	enc, err := core.ParseEncoding(v.GetString("encoding"))
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), v.GetString("log-level"), v.GetString("log-format")).
		With("path", path)

	ctx := cmd.Context()
	if timeout := v.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	profiler := &core.Profiler{Comma: comma, Encoding: enc}
	report, err := profiler.ProfileContext(ctx, path)
	if err != nil {
		logger.Debug("profile failed", "error", err)
		return core.NewUserError(err)
	}
	logger.Info("profile completed",
		"rows", report.NumRows,
		"columns", report.NumColumns,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	output := v.GetString("output")
	if output == "" {
		if err := writeReport(cmd.OutOrStdout(), report, format); err != nil {
			return &runtimeError{err: err}
		}
		return nil
	}
	if err := writeReportFile(output, report, format); err != nil {
		return &runtimeError{err: err}
	}
	return nil
}

func writeReportFile(path string, report *core.FileReport, format core.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeReport(file, report, format); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func writeReport(w io.Writer, report *core.FileReport, format core.Format) error {
	if err := report.Render(w, format); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
