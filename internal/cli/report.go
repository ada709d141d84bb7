package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derecord/derecord/internal/report"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	RunID string
}

// RunListing is the data payload when listing runs.
type RunListing struct {
	Runs []report.Run `json:"runs"`
}

func (l RunListing) String() string {
	if len(l.Runs) == 0 {
		return "no recorded runs"
	}
	var sb strings.Builder
	for _, r := range l.Runs {
		fmt.Fprintf(&sb, "%s  level=%d files=%d decls=%d\n", r.ID, r.LanguageLevel, r.FileCount, r.DeclCount)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RewriteListing is the data payload when showing one run.
type RewriteListing struct {
	Rewrites []report.Rewrite `json:"rewrites"`
}

func (l RewriteListing) String() string {
	if len(l.Rewrites) == 0 {
		return "no recorded rewrites"
	}
	var sb strings.Builder
	for _, rw := range l.Rewrites {
		fmt.Fprintf(&sb, "%-16s %s %s\n", rw.Outcome, rw.Path, rw.Declaration)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "report <report.db>",
		Short:         "Show recorded rewrite runs",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "show declaration outcomes for one run")

	return cmd
}

func runReport(opts *ReportOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(dbPath); err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "report database not found", Err: err}
	}
	store, err := report.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "opening report database", Err: err}
	}
	defer store.Close()

	ctx := context.Background()
	if opts.RunID != "" {
		rewrites, err := store.ListRewrites(ctx, opts.RunID)
		if err != nil {
			formatter.Error(ErrCodeIO, err.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "reading rewrites", Err: err}
		}
		return formatter.Success(RewriteListing{Rewrites: rewrites})
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "reading runs", Err: err}
	}
	return formatter.Success(RunListing{Runs: runs})
}
