package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derecord/derecord/internal/jast"
	"github.com/derecord/derecord/internal/parser"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Level int
}

// CheckFinding is one record declaration that would be rewritten.
type CheckFinding struct {
	Path        string `json:"path"`
	Declaration string `json:"declaration"`
	Generic     bool   `json:"generic"`
}

// CheckResult is the data payload of a check run.
type CheckResult struct {
	Files    int            `json:"files"`
	Findings []CheckFinding `json:"findings"`
}

func (r CheckResult) String() string {
	if len(r.Findings) == 0 {
		return fmt.Sprintf("%d file(s): no record declarations", r.Files)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d file(s): %d record declaration(s)\n", r.Files, len(r.Findings))
	for _, f := range r.Findings {
		note := ""
		if f.Generic {
			note = " (generic, would be skipped)"
		}
		fmt.Fprintf(&sb, "  %s: %s%s\n", f.Path, f.Declaration, note)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "List record declarations without rewriting anything",
		Long: `Scan Java sources and list every record declaration a rewrite run
would lower. Exits 1 when any non-generic record remains, which makes the
command usable as a migration gate in CI.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Level, "level", 17, "Java language level of the sources")

	return cmd
}

func runCheck(opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	files, err := CollectJavaFiles(".", paths)
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "collecting sources", Err: err}
	}

	result := CheckResult{Files: len(files)}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			formatter.Error(ErrCodeIO, err.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "reading source", Err: err}
		}
		unit, err := parser.Parse(string(data), path)
		if err != nil {
			formatter.Error(ErrCodeParse, err.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "parsing source", Err: err}
		}
		for _, decl := range unit.Decls {
			if decl.Kind == jast.KindRecord {
				result.Findings = append(result.Findings, CheckFinding{
					Path:        path,
					Declaration: decl.Name,
					Generic:     len(decl.TypeParams) > 0,
				})
			}
		}
	}

	if err := formatter.Success(result); err != nil {
		return err
	}

	for _, f := range result.Findings {
		if !f.Generic {
			return &ExitError{Code: ExitFailure, Message: "record declarations remain"}
		}
	}
	return nil
}
