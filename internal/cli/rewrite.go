package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/derecord/derecord/internal/jast"
	"github.com/derecord/derecord/internal/manifest"
	"github.com/derecord/derecord/internal/parser"
	"github.com/derecord/derecord/internal/printer"
	"github.com/derecord/derecord/internal/report"
	"github.com/derecord/derecord/internal/rewrite"
)

// RewriteOptions holds flags for the rewrite command.
type RewriteOptions struct {
	*RootOptions
	DryRun bool
}

// RewriteSummary is the data payload of a completed run.
type RewriteSummary struct {
	RunID     string           `json:"run_id,omitempty"`
	Files     int              `json:"files"`
	Rewritten int              `json:"rewritten"`
	Skipped   int              `json:"skipped"`
	Failed    int              `json:"failed"`
	Outcomes  []report.Rewrite `json:"outcomes,omitempty"`
}

func (s RewriteSummary) String() string {
	return fmt.Sprintf("%d file(s): %d record(s) rewritten, %d skipped, %d failed",
		s.Files, s.Rewritten, s.Skipped, s.Failed)
}

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RewriteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rewrite <manifest.cue>",
		Short: "Rewrite records to classes per a run manifest",
		Long: `Rewrite Java record declarations to equivalent classes.

The manifest names the sources to rewrite, their language level and an
optional SQLite report path. Files are rewritten in place unless --dry-run
is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report what would change without writing files")

	return cmd
}

func runRewrite(opts *RewriteOptions, manifestPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		formatter.Error(ErrCodeManifest, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "manifest not readable", Err: err}
	}
	spec, err := manifest.LoadFile(manifestPath)
	if err != nil {
		formatter.Error(ErrCodeManifest, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "invalid manifest", Err: err}
	}

	baseDir := filepath.Dir(manifestPath)
	files, err := CollectJavaFiles(baseDir, spec.Include)
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "collecting sources", Err: err}
	}
	formatter.VerboseLog("Found %d Java file(s)", len(files))

	// Parse everything up front so the type index covers interfaces
	// declared in sibling files.
	sources := make(map[string]string, len(files))
	units := make(map[string]*jast.CompilationUnit, len(files))
	ordered := make([]*jast.CompilationUnit, 0, len(files))
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
		sources[path] = string(data)
		units[path] = unit
		ordered = append(ordered, unit)
	}

	engine := rewrite.New(spec.LanguageLevel, ordered...)

	summary := RewriteSummary{Files: len(files)}
	var outcomes []report.Rewrite
	declCount := 0

	for _, path := range files {
		unit := units[path]
		rewritten, result := engine.RewriteUnit(unit)
		beforeHash := report.SourceHash(sources[path])
		afterHash := beforeHash

		if result.Changed && result.FirstError() == nil {
			out := printer.Print(rewritten)
			afterHash = report.SourceHash(out)
			if !opts.DryRun {
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					formatter.Error(ErrCodeIO, err.Error(), nil)
					return &ExitError{Code: ExitCommandError, Message: "writing source", Err: err}
				}
			}
		}

		for _, d := range result.Decls {
			declCount++
			detail := ""
			if d.Err != nil {
				detail = d.Err.Error()
			}
			outcomes = append(outcomes, report.Rewrite{
				Path:        path,
				Declaration: d.Name,
				Outcome:     string(d.Outcome),
				BeforeHash:  beforeHash,
				AfterHash:   afterHash,
				Detail:      detail,
			})
			switch d.Outcome {
			case rewrite.OutcomeRewritten:
				summary.Rewritten++
				formatter.VerboseLog("rewrote %s in %s", d.Name, path)
			case rewrite.OutcomeSkippedGeneric:
				summary.Skipped++
				formatter.VerboseLog("skipped generic record %s in %s", d.Name, path)
			case rewrite.OutcomeFailed:
				summary.Failed++
				formatter.VerboseLog("failed %s in %s: %v", d.Name, path, d.Err)
			}
		}
	}

	if spec.Report != "" && !opts.DryRun {
		runID, err := persistReport(spec, manifestBytes, baseDir, outcomes, len(files), declCount)
		if err != nil {
			formatter.Error(ErrCodeIO, err.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "writing report", Err: err}
		}
		summary.RunID = runID
	}
	summary.Outcomes = outcomes

	if err := formatter.Success(summary); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d declaration(s) failed", summary.Failed)}
	}
	return nil
}

func persistReport(spec *manifest.RunSpec, manifestBytes []byte, baseDir string, outcomes []report.Rewrite, files, decls int) (string, error) {
	path := spec.Report
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	store, err := report.Open(path)
	if err != nil {
		return "", err
	}
	defer store.Close()

	ctx := context.Background()
	runID := report.NewRunID()
	err = store.WriteRun(ctx, report.Run{
		ID:            runID,
		ManifestHash:  report.ManifestHash(manifestBytes),
		LanguageLevel: spec.LanguageLevel,
		FileCount:     files,
		DeclCount:     decls,
	})
	if err != nil {
		return "", err
	}
	for _, rw := range outcomes {
		rw.RunID = runID
		if err := store.WriteRewrite(ctx, rw); err != nil {
			return "", err
		}
	}
	return runID, nil
}
