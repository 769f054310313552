package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/qa"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	template string // template schema file (TOML)
	builtin  string // built-in template name
	payload  string // payload file the artifact was rendered from
	strict   bool   // treat warnings as failures
}

// newValidateCmd creates the validate command, which re-derives the
// expected deck content from the schema and payload and diffs it
// against an existing artifact.
func newValidateCmd() *cobra.Command {
	opts := &validateOpts{}

	cmd := &cobra.Command{
		Use:   "validate <artifact>",
		Short: "Check a deck artifact against its template and payload",
		Long: `Validate re-opens a rendered artifact and independently re-derives
every value the template binds: formatted KPIs, table cells, chart
series, and divider styling. Any divergence is reported as an issue.

The command exits non-zero when the report contains errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template schema file (TOML)")
	cmd.Flags().StringVar(&opts.builtin, "builtin", "", "built-in template name (e.g. monthly)")
	cmd.Flags().StringVarP(&opts.payload, "payload", "p", "", "payload file the artifact was rendered from")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat warnings as failures")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func runValidate(cmd *cobra.Command, artifactPath string, opts *validateOpts) error {
	logger := loggerFromContext(cmd.Context())

	tmpl, _, err := loadTemplate(opts.template, opts.builtin)
	if err != nil {
		return err
	}

	data, err := payload.Load(opts.payload)
	if err != nil {
		return err
	}

	artifact, err := os.ReadFile(artifactPath)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	prog := newProgress(logger)
	report := qa.New(tmpl).Validate(artifact, data)
	prog.done(fmt.Sprintf("Checked %d slides", len(tmpl.Slides)))

	fmt.Print(renderReport(report))

	if !report.Passed() {
		return fmt.Errorf("validation failed: %s", report.Summary())
	}
	if opts.strict && report.WarningCount() > 0 {
		return fmt.Errorf("validation failed in strict mode: %s", report.Summary())
	}
	return nil
}
