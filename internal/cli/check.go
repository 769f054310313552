package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/qa"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	template string // template schema file (TOML)
	builtin  string // built-in template name
}

// newCheckCmd creates the check command, which verifies a payload
// against a template without rendering anything. Useful in data
// pipelines as a pre-flight gate before generate.
func newCheckCmd() *cobra.Command {
	opts := &checkOpts{}

	cmd := &cobra.Command{
		Use:   "check <payload.yaml>",
		Short: "Verify a payload covers a template's data keys",
		Long: `Check confirms a payload provides every data key the template binds
and that the values have the structure their slots expect: rows for
tables, lists for chart series, scalars for KPIs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template schema file (TOML)")
	cmd.Flags().StringVar(&opts.builtin, "builtin", "", "built-in template name (e.g. monthly)")

	return cmd
}

func runCheck(payloadPath string, opts *checkOpts) error {
	tmpl, _, err := loadTemplate(opts.template, opts.builtin)
	if err != nil {
		return err
	}

	data, err := payload.Load(payloadPath)
	if err != nil {
		return err
	}

	report := qa.New(tmpl).ValidatePayload(data)
	fmt.Print(renderReport(report))

	if !report.Passed() {
		return fmt.Errorf("payload check failed: %s", report.Summary())
	}
	return nil
}
