package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/deckmason/deckmason/pkg/schema"
	"github.com/deckmason/deckmason/pkg/schema/builtin"
)

// builtins maps built-in template names to their constructors.
var builtins = map[string]func() *schema.Template{
	"monthly": builtin.MonthlyReport,
}

// builtinTemplate resolves a built-in template by name.
func builtinTemplate(name string) (*schema.Template, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in template %q (available: %s)", name, builtinNames())
	}
	return ctor(), nil
}

func builtinNames() string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	line := ""
	for i, name := range names {
		if i > 0 {
			line += ", "
		}
		line += name
	}
	return line
}

// newTemplateCmd creates the template command group.
func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage built-in template schemas",
	}

	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateExportCmd())

	return cmd
}

// newTemplateListCmd creates the "template list" subcommand.
func newTemplateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(builtins))
			for name := range builtins {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				tmpl := builtins[name]()
				printKeyValue(name, fmt.Sprintf("%s (%d slides)", tmpl.Name, len(tmpl.Slides)))
			}
			return nil
		},
	}
}

// newTemplateExportCmd creates the "template export" subcommand, which
// writes a built-in template as a TOML schema file. The exported file
// is a starting point for custom templates.
func newTemplateExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a built-in template as a TOML schema file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := builtinTemplate(args[0])
			if err != nil {
				return err
			}
			data, err := tmpl.Encode()
			if err != nil {
				return err
			}
			if output == "-" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write template: %w", err)
			}
			printSuccess("Exported %s", tmpl.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (\"-\" writes to stdout)")

	return cmd
}
