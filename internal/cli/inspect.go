package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/deckmason/deckmason/pkg/schema"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	builtin string // built-in template name, used when no file is given
	keys    bool   // list every data key with its owning slide
}

// newInspectCmd creates the inspect command, which prints a summary of
// a template schema: dimensions, slides, slots, and data bindings.
func newInspectCmd() *cobra.Command {
	opts := &inspectOpts{}

	cmd := &cobra.Command{
		Use:   "inspect [template.toml]",
		Short: "Summarize a template's slides, slots, and data keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runInspect(path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.builtin, "builtin", "", "built-in template name (e.g. monthly)")
	cmd.Flags().BoolVar(&opts.keys, "keys", false, "list every data key with its owning slide")

	return cmd
}

func runInspect(path string, opts *inspectOpts) error {
	tmpl, _, err := loadTemplate(path, opts.builtin)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(tmpl.Name))
	printKeyValue("dimensions", fmt.Sprintf("%.3f x %.3f in", tmpl.WidthInches, tmpl.HeightInches))
	printKeyValue("slides", fmt.Sprintf("%d", len(tmpl.Slides)))
	printKeyValue("data keys", fmt.Sprintf("%d", len(tmpl.DataKeys())))
	fmt.Println()

	for i := range tmpl.Slides {
		slide := &tmpl.Slides[i]
		title := slide.Title
		if title == "" {
			title = slide.Name
		}
		printInfo("%d: %s %s", slide.Index, title, StyleDim.Render("("+string(slide.Kind)+")"))
		for j := range slide.Slots {
			printDetail("%s", slotSummary(&slide.Slots[j]))
		}
	}

	if opts.keys {
		fmt.Println()
		keys := make([]string, 0, len(tmpl.DataKeys()))
		for key := range tmpl.DataKeys() {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			printKeyValue(tmpl.SlideForKey(key), key)
		}
	}
	return nil
}

// slotSummary describes a slot in one line: name, kind, and whatever
// shape detail applies (chart kind, column count).
func slotSummary(s *schema.Slot) string {
	line := fmt.Sprintf("%s: %s", s.Name, s.Kind)
	if s.ChartKind != "" {
		line += fmt.Sprintf(" (%s)", s.ChartKind)
	}
	if len(s.Columns) > 0 {
		line += fmt.Sprintf(" (%d columns)", len(s.Columns))
	}
	if s.DataKey != "" {
		line += " " + iconArrow + " " + s.DataKey
	}
	return line
}
