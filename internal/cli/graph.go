package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckmason/deckmason/pkg/schemagraph"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	builtin string // built-in template name, used when no file is given
	output  string // output file path ("-" writes DOT to stdout)
	format  string // output format: dot, svg, png
	keys    bool   // include data-key nodes
}

// newGraphCmd creates the graph command, which draws the template
// structure (template -> slides -> slots -> keys) as a diagram.
func newGraphCmd() *cobra.Command {
	opts := &graphOpts{}

	cmd := &cobra.Command{
		Use:   "graph [template.toml]",
		Short: "Draw a template's structure as DOT, SVG, or PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runGraph(cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.builtin, "builtin", "", "built-in template name (e.g. monthly)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file (\"-\" writes DOT to stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatDOT, "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.keys, "keys", false, "include data-key nodes in the diagram")

	return cmd
}

func runGraph(cmd *cobra.Command, path string, opts *graphOpts) error {
	logger := loggerFromContext(cmd.Context())

	tmpl, _, err := loadTemplate(path, opts.builtin)
	if err != nil {
		return err
	}

	dot := schemagraph.ToDOT(tmpl, schemagraph.Options{DataKeys: opts.keys})

	var out []byte
	switch strings.ToLower(opts.format) {
	case formatDOT:
		out = []byte(dot)
	case formatSVG:
		prog := newProgress(logger)
		out, err = schemagraph.RenderSVG(dot)
		if err != nil {
			return err
		}
		prog.done("Rendered SVG")
	case formatPNG:
		prog := newProgress(logger)
		out, err = schemagraph.RenderPNG(dot)
		if err != nil {
			return err
		}
		prog.done("Rendered PNG")
	default:
		return fmt.Errorf("unknown format %q (want dot, svg, or png)", opts.format)
	}

	if opts.output == "-" {
		if opts.format != formatDOT {
			return fmt.Errorf("binary %s output needs --output", opts.format)
		}
		fmt.Print(dot)
		return nil
	}

	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	printSuccess("Drew %s", tmpl.Name)
	printFile(opts.output)
	return nil
}
