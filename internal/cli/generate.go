package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckmason/deckmason/pkg/buildinfo"
	"github.com/deckmason/deckmason/pkg/cache"
	"github.com/deckmason/deckmason/pkg/errors"
	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/qa"
	"github.com/deckmason/deckmason/pkg/render"
	"github.com/deckmason/deckmason/pkg/schema"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	template string        // template schema file (TOML)
	builtin  string        // built-in template name, used when no file is given
	output   string        // output artifact path
	noCache  bool          // bypass the artifact cache
	redis    string        // redis address for a shared cache
	ttl      time.Duration // cache entry lifetime (0 = no expiry)
	validate bool          // validate the artifact right after rendering
}

// newGenerateCmd creates the generate command, which renders a template
// plus payload into a deck artifact.
func newGenerateCmd() *cobra.Command {
	opts := &generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate <payload.yaml>",
		Short: "Render a template and payload into a deck artifact",
		Long: `Generate loads a template schema and a YAML payload, renders every
slide the schema declares, and writes the result as a deck artifact.

Rendering is cached on the pair (template, payload): repeating a
generate with unchanged inputs returns the stored artifact.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template schema file (TOML)")
	cmd.Flags().StringVar(&opts.builtin, "builtin", "", "built-in template name (e.g. monthly)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "deck.zip", "output artifact path")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for a shared artifact cache (host:port)")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 0, "cache entry lifetime (0 = keep forever)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "validate the artifact after rendering")

	return cmd
}

func runGenerate(cmd *cobra.Command, payloadPath string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return err
	}

	tmpl, tmplBytes, err := loadTemplate(opts.template, opts.builtin)
	if err != nil {
		return err
	}
	logger.Debug("loaded template", "name", tmpl.Name, "slides", len(tmpl.Slides))

	payloadBytes, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	data, err := payload.Parse(payloadBytes)
	if err != nil {
		return err
	}
	logger.Debug("loaded payload", "keys", len(data))

	store, err := newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.ArtifactKey(tmplBytes, payloadBytes, buildinfo.Generator())
	artifact, cached, err := store.Get(ctx, key)
	if err != nil {
		logger.Debug("cache lookup failed", "err", err)
		cached = false
	}

	if !cached {
		prog := newProgress(logger)
		artifact, err = render.Render(tmpl, data)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Rendered %d slides", len(tmpl.Slides)))

		if err := store.Set(ctx, key, artifact, opts.ttl); err != nil {
			logger.Debug("cache store failed", "err", err)
		}
	}

	if err := os.WriteFile(opts.output, artifact, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	printSuccess("Generated %s", tmpl.Name)
	printFile(opts.output)
	printStats(len(tmpl.Slides), len(artifact), cached)

	if opts.validate {
		report := qa.New(tmpl).Validate(artifact, data)
		fmt.Print(renderReport(report))
		if !report.Passed() {
			return fmt.Errorf("validation failed: %s", report.Summary())
		}
	}
	return nil
}

// loadTemplate resolves the template from either a schema file or a
// built-in name. It returns the parsed template plus the canonical
// bytes used for cache keying.
func loadTemplate(path, builtinName string) (*schema.Template, []byte, error) {
	switch {
	case path != "" && builtinName != "":
		return nil, nil, fmt.Errorf("--template and --builtin are mutually exclusive")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read template: %w", err)
		}
		tmpl, err := schema.Parse(data)
		if err != nil {
			return nil, nil, err
		}
		return tmpl, data, nil
	case builtinName != "":
		tmpl, err := builtinTemplate(builtinName)
		if err != nil {
			return nil, nil, err
		}
		data, err := tmpl.Encode()
		if err != nil {
			return nil, nil, err
		}
		return tmpl, data, nil
	default:
		return nil, nil, fmt.Errorf("either --template or --builtin is required")
	}
}
