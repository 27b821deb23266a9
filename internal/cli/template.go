package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
	"github.com/diskforge/diskforge/pkg/pipeline"
)

// templateOpts holds the command-line flags for the template command.
type templateOpts struct {
	specOpts
	kind    string   // diagram kind: template, cutting, sensor
	formats []string // output formats: svg, png, pdf, json
	style   string   // visual style: print, blueprint
	scale   float64  // drawing scale factor
	output  string   // output file or base path
	noCache bool     // disable artifact caching
	refresh bool     // recompute even on cache hit
}

// templateCommand creates the template command for rendering disk diagrams.
func (c *CLI) templateCommand() *cobra.Command {
	var formatsStr string
	opts := templateOpts{
		kind:  "template",
		style: pipeline.DefaultStyle,
		scale: 0, // 0 lets the pipeline default apply
	}

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Render a disk fabrication diagram",
		Long: `Render a fabrication diagram for an encoder disk.

Kinds:
  template  actual-size cutting template with slot wedges and tick marks
  cutting   phase-by-phase cutting sequence diagram
  sensor    sensor placement diagram`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runTemplate(cmd.Context(), &opts)
		},
	}

	addSpecFlags(cmd, &opts.specOpts)
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", opts.kind, "diagram kind: template (default), cutting, sensor")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: print (default), blueprint")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "drawing scale factor (default 1; use 10 for small disks)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runTemplate(ctx context.Context, opts *templateOpts) error {
	spec, err := opts.resolve()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Spec:    spec,
		Kind:    opts.kind,
		Scale:   opts.scale,
		Formats: opts.formats,
		Style:   opts.style,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	res, _ := disk.ComputeResolution(spec)
	printDiskStats(spec.SlotCount, res.MMPerSlot, result.CacheInfo.RenderHit)

	written := 0
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			printError("%s: %s", format, errors.UserMessage(result.Failed[format]))
			continue
		}
		path := outputPath(opts.output, opts.kind, spec, format)
		if err := writeArtifact(path, data); err != nil {
			printError("%s: %s", format, errors.UserMessage(err))
			continue
		}
		printFile(path)
		written++
	}
	if written == 0 {
		return errors.New(errors.ErrCodeExportFailed, "no artifacts written")
	}

	printNewline()
	printNextStep("Generate the matching guide", "diskforge guide"+presetArg(opts.preset))
	return nil
}

// outputPath determines the output filename for a format. An explicit
// --output wins for a single format; with multiple formats its
// extension is replaced. The default mirrors the classic file naming:
// encoder_disk_template_100mm.svg.
func outputPath(output, kind string, spec disk.Spec, format string) string {
	if output != "" {
		ext := filepath.Ext(output)
		base := strings.TrimSuffix(output, ext)
		return base + "." + format
	}
	return fmt.Sprintf("encoder_disk_%s_%.0fmm.%s", kind, spec.DiameterMM, format)
}

// writeArtifact writes data to path, wrapping failures as export errors.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeExportFailed, err, "creating output directory")
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "writing %s", path)
	}
	return nil
}

func presetArg(preset string) string {
	if preset == "" {
		return ""
	}
	return " --preset " + preset
}
