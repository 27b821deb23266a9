package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
	"github.com/diskforge/diskforge/pkg/pipeline"
)

// kitOpts holds the command-line flags for the kit command.
type kitOpts struct {
	specOpts
	dir     string   // output directory
	formats []string // diagram formats for each kind
	style   string
	scale   float64
	noCache bool
	refresh bool
}

// kitCommand creates the kit command: the complete fabrication bundle.
func (c *CLI) kitCommand() *cobra.Command {
	var formatsStr string
	opts := kitOpts{style: pipeline.DefaultStyle}

	cmd := &cobra.Command{
		Use:   "kit",
		Short: "Generate the complete fabrication kit",
		Long: `Generate everything needed to fabricate a disk into one directory:
the cutting template, cutting sequence diagram, and sensor placement
diagram in each requested format, all three guide formats, and a
manifest describing the outputs.

Individual file failures (for example PDF conversion without librsvg
installed) are reported and skipped; the rest of the kit is still
written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runKit(cmd.Context(), &opts)
		},
	}

	addSpecFlags(cmd, &opts.specOpts)
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "output directory (default <diameter>mm_encoder_kit)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "diagram format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: print (default), blueprint")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "drawing scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runKit(ctx context.Context, opts *kitOpts) error {
	spec, err := opts.resolve()
	if err != nil {
		return err
	}

	dir := opts.dir
	if dir == "" {
		dir = fmt.Sprintf("%.0fmm_encoder_kit", spec.DiameterMM)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	spin := newSpinnerWithContext(ctx, "Generating fabrication kit...")
	spin.Start()

	written, failed := 0, 0
	var manifest *pipeline.Manifest

	// One diagram plan per kind, each rendered in every format.
	for _, kind := range []string{"template", "cutting", "sensor"} {
		kindOpts := pipeline.Options{
			Spec:    spec,
			Kind:    kind,
			Scale:   opts.scale,
			Formats: opts.formats,
			Style:   opts.style,
			Refresh: opts.refresh,
			Logger:  c.Logger,
		}
		result, err := runner.Execute(ctx, kindOpts)
		if err != nil {
			spin.StopWithError(errors.UserMessage(err))
			return err
		}
		if manifest == nil {
			manifest = pipeline.NewManifest(result, kindOpts)
			manifest.Kind = "" // the kit spans all kinds
		}

		for _, format := range opts.formats {
			name := fmt.Sprintf("encoder_disk_%s_%.0fmm.%s", kind, spec.DiameterMM, format)
			data, ok := result.Artifacts[format]
			if !ok {
				failed++
				c.Logger.Warn("skipping artifact", "file", name, "err", result.Failed[format])
				continue
			}
			if err := writeArtifact(filepath.Join(dir, name), data); err != nil {
				failed++
				c.Logger.Warn("skipping artifact", "file", name, "err", err)
				continue
			}
			manifest.Add(name, format, data)
			written++
		}
	}

	// All three guide formats.
	guideRun, err := runner.Execute(ctx, pipeline.Options{
		Spec:         spec,
		GuideFormats: []string{pipeline.GuideMarkdown, pipeline.GuideText, pipeline.GuidePrint},
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	})
	if err != nil {
		spin.StopWithError(errors.UserMessage(err))
		return err
	}
	for _, format := range []string{pipeline.GuideMarkdown, pipeline.GuideText, pipeline.GuidePrint} {
		data := guideRun.Guides[format]
		name := filepath.Base(guidePath("", spec, format))
		if err := writeArtifact(filepath.Join(dir, name), data); err != nil {
			failed++
			c.Logger.Warn("skipping guide", "file", name, "err", err)
			continue
		}
		manifest.Add(name, format, data)
		written++
	}

	// Manifest last, so it lists everything that actually landed.
	if data, err := manifest.Marshal(); err == nil {
		if err := writeArtifact(filepath.Join(dir, "manifest.json"), data); err == nil {
			written++
		}
	}

	if written == 0 {
		spin.StopWithError("no files written")
		return errors.New(errors.ErrCodeExportFailed, "no files written")
	}
	spin.StopWithSuccess(fmt.Sprintf("Fabrication kit ready: %d file(s)", written))
	if failed > 0 {
		printWarning("%d file(s) skipped", failed)
	}

	res, _ := disk.ComputeResolution(spec)
	printDiskStats(spec.SlotCount, res.MMPerSlot, false)
	printFile(dir)
	return nil
}
