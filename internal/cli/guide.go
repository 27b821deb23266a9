package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
	"github.com/diskforge/diskforge/pkg/pipeline"
)

// guideOpts holds the command-line flags for the guide command.
type guideOpts struct {
	specOpts
	formats []string // guide formats: md, txt, print
	output  string   // output file or base path
	noCache bool
	refresh bool
}

// guideCommand creates the guide command for generating instruction documents.
func (c *CLI) guideCommand() *cobra.Command {
	var formatsStr string
	opts := guideOpts{}

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Generate a fabrication instruction guide",
		Long: `Generate the step-by-step fabrication guide for an encoder disk.

Formats:
  md     Markdown guide for on-screen reading
  txt    plain text with markup stripped
  print  ruled, numbered-section layout for workshop printouts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseGuideFormats(formatsStr)
			return c.runGuide(cmd.Context(), &opts)
		},
	}

	addSpecFlags(cmd, &opts.specOpts)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "guide format(s): md (default), txt, print (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when cached")

	return cmd
}

func (c *CLI) runGuide(ctx context.Context, opts *guideOpts) error {
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
		Spec:         spec,
		GuideFormats: opts.formats,
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d guide(s)", len(result.Guides)))

	res, _ := disk.ComputeResolution(spec)
	printDiskStats(spec.SlotCount, res.MMPerSlot, result.CacheInfo.GuideHit)

	written := 0
	for _, format := range opts.formats {
		path := guidePath(opts.output, spec, format)
		if err := writeArtifact(path, result.Guides[format]); err != nil {
			printError("%s: %s", format, errors.UserMessage(err))
			continue
		}
		printFile(path)
		written++
	}
	if written == 0 {
		return errors.New(errors.ErrCodeExportFailed, "no guides written")
	}
	return nil
}

// guidePath determines the guide output filename for a format,
// defaulting to the classic naming scheme:
// 100mm_encoder_disk_fabrication_guide.md and
// 100mm_encoder_disk_PRINT_GUIDE.txt.
func guidePath(output string, spec disk.Spec, format string) string {
	if output != "" {
		base := strings.TrimSuffix(output, filepath.Ext(output))
		if format == pipeline.GuidePrint {
			return base + "_PRINT.txt"
		}
		return base + "." + guideExt(format)
	}
	if format == pipeline.GuidePrint {
		return fmt.Sprintf("%.0fmm_encoder_disk_PRINT_GUIDE.txt", spec.DiameterMM)
	}
	return fmt.Sprintf("%.0fmm_encoder_disk_fabrication_guide.%s", spec.DiameterMM, guideExt(format))
}

func guideExt(format string) string {
	if format == pipeline.GuidePrint {
		return "txt"
	}
	return format
}
