package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2skel"
	"github.com/wbrown/img2skel/imageutil"
)

func grayscaleCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "grayscale",
		Short: "Replace every pixel with its luminance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			m, err := img2skel.Grayscale(buf)
			if err != nil {
				return err
			}
			return opts.emit(cmd, m)
		},
	}
	addIOFlags(c, opts)
	return c
}

func bandCmd(opts *options) *cobra.Command {
	var p1, p2 int

	c := &cobra.Command{
		Use:   "band",
		Short: "Paint pixels whose luminance lies in [p1, p2] white",
		Long: "Paint pixels whose luminance lies in [p1, p2] white and keep the rest.\n" +
			"Without --p1/--p2 or a configured band, the band is derived from the\n" +
			"image's luminance range.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			band, err := resolveBand(buf, cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("p1") {
				band.Low = p1
			}
			if cmd.Flags().Changed("p2") {
				band.High = p2
			}
			m, err := img2skel.BrightnessBand(buf, band.Low, band.High)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Band: %d-%d\n", band.Low, band.High)
			return opts.emit(cmd, m)
		},
	}
	addIOFlags(c, opts)
	c.Flags().IntVar(&p1, "p1", 0, "Lower luminance bound (inclusive)")
	c.Flags().IntVar(&p2, "p2", 0, "Upper luminance bound (inclusive)")
	return c
}

// resolveBand returns the configured band, or derives one from buf.
func resolveBand(buf img2skel.Buffer, cfg img2skel.Config) (img2skel.Band, error) {
	if cfg.Band != nil {
		return *cfg.Band, nil
	}
	lo, hi, err := img2skel.Brightness(buf)
	if err != nil {
		return img2skel.Band{}, err
	}
	return img2skel.DefaultBand(lo, hi), nil
}

func sharpenCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "sharpen",
		Short: "Sharpen against a weighted 3x3 blur of the luminance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			m, err := img2skel.Sharpen(buf, cfg)
			if err != nil {
				return err
			}
			return opts.emit(cmd, m)
		},
	}
	addIOFlags(c, opts)
	return c
}

func skeletonCmd(opts *options) *cobra.Command {
	var (
		darkness  int
		maxPasses int
		stepsDir  string
		overlay   string
		legacy    bool
	)

	c := &cobra.Command{
		Use:   "skeleton",
		Short: "Thin the dark regions of the grayscale image to one pixel wide lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("darkness") {
				cfg.Darkness = darkness
			}
			if cmd.Flags().Changed("max-passes") {
				cfg.MaxPasses = maxPasses
			}
			if legacy {
				cfg.LegacyBinarize = true
				cfg.LegacyEdges = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var overlayColor img2skel.RGB
			if overlay != "" {
				if overlayColor, err = img2skel.ParseHex(overlay); err != nil {
					return fmt.Errorf("invalid --overlay color: %w", err)
				}
			}

			var stepErr error
			if stepsDir != "" {
				if err := os.MkdirAll(stepsDir, 0o755); err != nil {
					return fmt.Errorf("failed to create steps directory: %w", err)
				}
				cfg.OnPass = func(pass int, m img2skel.Matrix[uint8], deletions int) {
					if stepErr != nil {
						return
					}
					path := filepath.Join(stepsDir, fmt.Sprintf("pass_%03d.png", pass))
					stepErr = img2skel.SaveBinary(m, cfg.Foreground, cfg.Background, path)
				}
			}

			gray, err := img2skel.Grayscale(buf)
			if err != nil {
				return err
			}
			res, thinErr := img2skel.Skeletonize(cmd.Context(),
				img2skel.BufferFromMatrix(gray), cfg)
			if thinErr != nil && !errors.Is(thinErr, img2skel.ErrConvergenceExceeded) {
				return thinErr
			}
			if stepErr != nil {
				return fmt.Errorf("failed to write step image: %w", stepErr)
			}

			out := res.Image
			if overlay != "" {
				if out, err = img2skel.Overlay(gray, res.Matrix, overlayColor); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Skeleton: %d passes, %d pixels deleted\n",
				res.Passes, res.Deletions)
			if err := opts.emit(cmd, out); err != nil {
				return err
			}
			// A truncated skeleton is still written, but the run fails.
			return thinErr
		},
	}
	addIOFlags(c, opts)
	f := c.Flags()
	f.IntVar(&darkness, "darkness", 15, "Largest channel value treated as foreground")
	f.IntVar(&maxPasses, "max-passes", 0, "Thinning pass limit (0 = derived from the image diagonal)")
	f.StringVar(&stepsDir, "steps", "", "Directory to write one PNG per thinning pass")
	f.StringVar(&overlay, "overlay", "", "Paint the skeleton over the grayscale image in this hex color")
	f.BoolVar(&legacy, "legacy", false, "Use the legacy binarization and neighbor addressing")
	return c
}

func allCmd(opts *options) *cobra.Command {
	var (
		columns    int
		scale      int
		noCaptions bool
	)

	c := &cobra.Command{
		Use:   "all",
		Short: "Run every transform and lay the results out on one contact sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			st, runErr := img2skel.NewPipeline(cfg).Run(cmd.Context(), buf)
			if runErr != nil && !errors.Is(runErr, img2skel.ErrConvergenceExceeded) {
				return runErr
			}

			panels := st.Panels()
			if opts.output == "" {
				out := cmd.OutOrStdout()
				for _, p := range panels {
					fmt.Fprintln(out, p.Title)
					fmt.Fprint(out, img2skel.RenderToAnsi(p.Matrix))
				}
				return runErr
			}

			sheet := img2skel.DefaultSheetOptions()
			sheet.Columns = columns
			sheet.Scale = scale
			if noCaptions {
				sheet.FontSize = 0
			}
			if err := img2skel.SaveContactSheet(panels, sheet, opts.output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d panels)\n", opts.output, len(panels))
			return runErr
		},
	}
	addIOFlags(c, opts)
	f := c.Flags()
	f.IntVar(&columns, "columns", 0, "Panels per row (0 = all on one row)")
	f.IntVar(&scale, "scale", 1, "Pixel size of every cell on the sheet")
	f.BoolVar(&noCaptions, "no-captions", false, "Omit the panel titles")
	return c
}

var stageNames = []string{"original", "grayscale", "band", "sharpen", "skeleton"}

func previewCmd(opts *options) *cobra.Command {
	var (
		stage string
		width int
	)

	c := &cobra.Command{
		Use:   "preview",
		Short: "Show one stage in the terminal using half-block characters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx := -1
			for i, name := range stageNames {
				if strings.EqualFold(stage, name) {
					idx = i
				}
			}
			if idx < 0 {
				return fmt.Errorf("unknown stage %q (expected %s)",
					stage, strings.Join(stageNames, "|"))
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			img, err := opts.loadInput()
			if err != nil {
				return err
			}
			// One column per pixel.
			img = imageutil.Fit(img, width, 0, imageutil.InterpolationArea)

			p := img2skel.NewPipeline(cfg)
			p.Skeleton = stageNames[idx] == "skeleton"
			st, err := p.Run(cmd.Context(), img2skel.BufferFromImage(img.RGBA))
			if err != nil && !errors.Is(err, img2skel.ErrConvergenceExceeded) {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), img2skel.RenderToAnsi(st.Panels()[idx].Matrix))
			return err
		},
	}
	c.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the input image (required)")
	_ = c.MarkFlagRequired("input")
	c.Flags().StringVar(&stage, "stage", "skeleton", "Stage to show: "+strings.Join(stageNames, "|"))
	c.Flags().IntVar(&width, "width", 80, "Terminal columns to fit the image to")
	return c
}

func brightnessCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "brightness",
		Short: "Print the luminance range and the band derived from it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			lo, hi, err := img2skel.Brightness(buf)
			if err != nil {
				return err
			}
			band := img2skel.DefaultBand(lo, hi)
			fmt.Fprintf(cmd.OutOrStdout(), "min %d max %d band %d-%d\n",
				lo, hi, band.Low, band.High)
			return nil
		},
	}
	c.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the input image (required)")
	_ = c.MarkFlagRequired("input")
	return c
}
