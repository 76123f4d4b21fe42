// Command skelify runs the img2skel transforms on an image file and writes
// the result as an image or previews it in a truecolor terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2skel"
	"github.com/wbrown/img2skel/imageutil"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// options holds the flags shared by every command.
type options struct {
	input      string
	output     string
	configPath string
	maxSize    int
	crop       bool
	workers    int
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "skelify",
		Short:        "Grayscale, band, sharpen and skeletonize images",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger(cmd, opts.debug)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file (defaults apply to absent keys)")
	pf.IntVar(&opts.maxSize, "max-size", 300, "Shrink the input to fit a square of this size, 0 to disable")
	pf.BoolVar(&opts.crop, "crop", false, "Crop the input to --max-size instead of shrinking it")
	pf.IntVar(&opts.workers, "workers", 0, "Row bands processed concurrently (0 = GOMAXPROCS)")
	pf.BoolVar(&opts.debug, "debug", false, "Log stage timings and thinning passes to stderr")

	cmd.AddCommand(
		grayscaleCmd(opts),
		bandCmd(opts),
		sharpenCmd(opts),
		skeletonCmd(opts),
		allCmd(opts),
		previewCmd(opts),
		brightnessCmd(opts),
	)
	return cmd
}

// addIOFlags registers --input and --output on c.
func addIOFlags(c *cobra.Command, opts *options) {
	c.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the input image (required)")
	c.Flags().StringVarP(&opts.output, "output", "o", "",
		"Path to save the output (if not specified, previews on stdout)")
	_ = c.MarkFlagRequired("input")
}

// setupLogger routes library logs to stderr. Warnings are always shown;
// --debug adds per-stage and per-pass detail.
func setupLogger(cmd *cobra.Command, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	img2skel.SetLogger(slog.New(h))
}

// loadConfig reads --config, if given, and applies the flags that override
// file values.
func (o *options) loadConfig(cmd *cobra.Command) (img2skel.Config, error) {
	cfg := img2skel.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = img2skel.LoadConfig(o.configPath); err != nil {
			return img2skel.Config{}, err
		}
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = o.workers
	}
	return cfg, cfg.Validate()
}

// loadInput decodes --input and clamps it to --max-size.
func (o *options) loadInput() (*imageutil.RGBAImage, error) {
	img, err := imageutil.LoadImage(o.input)
	if err != nil {
		return nil, err
	}
	if o.maxSize <= 0 {
		return img, nil
	}
	if o.crop {
		return imageutil.Crop(img, o.maxSize, o.maxSize), nil
	}
	return imageutil.Fit(img, o.maxSize, o.maxSize, imageutil.InterpolationArea), nil
}

// load returns the input as a Buffer together with the effective config.
func (o *options) load(cmd *cobra.Command) (img2skel.Buffer, img2skel.Config, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return img2skel.Buffer{}, img2skel.Config{}, err
	}
	img, err := o.loadInput()
	if err != nil {
		return img2skel.Buffer{}, img2skel.Config{}, err
	}
	return img2skel.BufferFromImage(img.RGBA), cfg, nil
}

// emit saves m to --output, or previews it on stdout when no output path
// was given.
func (o *options) emit(cmd *cobra.Command, m img2skel.Matrix[img2skel.RGB]) error {
	if o.output == "" {
		fmt.Fprint(cmd.OutOrStdout(), img2skel.RenderToAnsi(m))
		return nil
	}
	if err := img2skel.SaveMatrix(m, o.output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", o.output, m.Width(), m.Height())
	return nil
}
