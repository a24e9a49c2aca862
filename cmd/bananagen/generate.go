package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mhpenta/bananagen"
	"github.com/mhpenta/bananagen/config"
	"github.com/mhpenta/bananagen/convert"
	"github.com/mhpenta/bananagen/provider/gemini"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	numImages   int
	aspectRatio string
	resolution  string
	inputImages []string
	outputFile  string
	outputDir   string
	imageModel  string
	textModel   string
	timeout     time.Duration
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <prompt> [--input-images PATH...]",
		Short: "Generate images from a prompt and optional input images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := inputImages(cmd, flags, args[1:])
			if err != nil {
				return err
			}
			flags.inputImages = inputs
			return runGenerate(cmd, root, flags, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.numImages, "num-images", 1, "number of images to generate (text-to-image)")
	f.StringVar(&flags.aspectRatio, "aspect-ratio", "", "aspect ratio, e.g. 1:1 or 16:9")
	f.StringVar(&flags.resolution, "resolution", "", "output resolution: 1K, 2K or 4K")
	f.StringArrayVar(&flags.inputImages, "input-images", nil, "input image paths for image+text generation; further paths may follow the first one")
	f.StringVar(&flags.outputFile, "output-file", "", "base name for the output file(s); suggested by the text model when empty")
	f.StringVar(&flags.outputDir, "output-dir", "", "directory to write images to (default images/outputs)")
	f.StringVar(&flags.imageModel, "image-model", "", "image model name")
	f.StringVar(&flags.textModel, "text-model", "", "text model used for filename suggestions")
	f.DurationVar(&flags.timeout, "timeout", 0, "overall timeout, 0 for none")

	return cmd
}

// inputImages joins the --input-images values with the positional arguments
// after the prompt, so "--input-images a.png b.png" takes both paths.
func inputImages(cmd *cobra.Command, flags *generateFlags, extra []string) ([]string, error) {
	if len(extra) == 0 {
		return flags.inputImages, nil
	}
	if !cmd.Flags().Changed("input-images") {
		return nil, fmt.Errorf("accepts 1 prompt argument, received %d", len(extra)+1)
	}
	return append(flags.inputImages, extra...), nil
}

func runGenerate(cmd *cobra.Command, root *rootFlags, flags *generateFlags, prompt string) error {
	cfg, err := config.Load(root.configPath, "")
	if err != nil {
		return err
	}
	if flags.outputDir != "" {
		cfg.OutputDir = flags.outputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = bananagen.DefaultOutputDir
	}
	if flags.imageModel != "" {
		cfg.ImageModel = flags.imageModel
	}
	if flags.textModel != "" {
		cfg.TextModel = flags.textModel
	}

	logger := newLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), root.verbose)

	ctx := cmd.Context()
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	geminiCfg := cfg.GeminiConfig()
	geminiCfg.Logger = logger
	gen, err := gemini.New(ctx, geminiCfg)
	if err != nil {
		return err
	}

	manager := bananagen.NewManager(gen,
		bananagen.WithLogger(logger),
		bananagen.WithStorage(bananagen.NewLocalStorage(cfg.OutputDir, logger)),
		bananagen.WithNormalizer(convert.NewNormalizer(convert.WithLogger(logger))),
		bananagen.WithFilenameModel(bananagen.Model(cfg.TextModel)),
	)
	defer manager.Close()

	report, err := manager.Run(ctx, bananagen.Request{
		Prompt:      prompt,
		InputImages: flags.inputImages,
		OutputFile:  flags.outputFile,
		Config: &bananagen.GenerateConfig{
			AspectRatio:    bananagen.AspectRatio(flags.aspectRatio),
			Size:           bananagen.ImageSize(flags.resolution),
			NumberOfImages: flags.numImages,
		},
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range report.Paths {
		fmt.Fprintf(out, "Image saved as %s\n", p)
	}
	if report.Degraded {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: the response could not be decoded, placeholder images were written: %v\n", report.Reason)
	}
	return nil
}
