package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"

	"github.com/ytget/img2video/internal/config"
	"github.com/ytget/img2video/internal/convert"
	"github.com/ytget/img2video/internal/engine"
	"github.com/ytget/img2video/internal/model"
	"github.com/ytget/img2video/internal/platform"
	"github.com/ytget/img2video/internal/selection"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const DefaultOutputDir = "."

var errNoDir = errors.New("-dir is required")

type options struct {
	dir     string
	name    string
	fps     int
	music   string
	out     string
	ffmpeg  string
	verbose bool
	version bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "img2video: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads the command line, with defaults taken from env
func parseFlags(args []string, env config.Env) (options, error) {
	defaults := options{
		name:   model.DefaultOutputName,
		fps:    model.DefaultFPS,
		music:  string(model.DefaultMusic),
		out:    DefaultOutputDir,
		ffmpeg: engine.FFmpegCommand,
	}
	if env.OutputName != "" {
		defaults.name = env.OutputName
	}
	if env.FPS != 0 {
		defaults.fps = env.FPS
	}
	if env.OutputDir != "" {
		defaults.out = env.OutputDir
	}
	if env.FFmpegPath != "" {
		defaults.ffmpeg = env.FFmpegPath
	}

	var opts options
	fs := flag.NewFlagSet("img2video", flag.ContinueOnError)
	fs.StringVar(&opts.dir, "dir", "", "folder with the images to convert")
	fs.StringVar(&opts.name, "name", defaults.name, "output file name without extension")
	fs.IntVar(&opts.fps, "fps", defaults.fps, fmt.Sprintf("frames per second, one of %v", model.FPSOptions))
	fs.StringVar(&opts.music, "music", defaults.music, "background music mode (recorded only)")
	fs.StringVar(&opts.out, "out", defaults.out, "directory the video is written to")
	fs.StringVar(&opts.ffmpeg, "ffmpeg", defaults.ffmpeg, "ffmpeg binary name or path")
	fs.BoolVar(&opts.verbose, "v", false, "log engine output")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.dir == "" {
		return options{}, errNoDir
	}
	// Reject names that cannot be saved before spending a whole encode
	name := model.Params{OutputName: opts.name}.DownloadName()
	if err := platform.ValidateFileName(name); err != nil {
		return options{}, fmt.Errorf("-name: %w", err)
	}
	return opts, nil
}

func run(args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	env, err := config.FromEnv()
	if err != nil {
		return err
	}

	opts, err := parseFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.version {
		fmt.Println("img2video", version)
		return nil
	}
	if !opts.verbose {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sel := selection.NewManager()
	if err := configure(sel, opts); err != nil {
		return err
	}

	files, err := platform.ReadFolder(opts.dir)
	if err != nil {
		return err
	}
	images := sel.SelectImages(files)
	fmt.Fprintln(os.Stderr, sel.Summary())
	if len(images) == 0 {
		return convert.ErrNoImages
	}

	ffmpeg := engine.NewFFmpeg(opts.ffmpeg, "")
	defer ffmpeg.Close()

	svc := convert.NewService(engine.NewHandle(ffmpeg), "")
	bar := newProgressBar()
	svc.SetUpdateCallback(func(job *model.Job) {
		_ = bar.Set(job.Percent)
	})

	result, err := svc.Convert(ctx, images, sel.Params())
	if err != nil {
		_ = bar.Exit()
		return err
	}
	_ = bar.Finish()

	path, err := platform.SaveFile(opts.out, result.DownloadName, result.Data)
	if err != nil {
		return err
	}

	if info, err := engine.Probe(path); err == nil {
		result.DurationSec = info.DurationSec
		result.Width = info.Width
		result.Height = info.Height
		result.Codec = info.Codec
	}
	fmt.Printf("%s (%s, %s, %d bytes)\n", path, result.GetDurationString(), result.GetResolutionString(), result.Size())
	return nil
}

// configure applies the parameter flags to the selection manager
func configure(sel *selection.Manager, opts options) error {
	sel.SetOutputName(opts.name)
	if err := sel.SetFPS(opts.fps); err != nil {
		return err
	}
	return sel.SetMusic(model.MusicMode(opts.music))
}

func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
