package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "1.0.0-dev"

type flags struct {
	config   string
	baseDir  string
	input    string
	output   string
	ffmpeg   string
	ffprobe  string
	logLevel string
	plain    bool
	noWait   bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "converter",
		Short:         "Batch convert the videos in ./input to OGV, MP4 or WebM",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(f)
			if err != nil {
				return err
			}
			a := &app{
				cfg:    cfg,
				in:     stdin,
				out:    stdout,
				errOut: stderr,
				plain:  f.plain,
				noWait: f.noWait,
			}
			return a.run(cmd.Context())
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "Configuration file path (default converter.toml next to the program)")
	fl.StringVar(&f.baseDir, "base-dir", "", "Folder that relative paths resolve against (default: the program's folder)")
	fl.StringVar(&f.input, "input", "", "Folder holding the videos to convert")
	fl.StringVar(&f.output, "output", "", "Folder receiving converted videos")
	fl.StringVar(&f.ffmpeg, "ffmpeg", "", "Path to the ffmpeg executable")
	fl.StringVar(&f.ffprobe, "ffprobe", "", "Path to the ffprobe executable")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fl.BoolVar(&f.plain, "plain", false, "Use line prompts instead of the terminal UI")
	fl.BoolVar(&f.noWait, "no-wait", false, "Exit without waiting for a key press")

	return cmd
}

// loadRunConfig applies defaults, the config file, then flags. Flag paths
// are relative to the working directory.
func loadRunConfig(f flags) (Config, error) {
	baseDir := f.baseDir
	if baseDir == "" {
		dir, err := programDir()
		if err != nil {
			return Config{}, err
		}
		baseDir = dir
	} else {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return Config{}, fmt.Errorf("resolve base dir: %w", err)
		}
		baseDir = abs
	}

	cfg, err := LoadConfig(f.config, baseDir)
	if err != nil {
		return Config{}, err
	}

	override := func(dst *string, v string) error {
		if v == "" {
			return nil
		}
		abs, err := filepath.Abs(v)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", v, err)
		}
		*dst = abs
		return nil
	}
	for _, o := range []struct {
		dst *string
		v   string
	}{
		{&cfg.Paths.Input, f.input},
		{&cfg.Paths.Output, f.output},
		{&cfg.Paths.FFmpeg, f.ffmpeg},
		{&cfg.Paths.FFprobe, f.ffprobe},
	} {
		if err := override(o.dst, o.v); err != nil {
			return Config{}, err
		}
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type app struct {
	cfg    Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	plain  bool
	noWait bool
}

func (a *app) interactive() bool {
	if a.plain {
		return false
	}
	in, ok := a.in.(*os.File)
	if !ok {
		return false
	}
	out, ok := a.out.(*os.File)
	return ok && isTerminal(in) && isTerminal(out)
}

func (a *app) run(ctx context.Context) error {
	term := newTerminal(a.out, a.cfg.Progress.Width)
	log, closeLog, err := newLogger(a.cfg.Logging, a.errOut, term.endLine)
	if err != nil {
		return err
	}
	defer closeLog()

	term.Title("=== Video Converter ===")
	err = a.convert(ctx, term, log)

	var fe *fatalError
	switch {
	case errors.As(err, &fe):
		term.Error("Error: " + fe.Error())
		a.exit(term, "")
		return nil
	case errors.Is(err, errCanceled), errors.Is(err, context.Canceled):
		term.Println("Canceled by user; exiting.")
		return nil
	case err != nil:
		return err
	}
	a.exit(term, "Process completed.\nConverted videos are in: "+a.cfg.Paths.Output)
	return nil
}

func (a *app) exit(term *terminal, message string) {
	if message != "" {
		term.Println()
		term.Success(message)
	}
	if a.noWait {
		return
	}
	term.Println()
	term.Println("Press any key to exit...")
	waitForKey(a.in)
}

func (a *app) convert(ctx context.Context, term *terminal, log *slog.Logger) error {
	paths := a.cfg.Paths
	if err := checkTools(paths.FFmpeg, paths.FFprobe); err != nil {
		return fatal(err)
	}
	if err := prepareDirs(paths.Input, paths.Output); err != nil {
		return fatal(err)
	}

	files, err := discoverVideos(paths.Input)
	if err != nil {
		return fatal(fmt.Errorf("read input folder: %w", err))
	}
	if len(files) == 0 {
		return fatal(fmt.Errorf("%w: %s", ErrNoVideos, paths.Input))
	}
	log.Info("found videos", "count", len(files), "dir", paths.Input)

	q := newQuestionnaire(dirHasEntries(paths.Output))
	if a.interactive() {
		err = RunTUI(ctx, q, a.in, a.out)
	} else {
		err = askLines(a.in, term, q)
	}
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("prompt: input ended before all questions were answered")
		}
		return err
	}

	// An interrupt during the prompts must not reach the clear.
	if err := ctx.Err(); err != nil {
		return err
	}
	if q.ClearOutput() {
		clearOutput(log, term, paths.Output)
	}

	opts := q.Options()
	log.Debug("options", "format", opts.Format.String(), "filters", opts.FilterChain(), "keep_audio", opts.KeepAudio)

	c := &converter{
		log:         log,
		term:        term,
		ffmpegPath:  paths.FFmpeg,
		ffprobePath: paths.FFprobe,
		outputDir:   paths.Output,
	}
	results := c.convertAll(ctx, files, opts)

	term.Println()
	term.Println(renderSummary(results))
	n := tally(results)
	log.Info("batch finished", "converted", n.converted, "skipped", n.skipped, "failed", n.failed)
	return ctx.Err()
}
