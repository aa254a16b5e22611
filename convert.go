package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"
)

// converter runs the per-file loop. Files are converted one after another.
type converter struct {
	log         *slog.Logger
	term        *terminal
	ffmpegPath  string
	ffprobePath string
	outputDir   string
}

// convertAll converts every file with the same options. It stops early
// only when ctx is canceled.
func (c *converter) convertAll(ctx context.Context, files []VideoFile, opts ConversionOptions) []result {
	results := make([]result, 0, len(files))
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		results = append(results, c.convertOne(ctx, f, opts))
	}
	return results
}

func (c *converter) convertOne(ctx context.Context, f VideoFile, opts ConversionOptions) result {
	res := result{input: f}

	outPath, err := nextOutputPath(c.outputDir, f.BaseName, opts.Format.Extension())
	if err != nil {
		c.log.Error("resolve output name", "file", f.Path, "error", err)
		res.status, res.reason = statusFailed, "output name"
		return res
	}
	res.output = outPath

	total, err := probeDuration(ctx, c.log, c.ffprobePath, f.Path)
	if err != nil {
		c.term.Warn("Skipping " + f.BaseName + ", could not read duration.")
		c.log.Debug("duration probe failed", "file", f.Path, "error", err)
		res.status, res.reason = statusSkipped, "unknown duration"
		return res
	}

	task := EncodeTask{
		InputPath:    f.Path,
		OutputPath:   outPath,
		TotalSeconds: total,
		Args:         buildFFmpegArgs(f.Path, outPath, opts),
	}

	c.term.Println()
	c.term.Println("Converting: " + filepath.Base(f.Path))
	start := time.Now()
	err = runEncoder(ctx, c.log, c.term, c.ffmpegPath, task)
	res.elapsed = time.Since(start)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			res.status, res.reason = statusFailed, "canceled"
			return res
		}
		c.log.Warn("conversion failed", "file", f.Path, "error", err)
		res.status, res.reason = statusFailed, "ffmpeg error"
		return res
	}
	c.term.Println("Saved to: " + outPath)
	res.status = statusConverted
	return res
}
