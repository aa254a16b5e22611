package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrUnknownDuration means ffprobe ran but gave no usable duration, or could
// not be run at all. Callers skip the file.
var ErrUnknownDuration = errors.New("could not read duration")

// probeDuration asks ffprobe for the container duration in seconds.
func probeDuration(ctx context.Context, log *slog.Logger, ffprobePath, file string) (float64, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file,
	)
	out, err := cmd.Output()
	if err != nil {
		log.Debug("ffprobe failed", "file", file, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrUnknownDuration, err)
	}
	log.Debug("ffprobe output", "file", file, "output", strings.TrimSpace(string(out)))
	return parseDuration(string(out))
}

func parseDuration(out string) (float64, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDuration, strings.TrimSpace(out))
	}
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: %v", ErrUnknownDuration, seconds)
	}
	return seconds, nil
}
