package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// process is a running child whose stderr is read line by line.
type process struct {
	cmd    *exec.Cmd
	pipe   io.Reader
	stderr *bufio.Scanner
}

func startProcess(ctx context.Context, path string, args ...string) (*process, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	pipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	sc := bufio.NewScanner(pipe)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanLines)
	return &process{cmd: cmd, pipe: pipe, stderr: sc}, nil
}

// Lines calls fn for each diagnostic line until the stream ends.
func (p *process) Lines(fn func(string)) error {
	for p.stderr.Scan() {
		fn(p.stderr.Text())
	}
	return p.stderr.Err()
}

// Wait drains stderr and waits for the child to exit. The pipe must be
// empty before cmd.Wait closes it.
func (p *process) Wait() error {
	_, _ = io.Copy(io.Discard, p.pipe)
	return p.cmd.Wait()
}

// runEncoder spawns ffmpeg for task and redraws the bar on term for every
// time= line. The last stderr line is kept for error reporting.
func runEncoder(ctx context.Context, log *slog.Logger, term *terminal, ffmpegPath string, task EncodeTask) error {
	log.Debug("starting ffmpeg", "path", ffmpegPath, "args", task.Args)
	proc, err := startProcess(ctx, ffmpegPath, task.Args...)
	if err != nil {
		return err
	}

	var last string
	scanErr := proc.Lines(func(line string) {
		if line != "" {
			last = line
		}
		if pct, ok := parseProgress(line, task.TotalSeconds); ok {
			term.drawProgress(pct)
		}
	})
	waitErr := proc.Wait()
	term.endLine()

	if scanErr != nil {
		log.Warn("reading ffmpeg output", "error", scanErr)
	}
	if waitErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if last != "" {
			return fmt.Errorf("ffmpeg: %w: %s", waitErr, last)
		}
		return fmt.Errorf("ffmpeg: %w", waitErr)
	}
	return nil
}
