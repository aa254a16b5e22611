package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Sentinel errors for the fatal preconditions of a run.
var (
	ErrFFmpegNotFound  = errors.New("ffmpeg not found in the program folder")
	ErrFFprobeNotFound = errors.New("ffprobe not found in the program folder")
	ErrNoVideos        = errors.New("no video files found in the input folder")
)

// fatalError marks a precondition failure: the run stops with a message but
// the process still exits 0.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

func fatal(err error) error { return &fatalError{err: err} }

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// programDir is the directory holding the running binary.
func programDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// checkTools verifies both external executables are regular files.
func checkTools(ffmpegPath, ffprobePath string) error {
	if !isRegularFile(ffmpegPath) {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, ffmpegPath)
	}
	if !isRegularFile(ffprobePath) {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, ffprobePath)
	}
	return nil
}

func isRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// prepareDirs creates the input and output folders when missing.
func prepareDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
