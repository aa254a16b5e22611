package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// writeScript installs an executable shell script standing in for ffmpeg
// or ffprobe.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

// fakeProbe prints out as the duration.
func fakeProbe(t *testing.T, dir, out string) string {
	return writeScript(t, dir, executableName("ffprobe"), "echo '"+out+"'\n")
}

// fakeFFmpeg reports progress on stderr the way ffmpeg does and writes
// its last argument as the output file.
func fakeFFmpeg(t *testing.T, dir string) string {
	return writeScript(t, dir, executableName("ffmpeg"), `for last; do :; done
printf 'frame=   10 fps=0.0 q=-1.0 size=0kB time=00:31:01.75 bitrate=N/A\r' >&2
printf 'frame=   20 fps=0.0 q=-1.0 size=0kB time=01:02:03.50 bitrate=N/A\r' >&2
printf 'video:1kB audio:0kB\n' >&2
printf 'data' > "$last"
`)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
