package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func buildFFmpegArgs(inputPath, outputPath string, opts ConversionOptions) []string {
	args := []string{"-i", inputPath}
	if chain := opts.FilterChain(); chain != "" {
		args = append(args, "-vf", chain)
	}
	args = append(args, opts.Format.VideoArgs()...)
	args = append(args, opts.Format.AudioArgs(opts.KeepAudio)...)
	return append(args, outputPath)
}

// nextOutputPath returns the first free name among base_converted.ext,
// base_converted_1.ext, base_converted_2.ext, ...
func nextOutputPath(outputDir, base, ext string) (string, error) {
	candidate := filepath.Join(outputDir, base+"_converted"+ext)
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check output %s: %w", candidate, err)
		}
		candidate = filepath.Join(outputDir, fmt.Sprintf("%s_converted_%d%s", base, n, ext))
	}
}

func baseName(path string) string {
	file := filepath.Base(path)
	return strings.TrimSuffix(file, filepath.Ext(file))
}
