package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Input extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".ogv":  true,
	".webm": true,
}

// discoverVideos lists the video files directly inside inputDir, sorted by
// name. Subdirectories are not descended into.
func discoverVideos(inputDir string) ([]VideoFile, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	var files []VideoFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !videoExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path := filepath.Join(inputDir, e.Name())
		files = append(files, VideoFile{Path: path, BaseName: baseName(path)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
