package main

import (
	"fmt"
	"strings"
)

// OutputFormat is the container/codec family selected at the format prompt.
type OutputFormat int

const (
	FormatOGV OutputFormat = iota + 1
	FormatMP4
	FormatWEBM
)

type formatEntry struct {
	title     string
	desc      string
	ext       string
	video     []string
	audioKeep []string
}

// formats is indexed by the prompt choice (1-3).
var formats = map[OutputFormat]formatEntry{
	FormatOGV: {
		title:     "OGV",
		desc:      "Theora/Vorbis",
		ext:       ".ogv",
		video:     []string{"-vcodec", "libtheora", "-q:v", "8"},
		audioKeep: []string{"-acodec", "libvorbis", "-q:a", "6"},
	},
	FormatMP4: {
		title:     "MP4",
		desc:      "H.264/AAC",
		ext:       ".mp4",
		video:     []string{"-vcodec", "libx264", "-crf", "23", "-preset", "medium"},
		audioKeep: []string{"-acodec", "aac", "-b:a", "128k"},
	},
	FormatWEBM: {
		title:     "WebM",
		desc:      "VP9/Opus",
		ext:       ".webm",
		video:     []string{"-vcodec", "libvpx-vp9", "-b:v", "1M"},
		audioKeep: []string{"-acodec", "libopus", "-b:a", "96k"},
	},
}

var audioDrop = []string{"-an"}

func (f OutputFormat) entry() formatEntry {
	if s, ok := formats[f]; ok {
		return s
	}
	return formats[FormatOGV]
}

func (f OutputFormat) String() string { return f.entry().title }

// Extension returns the output file extension with its leading dot.
func (f OutputFormat) Extension() string { return f.entry().ext }

// VideoArgs returns the encoder's video codec flags.
func (f OutputFormat) VideoArgs() []string { return append([]string(nil), f.entry().video...) }

// AudioArgs returns the audio codec flags, or -an when audio is dropped.
func (f OutputFormat) AudioArgs(keep bool) []string {
	if !keep {
		return append([]string(nil), audioDrop...)
	}
	return append([]string(nil), f.entry().audioKeep...)
}

type resolution struct {
	label  string
	width  int
	height int
}

const (
	resolutionOriginal = 17
	resolutionCustom   = 18
)

// resolutions is indexed by choice-1. The last two entries carry no size:
// keep original and custom.
var resolutions = []resolution{
	{"3840x2160 (4K UHD)", 3840, 2160},
	{"2560x1440 (QHD)", 2560, 1440},
	{"1920x1080 (Full HD)", 1920, 1080},
	{"1600x900", 1600, 900},
	{"1280x720 (HD)", 1280, 720},
	{"1024x576", 1024, 576},
	{"960x540", 960, 540},
	{"854x480", 854, 480},
	{"800x450", 800, 450},
	{"768x432", 768, 432},
	{"640x360", 640, 360},
	{"426x240", 426, 240},
	{"256x144", 256, 144},
	{"1080x1920 (vertical)", 1080, 1920},
	{"720x1280 (vertical)", 720, 1280},
	{"1080x1080 (square)", 1080, 1080},
	{"Keep original", 0, 0},
	{"Custom", 0, 0},
}

func scaleFilter(width, height int) string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", width, height)
}

// presetScaleFilter maps a resolution choice to its filter. Keep original,
// custom and out-of-range choices yield "".
func presetScaleFilter(choice int) string {
	if choice < 1 || choice >= resolutionOriginal {
		return ""
	}
	r := resolutions[choice-1]
	return scaleFilter(r.width, r.height)
}

func fpsFilter(fps int) string {
	if fps <= 0 {
		return ""
	}
	return fmt.Sprintf("fps=%d", fps)
}

// ConversionOptions is collected once per run and applied to every file.
type ConversionOptions struct {
	Format      OutputFormat
	ScaleFilter string
	FPSFilter   string
	KeepAudio   bool
}

// FilterChain joins the scale and fps filters with a comma, skipping empty ones.
func (o ConversionOptions) FilterChain() string {
	var parts []string
	for _, f := range []string{o.ScaleFilter, o.FPSFilter} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ",")
}

// VideoFile is a discovered input file.
type VideoFile struct {
	Path     string
	BaseName string
}

// EncodeTask is everything needed to convert one file.
type EncodeTask struct {
	InputPath    string
	OutputPath   string
	TotalSeconds float64
	Args         []string
}
