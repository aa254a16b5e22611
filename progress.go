package main

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 50

var timeRe = regexp.MustCompile(`time=(\d+):(\d+):(\d+\.?\d*)`)

// parseProgress extracts the time= token from one ffmpeg stderr line and
// converts it to a whole percentage of total, clamped to 0..100.
func parseProgress(line string, totalSeconds float64) (int, bool) {
	if totalSeconds <= 0 {
		return 0, false
	}
	m := timeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	elapsed := hours*3600 + minutes*60 + seconds
	return clampPercent(int(elapsed / totalSeconds * 100)), true
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// scanLines splits on \n, \r\n and a bare \r. ffmpeg ends its status
// line with \r while it rewrites it in place.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// Need one more byte to tell \r from \r\n.
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type styles struct {
	title   lipgloss.Style
	menu    lipgloss.Style
	err     lipgloss.Style
	done    lipgloss.Style
	subtle  lipgloss.Style
	warning lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#5865F2")).
			Padding(0, 1).
			Bold(true),
		menu:    r.NewStyle().Foreground(lipgloss.Color("245")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		done:    r.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true),
		subtle:  r.NewStyle().Foreground(lipgloss.Color("240")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true),
	}
}

// terminal owns console output for the run, including the in-place
// progress line. Anything printed while a bar is on screen first ends
// that line.
type terminal struct {
	out    io.Writer
	bar    progress.Model
	styles styles
	onBar  bool
}

func newTerminal(out io.Writer, barWidth int) *terminal {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}
	r := lipgloss.NewRenderer(out)
	bar := progress.New(
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
		progress.WithSolidFill("#5865F2"),
		progress.WithColorProfile(r.ColorProfile()),
	)
	bar.Full = '█'
	bar.Empty = '-'
	return &terminal{out: out, bar: bar, styles: newStyles(r)}
}

// drawProgress redraws the bar on the current line. Filled cells are
// truncated, so 33% of 50 cells fills 16.
func (t *terminal) drawProgress(percent int) {
	percent = clampPercent(percent)
	width := t.bar.Width
	filled := percent * width / 100
	fmt.Fprintf(t.out, "\r[%s] %d%%", t.bar.ViewAs(float64(filled)/float64(width)), percent)
	t.onBar = true
}

func (t *terminal) endLine() {
	if t.onBar {
		fmt.Fprintln(t.out)
		t.onBar = false
	}
}

func (t *terminal) Println(a ...any) {
	t.endLine()
	fmt.Fprintln(t.out, a...)
}

func (t *terminal) Printf(format string, a ...any) {
	t.endLine()
	fmt.Fprintf(t.out, format, a...)
}

func (t *terminal) Title(s string)   { t.Println(t.styles.title.Render(s)) }
func (t *terminal) Success(s string) { t.Println(t.styles.done.Render(s)) }
func (t *terminal) Error(s string)   { t.Println(t.styles.err.Render(s)) }
func (t *terminal) Warn(s string)    { t.Println(t.styles.warning.Render(s)) }
