package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type status string

const (
	statusConverted status = "converted"
	statusSkipped   status = "skipped"
	statusFailed    status = "failed"
)

type result struct {
	input   VideoFile
	output  string
	status  status
	reason  string
	elapsed time.Duration
}

type counts struct {
	converted, skipped, failed int
}

func tally(results []result) counts {
	var c counts
	for _, r := range results {
		switch r.status {
		case statusConverted:
			c.converted++
		case statusSkipped:
			c.skipped++
		case statusFailed:
			c.failed++
		}
	}
	return c
}

func outputSize(path string) string {
	if path == "" {
		return "-"
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "-"
	}
	return humanize.Bytes(uint64(fi.Size()))
}

// renderSummary lays out one row per input file.
func renderSummary(results []result) string {
	if len(results) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Output", "Size", "Time", "Status"})
	for _, r := range results {
		out := "-"
		if r.output != "" && r.status != statusSkipped {
			out = filepath.Base(r.output)
		}
		st := string(r.status)
		if r.reason != "" {
			st += ": " + r.reason
		}
		size := "-"
		if r.status == statusConverted {
			size = outputSize(r.output)
		}
		elapsed := "-"
		if r.elapsed > 0 {
			elapsed = r.elapsed.Round(time.Second).String()
		}
		tw.AppendRow(table.Row{filepath.Base(r.input.Path), out, size, elapsed, st})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
