package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// removeEntry deletes one entry of the output folder. Tests swap it to
// simulate an entry that cannot be deleted.
var removeEntry = os.RemoveAll

func dirHasEntries(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

// clearDir removes every entry inside dir. A failing entry (a file held
// open by another program, say) is logged and skipped. It returns how many
// entries were removed and how many were left behind.
func clearDir(log *slog.Logger, dir string) (removed, failed int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("cannot list output folder", "dir", dir, "error", err)
		return 0, 0
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if err := removeEntry(path); err != nil {
			log.Warn("could not delete", "path", path, "error", err)
			failed++
			continue
		}
		removed++
	}
	return removed, failed
}

// clearOutput clears dir and reports the outcome on term.
func clearOutput(log *slog.Logger, term *terminal, dir string) {
	removed, failed := clearDir(log, dir)
	if failed > 0 {
		term.Warn(fmt.Sprintf("Cleared %d item(s) from the output folder, %d could not be deleted.", removed, failed))
		return
	}
	term.Println(fmt.Sprintf("Cleared %d item(s) from the output folder.", removed))
}
