package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNextOutputPath(t *testing.T) {
	dir := t.TempDir()

	first, err := nextOutputPath(dir, "a", ".ogv")
	if err != nil {
		t.Fatalf("nextOutputPath: %v", err)
	}
	if filepath.Base(first) != "a_converted.ogv" {
		t.Fatalf("first = %s, want a_converted.ogv", filepath.Base(first))
	}
	touch(t, dir, filepath.Base(first))

	second, err := nextOutputPath(dir, "a", ".ogv")
	if err != nil {
		t.Fatalf("nextOutputPath: %v", err)
	}
	if filepath.Base(second) != "a_converted_1.ogv" {
		t.Fatalf("second = %s, want a_converted_1.ogv", filepath.Base(second))
	}
	touch(t, dir, filepath.Base(second))

	third, _ := nextOutputPath(dir, "a", ".ogv")
	if filepath.Base(third) != "a_converted_2.ogv" {
		t.Errorf("third = %s, want a_converted_2.ogv", filepath.Base(third))
	}
}

func TestNextOutputPath_OtherExtensionDoesNotCollide(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_converted.mp4")

	got, err := nextOutputPath(dir, "a", ".webm")
	if err != nil {
		t.Fatalf("nextOutputPath: %v", err)
	}
	if filepath.Base(got) != "a_converted.webm" {
		t.Errorf("got %s, want a_converted.webm", filepath.Base(got))
	}
}

func TestNextOutputPath_DirectoryCountsAsTaken(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "a_converted.ogv"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, _ := nextOutputPath(dir, "a", ".ogv")
	if filepath.Base(got) != "a_converted_1.ogv" {
		t.Errorf("got %s, want a_converted_1.ogv", filepath.Base(got))
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/videos/clip.mp4", "clip"},
		{"clip.final.mkv", "clip.final"},
		{"noext", "noext"},
		{filepath.Join("a", "b.WEBM"), "b"},
	}
	for _, tt := range tests {
		if got := baseName(tt.in); got != tt.want {
			t.Errorf("baseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
