package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisk_SaveAndPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "services")
	d, err := NewDisk(dir)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	if err := d.Save(context.Background(), "abc.png", strings.NewReader("img")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p, err := d.Path("abc.png")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	got, err := os.ReadFile(p)
	if err != nil || string(got) != "img" {
		t.Fatalf("expected stored content, got %q (%v)", got, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the image in the directory, got %d entries", len(entries))
	}
}

func TestDisk_RejectsTraversal(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	for _, name := range []string{"", "../x.png", "a/b.png", ".hidden", ".."} {
		if _, err := d.Path(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Path(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}
