package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")

	if got := EnsureUniquePath(path); got != path {
		t.Fatalf("free path must be returned unchanged, got %s", got)
	}

	if err := os.WriteFile(path, []byte("a"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := EnsureUniquePath(path)
	want := filepath.Join(dir, "doc (1).pdf")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if err := os.WriteFile(want, []byte("b"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got = EnsureUniquePath(path)
	if got != filepath.Join(dir, "doc (2).pdf") {
		t.Fatalf("expected doc (2).pdf, got %s", got)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.pdf")
	dst := filepath.Join(dir, "dst.pdf")
	if err := os.WriteFile(src, []byte("payload"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if Exists(src) {
		t.Fatal("source still present after move")
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "payload" {
		t.Fatalf("destination content wrong: %q, %v", got, err)
	}
}

func TestHumanSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 << 20, "5.0 MB"},
		{3 << 30, "3.0 GB"},
	}
	for _, tc := range cases {
		if got := HumanSize(tc.in); got != tc.want {
			t.Fatalf("HumanSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsFileIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !IsDir(dir) || IsDir(file) {
		t.Fatal("IsDir misclassified")
	}
	if !IsFile(file) || IsFile(dir) {
		t.Fatal("IsFile misclassified")
	}
	if IsFile(filepath.Join(dir, "missing")) {
		t.Fatal("IsFile true for missing path")
	}
}
