package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeMinimalPDF writes a syntactically complete one-page document with a
// correct cross-reference table.
func writeMinimalPDF(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n",
	}
	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xref := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(objects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref))

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
}

func TestPDFCPUFallbackCompressesValidDocument(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	writeMinimalPDF(t, src)

	fb := NewPDFCPUFallback()
	if err := fb.Compress(context.Background(), src, out, QualityBalanced); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("output is empty")
	}
}

func TestPDFCPUFallbackRejectsCorruptInput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.pdf")
	out := filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(src, []byte("this is not a pdf at all"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fb := NewPDFCPUFallback()
	if err := fb.Compress(context.Background(), src, out, QualityBalanced); err == nil {
		t.Fatal("expected error for corrupt input")
	}
}

func TestPDFCPUFallbackHonorsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.pdf")
	writeMinimalPDF(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb := NewPDFCPUFallback()
	if err := fb.Compress(ctx, src, filepath.Join(dir, "out.pdf"), QualityBalanced); err == nil {
		t.Fatal("expected context error")
	}
}
