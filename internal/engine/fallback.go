package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPUFallback compresses in process by rewriting the document with
// pdfcpu: streams are recompressed, unused objects dropped and resources
// deduplicated. It needs no external tools and treats any parse or write
// error as the job's failure.
type PDFCPUFallback struct {
	conf *model.Configuration
}

// NewPDFCPUFallback returns a fallback compressor with relaxed validation,
// so slightly out-of-spec documents still get optimized.
func NewPDFCPUFallback() *PDFCPUFallback {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUFallback{conf: conf}
}

// Compress rewrites inputPath into outputPath. pdfcpu applies the same
// object-level optimization at every preset; the quality knob only drives
// the external engine.
func (f *PDFCPUFallback) Compress(ctx context.Context, inputPath, outputPath string, _ Quality) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := api.OptimizeFile(inputPath, outputPath, f.conf); err != nil {
		return fmt.Errorf("optimize %s: %w", filepath.Base(inputPath), err)
	}
	return nil
}
