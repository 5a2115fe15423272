package engine

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestBatchContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.pdf")
	c := writeSource(t, dir, "c.pdf")
	missing := filepath.Join(dir, "b.pdf") // never created

	runner := NewRunner(
		&fakeLocator{ok: false},
		&fakeProc{},
		&fakeFallback{payload: []byte("out")},
		testLog(),
	)

	var streamed []string
	batch := NewBatch(runner, testLog(), func(res Result) {
		streamed = append(streamed, filepath.Base(res.Job.Source))
	})

	jobs := []Job{
		{Source: a, Dest: filepath.Join(dir, "a-out.pdf"), Quality: QualityBalanced, Engine: EngineAuto},
		{Source: missing, Dest: filepath.Join(dir, "b-out.pdf"), Quality: QualityBalanced, Engine: EngineAuto},
		{Source: c, Dest: filepath.Join(dir, "c-out.pdf"), Quality: QualityBalanced, Engine: EngineAuto},
	}
	results := batch.Run(context.Background(), jobs)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Succeeded() || results[1].Succeeded() || !results[2].Succeeded() {
		t.Fatalf("expected ok/fail/ok, got %v/%v/%v", results[0].Err, results[1].Err, results[2].Err)
	}
	if strings.Join(streamed, ",") != "a.pdf,b.pdf,c.pdf" {
		t.Fatalf("results not streamed in order: %v", streamed)
	}

	s := Summarize(results)
	if s.Total != 3 || s.Succeeded != 2 || s.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestBatchStopsWhenContextCancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.pdf")

	runner := NewRunner(&fakeLocator{ok: false}, &fakeProc{}, &fakeFallback{payload: []byte("out")}, testLog())
	batch := NewBatch(runner, testLog(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := batch.Run(ctx, []Job{
		{Source: a, Dest: filepath.Join(dir, "a-out.pdf"), Quality: QualityBalanced, Engine: EngineAuto},
	})
	if len(results) != 0 {
		t.Fatalf("expected no results after cancel, got %d", len(results))
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{Total: 4, Succeeded: 3, Failed: 1, BytesIn: 4 << 20, BytesOut: 1 << 20}
	got := s.String()
	if !strings.Contains(got, "3 of 4") || !strings.Contains(got, "1 failed") {
		t.Fatalf("unexpected summary string: %q", got)
	}
	if s.SavedPercent() != 75 {
		t.Fatalf("expected 75%% saved, got %.1f", s.SavedPercent())
	}
}
