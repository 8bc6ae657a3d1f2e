package stats

import (
	"strings"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	samples := []Sample{
		{HeapAlloc: 10, RSS: 100, TotalAlloc: 1000, Mallocs: 50, Frees: 10, NumGC: 2, CPUPercent: 10},
		{HeapAlloc: 30, RSS: 90, TotalAlloc: 3000, Mallocs: 80, Frees: 20, NumGC: 3, CPUPercent: 50},
		{HeapAlloc: 20, RSS: 120, TotalAlloc: 4000, Mallocs: 90, Frees: 40, NumGC: 5, CPUPercent: 30},
	}

	sum := summarize(samples)
	if sum.PeakHeapAlloc != 30 || sum.PeakRSS != 120 || sum.PeakCPUPercent != 50 {
		t.Fatalf("unexpected peaks %+v", sum)
	}
	if sum.Allocated != 3000 || sum.LiveObjects != 10 || sum.GCCycles != 3 {
		t.Fatalf("unexpected deltas %+v", sum)
	}
	if sum.AvgCPUPercent != 30 || sum.SampleCount != 3 {
		t.Fatalf("unexpected averages %+v", sum)
	}

	if summarize(nil) != (Summary{}) {
		t.Fatal("empty samples must summarize to zero")
	}
}

func TestCollector(t *testing.T) {
	c, err := NewCollector(time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	c.Start()
	buf := make([][]byte, 0, 64)
	for range 64 {
		buf = append(buf, make([]byte, 1<<10))
	}
	time.Sleep(5 * time.Millisecond)
	s := c.Stop()
	_ = buf

	if s.Summary.SampleCount < 2 {
		t.Fatalf("expected at least the first and the final sample, got %d", s.Summary.SampleCount)
	}

	var sb strings.Builder
	if err := s.WriteReport(&sb); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "Peak heap:") {
		t.Fatalf("unexpected report %q", sb.String())
	}
}
