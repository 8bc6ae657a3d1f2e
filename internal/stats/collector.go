// Package stats samples process memory and CPU usage while a workload runs.
package stats

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/process"
)

type RuntimeStats struct {
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	TotalElapsed time.Duration `json:"total_elapsed_ns"`
	Samples      []Sample      `json:"samples"`
	Summary      Summary       `json:"summary"`
}

type Sample struct {
	Elapsed time.Duration `json:"elapsed_ns"`

	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapInuse  uint64 `json:"heap_inuse"`
	TotalAlloc uint64 `json:"total_alloc"`
	Mallocs    uint64 `json:"mallocs"`
	Frees      uint64 `json:"frees"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
	RSS        uint64 `json:"process_rss_bytes"`

	CPUPercent float64 `json:"cpu_percent"`
}

type Summary struct {
	PeakHeapAlloc  uint64  `json:"peak_heap_alloc"`
	PeakRSS        uint64  `json:"peak_process_rss"`
	PeakCPUPercent float64 `json:"peak_cpu_percent"`
	AvgCPUPercent  float64 `json:"avg_cpu_percent"`
	// Allocated and LiveObjects are deltas between the first and the last
	// sample.
	Allocated   uint64 `json:"allocated"`
	LiveObjects int64  `json:"live_objects"`
	GCCycles    uint32 `json:"gc_cycles"`
	SampleCount int    `json:"sample_count"`
}

// Collector samples runtime statistics at a fixed interval between Start
// and Stop.
type Collector struct {
	mu       sync.Mutex
	stats    RuntimeStats
	stopChan chan struct{}
	doneChan chan struct{}
	interval time.Duration
	proc     *process.Process
}

func NewCollector(interval time.Duration) (*Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process info: %w", err)
	}

	return &Collector{
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		proc:     proc,
	}, nil
}

func (c *Collector) Start() {
	c.stats.StartTime = time.Now()
	go c.collect()
}

func (c *Collector) collect() {
	defer close(c.doneChan)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sample()
	for {
		select {
		case <-c.stopChan:
			c.sample()
			return
		case <-ticker.C:
			c.sample()
		}
	}
}

func (c *Collector) sample() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Sample{
		Elapsed:    time.Since(c.stats.StartTime),
		HeapAlloc:  mem.HeapAlloc,
		HeapInuse:  mem.HeapInuse,
		TotalAlloc: mem.TotalAlloc,
		Mallocs:    mem.Mallocs,
		Frees:      mem.Frees,
		Sys:        mem.Sys,
		NumGC:      mem.NumGC,
	}
	if info, err := c.proc.MemoryInfo(); err == nil && info != nil {
		s.RSS = info.RSS
	}
	if cpu, err := c.proc.CPUPercent(); err == nil {
		s.CPUPercent = cpu
	}

	c.mu.Lock()
	c.stats.Samples = append(c.stats.Samples, s)
	c.mu.Unlock()
}

// Stop takes a final sample and returns everything collected.
func (c *Collector) Stop() RuntimeStats {
	close(c.stopChan)
	<-c.doneChan

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.EndTime = time.Now()
	c.stats.TotalElapsed = c.stats.EndTime.Sub(c.stats.StartTime)
	c.stats.Summary = summarize(c.stats.Samples)
	return c.stats
}

func summarize(samples []Sample) Summary {
	var sum Summary
	if len(samples) == 0 {
		return sum
	}

	var totalCPU float64
	for _, s := range samples {
		sum.PeakHeapAlloc = max(sum.PeakHeapAlloc, s.HeapAlloc)
		sum.PeakRSS = max(sum.PeakRSS, s.RSS)
		sum.PeakCPUPercent = max(sum.PeakCPUPercent, s.CPUPercent)
		totalCPU += s.CPUPercent
	}

	first, last := samples[0], samples[len(samples)-1]
	sum.Allocated = last.TotalAlloc - first.TotalAlloc
	sum.LiveObjects = int64(last.Mallocs-last.Frees) - int64(first.Mallocs-first.Frees)
	sum.GCCycles = last.NumGC - first.NumGC
	sum.SampleCount = len(samples)
	sum.AvgCPUPercent = totalCPU / float64(len(samples))
	return sum
}

// WriteReport prints a human readable summary to w.
func (stats *RuntimeStats) WriteReport(w io.Writer) error {
	sum := stats.Summary
	_, err := fmt.Fprintf(w, ""+
		"Duration:        %s\n"+
		"Samples:         %d\n"+
		"Peak heap:       %s\n"+
		"Peak RSS:        %s\n"+
		"Allocated:       %s\n"+
		"Live objects:    %s\n"+
		"GC cycles:       %d\n"+
		"CPU peak/avg:    %.1f%% / %.1f%%\n",
		stats.TotalElapsed.Round(time.Millisecond),
		sum.SampleCount,
		humanize.IBytes(sum.PeakHeapAlloc),
		humanize.IBytes(sum.PeakRSS),
		humanize.IBytes(sum.Allocated),
		humanize.Comma(sum.LiveObjects),
		sum.GCCycles,
		sum.PeakCPUPercent, sum.AvgCPUPercent,
	)
	return err
}

// SaveToFile writes the report to filename.
func (stats *RuntimeStats) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create stats file: %w", err)
	}
	defer f.Close()

	if err := stats.WriteReport(f); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return f.Close()
}
