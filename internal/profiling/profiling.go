// Package profiling collects per-frame CPU timings by bucket name.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Frame accumulates durations for the current frame. It is owned by the
// frame loop's goroutine and is not safe for concurrent use.
type Frame struct {
	start  time.Time
	totals map[string]time.Duration
	now    func() time.Time
}

// NewFrame returns an empty Frame using the wall clock.
func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration), now: time.Now}
}

// Reset clears the totals and marks the frame start.
func (f *Frame) Reset() {
	clear(f.totals)
	f.start = f.now()
}

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer frame.Track("gfx.Frame")()
func (f *Frame) Track(name string) func() {
	start := f.now()
	return func() {
		f.totals[name] += f.now().Sub(start)
	}
}

// Elapsed is the time since Reset.
func (f *Frame) Elapsed() time.Duration {
	return f.now().Sub(f.start)
}

// Sum adds every bucket whose name starts with prefix.
func (f *Frame) Sum(prefix string) time.Duration {
	var total time.Duration
	for k, v := range f.totals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// TopN formats the n largest buckets, largest first.
// Example: "gfx.Frame:4.2ms, ui.Render:0.3ms"
func (f *Frame) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(f.totals))
	for k, v := range f.totals {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.name+":"+formatMs(p.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
