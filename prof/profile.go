package prof

import (
	"sort"
	"sync"
	"time"
)

// Entry is a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Phase aggregates the measurements of one label.
type Phase struct {
	Label string
	Calls int
	Total time.Duration
	Max   time.Duration
}

var (
	mu      sync.Mutex
	enabled bool
	record  []Entry
)

// Enable switches recording on or off. Recording starts off and Track is a no-op
// while disabled.
func Enable(on bool) {
	mu.Lock()
	enabled = on
	mu.Unlock()
}

// Track logs the duration since start under label. Use as
// defer prof.Track(time.Now(), "label").
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	if enabled {
		record = append(record, Entry{Label: label, Dur: elapsed})
	}
	mu.Unlock()
}

// SnapshotAndReset returns the collected entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Summarize groups entries by label, longest total first.
func Summarize(entries []Entry) []Phase {
	byLabel := make(map[string]*Phase)
	for _, e := range entries {
		p, ok := byLabel[e.Label]
		if !ok {
			p = &Phase{Label: e.Label}
			byLabel[e.Label] = p
		}
		p.Calls++
		p.Total += e.Dur
		if e.Dur > p.Max {
			p.Max = e.Dur
		}
	}
	out := make([]Phase, 0, len(byLabel))
	for _, p := range byLabel {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Label < out[j].Label
	})
	return out
}
