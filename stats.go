package emitorcsv

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// PathID returns the 64-bit xxHash identifier of a dotted record path.
func PathID(path string) uint64 {
	return xxhash.Sum64String(path)
}

// PathCount is the number of records observed for one path.
type PathCount struct {
	Path  string
	Count int
}

// Stats counts flushed records per path, keyed by PathID so repeated paths
// are aggregated without retaining one string per record.
type Stats struct {
	counts map[uint64]*PathCount
	total  int
}

func NewStats() *Stats {
	return &Stats{counts: make(map[uint64]*PathCount)}
}

func (s *Stats) Observe(rec Record) {
	id := PathID(rec.Path)
	pc, ok := s.counts[id]
	if !ok {
		pc = &PathCount{Path: rec.Path}
		s.counts[id] = pc
	}
	pc.Count++
	s.total++
}

// Count returns how many records were observed for path.
func (s *Stats) Count(path string) int {
	if pc, ok := s.counts[PathID(path)]; ok {
		return pc.Count
	}
	return 0
}

// Total returns the number of records observed.
func (s *Stats) Total() int {
	return s.total
}

// Paths returns all observed paths with their counts, sorted by path.
func (s *Stats) Paths() []PathCount {
	out := make([]PathCount, 0, len(s.counts))
	for _, pc := range s.counts {
		out = append(out, *pc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
