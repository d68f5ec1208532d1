// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import "sort"

// Read is a lazy sequence of sites observed together by one sequencing
// fragment. It is immutable after construction: Range is computed once
// from Sites (already sorted by position) and cached. Reads are never
// copied; every Haplotype holds the same *Read pointers as the
// InputFile that owns them, and pointer identity is the set key
// everywhere a read set is needed.
type Read struct {
	Sites []Site
	Range [2]int // [start, end], inclusive, over the dense site index
}

// NewRead sorts sites by position and computes the cached range. It
// panics if sites is empty; an empty read carries no information and
// has no place in an InputFile.
func NewRead(sites []Site) *Read {
	if len(sites) == 0 {
		panic("sahap: NewRead called with no sites")
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Pos < sites[j].Pos })
	return &Read{
		Sites: sites,
		Range: [2]int{sites[0].Pos, sites[len(sites)-1].Pos},
	}
}

// Overlaps reports whether the read's range intersects [start,end).
func (r *Read) Overlaps(start, end int) bool {
	return r.Range[0] < end && r.Range[1] >= start
}

// readSet is a pointer-identity set of reads, matching the original
// engine's unordered_set<Read*>. It backs Haplotype.savedReads, which
// is never sampled from uniformly at random and so needs no ordering.
type readSet map[*Read]struct{}

func (s readSet) add(r *Read)    { s[r] = struct{}{} }
func (s readSet) remove(r *Read) { delete(s, r) }
func (s readSet) has(r *Read) bool {
	_, ok := s[r]
	return ok
}

// readList is a pointer-identity set of reads with O(1) add, remove,
// and uniform-random pick, backing Haplotype.reads: the active pool
// Genome.Move draws from every iteration, so picking must not
// materialize a slice from a map on the hot path.
type readList struct {
	items []*Read
	index map[*Read]int
}

func newReadList() *readList {
	return &readList{index: make(map[*Read]int)}
}

func (l *readList) add(r *Read) {
	if _, ok := l.index[r]; ok {
		return
	}
	l.index[r] = len(l.items)
	l.items = append(l.items, r)
}

func (l *readList) remove(r *Read) {
	i, ok := l.index[r]
	if !ok {
		return
	}
	last := len(l.items) - 1
	l.items[i] = l.items[last]
	l.index[l.items[i]] = i
	l.items = l.items[:last]
	delete(l.index, r)
}

func (l *readList) has(r *Read) bool {
	_, ok := l.index[r]
	return ok
}

func (l *readList) len() int { return len(l.items) }

// pick returns a uniformly random read from the list, or nil if empty.
// intn is the caller's source of a uniform random int in [0,n).
func (l *readList) pick(intn func(n int) int) *Read {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[intn(len(l.items))]
}
