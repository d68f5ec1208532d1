// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// smallEnoughToIgnore is the floating-drift clamp threshold: cached
// costs with magnitude below this are snapped to exactly zero.
const smallEnoughToIgnore = 1e-10

// Haplotype is one of the K parallel reconstructions a Genome
// maintains: a read set plus its per-site consensus, with every cost
// incrementally maintained as reads are added and removed. See
// spec.md §4.1 for the vote-maintenance contract this implements.
type Haplotype struct {
	numSites int
	ploidy   int

	weights  [][]float64 // weights[site][allele]
	coverage []int       // coverage[site]
	solution []int       // solution[site], undefined (-1) sentinel

	totalCost  float64
	windowCost float64
	siteCost   float64

	reads      *readList
	savedReads readSet

	winStart, winEnd int
	stride           int
}

// NewHaplotype allocates an empty haplotype over numSites sites with
// the given ploidy. All cost-table memory is allocated here; the vote
// hot path never allocates.
func NewHaplotype(numSites, ploidy int) *Haplotype {
	h := &Haplotype{
		numSites:   numSites,
		ploidy:     ploidy,
		weights:    make([][]float64, numSites),
		coverage:   make([]int, numSites),
		solution:   make([]int, numSites),
		reads:      newReadList(),
		savedReads: make(readSet),
		winStart:   0,
		winEnd:     numSites,
	}
	for i := range h.solution {
		h.solution[i] = undefined
		h.weights[i] = make([]float64, ploidy)
	}
	return h
}

// NumSites returns M, the constant number of dense sites.
func (h *Haplotype) NumSites() int { return h.numSites }

// NumReads returns the number of reads in the active and saved sets
// (every read in either set has been voted in). Reads that
// IncrementWindow leaves behind the window keep their votes but are in
// neither set, so they are not counted.
func (h *Haplotype) NumReads() int { return h.reads.len() + len(h.savedReads) }

// TotalCost returns the cached total MEC/wMEC for this haplotype.
func (h *Haplotype) TotalCost() float64 { return h.totalCost }

// WindowCost returns the cached cost restricted to the current window.
func (h *Haplotype) WindowCost() float64 { return h.windowCost }

// SiteCost returns the cached Poisson site-cost.
func (h *Haplotype) SiteCost() float64 { return h.siteCost }

// Solution returns the consensus allele at site i, or undefined (-1)
// if the site has zero coverage.
func (h *Haplotype) Solution(i int) int { return h.solution[i] }

// Coverage returns the number of assigned reads covering site i.
func (h *Haplotype) Coverage(i int) int { return h.coverage[i] }

// mecAt returns Σ_{a != solution[pos]} weights[pos][a], the per-site
// contribution to total_cost/window_cost/site_cost.
func (h *Haplotype) mecAt(pos int) float64 {
	sol := h.solution[pos]
	var sum float64
	for a, w := range h.weights[pos] {
		if a == sol {
			continue
		}
		sum += w
	}
	return sum
}

func clamp(x float64) float64 {
	if x < 0 && x > -smallEnoughToIgnore {
		return 0
	}
	return x
}

func (h *Haplotype) inWindow(pos int) bool {
	return pos >= h.winStart && pos < h.winEnd
}

// subtractCostsAt removes site pos's current contribution from every
// cached cost. Paired with addCostsAt around a weights/coverage/
// solution mutation, this is how total_cost, window_cost, and
// site_cost stay incrementally correct without a full rescan.
func (h *Haplotype) subtractCostsAt(pos int) {
	mec := h.mecAt(pos)
	h.totalCost = clamp(h.totalCost - mec)
	if h.inWindow(pos) {
		h.windowCost = clamp(h.windowCost - mec)
	}
	if h.coverage[pos] > 0 {
		term := -logPoisson1CDF(errorRate*float64(h.coverage[pos]), truncToUint64(mec))
		h.siteCost = clamp(h.siteCost - term)
	}
}

func (h *Haplotype) addCostsAt(pos int) {
	mec := h.mecAt(pos)
	h.totalCost = clamp(h.totalCost + mec)
	if h.inWindow(pos) {
		h.windowCost = clamp(h.windowCost + mec)
	}
	if h.coverage[pos] > 0 {
		term := -logPoisson1CDF(errorRate*float64(h.coverage[pos]), truncToUint64(mec))
		h.siteCost = clamp(h.siteCost + term)
	}
}

// recomputeSolution rescans site pos for the argmax allele, breaking
// ties at the lowest allele index and leaving the sentinel when every
// weight is at or below the drift-clamp threshold.
func (h *Haplotype) recomputeSolution(pos int) {
	best := undefined
	var bestW float64
	for a, w := range h.weights[pos] {
		if w > smallEnoughToIgnore && (best == undefined || w > bestW) {
			best, bestW = a, w
		}
	}
	h.solution[pos] = best
}

// vote applies one site's incremental weight update for a read being
// added (retract=false) or removed (retract=true). This is the hot
// loop described in spec.md §4.1: no allocation, O(ploidy) per site.
func (h *Haplotype) vote(s Site, retract bool) {
	pos := s.Pos
	h.subtractCostsAt(pos)

	if !retract {
		h.weights[pos][s.Allele] += s.Weight
		if s.Allele != h.solution[pos] &&
			(h.solution[pos] == undefined || h.weights[pos][s.Allele] > h.weights[pos][h.solution[pos]] ||
				(h.weights[pos][s.Allele] == h.weights[pos][h.solution[pos]] && s.Allele < h.solution[pos])) {
			h.solution[pos] = s.Allele
		}
		h.coverage[pos]++
	} else {
		h.weights[pos][s.Allele] -= s.Weight
		if h.solution[pos] == s.Allele {
			h.recomputeSolution(pos)
		}
		h.coverage[pos]--
	}

	h.addCostsAt(pos)
}

// AddRead assigns r to this haplotype, voting it in at every site it
// covers. It fails with ErrDuplicateAssignment if r is already
// assigned here.
func (h *Haplotype) AddRead(r *Read) error {
	if h.reads.has(r) || h.savedReads.has(r) {
		return fmt.Errorf("%w: %p", ErrDuplicateAssignment, r)
	}
	for _, s := range r.Sites {
		h.vote(s, false)
	}
	h.reads.add(r)
	return nil
}

// RemoveRead unassigns r from this haplotype, retracting its votes at
// every site it covers. It fails with ErrNotAssigned if r is not
// currently assigned here (active or parked in the window's saved set).
func (h *Haplotype) RemoveRead(r *Read) error {
	active := h.reads.has(r)
	saved := h.savedReads.has(r)
	if !active && !saved {
		return fmt.Errorf("%w: %p", ErrNotAssigned, r)
	}
	for _, s := range r.Sites {
		h.vote(s, true)
	}
	if active {
		h.reads.remove(r)
	} else {
		h.savedReads.remove(r)
	}
	return nil
}

// Reads returns the set of currently active (in-window) reads, the
// pool Genome.Move draws from.
func (h *Haplotype) Reads() *readList { return h.reads }

// MeanCoverage returns the average coverage across all M sites.
func (h *Haplotype) MeanCoverage() float64 {
	if h.numSites == 0 {
		return 0
	}
	buf := make([]float64, h.numSites)
	for i, c := range h.coverage {
		buf[i] = float64(c)
	}
	return floats.Sum(buf) / float64(h.numSites)
}

// WindowTotalCoverage returns the sum of coverage over the current
// window, O(window width).
func (h *Haplotype) WindowTotalCoverage() float64 {
	width := h.winEnd - h.winStart
	if width <= 0 {
		return 0
	}
	buf := make([]float64, width)
	for i := h.winStart; i < h.winEnd; i++ {
		buf[i-h.winStart] = float64(h.coverage[i])
	}
	return floats.Sum(buf)
}

// computeWindowCost recomputes Σ_{site in [s,e)} mecAt(site) directly,
// O((e-s) x ploidy), for on-demand verification against the cached
// window_cost (spec.md §8 property #3, #6).
func (h *Haplotype) computeWindowCost(s, e int) float64 {
	if e > h.numSites {
		e = h.numSites
	}
	var total float64
	for i := s; i < e; i++ {
		total += h.mecAt(i)
	}
	return total
}

// computeTotalCost recomputes Σ_{all sites} mecAt(site) directly.
func (h *Haplotype) computeTotalCost() float64 {
	return h.computeWindowCost(0, h.numSites)
}

// Window returns the current half-open window bounds.
func (h *Haplotype) Window() (start, end int) { return h.winStart, h.winEnd }

// pickReads repopulates the active read set from savedReads: a saved
// read becomes active again iff its range extends past
// window.start+overlap and starts no later than window.end. Reads
// that become active are removed from savedReads.
func (h *Haplotype) pickReads(overlap int) {
	h.reads = newReadList()
	for r := range h.savedReads {
		if r.Range[1] > h.winStart+overlap && r.Range[0] <= h.winEnd {
			h.reads.add(r)
		}
	}
	for _, r := range h.reads.items {
		h.savedReads.remove(r)
	}
}

// InitializeWindow sets the window to [0, min(width, M)) and stride to
// incrementBy, then partitions all currently assigned reads between
// the active set and the saved set by overlap with the new window.
func (h *Haplotype) InitializeWindow(width, incrementBy int) {
	h.winStart = 0
	h.winEnd = width
	if h.winEnd > h.numSites {
		h.winEnd = h.numSites
	}
	h.stride = incrementBy

	for _, r := range h.reads.items {
		h.savedReads.add(r)
	}
	h.reads = newReadList()
	h.pickReads(0)

	h.windowCost = h.computeWindowCost(h.winStart, h.winEnd)
}

// IncrementWindow slides the window forward by stride, freezing reads
// fully contained in the overlap with the previous window (so the
// engine cannot undo work already completed there) while admitting
// reads that bridge into the newly opened territory. See spec.md §4.2
// for the rationale.
func (h *Haplotype) IncrementWindow() {
	oldEnd := h.winEnd

	h.winStart += h.stride
	h.winEnd += h.stride
	if h.winEnd > h.numSites {
		h.winEnd = h.numSites
	}

	for _, r := range h.reads.items {
		if r.Range[1] > h.winStart {
			h.savedReads.add(r)
		}
	}
	h.pickReads(oldEnd - h.winStart)

	h.windowCost = h.computeWindowCost(h.winStart, h.winEnd)
}
