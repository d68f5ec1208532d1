// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// ScoringStrategy selects which cached Haplotype field feeds
// Genome.score(): the wMEC total or the Poisson site cost. Both update
// paths share the same vote skeleton in Haplotype; they differ only in
// which cached field Genome reads, per spec.md Design Notes §9.
type ScoringStrategy int

const (
	ScoreMEC ScoringStrategy = iota
	ScorePoisson
)

// move records enough information to revert a single read reassignment.
type move struct {
	from, to int
	read     *Read
}

// Genome owns the K haplotypes and the global move/accept/revert
// protocol, the sliding window, running statistics, and the retreat
// schedule. A Genome lives for the duration of one Controller.Run call
// (the annealing Controller drives it) and may be reshuffled for Pbad
// probes.
type Genome struct {
	input      *InputFile
	haplotypes []*Haplotype
	rng        *rand.Rand
	scoring    ScoringStrategy

	winStart, winEnd, stride int

	t                           float64
	tInitial, tEnd, tDecay      float64
	maxIterations, curIteration uint64

	fAccept acceptBuffer
	pBad    pbadBuffer

	totalBad, totalBadAccepted int

	lastMove move

	lastRetreatFrac float64
	targetSlack     float64
}

// NewGenome builds K empty haplotypes over input's dense site index and
// distributes every read uniformly at random across them. rng is the
// injectable move-selection source (spec.md §5, §9: seeded explicitly
// by the caller for deterministic tests, never a package-global).
func NewGenome(input *InputFile, rng *rand.Rand, scoring ScoringStrategy) *Genome {
	g := &Genome{
		input:   input,
		rng:     rng,
		scoring: scoring,
		winEnd:  input.NumSites(),
	}
	g.haplotypes = make([]*Haplotype, input.Ploidy)
	for i := range g.haplotypes {
		g.haplotypes[i] = NewHaplotype(input.NumSites(), input.Ploidy)
	}
	g.Shuffle()
	return g
}

// Shuffle clears every haplotype and redistributes all reads uniformly
// at random. Used once at construction and again before every Pbad
// probe (spec.md §4.5).
func (g *Genome) Shuffle() {
	ploidy := len(g.haplotypes)
	for i := range g.haplotypes {
		g.haplotypes[i] = NewHaplotype(g.input.NumSites(), ploidy)
	}
	for _, r := range g.input.Reads {
		dest := g.rng.Intn(ploidy)
		if err := g.haplotypes[dest].AddRead(r); err != nil {
			panic(fmt.Errorf("sahap: shuffle: %w", err))
		}
	}
}

// Haplotypes returns the K haplotypes, in order.
func (g *Genome) Haplotypes() []*Haplotype { return g.haplotypes }

// Ploidy returns K.
func (g *Genome) Ploidy() int { return len(g.haplotypes) }

// costOf returns the cost of h under the active scoring strategy.
func (g *Genome) costOf(h *Haplotype) float64 {
	if g.scoring == ScorePoisson {
		return h.SiteCost()
	}
	return h.TotalCost()
}

// MEC returns the sum of every haplotype's total (w)MEC, independent of
// scoring strategy — this is the reported diagnostic metric.
func (g *Genome) MEC() float64 {
	var sum float64
	for _, h := range g.haplotypes {
		sum += h.TotalCost()
	}
	return sum
}

// score returns the normalized sum of costOf over every haplotype,
// divided by K*M. Acceptance is computed on this normalized value so
// that temperatures stay in a dimensionless regime independent of
// instance size (spec.md §4.3).
func (g *Genome) score() float64 {
	var sum float64
	for _, h := range g.haplotypes {
		sum += g.costOf(h)
	}
	denom := float64(len(g.haplotypes) * g.input.NumSites())
	if denom == 0 {
		return 0
	}
	return sum / denom
}

// MeanCoverage returns the sum of every haplotype's mean coverage, i.e.
// the mean number of reads covering a site across the whole Genome —
// used by the retreat schedule's amount formula.
func (g *Genome) MeanCoverage() float64 {
	var sum float64
	for _, h := range g.haplotypes {
		sum += h.MeanCoverage()
	}
	return sum
}

// WindowTotalCoverage sums WindowTotalCoverage across every haplotype;
// this is the basis of TargetMEC in the retreat schedule.
func (g *Genome) WindowTotalCoverage() float64 {
	var sum float64
	for _, h := range g.haplotypes {
		sum += h.WindowTotalCoverage()
	}
	return sum
}

// SetTemperature sets the current annealing temperature directly (used
// by the Pbad probe, which bypasses the schedule).
func (g *Genome) SetTemperature(t float64) { g.t = t }

// Temperature returns the current annealing temperature.
func (g *Genome) Temperature() float64 { return g.t }

// SetParameters installs the baseline exponential schedule's
// parameters: t_decay = -ln(t_end/t_initial), per spec.md §4.4.
func (g *Genome) SetParameters(tInitial, tEnd float64, maxIterations uint64) {
	g.tInitial = tInitial
	g.tEnd = tEnd
	g.tDecay = -math.Log(tEnd / tInitial)
	g.maxIterations = maxIterations
}

// ResetBuffers clears fAccept, pBad, and the totalBad counters — used
// at the start of each window's annealing run, by a full retreat
// (spec.md §4.4), and by every Pbad probe.
func (g *Genome) ResetBuffers() {
	g.fAccept.reset()
	g.pBad.reset()
	g.totalBad = 0
	g.totalBadAccepted = 0
}

// Move performs one random read reassignment, per spec.md §4.3: pick a
// nonempty source haplotype (retrying up to 10*K times), pick a
// destination, pick a read uniformly from the source's active pool,
// add before remove so the read is never transiently unassigned.
func (g *Genome) Move() error {
	k := len(g.haplotypes)
	var from int
	found := false
	for attempt := 0; attempt < 10*k; attempt++ {
		from = g.rng.Intn(k)
		if g.haplotypes[from].Reads().len() > 0 {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: no haplotype has an active read after %d attempts", ErrInvariantViolation, 10*k)
	}

	var to int
	if k == 2 {
		to = 1 - from
	} else {
		to = (from + 1 + g.rng.Intn(k-1)) % k
	}

	r := g.haplotypes[from].Reads().pick(g.rng.Intn)
	if r == nil {
		return fmt.Errorf("%w: chosen haplotype has no active reads to pick", ErrInvariantViolation)
	}

	if err := g.haplotypes[to].AddRead(r); err != nil {
		return err
	}
	if err := g.haplotypes[from].RemoveRead(r); err != nil {
		return err
	}

	g.lastMove = move{from: from, to: to, read: r}
	return nil
}

// RevertMove undoes the most recent Move: remove from the destination,
// add back to the source. This is a no-op on Genome state overall
// (spec.md §8 round-trip property).
func (g *Genome) RevertMove() error {
	m := g.lastMove
	if err := g.haplotypes[m.to].RemoveRead(m.read); err != nil {
		return err
	}
	if err := g.haplotypes[m.from].AddRead(m.read); err != nil {
		return err
	}
	return nil
}

// acceptance computes P_accept per spec.md §4.3.
func (g *Genome) acceptance(newScore, oldScore float64) float64 {
	if newScore < oldScore {
		return 1
	}
	if g.t == 0 {
		return 0
	}
	return math.Exp((oldScore - newScore) / g.t)
}

// Iteration runs one full move/score/accept-or-revert/record cycle at
// the current temperature, per spec.md §4.3's statistics-recording rules.
func (g *Genome) Iteration() error {
	oldScore := g.score()
	if err := g.Move(); err != nil {
		return err
	}
	newScore := g.score()

	pAccept := g.acceptance(newScore, oldScore)
	u := g.rng.Float64()
	accept := u <= pAccept

	good := newScore < oldScore
	if !accept && !good {
		if err := g.RevertMove(); err != nil {
			return err
		}
	}

	g.fAccept.record(good)

	if !good && oldScore != newScore {
		g.totalBad++
		if accept {
			g.totalBadAccepted++
		}
		g.pBad.record(pAccept)
	}

	g.curIteration++
	return nil
}
