// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import "math"

// retreatSlackStep is the undocumented "add" slack per reduction event
// named in spec.md Design Notes §9 (`+0.0005`): reproduced literally,
// without derivation, because the source offers none.
const retreatSlackStep = 0.0005

// retreatCheckPeriod is L/2: the schedule is re-evaluated every this
// many iterations.
const retreatCheckPeriod = ringCapacity / 2

// retreatResult reports what the schedule decided at one checkpoint.
type retreatResult struct {
	kind   retreatKind
	amount float64
}

type retreatKind int

const (
	retreatNone retreatKind = iota
	retreatSmall
	retreatFull
)

// schedule holds the adaptive-retreat bookkeeping that sits alongside a
// Genome's baseline exponential cooling: TargetMEC tracking, the
// last-retreat fraction, and the accumulated slack. See spec.md §4.4.
type schedule struct {
	targetMEC float64
	slack     float64
	lastFrac  float64
}

// setTarget installs TargetMEC = windowTotalCoverage * epsilon for the
// current window, per spec.md §4.4.
func (s *schedule) setTarget(windowTotalCoverage float64) {
	s.targetMEC = windowTotalCoverage * errorRate
	s.slack = 0
	s.lastFrac = 0
}

// target returns the current effective target, TargetMEC + slack.
func (s *schedule) target() float64 {
	return s.targetMEC + s.slack
}

// evaluate applies the retreat decision rule of spec.md §4.4 at one
// checkpoint. totalCost is the Genome's current (unnormalized) MEC,
// meanCoverage is Genome.MeanCoverage(), numMetaIters is the number of
// retreat checkpoints evaluated so far in this window (>=1, feeds the
// small-retreat amount's ln term).
func (s *schedule) evaluate(totalCost, meanCoverage float64, numMetaIters int, iter, maxIterations uint64, pBad float64) retreatResult {
	frac := float64(iter) / float64(maxIterations)
	target := s.target()
	if target <= 0 {
		return retreatResult{kind: retreatNone}
	}
	factor := totalCost / target

	if frac > 0.94 && factor > 1.3 {
		return retreatResult{kind: retreatFull, amount: 0.94}
	}

	if frac-s.lastFrac > 0.02 {
		smallTrigger := (frac > 0.3 || pBad < 0.2) && factor > 16
		smallTrigger = smallTrigger || ((frac > 0.5 || pBad < 0.1) && factor > 8)
		if smallTrigger {
			n := numMetaIters
			if n < 1 {
				n = 1
			}
			amount := factor * 0.01 / meanCoverage * math.Log(float64(n))
			if amount < 0 {
				amount = 0
			}
			return retreatResult{kind: retreatSmall, amount: amount}
		}
	}

	return retreatResult{kind: retreatNone}
}

// recordReduction bumps the target slack after a retreat has rewound
// the iteration counter, per the literal "+0.0005 per reduction event"
// rule named (without derivation) in spec.md Design Notes §9.
func (s *schedule) recordReduction() {
	s.slack += retreatSlackStep
}

// apply computes the rewound iteration counter for a retreat of the
// given amount, clamped at 0, and updates last_retreat_frac.
func (s *schedule) apply(iter uint64, maxIterations uint64, amount, frac float64) uint64 {
	s.lastFrac = frac
	reduce := uint64(amount * float64(maxIterations))
	if reduce >= iter {
		return 0
	}
	return iter - reduce
}
