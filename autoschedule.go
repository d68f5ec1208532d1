// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

// pbadStableRelTol is the relative precision the running average of
// pBad.average() must stabilize to before findPbad reports a result,
// per spec.md §4.5.
const pbadStableRelTol = 1e-3

// pbadMinIterations is the minimum number of iterations findPbad runs
// before it is allowed to declare convergence.
const pbadMinIterations = 30

// findPbad reshuffles the Genome, fixes the temperature at t, resets
// the running statistics, and iterates until the running average of
// pBad.average() stabilizes to relative precision pbadStableRelTol
// (minimum pbadMinIterations iterations), per spec.md §4.5.
func (g *Genome) findPbad(t float64) float64 {
	g.Shuffle()
	g.SetTemperature(t)
	g.ResetBuffers()

	prev := g.pBad.average()
	for i := 0; ; i++ {
		if err := g.Iteration(); err != nil {
			panic(err)
		}
		cur := g.pBad.average()
		if i+1 >= pbadMinIterations {
			denom := cur
			if denom == 0 {
				denom = 1
			}
			if abs(cur-prev)/abs(denom) < pbadStableRelTol {
				return cur
			}
		}
		prev = cur
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// AutoSchedule calibrates (t_initial, t_end) by Pbad probing per
// spec.md §4.5, then installs them as the baseline exponential
// schedule with the given iteration budget. This is component E, the
// auto-schedule / Pbad probe.
func (g *Genome) AutoSchedule(maxIterations uint64) {
	tInitial := 1.0
	for g.findPbad(tInitial) < 0.85 {
		tInitial *= 2
	}
	for g.findPbad(tInitial) > 0.85 {
		tInitial /= 2
	}
	for g.findPbad(tInitial) < 0.85 {
		tInitial *= 1.2
	}

	tEnd := tInitial
	for g.findPbad(tEnd) > 1e-3 {
		tEnd /= 2
	}
	for g.findPbad(tEnd) < 1e-3 {
		tEnd *= 1.2
	}

	g.SetParameters(tInitial, tEnd, maxIterations)
}
