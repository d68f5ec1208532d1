// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Controller drives the windowed annealing loop described in spec.md
// §4.4: it advances Genome's window, runs iterations at the
// temperature the baseline schedule prescribes, applies the adaptive
// retreat rule every L/2 iterations, and enforces a per-window
// wall-clock budget. It is the component spec.md calls the "annealing
// controller" (D).
type Controller struct {
	genome *Genome
	log    *logrus.Logger

	WindowWidth  int
	WindowStride int
	WindowBudget time.Duration
	ReportEvery  uint64

	sched      schedule
	metaIters  int
	reductions int
}

// NewController wires a Controller to drive g. log may be nil, in
// which case a default logrus.Logger with the teacher's text
// formatter is used.
func NewController(g *Genome, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.New()
	}
	return &Controller{
		genome:       g,
		log:          log,
		WindowWidth:  1000,
		WindowStride: 500,
		WindowBudget: 50 * time.Second,
		ReportEvery:  10000,
	}
}

// Run executes the full windowed optimization: initialize the window,
// then repeatedly anneal-to-completion-or-timeout and slide forward
// until the window has advanced past M-width. Returns an error only on
// an unrecoverable invariant violation; Timeout and NoProgress are
// handled internally per spec.md §7.
func (c *Controller) Run() error {
	M := c.genome.haplotypes[0].NumSites()
	for _, h := range c.genome.haplotypes {
		h.InitializeWindow(c.WindowWidth, c.WindowStride)
	}
	c.genome.winStart, c.genome.winEnd = c.genome.haplotypes[0].Window()
	c.sched.setTarget(c.genome.WindowTotalCoverage())

	for {
		if err := c.runWindow(); err != nil {
			return err
		}

		start, _ := c.genome.haplotypes[0].Window()
		if start+c.WindowStride >= M-c.WindowWidth {
			break
		}
		for _, h := range c.genome.haplotypes {
			h.IncrementWindow()
		}
		c.genome.winStart, c.genome.winEnd = c.genome.haplotypes[0].Window()
		c.sched.setTarget(c.genome.WindowTotalCoverage())
		c.metaIters = 0
		c.reductions = 0
	}
	return nil
}

// runWindow anneals the current window to completion or timeout,
// per spec.md §4.4's completion rule (b): a hard wall-clock budget.
func (c *Controller) runWindow() error {
	deadline := time.Now().Add(c.WindowBudget)
	c.genome.ResetBuffers()
	c.genome.curIteration = 0

	for c.genome.curIteration < c.genome.maxIterations {
		if time.Now().After(deadline) {
			c.log.WithField("reason", "timeout").Debug("window budget exhausted")
			return nil
		}

		t := c.temperatureAt(c.genome.curIteration)
		c.genome.SetTemperature(t)
		if err := c.genome.Iteration(); err != nil {
			return fmt.Errorf("sahap: controller: %w", err)
		}

		if c.genome.curIteration%retreatCheckPeriod == 0 {
			c.checkRetreat()
		}

		if c.ReportEvery > 0 && c.genome.curIteration%c.ReportEvery == 0 {
			c.report()
		}
	}
	return nil
}

// temperatureAt computes T(iter) per the baseline exponential schedule
// in spec.md §4.4.
func (c *Controller) temperatureAt(iter uint64) float64 {
	s := float64(iter) / float64(c.genome.maxIterations)
	return c.genome.tInitial * math.Exp(-c.genome.tDecay*s)
}

// maxReductions bounds the number of retreat events a single window may
// take, per spec.md §4.4's "bounded by the run length": a window has at
// most maxIterations/retreatCheckPeriod checkpoints, so a window that
// has already retreated that many times is stuck and further retreats
// would only loop indefinitely without making progress.
func (c *Controller) maxReductions() int {
	n := c.genome.maxIterations / retreatCheckPeriod
	if n == 0 {
		n = 1
	}
	return int(n)
}

// checkRetreat evaluates the adaptive retreat rule and applies it if
// triggered, per spec.md §4.4.
func (c *Controller) checkRetreat() {
	c.metaIters++
	frac := float64(c.genome.curIteration) / float64(c.genome.maxIterations)
	pBad := c.genome.pBad.average()

	if c.reductions >= c.maxReductions() {
		return
	}

	result := c.sched.evaluate(c.genome.MEC(), c.genome.MeanCoverage(), c.metaIters, c.genome.curIteration, c.genome.maxIterations, pBad)
	switch result.kind {
	case retreatFull:
		c.log.WithFields(logrus.Fields{"frac": frac, "amount": result.amount}).Info("full retreat")
		c.genome.curIteration = c.sched.apply(c.genome.curIteration, c.genome.maxIterations, result.amount, frac)
		c.genome.ResetBuffers()
		c.sched.recordReduction()
		c.reductions++
	case retreatSmall:
		c.log.WithFields(logrus.Fields{"frac": frac, "amount": result.amount}).Debug("small retreat")
		c.genome.curIteration = c.sched.apply(c.genome.curIteration, c.genome.maxIterations, result.amount, frac)
		c.sched.recordReduction()
		c.reductions++
	}
}

func (c *Controller) report() {
	fields := logrus.Fields{
		"iter": c.genome.curIteration,
		"pct":  100 * float64(c.genome.curIteration) / float64(c.genome.maxIterations),
		"t":    c.genome.Temperature(),
		"pBad": c.genome.pBad.average(),
		"mec":  c.genome.MEC(),
	}
	c.log.WithFields(fields).Info("annealing progress")
}
