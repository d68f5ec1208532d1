// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"golang.org/x/exp/rand"
	"gopkg.in/check.v1"
)

type autoscheduleSuite struct{}

var _ = check.Suite(&autoscheduleSuite{})

// S3: at an extremely high temperature, essentially every bad move is
// accepted, so Pbad converges close to 1.
func (s *autoscheduleSuite) TestFindPbadHighTemperature(c *check.C) {
	f := testInput(c)
	rng := rand.New(rand.NewSource(11))
	g := NewGenome(f, rng, ScoreMEC)

	got := g.findPbad(1e12)
	c.Check(got > 0.9, check.Equals, true)
}

// S4: at an extremely low temperature, bad moves are rejected with
// near-certainty, so Pbad converges close to 0.
func (s *autoscheduleSuite) TestFindPbadLowTemperature(c *check.C) {
	f := testInput(c)
	rng := rand.New(rand.NewSource(12))
	g := NewGenome(f, rng, ScoreMEC)

	got := g.findPbad(1e-12)
	c.Check(got < 1e-3, check.Equals, true)
}

func (s *autoscheduleSuite) TestAutoScheduleInstallsOrderedParameters(c *check.C) {
	f := testInput(c)
	rng := rand.New(rand.NewSource(13))
	g := NewGenome(f, rng, ScoreMEC)

	g.AutoSchedule(1000)
	c.Check(g.tInitial > 0, check.Equals, true)
	c.Check(g.tEnd > 0, check.Equals, true)
	c.Check(g.tEnd <= g.tInitial, check.Equals, true)
	c.Check(g.maxIterations, check.Equals, uint64(1000))
}
