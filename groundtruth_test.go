// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"golang.org/x/exp/rand"
	"gopkg.in/check.v1"
)

type groundtruthSuite struct{}

var _ = check.Suite(&groundtruthSuite{})

func (s *groundtruthSuite) TestCompareGroundTruthPicksBestPermutation(c *check.C) {
	f := testInput(c)
	rng := rand.New(rand.NewSource(21))
	g := NewGenome(f, rng, ScoreMEC)

	g.haplotypes[0] = NewHaplotype(4, 2)
	g.haplotypes[1] = NewHaplotype(4, 2)
	c.Assert(g.haplotypes[0].AddRead(NewRead([]Site{{0, 0, 1}, {1, 0, 1}, {2, 0, 1}, {3, 0, 1}})), check.IsNil)
	c.Assert(g.haplotypes[1].AddRead(NewRead([]Site{{0, 1, 1}, {1, 1, 1}, {2, 1, 1}, {3, 1, 1}})), check.IsNil)

	truth := [][]int{{1, 1, 1, 1}, {0, 0, 0, 0}}
	// h0 solution is all 0s (matches truth row 1), h1 is all 1s
	// (matches truth row 0): the swapped permutation has loss 0.
	c.Check(g.CompareGroundTruth(truth), check.Equals, 0)
}

func (s *groundtruthSuite) TestCompareGroundTruthSkipsUnknown(c *check.C) {
	f := testInput(c)
	rng := rand.New(rand.NewSource(22))
	g := NewGenome(f, rng, ScoreMEC)
	g.haplotypes[0] = NewHaplotype(4, 2)
	g.haplotypes[1] = NewHaplotype(4, 2)
	c.Assert(g.haplotypes[0].AddRead(NewRead([]Site{{0, 0, 1}, {1, 0, 1}, {2, 0, 1}, {3, 0, 1}})), check.IsNil)

	truth := [][]int{{groundTruthUnknown, 0, 0, 0}, {groundTruthUnknown, groundTruthUnknown, groundTruthUnknown, groundTruthUnknown}}
	c.Check(g.CompareGroundTruth(truth), check.Equals, 0)
}

func (s *groundtruthSuite) TestAgreementIndependence(c *check.C) {
	a := []bool{true, true, false, false, true, false}
	b := []bool{true, false, true, false, true, false}
	p := AgreementIndependence(a, b)
	c.Check(p >= 0 && p <= 1, check.Equals, true)
}
