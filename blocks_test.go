// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"golang.org/x/exp/rand"
	"gopkg.in/check.v1"
)

type blocksSuite struct{}

var _ = check.Suite(&blocksSuite{})

func (s *blocksSuite) TestBlocksMergesOverlappingRanges(c *check.C) {
	reads := []*Read{
		NewRead([]Site{{0, 0, 1}, {1, 0, 1}}),
		NewRead([]Site{{1, 0, 1}, {2, 0, 1}}),
		NewRead([]Site{{3, 0, 1}, {4, 0, 1}}),
	}
	f := &InputFile{
		Index:     map[int]int{0: 0, 1: 1, 2: 2, 5: 3, 6: 4},
		Positions: []int{0, 1, 2, 3, 4},
		Reads:     reads,
		Ploidy:    2,
	}
	rng := rand.New(rand.NewSource(1))
	g := NewGenome(f, rng, ScoreMEC)

	blocks := g.Blocks()
	c.Assert(blocks, check.HasLen, 2)
	c.Check(blocks[0], check.Equals, Block{Start: 0, End: 2})
	c.Check(blocks[1], check.Equals, Block{Start: 3, End: 4})
}

func (s *blocksSuite) TestBlocksEmptyInput(c *check.C) {
	f := &InputFile{Positions: []int{}, Ploidy: 2}
	rng := rand.New(rand.NewSource(1))
	g := &Genome{input: f, haplotypes: []*Haplotype{NewHaplotype(0, 2), NewHaplotype(0, 2)}, rng: rng}
	c.Check(g.Blocks(), check.IsNil)
}
