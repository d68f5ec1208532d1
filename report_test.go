// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"bytes"
	"strings"

	"golang.org/x/exp/rand"
	"gopkg.in/check.v1"
)

type reportSuite struct{}

var _ = check.Suite(&reportSuite{})

func (s *reportSuite) TestWriteConsensusFormat(c *check.C) {
	reads := []*Read{NewRead([]Site{{0, 0, 1}, {1, 0, 1}})}
	f := &InputFile{
		Index:     map[int]int{0: 0, 1: 1, 2: 2, 3: 3},
		Positions: []int{0, 1, 2, 3},
		Reads:     reads,
		Ploidy:    2,
	}
	rng := rand.New(rand.NewSource(1))
	g := &Genome{input: f, haplotypes: []*Haplotype{NewHaplotype(4, 2), NewHaplotype(4, 2)}, rng: rng}
	c.Assert(g.haplotypes[0].AddRead(NewRead([]Site{{0, 0, 1}, {1, 0, 1}})), check.IsNil)
	c.Assert(g.haplotypes[1].AddRead(NewRead([]Site{{0, 1, 1}, {1, 1, 1}})), check.IsNil)

	var buf bytes.Buffer
	c.Assert(g.WriteConsensus(&buf), check.IsNil)
	out := buf.String()

	c.Check(strings.Contains(out, "BLOCK 0"), check.Equals, true)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	c.Assert(len(lines), check.Equals, 3)
	c.Check(lines[1], check.Equals, "00--")
	c.Check(lines[2], check.Equals, "11--")
}
