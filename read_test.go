// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import "gopkg.in/check.v1"

type readSuite struct{}

var _ = check.Suite(&readSuite{})

func (s *readSuite) TestNewReadSortsAndComputesRange(c *check.C) {
	r := NewRead([]Site{
		{Pos: 5, Allele: 0, Weight: 1},
		{Pos: 1, Allele: 1, Weight: 1},
		{Pos: 3, Allele: 0, Weight: 1},
	})
	c.Check(r.Sites[0].Pos, check.Equals, 1)
	c.Check(r.Sites[1].Pos, check.Equals, 3)
	c.Check(r.Sites[2].Pos, check.Equals, 5)
	c.Check(r.Range, check.Equals, [2]int{1, 5})
}

func (s *readSuite) TestNewReadPanicsOnEmpty(c *check.C) {
	c.Check(func() { NewRead(nil) }, check.Panics, "sahap: NewRead called with no sites")
}

func (s *readSuite) TestOverlaps(c *check.C) {
	r := NewRead([]Site{{Pos: 2, Allele: 0, Weight: 1}, {Pos: 6, Allele: 0, Weight: 1}})
	c.Check(r.Overlaps(0, 3), check.Equals, true)
	c.Check(r.Overlaps(7, 10), check.Equals, false)
	c.Check(r.Overlaps(6, 10), check.Equals, true)
	c.Check(r.Overlaps(0, 2), check.Equals, false)
}

func (s *readSuite) TestReadListAddRemovePick(c *check.C) {
	l := newReadList()
	r1 := NewRead([]Site{{Pos: 0, Allele: 0, Weight: 1}})
	r2 := NewRead([]Site{{Pos: 1, Allele: 0, Weight: 1}})
	c.Check(l.pick(func(int) int { return 0 }), check.IsNil)

	l.add(r1)
	l.add(r2)
	c.Check(l.len(), check.Equals, 2)
	c.Check(l.has(r1), check.Equals, true)

	l.remove(r1)
	c.Check(l.len(), check.Equals, 1)
	c.Check(l.has(r1), check.Equals, false)
	c.Check(l.pick(func(int) int { return 0 }), check.Equals, r2)

	l.remove(r1) // no-op, not present
	c.Check(l.len(), check.Equals, 1)
}
