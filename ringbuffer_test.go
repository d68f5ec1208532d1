// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import "gopkg.in/check.v1"

type ringbufferSuite struct{}

var _ = check.Suite(&ringbufferSuite{})

func (s *ringbufferSuite) TestAcceptBufferDefaultAverage(c *check.C) {
	var b acceptBuffer
	c.Check(b.average(), check.Equals, 0.5)
}

func (s *ringbufferSuite) TestAcceptBufferAverage(c *check.C) {
	var b acceptBuffer
	b.record(true)
	b.record(true)
	b.record(false)
	c.Check(b.average(), check.Equals, 2.0/3.0)
}

func (s *ringbufferSuite) TestAcceptBufferOverwriteAtCapacity(c *check.C) {
	var b acceptBuffer
	for i := 0; i < ringCapacity; i++ {
		b.record(true)
	}
	c.Check(b.sum, check.Equals, ringCapacity)
	b.record(false)
	c.Check(b.len, check.Equals, ringCapacity)
	c.Check(b.sum, check.Equals, ringCapacity-1)
	c.Check(b.average(), check.Equals, float64(ringCapacity-1)/float64(ringCapacity))
}

func (s *ringbufferSuite) TestPbadBufferAverage(c *check.C) {
	var b pbadBuffer
	b.record(0.5)
	b.record(0.25)
	c.Check(b.average(), check.Equals, 0.375)
}

func (s *ringbufferSuite) TestPbadBufferDefaultAverage(c *check.C) {
	var b pbadBuffer
	c.Check(b.average(), check.Equals, 0.5)
}

func (s *ringbufferSuite) TestPbadBufferReset(c *check.C) {
	var b pbadBuffer
	b.record(0.9)
	b.reset()
	c.Check(b.average(), check.Equals, 0.5)
	c.Check(b.len, check.Equals, 0)
}
