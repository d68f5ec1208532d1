// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"fmt"
	"io"
)

// WriteConsensus emits the per-block consensus report described in
// spec.md §6: for each maximal overlap block, one line per haplotype,
// '-' outside the block and 'X' for an undefined (zero-coverage) site.
func (g *Genome) WriteConsensus(w io.Writer) error {
	for n, b := range g.Blocks() {
		if _, err := fmt.Fprintf(w, "BLOCK %d\n", n); err != nil {
			return err
		}
		for _, h := range g.haplotypes {
			line := make([]byte, h.NumSites())
			for i := range line {
				switch {
				case i < b.Start || i > b.End:
					line[i] = '-'
				case h.Solution(i) == undefined:
					line[i] = 'X'
				default:
					line[i] = byte('0' + h.Solution(i))
				}
			}
			if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
