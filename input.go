// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import "fmt"

// InputFile is the immutable collection of reads and the dense site
// index built from a WIF file (or assembled programmatically for
// tests). Once built it is never mutated; every Haplotype holds
// non-owning references into its Reads slice.
type InputFile struct {
	// Index maps a raw (pre-compaction) position to its dense index.
	Index map[int]int
	// Positions holds the raw position of each dense site, indexed by
	// dense index; LoadReads fills it in first-seen order, so it is
	// sorted only when the input lists positions in ascending order.
	Positions []int
	// Reads is the backing vector that owns every *Read; nothing else
	// in the system allocates a Read.
	Reads []*Read
	Ploidy int

	// GroundTruth, if HasGroundTruth, is a Ploidy x len(Positions)
	// matrix of alleles (or undefined for unknown positions).
	GroundTruth    [][]int
	HasGroundTruth bool

	// Zygosity, if HasZygosity, is a per-site annotation independent
	// of ground truth.
	Zygosity    []Zygosity
	HasZygosity bool
}

// NumSites returns the number of distinct dense sites, M in spec terms.
func (f *InputFile) NumSites() int { return len(f.Positions) }

// Validate checks the cross-field invariants an InputFile must satisfy
// before it can back a Genome: ground truth row count matches ploidy
// and each row's length matches NumSites.
func (f *InputFile) Validate() error {
	if f.Ploidy < 1 {
		return fmt.Errorf("%w: ploidy must be >= 1, got %d", ErrInvalidInput, f.Ploidy)
	}
	if f.HasGroundTruth {
		if len(f.GroundTruth) != f.Ploidy {
			return fmt.Errorf("%w: ground truth has %d rows, expected ploidy %d", ErrInvalidInput, len(f.GroundTruth), f.Ploidy)
		}
		for i, row := range f.GroundTruth {
			if len(row) != f.NumSites() {
				return fmt.Errorf("%w: ground truth row %d has %d sites, expected %d", ErrInvalidInput, i, len(row), f.NumSites())
			}
		}
	}
	return nil
}
