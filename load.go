// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"errors"
	"fmt"
	"io"

	"github.com/sahap-tools/sahap/wif"
)

// LoadReads builds an InputFile from a WIF stream (spec.md §6):
// ploidy is fixed by the caller (2 in the canonical CLI build), the
// dense site index is built in first-seen order, and every parsed site
// token becomes one Site on its read with weight = weight_integer/100.
func LoadReads(r io.Reader, ploidy int) (*InputFile, error) {
	positions, parsed, err := wif.ParseReads(r)
	if err != nil {
		if isWifErr(err) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	index := make(map[int]int, len(positions))
	for i, p := range positions {
		index[p] = i
	}

	reads := make([]*Read, 0, len(parsed))
	for _, sites := range parsed {
		rsites := make([]Site, len(sites))
		for i, s := range sites {
			rsites[i] = Site{
				Pos:    index[s.RawPos],
				Allele: s.Allele,
				Weight: float64(s.Weight) / 100,
			}
		}
		reads = append(reads, NewRead(rsites))
	}

	f := &InputFile{
		Index:     index,
		Positions: positions,
		Reads:     reads,
		Ploidy:    ploidy,
	}
	return f, f.Validate()
}

// LoadGroundTruth parses a ground-truth stream against an already
// loaded InputFile and attaches it, per spec.md §6.
func LoadGroundTruth(f *InputFile, r io.Reader) error {
	rows, err := wif.ParseGroundTruth(r, f.Ploidy, f.NumSites())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	f.GroundTruth = rows
	f.HasGroundTruth = true
	return f.Validate()
}

func isWifErr(err error) bool {
	return errors.Is(err, wif.ErrInvalidWeight) || errors.Is(err, wif.ErrMalformedToken)
}
