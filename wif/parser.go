// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package wif parses the WIF (weighted-reads-in-fragments) line format
// described in spec.md §6: one read per non-empty, non-#-prefixed
// line, each a colon-separated list of site tokens.
package wif

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
)

// ErrInvalidWeight is returned when a site token's weight integer is
// outside (0,100].
var ErrInvalidWeight = errors.New("wif: weight_integer must be in (0,100]")

// ErrMalformedToken is returned when a site token does not have the
// five whitespace-separated fields the format requires.
var ErrMalformedToken = errors.New("wif: malformed site token")

// Site is one parsed site token: the caller compacts RawPos into a
// dense index.
type Site struct {
	RawPos int
	Allele int
	Weight int // 1..100; divide by 100 for the confidence weight
}

// Open returns a reader for path, transparently decompressing if path
// ends in ".gz" (matching the teacher's use of klauspost/pgzip for
// gzip streams it controls both ends of).
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &gzReadCloser{zr, f}, nil
	}
	return f, nil
}

type gzReadCloser struct {
	*pgzip.Reader
	underlying *os.File
}

func (g *gzReadCloser) Close() error {
	g.Reader.Close()
	return g.underlying.Close()
}

// ParseReads reads one read per non-empty, non-#-prefixed line from r.
// It returns, in first-seen order, the distinct raw positions observed
// across all reads, and the parsed reads (each a slice of Site in the
// order the tokens appeared on their line).
func ParseReads(r io.Reader) (positions []int, reads [][]Site, err error) {
	seen := make(map[int]struct{})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var sites []Site
		for _, tok := range strings.Split(line, ":") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			fields := strings.Fields(tok)
			if len(fields) != 5 {
				return nil, nil, fmt.Errorf("wif: line %d: %w: %q", lineNo, ErrMalformedToken, tok)
			}
			rawPos, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, nil, fmt.Errorf("wif: line %d: %w: bad position %q", lineNo, ErrMalformedToken, fields[0])
			}
			allele, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, nil, fmt.Errorf("wif: line %d: %w: bad allele %q", lineNo, ErrMalformedToken, fields[3])
			}
			weightInt, err := strconv.Atoi(fields[4])
			if err != nil {
				return nil, nil, fmt.Errorf("wif: line %d: %w: bad weight %q", lineNo, ErrMalformedToken, fields[4])
			}
			if weightInt <= 0 || weightInt > 100 {
				return nil, nil, fmt.Errorf("wif: line %d: %w: got %d", lineNo, ErrInvalidWeight, weightInt)
			}

			if _, ok := seen[rawPos]; !ok {
				seen[rawPos] = struct{}{}
				positions = append(positions, rawPos)
			}
			sites = append(sites, Site{RawPos: rawPos, Allele: allele, Weight: weightInt})
		}
		if len(sites) > 0 {
			reads = append(reads, sites)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("wif: %w", err)
	}
	return positions, reads, nil
}

// groundTruthUnknown is the parsed value for an 'X' ground-truth call.
const groundTruthUnknown = -1

// ParseGroundTruth reads exactly ploidy lines, each of length numSites,
// characters '0', '1', or 'X', per spec.md §6.
func ParseGroundTruth(r io.Reader, ploidy, numSites int) ([][]int, error) {
	rows := make([][]int, 0, ploidy)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) != numSites {
			return nil, fmt.Errorf("wif: ground truth row %d has length %d, expected %d", len(rows), len(line), numSites)
		}
		row := make([]int, numSites)
		for i, c := range line {
			switch c {
			case '0':
				row[i] = 0
			case '1':
				row[i] = 1
			case 'X', 'x':
				row[i] = groundTruthUnknown
			default:
				return nil, fmt.Errorf("wif: ground truth row %d: unexpected character %q", len(rows), c)
			}
		}
		rows = append(rows, row)
		if len(rows) == ploidy {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wif: %w", err)
	}
	if len(rows) != ploidy {
		return nil, fmt.Errorf("wif: ground truth has %d rows, expected ploidy %d", len(rows), ploidy)
	}
	return rows, nil
}
