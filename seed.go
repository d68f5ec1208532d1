// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Seed mixes host address, wall-clock time, PID, PPID, and /dev/urandom
// (via crypto/rand, when available) into a single uint64, per spec.md
// §5's determinism requirement: process instances started in the same
// second on the same host still get distinct seeds. A fixed seed (any
// uint64) reproduces an annealing run exactly, since the Genome's RNG
// is the only source of nondeterminism in the core.
func Seed() uint64 {
	var buf []byte

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	buf = append(buf, []byte(host)...)
	buf = append(buf, []byte(fmt.Sprintf("%d", time.Now().UnixNano()))...)
	buf = append(buf, []byte(fmt.Sprintf("%d:%d", os.Getpid(), os.Getppid()))...)

	var urand [32]byte
	if _, err := rand.Read(urand[:]); err == nil {
		buf = append(buf, urand[:]...)
	}

	sum := blake2b.Sum256(buf)
	return binary.LittleEndian.Uint64(sum[:8])
}
