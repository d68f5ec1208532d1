// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import "errors"

// Sentinel errors for the taxonomy in spec.md §7. InvalidInput and its
// wrapped variants are fatal-at-load; DuplicateAssignment/NotAssigned
// indicate a broken Haplotype invariant and are never retried;
// InvariantViolation is raised by assertions the caller should treat
// as fatal; Timeout and NoProgress are recovered locally by the
// controller.
var (
	ErrInvalidInput        = errors.New("sahap: invalid input")
	ErrInvalidWeight       = errors.New("sahap: invalid weight")
	ErrDuplicateAssignment = errors.New("sahap: read already assigned to this haplotype")
	ErrNotAssigned         = errors.New("sahap: read not assigned to this haplotype")
	ErrInvariantViolation  = errors.New("sahap: invariant violation")
	ErrTimeout             = errors.New("sahap: window wall-clock budget exceeded")
	ErrNoProgress          = errors.New("sahap: full retreat: no progress")
)
