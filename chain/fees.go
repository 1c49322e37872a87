// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// AllocationUnits returns the storage units needed to allocate keys that
// reserve the given chunk counts.
func AllocationUnits(r Rules, allocations map[string]uint16) (uint64, error) {
	units := uint64(0)
	for k, chunks := range allocations {
		valueUnits, err := smath.Mul(r.GetStorageValueAllocateUnits(), uint64(chunks))
		if err != nil {
			return 0, fmt.Errorf("%w: key=%x", err, k)
		}
		keyUnits, err := smath.Add(r.GetStorageKeyAllocateUnits(), valueUnits)
		if err != nil {
			return 0, fmt.Errorf("%w: key=%x", err, k)
		}
		units, err = smath.Add(units, keyUnits)
		if err != nil {
			return 0, err
		}
	}
	return units, nil
}

// AllocationFee prices [allocations] at the current unit price.
func AllocationFee(r Rules, allocations map[string]uint16) (uint64, error) {
	units, err := AllocationUnits(r, allocations)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFee, err)
	}
	fee, err := smath.Mul(units, r.GetUnitPrice())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFee, err)
	}
	return fee, nil
}
