/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rangeproof

import (
	"math/big"

	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/pkg/errors"
)

// MaxUpperBound is the largest admissible upper bound, FieldOrder - 1.
func MaxUpperBound() *big.Int {
	return new(big.Int).Sub(math.FieldOrder, big.NewInt(1))
}

// Bounds resolves unset bounds to their defaults and validates them.
func Bounds(lower, upper *big.Int) (*big.Int, *big.Int, error) {
	if upper == nil {
		upper = MaxUpperBound()
	} else {
		upper = new(big.Int).Set(upper)
	}
	if lower == nil {
		lower = new(big.Int)
	} else {
		lower = new(big.Int).Set(lower)
	}
	if upper.Cmp(MaxUpperBound()) > 0 {
		return nil, nil, errors.Wrapf(ErrUpperBoundTooLarge, "invalid upper bound [%s]", upper)
	}
	if lower.Sign() < 0 {
		return nil, nil, errors.Wrapf(ErrNegativeLowerBound, "invalid lower bound [%s]", lower)
	}
	return lower, upper, nil
}
