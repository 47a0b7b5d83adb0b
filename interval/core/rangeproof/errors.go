/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rangeproof

import (
	"github.com/hyperledger-labs/zk-interval/interval/core/pedersen"
	"github.com/pkg/errors"
)

var (
	ErrUpperBoundTooLarge = errors.New("upper bound must be less than the field order")
	ErrNegativeLowerBound = errors.New("lower bound must be greater than or equal to zero")
	ErrAboveUpperBound    = errors.New("value must be less than or equal to the upper bound")
	ErrBelowLowerBound    = errors.New("value must be greater than or equal to the lower bound")
	ErrMissingValue       = errors.New("value must be set")

	// ErrDecoding marks wire data that does not describe a proof.
	ErrDecoding = errors.New("invalid range proof encoding")
)

var domainErrors = []error{
	ErrUpperBoundTooLarge,
	ErrNegativeLowerBound,
	ErrAboveUpperBound,
	ErrBelowLowerBound,
	ErrMissingValue,
	pedersen.ErrValueOutOfField,
}

// IsDomainError reports whether err was caused by inputs outside the admissible domain.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
