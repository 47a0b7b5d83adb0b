/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package math

import (
	"encoding/hex"
	"math/big"

	mathlib "github.com/IBM/mathlib"
	"github.com/pkg/errors"
)

const scalarSize = 32

// ErrInvalidScalar is returned when a string does not hold a hex encoded scalar.
var ErrInvalidScalar = errors.New("invalid scalar")

// NewScalar reduces v modulo FieldOrder. Negative values wrap around.
func NewScalar(v *big.Int) *mathlib.Zr {
	reduced := new(big.Int).Mod(v, FieldOrder)
	buf := make([]byte, scalarSize)
	reduced.FillBytes(buf)
	return Curve.NewZrFromBytes(buf)
}

// ScalarToBigInt returns the canonical representative of z in [0, FieldOrder).
func ScalarToBigInt(z *mathlib.Zr) *big.Int {
	v := new(big.Int).SetBytes(z.Bytes())
	return v.Mod(v, FieldOrder)
}

// RandomScalar draws a uniform scalar from the curve entropy source.
func RandomScalar() (*mathlib.Zr, error) {
	rng, err := Curve.Rand()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get random number generator")
	}
	return Curve.NewRandomZr(rng), nil
}

// InField reports whether 0 <= v < FieldOrder.
func InField(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(FieldOrder) < 0
}

// ScalarHex returns the minimal big-endian hex encoding of z, left padded to an even length.
// Zero encodes as "00".
func ScalarHex(z *mathlib.Zr) string {
	return Hexify(ScalarToBigInt(z))
}

// Hexify encodes a non-negative integer as minimal even-length big-endian hex.
func Hexify(v *big.Int) string {
	if v.Sign() == 0 {
		return "00"
	}
	return hex.EncodeToString(v.Bytes())
}

// ScalarFromHex parses a big-endian hex string and reduces it modulo FieldOrder.
func ScalarFromHex(s string) (*mathlib.Zr, error) {
	if len(s) == 0 {
		return nil, errors.Wrap(ErrInvalidScalar, "empty string")
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok || v.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidScalar, "invalid hex [%s]", s)
	}
	return NewScalar(v), nil
}
