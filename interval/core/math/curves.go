/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package math

import (
	"encoding/hex"
	"fmt"
	"math/big"

	mathlib "github.com/IBM/mathlib"
)

// CurveID selects the BLS12-381 implementation backed by gnark-crypto.
const CurveID = mathlib.BLS12_381_GURVY

var (
	// Curve is the curve over which every commitment and proof is computed.
	Curve = mathlib.Curves[CurveID]

	// FieldOrder is the order r of the scalar field.
	FieldOrder = mustBigInt("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001")
	// CurveOrder is the prime p of the base field. It is informational only.
	CurveOrder = mustBigInt("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab")

	// G is the G1 generator, H = 2·G and Q is the G2 generator.
	G Element
	H Element
	Q G2Element
)

func init() {
	G = Element{g: Curve.GenG1.Copy()}
	H = G.Add(G)
	Q = G2Element{g: Curve.GenG2.Copy()}
}

// CurveIDToString returns a printable name for the curve in use.
func CurveIDToString(id mathlib.CurveID) string {
	switch id {
	case mathlib.BLS12_381:
		return "BLS12_381"
	case mathlib.BLS12_381_GURVY:
		return "BLS12_381_GURVY"
	case mathlib.BLS12_381_BBS_GURVY:
		return "BLS12_381_BBS_GURVY"
	default:
		panic(fmt.Sprintf("unknown curve %d", id))
	}
}

// G2Element is an immutable point of G2.
type G2Element struct {
	g *mathlib.G2
}

func (e G2Element) point() *mathlib.G2 {
	if e.g == nil {
		return Curve.GenG2.Copy()
	}
	return e.g
}

// Compressed returns the 96-byte compressed encoding.
func (e G2Element) Compressed() []byte {
	return e.point().Compressed()
}

func (e G2Element) Hex() string {
	return hex.EncodeToString(e.Compressed())
}

// Pair evaluates the pairing of q and p followed by the final exponentiation.
func Pair(q G2Element, p Element) *mathlib.Gt {
	return Curve.FExp(Curve.Pairing(q.point(), p.point()))
}

// PairingEquals reports whether e(q, a) == e(q, b).
func PairingEquals(q G2Element, a, b Element) bool {
	return Pair(q, a).Equals(Pair(q, b))
}

func mustBigInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid constant " + s)
	}
	return v
}
