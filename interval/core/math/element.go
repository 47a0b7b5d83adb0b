/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package math

import (
	"bytes"
	"encoding/hex"

	mathlib "github.com/IBM/mathlib"
	"github.com/pkg/errors"
)

// PointSize is the length of a compressed G1 point.
const PointSize = 48

// ErrInvalidPoint is returned when bytes do not decode to a point of G1.
var ErrInvalidPoint = errors.New("invalid point")

// Element is an immutable point of G1. The zero value is the identity.
// Every operation returns a fresh Element and leaves its operands untouched.
type Element struct {
	g *mathlib.G1
}

// Identity returns the neutral element of G1.
func Identity() Element {
	return Element{g: Curve.NewG1()}
}

func (e Element) point() *mathlib.G1 {
	if e.g == nil {
		return Curve.NewG1()
	}
	return e.g
}

func (e Element) Add(o Element) Element {
	r := e.point().Copy()
	r.Add(o.point())
	return Element{g: r}
}

func (e Element) Subtract(o Element) Element {
	r := e.point().Copy()
	r.Sub(o.point())
	return Element{g: r}
}

// Scale returns s·e.
func (e Element) Scale(s *mathlib.Zr) Element {
	return Element{g: e.point().Mul(s)}
}

func (e Element) Negate() Element {
	r := Curve.NewG1()
	r.Sub(e.point())
	return Element{g: r}
}

// Equals compares canonical compressed encodings.
func (e Element) Equals(o Element) bool {
	return bytes.Equal(e.Compressed(), o.Compressed())
}

func (e Element) IsIdentity() bool {
	return e.point().IsInfinity()
}

// Compressed returns the 48-byte compressed encoding.
func (e Element) Compressed() []byte {
	return e.point().Compressed()
}

func (e Element) Hex() string {
	return hex.EncodeToString(e.Compressed())
}

func (e Element) Point() Point {
	var p Point
	copy(p[:], e.Compressed())
	return p
}

func (e Element) String() string {
	return e.Hex()
}

// Point is the compressed wire form of an Element.
type Point [PointSize]byte

// PointFromHex decodes a hex string holding exactly PointSize bytes.
func PointFromHex(s string) (Point, error) {
	var p Point
	raw, err := hex.DecodeString(s)
	if err != nil {
		return p, errors.Wrapf(ErrInvalidPoint, "invalid hex [%s]: %s", s, err)
	}
	if len(raw) != PointSize {
		return p, errors.Wrapf(ErrInvalidPoint, "expected [%d] bytes, got [%d]", PointSize, len(raw))
	}
	copy(p[:], raw)
	return p, nil
}

func (p Point) Hex() string {
	return hex.EncodeToString(p[:])
}

// Element decompresses p. It fails if p is not the encoding of a point of G1.
func (p Point) Element() (Element, error) {
	g, err := Curve.NewG1FromCompressed(p[:])
	if err != nil {
		return Element{}, errors.Wrapf(ErrInvalidPoint, "failed decompressing [%s]: %s", p.Hex(), err)
	}
	return Element{g: g}, nil
}

// ElementFromHex is PointFromHex followed by decompression.
func ElementFromHex(s string) (Element, error) {
	p, err := PointFromHex(s)
	if err != nil {
		return Element{}, err
	}
	return p.Element()
}
