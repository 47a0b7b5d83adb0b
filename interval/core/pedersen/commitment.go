/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pedersen

import (
	"math/big"

	mathlib "github.com/IBM/mathlib"
	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/hyperledger-labs/zk-interval/interval/core/schnorr"
	"github.com/pkg/errors"
)

// ErrValueOutOfField is returned when a committed value is negative or not smaller than the field order.
var ErrValueOutOfField = errors.New("value must be in [0, field order)")

// Commitment is a Pedersen commitment randomness·G + value·H together with its opening.
type Commitment struct {
	value      *mathlib.Zr
	randomness *mathlib.Zr
	point      math.Element
}

// New commits to already reduced scalars.
func New(value, randomness *mathlib.Zr) *Commitment {
	point := math.G.Scale(randomness).Add(math.H.Scale(value))
	return &Commitment{value: value.Copy(), randomness: randomness.Copy(), point: point}
}

// WithRandomness commits to v using randomness r reduced modulo the field order.
func WithRandomness(v, r *big.Int) (*Commitment, error) {
	if !math.InField(v) {
		return nil, errors.Wrapf(ErrValueOutOfField, "invalid value [%s]", v)
	}
	return New(math.NewScalar(v), math.NewScalar(r)), nil
}

// WithFreshRandomness commits to v using uniformly random blinding.
func WithFreshRandomness(v *big.Int) (*Commitment, error) {
	if !math.InField(v) {
		return nil, errors.Wrapf(ErrValueOutOfField, "invalid value [%s]", v)
	}
	r, err := math.RandomScalar()
	if err != nil {
		return nil, err
	}
	return New(math.NewScalar(v), r), nil
}

func (c *Commitment) Add(o *Commitment) *Commitment {
	return &Commitment{
		value:      math.Curve.ModAdd(c.value, o.value, math.Curve.GroupOrder),
		randomness: math.Curve.ModAdd(c.randomness, o.randomness, math.Curve.GroupOrder),
		point:      c.point.Add(o.point),
	}
}

func (c *Commitment) Subtract(o *Commitment) *Commitment {
	return &Commitment{
		value:      math.Curve.ModSub(c.value, o.value, math.Curve.GroupOrder),
		randomness: math.Curve.ModSub(c.randomness, o.randomness, math.Curve.GroupOrder),
		point:      c.point.Subtract(o.point),
	}
}

func (c *Commitment) Equals(o *Commitment) bool {
	if o == nil {
		return false
	}
	return c.point.Equals(o.point) && c.randomness.Equals(o.randomness) && c.value.Equals(o.value)
}

func (c *Commitment) Point() math.Element {
	return c.point
}

func (c *Commitment) Value() *mathlib.Zr {
	return c.value.Copy()
}

func (c *Commitment) Randomness() *mathlib.Zr {
	return c.randomness.Copy()
}

// Strip removes the value part, leaving randomness·G when claimed is the committed value.
func (c *Commitment) Strip(claimed *big.Int) *Commitment {
	return c.Subtract(New(math.NewScalar(claimed), math.Curve.NewZrFromInt(0)))
}

// ProveKnowledgeOfRandomness runs a Schnorr proof over the stripped commitment and reports whether
// it verifies.
func (c *Commitment) ProveKnowledgeOfRandomness(claimed *big.Int) (bool, error) {
	if !math.InField(claimed) {
		return false, errors.Wrapf(ErrValueOutOfField, "invalid claimed value [%s]", claimed)
	}
	stripped := c.Strip(claimed)
	proof, err := schnorr.NewProver(stripped.randomness, math.G, stripped.point).Prove()
	if err != nil {
		return false, err
	}
	return schnorr.NewVerifier(math.G, stripped.point).Verify(proof) == nil, nil
}
