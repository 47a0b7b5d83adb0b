/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rangeproof

import (
	"math/big"

	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/hyperledger-labs/zk-interval/interval/core/pedersen"
	"github.com/hyperledger-labs/zk-interval/interval/core/schnorr"
	"github.com/hyperledger-labs/zk-interval/interval/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger()

// Prover proves that a committed value lies in [Lower, Upper].
type Prover struct {
	Lower *big.Int
	Upper *big.Int

	// D commits to the value
	D *pedersen.Commitment
	// Y commits to Upper - value
	Y *pedersen.Commitment
	// W commits to value - Lower
	W *pedersen.Commitment
	// A commits to Upper
	A *pedersen.Commitment
	// B commits to Lower
	B *pedersen.Commitment
	// Right commits to zero with the blinding of A + B + W
	Right *pedersen.Commitment
	// Left commits to zero with the blinding of Y + 2D
	Left *pedersen.Commitment
}

// NewProver commits to value and to its distances from the bounds. Nil bounds take their defaults:
// zero for lower and FieldOrder - 1 for upper.
func NewProver(value, lower, upper *big.Int) (*Prover, error) {
	if value == nil {
		return nil, ErrMissingValue
	}
	lower, upper, err := Bounds(lower, upper)
	if err != nil {
		return nil, err
	}
	y := new(big.Int).Sub(upper, value)
	if y.Sign() < 0 {
		return nil, errors.Wrapf(ErrAboveUpperBound, "[%s] > [%s]", value, upper)
	}
	w := new(big.Int).Sub(value, lower)
	if w.Sign() < 0 {
		return nil, errors.Wrapf(ErrBelowLowerBound, "[%s] < [%s]", value, lower)
	}

	p := &Prover{Lower: lower, Upper: upper}
	for _, c := range []struct {
		target **pedersen.Commitment
		value  *big.Int
	}{
		{&p.D, value},
		{&p.Y, y},
		{&p.W, w},
		{&p.A, upper},
		{&p.B, lower},
	} {
		*c.target, err = pedersen.WithFreshRandomness(c.value)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to commit")
		}
	}

	zero := math.Curve.NewZrFromInt(0)
	right := math.Curve.ModAdd(p.A.Randomness(), p.B.Randomness(), math.Curve.GroupOrder)
	right = math.Curve.ModAdd(right, p.W.Randomness(), math.Curve.GroupOrder)
	p.Right = pedersen.New(zero, right)
	left := math.Curve.ModAdd(p.D.Randomness(), p.D.Randomness(), math.Curve.GroupOrder)
	left = math.Curve.ModAdd(p.Y.Randomness(), left, math.Curve.GroupOrder)
	p.Left = pedersen.New(zero, left)

	return p, nil
}

// Prove returns the non-interactive proof.
func (p *Prover) Prove() (*Proof, error) {
	upper, err := proveBound(p.A, p.Upper)
	if err != nil {
		return nil, errors.WithMessage(err, "failed proving upper bound")
	}
	lower, err := proveBound(p.B, p.Lower)
	if err != nil {
		return nil, errors.WithMessage(err, "failed proving lower bound")
	}
	logger.Debugf("range proof generated for [%s, %s]", p.Lower, p.Upper)
	return &Proof{
		Y:          p.Y.Point(),
		D:          p.D.Add(p.D).Point(),
		R:          p.Right.Point(),
		W:          p.W.Point(),
		L:          p.Left.Point(),
		A:          p.A.Point(),
		B:          p.B.Point(),
		UpperBound: upper,
		LowerBound: lower,
	}, nil
}

// proveBound shows knowledge of the blinding of c once the public bound is stripped off.
func proveBound(c *pedersen.Commitment, bound *big.Int) (*schnorr.Proof, error) {
	stripped := c.Strip(bound)
	return schnorr.NewProver(stripped.Randomness(), math.G, stripped.Point()).Prove()
}
