/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rangeproof

import (
	"math/big"

	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/hyperledger-labs/zk-interval/interval/core/schnorr"
	"github.com/sourcegraph/conc"
)

// Result holds the outcome of each verification check.
type Result struct {
	Upper   bool `json:"upper" yaml:"upper"`
	Lower   bool `json:"lower" yaml:"lower"`
	Pairing bool `json:"pairing" yaml:"pairing"`
}

func (r *Result) Valid() bool {
	return r.Upper && r.Lower && r.Pairing
}

// Verifier checks range proofs against public bounds.
type Verifier struct {
	Lower *big.Int
	Upper *big.Int

	upperPoint math.Element
	lowerPoint math.Element
}

// NewVerifier resolves and validates the bounds the same way NewProver does.
func NewVerifier(lower, upper *big.Int) (*Verifier, error) {
	lower, upper, err := Bounds(lower, upper)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		Lower:      lower,
		Upper:      upper,
		upperPoint: math.H.Scale(math.NewScalar(upper)),
		lowerPoint: math.H.Scale(math.NewScalar(lower)),
	}, nil
}

// Verify reports whether every check passes.
func (v *Verifier) Verify(proof *Proof) bool {
	return v.Check(proof).Valid()
}

// Check runs the three independent checks concurrently and returns their outcomes.
func (v *Verifier) Check(proof *Proof) *Result {
	res := &Result{}
	if proof == nil {
		return res
	}
	var wg conc.WaitGroup
	wg.Go(func() {
		res.Upper = verifyBound(proof.A, v.upperPoint, proof.UpperBound)
	})
	wg.Go(func() {
		res.Lower = verifyBound(proof.B, v.lowerPoint, proof.LowerBound)
	})
	wg.Go(func() {
		res.Pairing = pairingCheck(proof)
	})
	wg.Wait()
	logger.Debugf("range proof verification for [%s, %s]: upper [%v], lower [%v], pairing [%v]",
		v.Lower, v.Upper, res.Upper, res.Lower, res.Pairing)
	return res
}

func verifyBound(commitment, bound math.Element, proof *schnorr.Proof) bool {
	if proof == nil {
		return false
	}
	statement := commitment.Add(bound.Negate())
	return schnorr.NewVerifier(math.G, statement).Verify(proof) == nil
}

// pairingCheck tests e(Q, Y + D + R) == e(Q, A + B + W + L).
func pairingCheck(p *Proof) bool {
	left := p.Y.Add(p.D).Add(p.R)
	right := p.A.Add(p.B).Add(p.W).Add(p.L)
	return math.PairingEquals(math.Q, left, right)
}
