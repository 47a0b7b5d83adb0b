/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schnorr

import (
	mathlib "github.com/IBM/mathlib"
	"github.com/hyperledger-labs/zk-interval/interval/core/fiatshamir"
	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/pkg/errors"
)

var ErrInvalidProof = errors.New("invalid schnorr proof")

// Proof shows knowledge of x such that Statement = x·Base.
type Proof struct {
	// Commitment is alpha·Base for a random alpha
	Commitment math.Element
	// Response is alpha + challenge·x
	Response *mathlib.Zr
}

type Verifier struct {
	Base      math.Element
	Statement math.Element
}

func NewVerifier(base, statement math.Element) *Verifier {
	return &Verifier{Base: base, Statement: statement}
}

type Prover struct {
	*Verifier
	witness *mathlib.Zr
}

func NewProver(witness *mathlib.Zr, base, statement math.Element) *Prover {
	return &Prover{Verifier: NewVerifier(base, statement), witness: witness}
}

// Prove returns a non-interactive proof of knowledge of the witness.
func (p *Prover) Prove() (*Proof, error) {
	if p.witness == nil {
		return nil, errors.New("cannot compute schnorr proof: nil witness")
	}
	alpha, err := math.RandomScalar()
	if err != nil {
		return nil, errors.Wrap(err, "cannot compute schnorr proof")
	}
	commitment := p.Base.Scale(alpha)
	challenge := p.Challenge(commitment)
	response := math.Curve.ModMul(challenge, p.witness, math.Curve.GroupOrder)
	response = math.Curve.ModAdd(alpha, response, math.Curve.GroupOrder)
	return &Proof{Commitment: commitment, Response: response}, nil
}

// Challenge binds the base, the prover commitment and the statement.
func (v *Verifier) Challenge(commitment math.Element) *mathlib.Zr {
	return fiatshamir.Challenge(v.Base, commitment, v.Statement)
}

// Verify checks Response·Base == Commitment + challenge·Statement.
func (v *Verifier) Verify(proof *Proof) error {
	if proof == nil || proof.Response == nil {
		return errors.Wrap(ErrInvalidProof, "nil elements")
	}
	challenge := v.Challenge(proof.Commitment)
	left := v.Base.Scale(proof.Response)
	right := proof.Commitment.Add(v.Statement.Scale(challenge))
	if !left.Equals(right) {
		return ErrInvalidProof
	}
	return nil
}
