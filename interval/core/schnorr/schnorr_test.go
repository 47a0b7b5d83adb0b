/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schnorr

import (
	"testing"

	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchnorr(t *testing.T) {
	x, err := math.RandomScalar()
	require.NoError(t, err)
	statement := math.G.Scale(x)

	proof, err := NewProver(x, math.G, statement).Prove()
	require.NoError(t, err)
	require.NoError(t, NewVerifier(math.G, statement).Verify(proof))

	// other base
	proof, err = NewProver(x, math.H, math.H.Scale(x)).Prove()
	require.NoError(t, err)
	require.NoError(t, NewVerifier(math.H, math.H.Scale(x)).Verify(proof))
}

func TestSchnorrRejects(t *testing.T) {
	x, err := math.RandomScalar()
	require.NoError(t, err)
	statement := math.G.Scale(x)
	proof, err := NewProver(x, math.G, statement).Prove()
	require.NoError(t, err)

	// wrong statement
	err = NewVerifier(math.G, statement.Add(math.G)).Verify(proof)
	assert.True(t, errors.Is(err, ErrInvalidProof))

	// tampered response
	tampered := &Proof{
		Commitment: proof.Commitment,
		Response:   math.Curve.ModAdd(proof.Response, math.Curve.NewZrFromInt(1), math.Curve.GroupOrder),
	}
	assert.True(t, errors.Is(NewVerifier(math.G, statement).Verify(tampered), ErrInvalidProof))

	// tampered commitment
	tampered = &Proof{Commitment: proof.Commitment.Add(math.G), Response: proof.Response}
	assert.True(t, errors.Is(NewVerifier(math.G, statement).Verify(tampered), ErrInvalidProof))

	// prover that does not know the witness
	y, err := math.RandomScalar()
	require.NoError(t, err)
	forged, err := NewProver(y, math.G, statement).Prove()
	require.NoError(t, err)
	assert.True(t, errors.Is(NewVerifier(math.G, statement).Verify(forged), ErrInvalidProof))

	assert.True(t, errors.Is(NewVerifier(math.G, statement).Verify(nil), ErrInvalidProof))
	_, err = NewProver(nil, math.G, statement).Prove()
	assert.Error(t, err)
}
