/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fiatshamir derives non-interactive challenges with blake2b-224.
package fiatshamir

import (
	"encoding/hex"
	"math/big"

	mathlib "github.com/IBM/mathlib"
	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// DigestSize is the length in bytes of every challenge digest.
const DigestSize = 28

// Sum returns the blake2b-224 digest of the concatenation of the given byte slices.
func Sum(chunks ...[]byte) []byte {
	h, err := blake2b.New(DigestSize, nil)
	if err != nil {
		// only reachable with an invalid digest size or key
		panic(err)
	}
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}

// Generate returns the hex digest of the UTF-8 bytes of s.
func Generate(s string) string {
	return hex.EncodeToString(Sum([]byte(s)))
}

// FiatShamir hex-decodes the concatenation a‖b‖c and returns the hex digest of the resulting bytes.
func FiatShamir(a, b, c string) (string, error) {
	raw, err := hex.DecodeString(a + b + c)
	if err != nil {
		return "", errors.Wrapf(err, "invalid hex input")
	}
	return hex.EncodeToString(Sum(raw)), nil
}

// Challenge hashes the compressed encodings of the given elements and interprets the digest as a
// big-endian integer. The digest is shorter than the field order so no reduction takes place.
func Challenge(elements ...math.Element) *mathlib.Zr {
	chunks := make([][]byte, len(elements))
	for i, e := range elements {
		chunks[i] = e.Compressed()
	}
	return math.NewScalar(new(big.Int).SetBytes(Sum(chunks...)))
}
