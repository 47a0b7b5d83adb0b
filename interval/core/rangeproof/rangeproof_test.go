/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rangeproof_test

import (
	"encoding/json"
	"math/big"

	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

func prove(value, lower, upper *big.Int) *rangeproof.Proof {
	prover, err := rangeproof.NewProver(value, lower, upper)
	Expect(err).NotTo(HaveOccurred())
	proof, err := prover.Prove()
	Expect(err).NotTo(HaveOccurred())
	return proof
}

func verify(proof *rangeproof.Proof, lower, upper *big.Int) bool {
	verifier, err := rangeproof.NewVerifier(lower, upper)
	Expect(err).NotTo(HaveOccurred())
	return verifier.Verify(proof)
}

var _ = Describe("Range Proof", func() {
	Describe("Completeness", func() {
		DescribeTable("accepts values inside the interval",
			func(value, lower, upper *big.Int) {
				Expect(verify(prove(value, lower, upper), lower, upper)).To(BeTrue())
			},
			Entry("21 in [18, 25]", big.NewInt(21), big.NewInt(18), big.NewInt(25)),
			Entry("0 in [0, 0]", big.NewInt(0), big.NewInt(0), big.NewInt(0)),
			Entry("value at the lower bound", big.NewInt(18), big.NewInt(18), big.NewInt(25)),
			Entry("value at the upper bound", big.NewInt(25), big.NewInt(18), big.NewInt(25)),
			Entry("64 bit range", new(big.Int).SetUint64(1<<40), big.NewInt(0), new(big.Int).SetUint64(^uint64(0))),
			Entry("largest admissible value", rangeproof.MaxUpperBound(), big.NewInt(1), rangeproof.MaxUpperBound()),
		)

		It("uses the full field when the bounds are unset", func() {
			proof := prove(big.NewInt(123456789), nil, nil)
			Expect(verify(proof, nil, nil)).To(BeTrue())
			Expect(verify(proof, big.NewInt(0), rangeproof.MaxUpperBound())).To(BeTrue())
		})

		It("reports every check", func() {
			verifier, err := rangeproof.NewVerifier(big.NewInt(18), big.NewInt(25))
			Expect(err).NotTo(HaveOccurred())
			res := verifier.Check(prove(big.NewInt(21), big.NewInt(18), big.NewInt(25)))
			Expect(*res).To(Equal(rangeproof.Result{Upper: true, Lower: true, Pairing: true}))
			Expect(res.Valid()).To(BeTrue())
		})
	})

	Describe("Soundness", func() {
		DescribeTable("the prover refuses values outside the interval",
			func(value, lower, upper *big.Int, expected error) {
				_, err := rangeproof.NewProver(value, lower, upper)
				Expect(errors.Is(err, expected)).To(BeTrue())
				Expect(rangeproof.IsDomainError(err)).To(BeTrue())
			},
			Entry("above the upper bound", big.NewInt(26), big.NewInt(18), big.NewInt(25), rangeproof.ErrAboveUpperBound),
			Entry("below the lower bound", big.NewInt(17), big.NewInt(18), big.NewInt(25), rangeproof.ErrBelowLowerBound),
			Entry("upper bound too large", big.NewInt(1), big.NewInt(0), math.FieldOrder, rangeproof.ErrUpperBoundTooLarge),
			Entry("negative lower bound", big.NewInt(1), big.NewInt(-1), big.NewInt(5), rangeproof.ErrNegativeLowerBound),
			Entry("negative value", big.NewInt(-1), nil, nil, rangeproof.ErrBelowLowerBound),
			Entry("lower above upper", big.NewInt(5), big.NewInt(6), big.NewInt(4), rangeproof.ErrAboveUpperBound),
			Entry("missing value", nil, nil, nil, rangeproof.ErrMissingValue),
		)

		It("the verifier validates its bounds", func() {
			_, err := rangeproof.NewVerifier(nil, math.FieldOrder)
			Expect(errors.Is(err, rangeproof.ErrUpperBoundTooLarge)).To(BeTrue())
			_, err = rangeproof.NewVerifier(big.NewInt(-3), nil)
			Expect(errors.Is(err, rangeproof.ErrNegativeLowerBound)).To(BeTrue())
		})

		It("rejects a proof checked against other bounds", func() {
			proof := prove(big.NewInt(21), big.NewInt(18), big.NewInt(25))
			Expect(verify(proof, big.NewInt(18), big.NewInt(24))).To(BeFalse())
			Expect(verify(proof, big.NewInt(19), big.NewInt(25))).To(BeFalse())
		})

		It("rejects an empty proof", func() {
			Expect(verify(nil, nil, nil)).To(BeFalse())
			Expect(verify(&rangeproof.Proof{}, nil, nil)).To(BeFalse())
		})
	})

	Describe("Tampering", func() {
		var (
			wire  *rangeproof.Wire
			other string
		)

		BeforeEach(func() {
			wire = prove(big.NewInt(21), big.NewInt(18), big.NewInt(25)).ToWire()
			other = math.G.Add(math.H).Hex()
		})

		DescribeTable("rejects a modified field",
			func(tamper func(w *rangeproof.Wire)) {
				tamper(wire)
				proof, err := rangeproof.FromWire(wire)
				Expect(err).NotTo(HaveOccurred())
				Expect(verify(proof, big.NewInt(18), big.NewInt(25))).To(BeFalse())
			},
			Entry("Y", func(w *rangeproof.Wire) { w.Y = other }),
			Entry("D", func(w *rangeproof.Wire) { w.D = other }),
			Entry("R", func(w *rangeproof.Wire) { w.R = other }),
			Entry("W", func(w *rangeproof.Wire) { w.W = other }),
			Entry("L", func(w *rangeproof.Wire) { w.L = other }),
			Entry("A", func(w *rangeproof.Wire) { w.A = other }),
			Entry("B", func(w *rangeproof.Wire) { w.B = other }),
			Entry("ac", func(w *rangeproof.Wire) { w.Ac = other }),
			Entry("bc", func(w *rangeproof.Wire) { w.Bc = other }),
			Entry("Za", func(w *rangeproof.Wire) { w.Za = "0badc0ffee" }),
			Entry("Zb", func(w *rangeproof.Wire) { w.Zb = "0badc0ffee" }),
			Entry("swapped schnorr proofs", func(w *rangeproof.Wire) {
				w.Za, w.Zb = w.Zb, w.Za
				w.Ac, w.Bc = w.Bc, w.Ac
			}),
		)
	})

	Describe("Encoding", func() {
		It("round trips through json", func() {
			proof := prove(big.NewInt(21), big.NewInt(18), big.NewInt(25))
			raw, err := proof.Serialize()
			Expect(err).NotTo(HaveOccurred())

			fields := map[string]string{}
			Expect(json.Unmarshal(raw, &fields)).To(Succeed())
			Expect(fields).To(HaveLen(11))
			for _, k := range []string{"Y", "D", "R", "W", "L", "A", "B", "ac", "bc"} {
				Expect(fields[k]).To(HaveLen(2 * math.PointSize))
			}
			Expect(len(fields["Za"]) % 2).To(Equal(0))
			Expect(len(fields["Zb"]) % 2).To(Equal(0))

			decoded := &rangeproof.Proof{}
			Expect(decoded.Deserialize(raw)).To(Succeed())
			Expect(decoded.ToWire()).To(Equal(proof.ToWire()))
			Expect(verify(decoded, big.NewInt(18), big.NewInt(25))).To(BeTrue())
		})

		DescribeTable("reports malformed input",
			func(tamper func(w *rangeproof.Wire)) {
				wire := prove(big.NewInt(3), nil, nil).ToWire()
				tamper(wire)
				_, err := rangeproof.FromWire(wire)
				Expect(errors.Is(err, rangeproof.ErrDecoding)).To(BeTrue())
			},
			Entry("non hex point", func(w *rangeproof.Wire) { w.Y = "xyz" }),
			Entry("short point", func(w *rangeproof.Wire) { w.D = w.D[:20] }),
			Entry("empty point", func(w *rangeproof.Wire) { w.Ac = "" }),
			Entry("not on the curve", func(w *rangeproof.Wire) { w.L = "00" + w.L[2:] }),
			Entry("non hex scalar", func(w *rangeproof.Wire) { w.Za = "0x12" }),
			Entry("empty scalar", func(w *rangeproof.Wire) { w.Zb = "" }),
		)

		It("rejects invalid json", func() {
			err := (&rangeproof.Proof{}).Deserialize([]byte("{"))
			Expect(errors.Is(err, rangeproof.ErrDecoding)).To(BeTrue())
			_, err = rangeproof.FromWire(nil)
			Expect(errors.Is(err, rangeproof.ErrDecoding)).To(BeTrue())
		})
	})
})
