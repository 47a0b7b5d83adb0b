/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rangeproof

import (
	"encoding/json"

	mathlib "github.com/IBM/mathlib"
	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/hyperledger-labs/zk-interval/interval/core/schnorr"
	"github.com/pkg/errors"
)

// Proof is the decoded form of a range proof.
type Proof struct {
	Y math.Element
	// D is twice the commitment to the value
	D math.Element
	R math.Element
	W math.Element
	L math.Element
	A math.Element
	B math.Element

	// UpperBound proves knowledge of the blinding of A
	UpperBound *schnorr.Proof
	// LowerBound proves knowledge of the blinding of B
	LowerBound *schnorr.Proof
}

// Wire is the JSON form of a range proof. Points are compressed hex and scalars minimal hex.
type Wire struct {
	Y  string `json:"Y"`
	D  string `json:"D"`
	R  string `json:"R"`
	W  string `json:"W"`
	L  string `json:"L"`
	A  string `json:"A"`
	B  string `json:"B"`
	Za string `json:"Za"`
	Ac string `json:"ac"`
	Zb string `json:"Zb"`
	Bc string `json:"bc"`
}

func (p *Proof) ToWire() *Wire {
	w := &Wire{
		Y: p.Y.Hex(),
		D: p.D.Hex(),
		R: p.R.Hex(),
		W: p.W.Hex(),
		L: p.L.Hex(),
		A: p.A.Hex(),
		B: p.B.Hex(),
	}
	if p.UpperBound != nil {
		w.Za, w.Ac = scalarHex(p.UpperBound.Response), p.UpperBound.Commitment.Hex()
	}
	if p.LowerBound != nil {
		w.Zb, w.Bc = scalarHex(p.LowerBound.Response), p.LowerBound.Commitment.Hex()
	}
	return w
}

// FromWire decodes every field of w. Errors wrap ErrDecoding.
func FromWire(w *Wire) (*Proof, error) {
	if w == nil {
		return nil, errors.Wrap(ErrDecoding, "nil wire")
	}
	p := &Proof{UpperBound: &schnorr.Proof{}, LowerBound: &schnorr.Proof{}}
	for _, f := range []struct {
		name   string
		value  string
		target *math.Element
	}{
		{"Y", w.Y, &p.Y},
		{"D", w.D, &p.D},
		{"R", w.R, &p.R},
		{"W", w.W, &p.W},
		{"L", w.L, &p.L},
		{"A", w.A, &p.A},
		{"B", w.B, &p.B},
		{"ac", w.Ac, &p.UpperBound.Commitment},
		{"bc", w.Bc, &p.LowerBound.Commitment},
	} {
		e, err := math.ElementFromHex(f.value)
		if err != nil {
			return nil, errors.Wrapf(ErrDecoding, "field [%s]: %s", f.name, err)
		}
		*f.target = e
	}
	var err error
	if p.UpperBound.Response, err = math.ScalarFromHex(w.Za); err != nil {
		return nil, errors.Wrapf(ErrDecoding, "field [Za]: %s", err)
	}
	if p.LowerBound.Response, err = math.ScalarFromHex(w.Zb); err != nil {
		return nil, errors.Wrapf(ErrDecoding, "field [Zb]: %s", err)
	}
	return p, nil
}

// Serialize returns the JSON encoding of the wire form.
func (p *Proof) Serialize() ([]byte, error) {
	return json.Marshal(p.ToWire())
}

func (p *Proof) Deserialize(raw []byte) error {
	w := &Wire{}
	if err := json.Unmarshal(raw, w); err != nil {
		return errors.Wrapf(ErrDecoding, "invalid json: %s", err)
	}
	decoded, err := FromWire(w)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

func scalarHex(z *mathlib.Zr) string {
	if z == nil {
		return ""
	}
	return math.ScalarHex(z)
}
