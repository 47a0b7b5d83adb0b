/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package datum encodes range proofs as constructor-tagged data suitable for on-chain validators.
package datum

import (
	"encoding/json"
	"math/big"

	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/pkg/errors"
)

var ErrInvalidDatum = errors.New("invalid datum")

// Data is a node of a constructor-tagged tree. Exactly one of Constructor, Bytes or Int is set.
type Data struct {
	Constructor *int     `json:"constructor,omitempty"`
	Fields      []*Data  `json:"fields,omitempty"`
	Bytes       *string  `json:"bytes,omitempty"`
	Int         *big.Int `json:"int,omitempty"`
}

func Constr(tag int, fields ...*Data) *Data {
	if fields == nil {
		fields = []*Data{}
	}
	return &Data{Constructor: &tag, Fields: fields}
}

func Bytes(hex string) *Data {
	return &Data{Bytes: &hex}
}

func Int(v *big.Int) *Data {
	return &Data{Int: new(big.Int).Set(v)}
}

// MarshalJSON keeps an empty field list for constructors.
func (d *Data) MarshalJSON() ([]byte, error) {
	switch {
	case d.Constructor != nil:
		fields := d.Fields
		if fields == nil {
			fields = []*Data{}
		}
		return json.Marshal(struct {
			Constructor int     `json:"constructor"`
			Fields      []*Data `json:"fields"`
		}{*d.Constructor, fields})
	case d.Bytes != nil:
		return json.Marshal(struct {
			Bytes string `json:"bytes"`
		}{*d.Bytes})
	case d.Int != nil:
		return json.Marshal(struct {
			Int *big.Int `json:"int"`
		}{d.Int})
	default:
		return nil, errors.Wrap(ErrInvalidDatum, "empty node")
	}
}

// FromWire lays out a proof and its bounds as
// constr 0 [constr 0 [Y D R A B W L], constr 0 [Za ac], constr 0 [Zb bc], upper, lower].
func FromWire(w *rangeproof.Wire, lower, upper *big.Int) *Data {
	return Constr(0,
		Constr(0, Bytes(w.Y), Bytes(w.D), Bytes(w.R), Bytes(w.A), Bytes(w.B), Bytes(w.W), Bytes(w.L)),
		Constr(0, Bytes(w.Za), Bytes(w.Ac)),
		Constr(0, Bytes(w.Zb), Bytes(w.Bc)),
		Int(upper),
		Int(lower),
	)
}

// Wire extracts the proof and the bounds, returned as (wire, lower, upper).
func (d *Data) Wire() (*rangeproof.Wire, *big.Int, *big.Int, error) {
	top, err := d.constr(5)
	if err != nil {
		return nil, nil, nil, errors.WithMessage(err, "datum")
	}
	points, err := top[0].byteFields(7)
	if err != nil {
		return nil, nil, nil, errors.WithMessage(err, "commitments")
	}
	upperProof, err := top[1].byteFields(2)
	if err != nil {
		return nil, nil, nil, errors.WithMessage(err, "upper bound proof")
	}
	lowerProof, err := top[2].byteFields(2)
	if err != nil {
		return nil, nil, nil, errors.WithMessage(err, "lower bound proof")
	}
	upper, lower := top[3].Int, top[4].Int
	if upper == nil || lower == nil {
		return nil, nil, nil, errors.Wrap(ErrInvalidDatum, "bounds must be integers")
	}
	w := &rangeproof.Wire{
		Y:  points[0],
		D:  points[1],
		R:  points[2],
		A:  points[3],
		B:  points[4],
		W:  points[5],
		L:  points[6],
		Za: upperProof[0],
		Ac: upperProof[1],
		Zb: lowerProof[0],
		Bc: lowerProof[1],
	}
	return w, new(big.Int).Set(lower), new(big.Int).Set(upper), nil
}

func (d *Data) constr(arity int) ([]*Data, error) {
	if d == nil || d.Constructor == nil || *d.Constructor != 0 {
		return nil, errors.Wrap(ErrInvalidDatum, "expected constructor 0")
	}
	if len(d.Fields) != arity {
		return nil, errors.Wrapf(ErrInvalidDatum, "expected [%d] fields, got [%d]", arity, len(d.Fields))
	}
	for _, f := range d.Fields {
		if f == nil {
			return nil, errors.Wrap(ErrInvalidDatum, "nil field")
		}
	}
	return d.Fields, nil
}

func (d *Data) byteFields(arity int) ([]string, error) {
	fields, err := d.constr(arity)
	if err != nil {
		return nil, err
	}
	out := make([]string, arity)
	for i, f := range fields {
		if f.Bytes == nil {
			return nil, errors.Wrapf(ErrInvalidDatum, "field [%d] must be bytes", i)
		}
		out[i] = *f.Bytes
	}
	return out, nil
}

// Unmarshal parses the JSON form of a datum.
func Unmarshal(raw []byte) (*Data, error) {
	d := &Data{}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, errors.Wrapf(ErrInvalidDatum, "invalid json: %s", err)
	}
	return d, nil
}
