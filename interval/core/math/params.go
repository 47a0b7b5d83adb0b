/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package math

// PublicParams lists the public constants a verifier needs to agree on.
type PublicParams struct {
	Curve      string `json:"curve" yaml:"curve"`
	FieldOrder string `json:"field_order" yaml:"field_order"`
	CurveOrder string `json:"curve_order" yaml:"curve_order"`
	G          string `json:"g" yaml:"g"`
	H          string `json:"h" yaml:"h"`
	Q          string `json:"q" yaml:"q"`
}

func NewPublicParams() *PublicParams {
	return &PublicParams{
		Curve:      CurveIDToString(CurveID),
		FieldOrder: FieldOrder.String(),
		CurveOrder: CurveOrder.String(),
		G:          G.Hex(),
		H:          H.Hex(),
		Q:          Q.Hex(),
	}
}
