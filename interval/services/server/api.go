/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"encoding/json"
	"math/big"

	"github.com/hyperledger-labs/zk-interval/interval/core/encoding/datum"
	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/pkg/errors"
)

// ProveRequest carries decimal integers. Empty bounds take their defaults.
type ProveRequest struct {
	Value string `json:"value" binding:"required"`
	Lower string `json:"lower"`
	Upper string `json:"upper"`
	Datum bool   `json:"datum"`
}

type ProveResponse struct {
	ID    string           `json:"id,omitempty"`
	Lower string           `json:"lower"`
	Upper string           `json:"upper"`
	Proof *rangeproof.Wire `json:"proof"`
	Datum *datum.Data      `json:"datum,omitempty"`
	Valid bool             `json:"valid"`
}

type VerifyRequest struct {
	Proof *rangeproof.Wire `json:"proof" binding:"required"`
	Lower string           `json:"lower"`
	Upper string           `json:"upper"`
}

type VerifyResponse struct {
	Valid  bool               `json:"valid"`
	Checks *rangeproof.Result `json:"checks"`
	Cached bool               `json:"cached"`
}

type RecordResponse struct {
	ID        string          `json:"id"`
	Lower     string          `json:"lower"`
	Upper     string          `json:"upper"`
	Valid     bool            `json:"valid"`
	CreatedAt int64           `json:"created_at"`
	Proof     json.RawMessage `json:"proof"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// parseInt parses an optional decimal integer. The empty string yields nil.
func parseInt(name, s string) (*big.Int, error) {
	if len(s) == 0 {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid %s [%s]: expected a decimal integer", name, s)
	}
	return v, nil
}
