/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"math/big"
	"os"

	"github.com/hyperledger-labs/zk-interval/interval/core/encoding/datum"
	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/pkg/errors"
)

// ParseInt parses an optional decimal integer flag. The empty string yields nil.
func ParseInt(name, s string) (*big.Int, error) {
	if len(s) == 0 {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid %s [%s]: expected a decimal integer", name, s)
	}
	return v, nil
}

// WriteJSON stores v indented at path.
func WriteJSON(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal")
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return errors.Wrapf(err, "failed writing to [%s]", path)
	}
	return nil
}

// ReadProof loads a proof file. With asDatum set, the file holds a datum and the bounds it carries
// are returned; otherwise the file holds the wire form and the bounds are nil.
func ReadProof(path string, asDatum bool) (*rangeproof.Proof, *big.Int, *big.Int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "failed to read [%s]", path)
	}
	if !asDatum {
		proof := &rangeproof.Proof{}
		if err := proof.Deserialize(raw); err != nil {
			return nil, nil, nil, err
		}
		return proof, nil, nil, nil
	}
	d, err := datum.Unmarshal(raw)
	if err != nil {
		return nil, nil, nil, err
	}
	w, lower, upper, err := d.Wire()
	if err != nil {
		return nil, nil, nil, err
	}
	proof, err := rangeproof.FromWire(w)
	if err != nil {
		return nil, nil, nil, err
	}
	return proof, lower, upper, nil
}
