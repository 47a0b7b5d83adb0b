/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verify

import (
	"fmt"
	"io"

	"github.com/hyperledger-labs/zk-interval/cmd/zkinterval/cobra/common"
	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ErrInvalidProof = errors.New("invalid range proof")

type Args struct {
	// FilePath is the proof to verify
	FilePath string
	// Lower and Upper override the bounds. A datum carries its own bounds.
	Lower string
	Upper string
	// Datum selects the datum layout instead of the wire form
	Datum bool
}

// Cmd returns the Cobra Command for proof verification.
func Cmd() *cobra.Command {
	args := &Args{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a range proof.",
		Long:  "Verify a range proof against a lower and an upper bound.",
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return errors.New("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			return Verify(args, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.FilePath, "file_path", "f", "", "the proof file path")
	flags.StringVarP(&args.Lower, "lower", "l", "", "the lower bound (default 0)")
	flags.StringVarP(&args.Upper, "upper", "u", "", "the upper bound (default field order - 1)")
	flags.BoolVar(&args.Datum, "datum", false, "read the proof as a datum")
	_ = cmd.MarkFlagRequired("file_path")

	return cmd
}

// Verify prints the outcome of every check and fails when the proof does not verify.
func Verify(args *Args, out io.Writer) error {
	proof, lower, upper, err := common.ReadProof(args.FilePath, args.Datum)
	if err != nil {
		return err
	}
	if l, err := common.ParseInt("lower bound", args.Lower); err != nil {
		return err
	} else if l != nil {
		lower = l
	}
	if u, err := common.ParseInt("upper bound", args.Upper); err != nil {
		return err
	} else if u != nil {
		upper = u
	}
	verifier, err := rangeproof.NewVerifier(lower, upper)
	if err != nil {
		return err
	}
	res := verifier.Check(proof)
	fmt.Fprintf(out, "Verify %s >= value >= %s\n", verifier.Upper, verifier.Lower)
	fmt.Fprintf(out, "Upper bound: %v\nLower bound: %v\nPairing: %v\n", res.Upper, res.Lower, res.Pairing)
	fmt.Fprintf(out, "Is the Proof Valid? %v\n", res.Valid())
	if !res.Valid() {
		return ErrInvalidProof
	}
	return nil
}
