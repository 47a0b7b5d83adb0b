/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prove

import (
	"fmt"
	"io"

	"github.com/hyperledger-labs/zk-interval/cmd/zkinterval/cobra/common"
	"github.com/hyperledger-labs/zk-interval/interval/core/encoding/datum"
	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type Args struct {
	// Value is the secret value, in decimal
	Value string
	// Lower is the lower bound, in decimal. Empty means zero.
	Lower string
	// Upper is the upper bound, in decimal. Empty means the field order minus one.
	Upper string
	// FilePath is where the proof is written
	FilePath string
	// Datum selects the datum layout instead of the wire form
	Datum bool
}

// Cmd returns the Cobra Command for proof generation.
func Cmd() *cobra.Command {
	args := &Args{}
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Generate a range proof.",
		Long:  "Generate a proof that a secret value lies between a lower and an upper bound.",
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return errors.New("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			if err := Prove(args, cmd.OutOrStdout()); err != nil {
				return errors.WithMessage(err, "failed to generate range proof")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.Value, "value", "v", "", "the secret value")
	flags.StringVarP(&args.Lower, "lower", "l", "", "the lower bound (default 0)")
	flags.StringVarP(&args.Upper, "upper", "u", "", "the upper bound (default field order - 1)")
	flags.StringVarP(&args.FilePath, "file_path", "f", "", "the output file path")
	flags.BoolVar(&args.Datum, "datum", false, "write the proof as a datum")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("file_path")

	return cmd
}

// Prove generates the proof, checks it and writes it to args.FilePath.
func Prove(args *Args, out io.Writer) error {
	value, err := common.ParseInt("value", args.Value)
	if err != nil {
		return err
	}
	lower, err := common.ParseInt("lower bound", args.Lower)
	if err != nil {
		return err
	}
	upper, err := common.ParseInt("upper bound", args.Upper)
	if err != nil {
		return err
	}
	prover, err := rangeproof.NewProver(value, lower, upper)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Prove %s >= %s >= %s\n", prover.Upper, value, prover.Lower)

	proof, err := prover.Prove()
	if err != nil {
		return err
	}
	verifier, err := rangeproof.NewVerifier(prover.Lower, prover.Upper)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Is the Proof Valid? %v\n", verifier.Verify(proof))

	if args.Datum {
		return common.WriteJSON(args.FilePath, datum.FromWire(proof.ToWire(), prover.Lower, prover.Upper))
	}
	return common.WriteJSON(args.FilePath, proof.ToWire())
}
