/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"encoding/json"
	"io"

	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Cmd returns the Cobra Command printing the public parameters.
func Cmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the public parameters.",
		Long:  "Print the curve, the group orders and the generators every prover and verifier share.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			return Print(output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func Print(format string, out io.Writer) error {
	var (
		raw []byte
		err error
	)
	pp := math.NewPublicParams()
	switch format {
	case "json":
		raw, err = json.MarshalIndent(pp, "", "  ")
		raw = append(raw, '\n')
	case "yaml":
		raw, err = yaml.Marshal(pp)
	default:
		return errors.Errorf("unknown output format [%s]", format)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal public parameters")
	}
	_, err = out.Write(raw)
	return err
}
