/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package serve

import (
	"github.com/hyperledger-labs/zk-interval/interval/node"
	"github.com/hyperledger-labs/zk-interval/interval/services/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/sigmon"
)

// Cmd returns the Cobra Command starting the verification service.
func Cmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the verification service.",
		Long:  "Start the REST service generating, verifying and storing range proofs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			return Serve(configFile)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file merged over the defaults")
	return cmd
}

// Serve runs the node until SIGINT or SIGTERM.
func Serve(configFile string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	n, err := node.New(c)
	if err != nil {
		return err
	}
	runner, err := n.Runner()
	if err != nil {
		return err
	}
	process := ifrit.Invoke(sigmon.New(runner))
	err = <-process.Wait()
	if closeErr := n.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
