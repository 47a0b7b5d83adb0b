/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/hyperledger-labs/zk-interval/cmd/zkinterval/cobra/params"
	"github.com/hyperledger-labs/zk-interval/cmd/zkinterval/cobra/prove"
	"github.com/hyperledger-labs/zk-interval/cmd/zkinterval/cobra/serve"
	"github.com/hyperledger-labs/zk-interval/cmd/zkinterval/cobra/verify"
	"github.com/hyperledger-labs/zk-interval/cmd/zkinterval/cobra/version"
	"github.com/spf13/cobra"
)

// The main command describes the service and
// defaults to printing the help message.
var mainCmd = &cobra.Command{Use: version.ProgramName}

func main() {
	mainCmd.AddCommand(prove.Cmd())
	mainCmd.AddCommand(verify.Cmd())
	mainCmd.AddCommand(params.Cmd())
	mainCmd.AddCommand(serve.Cmd())
	mainCmd.AddCommand(version.Cmd())

	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if mainCmd.Execute() != nil {
		os.Exit(1)
	}
}
