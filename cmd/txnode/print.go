// Copyright (c) 2021 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/hyperledger-labs/txnode
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/txnode"
)

var (
	// SPrintf style functions that produce colored text.
	redf   = color.New(color.FgRed).SprintfFunc()
	greenf = color.New(color.FgGreen).SprintfFunc()
	bluef  = color.New(color.FgBlue).SprintfFunc()
)

// printError prints the formatted error message in red to the error output of the command.
func printError(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", redf(format, args...))
}

// printAPIError is a helper function to print the error returned by the node APIs.
func printAPIError(cmd *cobra.Command, apiErr txnode.APIError) {
	printError(cmd, "%s", apiErrorString(apiErr))
}

// apiErrorString formats the error returned by the API into pretty strings.
func apiErrorString(e txnode.APIError) string {
	return fmt.Sprintf("category: %s, code: %d, message: %s, additional info: %+v",
		e.Category(), e.Code(), e.Message(), e.AddInfo())
}

// printTxInfo prints the info of a mined transaction, in green if it was successful and in red otherwise.
func printTxInfo(cmd *cobra.Command, info txnode.TxInfo) {
	status := greenf("success")
	if !info.Success {
		status = redf("reverted")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tx %s mined in block %d with status %s\n", bluef(info.TxHash), info.BlockNumber, status)
	fmt.Fprintf(out, "\tfrom: %s\n", info.From)
	if info.To != "" {
		fmt.Fprintf(out, "\tto: %s\n", info.To)
	}
	if info.ContractAddr != "" {
		fmt.Fprintf(out, "\tcontract: %s\n", info.ContractAddr)
	}
	fmt.Fprintf(out, "\tgas used: %d of %d\n", info.GasUsed, info.GasLimit)
}
