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
	"github.com/spf13/cobra"
)

const valueF = "value"

func (c *cli) newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <contract> <data>",
		Short: "Send a transaction to a contract",
		Long: `Send a transaction with the given call data to a contract and wait for it
to be mined. Data is hex encoded with 0x prefix, use "" for a call without
data. Use --value to send ETH along with the call.`,
		Args: cobra.ExactArgs(2),
		RunE: c.call,
	}
	defineTxOptsFlags(cmd.Flags())
	cmd.Flags().String(valueF, "", "Amount of ETH to send along with the call")
	return cmd
}

func (c *cli) call(cmd *cobra.Command, args []string) error {
	opts, err := parseTxOpts(cmd.Flags())
	if err != nil {
		printError(cmd, "Error parsing tx options: %v", err)
		return err
	}
	value, err := cmd.Flags().GetString(valueF)
	if err != nil {
		panic("unknown flag " + valueF + "\n")
	}
	n, err := c.nodeAPI(cmd)
	if err != nil {
		return err
	}

	info, apiErr := n.Call(cmd.Context(), args[0], args[1], value, opts)
	if info.TxHash != "" {
		printTxInfo(cmd, info)
	}
	if apiErr != nil {
		printAPIError(cmd, apiErr)
		return apiErr
	}
	return nil
}

func (c *cli) newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy <code>",
		Short: "Deploy a contract",
		Long: `Send a contract creation transaction with the given code and wait for it
to be mined. Code is hex encoded with 0x prefix. The address of the created
contract is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: c.deploy,
	}
	defineTxOptsFlags(cmd.Flags())
	return cmd
}

func (c *cli) deploy(cmd *cobra.Command, args []string) error {
	opts, err := parseTxOpts(cmd.Flags())
	if err != nil {
		printError(cmd, "Error parsing tx options: %v", err)
		return err
	}
	n, err := c.nodeAPI(cmd)
	if err != nil {
		return err
	}

	info, apiErr := n.Deploy(cmd.Context(), args[0], opts)
	if info.TxHash != "" {
		printTxInfo(cmd, info)
	}
	if apiErr != nil {
		printAPIError(cmd, apiErr)
		return apiErr
	}
	return nil
}
