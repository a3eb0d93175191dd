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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/txnode"
)

const asyncF = "async"

func (c *cli) newTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer <to> <amount> [<to> <amount>]...",
		Short: "Transfer ETH to one or more addresses",
		Long: `Transfer the given amounts of ETH to the given addresses and wait for the
transfers to be mined. Amounts are in ETH, e.g. 1.5.

By default, transfers are sent one after the other, each waiting for the
previous one to be mined. With --async, all transfers are sent at once and
then waited upon together. A failed transfer does not affect the others.`,
		Args: transferArgs,
		RunE: c.transfer,
	}
	defineTxOptsFlags(cmd.Flags())
	cmd.Flags().Bool(asyncF, false, "Send all transfers before waiting for any of them to be mined")
	return cmd
}

// transferArgs checks that the args are pairs of recipient and amount.
func transferArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 || len(args)%2 != 0 {
		return errors.Errorf("want pairs of <to> <amount>, got %d arg(s)", len(args))
	}
	return nil
}

func (c *cli) transfer(cmd *cobra.Command, args []string) error {
	opts, err := parseTxOpts(cmd.Flags())
	if err != nil {
		printError(cmd, "Error parsing tx options: %v", err)
		return err
	}
	async, err := cmd.Flags().GetBool(asyncF)
	if err != nil {
		panic("unknown flag " + asyncF + "\n")
	}
	n, err := c.nodeAPI(cmd)
	if err != nil {
		return err
	}

	reqs := make([]txnode.TransferReq, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		reqs = append(reqs, txnode.TransferReq{To: args[i], Amount: args[i+1]})
	}

	var results []txnode.TxResult
	if async {
		results = n.TransferBatch(cmd.Context(), reqs, opts)
	} else {
		results = make([]txnode.TxResult, len(reqs))
		for i := range reqs {
			results[i].Info, results[i].Error = n.Transfer(cmd.Context(), reqs[i].To, reqs[i].Amount, opts)
		}
	}

	failed := 0
	for i := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "Transfer of %s ETH to %s:\n", reqs[i].Amount, reqs[i].To)
		if results[i].Error != nil {
			failed++
			printAPIError(cmd, results[i].Error)
			continue
		}
		printTxInfo(cmd, results[i].Info)
	}
	if failed != 0 {
		return errors.Errorf("%d of %d transfers failed", failed, len(results))
	}
	return nil
}
