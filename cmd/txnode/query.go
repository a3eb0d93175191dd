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

	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/txnode/currency"
)

func (c *cli) newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Print the balance of an address in ETH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.nodeAPI(cmd)
			if err != nil {
				return err
			}
			bal, apiErr := n.Balance(cmd.Context(), args[0])
			if apiErr != nil {
				printAPIError(cmd, apiErr)
				return apiErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", bal, currency.ETH.Symbol())
			return nil
		},
	}
}

func (c *cli) newReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <txHash>",
		Short: "Print the info of a mined transaction",
		Long: `Print the info of a mined transaction. Use it to check whether a transaction
that timed out was mined eventually, before sending it again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.nodeAPI(cmd)
			if err != nil {
				return err
			}
			info, apiErr := n.Receipt(cmd.Context(), args[0])
			if apiErr != nil {
				printAPIError(cmd, apiErr)
				return apiErr
			}
			printTxInfo(cmd, info)
			return nil
		},
	}
}
