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
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/config"
)

const (
	// flag names for the per transaction options.
	gasF       = "gas"
	gasBufferF = "gas-buffer"
	fromF      = "from"
)

// areAllFlagsSpecified returns true if all of the flags were specified
// invoking the command to which the passed flagset was attached to.
func areAllFlagsSpecified(fs *pflag.FlagSet, flags ...string) bool {
	for i := range flags {
		if !fs.Changed(flags[i]) {
			return false
		}
	}
	return true
}

func defineTxOptsFlags(fs *pflag.FlagSet) {
	fs.Uint64(gasF, 0, "Gas limit for the transaction. Skips the estimation")
	fs.Uint64(gasBufferF, 0, "Gas added to the estimate for this transaction. Cannot be used with --gas")
	fs.String(fromF, "", "Sender address as hex string with 0x prefix. Defaults to the node's default account")
}

// parseTxOpts returns the per transaction options specified in the flags.
// Options that were not specified are left unset.
func parseTxOpts(fs *pflag.FlagSet) (txnode.TxOpts, error) {
	var (
		gas, gasBuffer uint64
		from           common.Address
	)
	targets := []config.FlagInfo{
		{Name: gasF, Ptr: &gas},
		{Name: gasBufferF, Ptr: &gasBuffer},
		{Name: fromF, Ptr: &from},
	}
	if err := config.LookUpMultiple(fs, targets); err != nil {
		return txnode.TxOpts{}, err
	}

	var opts txnode.TxOpts
	if targets[0].Changed {
		opts.Gas = &gas
	}
	if targets[1].Changed {
		opts.GasBuffer = &gasBuffer
	}
	if targets[2].Changed {
		opts.From = from.Hex()
	}
	return opts, nil
}
