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

package nodetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/ethereumtest"
	"github.com/hyperledger-labs/txnode/config"
	"github.com/hyperledger-labs/txnode/node"
)

// NewConfig generates configuration data for the node that uses the keystore
// in the given wallet setup. The first account in the wallet setup is the
// default account.
//
// Chain parameters are fetched from the ethereumtest package.
func NewConfig(ws *ethereumtest.WalletSetup) txnode.NodeConfig {
	return txnode.NodeConfig{
		LogFile:  "",
		LogLevel: "debug",

		ChainURL:         ethereumtest.ChainURL,
		ChainID:          ethereumtest.ChainID,
		ChainConnTimeout: ethereumtest.ChainConnTimeout,
		OnChainTxTimeout: ethereumtest.OnChainTxTimeout,

		KeystorePath:   ws.KeystorePath,
		Password:       "",
		DefaultAccount: ws.Accs[0].Hex(),

		GasBuffer:        config.DefaultGasBuffer,
		PollInterval:     10 * time.Millisecond,
		MaxPollInterval:  100 * time.Millisecond,
		ReceiptCacheSize: config.DefaultReceiptCacheSize,
	}
}

// NewSimNodeT returns a NodeAPI instance that sends transactions on the
// simulated blockchain in the given setup, using the given configuration.
func NewSimNodeT(t *testing.T, setup *ethereumtest.ChainBackendSetup, cfg txnode.NodeConfig) txnode.NodeAPI {
	n, err := node.NewWithBackends(cfg, setup.ChainBackend, setup.Accounts)
	require.NoError(t, err)
	return n
}
