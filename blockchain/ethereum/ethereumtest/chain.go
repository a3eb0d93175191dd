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

package ethereumtest

import (
	"context"
	"math/big"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/internal"
)

// Chain related parameters for connecting to ganache-cli node in integration test environment.
const (
	RandSeedForTestAccs = 1729 // Seed required for generating accounts used in integration tests.
	OnChainTxTimeout    = 1 * time.Minute
	ChainURL            = "ws://127.0.0.1:8545"
	ChainConnTimeout    = 10 * time.Second
	ChainID             = 1337 // Default chain id for ganache-cli private network and simulated backend.

	// BlockGasLimit is the gas limit of each block in the simulated backend.
	BlockGasLimit = 30000000
)

// InitialBalance is the balance, in Wei, of each account in the test setups.
func InitialBalance() *big.Int {
	return new(big.Int).Mul(big.NewInt(1000000), big.NewInt(params.Ether))
}

// ChainBackendSetup is a test setup that uses a simulated blockchain backend (for details on this backend,
// see go-ethereum) with funded accounts.
type ChainBackendSetup struct {
	*WalletSetup
	Backend      *simulated.Backend
	ChainBackend txnode.ChainBackend
}

// NewSimChainBackendSetup returns a simulated blockchain backend that mines a block for each transaction
// as soon as it is sent. It also generates the given number of accounts and funds each of them with the
// initial balance.
func NewSimChainBackendSetup(t *testing.T, rng *rand.Rand, numAccs uint) *ChainBackendSetup {
	return newSimChainBackendSetup(t, rng, numAccs, true)
}

// NewSimChainBackendSetupManualMining is the same as NewSimChainBackendSetup, except that blocks are mined
// only when Backend.Commit is called.
func NewSimChainBackendSetupManualMining(t *testing.T, rng *rand.Rand, numAccs uint) *ChainBackendSetup {
	return newSimChainBackendSetup(t, rng, numAccs, false)
}

func newSimChainBackendSetup(t *testing.T, rng *rand.Rand, numAccs uint, autoMine bool) *ChainBackendSetup {
	walletSetup := NewWalletSetupT(t, rng, numAccs)

	alloc := make(types.GenesisAlloc, len(walletSetup.Accs))
	for _, addr := range walletSetup.Accs {
		alloc[addr] = types.Account{Balance: InitialBalance()}
	}
	backend := simulated.NewBackend(alloc, simulated.WithBlockGasLimit(BlockGasLimit))
	t.Cleanup(func() {
		if err := backend.Close(); err != nil {
			t.Log("error in cleanup - ", err)
		}
	})

	var cli internal.Client = backend.Client()
	if autoMine {
		cli = &autoMiningClient{Client: backend.Client(), backend: backend}
	}
	ctx, cancel := context.WithTimeout(context.Background(), ChainConnTimeout)
	defer cancel()
	chainID, err := backend.Client().ChainID(ctx)
	require.NoError(t, err)

	return &ChainBackendSetup{
		WalletSetup:  walletSetup,
		Backend:      backend,
		ChainBackend: internal.NewChainBackend(cli, chainID, OnChainTxTimeout),
	}
}

// autoMiningClient mines a block after each transaction sent through it.
type autoMiningClient struct {
	simulated.Client
	backend *simulated.Backend
	mtx     sync.Mutex
}

func (c *autoMiningClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.backend.Commit()
	return nil
}
