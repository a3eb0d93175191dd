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
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
)

// Init code of the contracts used in tests. The contracts are hand assembled to avoid a dependency on the
// solidity compiler.
var (
	// StorageContractCode deploys a contract that stores the first word of the call data in storage slot 0.
	// A call that changes the slot from zero consumes ~43k gas.
	StorageContractCode = common.FromHex("0x600780600b6000396000f360003560005500")

	// RevertingContractCode deploys a contract that reverts on every call.
	RevertingContractCode = common.FromHex("0x600580600b6000396000f360006000fd")
)

// DeployGasLimit is the gas limit used for deploying the test contracts.
const DeployGasLimit = 200000

// DeployContractT deploys the contract with the given init code from the given account and returns its
// address. It waits for the deployment to be mined, so the chain must mine blocks on its own.
func DeployContractT(t *testing.T, chain txnode.ChainBackend, accounts txnode.AccountBackend,
	from common.Address, code []byte) common.Address {
	addr, err := DeployContract(chain, accounts, from, code)
	require.NoError(t, err)
	return addr
}

// DeployContract is the same as DeployContractT, but returns errors instead of failing the test.
func DeployContract(chain txnode.ChainBackend, accounts txnode.AccountBackend, from common.Address,
	code []byte) (common.Address, error) {
	auth, err := accounts.Authorize(from)
	if err != nil {
		return common.Address{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), OnChainTxTimeout)
	defer cancel()

	txHash, err := chain.Submit(ctx, txnode.TxRequest{From: from, Data: code, Gas: DeployGasLimit}, auth)
	if err != nil {
		return common.Address{}, errors.WithMessage(err, "deploying contract")
	}
	r, err := WaitMined(ctx, chain, txHash)
	if err != nil {
		return common.Address{}, err
	}
	if r.Status != types.ReceiptStatusSuccessful {
		return common.Address{}, errors.Errorf("deploying contract: tx %s failed", txHash.Hex())
	}
	return r.ContractAddress, nil
}

// WaitMined polls for the receipt of the transaction at a fixed interval, until it is found or the context
// is done.
func WaitMined(ctx context.Context, chain txnode.ROChainBackend, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		r, err := chain.TransactionReceipt(ctx, txHash)
		if err == nil && r != nil {
			return r, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "waiting for tx "+txHash.Hex())
		case <-ticker.C:
		}
	}
}

// StoreCallData returns the call data for storing the given value in the storage contract.
func StoreCallData(value uint64) []byte {
	return common.BigToHash(new(big.Int).SetUint64(value)).Bytes()
}

// IsBlockchainRunning reports whether a blockchain node accepts websocket connections at the given url.
func IsBlockchainRunning(url string) bool {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return false
	}
	conn.Close() // nolint: errcheck, gosec
	return true
}
