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

package internal

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/txnode"
)

// Client is the subset of the ethereum client methods used by the chain
// backend. It is implemented by the ethclient and the simulated backend
// client in go-ethereum.
type Client interface {
	ethereum.ChainStateReader
	ethereum.GasEstimator
	ethereum.GasPricer
	ethereum.PendingStateReader
	ethereum.TransactionReader
	ethereum.TransactionSender
}

// ChainBackend provides ethereum specific on-chain transaction functionality.
type ChainBackend struct {
	// Cli is the client that will be used for all on-chain communications.
	Cli Client
	// ChainID is used for signing transactions (EIP-155).
	ChainID *big.Int
	// TxTimeout is the max time for each call to the blockchain node.
	TxTimeout time.Duration

	senderLocksMtx sync.Mutex
	senderLocks    map[common.Address]*sync.Mutex
}

// NewChainBackend returns a chain backend that uses the given client.
func NewChainBackend(cli Client, chainID *big.Int, txTimeout time.Duration) *ChainBackend {
	return &ChainBackend{
		Cli:         cli,
		ChainID:     new(big.Int).Set(chainID),
		TxTimeout:   txTimeout,
		senderLocks: make(map[common.Address]*sync.Mutex),
	}
}

// EstimateGas returns the gas required for executing the transaction, as
// estimated by the blockchain node.
func (cb *ChainBackend) EstimateGas(ctx context.Context, req txnode.TxRequest) (uint64, error) {
	ctx, cancel := cb.withTimeout(ctx)
	defer cancel()

	gas, err := cb.Cli.EstimateGas(ctx, ethereum.CallMsg{
		From:  req.From,
		To:    req.To,
		Value: req.Value,
		Data:  req.Data,
	})
	return gas, errors.Wrap(err, "estimating gas")
}

// Submit assigns the nonce and gas price to the transaction, signs it using
// the authorizer and sends it to the blockchain node.
//
// Submissions from the same sender are serialized, so that concurrent
// submissions get consecutive nonces in the order they acquire the lock.
func (cb *ChainBackend) Submit(ctx context.Context, req txnode.TxRequest, auth txnode.Authorizer) (
	common.Hash, error) {
	if auth.Address() != req.From {
		return common.Hash{}, errors.Errorf("authorizer for %s cannot sign tx from %s",
			auth.Address().Hex(), req.From.Hex())
	}
	ctx, cancel := cb.withTimeout(ctx)
	defer cancel()

	unlock := cb.lockSender(req.From)
	defer unlock()

	nonce, err := cb.Cli.PendingNonceAt(ctx, req.From)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "reading nonce")
	}
	gasPrice, err := cb.Cli.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "reading gas price")
	}
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      req.Gas,
		To:       req.To,
		Value:    value,
		Data:     req.Data,
	})
	signedTx, err := auth.SignTx(tx, cb.ChainID)
	if err != nil {
		return common.Hash{}, errors.WithMessage(err, "signing tx")
	}
	if err = cb.Cli.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, errors.Wrap(err, "sending tx")
	}
	return signedTx.Hash(), nil
}

// TransactionReceipt returns the receipt of a mined transaction. It returns
// ethereum.NotFound if the transaction is not yet mined.
func (cb *ChainBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := cb.withTimeout(ctx)
	defer cancel()
	r, err := cb.Cli.TransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, err
	}
	return r, errors.Wrap(err, "reading receipt")
}

// TransactionByHash returns the transaction with the given hash.
func (cb *ChainBackend) TransactionByHash(ctx context.Context, txHash common.Hash) (*types.Transaction, bool, error) {
	ctx, cancel := cb.withTimeout(ctx)
	defer cancel()
	tx, isPending, err := cb.Cli.TransactionByHash(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, false, err
	}
	return tx, isPending, errors.Wrap(err, "reading tx")
}

// BalanceAt reads the on-chain balance of the given address in the latest
// block.
func (cb *ChainBackend) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	ctx, cancel := cb.withTimeout(ctx)
	defer cancel()
	bal, err := cb.Cli.BalanceAt(ctx, addr, nil)
	return bal, errors.Wrap(err, "reading on-chain balance for "+addr.Hex())
}

func (cb *ChainBackend) lockSender(addr common.Address) (unlock func()) {
	cb.senderLocksMtx.Lock()
	if cb.senderLocks == nil {
		cb.senderLocks = make(map[common.Address]*sync.Mutex)
	}
	l, ok := cb.senderLocks[addr]
	if !ok {
		l = &sync.Mutex{}
		cb.senderLocks[addr] = l
	}
	cb.senderLocksMtx.Unlock()

	l.Lock()
	return l.Unlock
}

func (cb *ChainBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if cb.TxTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cb.TxTimeout)
}
