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

// Package node implements the NodeAPI of txnode. It parses the user
// arguments, sends the transactions using the transact package and maps
// the errors onto the APIError taxonomy.
package node

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/txnode"
	ethchain "github.com/hyperledger-labs/txnode/blockchain/ethereum"
	"github.com/hyperledger-labs/txnode/currency"
	"github.com/hyperledger-labs/txnode/log"
	"github.com/hyperledger-labs/txnode/transact"
)

type node struct {
	log.Logger
	cfg      txnode.NodeConfig
	chain    txnode.ChainBackend
	executor *transact.Executor
	receipts *lru.Cache
}

// New returns a txnode NodeAPI instance initialized using the given config.
// It connects to the blockchain node, unlocks the keys in the keystore and
// initializes the logger.
//
// This should be called only once, because the logger can be initialized
// only once per process.
func New(cfg txnode.NodeConfig) (txnode.NodeAPI, error) {
	chain, err := ethchain.NewChainBackend(cfg.ChainURL, cfg.ChainID, cfg.ChainConnTimeout, cfg.OnChainTxTimeout)
	if err != nil {
		return nil, txnode.NewAPIErrChainNotReachable(err, cfg.ChainURL)
	}
	accounts, err := ethchain.NewAccountBackend(cfg.KeystorePath, cfg.Password, cfg.DefaultAccount)
	if err != nil {
		return nil, txnode.NewAPIErrInvalidConfig(err, "keystorepath", cfg.KeystorePath)
	}

	err = log.InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, errors.WithMessage(err, "initializing logger for node")
	}
	return NewWithBackends(cfg, chain, accounts)
}

// NewWithBackends returns a txnode NodeAPI instance that uses the given
// chain and account backends. The chain and account parameters in the config
// are not used and the logger is not initialized.
func NewWithBackends(cfg txnode.NodeConfig, chain txnode.ChainBackend, accounts txnode.AccountBackend) (
	txnode.NodeAPI, error) {
	receipts, err := lru.New(cfg.ReceiptCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "initializing receipt cache")
	}
	executor := transact.NewExecutor(chain, accounts, transact.ExecutorConfig{
		GasBuffer:       &cfg.GasBuffer,
		TxTimeout:       cfg.OnChainTxTimeout,
		PollInterval:    cfg.PollInterval,
		MaxPollInterval: cfg.MaxPollInterval,
	})
	return &node{
		Logger:   log.NewLoggerWithField("node", 1), // ID of the node is always 1.
		cfg:      cfg,
		chain:    chain,
		executor: executor,
		receipts: receipts,
	}, nil
}

// Time returns the time as per txnode's clock.
func (n *node) Time() int64 {
	n.Debug("Received request: node.Time")
	return time.Now().UTC().Unix()
}

// GetConfig returns the configuration parameters of the node, with the
// keystore password removed.
func (n *node) GetConfig() txnode.NodeConfig {
	n.Debug("Received request: node.GetConfig")
	cfg := n.cfg
	cfg.Password = ""
	return cfg
}

// Balance returns the balance of the given address in ETH.
//
// If there is an error, it will be one of the following codes:
// - ErrInvalidArgument with Name:"address" when the address is invalid.
// - ErrChainNotReachable when the balance could not be read.
func (n *node) Balance(ctx context.Context, addr string) (string, txnode.APIError) {
	n.WithField("method", "Balance").Infof("Received request with params %+v", addr)
	var apiErr txnode.APIError
	defer func() {
		if apiErr != nil {
			n.WithFields(txnode.APIErrAsMap("Balance", apiErr)).Error(apiErr.Message())
		}
	}()

	address, err := ethchain.ParseAddr(addr)
	if err != nil {
		apiErr = txnode.NewAPIErrInvalidArgument(err, ArgNameAddress, addr, reqAddress)
		return "", apiErr
	}
	bal, err := n.chain.BalanceAt(ctx, address)
	if err != nil {
		apiErr = txnode.NewAPIErrChainNotReachable(err, n.cfg.ChainURL)
		return "", apiErr
	}
	return currency.ETH.Print(bal), nil
}

// Receipt returns the info of a mined transaction. After a tx timed out, it
// can be used to check whether the transaction was eventually mined before
// sending it again.
//
// If there is an error, it will be one of the following codes:
// - ErrInvalidArgument with Name:"txHash" when the hash is invalid.
// - ErrResourceNotFound when the tx is unknown or not yet mined.
// - ErrChainNotReachable when the receipt could not be read.
func (n *node) Receipt(ctx context.Context, txHash string) (txnode.TxInfo, txnode.APIError) {
	n.WithField("method", "Receipt").Infof("Received request with params %+v", txHash)
	var apiErr txnode.APIError
	defer func() {
		if apiErr != nil {
			n.WithFields(txnode.APIErrAsMap("Receipt", apiErr)).Error(apiErr.Message())
		}
	}()

	hash, err := ethchain.ParseTxHash(txHash)
	if err != nil {
		apiErr = txnode.NewAPIErrInvalidArgument(err, ArgNameTxHash, txHash, reqTxHash)
		return txnode.TxInfo{}, apiErr
	}
	if cached, ok := n.receipts.Get(hash); ok {
		return toTxInfo(cached.(transact.Receipt)), nil
	}

	r, err := n.chain.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) || (err == nil && r == nil) {
		apiErr = txnode.NewAPIErrResourceNotFound(ResTypeTx, txHash)
		return txnode.TxInfo{}, apiErr
	}
	if err != nil {
		apiErr = txnode.NewAPIErrChainNotReachable(err, n.cfg.ChainURL)
		return txnode.TxInfo{}, apiErr
	}
	tx, _, err := n.chain.TransactionByHash(ctx, hash)
	if err != nil {
		apiErr = txnode.NewAPIErrChainNotReachable(err, n.cfg.ChainURL)
		return txnode.TxInfo{}, apiErr
	}
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		apiErr = txnode.NewAPIErrUnknownInternal(errors.Wrap(err, "recovering sender"))
		return txnode.TxInfo{}, apiErr
	}

	receipt := transact.NewReceipt(r, from, tx.To(), tx.Gas())
	n.receipts.Add(hash, receipt)
	return toTxInfo(receipt), nil
}

func toTxInfo(r transact.Receipt) txnode.TxInfo {
	info := txnode.TxInfo{
		TxHash:      r.TxHash.Hex(),
		From:        r.From.Hex(),
		GasLimit:    r.GasLimit,
		GasUsed:     r.GasUsed,
		BlockNumber: r.BlockNumber,
		Success:     r.Status,
	}
	if r.To != nil {
		info.To = r.To.Hex()
	}
	if r.ContractAddress != nil {
		info.ContractAddr = r.ContractAddress.Hex()
	}
	return info
}
