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

package transact

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/log"
)

// Default values used for zero fields in ExecutorConfig.
const (
	DefaultTxTimeout       = 5 * time.Minute
	DefaultPollInterval    = 1 * time.Second
	DefaultMaxPollInterval = 10 * time.Second
)

// ExecutorConfig holds the parameters of an executor. Zero durations and a
// nil GasBuffer are replaced with the defaults.
type ExecutorConfig struct {
	GasBuffer       *uint64       // Gas added to the estimate by default. Zero is a valid buffer.
	TxTimeout       time.Duration // Max duration to wait for a tx to be mined.
	PollInterval    time.Duration // Initial interval for polling the receipt.
	MaxPollInterval time.Duration // Upper bound for the polling interval.
}

// Executor dispatches transactions to the blockchain.
//
// It is safe for concurrent use. Transactions dispatched concurrently from
// the same sender are assigned nonces in the order of submission by the
// chain backend.
type Executor struct {
	chain    txnode.ChainBackend
	accounts txnode.AccountBackend
	policy   GasPolicy

	txTimeout       time.Duration
	pollInterval    time.Duration
	maxPollInterval time.Duration

	inFlight mapset.Set[common.Hash]
	log      log.Logger
}

// NewExecutor returns an executor that sends transactions to the given
// chain, signed by the accounts in the given account backend.
func NewExecutor(chain txnode.ChainBackend, accounts txnode.AccountBackend, cfg ExecutorConfig) *Executor {
	gasBuffer := DefaultGasBuffer
	if cfg.GasBuffer != nil {
		gasBuffer = *cfg.GasBuffer
	}
	if cfg.TxTimeout == 0 {
		cfg.TxTimeout = DefaultTxTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MaxPollInterval == 0 {
		cfg.MaxPollInterval = DefaultMaxPollInterval
	}
	if cfg.MaxPollInterval < cfg.PollInterval {
		cfg.MaxPollInterval = cfg.PollInterval
	}

	return &Executor{
		chain:           chain,
		accounts:        accounts,
		policy:          NewGasPolicy(gasBuffer),
		txTimeout:       cfg.TxTimeout,
		pollInterval:    cfg.PollInterval,
		maxPollInterval: cfg.MaxPollInterval,
		inFlight:        mapset.NewSet[common.Hash](),
		log:             log.NewLoggerWithField("component", "executor"),
	}
}

// GasPolicy returns the gas policy used by the executor.
func (e *Executor) GasPolicy() GasPolicy { return e.policy }

// Transact sends the transaction and blocks until it is mined or has failed.
//
// The returned error is one of ConfigurationError, AuthorizationError,
// EstimationError or SubmissionError if the transaction was not submitted;
// InclusionTimeoutError if it was submitted but not observed to be mined in
// time; or RevertedError if it was mined with a failure status.
func (e *Executor) Transact(ctx context.Context, pending PendingTx, opts ...Option) (Receipt, error) {
	d := e.newDispatch(pending, opts)
	d.runUntil(ctx, State.IsTerminal)
	return d.result()
}

// TransactAsync sends the transaction and returns as soon as it is accepted
// by the blockchain node. The outcome can be obtained from the handle.
//
// Errors that occur until submission are returned directly and no handle is
// returned. The wait for the transaction to be mined is bounded by the tx
// timeout of the executor, not by the context.
func (e *Executor) TransactAsync(ctx context.Context, pending PendingTx, opts ...Option) (*Handle, error) {
	d := e.newDispatch(pending, opts)
	d.runUntil(ctx, func(s State) bool { return s == Pending })
	if d.state == Failed {
		return nil, d.err
	}

	h := newHandle(d.txHash)
	waitCtx := context.WithoutCancel(ctx)
	go func() {
		d.runUntil(waitCtx, State.IsTerminal)
		h.complete(d.result())
	}()
	return h, nil
}

// TransactAll dispatches all the transactions in async mode, in the given
// order, and then awaits all of them. The same options are used for each
// transaction.
//
// Outcomes are in the order of the transactions. A failure in dispatching
// one transaction does not prevent dispatching the others.
func (e *Executor) TransactAll(ctx context.Context, txs []PendingTx, opts ...Option) []Outcome {
	handles := make([]*Handle, len(txs))
	dispatchErrs := make([]error, len(txs))
	for i := range txs {
		handles[i], dispatchErrs[i] = e.TransactAsync(ctx, txs[i], opts...)
	}

	outcomes := AwaitAll(ctx, handles...)
	for i, err := range dispatchErrs {
		if err != nil {
			outcomes[i] = Outcome{Err: err}
		}
	}
	return outcomes
}

// InFlight returns the hashes of transactions that are submitted, but not
// yet mined or failed.
func (e *Executor) InFlight() []common.Hash {
	return e.inFlight.ToSlice()
}
