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

package node

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/txnode"
	ethchain "github.com/hyperledger-labs/txnode/blockchain/ethereum"
	"github.com/hyperledger-labs/txnode/currency"
	"github.com/hyperledger-labs/txnode/log"
	"github.com/hyperledger-labs/txnode/transact"
)

// Transfer sends the given amount of ETH to the given address and waits
// until the transaction is mined.
//
// If there is an error, it will be one of the following codes:
// - ErrInvalidArgument with Name:"to", "amount" or "from" when the argument is invalid.
// - ErrInvalidConfig when both gas and gas buffer are set.
// - ErrUnauthorized when the sender's keys are not available.
// - ErrEstimationFailed, ErrSubmissionFailed.
// - ErrTxTimedOut, ErrTxReverted.
// - ErrUnknownInternal.
func (n *node) Transfer(ctx context.Context, to, amount string, opts txnode.TxOpts) (
	txnode.TxInfo, txnode.APIError) {
	n.WithField("method", "Transfer").Infof("Received request with params %+v, %+v, %+v", to, amount, opts)
	var apiErr txnode.APIError
	defer func() {
		if apiErr != nil {
			n.WithFields(txnode.APIErrAsMap("Transfer", apiErr)).Error(apiErr.Message())
		}
	}()

	pending, apiErr := parseTransfer(to, amount)
	if apiErr != nil {
		return txnode.TxInfo{}, apiErr
	}
	var info txnode.TxInfo
	info, apiErr = n.transact(ctx, pending, txTypeTransfer, opts)
	return info, apiErr
}

// TransferBatch sends all the transfers concurrently and waits until each of
// them is mined or has failed. Results are in the order of the requests, and
// an invalid or failed transfer does not affect the others.
func (n *node) TransferBatch(ctx context.Context, reqs []txnode.TransferReq, opts txnode.TxOpts) []txnode.TxResult {
	n.WithField("method", "TransferBatch").Infof("Received request with params %+v, %+v", reqs, opts)

	results := make([]txnode.TxResult, len(reqs))
	txOpts, apiErr := parseTxOpts(opts)
	if apiErr != nil {
		for i := range results {
			results[i].Error = apiErr
		}
		n.WithFields(txnode.APIErrAsMap("TransferBatch", apiErr)).Error(apiErr.Message())
		return results
	}

	txs := make([]transact.PendingTx, 0, len(reqs))
	idxs := make([]int, 0, len(reqs))
	for i, req := range reqs {
		pending, apiErr := parseTransfer(req.To, req.Amount)
		if apiErr != nil {
			results[i].Error = apiErr
			continue
		}
		txs = append(txs, pending)
		idxs = append(idxs, i)
	}

	outcomes := n.executor.TransactAll(ctx, txs, txOpts...)
	for j, outcome := range outcomes {
		i := idxs[j]
		results[i].Info, results[i].Error = n.handleOutcome(outcome.Receipt, outcome.Err, txTypeTransfer, opts)
	}

	for i := range results {
		if results[i].Error != nil {
			n.WithFields(txnode.APIErrAsMap("TransferBatch", results[i].Error)).
				WithField("index", i).Error(results[i].Error.Message())
		}
	}
	return results
}

// Call sends a transaction with the given hex encoded call data and an
// optional amount of ETH to the given contract, and waits until the
// transaction is mined.
//
// If there is an error, it will be one of the codes listed for Transfer,
// with Name:"data" as an additional invalid argument.
func (n *node) Call(ctx context.Context, to, data, amount string, opts txnode.TxOpts) (
	txnode.TxInfo, txnode.APIError) {
	n.WithField("method", "Call").Infof("Received request with params %+v, %+v, %+v, %+v", to, data, amount, opts)
	var apiErr txnode.APIError
	defer func() {
		if apiErr != nil {
			n.WithFields(txnode.APIErrAsMap("Call", apiErr)).Error(apiErr.Message())
		}
	}()

	toAddr, err := ethchain.ParseAddr(to)
	if err != nil {
		apiErr = txnode.NewAPIErrInvalidArgument(err, ArgNameTo, to, reqAddress)
		return txnode.TxInfo{}, apiErr
	}
	callData, err := ethchain.ParseData(data)
	if err != nil {
		apiErr = txnode.NewAPIErrInvalidArgument(err, ArgNameData, data, reqHexData)
		return txnode.TxInfo{}, apiErr
	}
	var value *big.Int
	if amount != "" {
		if value, err = currency.ETH.Parse(amount); err != nil {
			apiErr = txnode.NewAPIErrInvalidArgument(err, ArgNameAmount, amount, reqAmount)
			return txnode.TxInfo{}, apiErr
		}
	}

	var info txnode.TxInfo
	info, apiErr = n.transact(ctx, transact.NewCall(toAddr, callData, value), txTypeCall, opts)
	return info, apiErr
}

// Deploy sends a contract creation transaction with the given hex encoded
// code and waits until it is mined. The address of the created contract is
// returned in the tx info.
//
// If there is an error, it will be one of the codes listed for Transfer,
// with Name:"code" as an additional invalid argument.
func (n *node) Deploy(ctx context.Context, code string, opts txnode.TxOpts) (txnode.TxInfo, txnode.APIError) {
	n.WithField("method", "Deploy").Infof("Received request with params %+v, %+v", code, opts)
	var apiErr txnode.APIError
	defer func() {
		if apiErr != nil {
			n.WithFields(txnode.APIErrAsMap("Deploy", apiErr)).Error(apiErr.Message())
		}
	}()

	bytecode, err := ethchain.ParseData(code)
	if err == nil && len(bytecode) == 0 {
		err = errors.New("code is empty")
	}
	if err != nil {
		apiErr = txnode.NewAPIErrInvalidArgument(err, ArgNameCode, code, reqCode)
		return txnode.TxInfo{}, apiErr
	}

	var info txnode.TxInfo
	info, apiErr = n.transact(ctx, transact.NewDeploy(bytecode, nil), txTypeDeploy, opts)
	return info, apiErr
}

// transact sends the transaction in sync mode and returns the tx info. For
// reverted transactions, the info is returned along with the error.
func (n *node) transact(ctx context.Context, pending transact.PendingTx, txType string, opts txnode.TxOpts) (
	txnode.TxInfo, txnode.APIError) {
	txOpts, apiErr := parseTxOpts(opts)
	if apiErr != nil {
		return txnode.TxInfo{}, apiErr
	}
	receipt, err := n.executor.Transact(ctx, pending, txOpts...)
	return n.handleOutcome(receipt, err, txType, opts)
}

func (n *node) handleOutcome(receipt transact.Receipt, err error, txType string, opts txnode.TxOpts) (
	txnode.TxInfo, txnode.APIError) {
	var reverted transact.RevertedError
	switch {
	case err == nil:
	case errors.As(err, &reverted):
		receipt = reverted.Receipt
	default:
		return txnode.TxInfo{}, toAPIError(err, txType, opts)
	}

	n.receipts.Add(receipt.TxHash, receipt)
	n.WithFields(log.Fields{"txHash": receipt.TxHash.Hex(), "block": receipt.BlockNumber}).
		Info("Transaction mined")
	if err != nil {
		return toTxInfo(receipt), toAPIError(err, txType, opts)
	}
	return toTxInfo(receipt), nil
}

func parseTransfer(to, amount string) (transact.PendingTx, txnode.APIError) {
	toAddr, err := ethchain.ParseAddr(to)
	if err != nil {
		return transact.PendingTx{}, txnode.NewAPIErrInvalidArgument(err, ArgNameTo, to, reqAddress)
	}
	value, err := currency.ETH.Parse(amount)
	if err != nil {
		return transact.PendingTx{}, txnode.NewAPIErrInvalidArgument(err, ArgNameAmount, amount, reqAmount)
	}
	return transact.NewTransfer(toAddr, value), nil
}

// parseTxOpts converts the user options into executor options. Conflicting
// gas options are passed on and reported by the executor.
func parseTxOpts(opts txnode.TxOpts) ([]transact.Option, txnode.APIError) {
	txOpts := make([]transact.Option, 0, 3)
	if opts.From != "" {
		from, err := ethchain.ParseAddr(opts.From)
		if err != nil {
			return nil, txnode.NewAPIErrInvalidArgument(err, ArgNameFrom, opts.From, reqAddress)
		}
		txOpts = append(txOpts, transact.WithFrom(from))
	}
	if opts.Gas != nil {
		txOpts = append(txOpts, transact.WithGas(*opts.Gas))
	}
	if opts.GasBuffer != nil {
		txOpts = append(txOpts, transact.WithGasBuffer(*opts.GasBuffer))
	}
	return txOpts, nil
}
