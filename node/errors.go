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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/transact"
)

// Enumeration of valid argument names for the ErrInvalidArgument errors
// returned by the node.
const (
	ArgNameTo      txnode.ArgumentName = "to"
	ArgNameAmount  txnode.ArgumentName = "amount"
	ArgNameData    txnode.ArgumentName = "data"
	ArgNameCode    txnode.ArgumentName = "code"
	ArgNameAddress txnode.ArgumentName = "address"
	ArgNameTxHash  txnode.ArgumentName = "txHash"
	ArgNameFrom    txnode.ArgumentName = "from"
)

// ResTypeTx is the resource type for transactions in ErrResourceNotFound
// errors.
const ResTypeTx txnode.ResourceType = "tx"

const (
	reqAddress = "hex encoded address of 20 bytes"
	reqTxHash  = "hex encoded hash of 32 bytes"
	reqAmount  = "positive amount in ETH, with at most 18 decimal places"
	reqHexData = "hex encoded bytes with 0x prefix"
	reqCode    = "non empty hex encoded bytes with 0x prefix"
)

// Types of transactions, used in the ErrTxTimedOut errors.
const (
	txTypeTransfer = "transfer"
	txTypeCall     = "call"
	txTypeDeploy   = "deploy"
)

// toAPIError maps an error returned by the executor onto the APIError
// taxonomy.
func toAPIError(err error, txType string, opts txnode.TxOpts) txnode.APIError {
	var (
		configErr   transact.ConfigurationError
		authErr     transact.AuthorizationError
		estimateErr transact.EstimationError
		submitErr   transact.SubmissionError
		timeoutErr  transact.InclusionTimeoutError
		revertedErr transact.RevertedError
	)
	switch {
	case errors.As(err, &configErr):
		return txnode.NewAPIErrInvalidConfig(err, configErr.Option, txOptsString(opts))
	case errors.As(err, &authErr):
		return txnode.NewAPIErrUnauthorized(err, authErr.Address.Hex())
	case errors.As(err, &estimateErr):
		return txnode.NewAPIErrEstimationFailed(err, estimateErr.From.Hex(), addrString(estimateErr.To))
	case errors.As(err, &submitErr):
		return txnode.NewAPIErrSubmissionFailed(err, submitErr.From.Hex(), addrString(submitErr.To), submitErr.Gas)
	case errors.As(err, &timeoutErr):
		timeout := "request deadline"
		if timeoutErr.Timeout > 0 {
			timeout = timeoutErr.Timeout.String()
		}
		return txnode.NewAPIErrTxTimedOut(err, txType, timeoutErr.TxHash.Hex(), timeout)
	case errors.As(err, &revertedErr):
		r := revertedErr.Receipt
		return txnode.NewAPIErrTxReverted(err, r.TxHash.Hex(), r.GasLimit, r.GasUsed)
	default:
		return txnode.NewAPIErrUnknownInternal(err)
	}
}

func txOptsString(opts txnode.TxOpts) string {
	gas, gasBuffer := "unset", "unset"
	if opts.Gas != nil {
		gas = fmt.Sprint(*opts.Gas)
	}
	if opts.GasBuffer != nil {
		gasBuffer = fmt.Sprint(*opts.GasBuffer)
	}
	return fmt.Sprintf("gas=%s, gasBuffer=%s", gas, gasBuffer)
}

// addrString returns an empty string for contract creation.
func addrString(addr *common.Address) string {
	if addr == nil {
		return ""
	}
	return addr.Hex()
}
