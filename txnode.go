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

package txnode

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxRequest represents the parameters of a transaction that is to be
// estimated or submitted to the blockchain.
//
// To is nil for contract creation. Gas is ignored in estimation requests.
type TxRequest struct {
	From  common.Address
	To    *common.Address
	Value *big.Int
	Data  []byte
	Gas   uint64
}

//go:generate mockery --name Authorizer --output ./internal/mocks

// Authorizer is the capability to sign transactions on behalf of a single
// on-chain account.
type Authorizer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

//go:generate mockery --name AccountBackend --output ./internal/mocks

// AccountBackend provides the default account used for sending transactions
// and authorizers for each of the accounts it manages.
//
// Authorize returns an error when the keys for the given address are
// unknown or cannot be unlocked.
type AccountBackend interface {
	DefaultAccount() common.Address
	Authorize(addr common.Address) (Authorizer, error)
}

//go:generate mockery --name ChainBackend --output ./internal/mocks

// ChainBackend wraps the methods required for estimating, submitting and
// tracking transactions on a specific blockchain platform.
//
// Implementations must be safe for concurrent use. In particular, nonce
// assignment for concurrent submissions from the same account is the
// responsibility of the implementation.
type ChainBackend interface {
	ROChainBackend

	EstimateGas(ctx context.Context, req TxRequest) (uint64, error)
	Submit(ctx context.Context, req TxRequest, auth Authorizer) (common.Hash, error)
}

// ROChainBackend wraps the methods for reading transactions, receipts and
// balances from the blockchain.
//
// TransactionReceipt returns ethereum.NotFound (or a nil receipt) for
// transactions that are not yet mined.
type ROChainBackend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, txHash common.Hash) (tx *types.Transaction, isPending bool, _ error)
	BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error)
}

// Currency represents a parser that can convert between string representation of a currency and
// its equivalent value in base unit represented as a big integer.
type Currency interface {
	Parse(string) (*big.Int, error)
	Print(*big.Int) string
	Symbol() string
}

// NodeConfig represents the configurable parameters of a txnode.
type NodeConfig struct {
	LogLevel string // LogLevel represents the log level for the node and all derived loggers.
	LogFile  string // LogFile represents the file to write logs. Empty string represents stdout.

	ChainURL         string        // URL of the blockchain node.
	ChainID          int           // Chain ID used for signing transactions. Zero means query the node.
	ChainConnTimeout time.Duration // Timeout for connecting to blockchain node.
	OnChainTxTimeout time.Duration // Timeout to wait for confirmation of on-chain tx.

	KeystorePath   string // Path to the keystore directory holding the sender keys.
	Password       string // Password for unlocking all the keys in the keystore.
	DefaultAccount string // Address used as sender when none is specified.

	GasBuffer        uint64        // Gas added to the estimate when no explicit gas limit is given.
	PollInterval     time.Duration // Initial interval for polling the receipt of a submitted tx.
	MaxPollInterval  time.Duration // Upper bound for the backed-off polling interval.
	ReceiptCacheSize int           // Number of mined receipts cached for lookups by hash.
}

// TxOpts represents the per transaction options that a user can specify.
// A nil Gas or GasBuffer means the option is unset. Gas and GasBuffer are
// mutually exclusive.
type TxOpts struct {
	Gas       *uint64
	GasBuffer *uint64
	From      string
}

type (
	// TxInfo represents the info regarding a mined transaction that will be
	// sent to the user.
	TxInfo struct {
		TxHash       string
		From         string
		To           string // Empty for contract creation.
		ContractAddr string // Set only for contract creation.
		GasLimit     uint64
		GasUsed      uint64
		BlockNumber  uint64
		Success      bool
	}

	// TxResult represents the outcome of one transaction in a batch. Exactly
	// one of Info and Error is meaningful.
	TxResult struct {
		Info  TxInfo
		Error APIError
	}

	// TransferReq represents a single value transfer in a batch request.
	TransferReq struct {
		To     string
		Amount string // Amount in ETH, as a decimal string.
	}
)

// NodeAPI represents the APIs that can be accessed in the context of a txnode.
//
// Each of the transacting APIs blocks until the transaction is mined or has
// failed. TransferBatch dispatches all transfers before waiting on any of
// them, and returns one result per request in the order of the requests.
type NodeAPI interface {
	Time() int64
	GetConfig() NodeConfig

	Transfer(ctx context.Context, to, amount string, opts TxOpts) (TxInfo, APIError)
	TransferBatch(ctx context.Context, reqs []TransferReq, opts TxOpts) []TxResult
	Call(ctx context.Context, to, data, amount string, opts TxOpts) (TxInfo, APIError)
	Deploy(ctx context.Context, code string, opts TxOpts) (TxInfo, APIError)

	Balance(ctx context.Context, addr string) (string, APIError)
	Receipt(ctx context.Context, txHash string) (TxInfo, APIError)
}

// APIError represents the error returned by the node APIs.
//
// Along with the error message, this error type assigns to each error
// an error category that describes how the error should be handled,
// an error code that identifies specific types of error and
// additional info that contains data related to the error as key value pairs.
type APIError interface {
	Category() ErrorCategory
	Code() ErrorCode
	Message() string
	AddInfo() interface{}
	Error() string
}

// ErrorCategory represents the category of the error, which describes how the
// error should be handled by the client.
type ErrorCategory int

const (
	// ClientError is caused by the errors in the request from the client. It
	// could be errors in arguments or errors in configuration provided by the
	// client to access the external systems or errors in the state of external
	// systems not managed by the node.
	//
	// To resolve this, the client should provide valid arguments, provide
	// correct configuration to access the external systems or fix the external
	// systems; and then retry.
	ClientError ErrorCategory = iota

	// ProtocolFatalError is caused when a transaction was submitted, but its
	// outcome is not the expected one. The transaction could still be mined
	// or could have been mined with a failure status.
	//
	// To resolve this, user should inspect the transaction by its hash
	// before deciding to send it again.
	ProtocolFatalError

	// InternalError is caused due to unintended behavior in the node software.
	//
	// To resolve this, user should manually inspect the error message and
	// handle it.
	InternalError
)

// String implements the stringer interface for ErrorCategory.
func (c ErrorCategory) String() string {
	return [...]string{
		"Client",
		"Protocol Fatal",
		"Internal",
	}[c]
}

// ErrorCode is a numeric code assigned to identify the specific type of error.
// The keys in the additional field is fixed for each error code.
type ErrorCode int

// Error code definitions.
const (
	ErrResourceNotFound  ErrorCode = 201
	ErrInvalidArgument   ErrorCode = 203
	ErrInvalidConfig     ErrorCode = 205
	ErrUnauthorized      ErrorCode = 207
	ErrEstimationFailed  ErrorCode = 208
	ErrSubmissionFailed  ErrorCode = 209
	ErrTxTimedOut        ErrorCode = 301
	ErrChainNotReachable ErrorCode = 302
	ErrTxReverted        ErrorCode = 303
	ErrUnknownInternal   ErrorCode = 401
)

type (
	// ErrInfoResourceNotFound represents the fields in the additional info for
	// ErrResourceNotFound.
	ErrInfoResourceNotFound struct {
		Type string
		ID   string
	}

	// ErrInfoInvalidArgument represents the fields in the additional info for
	// ErrInvalidArgument.
	ErrInfoInvalidArgument struct {
		Name        string
		Value       string
		Requirement string
	}

	// ErrInfoInvalidConfig represents the fields in the additional info for
	// ErrInvalidConfig.
	ErrInfoInvalidConfig struct {
		Name  string
		Value string
	}

	// ErrInfoUnauthorized represents the fields in the additional info for
	// ErrUnauthorized.
	ErrInfoUnauthorized struct {
		Address string
	}

	// ErrInfoEstimationFailed represents the fields in the additional info for
	// ErrEstimationFailed.
	ErrInfoEstimationFailed struct {
		From string
		To   string
	}

	// ErrInfoSubmissionFailed represents the fields in the additional info for
	// ErrSubmissionFailed.
	ErrInfoSubmissionFailed struct {
		From string
		To   string
		Gas  uint64
	}

	// ErrInfoTxTimedOut represents the fields in the additional info
	// for ErrTxTimedOut.
	ErrInfoTxTimedOut struct {
		TxType    string
		TxID      string
		TxTimeout string
	}

	// ErrInfoChainNotReachable represents the fields in the additional info
	// for ErrChainNotReachable.
	ErrInfoChainNotReachable struct {
		ChainURL string
	}

	// ErrInfoTxReverted represents the fields in the additional info
	// for ErrTxReverted.
	ErrInfoTxReverted struct {
		TxID     string
		GasLimit uint64
		GasUsed  uint64
	}
)
