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
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrNilHandle is returned as the outcome for nil handles passed to AwaitAll.
var ErrNilHandle = errors.New("nil handle")

// ConfigurationError indicates that the options for a transaction are
// invalid. It is returned before any interaction with the blockchain.
type ConfigurationError struct {
	Option string
	Reason string
}

// Error implements error interface.
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid tx options (%s): %s", e.Option, e.Reason)
}

// NewConfigurationError constructs and returns a ConfigurationError.
func NewConfigurationError(option, reason string) error {
	return errors.WithStack(ConfigurationError{
		Option: option,
		Reason: reason,
	})
}

// EstimationError indicates that the blockchain node could not estimate the
// gas for a transaction. Usually, this means the transaction would fail.
// Nothing was submitted.
type EstimationError struct {
	From common.Address
	To   *common.Address
	err  error
}

// Error implements error interface.
func (e EstimationError) Error() string {
	return fmt.Sprintf("estimating gas for tx from %s to %s: %v", e.From.Hex(), toString(e.To), e.err)
}

// Unwrap returns the original error.
func (e EstimationError) Unwrap() error {
	return e.err
}

// NewEstimationError constructs and returns an EstimationError.
func NewEstimationError(from common.Address, to *common.Address, err error) error {
	return errors.WithStack(EstimationError{
		From: from,
		To:   to,
		err:  err,
	})
}

// AuthorizationError indicates that no authorizer is available for the
// sender. Nothing was submitted.
type AuthorizationError struct {
	Address common.Address
	err     error
}

// Error implements error interface.
func (e AuthorizationError) Error() string {
	return fmt.Sprintf("no authorizer for sender %s: %v", e.Address.Hex(), e.err)
}

// Unwrap returns the original error.
func (e AuthorizationError) Unwrap() error {
	return e.err
}

// NewAuthorizationError constructs and returns an AuthorizationError.
func NewAuthorizationError(addr common.Address, err error) error {
	return errors.WithStack(AuthorizationError{
		Address: addr,
		err:     err,
	})
}

// SubmissionError indicates that the transaction was rejected by the
// blockchain node or could not be signed.
type SubmissionError struct {
	From common.Address
	To   *common.Address
	Gas  uint64
	err  error
}

// Error implements error interface.
func (e SubmissionError) Error() string {
	return fmt.Sprintf("submitting tx from %s to %s with gas %d: %v", e.From.Hex(), toString(e.To), e.Gas, e.err)
}

// Unwrap returns the original error.
func (e SubmissionError) Unwrap() error {
	return e.err
}

// NewSubmissionError constructs and returns a SubmissionError.
func NewSubmissionError(from common.Address, to *common.Address, gas uint64, err error) error {
	return errors.WithStack(SubmissionError{
		From: from,
		To:   to,
		Gas:  gas,
		err:  err,
	})
}

// InclusionTimeoutError indicates that the transaction was submitted, but
// was not observed to be mined before the wait ended. The transaction could
// still be mined later.
//
// Timeout is zero when the wait was ended by the caller's context.
type InclusionTimeoutError struct {
	TxHash  common.Hash
	Timeout time.Duration
	err     error
}

// Error implements error interface.
func (e InclusionTimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("tx %s not mined within %s: %v", e.TxHash.Hex(), e.Timeout, e.err)
	}
	return fmt.Sprintf("tx %s not observed to be mined: %v", e.TxHash.Hex(), e.err)
}

// Unwrap returns the original error.
func (e InclusionTimeoutError) Unwrap() error {
	return e.err
}

// NewInclusionTimeoutError constructs and returns an InclusionTimeoutError.
func NewInclusionTimeoutError(txHash common.Hash, timeout time.Duration, err error) error {
	return errors.WithStack(InclusionTimeoutError{
		TxHash:  txHash,
		Timeout: timeout,
		err:     err,
	})
}

// RevertedError indicates that the transaction was mined with a failure
// status. The receipt is included for inspection.
type RevertedError struct {
	Receipt Receipt
}

// Error implements error interface.
func (e RevertedError) Error() string {
	return fmt.Sprintf("tx %s reverted in block %d, used %d of %d gas",
		e.Receipt.TxHash.Hex(), e.Receipt.BlockNumber, e.Receipt.GasUsed, e.Receipt.GasLimit)
}

// NewRevertedError constructs and returns a RevertedError.
func NewRevertedError(r Receipt) error {
	return errors.WithStack(RevertedError{Receipt: r})
}

func toString(addr *common.Address) string {
	if addr == nil {
		return "<contract creation>"
	}
	return addr.Hex()
}
