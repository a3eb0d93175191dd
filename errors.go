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
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// apiError is the implementation of APIError used across the node.
//
// It implements Cause() and Unwrap() methods that return the underlying
// error, which can further be unwrapped, inspected.
//
// It also implements a custom Formatter, so that the stack trace of
// underlying error is printed when using "%+v" verb.
type apiError struct {
	category ErrorCategory
	code     ErrorCode
	err      error
	addInfo  interface{}
}

// Category returns the error category for this API Error.
func (e apiError) Category() ErrorCategory { return e.category }

// Code returns the error code for this API Error.
func (e apiError) Code() ErrorCode { return e.code }

// Message returns the error message for this API Error.
func (e apiError) Message() string { return e.err.Error() }

// AddInfo returns the additional info for this API Error.
func (e apiError) AddInfo() interface{} {
	return e.addInfo
}

// Error implement the error interface for API error.
func (e apiError) Error() string {
	return fmt.Sprintf("%s %d:%v", e.Category(), e.Code(), e.Message())
}

func (e apiError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s %d:%+v", e.Category(), e.Code(), e.err)
			return
		}
		fallthrough
	case 's':
		//nolint: errcheck,gosec	// Error of ioString need not be checked.
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e apiError) Cause() error { return e.err }

func (e apiError) Unwrap() error { return e.err }

// NewAPIErr returns an APIErr with given parameters.
//
// For most use cases, call the error code specific constructor functions.
func NewAPIErr(category ErrorCategory, code ErrorCode, err error, addInfo interface{}) APIError {
	return apiError{
		category: category,
		code:     code,
		err:      err,
		addInfo:  addInfo,
	}
}

// ResourceType is used to enumerate valid resource types in ResourceNotFound
// errors.
//
// The enumeration of valid constants should be defined in the package using
// the error constructors.
type ResourceType string

// NewAPIErrResourceNotFound returns an ErrResourceNotFound API Error with
// the given resource type and ID.
func NewAPIErrResourceNotFound(resourceType ResourceType, resourceID string) APIError {
	message := fmt.Sprintf("cannot find %s with ID: %s", resourceType, resourceID)
	return NewAPIErr(
		ClientError,
		ErrResourceNotFound,
		errors.New(message),
		ErrInfoResourceNotFound{
			Type: string(resourceType),
			ID:   resourceID,
		},
	)
}

// ArgumentName type is used enumerate valid argument names for use
// InvalidArgument error.
//
// The enumeration of valid constants should be defined in the package using
// the error constructors.
type ArgumentName string

// NewAPIErrInvalidArgument returns an ErrInvalidArgument API Error with the given
// argument name and value.
func NewAPIErrInvalidArgument(err error, name ArgumentName, value, requirement string) APIError {
	message := fmt.Sprintf("invalid value for %s: %s", name, value)
	return NewAPIErr(
		ClientError,
		ErrInvalidArgument,
		errors.WithMessage(err, message),
		ErrInfoInvalidArgument{
			Name:        string(name),
			Value:       value,
			Requirement: requirement,
		},
	)
}

// NewAPIErrInvalidConfig returns an ErrInvalidConfig, API Error with the given
// config name and value.
func NewAPIErrInvalidConfig(err error, name, value string) APIError {
	message := fmt.Sprintf("invalid value for %s: %s", name, value)
	return NewAPIErr(
		ClientError,
		ErrInvalidConfig,
		errors.WithMessage(err, message),
		ErrInfoInvalidConfig{
			Name:  name,
			Value: value,
		},
	)
}

// NewAPIErrUnauthorized returns an ErrUnauthorized API Error for the given
// sender address.
func NewAPIErrUnauthorized(err error, address string) APIError {
	message := fmt.Sprintf("cannot sign transactions for %s", address)
	return NewAPIErr(
		ClientError,
		ErrUnauthorized,
		errors.WithMessage(err, message),
		ErrInfoUnauthorized{
			Address: address,
		},
	)
}

// NewAPIErrEstimationFailed returns an ErrEstimationFailed API Error for a
// transaction between the given addresses.
func NewAPIErrEstimationFailed(err error, from, to string) APIError {
	message := fmt.Sprintf("estimating gas for tx from %s to %s", from, to)
	return NewAPIErr(
		ClientError,
		ErrEstimationFailed,
		errors.WithMessage(err, message),
		ErrInfoEstimationFailed{
			From: from,
			To:   to,
		},
	)
}

// NewAPIErrSubmissionFailed returns an ErrSubmissionFailed API Error for a
// transaction rejected by the blockchain node.
func NewAPIErrSubmissionFailed(err error, from, to string, gas uint64) APIError {
	message := fmt.Sprintf("submitting tx from %s to %s with gas %d", from, to, gas)
	return NewAPIErr(
		ClientError,
		ErrSubmissionFailed,
		errors.WithMessage(err, message),
		ErrInfoSubmissionFailed{
			From: from,
			To:   to,
			Gas:  gas,
		},
	)
}

// NewAPIErrTxTimedOut returns an ErrTxTimedOut API Error with the given
// error message.
func NewAPIErrTxTimedOut(err error, txType, txID, txTimeout string) APIError {
	message := fmt.Sprintf("timed out waiting for %s tx (ID:%s) to be mined in %s", txType, txID, txTimeout)
	return NewAPIErr(
		ProtocolFatalError,
		ErrTxTimedOut,
		errors.WithMessage(err, message),
		ErrInfoTxTimedOut{
			TxType:    txType,
			TxID:      txID,
			TxTimeout: txTimeout,
		},
	)
}

// NewAPIErrChainNotReachable returns an ErrChainNotReachable API Error
// with the given error message.
func NewAPIErrChainNotReachable(err error, chainURL string) APIError {
	message := fmt.Sprintf("chain not reachable at URL %s", chainURL)
	return NewAPIErr(
		ProtocolFatalError,
		ErrChainNotReachable,
		errors.WithMessage(err, message),
		ErrInfoChainNotReachable{
			ChainURL: chainURL,
		},
	)
}

// NewAPIErrTxReverted returns an ErrTxReverted API Error for a transaction
// that was mined with a failure status.
func NewAPIErrTxReverted(err error, txID string, gasLimit, gasUsed uint64) APIError {
	message := fmt.Sprintf("tx (ID:%s) was mined with failure status, used %d of %d gas", txID, gasUsed, gasLimit)
	return NewAPIErr(
		ProtocolFatalError,
		ErrTxReverted,
		errors.WithMessage(err, message),
		ErrInfoTxReverted{
			TxID:     txID,
			GasLimit: gasLimit,
			GasUsed:  gasUsed,
		},
	)
}

// NewAPIErrUnknownInternal returns an ErrUnknownInternal API Error with the given
// error message.
func NewAPIErrUnknownInternal(err error) APIError {
	message := "unknown internal error"
	return NewAPIErr(
		InternalError,
		ErrUnknownInternal,
		errors.WithMessage(err, message),
		nil,
	)
}

// APIErrAsMap returns a map containing entries for the method and each of
// the fields in the api error (except message). The map can be directly passed
// to the logger for logging the data in a structured format.
func APIErrAsMap(method string, err APIError) map[string]interface{} {
	return map[string]interface{}{
		"method":   method,
		"category": err.Category().String(),
		"code":     err.Code(),
	}
}
