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

package txnode_test

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/txnodetest"
)

var errTest = fmt.Errorf("const error for test")

type customError1 struct{ actualErr error }

func (c customError1) Error() string { return "custom error 1: " + c.actualErr.Error() }
func (c customError1) Unwrap() error { return c.actualErr }

type customError2 struct{ actualErr error }

func (c customError2) Error() string { return "custom error 2: " + c.actualErr.Error() }
func (c customError2) Unwrap() error { return c.actualErr }

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func Test_NewAPIErr(t *testing.T) {
	// Construct an error that contain an underlying custom error and error constant.
	// So that, they can be inspected using errors.(Is|As)
	err := errors.WithStack(customError1{
		actualErr: customError2{errTest},
	})

	category := txnode.InternalError
	code := txnode.ErrUnknownInternal
	apiErr := txnode.NewAPIErr(category, code, err, nil)

	txnodetest.AssertAPIError(t, apiErr, category, code, err.Error())

	wantErrMsg := "Internal 401:custom error 1: custom error 2: const error for test"
	stackTrace, ok := err.(stackTracer)
	require.True(t, ok)

	assert.Equal(t, wantErrMsg, apiErr.Error())
	assert.Equal(t, wantErrMsg, fmt.Sprintf("%v", apiErr))
	assert.Equal(t, fmt.Sprintf("%q", wantErrMsg), fmt.Sprintf("%q", apiErr))
	assert.Contains(t, fmt.Sprintf("%+v", apiErr), fmt.Sprintf("%+v", stackTrace))

	eCause := errors.Cause(apiErr)
	require.EqualError(t, eCause, err.Error())
	eUnwrap := errors.Unwrap(apiErr)
	require.EqualError(t, eUnwrap, err.Error())

	e1 := customError1{}
	require.True(t, errors.As(apiErr, &e1))
	e2 := customError2{}
	require.True(t, errors.As(apiErr, &e2))
	require.True(t, errors.Is(apiErr, errTest))
}

func Test_NewErrResourceNotFound(t *testing.T) {
	resourceType := txnode.ResourceType("any-type")
	resourceID := "any-id"
	wantMsg := fmt.Sprintf("cannot find %s with ID: %s", resourceType, resourceID)

	apiErr := txnode.NewAPIErrResourceNotFound(resourceType, resourceID)
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrResourceNotFound, wantMsg)
	txnodetest.AssertErrInfoResourceNotFound(t, apiErr.AddInfo(), resourceType, resourceID)
}

func Test_NewErrInvalidArgument(t *testing.T) {
	name := txnode.ArgumentName("any-name")
	value := "any-value"
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("invalid value for %s: %s: %v", name, value, err)

	apiErr := txnode.NewAPIErrInvalidArgument(err, name, value, "any-requirement")
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidArgument, wantMsg)
	txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), name, value)
}

func Test_NewErrInvalidConfig(t *testing.T) {
	name := "any-name"
	value := "any-value"
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("invalid value for %s: %s: %v", name, value, err)

	apiErr := txnode.NewAPIErrInvalidConfig(err, name, value)
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidConfig, wantMsg)
	txnodetest.AssertErrInfoInvalidConfig(t, apiErr.AddInfo(), name, value)
}

func Test_NewErrUnauthorized(t *testing.T) {
	address := "any-address"
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("cannot sign transactions for %s: %v", address, err)

	apiErr := txnode.NewAPIErrUnauthorized(err, address)
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrUnauthorized, wantMsg)
	txnodetest.AssertErrInfoUnauthorized(t, apiErr.AddInfo(), address)
}

func Test_NewErrEstimationFailed(t *testing.T) {
	from, to := "any-from", "any-to"
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("estimating gas for tx from %s to %s: %v", from, to, err)

	apiErr := txnode.NewAPIErrEstimationFailed(err, from, to)
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrEstimationFailed, wantMsg)
	txnodetest.AssertErrInfoEstimationFailed(t, apiErr.AddInfo(), from, to)
}

func Test_NewErrSubmissionFailed(t *testing.T) {
	from, to := "any-from", "any-to"
	gas := uint64(21000)
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("submitting tx from %s to %s with gas %d: %v", from, to, gas, err)

	apiErr := txnode.NewAPIErrSubmissionFailed(err, from, to, gas)
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrSubmissionFailed, wantMsg)
	txnodetest.AssertErrInfoSubmissionFailed(t, apiErr.AddInfo(), from, to, gas)
}

func Test_NewErrTxTimedOut(t *testing.T) {
	txType := "any-type"
	txID := "any-id"
	txTimeout := "10m1s"
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("timed out waiting for %s tx (ID:%s) to be mined in %s: %v", txType, txID, txTimeout, err)

	apiErr := txnode.NewAPIErrTxTimedOut(err, txType, txID, txTimeout)
	txnodetest.AssertAPIError(t, apiErr, txnode.ProtocolFatalError, txnode.ErrTxTimedOut, wantMsg)
	txnodetest.AssertErrInfoTxTimedOut(t, apiErr.AddInfo(), txType, txID, txTimeout)
}

func Test_NewErrChainNotReachable(t *testing.T) {
	chainURL := "any-chain-url"
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("chain not reachable at URL %s: %v", chainURL, err)

	apiErr := txnode.NewAPIErrChainNotReachable(err, chainURL)
	txnodetest.AssertAPIError(t, apiErr, txnode.ProtocolFatalError, txnode.ErrChainNotReachable, wantMsg)
	txnodetest.AssertErrInfoChainNotReachable(t, apiErr.AddInfo(), chainURL)
}

func Test_NewErrTxReverted(t *testing.T) {
	txID := "any-id"
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("tx (ID:%s) was mined with failure status, used %d of %d gas: %v", txID, 100, 200, err)

	apiErr := txnode.NewAPIErrTxReverted(err, txID, 200, 100)
	txnodetest.AssertAPIError(t, apiErr, txnode.ProtocolFatalError, txnode.ErrTxReverted, wantMsg)
	txnodetest.AssertErrInfoTxReverted(t, apiErr.AddInfo(), txID, 200)
}

func Test_NewErrUnknownInternal(t *testing.T) {
	err := errors.New("any-error")
	wantMsg := fmt.Sprintf("unknown internal error: %v", err)

	apiErr := txnode.NewAPIErrUnknownInternal(err)
	txnodetest.AssertAPIError(t, apiErr, txnode.InternalError, txnode.ErrUnknownInternal, wantMsg)
}

func Test_ErrorCategory_String(t *testing.T) {
	assert.Equal(t, "Client", txnode.ClientError.String())
	assert.Equal(t, "Protocol Fatal", txnode.ProtocolFatalError.String())
	assert.Equal(t, "Internal", txnode.InternalError.String())
}

func Test_APIErrAsMap(t *testing.T) {
	method := "test method"
	apiErr := txnode.NewAPIErrUnknownInternal(errors.New("any-error"))
	errAsMap := txnode.APIErrAsMap(method, apiErr)
	assert.Equal(t, errAsMap, map[string]interface{}{
		"method":   method,
		"category": txnode.InternalError.String(),
		"code":     txnode.ErrUnknownInternal,
	})
}
