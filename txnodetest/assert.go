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

package txnodetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
)

// AssertAPIError tests if the passed error contains expected category, code
// and phrases in the message.
func AssertAPIError(t *testing.T, e txnode.APIError, categ txnode.ErrorCategory, code txnode.ErrorCode,
	msgs ...string) {
	t.Helper()

	require.Error(t, e)
	assert.Equal(t, categ, e.Category())
	assert.Equal(t, code, e.Code())
	for _, msg := range msgs {
		assert.Contains(t, e.Message(), msg)
	}
}

// AssertErrInfoResourceNotFound tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoResourceNotFound(t *testing.T, info interface{}, resourceType txnode.ResourceType, id string) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoResourceNotFound)
	require.True(t, ok)
	assert.Equal(t, string(resourceType), addInfo.Type)
	assert.Equal(t, id, addInfo.ID)
}

// AssertErrInfoInvalidArgument tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoInvalidArgument(t *testing.T, info interface{}, name txnode.ArgumentName, value string) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoInvalidArgument)
	require.True(t, ok)
	assert.Equal(t, string(name), addInfo.Name)
	assert.Equal(t, value, addInfo.Value)
	t.Log("requirement:", addInfo.Requirement)
}

// AssertErrInfoInvalidConfig tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoInvalidConfig(t *testing.T, info interface{}, name, value string) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoInvalidConfig)
	require.True(t, ok)
	assert.Equal(t, name, addInfo.Name)
	assert.Equal(t, value, addInfo.Value)
}

// AssertErrInfoUnauthorized tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoUnauthorized(t *testing.T, info interface{}, address string) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoUnauthorized)
	require.True(t, ok)
	assert.Equal(t, address, addInfo.Address)
}

// AssertErrInfoEstimationFailed tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoEstimationFailed(t *testing.T, info interface{}, from, to string) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoEstimationFailed)
	require.True(t, ok)
	assert.Equal(t, from, addInfo.From)
	assert.Equal(t, to, addInfo.To)
}

// AssertErrInfoSubmissionFailed tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoSubmissionFailed(t *testing.T, info interface{}, from, to string, gas uint64) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoSubmissionFailed)
	require.True(t, ok)
	assert.Equal(t, from, addInfo.From)
	assert.Equal(t, to, addInfo.To)
	assert.Equal(t, gas, addInfo.Gas)
}

// AssertErrInfoTxTimedOut tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoTxTimedOut(t *testing.T, info interface{}, txType, txID, txTimeout string) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoTxTimedOut)
	require.True(t, ok)
	assert.Equal(t, txType, addInfo.TxType)
	assert.Equal(t, txID, addInfo.TxID)
	assert.Equal(t, txTimeout, addInfo.TxTimeout)
}

// AssertErrInfoChainNotReachable tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoChainNotReachable(t *testing.T, info interface{}, chainURL string) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoChainNotReachable)
	require.True(t, ok)
	assert.Equal(t, chainURL, addInfo.ChainURL)
}

// AssertErrInfoTxReverted tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoTxReverted(t *testing.T, info interface{}, txID string, gasLimit uint64) {
	t.Helper()

	addInfo, ok := info.(txnode.ErrInfoTxReverted)
	require.True(t, ok)
	assert.Equal(t, txID, addInfo.TxID)
	assert.Equal(t, gasLimit, addInfo.GasLimit)
	assert.LessOrEqual(t, addInfo.GasUsed, addInfo.GasLimit)
}
