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

package ethereum_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode/blockchain/ethereum"
)

func Test_ParseTxHash(t *testing.T) {
	hash := common.HexToHash("0x6a3d1c3f1b0b3a9e3e0fb6bb4e4b5a1c4b8f7b5f4c9a2f1e0d3c2b1a09080706")

	got, err := ethereum.ParseTxHash(hash.Hex())
	require.NoError(t, err)
	assert.Equal(t, hash, got)

	for _, str := range []string{"", "0x", "0x1234", "6a3d1c3f1b0b3a9e3e0fb6bb4e4b5a1c4b8f7b5f4c9a2f1e0d3c2b1a09080706", "0xzz"} {
		_, err := ethereum.ParseTxHash(str)
		assert.Error(t, err, str)
	}
}

func Test_ParseData(t *testing.T) {
	got, err := ethereum.ParseData("0x0102ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0xff}, got)

	got, err = ethereum.ParseData("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ethereum.ParseData("0102")
	assert.Error(t, err)
	_, err = ethereum.ParseData("0x123")
	assert.Error(t, err)
}

func Test_ParseAddr(t *testing.T) {
	addr, err := ethereum.ParseAddr("0xc4bA4815c82727554e4c12A07a139b74c6742322")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xc4ba4815c82727554e4c12a07a139b74c6742322"), addr)

	_, err = ethereum.ParseAddr("0xc4bA4815")
	assert.Error(t, err)
}

func Test_NewAccountBackend_InvalidPath(t *testing.T) {
	ab, err := ethereum.NewAccountBackend("invalid-ks-path", "", "")
	assert.Error(t, err)
	assert.Nil(t, ab)
}
