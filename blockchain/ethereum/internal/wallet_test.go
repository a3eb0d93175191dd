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

package internal_test

import (
	"math/big"
	"math/rand"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/ethereumtest"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/internal"
)

func Test_AccountBackend_Interface(t *testing.T) {
	assert.Implements(t, (*txnode.AccountBackend)(nil), new(internal.AccountBackend))
}

func Test_WalletBackend_NewAccountBackend(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	wb := ethereumtest.NewTestWalletBackend()
	setup := ethereumtest.NewWalletSetupT(t, rng, 2)

	t.Run("happy", func(t *testing.T) {
		ab, err := wb.NewAccountBackend(setup.KeystorePath, "", "")
		require.NoError(t, err)
		assert.Contains(t, setup.Accs, ab.DefaultAccount())
		assert.ElementsMatch(t, setup.Accs, ab.Accounts())
	})
	t.Run("happy_default_account", func(t *testing.T) {
		ab, err := wb.NewAccountBackend(setup.KeystorePath, "", setup.Accs[1].Hex())
		require.NoError(t, err)
		assert.Equal(t, setup.Accs[1], ab.DefaultAccount())
	})
	t.Run("default_account_not_in_keystore", func(t *testing.T) {
		ab, err := wb.NewAccountBackend(setup.KeystorePath, "", ethereumtest.NewRandomAddress(rng).Hex())
		assert.Error(t, err)
		assert.Nil(t, ab)
	})
	t.Run("invalid_default_account", func(t *testing.T) {
		ab, err := wb.NewAccountBackend(setup.KeystorePath, "", "invalid-addr")
		assert.Error(t, err)
		assert.Nil(t, ab)
	})
	t.Run("invalid_pwd", func(t *testing.T) {
		ab, err := wb.NewAccountBackend(setup.KeystorePath, "invalid-pwd", "")
		assert.Error(t, err)
		assert.Nil(t, ab)
	})
	t.Run("invalid_keystore_path", func(t *testing.T) {
		ab, err := wb.NewAccountBackend("invalid-ks-path", "", "")
		assert.Error(t, err)
		assert.Nil(t, ab)
	})
	t.Run("empty_keystore", func(t *testing.T) {
		emptyDir := t.TempDir()
		ab, err := wb.NewAccountBackend(emptyDir, "", "")
		assert.Error(t, err)
		assert.Nil(t, ab)
		_, statErr := os.Stat(emptyDir)
		assert.NoError(t, statErr)
	})
}

func Test_AccountBackend_Authorize(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	setup := ethereumtest.NewWalletSetupT(t, rng, 1)
	chainID := big.NewInt(ethereumtest.ChainID)

	t.Run("happy", func(t *testing.T) {
		auth, err := setup.Accounts.Authorize(setup.Accs[0])
		require.NoError(t, err)
		assert.Equal(t, setup.Accs[0], auth.Address())

		to := ethereumtest.NewRandomAddress(rng)
		tx := types.NewTx(&types.LegacyTx{Nonce: 1, Gas: 21000, GasPrice: big.NewInt(1), To: &to, Value: big.NewInt(1)})
		signedTx, err := auth.SignTx(tx, chainID)
		require.NoError(t, err)

		sender, err := types.Sender(types.LatestSignerForChainID(chainID), signedTx)
		require.NoError(t, err)
		assert.Equal(t, setup.Accs[0], sender)
	})
	t.Run("multiple_calls", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			auth, err := setup.Accounts.Authorize(setup.Accs[0])
			assert.NoError(t, err)
			assert.NotNil(t, auth)
		}
	})
	t.Run("account_not_present", func(t *testing.T) {
		auth, err := setup.Accounts.Authorize(ethereumtest.NewRandomAddress(rng))
		assert.Error(t, err)
		assert.Nil(t, auth)
	})
}

func Test_ParseAddr(t *testing.T) {
	addr := common.HexToAddress("0x8450c0055cB180C7C37A25866132A740b812937B")

	for _, str := range []string{
		"0x8450c0055cB180C7C37A25866132A740b812937B",
		"0x8450c0055cb180c7c37a25866132a740b812937b",
		"8450c0055cb180c7c37a25866132a740b812937b",
	} {
		got, err := internal.ParseAddr(str)
		require.NoError(t, err, str)
		assert.Equal(t, addr, got)
	}

	for _, str := range []string{"", "0x", "0x1234", "invalid-addr", "0x8450c0055cb180c7c37a25866132a740b812937bff"} {
		_, err := internal.ParseAddr(str)
		assert.Error(t, err, str)
	}
}
