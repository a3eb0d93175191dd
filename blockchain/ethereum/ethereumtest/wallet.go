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

package ethereumtest

import (
	"crypto/ecdsa"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/internal"
)

// NewTestWalletBackend initializes an ethereum specific wallet backend with weak encryption parameters.
func NewTestWalletBackend() *internal.WalletBackend {
	return &internal.WalletBackend{EncParams: internal.ScryptParams{
		N: internal.WeakScryptN,
		P: internal.WeakScryptP,
	}}
}

// WalletSetup can generate any number of keys for testing. To enable faster unlocking of the keys, it uses
// weak encryption parameters for the storage encryption of the keys.
type WalletSetup struct {
	KeystorePath string
	Keystore     *keystore.KeyStore
	Keys         []*ecdsa.PrivateKey
	Accs         []common.Address
	Accounts     txnode.AccountBackend
}

// NewWalletSetupT is the test friendly version of NewWalletSetup.
// It uses the passed testing.T to handle the errors and registers the cleanup functions on it.
func NewWalletSetupT(t *testing.T, rng *rand.Rand, n uint) *WalletSetup {
	ws, err := NewWalletSetup(rng, n)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := os.RemoveAll(ws.KeystorePath); err != nil {
			t.Log("error in cleanup - ", err)
		}
	})
	return ws
}

// NewWalletSetup initializes a keystore with n accounts. Empty password string and weak encrytion parameters are
// used. The keys are derived from the given randomness, so the same seed always produces the same accounts.
func NewWalletSetup(rng *rand.Rand, n uint) (*WalletSetup, error) {
	if n == 0 {
		return nil, errors.New("at least one account is required")
	}
	ksPath, err := os.MkdirTemp("", "txnode-test-keystore-*")
	if err != nil {
		return nil, errors.Wrap(err, "creating temp directory for keystore")
	}
	ks := keystore.NewKeyStore(ksPath, internal.WeakScryptN, internal.WeakScryptP)

	keys := make([]*ecdsa.PrivateKey, n)
	accs := make([]common.Address, n)
	for i := range keys {
		keys[i] = NewRandomKey(rng)
		acc, err := ks.ImportECDSA(keys[i], "")
		if err != nil {
			return nil, errors.Wrap(err, "importing key into keystore")
		}
		accs[i] = acc.Address
	}

	accounts, err := internal.NewAccountBackend(ks, "", accs[0])
	if err != nil {
		return nil, err
	}
	return &WalletSetup{
		KeystorePath: ksPath,
		Keystore:     ks,
		Keys:         keys,
		Accs:         accs,
		Accounts:     accounts,
	}, nil
}

// NewRandomKey generates a private key from the given randomness.
func NewRandomKey(rng *rand.Rand) *ecdsa.PrivateKey {
	b := make([]byte, 32)
	for {
		rng.Read(b)
		if key, err := crypto.ToECDSA(b); err == nil {
			return key
		}
	}
}

// NewRandomAddress generates a random address. It generates the address only as a byte array.
// Hence it does not generate any public or private keys corresponding to the address.
func NewRandomAddress(rng *rand.Rand) common.Address {
	var a common.Address
	rng.Read(a[:])
	return a
}

// GanacheAccountArgs returns the "--account" arguments for starting ganache-cli with the accounts of a
// wallet setup generated from the given seed, each funded with the given balance in Wei.
func GanacheAccountArgs(seed int64, n uint, balance string) []string {
	rng := rand.New(rand.NewSource(seed))
	args := make([]string, n)
	for i := range args {
		key := NewRandomKey(rng)
		args[i] = fmt.Sprintf("--account=%s,%s", hexutil.Encode(crypto.FromECDSA(key)), balance)
	}
	return args
}
