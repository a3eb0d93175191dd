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

package internal

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/txnode"
)

// Standard encryption parameters should be uses for real wallets. Using these parameters will
// cause the decryption to use 256MB of RAM and takes approx 1s on a modern processor.
//
// Weak encryption parameters should be used for test wallets. Using these parameters will
// cause the can be decrypted and unlocked faster.
const (
	StandardScryptN = keystore.StandardScryptN
	StandardScryptP = keystore.StandardScryptP
	WeakScryptN     = 2
	WeakScryptP     = 1
)

// WalletBackend provides ethereum specific wallet backend functionality.
type WalletBackend struct {
	EncParams ScryptParams
}

// ScryptParams defines the parameters for scrypt encryption algorithm, used or storage encryption of keys.
//
// Weak values should be used only for testing purposes (enables faster unlockcing). Use standard values otherwise.
type ScryptParams struct {
	N, P int
}

// NewAccountBackend opens the keystore at the given path and unlocks all the
// keys in it with the given password.
//
// If defaultAddr is empty, the first account in the keystore is used as the
// default account. Else, it must be one of the accounts in the keystore.
func (wb *WalletBackend) NewAccountBackend(keystorePath, password, defaultAddr string) (*AccountBackend, error) {
	if _, err := os.Stat(keystorePath); os.IsNotExist(err) {
		return nil, errors.Wrap(err, "initializing account backend, cannot find keystore directory")
	}
	ks := keystore.NewKeyStore(keystorePath, wb.EncParams.N, wb.EncParams.P)

	var defaultAcc common.Address
	if defaultAddr != "" {
		var err error
		if defaultAcc, err = ParseAddr(defaultAddr); err != nil {
			return nil, errors.WithMessage(err, "default account")
		}
	}
	return NewAccountBackend(ks, password, defaultAcc)
}

// ParseAddr parses the ethereum address from the given string. It be the hexadecimal
// representation of the address, optionally prefixed by "0x".
// It can be all upper or all lower or mixed case. All of them will produce identical
// result.
func ParseAddr(str string) (common.Address, error) {
	if !common.IsHexAddress(str) {
		return common.Address{}, errors.Errorf("parsing address: %q is not a 20 byte hex string", str)
	}
	return common.HexToAddress(str), nil
}

// AccountBackend provides the authorizers for the accounts in an ethereum
// keystore.
type AccountBackend struct {
	ks         *keystore.KeyStore
	defaultAcc common.Address
}

// NewAccountBackend unlocks all the keys in the keystore with the given
// password. If defaultAcc is the zero address, the first account in the
// keystore is used as the default account.
func NewAccountBackend(ks *keystore.KeyStore, password string, defaultAcc common.Address) (
	*AccountBackend, error) {
	accs := ks.Accounts()
	if len(accs) == 0 {
		return nil, errors.New("no accounts in keystore")
	}
	for _, acc := range accs {
		if err := ks.Unlock(acc, password); err != nil {
			return nil, errors.Wrap(err, "unlocking key for "+acc.Address.Hex())
		}
	}

	if defaultAcc == (common.Address{}) {
		defaultAcc = accs[0].Address
	} else if !ks.HasAddress(defaultAcc) {
		return nil, errors.Errorf("default account %s not found in keystore", defaultAcc.Hex())
	}
	return &AccountBackend{ks: ks, defaultAcc: defaultAcc}, nil
}

// DefaultAccount returns the address used as sender when none is specified.
func (ab *AccountBackend) DefaultAccount() common.Address {
	return ab.defaultAcc
}

// Authorize returns an authorizer for the given address, if its key is in
// the keystore.
func (ab *AccountBackend) Authorize(addr common.Address) (txnode.Authorizer, error) {
	if !ab.ks.HasAddress(addr) {
		return nil, errors.Errorf("no key for %s in keystore", addr.Hex())
	}
	return &keystoreAuthorizer{ks: ab.ks, acc: accounts.Account{Address: addr}}, nil
}

// Accounts returns the addresses of all the accounts in the keystore.
func (ab *AccountBackend) Accounts() []common.Address {
	accs := ab.ks.Accounts()
	addrs := make([]common.Address, len(accs))
	for i := range accs {
		addrs[i] = accs[i].Address
	}
	return addrs
}

type keystoreAuthorizer struct {
	ks  *keystore.KeyStore
	acc accounts.Account
}

func (a *keystoreAuthorizer) Address() common.Address { return a.acc.Address }

func (a *keystoreAuthorizer) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signedTx, err := a.ks.SignTx(a.acc, tx, chainID)
	return signedTx, errors.Wrap(err, "signing tx with keystore")
}
