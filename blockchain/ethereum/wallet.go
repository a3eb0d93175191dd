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

package ethereum

import (
	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/internal"
)

// NewAccountBackend opens the keystore at the given path, unlocks all the
// keys in it and returns an account backend that can sign transactions for
// these accounts.
//
// If defaultAddr is empty, the first account in the keystore is the default
// account.
func NewAccountBackend(keystorePath, password, defaultAddr string) (txnode.AccountBackend, error) {
	wb := &internal.WalletBackend{EncParams: internal.ScryptParams{
		N: internal.StandardScryptN,
		P: internal.StandardScryptP,
	}}
	ab, err := wb.NewAccountBackend(keystorePath, password, defaultAddr)
	if err != nil {
		return nil, err
	}
	return ab, nil
}
