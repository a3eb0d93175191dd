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
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/internal"
)

// NewChainBackend initializes a connection to the blockchain node at the
// given url and returns a chain backend for sending transactions.
//
// If chainID is zero, it is read from the blockchain node.
func NewChainBackend(url string, chainID int, chainConnTimeout, onChainTxTimeout time.Duration) (
	txnode.ChainBackend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), chainConnTimeout)
	defer cancel()
	ethereumBackend, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to ethereum node at "+url)
	}

	id := big.NewInt(int64(chainID))
	if chainID == 0 {
		if id, err = ethereumBackend.ChainID(ctx); err != nil {
			ethereumBackend.Close()
			return nil, errors.Wrap(err, "reading chain id from ethereum node at "+url)
		}
	}
	return internal.NewChainBackend(ethereumBackend, id, onChainTxTimeout), nil
}

// ParseAddr parses the ethereum address from its hexadecimal representation,
// optionally prefixed by "0x".
func ParseAddr(str string) (common.Address, error) {
	return internal.ParseAddr(str)
}

// ParseTxHash parses the transaction hash from its hexadecimal representation
// prefixed by "0x".
func ParseTxHash(str string) (common.Hash, error) {
	b, err := hexutil.Decode(str)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "parsing tx hash")
	}
	if len(b) != common.HashLength {
		return common.Hash{}, errors.Errorf("parsing tx hash: got %d bytes, want %d", len(b), common.HashLength)
	}
	return common.BytesToHash(b), nil
}

// ParseData parses the hexadecimal representation of the input data for a
// transaction, prefixed by "0x". Empty string is parsed as no data.
func ParseData(str string) ([]byte, error) {
	if str == "" {
		return nil, nil
	}
	b, err := hexutil.Decode(str)
	return b, errors.Wrap(err, "parsing tx data")
}
