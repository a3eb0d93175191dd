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
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperledger-labs/txnode"
)

// PendingTx is a fully described but not yet sent transaction. It is
// immutable: accessors return copies and the With* methods return a
// modified copy.
//
// A PendingTx without a target address creates a contract. It can be
// dispatched any number of times, each dispatch creates a new transaction.
type PendingTx struct {
	to            *common.Address
	data          []byte
	value         *big.Int
	defaultSender *common.Address
}

// NewTransfer returns a PendingTx that transfers the value (in Wei) to the
// given address.
func NewTransfer(to common.Address, value *big.Int) PendingTx {
	return NewCall(to, nil, value)
}

// NewCall returns a PendingTx that calls the contract at the given address
// with the given input data. Value can be nil.
func NewCall(to common.Address, data []byte, value *big.Int) PendingTx {
	return PendingTx{
		to:    &to,
		data:  common.CopyBytes(data),
		value: copyValue(value),
	}
}

// NewDeploy returns a PendingTx that creates a contract with the given init
// code. Value can be nil.
func NewDeploy(code []byte, value *big.Int) PendingTx {
	return PendingTx{
		data:  common.CopyBytes(code),
		value: copyValue(value),
	}
}

// WithDefaultSender returns a copy of the transaction that is sent from the
// given account, unless a sender is specified when dispatching it.
//
// If no default sender is set, the default account of the executor is used.
func (p PendingTx) WithDefaultSender(from common.Address) PendingTx {
	p.defaultSender = &from
	return p
}

// To returns the target address. It is nil for contract creation.
func (p PendingTx) To() *common.Address {
	if p.to == nil {
		return nil
	}
	to := *p.to
	return &to
}

// Data returns a copy of the input data (or the init code for contract
// creation).
func (p PendingTx) Data() []byte { return common.CopyBytes(p.data) }

// Value returns a copy of the value in Wei. It is never nil.
func (p PendingTx) Value() *big.Int { return copyValue(p.value) }

// DefaultSender returns the default sender of this transaction, if any.
func (p PendingTx) DefaultSender() (common.Address, bool) {
	if p.defaultSender == nil {
		return common.Address{}, false
	}
	return *p.defaultSender, true
}

// IsDeploy reports whether the transaction creates a contract.
func (p PendingTx) IsDeploy() bool { return p.to == nil }

// String implements the stringer interface for PendingTx.
func (p PendingTx) String() string {
	if p.IsDeploy() {
		return fmt.Sprintf("deploy(%d bytes, value %s)", len(p.data), p.Value())
	}
	return fmt.Sprintf("call(%s, %d bytes, value %s)", p.to.Hex(), len(p.data), p.Value())
}

func (p PendingTx) request(from common.Address, gas uint64) txnode.TxRequest {
	return txnode.TxRequest{
		From:  from,
		To:    p.To(),
		Value: p.Value(),
		Data:  p.Data(),
		Gas:   gas,
	}
}

func copyValue(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
