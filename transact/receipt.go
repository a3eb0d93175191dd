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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Receipt holds the outcome of a mined transaction.
type Receipt struct {
	TxHash          common.Hash
	From            common.Address
	To              *common.Address // Nil for contract creation.
	ContractAddress *common.Address // Set only for contract creation.
	GasLimit        uint64
	GasUsed         uint64
	BlockNumber     uint64
	Status          bool // True if the transaction was successful.
}

// NewReceipt combines the receipt returned by the blockchain with the sender,
// target and gas limit of the transaction.
func NewReceipt(r *types.Receipt, from common.Address, to *common.Address, gasLimit uint64) Receipt {
	receipt := Receipt{
		TxHash:   r.TxHash,
		From:     from,
		To:       to,
		GasLimit: gasLimit,
		GasUsed:  r.GasUsed,
		Status:   r.Status == types.ReceiptStatusSuccessful,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}
	if to == nil && r.ContractAddress != (common.Address{}) {
		addr := r.ContractAddress
		receipt.ContractAddress = &addr
	}
	return receipt
}
