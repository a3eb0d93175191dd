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
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Handle identifies a transaction dispatched in async mode. It can be
// awaited any number of times, from any number of goroutines.
type Handle struct {
	txHash common.Hash
	done   chan struct{}

	// Written once before done is closed.
	receipt Receipt
	err     error
}

func newHandle(txHash common.Hash) *Handle {
	return &Handle{
		txHash: txHash,
		done:   make(chan struct{}),
	}
}

// TxHash returns the hash of the submitted transaction.
func (h *Handle) TxHash() common.Hash { return h.txHash }

// Done returns a channel that is closed when the transaction is mined or
// has failed.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Await blocks until the transaction is mined or has failed, and returns
// its receipt or error.
//
// If the context is done before that, it returns an InclusionTimeoutError.
// The transaction continues to be tracked and can be awaited again.
func (h *Handle) Await(ctx context.Context) (Receipt, error) {
	select {
	case <-h.done:
		return h.receipt, h.err
	default:
	}

	select {
	case <-h.done:
		return h.receipt, h.err
	case <-ctx.Done():
		return Receipt{}, NewInclusionTimeoutError(h.txHash, 0, ctx.Err())
	}
}

func (h *Handle) complete(r Receipt, err error) {
	h.receipt, h.err = r, err
	close(h.done)
}
