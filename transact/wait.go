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
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// waitMined polls for the receipt of the transaction until it is found or
// the wait ends. The interval between polls doubles after each miss, up to
// the max poll interval.
//
// Errors other than NotFound from the blockchain node are logged and the
// polling continues, as they are usually transient.
func (e *Executor) waitMined(parent context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx := parent
	if e.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, e.txTimeout)
		defer cancel()
	}
	logger := e.log.WithField("txHash", txHash.Hex())

	interval := e.pollInterval
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			var timeout time.Duration
			if parent.Err() == nil {
				timeout = e.txTimeout
			}
			return nil, NewInclusionTimeoutError(txHash, timeout, ctx.Err())
		case <-timer.C:
		}

		r, err := e.chain.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil && r != nil:
			return r, nil
		case err == nil, errors.Is(err, ethereum.NotFound):
		case ctx.Err() != nil:
			// Reported as timeout in the next iteration.
		default:
			logger.WithError(err).Warn("Reading receipt")
		}

		timer.Reset(interval)
		interval = nextPollInterval(interval, e.maxPollInterval)
	}
}

func nextPollInterval(current, max time.Duration) time.Duration {
	if current >= max/2 {
		return max
	}
	return current * 2
}
