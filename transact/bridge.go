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

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of awaiting one handle. Exactly one of Receipt and
// Err is meaningful.
type Outcome struct {
	Receipt Receipt
	Err     error
}

// AwaitAll waits for all the handles concurrently and returns their
// outcomes in the order of the handles, irrespective of the order in which
// the transactions are mined.
//
// A failure of one transaction does not affect the others. Nil handles
// result in ErrNilHandle. When the context is done, the outcome of each
// unfinished handle is an InclusionTimeoutError.
func AwaitAll(ctx context.Context, handles ...*Handle) []Outcome {
	outcomes := make([]Outcome, len(handles))

	var g errgroup.Group
	for i, h := range handles {
		if h == nil {
			outcomes[i] = Outcome{Err: ErrNilHandle}
			continue
		}
		g.Go(func() error {
			r, err := h.Await(ctx)
			outcomes[i] = Outcome{Receipt: r, Err: err}
			return nil
		})
	}
	_ = g.Wait() // nolint: errcheck // Errors are collected in outcomes.
	return outcomes
}
