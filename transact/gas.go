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

import "math"

// GasPolicy computes the gas limit for a transaction from its estimate and
// the GasLimit specified by the caller.
type GasPolicy struct {
	DefaultBuffer uint64
}

// NewGasPolicy returns a GasPolicy that adds the given buffer to the
// estimate when the caller does not specify the gas.
func NewGasPolicy(defaultBuffer uint64) GasPolicy {
	return GasPolicy{DefaultBuffer: defaultBuffer}
}

// NeedsEstimate reports whether the gas must be estimated to resolve the gas
// limit. Estimation is skipped only for exact limits.
func (p GasPolicy) NeedsEstimate(g GasLimit) bool {
	_, exact := g.Exact()
	return !exact
}

// Resolve returns the gas limit for the transaction. The estimate is ignored
// for exact limits. The sum saturates at the maximum uint64 value.
func (p GasPolicy) Resolve(estimated uint64, g GasLimit) uint64 {
	if limit, ok := g.Exact(); ok {
		return limit
	}
	if extra, ok := g.Buffer(); ok {
		return addSaturating(estimated, extra)
	}
	return addSaturating(estimated, p.DefaultBuffer)
}

func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
