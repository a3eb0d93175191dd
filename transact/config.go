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

	"github.com/ethereum/go-ethereum/common"
)

// DefaultGasBuffer is the amount of gas added to the estimate when neither an
// exact gas limit nor a gas buffer is specified for a transaction.
//
// Gas costs are chain specific, so this can be overridden for each executor.
const DefaultGasBuffer uint64 = 100000

type gasKind uint8

const (
	gasDefault gasKind = iota
	gasExact
	gasBuffered
)

// GasLimit specifies how the gas limit of a transaction is determined. It is
// one of: the default policy (estimate plus the executor's default buffer),
// an exact limit that is used verbatim or a buffer that is added to the
// estimate.
//
// The zero value is the default policy.
type GasLimit struct {
	kind  gasKind
	value uint64
}

// DefaultGas returns the GasLimit for the default policy.
func DefaultGas() GasLimit { return GasLimit{} }

// ExactGas returns the GasLimit that uses the given limit verbatim.
func ExactGas(limit uint64) GasLimit { return GasLimit{kind: gasExact, value: limit} }

// BufferedGas returns the GasLimit that adds the given amount to the estimate.
func BufferedGas(extra uint64) GasLimit { return GasLimit{kind: gasBuffered, value: extra} }

// Exact returns the exact gas limit, if one was specified.
func (g GasLimit) Exact() (uint64, bool) { return g.value, g.kind == gasExact }

// Buffer returns the gas buffer, if one was specified.
func (g GasLimit) Buffer() (uint64, bool) { return g.value, g.kind == gasBuffered }

// String implements the stringer interface for GasLimit.
func (g GasLimit) String() string {
	switch g.kind {
	case gasExact:
		return fmt.Sprintf("exact(%d)", g.value)
	case gasBuffered:
		return fmt.Sprintf("buffered(%d)", g.value)
	default:
		return "default"
	}
}

// Config holds the options for sending a single transaction. Use NewConfig
// to construct it from options.
type Config struct {
	Gas  GasLimit
	From *common.Address // Overrides the default sender when not nil.
}

// Option configures the sending of a transaction.
type Option func(*options)

type options struct {
	gas       *uint64
	gasBuffer *uint64
	from      *common.Address
}

// WithGas sets the exact gas limit for the transaction. No estimation is
// done and no buffer is added. It cannot be combined with WithGasBuffer.
func WithGas(limit uint64) Option {
	return func(o *options) { o.gas = &limit }
}

// WithGasBuffer sets the amount of gas added to the estimate. It cannot be
// combined with WithGas.
func WithGasBuffer(extra uint64) Option {
	return func(o *options) { o.gasBuffer = &extra }
}

// WithFrom sets the account that sends the transaction, overriding the
// default sender.
func WithFrom(addr common.Address) Option {
	return func(o *options) { o.from = &addr }
}

// NewConfig applies the options in the given order and returns the resulting
// config. When an option is repeated, the last value is used.
//
// It returns a ConfigurationError if both WithGas and WithGasBuffer are
// specified.
func NewConfig(opts ...Option) (Config, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := Config{From: o.from}
	switch {
	case o.gas != nil && o.gasBuffer != nil:
		return Config{}, NewConfigurationError("gas, gas buffer",
			fmt.Sprintf("gas (%d) and gas buffer (%d) cannot be used together", *o.gas, *o.gasBuffer))
	case o.gas != nil:
		cfg.Gas = ExactGas(*o.gas)
	case o.gasBuffer != nil:
		cfg.Gas = BufferedGas(*o.gasBuffer)
	}
	return cfg, nil
}
