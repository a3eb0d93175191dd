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
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/log"
)

// State is the state of a transaction in the executor.
//
// Transactions move forward only: Built, GasResolving, Submitting, Pending
// and finally one of the terminal states Mined or Failed. A transaction can
// fail from any non-terminal state.
type State uint8

// Enumeration of transaction states.
const (
	Built State = iota
	GasResolving
	Submitting
	Pending
	Mined
	Failed
)

// String implements the stringer interface for State.
func (s State) String() string {
	switch s {
	case Built:
		return "built"
	case GasResolving:
		return "gasResolving"
	case Submitting:
		return "submitting"
	case Pending:
		return "pending"
	case Mined:
		return "mined"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s State) IsTerminal() bool { return s == Mined || s == Failed }

// dispatch holds the progress of a single transaction through the states.
// It is not safe for concurrent use; in async mode, ownership passes to the
// waiting goroutine after submission.
type dispatch struct {
	e       *Executor
	pending PendingTx
	opts    []Option

	state   State
	cfg     Config
	from    common.Address
	auth    txnode.Authorizer
	gas     uint64
	txHash  common.Hash
	receipt Receipt
	err     error

	log log.Logger
}

func (e *Executor) newDispatch(pending PendingTx, opts []Option) *dispatch {
	return &dispatch{
		e:       e,
		pending: pending,
		opts:    opts,
		state:   Built,
		log:     log.NewDerivedLoggerWithField(e.log, "tx", pending.String()),
	}
}

// runUntil performs transitions until the state is terminal or stop
// returns true for it.
func (d *dispatch) runUntil(ctx context.Context, stop func(State) bool) {
	for !d.state.IsTerminal() && !stop(d.state) {
		prev := d.state
		d.state = d.step(ctx)
		d.log.Debugf("State transition: %s -> %s", prev, d.state)
	}
}

// step performs the work for the current state and returns the next state.
func (d *dispatch) step(ctx context.Context) State {
	switch d.state {
	case Built:
		return d.configure()
	case GasResolving:
		return d.resolveGas(ctx)
	case Submitting:
		return d.submit(ctx)
	case Pending:
		return d.awaitInclusion(ctx)
	default:
		return d.state
	}
}

func (d *dispatch) fail(err error) State {
	d.err = err
	d.log.WithError(err).Errorf("Transaction failed in state %s", d.state)
	return Failed
}

func (d *dispatch) configure() State {
	cfg, err := NewConfig(d.opts...)
	if err != nil {
		return d.fail(err)
	}
	d.cfg = cfg
	return GasResolving
}

func (d *dispatch) resolveGas(ctx context.Context) State {
	defaultSender, ok := d.pending.DefaultSender()
	if !ok {
		defaultSender = d.e.accounts.DefaultAccount()
	}
	d.from = ResolveSender(d.cfg, defaultSender)

	var err error
	if d.auth, err = d.e.accounts.Authorize(d.from); err != nil {
		return d.fail(NewAuthorizationError(d.from, err))
	}
	d.log = log.NewDerivedLoggerWithField(d.log, "from", d.from.Hex())

	var estimated uint64
	if d.e.policy.NeedsEstimate(d.cfg.Gas) {
		estimated, err = d.e.chain.EstimateGas(ctx, d.pending.request(d.from, 0))
		if err != nil {
			return d.fail(NewEstimationError(d.from, d.pending.To(), err))
		}
	}
	d.gas = d.e.policy.Resolve(estimated, d.cfg.Gas)
	d.log.Debugf("Resolved gas limit %d (estimate %d, %s)", d.gas, estimated, d.cfg.Gas)
	return Submitting
}

func (d *dispatch) submit(ctx context.Context) State {
	txHash, err := d.e.chain.Submit(ctx, d.pending.request(d.from, d.gas), d.auth)
	if err != nil {
		return d.fail(NewSubmissionError(d.from, d.pending.To(), d.gas, err))
	}
	d.txHash = txHash
	d.e.inFlight.Add(txHash)
	d.log = log.NewDerivedLoggerWithField(d.log, "txHash", txHash.Hex())
	d.log.Info("Submitted transaction")
	return Pending
}

func (d *dispatch) awaitInclusion(ctx context.Context) State {
	defer d.e.inFlight.Remove(d.txHash)

	r, err := d.e.waitMined(ctx, d.txHash)
	if err != nil {
		return d.fail(err)
	}
	d.receipt = NewReceipt(r, d.from, d.pending.To(), d.gas)
	if !d.receipt.Status {
		return d.fail(NewRevertedError(d.receipt))
	}
	d.log.Infof("Transaction mined in block %d", d.receipt.BlockNumber)
	return Mined
}

func (d *dispatch) result() (Receipt, error) {
	if d.state != Mined {
		return Receipt{}, d.err
	}
	return d.receipt, nil
}
