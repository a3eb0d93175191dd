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

package node_test

import (
	"context"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/ethereumtest"
	"github.com/hyperledger-labs/txnode/node"
	"github.com/hyperledger-labs/txnode/node/nodetest"
	"github.com/hyperledger-labs/txnode/txnodetest"
)

func newSimNode(t *testing.T, numAccs uint) (txnode.NodeAPI, *ethereumtest.ChainBackendSetup, *rand.Rand) {
	rng := rand.New(rand.NewSource(ethereumtest.RandSeedForTestAccs))
	setup := ethereumtest.NewSimChainBackendSetup(t, rng, numAccs)
	return nodetest.NewSimNodeT(t, setup, nodetest.NewConfig(setup.WalletSetup)), setup, rng
}

func uint64Ptr(v uint64) *uint64 { return &v }

func Test_NewWithBackends_InvalidCacheSize(t *testing.T) {
	rng := rand.New(rand.NewSource(ethereumtest.RandSeedForTestAccs))
	setup := ethereumtest.NewSimChainBackendSetup(t, rng, 1)
	cfg := nodetest.NewConfig(setup.WalletSetup)
	cfg.ReceiptCacheSize = 0
	_, err := node.NewWithBackends(cfg, setup.ChainBackend, setup.Accounts)
	assert.Error(t, err)
}

func Test_Node_Time_GetConfig(t *testing.T) {
	rng := rand.New(rand.NewSource(ethereumtest.RandSeedForTestAccs))
	setup := ethereumtest.NewSimChainBackendSetup(t, rng, 1)
	cfg := nodetest.NewConfig(setup.WalletSetup)
	cfg.Password = "secret"
	n := nodetest.NewSimNodeT(t, setup, cfg)

	assert.InDelta(t, time.Now().UTC().Unix(), n.Time(), 5)

	wantCfg := cfg
	wantCfg.Password = ""
	assert.Equal(t, wantCfg, n.GetConfig())
}

func Test_Node_Transfer(t *testing.T) {
	n, setup, rng := newSimNode(t, 2)
	ctx := context.Background()

	t.Run("happy_default_gas", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		info, apiErr := n.Transfer(ctx, to, "1.5", txnode.TxOpts{})
		require.NoError(t, apiErr)
		assert.True(t, info.Success)
		assert.Equal(t, setup.Accs[0].Hex(), info.From)
		assert.Equal(t, to, info.To)
		assert.Empty(t, info.ContractAddr)
		assert.Equal(t, uint64(21000), info.GasUsed)
		assert.Equal(t, uint64(21000)+n.GetConfig().GasBuffer, info.GasLimit)
		assert.NotZero(t, info.BlockNumber)

		bal, apiErr := n.Balance(ctx, to)
		require.NoError(t, apiErr)
		assert.Equal(t, "1.500000", bal)
	})

	t.Run("happy_exact_gas", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		info, apiErr := n.Transfer(ctx, to, "0.1", txnode.TxOpts{Gas: uint64Ptr(30000)})
		require.NoError(t, apiErr)
		assert.Equal(t, uint64(30000), info.GasLimit)
	})

	t.Run("happy_gas_buffer", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		info, apiErr := n.Transfer(ctx, to, "0.1", txnode.TxOpts{GasBuffer: uint64Ptr(5)})
		require.NoError(t, apiErr)
		assert.Equal(t, uint64(21005), info.GasLimit)
	})

	t.Run("happy_from", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		info, apiErr := n.Transfer(ctx, to, "1", txnode.TxOpts{From: setup.Accs[1].Hex()})
		require.NoError(t, apiErr)
		assert.Equal(t, setup.Accs[1].Hex(), info.From)
	})

	t.Run("err_invalid_to", func(t *testing.T) {
		_, apiErr := n.Transfer(ctx, "0x1234", "1", txnode.TxOpts{})
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidArgument)
		txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameTo, "0x1234")
	})

	t.Run("err_invalid_amount", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		for _, amount := range []string{"abc", "0", "-1", "0.0000000000000000001"} {
			_, apiErr := n.Transfer(ctx, to, amount, txnode.TxOpts{})
			txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidArgument)
			txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameAmount, amount)
		}
	})

	t.Run("err_invalid_from", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		_, apiErr := n.Transfer(ctx, to, "1", txnode.TxOpts{From: "invalid"})
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidArgument)
		txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameFrom, "invalid")
	})

	t.Run("err_gas_and_gas_buffer", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		opts := txnode.TxOpts{Gas: uint64Ptr(1), GasBuffer: uint64Ptr(2)}
		_, apiErr := n.Transfer(ctx, to, "1", opts)
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidConfig)
		txnodetest.AssertErrInfoInvalidConfig(t, apiErr.AddInfo(), "gas, gas buffer", "gas=1, gasBuffer=2")

		bal, balErr := n.Balance(ctx, to)
		require.NoError(t, balErr)
		assert.Equal(t, "0.000000", bal)
	})

	t.Run("err_unauthorized", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		from := ethereumtest.NewRandomAddress(rng).Hex()
		_, apiErr := n.Transfer(ctx, to, "1", txnode.TxOpts{From: from})
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrUnauthorized)
		txnodetest.AssertErrInfoUnauthorized(t, apiErr.AddInfo(), from)
	})

	t.Run("err_submission", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		_, apiErr := n.Transfer(ctx, to, "1", txnode.TxOpts{Gas: uint64Ptr(1000)})
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrSubmissionFailed)
		txnodetest.AssertErrInfoSubmissionFailed(t, apiErr.AddInfo(), setup.Accs[0].Hex(), to, 1000)
	})
}

func Test_Node_Transfer_ZeroNodeGasBuffer(t *testing.T) {
	rng := rand.New(rand.NewSource(ethereumtest.RandSeedForTestAccs))
	setup := ethereumtest.NewSimChainBackendSetup(t, rng, 1)
	cfg := nodetest.NewConfig(setup.WalletSetup)
	cfg.GasBuffer = 0
	n := nodetest.NewSimNodeT(t, setup, cfg)

	info, apiErr := n.Transfer(context.Background(), ethereumtest.NewRandomAddress(rng).Hex(), "1", txnode.TxOpts{})
	require.NoError(t, apiErr)
	assert.Equal(t, uint64(21000), info.GasLimit)
}

func Test_Node_TransferBatch(t *testing.T) {
	n, _, rng := newSimNode(t, 1)
	ctx := context.Background()

	to1 := ethereumtest.NewRandomAddress(rng).Hex()
	to2 := ethereumtest.NewRandomAddress(rng).Hex()
	reqs := []txnode.TransferReq{
		{To: to1, Amount: "1"},
		{To: "invalid", Amount: "1"},
		{To: to2, Amount: "2"},
	}

	t.Run("happy_partial_failure", func(t *testing.T) {
		results := n.TransferBatch(ctx, reqs, txnode.TxOpts{})
		require.Len(t, results, len(reqs))

		require.NoError(t, results[0].Error)
		assert.Equal(t, to1, results[0].Info.To)
		txnodetest.AssertAPIError(t, results[1].Error, txnode.ClientError, txnode.ErrInvalidArgument)
		require.NoError(t, results[2].Error)
		assert.Equal(t, to2, results[2].Info.To)
		assert.NotEqual(t, results[0].Info.TxHash, results[2].Info.TxHash)

		bal, apiErr := n.Balance(ctx, to2)
		require.NoError(t, apiErr)
		assert.Equal(t, "2.000000", bal)
	})

	t.Run("err_invalid_opts", func(t *testing.T) {
		results := n.TransferBatch(ctx, reqs, txnode.TxOpts{From: "invalid"})
		require.Len(t, results, len(reqs))
		for _, result := range results {
			txnodetest.AssertAPIError(t, result.Error, txnode.ClientError, txnode.ErrInvalidArgument)
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, n.TransferBatch(ctx, nil, txnode.TxOpts{}))
	})
}

func Test_Node_Deploy_Call(t *testing.T) {
	n, setup, rng := newSimNode(t, 1)
	ctx := context.Background()

	var contract string
	t.Run("happy_Deploy", func(t *testing.T) {
		info, apiErr := n.Deploy(ctx, hexutil.Encode(ethereumtest.StorageContractCode), txnode.TxOpts{})
		require.NoError(t, apiErr)
		assert.True(t, info.Success)
		assert.Empty(t, info.To)
		require.NotEmpty(t, info.ContractAddr)
		contract = info.ContractAddr
	})

	t.Run("happy_Call", func(t *testing.T) {
		data := hexutil.Encode(ethereumtest.StoreCallData(7))
		info, apiErr := n.Call(ctx, contract, data, "", txnode.TxOpts{})
		require.NoError(t, apiErr)
		assert.True(t, info.Success)
		assert.Equal(t, contract, info.To)
		assert.Greater(t, info.GasLimit, info.GasUsed)
	})

	t.Run("err_Deploy_invalid_code", func(t *testing.T) {
		for _, code := range []string{"", "0x", "0xzz"} {
			_, apiErr := n.Deploy(ctx, code, txnode.TxOpts{})
			txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidArgument)
			txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameCode, code)
		}
	})

	t.Run("err_Call_invalid_args", func(t *testing.T) {
		_, apiErr := n.Call(ctx, "invalid", "", "", txnode.TxOpts{})
		txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameTo, "invalid")
		_, apiErr = n.Call(ctx, contract, "0xzz", "", txnode.TxOpts{})
		txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameData, "0xzz")
		_, apiErr = n.Call(ctx, contract, "", "abc", txnode.TxOpts{})
		txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameAmount, "abc")
	})

	reverting := ethereumtest.DeployContractT(t, setup.ChainBackend, setup.Accounts, setup.Accs[0],
		ethereumtest.RevertingContractCode)

	t.Run("err_estimation", func(t *testing.T) {
		_, apiErr := n.Call(ctx, reverting.Hex(), "", "", txnode.TxOpts{})
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrEstimationFailed)
		txnodetest.AssertErrInfoEstimationFailed(t, apiErr.AddInfo(), setup.Accs[0].Hex(), reverting.Hex())
	})

	t.Run("err_reverted", func(t *testing.T) {
		info, apiErr := n.Call(ctx, reverting.Hex(), "", "", txnode.TxOpts{Gas: uint64Ptr(50000)})
		txnodetest.AssertAPIError(t, apiErr, txnode.ProtocolFatalError, txnode.ErrTxReverted)
		txnodetest.AssertErrInfoTxReverted(t, apiErr.AddInfo(), info.TxHash, 50000)
		assert.False(t, info.Success)
		assert.Equal(t, reverting.Hex(), info.To)
	})

	t.Run("err_unknown_sender_for_call", func(t *testing.T) {
		from := ethereumtest.NewRandomAddress(rng).Hex()
		_, apiErr := n.Call(ctx, contract, "", "", txnode.TxOpts{From: from})
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrUnauthorized)
	})
}

func Test_Node_Receipt(t *testing.T) {
	n, setup, rng := newSimNode(t, 1)
	ctx := context.Background()

	t.Run("happy_after_transfer", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng).Hex()
		info, apiErr := n.Transfer(ctx, to, "1", txnode.TxOpts{})
		require.NoError(t, apiErr)

		got, apiErr := n.Receipt(ctx, info.TxHash)
		require.NoError(t, apiErr)
		assert.Equal(t, info, got)
	})

	t.Run("happy_not_sent_by_node", func(t *testing.T) {
		to := ethereumtest.NewRandomAddress(rng)
		auth, err := setup.Accounts.Authorize(setup.Accs[0])
		require.NoError(t, err)
		req := txnode.TxRequest{From: setup.Accs[0], To: &to, Value: big.NewInt(5), Gas: 21000}
		txHash, err := setup.ChainBackend.Submit(ctx, req, auth)
		require.NoError(t, err)
		_, err = ethereumtest.WaitMined(ctx, setup.ChainBackend, txHash)
		require.NoError(t, err)

		got, apiErr := n.Receipt(ctx, txHash.Hex())
		require.NoError(t, apiErr)
		assert.Equal(t, txHash.Hex(), got.TxHash)
		assert.Equal(t, setup.Accs[0].Hex(), got.From)
		assert.Equal(t, to.Hex(), got.To)
		assert.Equal(t, uint64(21000), got.GasLimit)
		assert.Equal(t, uint64(21000), got.GasUsed)
		assert.True(t, got.Success)
	})

	t.Run("err_unknown_tx", func(t *testing.T) {
		txHash := common.BytesToHash(ethereumtest.StoreCallData(1729)).Hex()
		_, apiErr := n.Receipt(ctx, txHash)
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrResourceNotFound)
		txnodetest.AssertErrInfoResourceNotFound(t, apiErr.AddInfo(), node.ResTypeTx, txHash)
	})

	t.Run("err_invalid_hash", func(t *testing.T) {
		_, apiErr := n.Receipt(ctx, "0x1234")
		txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidArgument)
		txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameTxHash, "0x1234")
	})
}

func Test_Node_Balance(t *testing.T) {
	n, setup, _ := newSimNode(t, 1)
	ctx := context.Background()

	bal, apiErr := n.Balance(ctx, setup.Accs[0].Hex())
	require.NoError(t, apiErr)
	assert.Equal(t, "1000000.000000", bal)

	_, apiErr = n.Balance(ctx, "invalid")
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrInvalidArgument)
	txnodetest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), node.ArgNameAddress, "invalid")
}

func Test_Node_TxTimedOut(t *testing.T) {
	rng := rand.New(rand.NewSource(ethereumtest.RandSeedForTestAccs))
	setup := ethereumtest.NewSimChainBackendSetupManualMining(t, rng, 1)
	cfg := nodetest.NewConfig(setup.WalletSetup)
	cfg.OnChainTxTimeout = 200 * time.Millisecond
	n := nodetest.NewSimNodeT(t, setup, cfg)
	ctx := context.Background()

	to := ethereumtest.NewRandomAddress(rng).Hex()
	_, apiErr := n.Transfer(ctx, to, "1", txnode.TxOpts{})
	txnodetest.AssertAPIError(t, apiErr, txnode.ProtocolFatalError, txnode.ErrTxTimedOut)
	addInfo, ok := apiErr.AddInfo().(txnode.ErrInfoTxTimedOut)
	require.True(t, ok)
	txnodetest.AssertErrInfoTxTimedOut(t, addInfo, "transfer", addInfo.TxID, "200ms")

	_, apiErr = n.Receipt(ctx, addInfo.TxID)
	txnodetest.AssertAPIError(t, apiErr, txnode.ClientError, txnode.ErrResourceNotFound)

	// The tx can still be mined after the timeout.
	setup.Backend.Commit()
	info, apiErr := n.Receipt(ctx, addInfo.TxID)
	require.NoError(t, apiErr)
	assert.True(t, info.Success)
	assert.Equal(t, to, info.To)
}

func Test_Node_TxTimedOut_RequestDeadline(t *testing.T) {
	rng := rand.New(rand.NewSource(ethereumtest.RandSeedForTestAccs))
	setup := ethereumtest.NewSimChainBackendSetupManualMining(t, rng, 1)
	cfg := nodetest.NewConfig(setup.WalletSetup)
	cfg.OnChainTxTimeout = time.Minute
	n := nodetest.NewSimNodeT(t, setup, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	to := ethereumtest.NewRandomAddress(rng).Hex()
	_, apiErr := n.Transfer(ctx, to, "1", txnode.TxOpts{})
	txnodetest.AssertAPIError(t, apiErr, txnode.ProtocolFatalError, txnode.ErrTxTimedOut)
	addInfo, ok := apiErr.AddInfo().(txnode.ErrInfoTxTimedOut)
	require.True(t, ok)
	txnodetest.AssertErrInfoTxTimedOut(t, addInfo, "transfer", addInfo.TxID, "request deadline")
}
