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

package transact_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/txnode/transact"
)

func Test_PendingTx(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	to, sender := newRandomAddress(rng), newRandomAddress(rng)

	t.Run("transfer", func(t *testing.T) {
		value := big.NewInt(1500)
		p := transact.NewTransfer(to, value)
		require.NotNil(t, p.To())
		assert.Equal(t, to, *p.To())
		assert.Equal(t, value, p.Value())
		assert.Empty(t, p.Data())
		assert.False(t, p.IsDeploy())
		_, ok := p.DefaultSender()
		assert.False(t, ok)
	})

	t.Run("deploy", func(t *testing.T) {
		p := transact.NewDeploy([]byte{0x60, 0x00}, nil)
		assert.Nil(t, p.To())
		assert.True(t, p.IsDeploy())
		assert.Equal(t, int64(0), p.Value().Int64())
		assert.Contains(t, p.String(), "deploy")
	})

	t.Run("immutable", func(t *testing.T) {
		data := []byte{1, 2, 3}
		value := big.NewInt(10)
		p := transact.NewCall(to, data, value)

		data[0] = 0xff
		value.SetInt64(20)
		assert.Equal(t, []byte{1, 2, 3}, p.Data())
		assert.Equal(t, int64(10), p.Value().Int64())

		p.Data()[0] = 0xff
		p.Value().SetInt64(20)
		*p.To() = sender
		assert.Equal(t, []byte{1, 2, 3}, p.Data())
		assert.Equal(t, int64(10), p.Value().Int64())
		assert.Equal(t, to, *p.To())
	})

	t.Run("with_default_sender", func(t *testing.T) {
		p := transact.NewTransfer(to, big.NewInt(1))
		q := p.WithDefaultSender(sender)

		_, ok := p.DefaultSender()
		assert.False(t, ok)
		got, ok := q.DefaultSender()
		assert.True(t, ok)
		assert.Equal(t, sender, got)
	})
}
