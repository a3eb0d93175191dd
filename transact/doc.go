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

// Package transact implements the engine that resolves gas parameters and
// the sender for a transaction, dispatches it and waits until it is mined.
//
// Transactions can be sent in two modes that share the same validation and
// resolution logic. Executor.Transact blocks until the transaction is mined
// or has failed. Executor.TransactAsync returns as soon as the transaction
// was accepted by the blockchain node, with a Handle that can be awaited
// later, individually or together with other handles using AwaitAll.
package transact
