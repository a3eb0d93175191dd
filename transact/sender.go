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

import "github.com/ethereum/go-ethereum/common"

// ResolveSender returns the account from which the transaction is sent: the
// override in the config if set, else the given default sender.
func ResolveSender(cfg Config, defaultSender common.Address) common.Address {
	if cfg.From != nil {
		return *cfg.From
	}
	return defaultSender
}
