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

// Package ethereum provides on-chain transaction backend and account backend
// for the ethereum blockchain platform. The actual implementation of the
// functionality is done in internal package. This implementation can be
// configured for both real and test uses and shared by this package and
// the ethereumtest package.
//
// In addition to the intended functionality, this package is also structured
// to isolate the imports from "go-ethereum" project, which is licensed under
// LGPL. The exported functions in this package use only the types defined in
// the root package of this project, the std lib and the go-ethereum "common"
// and "core/types" packages.
package ethereum
