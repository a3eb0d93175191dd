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

package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/blockchain/ethereum/ethereumtest"
	"github.com/hyperledger-labs/txnode/config"
)

const (
	nodeConfigFile = "node.yaml"
	keystoreDir    = "keystore"

	dirF = "dir"

	demoAccounts = 2
	demoBalance  = "100000000000000000000" // 100 ETH in Wei.
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate demo artifacts",
		Long: `
Generate demo artifacts: a node.yaml file and a keystore directory with keys
for two accounts. The first account is the default account of the node.

Note:
=====
Use the ganache-cli command printed on success to start a blockchain node
with the generated accounts pre-funded with 100 ETH each.`,
		Args: cobra.NoArgs,
		RunE: generate,
	}
	cmd.Flags().String(dirF, ".", "Directory to write the artifacts in")
	return cmd
}

func generate(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString(dirF)
	if err != nil {
		panic("unknown flag " + dirF + "\n")
	}
	accs, err := generateNodeConfig(dir)
	if err != nil {
		printError(cmd, "Error generating node configuration artifacts: %v", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated node configuration file %s and keystore %s in %s\n",
		greenf(nodeConfigFile), greenf(keystoreDir), dir)
	fmt.Fprintf(out, "Accounts: %v\n\n", accs)
	fmt.Fprintf(out, "Start a ganache-cli node with the accounts funded using:\n\nganache-cli -b 1 %s\n",
		strings.Join(ethereumtest.GanacheAccountArgs(ethereumtest.RandSeedForTestAccs, demoAccounts, demoBalance),
			" "))
	return nil
}

// generateNodeConfig generates node configuration artifacts (node.yaml and keystore) in the given directory
// and returns the addresses of the accounts in the keystore.
func generateNodeConfig(dir string) ([]string, error) {
	cfgFile := filepath.Join(dir, nodeConfigFile)
	ksDir := filepath.Join(dir, keystoreDir)
	for _, path := range []string{cfgFile, ksDir} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			return nil, errors.New("file exists - " + path)
		}
	}

	// The seed ethereumtest.RandSeedForTestAccs always generates the same accounts, so the ganache-cli
	// command in the help message funds them.
	prng := rand.New(rand.NewSource(ethereumtest.RandSeedForTestAccs)) //nolint:gosec	// okay to use weak rand.
	ws, err := ethereumtest.NewWalletSetup(prng, demoAccounts)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(ws.KeystorePath) // nolint: errcheck

	// Copy, instead of rename, to avoid invalid cross-device link errors.
	if err = copy.Copy(ws.KeystorePath, ksDir); err != nil {
		return nil, errors.Wrap(err, "copying keystore")
	}

	nodeCfg := txnode.NodeConfig{
		LogLevel:         config.DefaultLogLevel,
		LogFile:          "",
		ChainURL:         ethereumtest.ChainURL,
		ChainID:          ethereumtest.ChainID,
		ChainConnTimeout: config.DefaultChainConnTimeout,
		OnChainTxTimeout: config.DefaultOnChainTxTimeout,
		KeystorePath:     keystoreDir,
		Password:         "",
		DefaultAccount:   ws.Accs[0].Hex(),
		GasBuffer:        config.DefaultGasBuffer,
		PollInterval:     config.DefaultPollInterval,
		MaxPollInterval:  config.DefaultMaxPollInterval,
		ReceiptCacheSize: config.DefaultReceiptCacheSize,
	}
	if err = config.WriteNodeConfig(nodeCfg, cfgFile); err != nil {
		return nil, err
	}

	accs := make([]string, len(ws.Accs))
	for i := range ws.Accs {
		accs[i] = ws.Accs[i].Hex()
	}
	return accs, nil
}
