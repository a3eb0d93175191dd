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
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/config"
)

const (
	// flag names for the node configuration, defined on the root command.
	loglevelF         = "loglevel"
	logfileF          = "logfile"
	chainurlF         = "chainurl"
	chainidF          = "chainid"
	chainconntimeoutF = "chainconntimeout"
	onchaintxtimeoutF = "onchaintxtimeout"
	keystoreF         = "keystore"
	passwordF         = "password"
	accountF          = "account"
	gasbufferF        = "gasbuffer"
	pollintervalF     = "pollinterval"
	maxpollintervalF  = "maxpollinterval"
	configfileF       = "configfile" // can only be specified in flag, not via config file.

	// default values for flags in root command.
	defaultConfigFile = "node.yaml"
)

var (
	// Flags corresponding to node configuration parameters, mapped to the keys in the config file. Each of
	// this flag can individually override the value in config file.
	nodeCfgFlags = map[string]string{
		loglevelF:         config.KeyLogLevel,
		logfileF:          config.KeyLogFile,
		chainurlF:         config.KeyChainURL,
		chainidF:          config.KeyChainID,
		chainconntimeoutF: config.KeyChainConnTimeout,
		onchaintxtimeoutF: config.KeyOnChainTxTimeout,
		keystoreF:         config.KeyKeystorePath,
		passwordF:         config.KeyPassword,
		accountF:          config.KeyDefaultAccount,
		gasbufferF:        config.KeyGasBuffer,
		pollintervalF:     config.KeyPollInterval,
		maxpollintervalF:  config.KeyMaxPollInterval,
	}

	// When these flags are specified, the configuration is complete without a config file and the file
	// is read only if it was explicitly specified.
	requiredCfgFlags = []string{chainurlF, keystoreF}
)

// nodeFactory initializes a NodeAPI instance from the node configuration.
type nodeFactory func(txnode.NodeConfig) (txnode.NodeAPI, error)

// cli holds the state shared by all the commands of one invocation.
type cli struct {
	// Viper instance for parsing node configuration file. Each flag in the nodeCfgFlags list will also be
	// attached to the viper instance, so that the values from flags (when specified), override the values
	// defined in the configuration files.
	nodeCfgViper *viper.Viper
	newNode      nodeFactory
}

func newRootCmd(newNode nodeFactory) *cobra.Command {
	c := &cli{
		nodeCfgViper: viper.New(),
		newNode:      newNode,
	}
	rootCmd := &cobra.Command{
		Use:   "txnode",
		Short: "Send transactions to an ethereum blockchain and wait for them to be mined.",
		Long: `
Send transactions to an ethereum blockchain and wait for them to be mined.

The gas limit of each transaction is derived from the node's estimate plus a
buffer, unless an explicit limit is given. Transactions are signed with keys
from a keystore. Transfers to many recipients can be sent concurrently.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})
	defineNodeCfgFlags(rootCmd.PersistentFlags())
	c.bindNodeCfgFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		c.newTransferCmd(),
		c.newCallCmd(),
		c.newDeployCmd(),
		c.newBalanceCmd(),
		c.newReceiptCmd(),
		c.newConfigCmd(),
		newGenerateCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func defineNodeCfgFlags(fs *pflag.FlagSet) {
	fs.String(configfileF, defaultConfigFile, "node config file")

	// All these flags should have zero values for defaults, as their only purpose is allow the user to
	// explicitly specify the configuration.
	fs.String(loglevelF, "", "Log level. Supported levels: debug, info, error")
	fs.String(logfileF, "", "Log file path. Use empty string for stdout")
	fs.String(chainurlF, "", "URL of the blockchain node")
	fs.Int(chainidF, 0, "Chain ID used for signing transactions. Use 0 to query it from the blockchain node")
	fs.Duration(chainconntimeoutF, time.Duration(0), "Connection timeout for connecting to the blockchain node")
	fs.Duration(onchaintxtimeoutF, time.Duration(0), "Max duration to wait for an on-chain transaction to be mined")
	fs.String(keystoreF, "", "Path to the keystore directory")
	fs.String(passwordF, "", "Password for unlocking the keys in the keystore")
	fs.String(accountF, "", "Default sender address as hex string with 0x prefix")
	fs.Uint64(gasbufferF, 0, "Gas added to the estimate, when no gas limit is given for a transaction")
	fs.Duration(pollintervalF, time.Duration(0), "Initial interval for polling the receipt of a transaction")
	fs.Duration(maxpollintervalF, time.Duration(0), "Max interval for polling the receipt of a transaction")
}

// bindNodeCfgFlags binds the configuration flags to viper instance, values in flags (when specified), takes
// precedence over those in config file.
func (c *cli) bindNodeCfgFlags(fs *pflag.FlagSet) {
	for flagName, key := range nodeCfgFlags {
		if err := c.nodeCfgViper.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			panic(err)
		}
	}
}

// parseNodeConfig reads the node configuration from the config file and the flags. Config file is ignored,
// if the required config flags are specified and the config file flag is not.
func (c *cli) parseNodeConfig(fs *pflag.FlagSet) (txnode.NodeConfig, error) {
	if !areAllFlagsSpecified(fs, requiredCfgFlags...) || fs.Changed(configfileF) {
		nodeCfgFile, err := fs.GetString(configfileF)
		if err != nil {
			panic("unknown flag configfile\n")
		}

		c.nodeCfgViper.SetConfigFile(filepath.Clean(nodeCfgFile))
		c.nodeCfgViper.SetConfigType("yaml")
		if err = c.nodeCfgViper.ReadInConfig(); err != nil {
			return txnode.NodeConfig{}, errors.Wrap(err, "reading node config file")
		}
	}
	return config.UnmarshalNodeConfig(c.nodeCfgViper)
}

// nodeAPI parses the node configuration and initializes a NodeAPI instance.
func (c *cli) nodeAPI(cmd *cobra.Command) (txnode.NodeAPI, error) {
	nodeCfg, err := c.parseNodeConfig(cmd.Flags())
	if err != nil {
		printError(cmd, "Error parsing node config: %v", err)
		return nil, err
	}
	n, err := c.newNode(nodeCfg)
	if err != nil {
		printError(cmd, "Error initializing node: %v", err)
		return nil, err
	}
	return n, nil
}
