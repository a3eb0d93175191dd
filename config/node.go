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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hyperledger-labs/txnode"
	"github.com/hyperledger-labs/txnode/transact"
)

// Keys of the node configuration, as used in the config file and in the
// viper instance. These are the lower case names of the fields in
// txnode.NodeConfig.
const (
	KeyLogLevel         = "loglevel"
	KeyLogFile          = "logfile"
	KeyChainURL         = "chainurl"
	KeyChainID          = "chainid"
	KeyChainConnTimeout = "chainconntimeout"
	KeyOnChainTxTimeout = "onchaintxtimeout"
	KeyKeystorePath     = "keystorepath"
	KeyPassword         = "password"
	KeyDefaultAccount   = "defaultaccount"
	KeyGasBuffer        = "gasbuffer"
	KeyPollInterval     = "pollinterval"
	KeyMaxPollInterval  = "maxpollinterval"
	KeyReceiptCacheSize = "receiptcachesize"
)

// Default values for the optional parameters of the node configuration.
const (
	DefaultLogLevel         = "info"
	DefaultChainConnTimeout = 10 * time.Second
	DefaultOnChainTxTimeout = 5 * time.Minute
	DefaultGasBuffer        = transact.DefaultGasBuffer
	DefaultPollInterval     = 1 * time.Second
	DefaultMaxPollInterval  = 10 * time.Second
	DefaultReceiptCacheSize = 128
)

// SetDefaults registers the default values for the optional parameters of
// the node configuration on the viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyChainConnTimeout, DefaultChainConnTimeout)
	v.SetDefault(KeyOnChainTxTimeout, DefaultOnChainTxTimeout)
	v.SetDefault(KeyGasBuffer, DefaultGasBuffer)
	v.SetDefault(KeyPollInterval, DefaultPollInterval)
	v.SetDefault(KeyMaxPollInterval, DefaultMaxPollInterval)
	v.SetDefault(KeyReceiptCacheSize, DefaultReceiptCacheSize)
}

// ParseNodeConfig parses the node configuration from a file. Parameters not
// specified in the file take the default values.
func ParseNodeConfig(configFile string) (txnode.NodeConfig, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Clean(configFile))
	if err := v.ReadInConfig(); err != nil {
		return txnode.NodeConfig{}, errors.Wrap(err, "reading from source")
	}
	return UnmarshalNodeConfig(v)
}

// UnmarshalNodeConfig returns the node configuration held by the viper
// instance, after applying the defaults and validating it.
//
// The viper instance may have values read from a config file, bound to
// command line flags or both.
func UnmarshalNodeConfig(v *viper.Viper) (txnode.NodeConfig, error) {
	SetDefaults(v)
	var cfg txnode.NodeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return txnode.NodeConfig{}, errors.Wrap(err, "unmarshalling")
	}
	if apiErr := Validate(cfg); apiErr != nil {
		return txnode.NodeConfig{}, apiErr
	}
	return cfg, nil
}

// Validate checks the node configuration and returns an ErrInvalidConfig
// API error for the first invalid parameter.
func Validate(cfg txnode.NodeConfig) txnode.APIError {
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return txnode.NewAPIErrInvalidConfig(err, KeyLogLevel, cfg.LogLevel)
	}
	if cfg.ChainURL == "" {
		return txnode.NewAPIErrInvalidConfig(errors.New("should not be empty"), KeyChainURL, cfg.ChainURL)
	}
	if cfg.ChainID < 0 {
		return txnode.NewAPIErrInvalidConfig(errors.New("should not be negative"), KeyChainID,
			fmt.Sprint(cfg.ChainID))
	}
	if cfg.KeystorePath == "" {
		return txnode.NewAPIErrInvalidConfig(errors.New("should not be empty"), KeyKeystorePath, cfg.KeystorePath)
	}
	if cfg.DefaultAccount != "" && !common.IsHexAddress(cfg.DefaultAccount) {
		return txnode.NewAPIErrInvalidConfig(errors.New("should be a hex encoded address"), KeyDefaultAccount,
			cfg.DefaultAccount)
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{KeyChainConnTimeout, cfg.ChainConnTimeout},
		{KeyOnChainTxTimeout, cfg.OnChainTxTimeout},
		{KeyPollInterval, cfg.PollInterval},
		{KeyMaxPollInterval, cfg.MaxPollInterval},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return txnode.NewAPIErrInvalidConfig(errors.New("should be positive"), d.key, d.value.String())
		}
	}
	if cfg.MaxPollInterval < cfg.PollInterval {
		return txnode.NewAPIErrInvalidConfig(
			errors.Errorf("should not be less than %s (%s)", KeyPollInterval, cfg.PollInterval),
			KeyMaxPollInterval, cfg.MaxPollInterval.String())
	}
	if cfg.ReceiptCacheSize <= 0 {
		return txnode.NewAPIErrInvalidConfig(errors.New("should be positive"), KeyReceiptCacheSize,
			fmt.Sprint(cfg.ReceiptCacheSize))
	}
	return nil
}

// WriteNodeConfig encodes the node configuration as yaml and writes it to a
// new file at the given path. It returns an error if the file exists.
func WriteNodeConfig(cfg txnode.NodeConfig, path string) error {
	f, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return errors.Wrap(err, "creating config file")
	}
	encoder := yaml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		f.Close() // nolint: errcheck, gosec
		return errors.Wrap(err, "encoding config")
	}
	if err := encoder.Close(); err != nil {
		f.Close() // nolint: errcheck, gosec
		return errors.Wrap(err, "closing encoder")
	}
	return errors.Wrap(f.Close(), "closing config file")
}
