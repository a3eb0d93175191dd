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
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
)

// FlagInfo represents flag information consisting of flag name, pointer to store its value and a variable to
// track if the flag was modified.
type FlagInfo struct {
	Name    string
	Ptr     interface{}
	Changed bool
}

// LookUpMultiple parses the values of flag defined in each of the targets. It returns the first error, but
// looks up all the targets.
func LookUpMultiple(flagSet *pflag.FlagSet, targets []FlagInfo) (err error) {
	for idx := range targets {
		target := &targets[idx]
		var lookupErr error
		target.Changed, lookupErr = Lookup(flagSet, target.Name, target.Ptr)
		if lookupErr != nil && err == nil {
			err = fmt.Errorf("lookup flag %s: %w", target.Name, lookupErr)
		}
	}
	return err
}

// Lookup parses the values of flag to targetVar if it defined in flagSet and its values has been modified.
// Status of whether the flag was modified or not is returned in the changed.
//
// Addresses are parsed from the string value of the flag.
func Lookup(flagSet *pflag.FlagSet, name string, targetVar interface{}) (changed bool, err error) {
	if changed = flagSet.Changed(name); changed {
		switch t := targetVar.(type) {
		case *bool:
			*t, err = flagSet.GetBool(name)
		case *int:
			*t, err = flagSet.GetInt(name)
		case *int64:
			*t, err = flagSet.GetInt64(name)
		case *uint64:
			*t, err = flagSet.GetUint64(name)
		case *string:
			*t, err = flagSet.GetString(name)
		case *[]string:
			*t, err = flagSet.GetStringSlice(name)
		case *time.Duration:
			*t, err = flagSet.GetDuration(name)
		case *common.Address:
			var addrStr string
			if addrStr, err = flagSet.GetString(name); err != nil {
				break
			}
			if !common.IsHexAddress(addrStr) {
				err = fmt.Errorf("invalid address %q", addrStr)
				break
			}
			*t = common.HexToAddress(addrStr)
		default:
			err = fmt.Errorf("unsupported data type (%T) for flag", t)
			changed = false
		}
	}
	return changed, err
}
