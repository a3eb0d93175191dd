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
	"reflect"
	"time"

	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/cobra"
)

// Durations are printed in their string form instead of as nanoseconds.
var cfgPrinter = &pretty.Config{
	Diffable: true,
	Formatter: map[reflect.Type]interface{}{
		reflect.TypeOf(time.Duration(0)): fmt.Sprint,
	},
}

// prettify returns a multi line, indented representation of the input data.
func prettify(vals ...interface{}) string {
	return cfgPrinter.Sprint(vals...)
}

func (c *cli) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the node configuration",
		Long: `Print the node configuration, as it would be used by the other commands.

The configuration is read from the config file and the flags, with values in
the flags overriding those in the file. The password is not printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nodeCfg, err := c.parseNodeConfig(cmd.Flags())
			if err != nil {
				printError(cmd, "Error parsing node config: %v", err)
				return err
			}
			if nodeCfg.Password != "" {
				nodeCfg.Password = "****"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", prettify(nodeCfg))
			return nil
		},
	}
}
