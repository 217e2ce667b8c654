// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/escrow-sdk-go
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
// Command escrow is a command line client for escrow contracts. Each operation can be run as a one shot
// command or from an interactive shell started with "escrow shell".
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/direct-state-transfer/escrow-sdk-go/config"
	"github.com/direct-state-transfer/escrow-sdk-go/sdk"
)

const (
	// flag names for the persistent flags of the root command.
	configfileF     = "configfile"
	loglevelF       = "loglevel"
	logfileF        = "logfile"
	apiurlF         = "apiurl"
	apikeyF         = "apikey"
	environmentF    = "environment"
	requesttimeoutF = "requesttimeout"
	contactsfileF   = "contactsfile"
	privatekeyF     = "privatekey"
)

var (
	// viper instance for parsing configuration from flags, environment and configuration file.
	cfgViper = viper.New()

	// flags of the root command are bound to the viper instance to override values from config file.
	flagsToBind = map[string]string{
		loglevelF:       config.LogLevelKey,
		logfileF:        config.LogFileKey,
		apiurlF:         config.APIURLKey,
		apikeyF:         config.APIKeyKey,
		environmentF:    config.EnvironmentKey,
		requesttimeoutF: config.RequestTimeoutKey,
		contactsfileF:   config.ContactsFileKey,
		privatekeyF:     "user.wallet.privatekey",
	}

	// SPrintf style functions that produce colored text.
	redf, greenf func(format string, a ...interface{}) string
)

var rootCmd = &cobra.Command{
	Use:   "escrow",
	Short: "Client for date escrow contracts",
	Long: `
Client for date escrow contracts on ETHEREUM, CELO, BSC, POLYGON and AVAXCCHAIN.

Transactions are built by the backend at apiurl, signed locally with the
configured wallet and sent through the backend. Configuration can be specified
in the config file, via ESCROW_* environment variables or via flags. Flags take
precedence over environment variables, which take precedence over the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	redf = color.New(color.FgRed).SprintfFunc()
	greenf = color.New(color.FgGreen).SprintfFunc()

	flags := rootCmd.PersistentFlags()
	flags.String(configfileF, "", "Config file. Optional, if all required values are set via flags or environment")
	flags.String(loglevelF, "", "Log level. Supported levels: debug, info, error")
	flags.String(logfileF, "", "Log file path. Use empty string for stdout")
	flags.String(apiurlF, "", "Base URL of the transaction building backend")
	flags.String(apikeyF, "", "API key for the transaction building backend")
	flags.String(environmentF, "", "Environment used for choosing the chain id. Supported values: TEST, MAIN")
	flags.Duration(requesttimeoutF, 0, "Timeout for requests to the backend")
	flags.String(contactsfileF, "", "Contacts file mapping aliases to addresses")
	flags.String(privatekeyF, "", "Private key of the wallet used for signing, as hex string")

	for flag, key := range flagsToBind {
		if err := cfgViper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// newSDK parses the configuration and initializes the SDK.
func newSDK(cmd *cobra.Command) (*sdk.SDK, error) {
	cfgFile, err := cmd.Flags().GetString(configfileF)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Parse(cfgViper, cfgFile)
	if err != nil {
		return nil, err
	}
	return sdk.New(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, redf("Error: %v", err))
		os.Exit(1)
	}
}
