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
// Package config parses and validates the configuration of the SDK from a config file, environment
// variables and, when used from the command line, flags bound to the same viper instance.
package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/user"
)

// EnvPrefix is the prefix of the environment variables that override the values in config file.
// For example, apikey can be set using ESCROW_APIKEY and user.wallet.privatekey using
// ESCROW_USER_WALLET_PRIVATEKEY.
const EnvPrefix = "ESCROW"

// Keys of the configuration parameters.
const (
	EnvironmentKey    = "environment"
	APIURLKey         = "apiurl"
	APIKeyKey         = "apikey"
	RequestTimeoutKey = "requesttimeout"
	LogLevelKey       = "loglevel"
	LogFileKey        = "logfile"
	ContactsFileKey   = "contactsfile"
)

// Default values of the configuration parameters.
const (
	DefaultEnvironment    = escrowsdk.EnvTest
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Config represents the configuration parameters of the SDK.
type Config struct {
	Environment    escrowsdk.Environment `mapstructure:"environment"`
	APIURL         string                `mapstructure:"apiurl"`
	APIKey         string                `mapstructure:"apikey"`
	RequestTimeout time.Duration         `mapstructure:"requesttimeout"`

	LogLevel string `mapstructure:"loglevel"`
	LogFile  string `mapstructure:"logfile"`

	ContactsFile string      `mapstructure:"contactsfile"` // Optional. Contacts are not loaded if empty.
	User         user.Config `mapstructure:"user"`
}

// Parse parses the configuration from the config file (if not empty) and the environment using the given
// viper instance. Values in the environment and flags bound to the viper instance take precedence over
// those in the config file.
func Parse(v *viper.Viper, configFile string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(filepath.Clean(configFile))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	cfg.Environment = escrowsdk.Environment(strings.ToUpper(strings.TrimSpace(string(cfg.Environment))))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return cfg, nil
}

// ParseFile is a shorthand for parsing the config file using a new viper instance.
func ParseFile(configFile string) (Config, error) {
	return Parse(viper.New(), configFile)
}

// setDefaults sets the default value for every key, which also enables the environment variables
// for keys not present in the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault(EnvironmentKey, string(DefaultEnvironment))
	v.SetDefault(APIURLKey, "")
	v.SetDefault(APIKeyKey, "")
	v.SetDefault(RequestTimeoutKey, DefaultRequestTimeout)
	v.SetDefault(LogLevelKey, DefaultLogLevel)
	v.SetDefault(LogFileKey, "")
	v.SetDefault(ContactsFileKey, "")

	v.SetDefault("user.alias", "")
	for _, key := range []string{"privatekey", "mnemonic", "keystorepath", "address", "password"} {
		v.SetDefault("user.wallet."+key, "")
	}
	v.SetDefault("user.wallet.index", 0)
}

// Validate checks if the values in the config are valid.
func (cfg Config) Validate() error {
	switch cfg.Environment {
	case escrowsdk.EnvTest, escrowsdk.EnvMain:
	default:
		return errors.Errorf("invalid environment %q, should be one of %s, %s",
			cfg.Environment, escrowsdk.EnvTest, escrowsdk.EnvMain)
	}

	if cfg.APIURL == "" {
		return errors.New("api url is required")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return errors.Wrap(err, "parsing api url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("invalid api url %q, should be an absolute http or https url", cfg.APIURL)
	}

	switch cfg.LogLevel {
	case "debug", "info", "error":
	default:
		return errors.Errorf("invalid log level %q, should be one of debug, info, error", cfg.LogLevel)
	}

	if cfg.RequestTimeout < 0 {
		return errors.Errorf("invalid request timeout %v, should not be negative", cfg.RequestTimeout)
	}
	return nil
}
