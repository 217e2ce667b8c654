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
package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/config"
	"github.com/direct-state-transfer/escrow-sdk-go/user"
)

var (
	validConfigFile     = filepath.Join("testdata", "valid.yaml")
	corruptedConfigFile = filepath.Join("testdata", "corrupted.yaml")

	// test configuration as in the testdata file at testdata/valid.yaml
	validConfig = config.Config{
		Environment:    escrowsdk.EnvMain,
		APIURL:         "https://escrow.example.com/api/v1",
		APIKey:         "test-api-key",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "debug",
		LogFile:        "",
		ContactsFile:   "./contacts.yaml",
		User: user.Config{
			Alias: "alice",
			Wallet: user.WalletConfig{
				Mnemonic: "test test test test test test test test test test test junk",
				Index:    1,
			},
		},
	}
)

func Test_Parse(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		cfg, err := config.ParseFile(validConfigFile)
		require.NoError(t, err)
		assert.Equal(t, validConfig, cfg)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("happy_env_overrides_file", func(t *testing.T) {
		t.Setenv("ESCROW_APIKEY", "env-api-key")
		t.Setenv("ESCROW_USER_WALLET_PRIVATEKEY", "0x01")

		cfg, err := config.ParseFile(validConfigFile)
		require.NoError(t, err)
		assert.Equal(t, "env-api-key", cfg.APIKey)
		assert.Equal(t, "0x01", cfg.User.Wallet.PrivateKey)
	})

	t.Run("happy_env_only", func(t *testing.T) {
		t.Setenv("ESCROW_APIURL", "http://localhost:8080")
		t.Setenv("ESCROW_REQUESTTIMEOUT", "5s")

		cfg, err := config.Parse(viper.New(), "")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.APIURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, config.DefaultEnvironment, cfg.Environment)
		assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("happy_flag_overrides_file", func(t *testing.T) {
		v := viper.New()
		v.Set(config.LogLevelKey, "error")

		cfg, err := config.Parse(v, validConfigFile)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("err_missing_file", func(t *testing.T) {
		_, err := config.ParseFile("missing.yaml")
		assert.Error(t, err)
		t.Log(err)
	})

	t.Run("err_corrupted_file", func(t *testing.T) {
		_, err := config.ParseFile(corruptedConfigFile)
		assert.Error(t, err)
		t.Log(err)
	})

	t.Run("err_invalid_duration", func(t *testing.T) {
		t.Setenv("ESCROW_REQUESTTIMEOUT", "ten seconds")
		_, err := config.Parse(viper.New(), "")
		assert.Error(t, err)
		t.Log(err)
	})
}

func Test_Config_Validate(t *testing.T) {
	tests := map[string]func(cfg *config.Config){
		"invalid_environment": func(cfg *config.Config) { cfg.Environment = "STAGING" },
		"missing_api_url":     func(cfg *config.Config) { cfg.APIURL = "" },
		"relative_api_url":    func(cfg *config.Config) { cfg.APIURL = "/api/v1" },
		"invalid_scheme":      func(cfg *config.Config) { cfg.APIURL = "ftp://escrow.example.com" },
		"invalid_log_level":   func(cfg *config.Config) { cfg.LogLevel = "trace" },
		"negative_timeout":    func(cfg *config.Config) { cfg.RequestTimeout = -time.Second },
	}
	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig
			modify(&cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			t.Log(err)
		})
	}
	t.Run("happy", func(t *testing.T) {
		assert.NoError(t, validConfig.Validate())
	})
}
