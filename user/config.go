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
package user

// WalletConfig defines the parameters required to load the wallet used for signing. Exactly one source
// should be set: a private key, a mnemonic (with the index of the account to derive) or a keystore.
type WalletConfig struct {
	PrivateKey string `mapstructure:"privatekey"`

	Mnemonic string `mapstructure:"mnemonic"`
	Index    uint32 `mapstructure:"index"`

	KeystorePath string `mapstructure:"keystorepath"`
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
}

// Config defines the parameters required to configure a user.
type Config struct {
	Alias  string       `mapstructure:"alias"`
	Wallet WalletConfig `mapstructure:"wallet"`
}
