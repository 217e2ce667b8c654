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
// Package user resolves the signing identity of the SDK user from its configuration.
package user

import (
	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

// User is the signing identity of the SDK user.
type User struct {
	Alias  string
	Wallet escrowsdk.Wallet
}

// New initializes the user for the given config using the given wallet backend.
func New(wb escrowsdk.WalletBackend, cfg Config) (User, error) {
	w, err := NewWallet(wb, cfg.Wallet)
	if err != nil {
		return User{}, err
	}
	return User{Alias: cfg.Alias, Wallet: w}, nil
}

// NewWallet loads the wallet from the single source set in the config.
func NewWallet(wb escrowsdk.WalletBackend, cfg WalletConfig) (w escrowsdk.Wallet, err error) {
	sources := 0
	for _, set := range []bool{cfg.PrivateKey != "", cfg.Mnemonic != "", cfg.KeystorePath != ""} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return escrowsdk.Wallet{}, errors.New("no wallet source: set one of private key, mnemonic or keystore")
	case sources > 1:
		return escrowsdk.Wallet{}, errors.New("multiple wallet sources: set only one of private key, mnemonic or keystore")
	}

	switch {
	case cfg.PrivateKey != "":
		w, err = wb.WalletFromPrivateKey(cfg.PrivateKey)
		err = errors.WithMessage(err, "loading wallet from private key")
	case cfg.Mnemonic != "":
		w, err = wb.WalletFromMnemonic(cfg.Mnemonic, cfg.Index)
		err = errors.WithMessage(err, "loading wallet from mnemonic")
	default:
		if cfg.Address == "" {
			return escrowsdk.Wallet{}, errors.New("address is required for loading wallet from keystore")
		}
		w, err = wb.WalletFromKeystore(cfg.KeystorePath, cfg.Address, cfg.Password)
		err = errors.WithMessage(err, "loading wallet from keystore")
	}
	if err != nil {
		return escrowsdk.Wallet{}, err
	}
	return w, nil
}
