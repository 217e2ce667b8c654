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
// Package sdk wires the components of the escrow SDK from a single configuration: logger, REST client,
// transaction sender, signers, escrow controller, wallet backend, contacts and the signing user.
package sdk

import (
	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/api/rest"
	"github.com/direct-state-transfer/escrow-sdk-go/blockchain/celo"
	"github.com/direct-state-transfer/escrow-sdk-go/blockchain/ethereum"
	"github.com/direct-state-transfer/escrow-sdk-go/config"
	"github.com/direct-state-transfer/escrow-sdk-go/contacts/contactsyaml"
	"github.com/direct-state-transfer/escrow-sdk-go/escrow"
	"github.com/direct-state-transfer/escrow-sdk-go/log"
	"github.com/direct-state-transfer/escrow-sdk-go/transaction"
	"github.com/direct-state-transfer/escrow-sdk-go/user"
)

// SDK holds the initialized components.
type SDK struct {
	log.Logger

	cfg  config.Config
	user *user.User

	Escrow       *escrow.Controller
	Transactions *transaction.Controller
	Wallets      escrowsdk.WalletBackend
	Contacts     escrowsdk.Contacts // Nil if no contacts file is configured.
}

// New validates the config and initializes the SDK.
//
// The user is loaded only if a wallet source is configured. Operations that sign transactions can still
// be used with any other wallet.
func New(cfg config.Config) (*SDK, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "validating config")
	}
	if err := log.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, errors.WithMessage(err, "initializing logger")
	}

	client, err := rest.NewClient(rest.Config{
		BaseURL: cfg.APIURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "initializing rest client")
	}
	wb := ethereum.NewWalletBackend()
	txs := transaction.NewController(client)
	signers := escrow.Signers{EVM: ethereum.NewSigner(), Celo: celo.NewSigner()}

	s := &SDK{
		Logger:       log.NewLoggerWithField("component", "sdk"),
		cfg:          cfg,
		Escrow:       escrow.NewController(cfg.Environment, client, txs, signers, wb),
		Transactions: txs,
		Wallets:      wb,
	}

	if cfg.ContactsFile != "" {
		contacts, err := contactsyaml.New(cfg.ContactsFile, wb)
		if err != nil {
			return nil, errors.WithMessage(err, "initializing contacts")
		}
		s.Contacts = contacts
	}

	if cfg.User.Wallet != (user.WalletConfig{}) {
		u, err := user.New(wb, cfg.User)
		if err != nil {
			return nil, errors.WithMessage(err, "initializing user")
		}
		s.user = &u
		s.WithField("address", u.Wallet.Address).Info("Loaded user wallet")
	}

	s.WithField("environment", cfg.Environment).WithField("apiurl", cfg.APIURL).Info("Initialized escrow sdk")
	return s, nil
}

// Config returns the config used for initializing the SDK. Secrets are masked.
func (s *SDK) Config() config.Config {
	cfg := s.cfg
	cfg.APIKey = mask(cfg.APIKey)
	cfg.User.Wallet.PrivateKey = mask(cfg.User.Wallet.PrivateKey)
	cfg.User.Wallet.Mnemonic = mask(cfg.User.Wallet.Mnemonic)
	cfg.User.Wallet.Password = mask(cfg.User.Wallet.Password)
	return cfg
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "****"
}

// User returns the configured user. Returns an error if no wallet source is configured.
func (s *SDK) User() (user.User, error) {
	if s.user == nil {
		return user.User{}, errors.New("no user wallet configured")
	}
	return *s.user, nil
}

// ResolveAddress returns the address for the given alias, if it is present in the contacts. Else, it
// parses the input as an address.
func (s *SDK) ResolveAddress(aliasOrAddr string) (string, error) {
	if s.Contacts != nil {
		if addr, ok := s.Contacts.ReadByAlias(aliasOrAddr); ok {
			return addr, nil
		}
	}
	addr, err := s.Wallets.ParseAddr(aliasOrAddr)
	if err != nil {
		return "", errors.Errorf("%q is neither a known alias nor a valid address", aliasOrAddr)
	}
	return addr, nil
}
