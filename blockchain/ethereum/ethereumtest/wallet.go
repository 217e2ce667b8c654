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

// Package ethereumtest provides helpers for tests that need ethereum wallets, keystores and raw
// transactions. It uses weak encryption parameters for keystores, so that keys can be unlocked faster.
package ethereumtest

import (
	"crypto/ecdsa"
	"encoding/json"
	"math/rand"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/stretchr/testify/require"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/blockchain/ethereum/internal/implementation"
)

// Weak encryption parameters used for creating test wallets that can be decrypted and unlocked faster.
const (
	weakScryptN = 2
	weakScryptP = 1
)

// Mnemonic used by common development chains (hardhat, anvil). The accounts derived from it on the
// default path are well known, which makes it useful for testing derivation.
const (
	DevMnemonic        = "test test test test test test test test test test test junk"
	DevAddress0        = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	DevPrivateKey0     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	DevAddress1        = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	DevPrivateKey1     = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	defaultKeyPassword = ""
)

// NewTestWalletBackend initializes an ethereum specific wallet backend with weak encryption parameters.
func NewTestWalletBackend() escrowsdk.WalletBackend {
	return &implementation.WalletBackend{EncParams: implementation.ScryptParams{N: weakScryptN, P: weakScryptP}}
}

// WalletSetup can generate any number of keys for testing. To enable faster unlocking of keys, it uses
// weak encryption parameters for storage encryption of keys.
type WalletSetup struct {
	WalletBackend escrowsdk.WalletBackend
	KeystorePath  string
	Keystore      *keystore.KeyStore
	Password      string
	Wallets       []escrowsdk.Wallet
}

// NewWalletSetup initializes a keystore with n keys. Empty password string and weak encrytion parameters are used.
func NewWalletSetup(t *testing.T, rng *rand.Rand, n int) *WalletSetup {
	wb := NewTestWalletBackend()

	ksPath, err := os.MkdirTemp("", "escrow-sdk-test-keystore-*")
	if err != nil {
		t.Fatalf("Could not create temporary directory for keystore: %v", err)
	}
	ks := keystore.NewKeyStore(ksPath, weakScryptN, weakScryptP)
	wallets := make([]escrowsdk.Wallet, n)
	for idx := 0; idx < n; idx++ {
		key := NewRandomKey(t, rng)
		_, err := ks.ImportECDSA(key, defaultKeyPassword)
		require.NoError(t, err)
		wallets[idx] = implementation.WalletFromKey(key)
	}

	t.Cleanup(func() { os.RemoveAll(ksPath) }) // nolint: errcheck
	return &WalletSetup{
		WalletBackend: wb,
		KeystorePath:  ksPath,
		Keystore:      ks,
		Password:      defaultKeyPassword,
		Wallets:       wallets,
	}
}

// NewRandomKey generates a private key using the given source of randomness.
func NewRandomKey(t *testing.T, rng *rand.Rand) *ecdsa.PrivateKey {
	key, err := ecdsa.GenerateKey(crypto.S256(), rng)
	require.NoError(t, err)
	return key
}

// NewTestWallet returns a wallet with a random key. The key is not stored in any keystore.
func NewTestWallet(t *testing.T, rng *rand.Rand) escrowsdk.Wallet {
	return implementation.WalletFromKey(NewRandomKey(t, rng))
}

// NewRandomAddress generates a random wallet address. It generates the address only as a byte array.
// Hence it does not generate any public or private keys corresponding to the address.
// If you need an address with keys, use NewTestWallet.
func NewRandomAddress(rng *rand.Rand) string {
	var a common.Address
	rng.Read(a[:])
	return a.Hex()
}

// NewRandomMnemonic derives a mnemonic from entropy read from the given source of randomness.
func NewRandomMnemonic(t *testing.T, rng *rand.Rand) string {
	entropy := make([]byte, 16)
	_, err := rng.Read(entropy)
	require.NoError(t, err)
	mnemonic, err := hdwallet.NewMnemonicFromEntropy(entropy)
	require.NoError(t, err)
	return mnemonic
}

// RawTxParams holds the fields for building a raw transaction in the format returned by the backend.
// Zero values are omitted from the generated transaction.
type RawTxParams struct {
	From                 string
	To                   string
	Nonce                uint64
	GasPrice             string
	GasLimit             string
	Value                string
	Data                 string
	ChainID              int64
	MaxFeePerGas         string
	MaxPriorityFeePerGas string
	FeeCurrency          string
}

// NewRawTx encodes the params as a raw transaction.
func NewRawTx(t *testing.T, p RawTxParams) escrowsdk.RawTransaction {
	fields := map[string]interface{}{
		"from":  p.From,
		"to":    p.To,
		"nonce": p.Nonce,
	}
	optional := map[string]string{
		"gasPrice":             p.GasPrice,
		"gasLimit":             p.GasLimit,
		"value":                p.Value,
		"data":                 p.Data,
		"maxFeePerGas":         p.MaxFeePerGas,
		"maxPriorityFeePerGas": p.MaxPriorityFeePerGas,
		"feeCurrency":          p.FeeCurrency,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}
	if p.ChainID != 0 {
		fields["chainId"] = p.ChainID
	}
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	return raw
}
