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

package implementation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

// DefaultHDPath is the root path used for deriving keys in the hierarchial deterministic wallet.
// The index of the account is appended to it.
const DefaultHDPath = "m/44'/60'/0'/0/"

// mnemonicBits is the entropy used for generating new mnemonics, resulting in 12 words.
const mnemonicBits = 128

// WalletBackend provides ethereum specific wallet backend functionality.
type WalletBackend struct {
	EncParams ScryptParams
}

// ScryptParams defines the parameters for scrypt algorithm. It determines the security level of algorithm
// used for encrypting the keys for storage on disk.
//
// Weak values should be used only for testing purposes (enables faster unlockcing). Use standard values otherwise.
type ScryptParams struct {
	N, P int
}

// ParseAddr parses the ethereum address from the given string and returns it in checksummed form.
func (wb *WalletBackend) ParseAddr(str string) (string, error) {
	if !common.IsHexAddress(str) {
		return "", errors.Errorf("invalid address %q, should be 20 bytes hex string with optional 0x prefix", str)
	}
	return common.HexToAddress(str).Hex(), nil
}

// GenerateWallet generates a new mnemonic and returns the wallet for the first account derived from it.
func (wb *WalletBackend) GenerateWallet() (escrowsdk.Wallet, error) {
	mnemonic, err := hdwallet.NewMnemonic(mnemonicBits)
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "generating mnemonic")
	}
	return wb.WalletFromMnemonic(mnemonic, 0)
}

// WalletFromMnemonic derives the account at the given index from the mnemonic.
func (wb *WalletBackend) WalletFromMnemonic(mnemonic string, index uint32) (escrowsdk.Wallet, error) {
	w, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "initializing hd wallet")
	}
	path, err := hdwallet.ParseDerivationPath(fmt.Sprintf("%s%d", DefaultHDPath, index))
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "parsing derivation path")
	}
	acc, err := w.Derive(path, false)
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "deriving account")
	}
	key, err := w.PrivateKey(acc)
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "retrieving private key")
	}
	wallet := WalletFromKey(key)
	wallet.Mnemonic = mnemonic
	return wallet, nil
}

// WalletFromPrivateKey returns the wallet for the given hex encoded private key.
func (wb *WalletBackend) WalletFromPrivateKey(privateKey string) (escrowsdk.Wallet, error) {
	key, err := ParsePrivateKey(privateKey)
	if err != nil {
		return escrowsdk.Wallet{}, err
	}
	return WalletFromKey(key), nil
}

// WalletFromKeystore retrieves the key for the given address from the ethereum keystore at the given path
// and decrypts it with the password.
func (wb *WalletBackend) WalletFromKeystore(keystorePath, address, password string) (escrowsdk.Wallet, error) {
	if _, err := os.Stat(keystorePath); os.IsNotExist(err) {
		return escrowsdk.Wallet{}, errors.New("dir does not exists - " + keystorePath)
	}
	if !common.IsHexAddress(address) {
		return escrowsdk.Wallet{}, errors.Errorf("invalid address %q", address)
	}
	ks := keystore.NewKeyStore(keystorePath, wb.EncParams.N, wb.EncParams.P)
	acc, err := ks.Find(accounts.Account{Address: common.HexToAddress(address)})
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "finding account in keystore")
	}
	keyJSON, err := os.ReadFile(filepath.Clean(acc.URL.Path))
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "reading key file")
	}
	key, err := keystore.DecryptKey(keyJSON, password)
	if err != nil {
		return escrowsdk.Wallet{}, errors.Wrap(err, "decrypting key")
	}
	return WalletFromKey(key.PrivateKey), nil
}
