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
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

// ParsePrivateKey parses a hex encoded secp256k1 private key, with or without the 0x prefix.
func ParsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	privateKey = strings.TrimSpace(privateKey)
	privateKey = strings.TrimPrefix(strings.TrimPrefix(privateKey, "0x"), "0X")
	if privateKey == "" {
		return nil, errors.New("empty private key")
	}
	key, err := crypto.HexToECDSA(privateKey)
	return key, errors.Wrap(err, "parsing private key")
}

// WalletFromKey returns the wallet for the given key.
func WalletFromKey(key *ecdsa.PrivateKey) escrowsdk.Wallet {
	return escrowsdk.Wallet{
		Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(key)),
	}
}
