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

package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/protocol"
)

// Signer signs raw transactions for the protocols in the EVM family.
type Signer struct{}

// NewSigner returns a signer for ethereum style transactions.
func NewSigner() *Signer {
	return &Signer{}
}

// SignTx implements escrowsdk.TxSigner.
//
// The chain id is taken from the raw transaction. If it is not present, the chain id of the protocol in the
// given environment is used. An EIP-1559 transaction is built when the raw transaction has maxFeePerGas,
// a legacy EIP-155 transaction otherwise.
func (s *Signer) SignTx(raw escrowsdk.RawTransaction, p escrowsdk.Protocol, privateKey string,
	env escrowsdk.Environment) (string, error) {
	info, ok := protocol.Lookup(p)
	if !ok || info.Family != protocol.EVM {
		return "", escrowsdk.NewErrUnsupportedProtocol(p)
	}
	key, err := ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	rawTx, err := DecodeRawTx(raw)
	if err != nil {
		return "", err
	}
	if err = rawTx.CheckFrom(crypto.PubkeyToAddress(key.PublicKey)); err != nil {
		return "", err
	}

	chainID := rawTx.ChainIDOr(info.ChainID(env))
	txData, err := txDataFromRaw(rawTx, chainID)
	if err != nil {
		return "", err
	}
	signedTx, err := types.SignTx(types.NewTx(txData), types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return "", errors.Wrap(err, "signing transaction")
	}
	encoded, err := signedTx.MarshalBinary()
	if err != nil {
		return "", errors.Wrap(err, "encoding signed transaction")
	}
	return hexutil.Encode(encoded), nil
}

func txDataFromRaw(rawTx RawTx, chainID *big.Int) (types.TxData, error) {
	nonce, err := rawTx.NonceValue()
	if err != nil {
		return nil, errors.WithMessage(err, "nonce")
	}
	gas, err := rawTx.GasLimitValue()
	if err != nil {
		return nil, errors.WithMessage(err, "gas limit")
	}
	to, err := rawTx.ToAddress()
	if err != nil {
		return nil, err
	}
	data, err := rawTx.DataBytes()
	if err != nil {
		return nil, err
	}

	if rawTx.MaxFeePerGas.IsSet() {
		return &types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: rawTx.MaxPriorityFeePerGas.Big(),
			GasFeeCap: rawTx.MaxFeePerGas.Big(),
			Gas:       gas,
			To:        to,
			Value:     rawTx.Value.Big(),
			Data:      data,
		}, nil
	}
	return &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: rawTx.GasPrice.Big(),
		Gas:      gas,
		To:       to,
		Value:    rawTx.Value.Big(),
		Data:     data,
	}, nil
}
