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

// Package celo signs transactions in the legacy Celo format. It differs from the ethereum legacy format in
// three extra fields (feeCurrency, gatewayFeeRecipient and gatewayFee) placed after the gas limit.
package celo

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/blockchain/ethereum"
	"github.com/direct-state-transfer/escrow-sdk-go/protocol"
)

// Tx is a signed Celo legacy transaction, in the order of the fields in its RLP encoding.
type Tx struct {
	Nonce               uint64
	GasPrice            *big.Int
	Gas                 uint64
	FeeCurrency         *common.Address `rlp:"nil"`
	GatewayFeeRecipient *common.Address `rlp:"nil"`
	GatewayFee          *big.Int
	To                  *common.Address `rlp:"nil"`
	Value               *big.Int
	Data                []byte
	V, R, S             *big.Int
}

// signingPayload is hashed for EIP-155 signatures: the unsigned fields followed by chainID, 0, 0.
type signingPayload struct {
	Nonce               uint64
	GasPrice            *big.Int
	Gas                 uint64
	FeeCurrency         *common.Address `rlp:"nil"`
	GatewayFeeRecipient *common.Address `rlp:"nil"`
	GatewayFee          *big.Int
	To                  *common.Address `rlp:"nil"`
	Value               *big.Int
	Data                []byte
	ChainID             *big.Int
	Zero1, Zero2        uint
}

// unprotectedPayload is hashed for signatures without replay protection.
type unprotectedPayload struct {
	Nonce               uint64
	GasPrice            *big.Int
	Gas                 uint64
	FeeCurrency         *common.Address `rlp:"nil"`
	GatewayFeeRecipient *common.Address `rlp:"nil"`
	GatewayFee          *big.Int
	To                  *common.Address `rlp:"nil"`
	Value               *big.Int
	Data                []byte
}

// SigningHash returns the hash to be signed for the given chain id.
func (tx *Tx) SigningHash(chainID *big.Int) (common.Hash, error) {
	var payload interface{}
	if chainID == nil {
		payload = unprotectedPayload{
			tx.Nonce, tx.GasPrice, tx.Gas, tx.FeeCurrency, tx.GatewayFeeRecipient, tx.GatewayFee,
			tx.To, tx.Value, tx.Data,
		}
	} else {
		payload = signingPayload{
			tx.Nonce, tx.GasPrice, tx.Gas, tx.FeeCurrency, tx.GatewayFeeRecipient, tx.GatewayFee,
			tx.To, tx.Value, tx.Data, chainID, 0, 0,
		}
	}
	encoded, err := rlp.EncodeToBytes(payload)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "encoding signing payload")
	}
	return crypto.Keccak256Hash(encoded), nil
}

// ChainID derives the chain id from V. It returns nil for transactions without replay protection.
func (tx *Tx) ChainID() *big.Int {
	if tx.V == nil || tx.V.Cmp(big.NewInt(35)) < 0 {
		return nil
	}
	id := new(big.Int).Sub(tx.V, big.NewInt(35))
	return id.Rsh(id, 1)
}

// Signer signs raw transactions for the Celo protocol.
type Signer struct{}

// NewSigner returns a signer for Celo transactions.
func NewSigner() *Signer {
	return &Signer{}
}

// SignTx implements escrowsdk.TxSigner.
//
// The chain id is taken from the raw transaction. If it is not present, the chain id for the environment is
// used. Raw transactions carrying only maxFeePerGas use it as the gas price, as the legacy format has no
// separate fee cap.
func (s *Signer) SignTx(raw escrowsdk.RawTransaction, p escrowsdk.Protocol, privateKey string,
	env escrowsdk.Environment) (string, error) {
	info, ok := protocol.Lookup(p)
	if !ok || info.Family != protocol.CeloFamily {
		return "", escrowsdk.NewErrUnsupportedProtocol(p)
	}
	key, err := ethereum.ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	rawTx, err := ethereum.DecodeRawTx(raw)
	if err != nil {
		return "", err
	}
	if err = rawTx.CheckFrom(crypto.PubkeyToAddress(key.PublicKey)); err != nil {
		return "", err
	}

	tx, err := txFromRaw(rawTx)
	if err != nil {
		return "", err
	}
	chainID := rawTx.ChainIDOr(info.ChainID(env))
	hash, err := tx.SigningHash(chainID)
	if err != nil {
		return "", err
	}
	sig, err := crypto.Sign(hash[:], key)
	if err != nil {
		return "", errors.Wrap(err, "signing transaction")
	}
	tx.R = new(big.Int).SetBytes(sig[:32])
	tx.S = new(big.Int).SetBytes(sig[32:64])
	tx.V = new(big.Int).Mul(chainID, big.NewInt(2))
	tx.V.Add(tx.V, big.NewInt(int64(sig[64])+35))

	encoded, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return "", errors.Wrap(err, "encoding signed transaction")
	}
	return hexutil.Encode(encoded), nil
}

func txFromRaw(rawTx ethereum.RawTx) (*Tx, error) {
	nonce, err := rawTx.NonceValue()
	if err != nil {
		return nil, errors.WithMessage(err, "nonce")
	}
	gas, err := rawTx.GasLimitValue()
	if err != nil {
		return nil, errors.WithMessage(err, "gas limit")
	}
	feeCurrency, err := rawTx.FeeCurrencyAddress()
	if err != nil {
		return nil, err
	}
	gatewayFeeRecipient, err := rawTx.GatewayFeeRecipientAddress()
	if err != nil {
		return nil, err
	}
	to, err := rawTx.ToAddress()
	if err != nil {
		return nil, err
	}
	data, err := rawTx.DataBytes()
	if err != nil {
		return nil, err
	}

	gasPrice := rawTx.GasPrice.Big()
	if !rawTx.GasPrice.IsSet() && rawTx.MaxFeePerGas.IsSet() {
		gasPrice = rawTx.MaxFeePerGas.Big()
	}
	return &Tx{
		Nonce:               nonce,
		GasPrice:            gasPrice,
		Gas:                 gas,
		FeeCurrency:         feeCurrency,
		GatewayFeeRecipient: gatewayFeeRecipient,
		GatewayFee:          rawTx.GatewayFee.Big(),
		To:                  to,
		Value:               rawTx.Value.Big(),
		Data:                data,
	}, nil
}

// Decode decodes a hex encoded, signed Celo transaction.
func Decode(signedTx string) (*Tx, error) {
	encoded, err := hexutil.Decode(signedTx)
	if err != nil {
		return nil, errors.Wrap(err, "decoding hex")
	}
	tx := new(Tx)
	if err := rlp.DecodeBytes(encoded, tx); err != nil {
		return nil, errors.Wrap(err, "decoding rlp")
	}
	return tx, nil
}

// Sender recovers the address that signed the transaction.
func Sender(tx *Tx) (common.Address, error) {
	if tx.V == nil || tx.R == nil || tx.S == nil {
		return common.Address{}, errors.New("transaction is not signed")
	}
	chainID := tx.ChainID()
	recID := new(big.Int).Set(tx.V)
	if chainID != nil {
		recID.Sub(recID, new(big.Int).Mul(chainID, big.NewInt(2)))
		recID.Sub(recID, big.NewInt(35))
	} else {
		recID.Sub(recID, big.NewInt(27))
	}
	if !recID.IsUint64() || recID.Uint64() > 1 {
		return common.Address{}, errors.Errorf("invalid signature value v %s", tx.V)
	}
	if !crypto.ValidateSignatureValues(byte(recID.Uint64()), tx.R, tx.S, true) {
		return common.Address{}, errors.New("invalid signature values")
	}

	hash, err := tx.SigningHash(chainID)
	if err != nil {
		return common.Address{}, err
	}
	sig := make([]byte, crypto.SignatureLength)
	tx.R.FillBytes(sig[:32])
	tx.S.FillBytes(sig[32:64])
	sig[64] = byte(recID.Uint64())

	pub, err := crypto.SigToPub(hash[:], sig)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "recovering public key")
	}
	return crypto.PubkeyToAddress(*pub), nil
}
