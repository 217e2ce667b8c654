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
	"bytes"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

// Quantity is a numeric field in a raw transaction. The backend may encode it as a JSON number,
// a decimal string or a 0x prefixed hex string. A missing, null or empty value is unset.
type Quantity struct {
	v *big.Int
}

// NewQuantity returns a quantity set to the given value.
func NewQuantity(v int64) Quantity {
	return Quantity{v: big.NewInt(v)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		q.v = nil
		return nil
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WithStack(err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			q.v = nil
			return nil
		}
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return errors.Errorf("invalid quantity %s", s)
	}
	q.v = v
	return nil
}

// IsSet reports if the field had a value in the raw transaction.
func (q Quantity) IsSet() bool {
	return q.v != nil
}

// Big returns a copy of the value, or zero if it is unset.
func (q Quantity) Big() *big.Int {
	if q.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(q.v)
}

// Uint64 returns the value as uint64, or zero if it is unset.
func (q Quantity) Uint64() (uint64, error) {
	if q.v == nil {
		return 0, nil
	}
	if !q.v.IsUint64() {
		return 0, errors.Errorf("value %s does not fit in uint64", q.v)
	}
	return q.v.Uint64(), nil
}

// RawTx is the decoded form of an unsigned transaction returned by the backend. It is a superset of
// the fields used by Ethereum style and Celo style transactions.
type RawTx struct {
	From                 string   `json:"from"`
	To                   string   `json:"to"`
	Nonce                Quantity `json:"nonce"`
	GasPrice             Quantity `json:"gasPrice"`
	GasLimit             Quantity `json:"gasLimit"`
	Gas                  Quantity `json:"gas"`
	Value                Quantity `json:"value"`
	Data                 string   `json:"data"`
	ChainID              Quantity `json:"chainId"`
	MaxFeePerGas         Quantity `json:"maxFeePerGas"`
	MaxPriorityFeePerGas Quantity `json:"maxPriorityFeePerGas"`
	FeeCurrency          string   `json:"feeCurrency"`
	GatewayFeeRecipient  string   `json:"gatewayFeeRecipient"`
	GatewayFee           Quantity `json:"gatewayFee"`
}

// DecodeRawTx decodes the raw transaction returned by the backend.
func DecodeRawTx(raw escrowsdk.RawTransaction) (RawTx, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return RawTx{}, errors.New("empty raw transaction")
	}
	var tx RawTx
	if err := json.Unmarshal(raw, &tx); err != nil {
		return RawTx{}, errors.Wrap(err, "decoding raw transaction")
	}
	return tx, nil
}

// GasLimitValue returns the gas limit, which may be given either as gasLimit or as gas.
func (tx RawTx) GasLimitValue() (uint64, error) {
	if tx.GasLimit.IsSet() {
		return tx.GasLimit.Uint64()
	}
	return tx.Gas.Uint64()
}

// NonceValue returns the nonce.
func (tx RawTx) NonceValue() (uint64, error) {
	return tx.Nonce.Uint64()
}

// ChainIDOr returns the chain id in the transaction, or the given default if it is unset or zero.
func (tx RawTx) ChainIDOr(def int64) *big.Int {
	if !tx.ChainID.IsSet() || tx.ChainID.Big().Sign() == 0 {
		return big.NewInt(def)
	}
	return tx.ChainID.Big()
}

// ToAddress returns the recipient. It returns nil for contract creation.
func (tx RawTx) ToAddress() (*common.Address, error) {
	return optionalAddress("to", tx.To)
}

// FeeCurrencyAddress returns the fee currency. It returns nil when fees are paid in the native currency.
func (tx RawTx) FeeCurrencyAddress() (*common.Address, error) {
	return optionalAddress("feeCurrency", tx.FeeCurrency)
}

// GatewayFeeRecipientAddress returns the gateway fee recipient. It returns nil when it is unset.
func (tx RawTx) GatewayFeeRecipientAddress() (*common.Address, error) {
	return optionalAddress("gatewayFeeRecipient", tx.GatewayFeeRecipient)
}

// DataBytes returns the call data. The hex string may omit the 0x prefix.
func (tx RawTx) DataBytes() ([]byte, error) {
	data := strings.TrimSpace(tx.Data)
	if data == "" {
		return nil, nil
	}
	if !strings.HasPrefix(data, "0x") && !strings.HasPrefix(data, "0X") {
		data = "0x" + data
	}
	b, err := hexutil.Decode(data)
	return b, errors.Wrap(err, "decoding data")
}

// CheckFrom returns an error if the raw transaction names a sender other than addr.
func (tx RawTx) CheckFrom(addr common.Address) error {
	if strings.TrimSpace(tx.From) == "" {
		return nil
	}
	if !common.IsHexAddress(tx.From) {
		return errors.Errorf("invalid from address %s", tx.From)
	}
	if common.HexToAddress(tx.From) != addr {
		return errors.Errorf("from address %s does not match the signing key %s", tx.From, addr.Hex())
	}
	return nil
}

func optionalAddress(name, s string) (*common.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" {
		return nil, nil
	}
	if !common.IsHexAddress(s) {
		return nil, errors.Errorf("invalid %s address %s", name, s)
	}
	addr := common.HexToAddress(s)
	return &addr, nil
}
