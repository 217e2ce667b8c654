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

package currency

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Symbols of the native currencies of supported protocols.
const (
	ETH   = "ETH"
	CELO  = "CELO"
	BNB   = "BNB"
	MATIC = "MATIC"
	AVAX  = "AVAX"

	nativeDecimals = 18 // all supported native coins use 18 decimal places for the base unit.
	placesToRound  = 6
)

// Parser converts amounts between the display unit of a currency and its base unit.
type Parser interface {
	Parse(string) (*big.Int, error)
	Print(*big.Int) string
	Symbol() string
}

var currencies map[string]Parser

func init() {
	currencies = make(map[string]Parser)

	multiplier := decimal.New(1, nativeDecimals)
	for _, symbol := range []string{ETH, CELO, BNB, MATIC, AVAX} {
		currencies[symbol] = nativeParser{symbol: symbol, multiplier: multiplier, placesToRound: placesToRound}
	}
}

// IsSupported checks if there is parser regsitered for the currency
// represented by the given string.
func IsSupported(currency string) bool {
	p, ok := currencies[currency]
	return ok && p != nil
}

// NewParser returns the currency parser. It returns nil if unsupported currency is used.
// so check if exists before usage.
func NewParser(currency string) Parser {
	return currencies[currency]
}

// ValidateAmount checks if the input is a decimal string representing a value larger than zero.
// Amounts are passed to the backend in display units, so no conversion is done.
func ValidateAmount(input string) error {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return errors.Wrap(err, "invalid decimal string")
	}
	if !amount.IsPositive() {
		return errors.New("amount should be larger than zero")
	}
	return nil
}

// ValidateTokenID checks if the input is a base 10 integer that is zero or larger.
func ValidateTokenID(input string) error {
	id, ok := new(big.Int).SetString(input, 10)
	if !ok {
		return errors.New("invalid integer string")
	}
	if id.Sign() < 0 {
		return errors.New("token id should not be negative")
	}
	return nil
}

type nativeParser struct {
	symbol        string
	multiplier    decimal.Decimal
	placesToRound int32
}

// Parse parses the given amount in display units, converts it to the base unit and returns a
// big.Int representation of the value.
// It can parse decimal values upto 1e-18 (the minimum value of the currency) and convert it
// to corresponding amount in base unit without loss of accuracy.
func (p nativeParser) Parse(input string) (*big.Int, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decimal string")
	}

	amountBaseUnit := amount.Mul(p.multiplier)
	if amountBaseUnit.LessThan(decimal.NewFromInt(1)) {
		return nil, errors.New("amount is too small, should be larger than 1e-18")
	}
	return amountBaseUnit.BigInt(), nil
}

// Print converts the input in base unit to display unit and returns a string representation of it.
// The returned string is rounded off to 6 decimal places for visual representation.
func (p nativeParser) Print(input *big.Int) string {
	amount := decimal.NewFromBigInt(input, 0)
	return amount.Div(p.multiplier).StringFixedBank(p.placesToRound)
}

func (p nativeParser) Symbol() string {
	return p.symbol
}
