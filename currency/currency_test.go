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

package currency_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/escrow-sdk-go/currency"
)

func Test_Parser_Parse(t *testing.T) {
	for _, symbol := range []string{currency.ETH, currency.CELO, currency.BNB, currency.MATIC, currency.AVAX} {
		require.True(t, currency.IsSupported(symbol), symbol)
		p := currency.NewParser(symbol)
		require.NotNil(t, p)
		assert.Equal(t, symbol, p.Symbol())
	}

	p := currency.NewParser(currency.ETH)
	t.Run("happy", func(t *testing.T) {
		got, err := p.Parse("1.5")
		require.NoError(t, err)
		want, _ := new(big.Int).SetString("1500000000000000000", 10)
		assert.Equal(t, want, got)

		got, err = p.Parse("0.000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1), got)
	})

	t.Run("err_too_small", func(t *testing.T) {
		_, err := p.Parse("0.0000000000000000001")
		assert.Error(t, err)
	})

	t.Run("err_invalid", func(t *testing.T) {
		_, err := p.Parse("one")
		assert.Error(t, err)
	})
}

func Test_Parser_Print(t *testing.T) {
	p := currency.NewParser(currency.CELO)
	input, _ := new(big.Int).SetString("1234567890000000000", 10)
	assert.Equal(t, "1.234568", p.Print(input))
	assert.Equal(t, "0.000000", p.Print(big.NewInt(1)))
}

func Test_ValidateAmount(t *testing.T) {
	for _, valid := range []string{"1", "0.1", "100.000001", "1e3"} {
		assert.NoError(t, currency.ValidateAmount(valid), valid)
	}
	for _, invalid := range []string{"", "0", "-1", "abc", "0x10"} {
		assert.Error(t, currency.ValidateAmount(invalid), invalid)
	}
}

func Test_ValidateTokenID(t *testing.T) {
	for _, valid := range []string{"0", "1", "115792089237316195423570985008687907853269984665640564039457584007913129639935"} {
		assert.NoError(t, currency.ValidateTokenID(valid), valid)
	}
	for _, invalid := range []string{"", "-1", "1.5", "abc"} {
		assert.Error(t, currency.ValidateTokenID(invalid), invalid)
	}
}
