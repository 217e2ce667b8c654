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
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

func Test_parseTokenType(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		inputs := map[string]escrowsdk.TokenType{
			"":        escrowsdk.Native,
			"native":  escrowsdk.Native,
			"erc20":   escrowsdk.ERC20,
			"ERC721":  escrowsdk.ERC721,
			"Erc1155": escrowsdk.ERC1155,
		}
		for input, want := range inputs {
			got, err := parseTokenType(input)
			require.NoError(t, err, input)
			assert.Equal(t, want, got)
		}
	})
	t.Run("err_unknown", func(t *testing.T) {
		_, err := parseTokenType("ERC777")
		assert.Error(t, err)
	})
}

func Test_splitOptions(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		args, opts, err := splitOptions([]string{"CELO", "esc", "bob", "2030-01-01", "amount=1.5", "tokentype=ERC20"})
		require.NoError(t, err)
		assert.Equal(t, []string{"CELO", "esc", "bob", "2030-01-01"}, args)
		assert.Equal(t, map[string]string{amountOpt: "1.5", tokenTypeOpt: "ERC20"}, opts)
	})
	t.Run("err_unknown_option", func(t *testing.T) {
		_, _, err := splitOptions([]string{"CELO", "fee=1"})
		assert.Error(t, err)
	})
	t.Run("err_arg_after_option", func(t *testing.T) {
		_, _, err := splitOptions([]string{"CELO", "amount=1", "bob"})
		assert.Error(t, err)
	})
}

func Test_convertUnits(t *testing.T) {
	t.Run("happy_to_base", func(t *testing.T) {
		got, err := convertUnits("celo", "1.5", false)
		require.NoError(t, err)
		assert.Equal(t, "1500000000000000000", got)
	})
	t.Run("happy_to_display", func(t *testing.T) {
		got, err := convertUnits("MATIC", "2500000000000000000", true)
		require.NoError(t, err)
		assert.Equal(t, "2.500000 MATIC", got)
	})
	t.Run("err_unknown_protocol", func(t *testing.T) {
		_, err := convertUnits("SOLANA", "1", false)
		assert.Error(t, err)
	})
	t.Run("err_invalid_amount", func(t *testing.T) {
		_, err := convertUnits("ETHEREUM", "abc", false)
		assert.Error(t, err)
		_, err = convertUnits("ETHEREUM", "1.5", true)
		assert.Error(t, err)
	})
}
