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

package escrow

import (
	"strings"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/currency"
	"github.com/direct-state-transfer/escrow-sdk-go/protocol"
)

const (
	addrRequirement     = "20 bytes hex string with optional 0x prefix"
	amountRequirement   = "decimal string larger than zero"
	tokenIDRequirement  = "base 10 integer string, zero or larger"
	allTokenTypes       = "one of Native, ERC20, ERC721, ERC1155"
	approvalTokenTypes  = "one of ERC20, ERC721, ERC1155"
	escrowTypeDate      = "date"
	releaseDateRequired = "non empty string"
)

// validator collects the normalized values of the fields checked so far. Checks are run in order and
// stop at the first failure.
type validator struct {
	addrs AddrParser
	err   error
}

func (v *validator) protocol(p escrowsdk.Protocol) {
	if v.err != nil {
		return
	}
	v.err = protocol.Validate(p)
}

// address validates and returns the checksummed address.
func (v *validator) address(name, value string) string {
	if v.err != nil {
		return ""
	}
	if strings.TrimSpace(value) == "" {
		v.err = escrowsdk.NewErrInvalidArgument(name, value, addrRequirement, "Invalid "+name+": missing")
		return ""
	}
	parsed, err := v.addrs.ParseAddr(value)
	if err != nil {
		v.err = escrowsdk.NewErrInvalidArgument(name, value, addrRequirement, "Invalid "+name+": "+err.Error())
		return ""
	}
	return parsed
}

// wallet validates the wallet address and, if required, the presence of a private key. The key itself is
// validated by the signer.
func (v *validator) wallet(w escrowsdk.Wallet, needKey bool) string {
	addr := v.address("wallet.address", w.Address)
	if v.err != nil {
		return ""
	}
	if needKey && strings.TrimSpace(w.PrivateKey) == "" {
		v.err = escrowsdk.NewErrInvalidArgument("wallet.privateKey", "", "hex encoded private key",
			"Invalid wallet: private key required for signing")
		return ""
	}
	return addr
}

func (v *validator) tokenType(t escrowsdk.TokenType, allowNative bool) {
	if v.err != nil {
		return
	}
	switch t {
	case escrowsdk.ERC20, escrowsdk.ERC721, escrowsdk.ERC1155:
		return
	case escrowsdk.Native:
		if allowNative {
			return
		}
	}
	requirement := allTokenTypes
	if !allowNative {
		requirement = approvalTokenTypes
	}
	v.err = escrowsdk.NewErrUnsupportedTokenType(t, requirement)
}

// tokenAddress validates the token address for every token type other than Native. For Native, the
// token address is ignored.
func (v *validator) tokenAddress(t escrowsdk.TokenType, value string) string {
	if v.err != nil || t == escrowsdk.Native {
		return ""
	}
	return v.address("tokenAddress", value)
}

func (v *validator) escrowType(t escrowsdk.EscrowType) {
	if v.err != nil {
		return
	}
	if t != "" && t != escrowsdk.DateEscrow {
		v.err = escrowsdk.NewErrInvalidArgument("type", string(t), escrowTypeDate, "Unsupported escrow type")
	}
}

func (v *validator) optionalAddress(name, value string) string {
	if v.err != nil || strings.TrimSpace(value) == "" {
		return ""
	}
	return v.address(name, value)
}

func (v *validator) depositTerms(in DepositInput) {
	if v.err != nil {
		return
	}
	if strings.TrimSpace(in.ReleaseDate) == "" {
		v.err = escrowsdk.NewErrInvalidArgument("releaseDate", in.ReleaseDate, releaseDateRequired,
			"Invalid releaseDate: missing")
		return
	}
	if in.TokenType != escrowsdk.ERC721 {
		if err := currency.ValidateAmount(in.Amount); err != nil {
			v.err = escrowsdk.NewErrInvalidArgument("amount", in.Amount, amountRequirement,
				"Invalid amount: "+err.Error())
			return
		}
	}
	if in.TokenType == escrowsdk.ERC721 || in.TokenType == escrowsdk.ERC1155 {
		if err := currency.ValidateTokenID(in.TokenID); err != nil {
			v.err = escrowsdk.NewErrInvalidArgument("tokenId", in.TokenID, tokenIDRequirement,
				"Invalid tokenId: "+err.Error())
		}
	}
}
