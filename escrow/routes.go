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
	"fmt"
	"net/url"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

const basePath = "/contract/escrow"

// Request bodies. Fields that do not apply to a token type are omitted.
type (
	deployBody struct {
		From                 string `json:"from"`
		EscrowFactoryAddress string `json:"escrowFactoryAddress,omitempty"`
	}

	fromBody struct {
		From string `json:"from"`
	}

	depositBody struct {
		From    string `json:"from"`
		Date    string `json:"date"`
		TokenID string `json:"tokenId,omitempty"`
		Amount  string `json:"amount,omitempty"`
	}
)

// tokenSuffix is appended to the name of an endpoint for the token standard, e.g. depositsOf -> depositsOfERC20.
func tokenSuffix(t escrowsdk.TokenType) string {
	if t == escrowsdk.Native {
		return ""
	}
	return string(t)
}

func withProtocol(path string, p escrowsdk.Protocol) string {
	return path + "?protocol=" + url.QueryEscape(string(p))
}

func deployPath(p escrowsdk.Protocol) string {
	return withProtocol(basePath+"/deployDateEscrow", p)
}

func escrowsPath(p escrowsdk.Protocol, wallet, factory string) string {
	if factory != "" {
		return withProtocol(fmt.Sprintf("%s/%s/dateEscrows/%s", basePath, factory, wallet), p)
	}
	return withProtocol(fmt.Sprintf("%s/dateEscrows/%s", basePath, wallet), p)
}

// payeePath builds the path for the endpoints acting on the deposits of a payee: depositsOf, deposit and
// withdraw. The token address is included for every token type other than Native.
func payeePath(p escrowsdk.Protocol, endpoint string, t escrowsdk.TokenType, escrowAddr, payee, token string) string {
	path := fmt.Sprintf("%s/%s/%s%s/%s", basePath, escrowAddr, endpoint, tokenSuffix(t), payee)
	if t != escrowsdk.Native {
		path += "/" + token
	}
	return withProtocol(path, p)
}

func approvePath(p escrowsdk.Protocol, t escrowsdk.TokenType, escrowAddr, token string) string {
	return withProtocol(fmt.Sprintf("%s/%s/approve%s/%s", basePath, escrowAddr, t, token), p)
}

func newDepositBody(in DepositInput, from string) depositBody {
	body := depositBody{From: from, Date: in.ReleaseDate}
	switch in.TokenType {
	case escrowsdk.Native, escrowsdk.ERC20:
		body.Amount = in.Amount
	case escrowsdk.ERC721:
		body.TokenID = in.TokenID
	case escrowsdk.ERC1155:
		body.TokenID = in.TokenID
		body.Amount = in.Amount
	}
	return body
}
