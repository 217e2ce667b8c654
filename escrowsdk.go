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

// Package escrowsdk defines domain types and services for interacting with
// escrow contracts through a remote transaction building backend.
//
// The types in this package do not depend on any blockchain library. The
// blockchain specific parts (signing, wallets) live in the blockchain/...
// packages and are accessed only through the interfaces defined here.
package escrowsdk

import (
	"context"
	"encoding/json"
)

// Protocol is the blockchain network on which an escrow contract lives.
type Protocol string

// Supported protocols.
const (
	Ethereum   Protocol = "ETHEREUM"
	Celo       Protocol = "CELO"
	BSC        Protocol = "BSC"
	Polygon    Protocol = "POLYGON"
	AvaxCChain Protocol = "AVAXCCHAIN"
)

// TokenType is the asset class deposited into an escrow.
type TokenType string

// Supported token types.
const (
	Native  TokenType = "Native"
	ERC20   TokenType = "ERC20"
	ERC721  TokenType = "ERC721"
	ERC1155 TokenType = "ERC1155"
)

// Environment selects between test and main networks. It is used for choosing the chain id when
// the backend does not include one in the raw transaction.
type Environment string

// Supported environments.
const (
	EnvTest Environment = "TEST"
	EnvMain Environment = "MAIN"
)

// EscrowType is the release condition of an escrow contract. Only date escrows are supported.
type EscrowType string

// DateEscrow holds deposits until the release date of each deposit is reached.
const DateEscrow EscrowType = "date"

// TransactionType tags a signed transaction with the escrow operation that produced it.
type TransactionType string

// Transaction types for escrow operations.
const (
	DateEscrowDeploy TransactionType = "DATE_ESCROW_DEPLOY"
	EscrowApprove    TransactionType = "ESCROW_APPROVE"
	EscrowDeposit    TransactionType = "ESCROW_DEPOSIT"
	EscrowWithdraw   TransactionType = "ESCROW_WITHDRAW"
)

// Wallet holds the credentials used for signing transactions.
//
// Mnemonic is set only for wallets generated or restored from a seed phrase.
type Wallet struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
	Mnemonic   string `json:"mnemonic,omitempty"`
}

// RawTransaction is the unsigned transaction returned by the backend. Its structure depends on the
// protocol and is interpreted only by the signer for that protocol.
type RawTransaction json.RawMessage

// MarshalJSON returns the raw payload.
func (r RawTransaction) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of the payload.
func (r *RawTransaction) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// SignedTransaction is a signed, encoded transaction ready to be broadcast.
type SignedTransaction struct {
	SignedTx string
	Protocol Protocol
	Type     TransactionType
}

// TransactionResponse is returned by the backend after broadcasting a transaction.
type TransactionResponse struct {
	Hash string `json:"hash"`
}

// Deposit is a single deposit held by an escrow for a payee.
type Deposit struct {
	Amount  string `json:"amount"`
	Date    string `json:"date"`
	TokenID string `json:"tokenId,omitempty"`
}

// Request describes a call to the transaction building backend.
//
// Path includes the query string. Body is encoded as JSON, if not nil.
type Request struct {
	Method string
	Path   string
	Body   interface{}
}

//go:generate mockery -name Requester -output ./internal/mocks

// Requester sends requests to the transaction building backend and decodes the response into out.
type Requester interface {
	Do(ctx context.Context, req Request, out interface{}) error
}

//go:generate mockery -name TxSigner -output ./internal/mocks

// TxSigner signs raw transactions for one family of protocols.
//
// The returned string is the encoded signed transaction, in the form expected by the backend for
// broadcasting.
type TxSigner interface {
	SignTx(raw RawTransaction, protocol Protocol, privateKey string, env Environment) (string, error)
}

//go:generate mockery -name TxSender -output ./internal/mocks

// TxSender broadcasts signed transactions.
type TxSender interface {
	SendTransaction(ctx context.Context, tx SignedTransaction) (TransactionResponse, error)
}

// WalletBackend wraps the methods for generating and loading wallets that are specific to a blockchain platform.
type WalletBackend interface {
	ParseAddr(string) (string, error)
	GenerateWallet() (Wallet, error)
	WalletFromMnemonic(mnemonic string, index uint32) (Wallet, error)
	WalletFromPrivateKey(privateKey string) (Wallet, error)
	WalletFromKeystore(keystorePath, address, password string) (Wallet, error)
}

// ContactsReader represents a read only cached list of contacts.
type ContactsReader interface {
	ReadByAlias(alias string) (addr string, contains bool)
	ReadByAddress(addr string) (alias string, contains bool)
}

// Contacts represents a cached list of contacts backed by a storage. Read, Write and Delete methods act on the
// cache. The state of cached list can be written to the storage by using the UpdateStorage method.
type Contacts interface {
	ContactsReader
	Write(alias, addr string) error
	Delete(alias string) error
	Aliases() []string
	UpdateStorage() error
}
