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

// Package escrow implements the operations on date escrow contracts.
//
// Each operation validates its input, requests the raw transaction from the backend, signs it locally with
// the wallet key and submits it using the transaction sender. Read only operations return the decoded
// response of the backend.
package escrow

import (
	"bytes"
	"context"
	"net/http"

	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/log"
	"github.com/direct-state-transfer/escrow-sdk-go/protocol"
)

type (
	// DeployInput defines the parameters for deploying a date escrow contract.
	DeployInput struct {
		Protocol             escrowsdk.Protocol
		Wallet               escrowsdk.Wallet
		Type                 escrowsdk.EscrowType
		EscrowFactoryAddress string // Optional. Backend uses its default factory, if empty.
	}

	// GetEscrowsInput defines the parameters for listing the escrows deployed by a wallet.
	GetEscrowsInput struct {
		Protocol             escrowsdk.Protocol
		Wallet               escrowsdk.Wallet
		Type                 escrowsdk.EscrowType
		EscrowFactoryAddress string
	}

	// GetDepositsOfInput defines the parameters for listing the deposits held for a payee.
	GetDepositsOfInput struct {
		Protocol      escrowsdk.Protocol
		Payee         string
		EscrowAddress string
		TokenAddress  string
		TokenType     escrowsdk.TokenType
	}

	// ApproveInput defines the parameters for approving the escrow to transfer tokens of the wallet.
	ApproveInput struct {
		Protocol      escrowsdk.Protocol
		Wallet        escrowsdk.Wallet
		EscrowAddress string
		TokenAddress  string
		TokenType     escrowsdk.TokenType
	}

	// DepositInput defines the parameters for depositing funds into the escrow for a payee.
	//
	// Amount is required for all token types except ERC721, TokenID only for ERC721 and ERC1155.
	DepositInput struct {
		Protocol      escrowsdk.Protocol
		Wallet        escrowsdk.Wallet
		EscrowAddress string
		Payee         string
		TokenAddress  string
		TokenType     escrowsdk.TokenType
		TokenID       string
		Amount        string
		ReleaseDate   string
	}

	// WithdrawInput defines the parameters for withdrawing the funds released to a payee.
	WithdrawInput struct {
		Protocol      escrowsdk.Protocol
		Wallet        escrowsdk.Wallet
		EscrowAddress string
		Payee         string
		TokenAddress  string
		TokenType     escrowsdk.TokenType
	}
)

// AddrParser parses and normalizes blockchain addresses. It is satisfied by escrowsdk.WalletBackend.
type AddrParser interface {
	ParseAddr(string) (string, error)
}

// Signers holds the signer for each family of protocols.
type Signers struct {
	EVM  escrowsdk.TxSigner
	Celo escrowsdk.TxSigner
}

// Controller implements the escrow operations.
type Controller struct {
	log.Logger

	env       escrowsdk.Environment
	requester escrowsdk.Requester
	sender    escrowsdk.TxSender
	signers   Signers
	addrs     AddrParser
}

// NewController returns an escrow controller for the given environment.
func NewController(env escrowsdk.Environment, requester escrowsdk.Requester, sender escrowsdk.TxSender,
	signers Signers, addrs AddrParser) *Controller {
	return &Controller{
		Logger:    log.NewLoggerWithField("component", "escrow"),
		env:       env,
		requester: requester,
		sender:    sender,
		signers:   signers,
		addrs:     addrs,
	}
}

// DeployEscrow deploys a new date escrow contract owned by the wallet.
func (c *Controller) DeployEscrow(ctx context.Context, in DeployInput) (escrowsdk.TransactionResponse, error) {
	c.WithField("protocol", in.Protocol).Debug("Received request: escrow.Deploy")

	v := c.newValidator()
	v.protocol(in.Protocol)
	from := v.wallet(in.Wallet, true)
	v.escrowType(in.Type)
	factory := v.optionalAddress("escrowFactoryAddress", in.EscrowFactoryAddress)
	if v.err != nil {
		return c.invalid(v.err)
	}

	req := escrowsdk.Request{
		Method: http.MethodPost,
		Path:   deployPath(in.Protocol),
		Body:   deployBody{From: from, EscrowFactoryAddress: factory},
	}
	return c.buildSignSend(ctx, in.Protocol, in.Wallet, req, escrowsdk.DateEscrowDeploy)
}

// GetEscrows returns the addresses of the escrows deployed by the wallet.
func (c *Controller) GetEscrows(ctx context.Context, in GetEscrowsInput) ([]string, error) {
	c.WithField("protocol", in.Protocol).Debug("Received request: escrow.GetEscrows")

	v := c.newValidator()
	v.protocol(in.Protocol)
	wallet := v.wallet(in.Wallet, false)
	v.escrowType(in.Type)
	factory := v.optionalAddress("escrowFactoryAddress", in.EscrowFactoryAddress)
	if v.err != nil {
		return nil, c.logInvalid(v.err)
	}

	req := escrowsdk.Request{Method: http.MethodGet, Path: escrowsPath(in.Protocol, wallet, factory)}
	escrows := []string{}
	if err := c.requester.Do(ctx, req, &escrows); err != nil {
		c.Error("Getting escrows: ", err)
		return nil, err
	}
	return escrows, nil
}

// GetDepositsOf returns the deposits held by the escrow for the payee, for the given token type.
func (c *Controller) GetDepositsOf(ctx context.Context, in GetDepositsOfInput) ([]escrowsdk.Deposit, error) {
	c.WithField("protocol", in.Protocol).WithField("tokenType", in.TokenType).
		Debug("Received request: escrow.GetDepositsOf")

	v := c.newValidator()
	v.protocol(in.Protocol)
	escrowAddr := v.address("escrowAddress", in.EscrowAddress)
	payee := v.address("payee", in.Payee)
	v.tokenType(in.TokenType, true)
	token := v.tokenAddress(in.TokenType, in.TokenAddress)
	if v.err != nil {
		return nil, c.logInvalid(v.err)
	}

	req := escrowsdk.Request{
		Method: http.MethodGet,
		Path:   payeePath(in.Protocol, "depositsOf", in.TokenType, escrowAddr, payee, token),
	}
	deposits := []escrowsdk.Deposit{}
	if err := c.requester.Do(ctx, req, &deposits); err != nil {
		c.Error("Getting deposits: ", err)
		return nil, err
	}
	return deposits, nil
}

// Approve allows the escrow to transfer the tokens of the wallet. Native tokens need no approval.
func (c *Controller) Approve(ctx context.Context, in ApproveInput) (escrowsdk.TransactionResponse, error) {
	c.WithField("protocol", in.Protocol).WithField("tokenType", in.TokenType).Debug("Received request: escrow.Approve")

	v := c.newValidator()
	v.protocol(in.Protocol)
	from := v.wallet(in.Wallet, true)
	escrowAddr := v.address("escrowAddress", in.EscrowAddress)
	v.tokenType(in.TokenType, false)
	token := v.tokenAddress(in.TokenType, in.TokenAddress)
	if v.err != nil {
		return c.invalid(v.err)
	}

	req := escrowsdk.Request{
		Method: http.MethodPost,
		Path:   approvePath(in.Protocol, in.TokenType, escrowAddr, token),
		Body:   fromBody{From: from},
	}
	return c.buildSignSend(ctx, in.Protocol, in.Wallet, req, escrowsdk.EscrowApprove)
}

// Deposit locks funds in the escrow for the payee until the release date.
func (c *Controller) Deposit(ctx context.Context, in DepositInput) (escrowsdk.TransactionResponse, error) {
	c.WithField("protocol", in.Protocol).WithField("tokenType", in.TokenType).Debug("Received request: escrow.Deposit")

	v := c.newValidator()
	v.protocol(in.Protocol)
	from := v.wallet(in.Wallet, true)
	escrowAddr := v.address("escrowAddress", in.EscrowAddress)
	payee := v.address("payee", in.Payee)
	v.tokenType(in.TokenType, true)
	token := v.tokenAddress(in.TokenType, in.TokenAddress)
	v.depositTerms(in)
	if v.err != nil {
		return c.invalid(v.err)
	}

	req := escrowsdk.Request{
		Method: http.MethodPost,
		Path:   payeePath(in.Protocol, "deposit", in.TokenType, escrowAddr, payee, token),
		Body:   newDepositBody(in, from),
	}
	return c.buildSignSend(ctx, in.Protocol, in.Wallet, req, escrowsdk.EscrowDeposit)
}

// Withdraw transfers the released deposits to the payee.
func (c *Controller) Withdraw(ctx context.Context, in WithdrawInput) (escrowsdk.TransactionResponse, error) {
	c.WithField("protocol", in.Protocol).WithField("tokenType", in.TokenType).Debug("Received request: escrow.Withdraw")

	v := c.newValidator()
	v.protocol(in.Protocol)
	from := v.wallet(in.Wallet, true)
	escrowAddr := v.address("escrowAddress", in.EscrowAddress)
	payee := v.address("payee", in.Payee)
	v.tokenType(in.TokenType, true)
	token := v.tokenAddress(in.TokenType, in.TokenAddress)
	if v.err != nil {
		return c.invalid(v.err)
	}

	req := escrowsdk.Request{
		Method: http.MethodPost,
		Path:   payeePath(in.Protocol, "withdraw", in.TokenType, escrowAddr, payee, token),
		Body:   fromBody{From: from},
	}
	return c.buildSignSend(ctx, in.Protocol, in.Wallet, req, escrowsdk.EscrowWithdraw)
}

func (c *Controller) newValidator() *validator {
	return &validator{addrs: c.addrs}
}

func (c *Controller) logInvalid(err error) error {
	c.Error("Invalid request: ", err)
	return err
}

func (c *Controller) invalid(err error) (escrowsdk.TransactionResponse, error) {
	return escrowsdk.TransactionResponse{}, c.logInvalid(err)
}

// buildSignSend requests the raw transaction, signs it with the wallet key and sends it.
func (c *Controller) buildSignSend(ctx context.Context, p escrowsdk.Protocol, wallet escrowsdk.Wallet,
	req escrowsdk.Request, txType escrowsdk.TransactionType) (escrowsdk.TransactionResponse, error) {
	var raw escrowsdk.RawTransaction
	if err := c.requester.Do(ctx, req, &raw); err != nil {
		c.Error("Requesting raw transaction: ", err)
		return escrowsdk.TransactionResponse{}, err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		err := escrowsdk.NewErrMalformedResponse(req.Method, req.Path, "raw transaction missing in response")
		c.Error(err)
		return escrowsdk.TransactionResponse{}, err
	}

	signedTx, err := c.signTx(raw, p, wallet.PrivateKey)
	if err != nil {
		c.Error("Signing transaction: ", err)
		return escrowsdk.TransactionResponse{}, err
	}

	resp, err := c.sender.SendTransaction(ctx, escrowsdk.SignedTransaction{
		SignedTx: signedTx,
		Protocol: p,
		Type:     txType,
	})
	if err != nil {
		return escrowsdk.TransactionResponse{}, err
	}
	c.WithField("hash", resp.Hash).WithField("type", txType).Info("Escrow transaction sent")
	return resp, nil
}

// signTx dispatches the raw transaction to the signer for the family of the protocol.
func (c *Controller) signTx(raw escrowsdk.RawTransaction, p escrowsdk.Protocol, privateKey string) (string, error) {
	info, ok := protocol.Lookup(p)
	if !ok {
		return "", escrowsdk.NewErrUnsupportedProtocol(p)
	}
	var signer escrowsdk.TxSigner
	switch info.Family {
	case protocol.CeloFamily:
		signer = c.signers.Celo
	case protocol.EVM:
		signer = c.signers.EVM
	}
	if signer == nil {
		return "", escrowsdk.NewErrUnknownInternal(errors.Errorf("no signer configured for %s", p))
	}

	signedTx, err := signer.SignTx(raw, p, privateKey, c.env)
	if err != nil {
		if apiErr, ok := escrowsdk.AsAPIError(err); ok {
			return "", apiErr
		}
		return "", escrowsdk.NewErrSigningFailed(p, err)
	}
	return signedTx, nil
}
