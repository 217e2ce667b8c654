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
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/currency"
	"github.com/direct-state-transfer/escrow-sdk-go/escrow"
	"github.com/direct-state-transfer/escrow-sdk-go/protocol"
	"github.com/direct-state-transfer/escrow-sdk-go/sdk"
)

// opArgs holds the arguments of an escrow operation as entered by the user. Escrow, payee and token
// can be given as aliases from the contacts or as addresses.
type opArgs struct {
	protocol    string
	escrow      string
	payee       string
	tokenType   string
	token       string
	tokenID     string
	amount      string
	releaseDate string
	factory     string
	wallet      string
}

var tokenTypes = []escrowsdk.TokenType{escrowsdk.Native, escrowsdk.ERC20, escrowsdk.ERC721, escrowsdk.ERC1155}

// parseTokenType is case insensitive and defaults to Native if the input is empty.
func parseTokenType(s string) (escrowsdk.TokenType, error) {
	if s == "" {
		return escrowsdk.Native, nil
	}
	for _, t := range tokenTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", errors.Errorf("unknown token type %q, should be one of %v", s, tokenTypes)
}

// resolve resolves each non empty alias or address. Empty values are passed through for the escrow
// controller to report them.
func resolve(s *sdk.SDK, values ...*string) error {
	for _, v := range values {
		if *v == "" {
			continue
		}
		addr, err := s.ResolveAddress(*v)
		if err != nil {
			return err
		}
		*v = addr
	}
	return nil
}

func signingWallet(s *sdk.SDK) (escrowsdk.Wallet, error) {
	u, err := s.User()
	if err != nil {
		return escrowsdk.Wallet{}, errors.WithMessage(err, "set a wallet in config or use --privatekey")
	}
	return u.Wallet, nil
}

func deploy(ctx context.Context, s *sdk.SDK, a opArgs) (string, error) {
	p, err := protocol.Parse(a.protocol)
	if err != nil {
		return "", err
	}
	w, err := signingWallet(s)
	if err != nil {
		return "", err
	}
	if err = resolve(s, &a.factory); err != nil {
		return "", err
	}
	resp, err := s.Escrow.DeployEscrow(ctx, escrow.DeployInput{
		Protocol:             p,
		Wallet:               w,
		Type:                 escrowsdk.DateEscrow,
		EscrowFactoryAddress: a.factory,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deployed escrow. Transaction hash: %s", resp.Hash), nil
}

func listEscrows(ctx context.Context, s *sdk.SDK, a opArgs) (string, error) {
	p, err := protocol.Parse(a.protocol)
	if err != nil {
		return "", err
	}
	var w escrowsdk.Wallet
	if a.wallet != "" {
		if err = resolve(s, &a.wallet); err != nil {
			return "", err
		}
		w.Address = a.wallet
	} else if w, err = signingWallet(s); err != nil {
		return "", err
	}
	if err = resolve(s, &a.factory); err != nil {
		return "", err
	}
	escrows, err := s.Escrow.GetEscrows(ctx, escrow.GetEscrowsInput{
		Protocol:             p,
		Wallet:               w,
		Type:                 escrowsdk.DateEscrow,
		EscrowFactoryAddress: a.factory,
	})
	if err != nil {
		return "", err
	}
	if len(escrows) == 0 {
		return fmt.Sprintf("No escrows deployed by %s", w.Address), nil
	}
	return fmt.Sprintf("Escrows deployed by %s:\n%s", w.Address, strings.Join(escrows, "\n")), nil
}

func listDeposits(ctx context.Context, s *sdk.SDK, a opArgs) (string, error) {
	p, err := protocol.Parse(a.protocol)
	if err != nil {
		return "", err
	}
	t, err := parseTokenType(a.tokenType)
	if err != nil {
		return "", err
	}
	if err = resolve(s, &a.escrow, &a.payee, &a.token); err != nil {
		return "", err
	}
	deposits, err := s.Escrow.GetDepositsOf(ctx, escrow.GetDepositsOfInput{
		Protocol:      p,
		Payee:         a.payee,
		EscrowAddress: a.escrow,
		TokenAddress:  a.token,
		TokenType:     t,
	})
	if err != nil {
		return "", err
	}
	if len(deposits) == 0 {
		return fmt.Sprintf("No %s deposits for %s", t, a.payee), nil
	}
	lines := make([]string, len(deposits))
	for i, d := range deposits {
		lines[i] = prettifyDeposit(d)
	}
	return fmt.Sprintf("%s deposits for %s:\n%s", t, a.payee, strings.Join(lines, "\n")), nil
}

func prettifyDeposit(d escrowsdk.Deposit) string {
	if d.TokenID != "" {
		return fmt.Sprintf("Amount: %s, Token ID: %s, Release date: %s", d.Amount, d.TokenID, d.Date)
	}
	return fmt.Sprintf("Amount: %s, Release date: %s", d.Amount, d.Date)
}

func approve(ctx context.Context, s *sdk.SDK, a opArgs) (string, error) {
	p, err := protocol.Parse(a.protocol)
	if err != nil {
		return "", err
	}
	t, err := parseTokenType(a.tokenType)
	if err != nil {
		return "", err
	}
	w, err := signingWallet(s)
	if err != nil {
		return "", err
	}
	if err = resolve(s, &a.escrow, &a.token); err != nil {
		return "", err
	}
	resp, err := s.Escrow.Approve(ctx, escrow.ApproveInput{
		Protocol:      p,
		Wallet:        w,
		EscrowAddress: a.escrow,
		TokenAddress:  a.token,
		TokenType:     t,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Approved escrow for %s token %s. Transaction hash: %s", t, a.token, resp.Hash), nil
}

func deposit(ctx context.Context, s *sdk.SDK, a opArgs) (string, error) {
	p, err := protocol.Parse(a.protocol)
	if err != nil {
		return "", err
	}
	t, err := parseTokenType(a.tokenType)
	if err != nil {
		return "", err
	}
	w, err := signingWallet(s)
	if err != nil {
		return "", err
	}
	if err = resolve(s, &a.escrow, &a.payee, &a.token); err != nil {
		return "", err
	}
	resp, err := s.Escrow.Deposit(ctx, escrow.DepositInput{
		Protocol:      p,
		Wallet:        w,
		EscrowAddress: a.escrow,
		Payee:         a.payee,
		TokenAddress:  a.token,
		TokenType:     t,
		TokenID:       a.tokenID,
		Amount:        a.amount,
		ReleaseDate:   a.releaseDate,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deposited for %s until %s. Transaction hash: %s", a.payee, a.releaseDate, resp.Hash), nil
}

func withdraw(ctx context.Context, s *sdk.SDK, a opArgs) (string, error) {
	p, err := protocol.Parse(a.protocol)
	if err != nil {
		return "", err
	}
	t, err := parseTokenType(a.tokenType)
	if err != nil {
		return "", err
	}
	w, err := signingWallet(s)
	if err != nil {
		return "", err
	}
	if err = resolve(s, &a.escrow, &a.payee, &a.token); err != nil {
		return "", err
	}
	resp, err := s.Escrow.Withdraw(ctx, escrow.WithdrawInput{
		Protocol:      p,
		Wallet:        w,
		EscrowAddress: a.escrow,
		Payee:         a.payee,
		TokenAddress:  a.token,
		TokenType:     t,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Withdrawn %s deposits for %s. Transaction hash: %s", t, a.payee, resp.Hash), nil
}

// convertUnits converts the amount of the native currency of the protocol between display and base units.
func convertUnits(protocolName, amount string, toDisplay bool) (string, error) {
	p, err := protocol.Parse(protocolName)
	if err != nil {
		return "", err
	}
	info, _ := protocol.Lookup(p)
	parser := currency.NewParser(info.NativeSymbol)
	if parser == nil {
		return "", errors.Errorf("no currency parser for %s", info.NativeSymbol)
	}

	if toDisplay {
		baseUnits, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return "", errors.Errorf("invalid amount %q, should be a base 10 integer", amount)
		}
		return fmt.Sprintf("%s %s", parser.Print(baseUnits), parser.Symbol()), nil
	}
	baseUnits, err := parser.Parse(amount)
	if err != nil {
		return "", err
	}
	return baseUnits.String(), nil
}
