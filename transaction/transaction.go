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

// Package transaction broadcasts signed transactions through the backend.
package transaction

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/log"
	"github.com/direct-state-transfer/escrow-sdk-go/protocol"
)

// Path of the endpoint for broadcasting transactions.
const Path = "/tx"

type sendBody struct {
	SignedTx string `json:"signedTx"`
	Type     string `json:"type"`
}

// Controller implements escrowsdk.TxSender.
type Controller struct {
	log.Logger

	requester escrowsdk.Requester
}

// NewController returns a controller that sends transactions using the given requester.
func NewController(requester escrowsdk.Requester) *Controller {
	return &Controller{
		Logger:    log.NewLoggerWithField("component", "transaction"),
		requester: requester,
	}
}

// SendTransaction submits the signed transaction and returns the hash assigned by the backend.
func (c *Controller) SendTransaction(ctx context.Context, tx escrowsdk.SignedTransaction) (
	escrowsdk.TransactionResponse, error) {
	c.WithField("protocol", tx.Protocol).WithField("type", tx.Type).Debug("Received request: transaction.Send")

	if err := protocol.Validate(tx.Protocol); err != nil {
		return escrowsdk.TransactionResponse{}, err
	}
	if strings.TrimSpace(tx.SignedTx) == "" {
		return escrowsdk.TransactionResponse{}, escrowsdk.NewErrInvalidArgument("signedTx", "",
			"non empty hex string", "signed transaction is required")
	}
	if !isKnownType(tx.Type) {
		return escrowsdk.TransactionResponse{}, escrowsdk.NewErrInvalidArgument("type", string(tx.Type),
			"one of DATE_ESCROW_DEPLOY, ESCROW_APPROVE, ESCROW_DEPOSIT, ESCROW_WITHDRAW",
			"unknown transaction type")
	}

	req := escrowsdk.Request{
		Method: http.MethodPost,
		Path:   Path + "?protocol=" + url.QueryEscape(string(tx.Protocol)),
		Body:   sendBody{SignedTx: tx.SignedTx, Type: string(tx.Type)},
	}
	var resp escrowsdk.TransactionResponse
	if err := c.requester.Do(ctx, req, &resp); err != nil {
		c.Error("Sending transaction: ", err)
		return escrowsdk.TransactionResponse{}, err
	}
	if resp.Hash == "" {
		err := escrowsdk.NewErrMalformedResponse(req.Method, req.Path, "transaction hash missing in response")
		c.Error(err)
		return escrowsdk.TransactionResponse{}, err
	}
	c.WithField("hash", resp.Hash).Info("Transaction sent")
	return resp, nil
}

func isKnownType(t escrowsdk.TransactionType) bool {
	switch t {
	case escrowsdk.DateEscrowDeploy, escrowsdk.EscrowApprove, escrowsdk.EscrowDeposit, escrowsdk.EscrowWithdraw:
		return true
	}
	return false
}
