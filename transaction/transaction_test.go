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

package transaction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/internal/mocks"
	"github.com/direct-state-transfer/escrow-sdk-go/transaction"
)

func Test_Controller_Interface(t *testing.T) {
	assert.Implements(t, (*escrowsdk.TxSender)(nil), new(transaction.Controller))
}

// respondWith returns a function that decodes the given JSON into the out argument of Requester.Do.
func respondWith(t *testing.T, response string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		require.NoError(t, json.Unmarshal([]byte(response), args.Get(2)))
	}
}

func Test_Controller_SendTransaction(t *testing.T) {
	signed := escrowsdk.SignedTransaction{
		SignedTx: "0xf86b01",
		Protocol: escrowsdk.Ethereum,
		Type:     escrowsdk.EscrowDeposit,
	}

	t.Run("happy", func(t *testing.T) {
		requester := &mocks.Requester{}
		wantReq := escrowsdk.Request{Method: http.MethodPost, Path: "/tx?protocol=ETHEREUM", Body: nil}
		requester.On("Do", mock.Anything, mock.MatchedBy(func(req escrowsdk.Request) bool {
			body, err := json.Marshal(req.Body)
			require.NoError(t, err)
			return req.Method == wantReq.Method && req.Path == wantReq.Path &&
				string(body) == `{"signedTx":"0xf86b01","type":"ESCROW_DEPOSIT"}`
		}), mock.Anything).Return(nil).Run(respondWith(t, `{"hash": "0xfffffffffffffffffffff"}`))

		resp, err := transaction.NewController(requester).SendTransaction(context.Background(), signed)
		require.NoError(t, err)
		assert.Equal(t, "0xfffffffffffffffffffff", resp.Hash)
		requester.AssertExpectations(t)
	})

	t.Run("err_missing_hash", func(t *testing.T) {
		requester := &mocks.Requester{}
		requester.On("Do", mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(respondWith(t, `{}`))

		_, err := transaction.NewController(requester).SendTransaction(context.Background(), signed)
		require.Error(t, err)
		apiErr, ok := escrowsdk.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, escrowsdk.ErrMalformedResponse, apiErr.Code())
	})

	t.Run("err_remote", func(t *testing.T) {
		requester := &mocks.Requester{}
		remoteErr := escrowsdk.NewErrRemoteRejected(http.MethodPost, "/tx?protocol=ETHEREUM", 400, "nonce too low")
		requester.On("Do", mock.Anything, mock.Anything, mock.Anything).Return(remoteErr)

		_, err := transaction.NewController(requester).SendTransaction(context.Background(), signed)
		assert.Equal(t, remoteErr, err)
	})

	t.Run("err_invalid_args", func(t *testing.T) {
		requester := &mocks.Requester{}
		c := transaction.NewController(requester)

		invalid := []escrowsdk.SignedTransaction{
			{SignedTx: "0x01", Protocol: "SOLANA", Type: escrowsdk.EscrowDeposit},
			{SignedTx: "", Protocol: escrowsdk.Celo, Type: escrowsdk.EscrowDeposit},
			{SignedTx: "0x01", Protocol: escrowsdk.Celo, Type: "ESCROW_UNKNOWN"},
		}
		for _, tx := range invalid {
			_, err := c.SendTransaction(context.Background(), tx)
			require.Error(t, err)
			apiErr, ok := escrowsdk.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, escrowsdk.ClientError, apiErr.Category())
		}
		requester.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything)
	})
}
