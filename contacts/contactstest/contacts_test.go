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
package contactstest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/contacts/contactstest"
)

func Test_Provider_Contacts_Interface(t *testing.T) {
	assert.Implements(t, (*escrowsdk.Contacts)(nil), new(contactstest.Provider))
}

func Test_NewProvider(t *testing.T) {
	provider, err := contactstest.NewProvider(3, contactstest.WalletBackend)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, provider.Aliases())
	for i := 1; i <= 3; i++ {
		addr, contains := provider.ReadByAlias(fmt.Sprintf("%d", i))
		assert.True(t, contains)
		assert.NotZero(t, addr)
	}
}

func Test_Provider_GenericReadWriteDelete(t *testing.T) {
	contactstest.GenericReadWriteDelete(t, func(t *testing.T, walletBackend escrowsdk.WalletBackend) escrowsdk.Contacts {
		clone, err := contactstest.NewProvider(0, walletBackend)
		require.NoError(t, err)
		for _, c := range []contactstest.Contact{contactstest.Peer1, contactstest.Peer2} {
			require.NoError(t, clone.Write(c.Alias, c.Address))
		}
		return clone
	})
}

func Test_Provider_UpdateStorage(t *testing.T) {
	// This method is a Noop. Returns nil always.
	provider := &contactstest.Provider{}
	assert.Nil(t, provider.UpdateStorage())
}
