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
package contactstest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/blockchain/ethereum/ethereumtest"
)

// Contact is an entry in the contacts.
type Contact struct {
	Alias   string
	Address string
}

// Contacts used in tests. Peer1 and Peer2 are expected to be present in the contacts passed to the generic tests,
// MissingPeer is expected to be absent. The addresses are in checksummed form.
var (
	Peer1       = Contact{Alias: "Alice", Address: ethereumtest.DevAddress0}
	Peer2       = Contact{Alias: "Bob", Address: ethereumtest.DevAddress1}
	MissingPeer = Contact{Alias: "Tom", Address: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"}

	WalletBackend = ethereumtest.NewTestWalletBackend()
)

// ContactsCloner returns a new instance of contacts containing Peer1 and Peer2.
type ContactsCloner func(t *testing.T, b escrowsdk.WalletBackend) escrowsdk.Contacts

// GenericReadWriteDelete runs the tests common to all implementations of contacts.
func GenericReadWriteDelete(t *testing.T, newClone ContactsCloner) {
	t.Run("ReadByAlias", func(t *testing.T) {
		c := newClone(t, WalletBackend)
		t.Run("happy", func(t *testing.T) {
			gotAddr, contains := c.ReadByAlias(Peer1.Alias)
			assert.True(t, contains)
			assert.Equal(t, Peer1.Address, gotAddr)
		})

		t.Run("missing_contact", func(t *testing.T) {
			_, contains := c.ReadByAlias(MissingPeer.Alias)
			assert.False(t, contains)
		})
	})

	t.Run("ReadByAddress", func(t *testing.T) {
		c := newClone(t, WalletBackend)
		t.Run("happy", func(t *testing.T) {
			gotAlias, contains := c.ReadByAddress(Peer1.Address)
			assert.True(t, contains)
			assert.Equal(t, Peer1.Alias, gotAlias)
		})

		t.Run("happy_lower_case", func(t *testing.T) {
			gotAlias, contains := c.ReadByAddress(strings.ToLower(Peer2.Address))
			assert.True(t, contains)
			assert.Equal(t, Peer2.Alias, gotAlias)
		})

		t.Run("missing_contact", func(t *testing.T) {
			_, contains := c.ReadByAddress(MissingPeer.Address)
			assert.False(t, contains)
		})

		t.Run("invalid_addr", func(t *testing.T) {
			_, contains := c.ReadByAddress("invalid-addr")
			assert.False(t, contains)
		})
	})

	t.Run("Write_Read", func(t *testing.T) {
		c := newClone(t, WalletBackend)
		t.Run("happy", func(t *testing.T) {
			assert.NoError(t, c.Write(MissingPeer.Alias, strings.ToLower(MissingPeer.Address)))
			gotAddr, contains := c.ReadByAlias(MissingPeer.Alias)
			assert.True(t, contains)
			assert.Equal(t, MissingPeer.Address, gotAddr)
			assert.Contains(t, c.Aliases(), MissingPeer.Alias)
		})

		t.Run("contact_already_present", func(t *testing.T) {
			err := c.Write(Peer1.Alias, Peer1.Address)
			assert.Error(t, err)
			t.Log(err)
		})

		t.Run("alias_used_by_diff_contact", func(t *testing.T) {
			err := c.Write(Peer1.Alias, Peer2.Address)
			assert.Error(t, err)
			t.Log(err)
		})

		t.Run("addr_used_by_diff_contact", func(t *testing.T) {
			err := c.Write("Carol", Peer2.Address)
			assert.Error(t, err)
			t.Log(err)
		})

		t.Run("invalid_addr", func(t *testing.T) {
			c := newClone(t, WalletBackend)
			err := c.Write(MissingPeer.Alias, "invalid-addr")
			assert.Error(t, err)
			t.Log(err)
		})
	})

	t.Run("Delete_Read", func(t *testing.T) {
		c := newClone(t, WalletBackend)
		t.Run("happy", func(t *testing.T) {
			assert.NoError(t, c.Delete(Peer1.Alias))
			_, contains := c.ReadByAlias(Peer1.Alias)
			assert.False(t, contains)
			_, contains = c.ReadByAddress(Peer1.Address)
			assert.False(t, contains)
			assert.NotContains(t, c.Aliases(), Peer1.Alias)
		})

		t.Run("missing_contact", func(t *testing.T) {
			err := c.Delete(MissingPeer.Alias)
			assert.Error(t, err)
			t.Log(err)
		})
	})
}
