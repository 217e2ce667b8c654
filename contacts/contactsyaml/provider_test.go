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
package contactsyaml_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/contacts/contactstest"
	"github.com/direct-state-transfer/escrow-sdk-go/contacts/contactsyaml"
)

var (
	validYAMLFile         = filepath.Join("testdata", "test.yaml")
	zeroEntriesYAMLFile   = filepath.Join("testdata", "test_zero_entries.yaml")
	invalidAddrYAMLFile   = filepath.Join("testdata", "invalid_addr.yaml")
	duplicateAddrYAMLFile = filepath.Join("testdata", "duplicate_addr.yaml")
	corruptedYAMLFile     = filepath.Join("testdata", "corrupted.yaml")
	nonExistentYAMLFile   = "./con.yml"
)

func Test_Provider_ContactsReader_Interface(t *testing.T) {
	assert.Implements(t, (*escrowsdk.ContactsReader)(nil), new(contactsyaml.Provider))
}

func Test_Provider_Contacts_Interface(t *testing.T) {
	assert.Implements(t, (*escrowsdk.Contacts)(nil), new(contactsyaml.Provider))
}

func Test_Provider_GenericReadWriteDelete(t *testing.T) {
	contactstest.GenericReadWriteDelete(t, func(t *testing.T, walletBackend escrowsdk.WalletBackend) escrowsdk.Contacts {
		c, _ := cloneContactsWithPath(t, validYAMLFile, walletBackend)
		return c
	})
}

func Test_New(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		gotContacts, err := contactsyaml.New(tempCopyOfFile(t, validYAMLFile), contactstest.WalletBackend)
		require.NoError(t, err)

		gotAddr, contains := gotContacts.ReadByAlias(contactstest.Peer1.Alias)
		assert.True(t, contains)
		assert.Equal(t, contactstest.Peer1.Address, gotAddr)

		// Stored in lower case in the file, read in checksummed form.
		gotAddr, contains = gotContacts.ReadByAlias(contactstest.Peer2.Alias)
		assert.True(t, contains)
		assert.Equal(t, contactstest.Peer2.Address, gotAddr)

		_, contains = gotContacts.ReadByAlias(contactstest.MissingPeer.Alias)
		assert.False(t, contains)
		assert.Equal(t, []string{contactstest.Peer1.Alias, contactstest.Peer2.Alias}, gotContacts.Aliases())
	})

	t.Run("happy_zero_entries", func(t *testing.T) {
		gotContacts, err := contactsyaml.New(tempCopyOfFile(t, zeroEntriesYAMLFile), contactstest.WalletBackend)
		require.NoError(t, err)
		assert.Empty(t, gotContacts.Aliases())
	})

	t.Run("corrupted_yaml", func(t *testing.T) {
		_, err := contactsyaml.New(tempCopyOfFile(t, corruptedYAMLFile), contactstest.WalletBackend)
		assert.Error(t, err)
		t.Log(err)
	})

	t.Run("invalid_addr", func(t *testing.T) {
		_, err := contactsyaml.New(tempCopyOfFile(t, invalidAddrYAMLFile), contactstest.WalletBackend)
		assert.Error(t, err)
		t.Log(err)
	})

	t.Run("duplicate_addr", func(t *testing.T) {
		_, err := contactsyaml.New(tempCopyOfFile(t, duplicateAddrYAMLFile), contactstest.WalletBackend)
		assert.Error(t, err)
		t.Log(err)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := contactsyaml.New(nonExistentYAMLFile, contactstest.WalletBackend)
		assert.Error(t, err)
		t.Log(err)
	})
}

func Test_Provider_UpdateStorage(t *testing.T) {
	t.Run("happy_add_entries_to_empty_file", func(t *testing.T) {
		c, testYAMLFile := cloneContactsWithPath(t, zeroEntriesYAMLFile, contactstest.WalletBackend)
		require.NoError(t, c.Write(contactstest.Peer1.Alias, contactstest.Peer1.Address))
		require.NoError(t, c.Write(contactstest.Peer2.Alias, contactstest.Peer2.Address))
		require.NoError(t, c.UpdateStorage())

		reloaded, err := contactsyaml.New(testYAMLFile, contactstest.WalletBackend)
		require.NoError(t, err)
		assert.Equal(t, c.Aliases(), reloaded.Aliases())
		for _, alias := range c.Aliases() {
			want, _ := c.ReadByAlias(alias)
			got, _ := reloaded.ReadByAlias(alias)
			assert.Equal(t, want, got)
		}
	})

	t.Run("happy_add_and_delete_entries", func(t *testing.T) {
		c, testYAMLFile := cloneContactsWithPath(t, validYAMLFile, contactstest.WalletBackend)
		require.NoError(t, c.Write(contactstest.MissingPeer.Alias, contactstest.MissingPeer.Address))
		require.NoError(t, c.Delete(contactstest.Peer1.Alias))
		require.NoError(t, c.UpdateStorage())

		reloaded, err := contactsyaml.New(testYAMLFile, contactstest.WalletBackend)
		require.NoError(t, err)
		assert.Equal(t, []string{contactstest.Peer2.Alias, contactstest.MissingPeer.Alias}, reloaded.Aliases())
		gotAlias, contains := reloaded.ReadByAddress(contactstest.MissingPeer.Address)
		assert.True(t, contains)
		assert.Equal(t, contactstest.MissingPeer.Alias, gotAlias)
	})

	t.Run("file_replaced_by_dir", func(t *testing.T) {
		c, testYAMLFile := cloneContactsWithPath(t, validYAMLFile, contactstest.WalletBackend)

		require.NoError(t, os.Remove(testYAMLFile))
		require.NoError(t, os.Mkdir(testYAMLFile, 0o700))
		err := c.UpdateStorage()
		assert.Error(t, err)
		t.Log(err)
	})
}

func cloneContactsWithPath(t *testing.T, testDataFile string, walletBackend escrowsdk.WalletBackend) (
	escrowsdk.Contacts, string) {
	tempFilePath := tempCopyOfFile(t, testDataFile)
	c, err := contactsyaml.New(tempFilePath, walletBackend)
	require.NoError(t, err)
	return c, tempFilePath
}

func tempCopyOfFile(t *testing.T, srcFilePath string) (tempFilePath string) {
	tempFilePath = filepath.Join(t.TempDir(), "contacts.yaml")
	tempFile, err := os.Create(tempFilePath)
	require.NoError(t, err)
	sourceFile, err := os.Open(srcFilePath)
	require.NoError(t, err)

	_, err = io.Copy(tempFile, sourceFile)
	require.NoError(t, err)
	require.NoError(t, tempFile.Close())
	require.NoError(t, sourceFile.Close())
	return tempFilePath
}
