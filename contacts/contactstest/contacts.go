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
// Package contactstest provides an in-memory contacts provider and a set of generic tests that
// every implementation of escrowsdk.Contacts should pass.
package contactstest

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/blockchain/ethereum/ethereumtest"
)

// Provider represents a cached list of contacts indexed by both alias and address.
// The methods defined over it are safe for concurrent access.
type Provider struct {
	mutex         sync.RWMutex
	walletBackend escrowsdk.WalletBackend
	rng           *rand.Rand

	nextRandomAlias uint

	addrByAlias map[string]string // Stores a list of addresses indexed by alias.
	aliasByAddr map[string]string // Stores a list of aliases indexed by address.
}

// NewProvider returns an in-memory contacts provider with requested number of random contacts.
// The alias of the first random contact is "1", that of second is "2" and so on.
func NewProvider(numContacts uint, backend escrowsdk.WalletBackend) (*Provider, error) {
	c := &Provider{
		walletBackend:   backend,
		rng:             rand.New(rand.NewSource(1729)),
		nextRandomAlias: 1,
		addrByAlias:     make(map[string]string),
		aliasByAddr:     make(map[string]string),
	}
	for i := uint(0); i < numContacts; i++ {
		if _, err := c.NewRandomContact(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewRandomContact adds a contact with an address generated at random. The alias is a number, derived
// from an internal counter that is incremented on each new call to this function.
func (c *Provider) NewRandomContact() (alias string, _ error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	alias = fmt.Sprintf("%d", c.nextRandomAlias)
	if err := c.write(alias, ethereumtest.NewRandomAddress(c.rng)); err != nil {
		return "", err
	}
	c.nextRandomAlias++
	return alias, nil
}

// ReadByAlias returns the address corresponding to given alias from the cache.
func (c *Provider) ReadByAlias(alias string) (addr string, contains bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	addr, contains = c.addrByAlias[alias]
	return addr, contains
}

// ReadByAddress returns the alias corresponding to given address from the cache.
func (c *Provider) ReadByAddress(addr string) (alias string, contains bool) {
	normalized, err := c.walletBackend.ParseAddr(addr)
	if err != nil {
		return "", false
	}
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	alias, contains = c.aliasByAddr[normalized]
	return alias, contains
}

// Write adds the contact to contacts cache. Returns an error if the alias or address is already used or,
// if the address cannot be parsed using the wallet backend of this contacts provider.
func (c *Provider) Write(alias, addr string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.write(alias, addr)
}

func (c *Provider) write(alias, addr string) error {
	normalized, err := c.walletBackend.ParseAddr(addr)
	if err != nil {
		return err
	}
	if oldAddr, ok := c.addrByAlias[alias]; ok {
		if oldAddr == normalized {
			return errors.New("contact already present")
		}
		return errors.New("alias already used by another contact")
	}
	if _, ok := c.aliasByAddr[normalized]; ok {
		return errors.New("address already used by another contact")
	}
	c.addrByAlias[alias] = normalized
	c.aliasByAddr[normalized] = alias
	return nil
}

// Delete deletes the contact from contacts cache.
// Returns an error if contact corresponding to given alias is not found.
func (c *Provider) Delete(alias string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	addr, ok := c.addrByAlias[alias]
	if !ok {
		return errors.New("contact not found")
	}
	delete(c.addrByAlias, alias)
	delete(c.aliasByAddr, addr)
	return nil
}

// Aliases returns the aliases of all contacts in sorted order.
func (c *Provider) Aliases() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	aliases := make([]string, 0, len(c.addrByAlias))
	for alias := range c.addrByAlias {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// UpdateStorage is a Noop for in-memory contacts as there is no storage.
func (c *Provider) UpdateStorage() error {
	return nil
}
