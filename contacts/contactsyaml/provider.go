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

// Package contactsyaml implements a contacts provider backed by a YAML file that maps aliases to addresses.
package contactsyaml

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

// AddrParser parses and normalizes the addresses stored in the contacts file.
type AddrParser interface {
	ParseAddr(string) (string, error)
}

// Provider represents a cached list of contacts indexed by both alias and address.
// The methods defined over it are safe for concurrent access.
type Provider struct {
	mutex    sync.RWMutex
	filePath string
	addrs    AddrParser

	addrByAlias map[string]string
	aliasByAddr map[string]string
}

// New returns a contacts provider initialized with the contacts in the given file.
// All addresses in the file are validated and stored in their normalized form.
func New(filePath string, addrs AddrParser) (*Provider, error) {
	filePath = filepath.Clean(filePath)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "reading contacts file")
	}

	stored := make(map[string]string)
	if err = yaml.Unmarshal(data, &stored); err != nil {
		return nil, errors.Wrap(err, "parsing contacts file")
	}

	p := &Provider{
		filePath:    filePath,
		addrs:       addrs,
		addrByAlias: make(map[string]string, len(stored)),
		aliasByAddr: make(map[string]string, len(stored)),
	}
	for alias, addr := range stored {
		if err = p.write(alias, addr); err != nil {
			return nil, errors.WithMessagef(err, "contact %s", alias)
		}
	}
	return p, nil
}

// ReadByAlias returns the address corresponding to given alias from the cache.
func (p *Provider) ReadByAlias(alias string) (addr string, contains bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	addr, contains = p.addrByAlias[alias]
	return addr, contains
}

// ReadByAddress returns the alias corresponding to given address from the cache. The address is normalized
// before the lookup, so any valid representation of the address can be used.
func (p *Provider) ReadByAddress(addr string) (alias string, contains bool) {
	normalized, err := p.addrs.ParseAddr(addr)
	if err != nil {
		return "", false
	}
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	alias, contains = p.aliasByAddr[normalized]
	return alias, contains
}

// Write adds the contact to the cache. Returns an error if the alias or the address is already used or
// if the address cannot be parsed.
func (p *Provider) Write(alias, addr string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.write(alias, addr)
}

func (p *Provider) write(alias, addr string) error {
	if alias == "" {
		return errors.New("alias should not be empty")
	}
	normalized, err := p.addrs.ParseAddr(addr)
	if err != nil {
		return err
	}
	if oldAddr, ok := p.addrByAlias[alias]; ok {
		if oldAddr == normalized {
			return errors.New("contact already present")
		}
		return errors.New("alias already used by another contact")
	}
	if oldAlias, ok := p.aliasByAddr[normalized]; ok {
		return errors.Errorf("address already present with alias %s", oldAlias)
	}
	p.addrByAlias[alias] = normalized
	p.aliasByAddr[normalized] = alias
	return nil
}

// Delete deletes the contact from the cache.
// Returns an error if contact corresponding to given alias is not found.
func (p *Provider) Delete(alias string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	addr, ok := p.addrByAlias[alias]
	if !ok {
		return errors.New("contact not found")
	}
	delete(p.addrByAlias, alias)
	delete(p.aliasByAddr, addr)
	return nil
}

// Aliases returns the aliases of all the contacts in sorted order.
func (p *Provider) Aliases() []string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return sortedAliases(p.addrByAlias)
}

// UpdateStorage writes the contacts in the cache to the file, overwriting its previous content.
func (p *Provider) UpdateStorage() error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	data, err := yaml.Marshal(contactsNode(p.addrByAlias))
	if err != nil {
		return errors.Wrap(err, "encoding contacts")
	}
	return errors.Wrap(os.WriteFile(p.filePath, data, 0o600), "writing contacts file")
}

// contactsNode encodes the contacts as a mapping sorted by alias. Addresses are quoted so that
// they are not resolved as hex numbers when read back.
func contactsNode(addrByAlias map[string]string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, alias := range sortedAliases(addrByAlias) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: alias},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: addrByAlias[alias], Style: yaml.DoubleQuotedStyle},
		)
	}
	return node
}

func sortedAliases(addrByAlias map[string]string) []string {
	aliases := make([]string, 0, len(addrByAlias))
	for alias := range addrByAlias {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

var _ escrowsdk.Contacts = (*Provider)(nil)
