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

// Package protocol holds the registry of blockchain networks supported by the sdk.
//
// For each network, it records the family of signing routine to be used, the symbol of the
// native currency and the chain id on the main and test networks.
package protocol

import (
	"sort"
	"strings"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
)

// Family groups the protocols that share a transaction format and hence, a signing routine.
type Family int

// Supported signer families.
const (
	EVM Family = iota
	CeloFamily
)

// String implements the stringer interface for Family.
func (f Family) String() string {
	return [...]string{"EVM", "Celo"}[f]
}

// Info describes a supported protocol.
type Info struct {
	Protocol     escrowsdk.Protocol
	Family       Family
	NativeSymbol string
	MainChainID  int64
	TestChainID  int64
}

// ChainID returns the chain id of the network in the given environment.
// Any environment other than MAIN is treated as TEST.
func (i Info) ChainID(env escrowsdk.Environment) int64 {
	if env == escrowsdk.EnvMain {
		return i.MainChainID
	}
	return i.TestChainID
}

var registry = map[escrowsdk.Protocol]Info{
	escrowsdk.Ethereum: {
		Protocol: escrowsdk.Ethereum, Family: EVM, NativeSymbol: "ETH",
		MainChainID: 1, TestChainID: 11155111,
	},
	escrowsdk.Celo: {
		Protocol: escrowsdk.Celo, Family: CeloFamily, NativeSymbol: "CELO",
		MainChainID: 42220, TestChainID: 44787,
	},
	escrowsdk.BSC: {
		Protocol: escrowsdk.BSC, Family: EVM, NativeSymbol: "BNB",
		MainChainID: 56, TestChainID: 97,
	},
	escrowsdk.Polygon: {
		Protocol: escrowsdk.Polygon, Family: EVM, NativeSymbol: "MATIC",
		MainChainID: 137, TestChainID: 80002,
	},
	escrowsdk.AvaxCChain: {
		Protocol: escrowsdk.AvaxCChain, Family: EVM, NativeSymbol: "AVAX",
		MainChainID: 43114, TestChainID: 43113,
	},
}

var aliases = map[string]escrowsdk.Protocol{
	"MATIC":     escrowsdk.Polygon,
	"AVAX":      escrowsdk.AvaxCChain,
	"AVALANCHE": escrowsdk.AvaxCChain,
	"BNB":       escrowsdk.BSC,
}

// Lookup returns the info for the protocol. The name must match exactly.
func Lookup(p escrowsdk.Protocol) (Info, bool) {
	info, ok := registry[p]
	return info, ok
}

// IsSupported checks if the protocol is registered.
func IsSupported(p escrowsdk.Protocol) bool {
	_, ok := registry[p]
	return ok
}

// Validate returns an ErrUnsupportedProtocol API error if the protocol is not registered.
func Validate(p escrowsdk.Protocol) error {
	if !IsSupported(p) {
		return escrowsdk.NewErrUnsupportedProtocol(p)
	}
	return nil
}

// Parse converts a user provided name into a protocol. It is case insensitive and accepts common
// aliases such as MATIC or AVAX.
func Parse(name string) (escrowsdk.Protocol, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if p, ok := aliases[normalized]; ok {
		return p, nil
	}
	p := escrowsdk.Protocol(normalized)
	if err := Validate(p); err != nil {
		return "", err
	}
	return p, nil
}

// All returns the supported protocols, sorted by name.
func All() []escrowsdk.Protocol {
	all := make([]escrowsdk.Protocol, 0, len(registry))
	for p := range registry {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}
