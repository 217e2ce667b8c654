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

	"github.com/spf13/cobra"

	"github.com/direct-state-transfer/escrow-sdk-go/blockchain/ethereum"
	"github.com/direct-state-transfer/escrow-sdk-go/sdk"
)

const (
	// flag names for escrow commands.
	factoryF   = "factory"
	tokenTypeF = "token-type"
	tokenF     = "token"
	tokenIDF   = "token-id"
	amountF    = "amount"
	walletF    = "wallet"
	toDisplayF = "to-display"
)

type opFunc func(context.Context, *sdk.SDK, opArgs) (string, error)

var (
	walletCmd = &cobra.Command{
		Use:   "wallet",
		Short: "Generate or show wallets",
	}

	walletGenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a new wallet with a random mnemonic",
		Long: `
Generate a new wallet with a random mnemonic. The address, private key and mnemonic
are printed to stdout. Store the private key or the mnemonic securely, they are
not written to any file.`,
		Args: cobra.NoArgs,
		RunE: walletGenerate,
	}

	walletShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the address of the configured wallet",
		Args:  cobra.NoArgs,
		RunE:  walletShow,
	}

	deployCmd = &cobra.Command{
		Use:   "deploy <protocol>",
		Short: "Deploy a date escrow contract",
		Args:  cobra.ExactArgs(1),
		RunE: runOp(deploy, func(cmd *cobra.Command, args []string) opArgs {
			return opArgs{protocol: args[0], factory: stringFlag(cmd, factoryF)}
		}),
	}

	escrowsCmd = &cobra.Command{
		Use:   "escrows <protocol>",
		Short: "List the escrows deployed by the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: runOp(listEscrows, func(cmd *cobra.Command, args []string) opArgs {
			return opArgs{protocol: args[0], factory: stringFlag(cmd, factoryF), wallet: stringFlag(cmd, walletF)}
		}),
	}

	depositsCmd = &cobra.Command{
		Use:   "deposits <protocol> <escrow> <payee>",
		Short: "List the deposits held by an escrow for a payee",
		Args:  cobra.ExactArgs(3),
		RunE: runOp(listDeposits, func(cmd *cobra.Command, args []string) opArgs {
			return opArgs{
				protocol:  args[0],
				escrow:    args[1],
				payee:     args[2],
				tokenType: stringFlag(cmd, tokenTypeF),
				token:     stringFlag(cmd, tokenF),
			}
		}),
	}

	approveCmd = &cobra.Command{
		Use:   "approve <protocol> <escrow> <token-type> <token>",
		Short: "Approve the escrow to transfer ERC20, ERC721 or ERC1155 tokens of the wallet",
		Args:  cobra.ExactArgs(4),
		RunE: runOp(approve, func(cmd *cobra.Command, args []string) opArgs {
			return opArgs{protocol: args[0], escrow: args[1], tokenType: args[2], token: args[3]}
		}),
	}

	depositCmd = &cobra.Command{
		Use:   "deposit <protocol> <escrow> <payee> <release-date>",
		Short: "Deposit funds in the escrow for a payee until the release date",
		Long: `
Deposit funds in the escrow for a payee until the release date. Amount is required
for all token types except ERC721, token id only for ERC721 and ERC1155. Tokens
other than native should be approved for the escrow before depositing.`,
		Args: cobra.ExactArgs(4),
		RunE: runOp(deposit, func(cmd *cobra.Command, args []string) opArgs {
			return opArgs{
				protocol:    args[0],
				escrow:      args[1],
				payee:       args[2],
				releaseDate: args[3],
				tokenType:   stringFlag(cmd, tokenTypeF),
				token:       stringFlag(cmd, tokenF),
				tokenID:     stringFlag(cmd, tokenIDF),
				amount:      stringFlag(cmd, amountF),
			}
		}),
	}

	withdrawCmd = &cobra.Command{
		Use:   "withdraw <protocol> <escrow> <payee>",
		Short: "Withdraw the released deposits to the payee",
		Args:  cobra.ExactArgs(3),
		RunE: runOp(withdraw, func(cmd *cobra.Command, args []string) opArgs {
			return opArgs{
				protocol:  args[0],
				escrow:    args[1],
				payee:     args[2],
				tokenType: stringFlag(cmd, tokenTypeF),
				token:     stringFlag(cmd, tokenF),
			}
		}),
	}

	unitsCmd = &cobra.Command{
		Use:   "units <protocol> <amount>",
		Short: "Convert an amount of the native currency between display and base units",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toDisplay, err := cmd.Flags().GetBool(toDisplayF)
			if err != nil {
				return err
			}
			out, err := convertUnits(args[0], args[1], toDisplay)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
)

func init() {
	walletCmd.AddCommand(walletGenerateCmd, walletShowCmd)

	for _, cmd := range []*cobra.Command{deployCmd, escrowsCmd} {
		cmd.Flags().String(factoryF, "", "Escrow factory address or alias. Backend default is used if empty")
	}
	escrowsCmd.Flags().String(walletF, "", "Address or alias of the wallet. Configured wallet is used if empty")

	for _, cmd := range []*cobra.Command{depositsCmd, depositCmd, withdrawCmd} {
		cmd.Flags().String(tokenTypeF, "Native", "Token type. Supported types: Native, ERC20, ERC721, ERC1155")
		cmd.Flags().String(tokenF, "", "Token address or alias. Required for all token types except Native")
	}
	depositCmd.Flags().String(amountF, "", "Amount in display units, for example 1.5 for 1.5 ETH")
	depositCmd.Flags().String(tokenIDF, "", "Token id for ERC721 and ERC1155 tokens")

	unitsCmd.Flags().Bool(toDisplayF, false, "Convert from base units to display units")

	rootCmd.AddCommand(walletCmd, deployCmd, escrowsCmd, depositsCmd, approveCmd, depositCmd, withdrawCmd,
		unitsCmd, shellCmd)
}

// runOp returns a cobra handler that initializes the SDK and runs the operation with the parsed arguments.
func runOp(op opFunc, parse func(*cobra.Command, []string) opArgs) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSDK(cmd)
		if err != nil {
			return err
		}
		out, err := op(cmd.Context(), s, parse(cmd, args))
		if err != nil {
			return err
		}
		fmt.Println(greenf("%s", out))
		return nil
	}
}

func stringFlag(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("unknown flag %s", name))
	}
	return value
}

func walletGenerate(cmd *cobra.Command, args []string) error {
	w, err := ethereum.NewWalletBackend().GenerateWallet()
	if err != nil {
		return err
	}
	fmt.Printf("Address:     %s\nPrivate key: %s\nMnemonic:    %s\n", w.Address, w.PrivateKey, w.Mnemonic)
	return nil
}

func walletShow(cmd *cobra.Command, args []string) error {
	s, err := newSDK(cmd)
	if err != nil {
		return err
	}
	u, err := s.User()
	if err != nil {
		return err
	}
	fmt.Println(greenf("%s", u.Wallet.Address))
	return nil
}
