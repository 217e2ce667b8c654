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
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/direct-state-transfer/escrow-sdk-go/protocol"
	"github.com/direct-state-transfer/escrow-sdk-go/sdk"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell",
	Long: `
Start an interactive shell for running escrow operations. The configuration is
parsed once, when the shell starts. Optional arguments are passed as key=value
pairs, for example:

  deposit ETHEREUM <escrow> bob 2030-01-01 amount=1.5
  deposit POLYGON <escrow> bob 2030-01-01 tokentype=ERC721 token=<token> tokenid=7`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// shellSDK is the instance of the SDK used by all the commands in the shell.
var shellSDK *sdk.SDK

// options that can be passed as key=value pairs to shell commands.
const (
	tokenTypeOpt = "tokentype"
	tokenOpt     = "token"
	tokenIDOpt   = "tokenid"
	amountOpt    = "amount"
	factoryOpt   = "factory"
	walletOpt    = "wallet"
)

func runShell(cmd *cobra.Command, args []string) error {
	var err error
	if shellSDK, err = newSDK(cmd); err != nil {
		return err
	}

	// New shell includes help, clear, exit commands by default.
	sh := ishell.New()
	// Read and write history to $HOME/.ishell_history
	sh.SetHomeHistoryPath(".ishell_history")

	for _, c := range shellCmds() {
		sh.AddCmd(c)
	}
	sh.AddCmd(contactsCmd())

	sh.Printf("Escrow client shell. Environment: %s, backend: %s\n\n",
		shellSDK.Config().Environment, shellSDK.Config().APIURL)
	if u, err := shellSDK.User(); err == nil {
		sh.Printf("Using wallet %s\n\n", u.Wallet.Address)
	} else {
		sh.Printf("%s\n\n", redf("No wallet configured, only read operations can be used"))
	}
	sh.Run()
	return nil
}

// shellOp describes a shell command for an escrow operation.
type shellOp struct {
	name, help  string
	noArgsReq   int
	op          opFunc
	parse       func(args []string, opts map[string]string) opArgs
	payeeArgPos int // Position of the argument that is completed from the contacts. Zero if there is none.
}

func shellCmds() []*ishell.Cmd {
	ops := []shellOp{
		{
			name:      "deploy",
			help:      "Deploy a date escrow. Usage: deploy <protocol> [factory=<addr>]",
			noArgsReq: 1,
			op:        deploy,
			parse: func(args []string, opts map[string]string) opArgs {
				return opArgs{protocol: args[0], factory: opts[factoryOpt]}
			},
		},
		{
			name:      "escrows",
			help:      "List escrows. Usage: escrows <protocol> [wallet=<addr>] [factory=<addr>]",
			noArgsReq: 1,
			op:        listEscrows,
			parse: func(args []string, opts map[string]string) opArgs {
				return opArgs{protocol: args[0], factory: opts[factoryOpt], wallet: opts[walletOpt]}
			},
		},
		{
			name:        "deposits",
			help:        "List deposits. Usage: deposits <protocol> <escrow> <payee> [tokentype=<type>] [token=<addr>]",
			noArgsReq:   3,
			op:          listDeposits,
			payeeArgPos: 3,
			parse: func(args []string, opts map[string]string) opArgs {
				return opArgs{
					protocol:  args[0],
					escrow:    args[1],
					payee:     args[2],
					tokenType: opts[tokenTypeOpt],
					token:     opts[tokenOpt],
				}
			},
		},
		{
			name:      "approve",
			help:      "Approve escrow for tokens. Usage: approve <protocol> <escrow> <tokentype> <token>",
			noArgsReq: 4,
			op:        approve,
			parse: func(args []string, opts map[string]string) opArgs {
				return opArgs{protocol: args[0], escrow: args[1], tokenType: args[2], token: args[3]}
			},
		},
		{
			name: "deposit",
			help: "Deposit for payee. Usage: deposit <protocol> <escrow> <payee> <release-date> " +
				"[amount=<amount>] [tokentype=<type>] [token=<addr>] [tokenid=<id>]",
			noArgsReq:   4,
			op:          deposit,
			payeeArgPos: 3,
			parse: func(args []string, opts map[string]string) opArgs {
				return opArgs{
					protocol:    args[0],
					escrow:      args[1],
					payee:       args[2],
					releaseDate: args[3],
					amount:      opts[amountOpt],
					tokenType:   opts[tokenTypeOpt],
					token:       opts[tokenOpt],
					tokenID:     opts[tokenIDOpt],
				}
			},
		},
		{
			name:        "withdraw",
			help:        "Withdraw for payee. Usage: withdraw <protocol> <escrow> <payee> [tokentype=<type>] [token=<addr>]",
			noArgsReq:   3,
			op:          withdraw,
			payeeArgPos: 3,
			parse: func(args []string, opts map[string]string) opArgs {
				return opArgs{
					protocol:  args[0],
					escrow:    args[1],
					payee:     args[2],
					tokenType: opts[tokenTypeOpt],
					token:     opts[tokenOpt],
				}
			},
		},
	}

	cmds := make([]*ishell.Cmd, 0, len(ops)+1)
	for i := range ops {
		cmds = append(cmds, ops[i].cmd())
	}
	cmds = append(cmds, &ishell.Cmd{
		Name: "units",
		Help: "Convert native currency amount to base units. Usage: units <protocol> <amount>",
		Func: func(c *ishell.Context) {
			noArgsReq := 2
			if len(c.Args) != noArgsReq {
				c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), noArgsReq))
				c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
				return
			}
			out, err := convertUnits(c.Args[0], c.Args[1], false)
			if err != nil {
				c.Printf("%s\n\n", redf("Error converting units: %v", err))
				return
			}
			c.Printf("%s\n\n", greenf("%s", out))
		},
	})
	return cmds
}

func (o shellOp) cmd() *ishell.Cmd {
	return &ishell.Cmd{
		Name: o.name,
		Help: o.help,
		Func: func(c *ishell.Context) {
			args, opts, err := splitOptions(c.Args)
			if err != nil {
				c.Printf("%s\n\n", redf("%v", err))
				return
			}
			if len(args) != o.noArgsReq {
				c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(args), o.noArgsReq))
				c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
				return
			}
			out, err := o.op(context.Background(), shellSDK, o.parse(args, opts))
			if err != nil {
				c.Printf("%s\n\n", redf("Error running %s: %v", o.name, err))
				return
			}
			c.Printf("%s\n\n", greenf("%s", out))
		},
		Completer: func(args []string) []string {
			switch {
			case len(args) == 0:
				return protocolNames()
			case o.payeeArgPos > 0 && len(args) == o.payeeArgPos-1:
				return contactAliases()
			}
			return nil
		},
	}
}

// splitOptions separates the positional arguments from the key=value options.
func splitOptions(input []string) (args []string, opts map[string]string, _ error) {
	opts = make(map[string]string)
	for _, in := range input {
		key, value, found := strings.Cut(in, "=")
		if !found {
			if len(opts) > 0 {
				return nil, nil, errors.Errorf("positional argument %q after options", in)
			}
			args = append(args, in)
			continue
		}
		switch key {
		case tokenTypeOpt, tokenOpt, tokenIDOpt, amountOpt, factoryOpt, walletOpt:
		default:
			return nil, nil, errors.Errorf("unknown option %q", key)
		}
		opts[key] = value
	}
	return args, opts, nil
}

func protocolNames() []string {
	all := protocol.All()
	names := make([]string, len(all))
	for i := range all {
		names[i] = string(all[i])
	}
	return names
}

func contactAliases() []string {
	if shellSDK == nil || shellSDK.Contacts == nil {
		return nil
	}
	return shellSDK.Contacts.Aliases()
}

func contactsCmd() *ishell.Cmd {
	cmd := &ishell.Cmd{
		Name: "contacts",
		Help: "List contacts. Usage: contacts [command]",
		Func: func(c *ishell.Context) {
			if shellSDK.Contacts == nil {
				c.Printf("%s\n\n", redf("No contacts file configured"))
				return
			}
			for _, alias := range shellSDK.Contacts.Aliases() {
				addr, _ := shellSDK.Contacts.ReadByAlias(alias)
				c.Printf("%s\t%s\n", alias, addr)
			}
			c.Println()
		},
	}
	cmd.AddCmd(&ishell.Cmd{
		Name: "add",
		Help: "Add a contact and save the contacts file. Usage: contacts add <alias> <address>",
		Func: func(c *ishell.Context) {
			noArgsReq := 2
			if len(c.Args) != noArgsReq {
				c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), noArgsReq))
				c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
				return
			}
			updateContacts(c, func() error { return shellSDK.Contacts.Write(c.Args[0], c.Args[1]) })
		},
	})
	cmd.AddCmd(&ishell.Cmd{
		Name: "remove",
		Help: "Remove a contact and save the contacts file. Usage: contacts remove <alias>",
		Func: func(c *ishell.Context) {
			noArgsReq := 1
			if len(c.Args) != noArgsReq {
				c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), noArgsReq))
				c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
				return
			}
			updateContacts(c, func() error { return shellSDK.Contacts.Delete(c.Args[0]) })
		},
		Completer: func(args []string) []string {
			if len(args) == 0 {
				return contactAliases()
			}
			return nil
		},
	})
	return cmd
}

func updateContacts(c *ishell.Context, update func() error) {
	if shellSDK.Contacts == nil {
		c.Printf("%s\n\n", redf("No contacts file configured"))
		return
	}
	if err := update(); err != nil {
		c.Printf("%s\n\n", redf("Error updating contacts: %v", err))
		return
	}
	if err := shellSDK.Contacts.UpdateStorage(); err != nil {
		c.Printf("%s\n\n", redf("Error saving contacts: %v", err))
		return
	}
	c.Printf("%s\n\n", greenf("Contacts updated"))
}
