// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "purchases-cli"
	app.Usage = "record purchases through a purchasesd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " purchasesd host/IP and port, `HOST:PORT`",
			EnvVar: "PURCHASES_CONNECT",
		},
	}

	ownerFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "owner, o",
			Value: "",
			Usage: "*owner `ACCOUNT` (base58)",
		},
		cli.StringFlag{
			Name:  "address, a",
			Value: "",
			Usage: " expected record `ADDRESS` (base58), checked by the server",
		},
	}

	itemFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "items, x",
			Value: "",
			Usage: "+bitmask as `HEX` bytes",
		},
		cli.IntSliceFlag{
			Name:  "item, i",
			Usage: "+purchased item `NUMBER`, may be repeated",
		},
	}

	creationFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "payer, p",
			Value: "",
			Usage: " rent payer `ACCOUNT` (base58) [default owner]",
		},
		cli.IntFlag{
			Name:  "collection-size, s",
			Value: 0,
			Usage: " number of items in the collection `COUNT` [server default]",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate an owner key pair",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "purchase",
			Usage:     "record purchased items, creating the record and asset if necessary",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: concat(ownerFlags, itemFlags, creationFlags, []cli.Flag{
				cli.StringFlag{
					Name:  "collection",
					Value: "",
					Usage: " collection `ACCOUNT` for the minted asset",
				},
				cli.BoolFlag{
					Name:  "verified",
					Usage: " mark the collection as verified",
				},
			}),
			Action: runPurchase,
		},
		{
			Name:      "initialize",
			Usage:     "bind an issued asset and create an empty record",
			ArgsUsage: "\n   (* = required)",
			Flags: concat(ownerFlags, creationFlags, []cli.Flag{
				cli.StringFlag{
					Name:  "asset-id",
					Value: "",
					Usage: "*already issued asset `ID` to bind to the owner",
				},
			}),
			Action: runInitialize,
		},
		{
			Name:      "fetch",
			Usage:     "display an owner's purchased items",
			ArgsUsage: "\n   (* = required)",
			Flags:     ownerFlags,
			Action:    runFetch,
		},
		{
			Name:      "add",
			Usage:     "record purchased items in an existing record",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags:     concat(ownerFlags, itemFlags),
			Action:    runAdd,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*`ACCOUNT` to query (base58)",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "fund",
			Usage:     "credit an account (test servers only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*`ACCOUNT` to credit (base58)",
				},
				cli.Uint64Flag{
					Name:  "amount, n",
					Value: 0,
					Usage: "*`LAMPORTS` to credit",
				},
			},
			Action: runFund,
		},
		{
			Name:      "asset",
			Usage:     "display a minted asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset-id, a",
					Value: "",
					Usage: "*asset `ID` (base58)",
				},
			},
			Action: runAsset,
		},
		{
			Name:  "version",
			Usage: "display purchases-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func concat(flags ...[]cli.Flag) []cli.Flag {
	result := []cli.Flag{}
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}
