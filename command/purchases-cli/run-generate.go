// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/purchasesd/account"
)

type generateReply struct {
	Owner      account.Account `json:"owner"`
	PrivateKey string          `json:"privateKey"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := account.NewPrivateKey()
	if nil != err {
		return err
	}

	printJson(m.w, generateReply{
		Owner:      key.Account(),
		PrivateKey: key.String(),
	})
	return nil
}
