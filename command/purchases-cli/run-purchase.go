// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/purchasesd/command/purchases-cli/rpccalls"
)

func runPurchase(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredAccount(c.String("owner"), ErrMissingOwner)
	if nil != err {
		return err
	}
	address, err := optionalAccount(c.String("address"))
	if nil != err {
		return err
	}
	payer, err := optionalAccount(c.String("payer"))
	if nil != err {
		return err
	}
	items, err := makeItems(c.String("items"), c.IntSlice("item"))
	if nil != err {
		return err
	}

	collection, err := optionalCollection(c.String("collection"), c.Bool("verified"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "items: %x\n", items)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Purchase(&rpccalls.PurchaseData{
		Owner:          owner,
		Payer:          payer,
		Address:        address,
		Items:          items,
		CollectionSize: optionalSize(c.Int("collection-size")),
		Collection:     collection,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runInitialize(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredAccount(c.String("owner"), ErrMissingOwner)
	if nil != err {
		return err
	}
	address, err := optionalAccount(c.String("address"))
	if nil != err {
		return err
	}
	payer, err := optionalAccount(c.String("payer"))
	if nil != err {
		return err
	}
	assetId, err := requiredAccount(c.String("asset-id"), ErrMissingAssetId)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Initialize(&rpccalls.InitializeData{
		Owner:          owner,
		Payer:          payer,
		Address:        address,
		AssetId:        assetId,
		CollectionSize: optionalSize(c.Int("collection-size")),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runFetch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredAccount(c.String("owner"), ErrMissingOwner)
	if nil != err {
		return err
	}
	address, err := optionalAccount(c.String("address"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.FetchData(owner, address)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredAccount(c.String("owner"), ErrMissingOwner)
	if nil != err {
		return err
	}
	address, err := optionalAccount(c.String("address"))
	if nil != err {
		return err
	}
	items, err := makeItems(c.String("items"), c.IntSlice("item"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "items: %x\n", items)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.AddPurchase(owner, address, items)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
