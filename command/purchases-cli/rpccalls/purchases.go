// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/hex"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/issuance"
	"github.com/bitmark-inc/purchasesd/rpc/purchases"
)

// PurchaseData - the parameters for a purchase request
type PurchaseData struct {
	Owner          account.Account
	Payer          *account.Account
	Address        *account.Account
	Items          []byte
	CollectionSize *int
	Collection     *issuance.Collection
}

// Purchase - mark items as purchased, creating the record and asset if necessary
func (client *Client) Purchase(purchaseConfig *PurchaseData) (*purchases.PurchaseReply, error) {

	args := purchases.PurchaseArguments{
		Owner:          &purchaseConfig.Owner,
		Payer:          purchaseConfig.Payer,
		Address:        purchaseConfig.Address,
		Items:          hex.EncodeToString(purchaseConfig.Items),
		CollectionSize: purchaseConfig.CollectionSize,
		Collection:     purchaseConfig.Collection,
	}

	client.printJson("Purchase Request", args)

	reply := &purchases.PurchaseReply{}
	err := client.client.Call("Purchases.Purchase", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Purchase Reply", reply)

	return reply, nil
}

// InitializeData - the parameters for an initialize request
type InitializeData struct {
	Owner          account.Account
	Payer          *account.Account
	Address        *account.Account
	AssetId        account.Account
	CollectionSize *int
}

// Initialize - bind an issued asset and create an empty record
func (client *Client) Initialize(initializeConfig *InitializeData) (*purchases.InitializeReply, error) {

	args := purchases.InitializeArguments{
		Owner:          &initializeConfig.Owner,
		Payer:          initializeConfig.Payer,
		Address:        initializeConfig.Address,
		AssetId:        &initializeConfig.AssetId,
		CollectionSize: initializeConfig.CollectionSize,
	}

	client.printJson("Initialize Request", args)

	reply := &purchases.InitializeReply{}
	err := client.client.Call("Purchases.Initialize", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Initialize Reply", reply)

	return reply, nil
}

// FetchData - read back an owner's record
func (client *Client) FetchData(owner account.Account, address *account.Account) (*purchases.FetchDataReply, error) {

	args := purchases.FetchDataArguments{
		Owner:   &owner,
		Address: address,
	}

	client.printJson("Fetch Request", args)

	reply := &purchases.FetchDataReply{}
	err := client.client.Call("Purchases.FetchData", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Fetch Reply", reply)

	return reply, nil
}

// AddPurchase - mark items in an existing record
func (client *Client) AddPurchase(owner account.Account, address *account.Account, items []byte) (*purchases.AddPurchaseReply, error) {

	args := purchases.AddPurchaseArguments{
		Owner:   &owner,
		Address: address,
		Items:   hex.EncodeToString(items),
	}

	client.printJson("Add Request", args)

	reply := &purchases.AddPurchaseReply{}
	err := client.client.Call("Purchases.AddPurchase", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Add Reply", reply)

	return reply, nil
}

// GetBalance - retrieve the balance of an account
func (client *Client) GetBalance(a account.Account) (*purchases.BalanceReply, error) {

	args := purchases.BalanceArguments{
		Account: &a,
	}

	client.printJson("Balance Request", args)

	reply := &purchases.BalanceReply{}
	err := client.client.Call("Purchases.Balance", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}

// Fund - credit an account, only if the server allows it
func (client *Client) Fund(a account.Account, amount uint64) (*purchases.BalanceReply, error) {

	args := purchases.FundArguments{
		Account: &a,
		Amount:  amount,
	}

	client.printJson("Fund Request", args)

	reply := &purchases.BalanceReply{}
	err := client.client.Call("Purchases.Fund", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Fund Reply", reply)

	return reply, nil
}

// GetAsset - retrieve a minted asset
func (client *Client) GetAsset(id account.Account) (*purchases.AssetReply, error) {

	args := purchases.AssetArguments{
		AssetId: &id,
	}

	client.printJson("Asset Request", args)

	reply := &purchases.AssetReply{}
	err := client.client.Call("Purchases.Asset", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Asset Reply", reply)

	return reply, nil
}
