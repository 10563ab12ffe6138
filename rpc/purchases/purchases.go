// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package purchases

import (
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/issuance"
	"github.com/bitmark-inc/purchasesd/merkle"
	"github.com/bitmark-inc/purchasesd/purchases"
	"github.com/bitmark-inc/purchasesd/rpc/ratelimit"
)

// Purchases - type for the RPC
type Purchases struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *purchases.Ledger
}

const (
	// items beyond this many bytes are dropped before the ledger clamps
	// them to the record capacity
	MaximumItemsLength = 4096

	// the limiter is charged one token per started chunk of item bytes
	itemsChunkLength = 256
	maximumChunks    = (MaximumItemsLength + itemsChunkLength - 1) / itemsChunkLength

	rateLimitPurchases = 200
	rateBurstPurchases = 100
)

// New - create the RPC handler
func New(log *logger.L, ledger *purchases.Ledger) *Purchases {
	return &Purchases{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitPurchases, rateBurstPurchases),
		Ledger:  ledger,
	}
}

// Purchase
// --------

// PurchaseArguments - arguments for RPC
type PurchaseArguments struct {
	Owner          *account.Account     `json:"owner"`          // base58
	Payer          *account.Account     `json:"payer"`          // optional, defaults to owner
	Address        *account.Account     `json:"address"`        // optional, checked against derivation
	Items          string               `json:"items"`          // hex bitmask bytes
	CollectionSize *int                 `json:"collectionSize"` // optional, configured default if absent
	Collection     *issuance.Collection `json:"collection"`     // optional
}

// PurchaseReply - result of Purchase
type PurchaseReply struct {
	Address account.Account `json:"address"`
	AssetId account.Account `json:"assetId"`
	Minted  bool            `json:"minted"`
	Created bool            `json:"created"`
	Applied int             `json:"applied"`
	Data    string          `json:"data"`
}

// Purchase - buy items, creating the asset and record when needed
func (p *Purchases) Purchase(arguments *PurchaseArguments, reply *PurchaseReply) error {
	if nil == arguments || nil == arguments.Owner {
		return fault.ErrMissingParameters
	}

	items, err := p.items(arguments.Items)
	if nil != err {
		return err
	}

	p.Log.Infof("Purchases.Purchase: owner: %s", arguments.Owner)

	result, err := p.Ledger.Purchase(&purchases.PurchaseArguments{
		Owner:          *arguments.Owner,
		Payer:          arguments.Payer,
		Address:        arguments.Address,
		Items:          items,
		CollectionSize: arguments.CollectionSize,
		Collection:     arguments.Collection,
	})
	if nil != err {
		return err
	}

	reply.Address = result.Address
	reply.AssetId = result.AssetId
	reply.Minted = result.Minted
	reply.Created = result.Created
	reply.Applied = result.Applied
	reply.Data = hex.EncodeToString(result.Record.Data)

	return nil
}

// Initialize
// ----------

// InitializeArguments - arguments for RPC
type InitializeArguments struct {
	Owner          *account.Account `json:"owner"`
	Payer          *account.Account `json:"payer"`
	Address        *account.Account `json:"address"`
	AssetId        *account.Account `json:"assetId"`
	CollectionSize *int             `json:"collectionSize"`
}

// InitializeReply - result of Initialize
type InitializeReply struct {
	Address account.Account `json:"address"`
	Created bool            `json:"created"`
	Data    string          `json:"data"`
}

// Initialize - bind a known asset and create the zeroed record
func (p *Purchases) Initialize(arguments *InitializeArguments, reply *InitializeReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Owner || nil == arguments.AssetId {
		return fault.ErrMissingParameters
	}

	p.Log.Infof("Purchases.Initialize: owner: %s  asset: %s", arguments.Owner, arguments.AssetId)

	result, err := p.Ledger.Initialize(&purchases.InitializeArguments{
		Owner:          *arguments.Owner,
		Payer:          arguments.Payer,
		Address:        arguments.Address,
		AssetId:        *arguments.AssetId,
		CollectionSize: arguments.CollectionSize,
	})
	if nil != err {
		return err
	}

	reply.Address = result.Address
	reply.Created = result.Created
	reply.Data = hex.EncodeToString(result.Record.Data)

	return nil
}

// FetchData
// ---------

// FetchDataArguments - arguments for RPC
type FetchDataArguments struct {
	Owner   *account.Account `json:"owner"`
	Address *account.Account `json:"address"`
}

// FetchDataReply - result of FetchData
type FetchDataReply struct {
	Address   account.Account `json:"address"`
	Data      string          `json:"data"`
	Purchased []uint64        `json:"purchased"`
	Count     int             `json:"count"`
}

// FetchData - read an owner's record
func (p *Purchases) FetchData(arguments *FetchDataArguments, reply *FetchDataReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Owner {
		return fault.ErrMissingParameters
	}

	p.Log.Debugf("Purchases.FetchData: owner: %s", arguments.Owner)

	result, err := p.Ledger.FetchData(*arguments.Owner, arguments.Address)
	if nil != err {
		return err
	}

	reply.Address = result.Address
	reply.Data = hex.EncodeToString(result.Data)
	reply.Purchased = result.Purchased
	reply.Count = len(result.Purchased)

	return nil
}

// AddPurchase
// -----------

// AddPurchaseArguments - arguments for RPC
type AddPurchaseArguments struct {
	Owner   *account.Account `json:"owner"`
	Address *account.Account `json:"address"`
	Items   string           `json:"items"`
}

// AddPurchaseReply - result of AddPurchase
type AddPurchaseReply struct {
	Address account.Account `json:"address"`
	Applied int             `json:"applied"`
	Data    string          `json:"data"`
}

// AddPurchase - apply items to an existing record
func (p *Purchases) AddPurchase(arguments *AddPurchaseArguments, reply *AddPurchaseReply) error {
	if nil == arguments || nil == arguments.Owner {
		return fault.ErrMissingParameters
	}

	items, err := p.items(arguments.Items)
	if nil != err {
		return err
	}

	p.Log.Infof("Purchases.AddPurchase: owner: %s", arguments.Owner)

	result, err := p.Ledger.AddPurchase(*arguments.Owner, arguments.Address, items)
	if nil != err {
		return err
	}

	reply.Address = result.Address
	reply.Applied = result.Applied
	reply.Data = hex.EncodeToString(result.Record.Data)

	return nil
}

// Balance
// -------

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Account *account.Account `json:"account"`
}

// BalanceReply - result of Balance
type BalanceReply struct {
	Account account.Account `json:"account"`
	Balance uint64          `json:"balance,string"`
}

// Balance - lamports held by an account
func (p *Purchases) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	reply.Account = *arguments.Account
	reply.Balance = p.Ledger.Balance(*arguments.Account)

	return nil
}

// Fund
// ----

// FundArguments - arguments for RPC
type FundArguments struct {
	Account *account.Account `json:"account"`
	Amount  uint64           `json:"amount,string"`
}

// Fund - credit an account on a ledger that allows funding
func (p *Purchases) Fund(arguments *FundArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Account || 0 == arguments.Amount {
		return fault.ErrMissingParameters
	}

	p.Log.Infof("Purchases.Fund: account: %s  amount: %d", arguments.Account, arguments.Amount)

	balance, err := p.Ledger.Fund(*arguments.Account, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Account = *arguments.Account
	reply.Balance = balance

	return nil
}

// Asset
// -----

// AssetArguments - arguments for RPC
type AssetArguments struct {
	AssetId *account.Account `json:"assetId"`
}

// AssetReply - result of Asset
type AssetReply struct {
	Asset *issuance.Asset `json:"asset"`
	Root  merkle.Digest   `json:"root"`
}

// Asset - read back a minted asset
func (p *Purchases) Asset(arguments *AssetArguments, reply *AssetReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.AssetId {
		return fault.ErrMissingParameters
	}

	result, err := p.Ledger.Asset(*arguments.AssetId)
	if nil != err {
		return err
	}

	reply.Asset = result.Asset
	reply.Root = result.Root

	return nil
}

// decode hex items and charge the limiter by their length
//
// never rejects a valid payload for its size: the record store keeps
// only as many bytes as the record holds
func (p *Purchases) items(s string) ([]byte, error) {
	items, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrInvalidItems
	}
	if len(items) > MaximumItemsLength {
		items = items[:MaximumItemsLength]
	}
	chunks := 1 + len(items)/itemsChunkLength
	if chunks > maximumChunks {
		chunks = maximumChunks
	}
	err = ratelimit.LimitN(p.Limiter, chunks, maximumChunks)
	if nil != err {
		return nil, err
	}
	return items, nil
}
