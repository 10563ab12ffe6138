// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package purchases_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/fixtures"
	"github.com/bitmark-inc/purchasesd/issuance"
	"github.com/bitmark-inc/purchasesd/issuance/mocks"
	"github.com/bitmark-inc/purchasesd/merkle"
	"github.com/bitmark-inc/purchasesd/purchases"
	"github.com/bitmark-inc/purchasesd/record"
)

const plenty = 1000000000

func TestMain(m *testing.M) {
	if err := fixtures.SetupTestDatabase(); nil != err {
		panic(err)
	}
	rc := m.Run()
	fixtures.TeardownTestDatabase()
	os.Exit(rc)
}

// each test uses its own tree so leaf counts are independent
func testConfiguration(tree byte) *purchases.Configuration {
	return &purchases.Configuration{
		RecordProgram:   account.Account{0x9e, 0xc0},
		RecordTag:       []byte(purchases.DefaultRecordTag),
		IssuanceProgram: account.Account{0x15, 0x50},
		Tree:            account.Account{0x7e, 0xee, tree},
		TreeDepth:       8,
		Rent:            record.DefaultRent(),
		Policy: issuance.Policy{
			Name:   "Purchases",
			Symbol: "PUR",
			URI:    "https://example.com/purchases.json",
		},
		AllowFunding: true,
	}
}

func newTreeLedger(t *testing.T, tree byte) (*purchases.Ledger, *issuance.Tree) {
	conf := testConfiguration(tree)
	issuer, err := purchases.NewTree(conf)
	assert.Nil(t, err, "tree")
	l, err := purchases.New(conf, issuer)
	assert.Nil(t, err, "ledger")
	return l, issuer
}

func newMockLedger(t *testing.T, issuer issuance.Issuer) *purchases.Ledger {
	l, err := purchases.New(testConfiguration(0xff), issuer)
	assert.Nil(t, err, "ledger")
	return l
}

func newOwner(b byte) account.Account {
	return account.Account{0x0a, 0x0b, b}
}

func intPtr(i int) *int {
	return &i
}

func TestPurchaseDefaultCapacity(t *testing.T) {
	l, _ := newTreeLedger(t, 1)
	owner := newOwner(1)
	_, err := l.Fund(owner, plenty)
	assert.Nil(t, err, "fund")

	result, err := l.Purchase(&purchases.PurchaseArguments{
		Owner: owner,
		Items: []byte{1, 0, 1},
	})
	assert.Nil(t, err, "purchase")
	assert.True(t, result.Minted, "minted")
	assert.True(t, result.Created, "created")
	assert.Equal(t, 3, result.Applied, "applied")
	assert.Equal(t, 100, result.Record.Capacity(), "default capacity")
	assert.Equal(t, l.Address(owner), result.Address, "address")

	fetched, err := l.FetchData(owner, nil)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, []byte{1, 0, 1}, fetched.Data[:3], "head")
	assert.Equal(t, make([]byte, 97), fetched.Data[3:], "tail")
	assert.Equal(t, []uint64{0, 16}, fetched.Purchased, "purchased items")
}

func TestPurchaseClampsLongItems(t *testing.T) {
	l, _ := newTreeLedger(t, 2)
	owner := newOwner(2)
	l.Fund(owner, plenty)

	items := bytes.Repeat([]byte{0x11}, 150)
	result, err := l.Purchase(&purchases.PurchaseArguments{
		Owner: owner,
		Items: items,
	})
	assert.Nil(t, err, "purchase")
	assert.Equal(t, 100, result.Applied, "clamped")
	assert.Equal(t, items[:100], result.Record.Data, "data")
}

func TestPurchaseMintsOnlyOnce(t *testing.T) {
	l, tree := newTreeLedger(t, 3)
	owner := newOwner(3)
	l.Fund(owner, plenty)

	first, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Items: []byte{1}})
	assert.Nil(t, err, "first purchase")
	balance := l.Balance(owner)

	second, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Items: []byte{3}})
	assert.Nil(t, err, "second purchase")

	assert.True(t, first.Minted, "first minted")
	assert.False(t, second.Minted, "second not minted")
	assert.False(t, second.Created, "second not created")
	assert.Equal(t, first.AssetId, second.AssetId, "same asset")
	assert.Equal(t, uint64(1), tree.Size(), "one leaf")
	assert.Equal(t, balance, l.Balance(owner), "no second funding")

	asset, err := l.Asset(first.AssetId)
	assert.Nil(t, err, "asset")
	assert.Equal(t, owner, asset.Asset.Owner, "asset owner")
	proof, err := tree.Proof(asset.Asset.LeafIndex)
	assert.Nil(t, err, "proof")
	assert.True(t, merkle.VerifyProof(asset.Root, asset.Asset.Leaf, asset.Asset.LeafIndex, proof), "leaf in root")
}

func TestPurchaseCallsMintOnce(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	owner := newOwner(4)
	tree := account.Account{0x77}
	conf := testConfiguration(0xff)
	id := issuance.AssetID(conf.IssuanceProgram, tree, 5)

	m := mocks.NewMockIssuer(ctl)
	gomock.InOrder(
		m.EXPECT().Lookup(owner).Return(issuance.NotIssued{}, nil).Times(1),
		m.EXPECT().Mint(gomock.Any(), owner, gomock.Any()).Return(tree, uint64(5), nil).Times(1),
		m.EXPECT().Lookup(owner).Return(issuance.Issued{ID: id}, nil).Times(1),
	)

	l := newMockLedger(t, m)
	l.Fund(owner, plenty)

	r1, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Items: []byte{1}})
	assert.Nil(t, err, "first")
	assert.Equal(t, id, r1.AssetId, "minted id")

	r2, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Items: []byte{1, 1}})
	assert.Nil(t, err, "second")
	assert.Equal(t, id, r2.AssetId, "looked up id")
	assert.Equal(t, []byte{1, 1}, r2.Record.Data[:2], "applied")

	_, err = l.Asset(id)
	assert.Equal(t, fault.ErrAssetNotFound, err, "mock cannot read assets")
}

func TestPurchaseIssuanceFailureLeavesNothing(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	owner := newOwner(5)
	payer := newOwner(6)
	cause := errors.New("authority offline")

	m := mocks.NewMockIssuer(ctl)
	m.EXPECT().Lookup(owner).Return(issuance.NotIssued{}, nil).Times(1)
	m.EXPECT().Mint(gomock.Any(), owner, gomock.Any()).Return(account.Account{}, uint64(0), cause).Times(1)

	l := newMockLedger(t, m)
	l.Fund(payer, plenty)

	_, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Payer: &payer, Items: []byte{1}})
	assert.True(t, errors.Is(err, fault.ErrIssuanceFailed), "issuance failed")
	assert.True(t, errors.Is(err, cause), "cause")
	assert.True(t, fault.IsErrProcess(fault.ErrIssuanceFailed), "process class")

	assert.Equal(t, uint64(plenty), l.Balance(payer), "payer untouched")
	assert.Equal(t, uint64(0), l.Balance(l.Address(owner)), "record address untouched")
	_, err = l.FetchData(owner, nil)
	assert.Equal(t, fault.ErrRecordNotFound, err, "no record")
}

func TestPurchaseInsufficientFundingBeforeIssuance(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	owner := newOwner(7)
	m := mocks.NewMockIssuer(ctl)
	m.EXPECT().Lookup(gomock.Any()).Times(0)
	m.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	l := newMockLedger(t, m)
	required := record.DefaultRent().MinimumBalance(8 + 32 + 4 + 5)
	l.Fund(owner, required-1)

	_, err := l.Purchase(&purchases.PurchaseArguments{
		Owner:          owner,
		Items:          []byte{1},
		CollectionSize: intPtr(40),
	})
	assert.Equal(t, fault.ErrInsufficientFunding, err, "insufficient")
	assert.Equal(t, required-1, l.Balance(owner), "no debit")
	_, err = l.FetchData(owner, nil)
	assert.Equal(t, fault.ErrRecordNotFound, err, "no record")
}

func TestPurchaseInvalidCollectionSize(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	owner := newOwner(8)
	m := mocks.NewMockIssuer(ctl)
	m.EXPECT().Lookup(gomock.Any()).Times(0)

	l := newMockLedger(t, m)
	l.Fund(owner, plenty)

	for _, size := range []int{0, -1, 2001} {
		_, err := l.Purchase(&purchases.PurchaseArguments{
			Owner:          owner,
			Items:          []byte{1},
			CollectionSize: intPtr(size),
		})
		assert.Equal(t, fault.ErrInvalidCollectionSize, err, "size %d", size)
	}
	assert.Equal(t, uint64(plenty), l.Balance(owner), "no debit")
}

func TestPurchaseWrongAddress(t *testing.T) {
	l, tree := newTreeLedger(t, 9)
	owner := newOwner(9)
	l.Fund(owner, plenty)

	wrong := l.Address(newOwner(10))
	_, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Address: &wrong, Items: []byte{1}})
	assert.Equal(t, fault.ErrInvalidAddressDerivation, err, "wrong address")
	assert.Equal(t, uint64(0), tree.Size(), "nothing minted")

	right := l.Address(owner)
	_, err = l.Purchase(&purchases.PurchaseArguments{Owner: owner, Address: &right, Items: []byte{1}})
	assert.Nil(t, err, "right address")

	_, err = l.FetchData(owner, &wrong)
	assert.Equal(t, fault.ErrInvalidAddressDerivation, err, "fetch wrong address")
	_, err = l.AddPurchase(owner, &wrong, []byte{2})
	assert.Equal(t, fault.ErrInvalidAddressDerivation, err, "add wrong address")
}

func TestPurchaseWithCollection(t *testing.T) {
	l, _ := newTreeLedger(t, 11)
	owner := newOwner(11)
	l.Fund(owner, plenty)

	collection := &issuance.Collection{Key: account.Account{0xc0, 0x11}, Verified: true}
	result, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Items: []byte{1}, Collection: collection})
	assert.Nil(t, err, "purchase")

	asset, err := l.Asset(result.AssetId)
	assert.Nil(t, err, "asset")
	assert.Equal(t, collection, asset.Asset.Metadata.Collection, "collection")
}

func TestInitialize(t *testing.T) {
	l, tree := newTreeLedger(t, 12)
	owner := newOwner(12)
	payer := newOwner(13)
	l.Fund(payer, plenty)
	external := account.Account{0xe0, 0x01}

	result, err := l.Initialize(&purchases.InitializeArguments{
		Owner:          owner,
		Payer:          &payer,
		AssetId:        external,
		CollectionSize: intPtr(40),
	})
	assert.Nil(t, err, "initialize")
	assert.True(t, result.Created, "created")
	assert.Equal(t, make([]byte, 5), result.Record.Data, "zeroed")
	assert.Equal(t, record.DefaultRent().MinimumBalance(49), l.Balance(result.Address), "funded")

	again, err := l.Initialize(&purchases.InitializeArguments{Owner: owner, Payer: &payer, AssetId: external})
	assert.Nil(t, err, "same asset again")
	assert.False(t, again.Created, "not created again")

	_, err = l.Initialize(&purchases.InitializeArguments{Owner: owner, Payer: &payer, AssetId: account.Account{0xe0, 0x02}})
	assert.Equal(t, fault.ErrAssetMismatch, err, "different asset")

	status, err := l.Status(owner)
	assert.Nil(t, err, "status")
	assert.Equal(t, issuance.Issued{ID: external}, status, "bound")

	purchase, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Payer: &payer, Items: []byte{0xff}})
	assert.Nil(t, err, "purchase after initialize")
	assert.False(t, purchase.Minted, "no mint")
	assert.Equal(t, external, purchase.AssetId, "bound asset")
	assert.Equal(t, uint64(0), tree.Size(), "tree untouched")
}

func TestInitializeAssetHeldByAnotherOwner(t *testing.T) {
	l, _ := newTreeLedger(t, 17)
	first := newOwner(0x40)
	second := newOwner(0x41)
	l.Fund(first, plenty)
	l.Fund(second, plenty)
	external := account.Account{0xee, 0xee, 0xee, 0xee}

	_, err := l.Initialize(&purchases.InitializeArguments{Owner: first, AssetId: external})
	assert.Nil(t, err, "first owner")

	_, err = l.Initialize(&purchases.InitializeArguments{Owner: second, AssetId: external})
	assert.Equal(t, fault.ErrAssetMismatch, err, "second owner")

	status, err := l.Status(second)
	assert.Nil(t, err, "status")
	assert.Equal(t, issuance.NotIssued{}, status, "second owner unbound")

	_, err = l.FetchData(second, nil)
	assert.Equal(t, fault.ErrRecordNotFound, err, "no record for second owner")
	assert.Equal(t, uint64(plenty), l.Balance(second), "second owner not charged")
}

func TestInitializeInsufficientFundingUndoesBind(t *testing.T) {
	l, _ := newTreeLedger(t, 14)
	owner := newOwner(14)

	_, err := l.Initialize(&purchases.InitializeArguments{Owner: owner, AssetId: account.Account{0xe1}})
	assert.Equal(t, fault.ErrInsufficientFunding, err, "unfunded")

	status, err := l.Status(owner)
	assert.Nil(t, err, "status")
	assert.Equal(t, issuance.NotIssued{}, status, "bind rolled back")
}

func TestAddPurchase(t *testing.T) {
	l, _ := newTreeLedger(t, 15)
	owner := newOwner(15)

	_, err := l.AddPurchase(owner, nil, []byte{1})
	assert.Equal(t, fault.ErrRecordNotFound, err, "no record")

	l.Fund(owner, plenty)
	_, err = l.Purchase(&purchases.PurchaseArguments{Owner: owner, Items: []byte{1, 2, 3, 4}, CollectionSize: intPtr(16)})
	assert.Nil(t, err, "purchase")

	result, err := l.AddPurchase(owner, nil, []byte{9, 9, 9})
	assert.Nil(t, err, "add")
	assert.Equal(t, 2, result.Applied, "clamped to capacity")
	assert.Equal(t, []byte{9, 9}, result.Record.Data, "data")
}

func TestFetchDataIsCopy(t *testing.T) {
	l, _ := newTreeLedger(t, 16)
	owner := newOwner(16)
	l.Fund(owner, plenty)
	_, err := l.Purchase(&purchases.PurchaseArguments{Owner: owner, Items: []byte{1}})
	assert.Nil(t, err, "purchase")

	f1, _ := l.FetchData(owner, nil)
	f1.Data[0] = 0xff
	f2, _ := l.FetchData(owner, nil)
	assert.Equal(t, byte(1), f2.Data[0], "stored data unchanged")
}

func TestFundDisabled(t *testing.T) {
	conf := testConfiguration(17)
	conf.AllowFunding = false
	issuer, _ := purchases.NewTree(conf)
	l, err := purchases.New(conf, issuer)
	assert.Nil(t, err, "ledger")

	_, err = l.Fund(newOwner(17), 1)
	assert.Equal(t, fault.ErrFundingDisabled, err, "disabled")
}

func TestNewRequiresIssuer(t *testing.T) {
	_, err := purchases.New(testConfiguration(18), nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "no issuer")
}
