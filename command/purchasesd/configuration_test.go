// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/derivation"
	"github.com/bitmark-inc/purchasesd/purchases"
	"github.com/bitmark-inc/purchasesd/record"
)

const minimalConfiguration = `
local M = {}
M.data_directory = "."
M.client_rpc = {
    listen = { "127.0.0.1:2130" },
}
M.issuance = {
    metadata = {
        name = "Purchases",
        symbol = "PRCH",
        uri = "https://example.com/p.json",
    },
}
return M
`

func writeConfiguration(t *testing.T, text string) (string, string) {
	dir, err := ioutil.TempDir("", "purchasesd")
	assert.Nil(t, err, "temp dir")
	name := filepath.Join(dir, "purchasesd.conf")
	assert.Nil(t, ioutil.WriteFile(name, []byte(text), 0600), "write configuration")
	return dir, name
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, name := writeConfiguration(t, minimalConfiguration)
	defer os.RemoveAll(dir)

	c, err := getConfiguration(name)
	assert.Nil(t, err, "read configuration")

	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory, defaultLedgerDatabase), c.Database.Name, "database path")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), c.ClientRPC.Certificate, "certificate path")
	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), c.Logging.Directory, "log directory")
	assert.Equal(t, uint64(defaultRPCClients), c.ClientRPC.MaximumConnections, "connections")
	assert.Equal(t, "", c.PidFile, "no pid file")

	for _, d := range []string{defaultLevelDBDirectory, defaultLogDirectory} {
		info, err := os.Stat(filepath.Join(dir, d))
		assert.Nil(t, err, "directory %s created", d)
		assert.True(t, info.IsDir(), "%s is a directory", d)
	}

	ledger, err := c.ledgerConfiguration()
	assert.Nil(t, err, "ledger configuration")
	assert.Equal(t, defaultRecordProgram, ledger.RecordProgram.String(), "record program")
	assert.Equal(t, defaultIssuanceProgram, ledger.IssuanceProgram.String(), "issuance program")
	assert.Equal(t, defaultTree, ledger.Tree.String(), "tree")
	assert.Equal(t, []byte(purchases.DefaultRecordTag), ledger.RecordTag, "tag")
	assert.Equal(t, purchases.DefaultCollectionSize, ledger.DefaultCollectionSize, "collection size")
	assert.Equal(t, record.DefaultRent(), ledger.Rent, "rent")
	assert.Equal(t, "PRCH", ledger.Policy.Symbol, "metadata symbol")
	assert.False(t, ledger.AllowFunding, "funding disabled")
}

func TestGetConfigurationOverrides(t *testing.T) {
	dir, name := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.pidfile = "purchasesd.pid"
M.ledger = {
    tag = "orders",
    default_collection_size = 40,
    allow_funding = true,
    rent = {
        lamports_per_byte_year = 10,
        exemption_threshold = 1.0,
    },
}
return M
`)
	defer os.RemoveAll(dir)

	c, err := getConfiguration(name)
	assert.Nil(t, err, "read configuration")
	assert.True(t, filepath.IsAbs(c.PidFile), "pid file absolute")

	ledger, err := c.ledgerConfiguration()
	assert.Nil(t, err, "ledger configuration")
	assert.Equal(t, []byte("orders"), ledger.RecordTag, "tag")
	assert.Equal(t, 40, ledger.DefaultCollectionSize, "collection size")
	assert.Equal(t, uint64(10), ledger.Rent.LamportsPerByteYear, "rent rate")
	assert.True(t, ledger.AllowFunding, "funding enabled")

	owner := account.Account{1, 2, 3}
	address, err := c.recordAddress(owner)
	assert.Nil(t, err, "address")
	expected, _ := derivation.Derive(ledger.RecordProgram, []byte("orders"), owner)
	assert.Equal(t, expected, address, "derived address")
}

func TestGetConfigurationErrors(t *testing.T) {
	dir, name := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.issuance = { tree = "not-base58-0OIl" }
return M
`)
	defer os.RemoveAll(dir)

	_, err := getConfiguration(name)
	assert.NotNil(t, err, "invalid tree account")

	dir2, name2 := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.database = { name = "sub/purchases.leveldb" }
return M
`)
	defer os.RemoveAll(dir2)

	_, err = getConfiguration(name2)
	assert.NotNil(t, err, "database name must be a plain name")

	dir3, name3 := writeConfiguration(t, `return { data_directory = "" }`)
	defer os.RemoveAll(dir3)

	_, err = getConfiguration(name3)
	assert.NotNil(t, err, "blank data directory")

	dir4, name4 := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.ledger = { tag = "`+strings.Repeat("t", derivation.MaximumSeedLength+1)+`" }
return M
`)
	defer os.RemoveAll(dir4)

	_, err = getConfiguration(name4)
	assert.NotNil(t, err, "ledger tag longer than a seed")

	dir5, name5 := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.issuance = {
    metadata = {
        name = "Purchases",
        symbol = "PURCHASESYMBOL",
        uri = "https://example.com/p.json",
    },
}
return M
`)
	defer os.RemoveAll(dir5)

	_, err = getConfiguration(name5)
	assert.NotNil(t, err, "metadata symbol too long")

	dir6, name6 := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.issuance = {
    metadata = {
        name = "",
        symbol = "PRCH",
        uri = "https://example.com/p.json",
    },
}
return M
`)
	defer os.RemoveAll(dir6)

	_, err = getConfiguration(name6)
	assert.NotNil(t, err, "metadata name missing")
}

func TestGetConfigurationMetadataDefaults(t *testing.T) {
	dir, name := writeConfiguration(t, `return { data_directory = "." }`)
	defer os.RemoveAll(dir)

	c, err := getConfiguration(name)
	assert.Nil(t, err, "read configuration")

	ledger, err := c.ledgerConfiguration()
	assert.Nil(t, err, "ledger configuration")
	assert.Equal(t, defaultMetadataName, ledger.Policy.Name, "name")
	assert.Equal(t, defaultMetadataSymbol, ledger.Policy.Symbol, "symbol")
	assert.Equal(t, defaultMetadataURI, ledger.Policy.URI, "uri")
	assert.Equal(t, uint16(defaultSellerBasisPoints), ledger.Policy.SellerFeeBasisPoints, "seller fee")
}
