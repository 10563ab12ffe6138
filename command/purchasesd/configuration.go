// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/configuration"
	"github.com/bitmark-inc/purchasesd/derivation"
	"github.com/bitmark-inc/purchasesd/issuance"
	"github.com/bitmark-inc/purchasesd/purchases"
	"github.com/bitmark-inc/purchasesd/record"
	"github.com/bitmark-inc/purchasesd/rpc/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = "purchases.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "purchasesd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10

	// well known program accounts
	defaultRecordProgram   = "AEbCmezvS6g8XHbJjSuYtgV75o3BATMVawzZtoiMAXRS"
	defaultIssuanceProgram = "oHuSmVsemsnqyPJqi6ZQnch7E4y5dEYApddttbBYNaL"
	defaultTree            = "5Y2u4S4BUCkRd5Ea6cKqf2KUYSpxf4sJ3aHDthwhgBBf"

	// metadata for minted assets
	defaultMetadataName      = "My NFT"
	defaultMetadataSymbol    = "NFT"
	defaultMetadataURI       = "https://example.com/nft/metadata.json"
	defaultSellerBasisPoints = 500
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the ledger database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LedgerType - record store settings
type LedgerType struct {
	Program               string      `gluamapper:"program" json:"program"`
	Tag                   string      `gluamapper:"tag" json:"tag"`
	DefaultCollectionSize int         `gluamapper:"default_collection_size" json:"default_collection_size"`
	MaximumCollectionSize int         `gluamapper:"maximum_collection_size" json:"maximum_collection_size"`
	Rent                  record.Rent `gluamapper:"rent" json:"rent"`
	AllowFunding          bool        `gluamapper:"allow_funding" json:"allow_funding"`
}

// IssuanceType - asset issuance settings
type IssuanceType struct {
	Program   string          `gluamapper:"program" json:"program"`
	Tree      string          `gluamapper:"tree" json:"tree"`
	TreeDepth int             `gluamapper:"tree_depth" json:"tree_depth"`
	Metadata  issuance.Policy `gluamapper:"metadata" json:"metadata"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string                     `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                     `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType               `gluamapper:"database" json:"database"`
	Ledger        LedgerType                 `gluamapper:"ledger" json:"ledger"`
	Issuance      IssuanceType               `gluamapper:"issuance" json:"issuance"`
	ClientRPC     listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Logging       logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},

		Ledger: LedgerType{
			Program:               defaultRecordProgram,
			Tag:                   purchases.DefaultRecordTag,
			DefaultCollectionSize: purchases.DefaultCollectionSize,
			MaximumCollectionSize: purchases.DefaultMaximumCollectionSize,
			Rent:                  record.DefaultRent(),
			AllowFunding:          false,
		},

		Issuance: IssuanceType{
			Program:   defaultIssuanceProgram,
			Tree:      defaultTree,
			TreeDepth: purchases.DefaultTreeDepth,
			Metadata: issuance.Policy{
				Name:                 defaultMetadataName,
				Symbol:               defaultMetadataSymbol,
				URI:                  defaultMetadataURI,
				SellerFeeBasisPoints: defaultSellerBasisPoints,
			},
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = ensureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// validate the ledger settings early
	if _, err := options.ledgerConfiguration(); nil != err {
		return nil, err
	}

	return options, nil
}

// ledgerConfiguration - decode the settings used by the ledger
func (c *Configuration) ledgerConfiguration() (*purchases.Configuration, error) {
	recordProgram, err := account.FromBase58(c.Ledger.Program)
	if nil != err {
		return nil, fmt.Errorf("ledger program: %q error: %s", c.Ledger.Program, err)
	}
	issuanceProgram, err := account.FromBase58(c.Issuance.Program)
	if nil != err {
		return nil, fmt.Errorf("issuance program: %q error: %s", c.Issuance.Program, err)
	}
	tree, err := account.FromBase58(c.Issuance.Tree)
	if nil != err {
		return nil, fmt.Errorf("issuance tree: %q error: %s", c.Issuance.Tree, err)
	}
	if "" == c.Ledger.Tag {
		return nil, fmt.Errorf("ledger tag is empty")
	}
	if len(c.Ledger.Tag) > derivation.MaximumSeedLength {
		return nil, fmt.Errorf("ledger tag: %q exceeds %d bytes", c.Ledger.Tag, derivation.MaximumSeedLength)
	}

	// the creator is filled in per owner at mint time
	err = c.Issuance.Metadata.Metadata(recordProgram, nil).Validate()
	if nil != err {
		return nil, fmt.Errorf("issuance metadata: %+v error: %s", c.Issuance.Metadata, err)
	}

	return &purchases.Configuration{
		RecordProgram:         recordProgram,
		RecordTag:             []byte(c.Ledger.Tag),
		IssuanceProgram:       issuanceProgram,
		Tree:                  tree,
		TreeDepth:             c.Issuance.TreeDepth,
		DefaultCollectionSize: c.Ledger.DefaultCollectionSize,
		MaximumCollectionSize: c.Ledger.MaximumCollectionSize,
		Rent:                  c.Ledger.Rent,
		Policy:                c.Issuance.Metadata,
		AllowFunding:          c.Ledger.AllowFunding,
	}, nil
}

// recordAddress - the storage address for an owner under these settings
func (c *Configuration) recordAddress(owner account.Account) (account.Account, error) {
	ledger, err := c.ledgerConfiguration()
	if nil != err {
		return account.Account{}, err
	}
	address, _ := derivation.Derive(ledger.RecordProgram, ledger.RecordTag, owner)
	return address, nil
}

// ensureAbsolute - if path is relative then prefix it with directory
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
