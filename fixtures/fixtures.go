// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// SetupTestLogger - start a quiet file logger in ./testing
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove ./testing
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// SetupTestDatabase - logger plus a fresh read/write ledger database
func SetupTestDatabase() error {
	SetupTestLogger()
	return storage.Initialise(filepath.Join(dir, "ledger.leveldb"), storage.ReadWrite)
}

// TeardownTestDatabase - close the ledger and remove all test files
func TeardownTestDatabase() {
	storage.Finalise()
	TeardownTestLogger()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
