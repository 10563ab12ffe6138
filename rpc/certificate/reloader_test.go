// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/fixtures"
)

func makePair(t *testing.T, dir string) (string, string) {
	certFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	os.Remove(certFile)
	os.Remove(keyFile)
	err := MakeSelfSigned("test", certFile, keyFile, false, nil)
	assert.Nil(t, err, "make certificate")
	return certFile, keyFile
}

func TestReloaderReload(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "reloader")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certFile, keyFile := makePair(t, dir)

	r, err := NewReloader(logger.New(fixtures.LogCategory), "test", certFile, keyFile)
	assert.Nil(t, err, "new reloader")

	first := r.Fingerprint()
	c, err := r.TLSConfig().GetCertificate(nil)
	assert.Nil(t, err, "get certificate")
	assert.Equal(t, first, fingerprint(c.Certificate[0]), "served certificate")

	makePair(t, dir)
	assert.Nil(t, r.reload(), "reload")
	assert.NotEqual(t, first, r.Fingerprint(), "new certificate")

	// a broken pair keeps the previous certificate
	second := r.Fingerprint()
	assert.Nil(t, ioutil.WriteFile(keyFile, []byte("broken"), 0600), "break key")
	assert.NotNil(t, r.reload(), "reload broken")
	assert.Equal(t, second, r.Fingerprint(), "previous certificate kept")

	assert.True(t, r.isWatched(filepath.Join(dir, ".", "rpc.crt")), "certificate watched")
	assert.False(t, r.isWatched(filepath.Join(dir, "other")), "other file ignored")
}

func TestReloaderWatch(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "reloader")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certFile, keyFile := makePair(t, dir)

	r, err := NewReloader(logger.New(fixtures.LogCategory), "test", certFile, keyFile)
	assert.Nil(t, err, "new reloader")
	assert.Nil(t, r.Start(), "start")
	defer r.Stop()

	first := r.Fingerprint()
	makePair(t, dir)

	changed := false
	for i := 0; i < 50 && !changed; i += 1 {
		time.Sleep(100 * time.Millisecond)
		changed = first != r.Fingerprint()
	}
	assert.True(t, changed, "watcher reloaded the certificate")

	r.Stop()
	r.Stop()
}

func TestReloaderMissingFiles(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := NewReloader(logger.New(fixtures.LogCategory), "test", "/nonexistent/rpc.crt", "/nonexistent/rpc.key")
	assert.NotNil(t, err, "missing files")
}
