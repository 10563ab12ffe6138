// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

// Reloader - serve the most recently loaded certificate
//
// the PEM files are watched and read again whenever either is
// rewritten; a pair that fails to load leaves the previous one active
type Reloader struct {
	sync.RWMutex
	log                 *logger.L
	name                string
	certificateFileName string
	keyFileName         string
	certificate         *tls.Certificate
	fingerprint         [32]byte
	watcher             *fsnotify.Watcher
	done                chan struct{}
}

// NewReloader - load the initial pair, failing if it cannot be read
func NewReloader(log *logger.L, name string, certificateFileName string, keyFileName string) (*Reloader, error) {
	r := &Reloader{
		log:                 log,
		name:                name,
		certificateFileName: filepath.Clean(certificateFileName),
		keyFileName:         filepath.Clean(keyFileName),
	}
	if err := r.reload(); nil != err {
		return nil, err
	}
	return r, nil
}

// TLSConfig - a configuration that always presents the current certificate
func (r *Reloader) TLSConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: r.GetCertificate,
	}
}

// GetCertificate - callback for tls.Config
func (r *Reloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	r.RLock()
	defer r.RUnlock()
	return r.certificate, nil
}

// Fingerprint - SHA3-256 of the current certificate
func (r *Reloader) Fingerprint() [32]byte {
	r.RLock()
	defer r.RUnlock()
	return r.fingerprint
}

// Start - begin watching both files
//
// directories are watched rather than the files so that replacing a
// file by rename is also seen
func (r *Reloader) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		r.log.Errorf("%s: new watcher error: %s", r.name, err)
		return err
	}

	directories := map[string]struct{}{
		filepath.Dir(r.certificateFileName): {},
		filepath.Dir(r.keyFileName):         {},
	}
	for d := range directories {
		if err := watcher.Add(d); nil != err {
			r.log.Errorf("%s: watch: %q error: %s", r.name, d, err)
			watcher.Close()
			return err
		}
	}

	r.Lock()
	r.watcher = watcher
	r.done = make(chan struct{})
	r.Unlock()

	go r.run(watcher, r.done)

	return nil
}

// Stop - end watching; the current certificate remains in use
func (r *Reloader) Stop() {
	r.Lock()
	defer r.Unlock()

	if nil == r.watcher {
		return
	}
	close(r.done)
	r.watcher.Close()
	r.watcher = nil
}

func (r *Reloader) run(watcher *fsnotify.Watcher, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !r.isWatched(event.Name) || !isUpdate(event) {
				continue
			}
			r.log.Infof("%s: file event: %v", r.name, event)
			if err := r.reload(); nil != err {
				r.log.Warnf("%s: keeping previous certificate", r.name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.log.Errorf("%s: watcher error: %s", r.name, err)
		}
	}
}

func (r *Reloader) isWatched(name string) bool {
	name = filepath.Clean(name)
	return name == r.certificateFileName || name == r.keyFileName
}

func isUpdate(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}

func (r *Reloader) reload() error {
	tlsConfiguration, fin, err := Read(r.log, r.name, r.certificateFileName, r.keyFileName)
	if nil != err {
		return err
	}

	r.Lock()
	r.certificate = &tlsConfiguration.Certificates[0]
	r.fingerprint = fin
	r.Unlock()

	r.log.Infof("%s: loaded certificate SHA3-256 fingerprint: %x", r.name, fin)
	return nil
}
