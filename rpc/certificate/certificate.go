// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/fault"
)

// Get - load a PEM certificate and key and return the TLS setup
// with the certificate fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Read - Get from a pair of PEM files
func Read(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	certificate, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s certificate: %q error: %s", name, certificateFileName, err)
		return nil, [32]byte{}, err
	}
	key, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s private key: %q error: %s", name, keyFileName, err)
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// MakeSelfSigned - create a self-signed certificate and key pair
//
// existing files are never overwritten
func MakeSelfSigned(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {
	if fileExists(certificateFileName) {
		return fault.ErrCertificateFileExists
	}

	if fileExists(privateKeyFileName) {
		return fault.ErrKeyFileExists
	}

	org := "purchasesd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// fingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in purchasesd-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
