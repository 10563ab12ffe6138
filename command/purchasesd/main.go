// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/counter"
	"github.com/bitmark-inc/purchasesd/purchases"
	"github.com/bitmark-inc/purchasesd/rpc/certificate"
	"github.com/bitmark-inc/purchasesd/rpc/listeners"
	"github.com/bitmark-inc/purchasesd/rpc/server"
	"github.com/bitmark-inc/purchasesd/storage"
)

const rpcName = "client_rpc"

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	ledgerConfiguration, err := theConfiguration.ledgerConfiguration()
	if nil != err {
		log.Criticalf("ledger configuration error: %s", err)
		exitwithstatus.Message("ledger configuration error: %s", err)
	}

	log.Info("initialise issuance tree")
	tree, err := purchases.NewTree(ledgerConfiguration)
	if nil != err {
		log.Criticalf("issuance tree initialise error: %s", err)
		exitwithstatus.Message("issuance tree initialise error: %s", err)
	}
	log.Infof("issuance tree: %s  capacity: %d  minted: %d", tree.Address(), tree.Capacity(), tree.Size())

	log.Info("initialise ledger")
	ledger, err := purchases.New(ledgerConfiguration, tree)
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}

	// start up the rpc listeners
	certificates, err := certificate.NewReloader(logger.New("certificate"), rpcName, theConfiguration.ClientRPC.Certificate, theConfiguration.ClientRPC.PrivateKey)
	if nil != err {
		log.Criticalf("rpc certificate error: %s", err)
		exitwithstatus.Message("rpc certificate error: %s", err)
	}
	if err := certificates.Start(); nil != err {
		log.Criticalf("rpc certificate watch error: %s", err)
		exitwithstatus.Message("rpc certificate watch error: %s", err)
	}
	defer certificates.Stop()

	connections := counter.Counter(0)
	listener, err := listeners.NewRPC(
		&theConfiguration.ClientRPC,
		logger.New(rpcName),
		&connections,
		server.Create(logger.New("rpc-server"), ledger),
		certificates.TLSConfig(),
		certificates.Fingerprint(),
	)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}

	if err := listener.Serve(); nil != err {
		log.Criticalf("rpc serve error: %s", err)
		exitwithstatus.Message("rpc serve error: %s", err)
	}
	defer listener.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
