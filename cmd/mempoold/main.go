// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Command mempoold is a demo host process for the transaction mempool: it
// loads configuration, wires a goleveldb-backed account store and the
// in-memory jobqueue/eventbus collaborators, starts the mempool, and waits
// for a termination signal. It is not the node; the RPC/peer surfaces that
// would call into the mempool are out of scope here.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	lg "github.com/sirupsen/logrus"

	"duskchain/mempool/pkg/chainstate"
	"duskchain/mempool/pkg/config"
	"duskchain/mempool/pkg/core/mempool"
	"duskchain/mempool/pkg/crypto/ed"
	"duskchain/mempool/pkg/util/logging"
	"duskchain/mempool/pkg/util/nativeutils/eventbus"
	"duskchain/mempool/pkg/util/nativeutils/jobqueue"
)

var (
	tomlPath       = flag.String("config", "", "path to a TOML config file")
	propertiesPath = flag.String("overrides", "", "path to a .properties override file")
)

func main() {
	defer handlePanic()
	flag.Parse()

	cfg, err := config.Load(*tomlPath, *propertiesPath)
	if err != nil {
		lg.Fatalf("mempoold: load config: %v", err)
	}

	if err := logging.Configure(cfg.Logger.Level, cfg.Logger.Output); err != nil {
		lg.Fatalf("mempoold: configure logging: %v", err)
	}
	log := lg.WithField("prefix", "mempoold")

	store, err := chainstate.Open(cfg.Chain.StorePath)
	if err != nil {
		log.Fatalf("open chainstate: %v", err)
	}
	defer store.Close()

	bus := eventbus.New()
	sched := jobqueue.New()
	defer sched.Stop()

	pool := mempool.New(cfg.MempoolConfig(), store, chainstate.NewTxLogic(store), ed.Deriver{}, bus, sched)
	pool.Run()
	defer pool.Quit()

	log.WithField("storageLimit", cfg.Mempool.StorageLimit).Info("mempool started")

	waitForSignal()
	log.Info("mempool shutting down")
}

func waitForSignal() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
}

func handlePanic() {
	if r := recover(); r != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("%+v", r), "mempoold panic")
		os.Exit(1)
	}
}
