// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package config loads the mempool daemon's configuration: a TOML base
// file, optionally overridden by a .properties file (the same two formats
// the teacher's go.mod carries BurntSushi/toml and magiconair/properties
// for). There is no environment-variable or flag layer here; cmd/mempoold
// is a demo binary, not the full node.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"

	"duskchain/mempool/pkg/core/mempool"
)

// Logger holds the logging section of the config file, consumed by
// pkg/util/logging.
type Logger struct {
	Level  string `toml:"level"`
	Output string `toml:"output"` // "stdout" or a file path
}

// Chain holds the demo chainstate section.
type Chain struct {
	StorePath string `toml:"storePath"`
}

// Mempool holds the mempool section; intervals are whole seconds, which
// MempoolConfig converts into mempool.Config's durations.
type Mempool struct {
	StorageLimit        int `toml:"storageLimit"`
	ProcessIntervalSecs int `toml:"processIntervalSeconds"`
	ExpiryIntervalSecs  int `toml:"expiryIntervalSeconds"`
}

// Config is the top-level configuration document.
type Config struct {
	Logger  Logger  `toml:"logger"`
	Chain   Chain   `toml:"chain"`
	Mempool Mempool `toml:"mempool"`
}

// Default returns a Config matching mempool.DefaultConfig, with stdout
// logging and an in-workspace chainstate path.
func Default() Config {
	def := mempool.DefaultConfig()
	return Config{
		Logger: Logger{Level: "info", Output: "stdout"},
		Chain:  Chain{StorePath: "./chainstate.db"},
		Mempool: Mempool{
			StorageLimit:        def.StorageLimit,
			ProcessIntervalSecs: int(def.ProcessInterval / time.Second),
			ExpiryIntervalSecs:  int(def.ExpiryInterval / time.Second),
		},
	}
}

// Load reads a TOML config file from tomlPath, then applies overrides from
// a .properties file at propertiesPath if it is non-empty (the same
// two-file override pattern the node's own install docs describe for
// environment-specific tuning). Either path may be empty, in which case
// that layer is skipped.
func Load(tomlPath, propertiesPath string) (Config, error) {
	cfg := Default()

	if tomlPath != "" {
		if _, err := toml.DecodeFile(tomlPath, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: decode toml file %q", tomlPath)
		}
	}

	if propertiesPath != "" {
		props, err := properties.LoadFile(propertiesPath, properties.UTF8)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: load properties file %q", propertiesPath)
		}
		applyProperties(&cfg, props)
	}

	return cfg, nil
}

func applyProperties(cfg *Config, props *properties.Properties) {
	if v, ok := props.Get("logger.level"); ok {
		cfg.Logger.Level = v
	}
	if v, ok := props.Get("logger.output"); ok {
		cfg.Logger.Output = v
	}
	cfg.Mempool.StorageLimit = props.GetInt("mempool.storageLimit", cfg.Mempool.StorageLimit)
	cfg.Mempool.ProcessIntervalSecs = props.GetInt("mempool.processIntervalSeconds", cfg.Mempool.ProcessIntervalSecs)
	cfg.Mempool.ExpiryIntervalSecs = props.GetInt("mempool.expiryIntervalSeconds", cfg.Mempool.ExpiryIntervalSecs)
	if v, ok := props.Get("chain.storePath"); ok {
		cfg.Chain.StorePath = v
	}
}

// MempoolConfig converts the configuration's Mempool section into
// mempool.Config.
func (c Config) MempoolConfig() mempool.Config {
	return mempool.Config{
		StorageLimit:    c.Mempool.StorageLimit,
		ProcessInterval: time.Duration(c.Mempool.ProcessIntervalSecs) * time.Second,
		ExpiryInterval:  time.Duration(c.Mempool.ExpiryIntervalSecs) * time.Second,
	}
}
