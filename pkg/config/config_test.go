// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultMatchesMempoolDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 15000, cfg.Mempool.StorageLimit)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadDecodesTomlOverOfDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "node.toml", `
[logger]
level = "debug"
output = "stdout"

[mempool]
storageLimit = 500
processIntervalSeconds = 5
expiryIntervalSeconds = 60
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 500, cfg.Mempool.StorageLimit)
}

func TestLoadAppliesPropertiesOverridesOnTopOfToml(t *testing.T) {
	dir := t.TempDir()
	tomlPath := writeFile(t, dir, "node.toml", `
[mempool]
storageLimit = 500
processIntervalSeconds = 5
expiryIntervalSeconds = 60
`)
	propsPath := writeFile(t, dir, "override.properties", "mempool.storageLimit=750\n")

	cfg, err := Load(tomlPath, propsPath)
	require.NoError(t, err)
	assert.Equal(t, 750, cfg.Mempool.StorageLimit)
}

func TestMempoolConfigConvertsSecondsToDurations(t *testing.T) {
	cfg := Default()
	cfg.Mempool.ProcessIntervalSecs = 7
	cfg.Mempool.ExpiryIntervalSecs = 42

	mc := cfg.MempoolConfig()
	assert.Equal(t, int64(7), int64(mc.ProcessInterval.Seconds()))
	assert.Equal(t, int64(42), int64(mc.ExpiryInterval.Seconds()))
}
