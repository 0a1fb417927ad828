// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nfthub/genesis"
	"github.com/vechain/nfthub/runtime"
)

func newTestContext(t *testing.T, args ...string) *cli.Context {
	app := newApp()
	set := flag.NewFlagSet("hubd", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func TestSelectGenesis(t *testing.T) {
	gen, err := selectGenesis(newTestContext(t))
	require.NoError(t, err)
	assert.Equal(t, "nfthub-devnet", gen.ChainID)

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chain_id: custom
height: 7
launch_time: 100
staking:
  validators: [val]
  unbonding_seconds: 10
`), 0600))
	gen, err = selectGenesis(newTestContext(t, "--genesis", path))
	require.NoError(t, err)
	assert.Equal(t, "custom", gen.ChainID)
	assert.Nil(t, gen.Hub)

	_, err = selectGenesis(newTestContext(t, "--genesis", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestHubAddress(t *testing.T) {
	dev := genesis.NewDevnet()
	assert.Equal(t, runtime.ContractAddress(runtime.CodeHub, 1), hubAddress(newTestContext(t), dev))
	assert.Equal(t, "nfthub1abc", hubAddress(newTestContext(t, "--hub", "nfthub1abc"), dev))
	assert.Equal(t, "", hubAddress(newTestContext(t), &genesis.Genesis{}))
}

func TestOpenDB(t *testing.T) {
	gen := genesis.NewDevnet()

	db, dir, err := openDB(newTestContext(t), gen)
	require.NoError(t, err)
	assert.Equal(t, "Memory", dir)
	require.NoError(t, db.Close())

	dataDir := t.TempDir()
	db, dir, err = openDB(newTestContext(t, "--persist", "--data-dir", dataDir), gen)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "instance-nfthub-devnet"), dir)
	require.NoError(t, db.Close())
}

func TestNormalizeCacheSize(t *testing.T) {
	assert.GreaterOrEqual(t, normalizeCacheSize(1), 1)
	assert.LessOrEqual(t, normalizeCacheSize(1), 128)
}

func TestProduceBlocks(t *testing.T) {
	db, _, err := openDB(newTestContext(t), genesis.NewDevnet())
	require.NoError(t, err)
	defer db.Close()

	rt, err := runtime.New(db, genesis.NewDevnet())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		produceBlocks(ctx, rt, 10*time.Millisecond)
	}()

	assert.Eventually(t, func() bool {
		head, err := rt.Head()
		return err == nil && head.Height >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
