// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nfthub/co"
	"github.com/vechain/nfthub/genesis"
	"github.com/vechain/nfthub/log"
	"github.com/vechain/nfthub/lvldb"
	"github.com/vechain/nfthub/metrics"
	"github.com/vechain/nfthub/runtime"
)

// maxClockOffset is the drift tolerated before warning.
const maxClockOffset = 5 * time.Second

func initLogger(ctx *cli.Context) (func(), error) {
	level := log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name)))
	lvl := new(slog.LevelVar)
	lvl.Set(level)

	var (
		out      io.Writer = os.Stderr
		useColor           = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		closer             = func() {}
	)
	if path := ctx.String(logFileFlag.Name); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, errors.Wrap(err, "create log dir")
		}
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     28,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, rotator)
		useColor = false
		closer = func() { _ = rotator.Close() }
	}

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(out, lvl)
	} else {
		handler = log.NewTerminalHandlerWithLevel(out, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return closer, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	gen, err := genesis.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load genesis file [%v]", path)
	}
	return gen, nil
}

func hubAddress(ctx *cli.Context, gen *genesis.Genesis) string {
	if addr := ctx.String(hubAddrFlag.Name); addr != "" {
		return addr
	}
	if gen.Hub != nil {
		return runtime.ContractAddress(runtime.CodeHub, 1)
	}
	return ""
}

func openDB(ctx *cli.Context, gen *genesis.Genesis) (*lvldb.LevelDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		if err != nil {
			return nil, "", errors.Wrap(err, "open memory database")
		}
		return db, "Memory", nil
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, "instance-"+gen.ChainID)
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return nil, "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}

	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 512,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, instanceDir, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func(), error) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = http.TimeoutHandler(handler, time.Duration(timeout)*time.Millisecond, `{"error":"request timeout"}`)
	}
	return serve(listener, handler)
}

func startMetricsServer(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}
	return serve(listener, metrics.HTTPHandler())
}

func serve(listener net.Listener, handler http.Handler) (string, func(), error) {
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "err", err)
		}
	})
	return "http://" + listener.Addr().String() + "/", func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Warn("server shutdown", "err", err)
		}
		goes.Wait()
	}, nil
}

// handleExitSignal returns a context cancelled on the first interrupt or term signal.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(exitSignalCh)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func checkClockOffset(ctx context.Context) {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if ctx.Err() != nil {
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		logger.Warn("clock offset detected", "offset", resp.ClockOffset)
	}
}

func printStartupMessage(gen *genesis.Genesis, head runtime.Head, instanceDir, apiURL, hubAddr string) {
	if hubAddr == "" {
		hubAddr = "not set"
	}
	fmt.Printf(`Starting %v
    Chain        [ %v ]
    Head         [ #%v @%v ]
    Validators   [ %v ]
    Hub          [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
`,
		"hubd/"+fullVersion(),
		gen.ChainID,
		head.Height, time.Unix(int64(head.Time), 0).UTC(),
		strings.Join(gen.Staking.Validators, ", "),
		hubAddr,
		instanceDir,
		apiURL)
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch goruntime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.nfthub")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.nfthub")
		default:
			return filepath.Join(home, ".org.vechain.nfthub")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
