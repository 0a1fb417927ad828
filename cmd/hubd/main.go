// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nfthub/api"
	"github.com/vechain/nfthub/co"
	"github.com/vechain/nfthub/log"
	"github.com/vechain/nfthub/metrics"
	"github.com/vechain/nfthub/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "hubd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Version:   fullVersion(),
		Name:      "hubd",
		Usage:     "Node hosting the Alliance NFT delegation hub",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			hubAddrFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiRateLimitFlag,
			apiRateBurstFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			enableAPILogsFlag,
			pprofFlag,
			soloFlag,
			blockIntervalFlag,
			verbosityFlag,
			jsonLogsFlag,
			logFileFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			disableNTPFlag,
		},
		Action: defaultAction,
	}
}

func defaultAction(ctx *cli.Context) (err error) {
	defer func() { logger.Info("exited") }()

	closeLog, err := initLogger(ctx)
	if err != nil {
		return err
	}
	defer closeLog()

	gen, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	db, instanceDir, err := openDB(ctx, gen)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("closing main database...")
		if cerr := db.Close(); cerr != nil {
			err = multierror.Append(err, cerr)
		}
	}()

	rt, err := runtime.New(db, gen)
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	hubAddr := hubAddress(ctx, gen)
	enableAPILogs := &atomic.Bool{}
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(rt, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		HubAddress:           hubAddr,
		PprofOn:              ctx.Bool(pprofFlag.Name),
		SoloMode:             ctx.Bool(soloFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		RateLimit:            ctx.Float64(apiRateLimitFlag.Name),
		RateBurst:            ctx.Int(apiRateBurstFlag.Name),
	})

	apiURL, stopAPI, err := startAPIServer(ctx, handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metricsURL, stopMetrics, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stopMetrics() }()
		logger.Info("metrics server started", "url", metricsURL)
	}

	head, err := rt.Head()
	if err != nil {
		return err
	}
	printStartupMessage(gen, head, instanceDir, apiURL, hubAddr)

	exitCtx := handleExitSignal()

	var goes co.Goes
	if !ctx.Bool(disableNTPFlag.Name) {
		goes.Run(exitCtx, checkClockOffset)
	}
	if interval := ctx.Uint64(blockIntervalFlag.Name); interval > 0 {
		goes.Run(exitCtx, func(ctx context.Context) {
			produceBlocks(ctx, rt, time.Duration(interval)*time.Second)
		})
	}

	<-exitCtx.Done()
	goes.Wait()
	return nil
}

// produceBlocks advances the chain by one block per interval.
func produceBlocks(ctx context.Context, rt *runtime.Runtime, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			head, err := rt.Advance(1, uint64(interval/time.Second))
			if err != nil {
				logger.Warn("failed to advance chain", "err", err)
				continue
			}
			logger.Debug("block produced", "height", head.Height, "time", head.Time)
		}
	}
}
