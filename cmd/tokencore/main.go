// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokencore/api"
	"github.com/vechain/tokencore/api/subscriptions"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/metrics"
	"github.com/vechain/tokencore/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	storeFlags := []cli.Flag{
		genesisFlag,
		dataDirFlag,
		inMemoryFlag,
		cacheFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app := cli.App{
		Version:   fullVersion(),
		Name:      "tokencore",
		Usage:     "Token ledger with staking, voting, burning and distribution engines",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: append(storeFlags,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			apiPageLimitFlag,
			apiSubscriptionsBacklogFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			disableNTPCheckFlag,
		),
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "write the genesis state into the data directory and exit",
				Flags:  storeFlags,
				Action: initAction,
			},
			{
				Name:  "call",
				Usage: "execute one call against the data directory and print its output",
				Flags: append(storeFlags,
					callerFlag,
					contractFlag,
					methodFlag,
					argsFlag,
				),
				Action: callAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	if err := initLogger(ctx); err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.Enable()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	s, err := openStores(ctx, gene)
	if err != nil {
		return err
	}
	defer s.Close()

	hub := subscriptions.NewHub(int(ctx.Uint64(apiSubscriptionsBacklogFlag.Name)))
	defer hub.Close()

	rt := runtime.New(s.mainDB, runtime.SystemClock, runtime.MultiSink(s.logDB, hub))
	if err := bootstrap(rt, gene); err != nil {
		return err
	}

	enableAPILogs := newAtomicBool(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(rt, s.logDB, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
		PageLimit:            ctx.Uint64(apiPageLimitFlag.Name),
		Subscriptions:        hub,
	})

	group, groupCtx := errgroup.WithContext(exitSignal)
	apiURL, err := startServer(groupCtx, group, "API", ctx.String(apiAddrFlag.Name),
		withTimeout(handler, time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond))
	if err != nil {
		return err
	}
	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsURL, err = startServer(groupCtx, group, "metrics", ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler()); err != nil {
			return err
		}
	}
	if !ctx.Bool(disableNTPCheckFlag.Name) {
		group.Go(func() error {
			checkClockOffset(groupCtx)
			return nil
		})
	}

	printStartupMessage(gene, s.dir, apiURL, metricsURL)
	return group.Wait()
}

func initAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	s, err := openStores(ctx, gene)
	if err != nil {
		return err
	}
	defer s.Close()

	return bootstrap(runtime.New(s.mainDB, runtime.SystemClock, s.logDB), gene)
}

func callAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	caller, clause, err := parseCall(ctx, gene)
	if err != nil {
		return err
	}
	s, err := openStores(ctx, gene)
	if err != nil {
		return err
	}
	defer s.Close()

	rt := runtime.New(s.mainDB, runtime.SystemClock, s.logDB)
	if err := bootstrap(rt, gene); err != nil {
		return err
	}
	output, err := rt.Execute(caller, clause)
	if err != nil {
		return errors.WithMessage(err, "call")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
