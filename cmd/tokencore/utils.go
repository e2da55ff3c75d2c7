// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/gorilla/websocket"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/genesis"
	"github.com/vechain/tokencore/log"
	txruntime "github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/token"
)

const (
	ntpServer      = "pool.ntp.org"
	ntpInterval    = time.Hour
	maxClockOffset = 5 * time.Second
)

func initLogger(ctx *cli.Context) error {
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < 0 || verbosity > 5 {
		return errors.Errorf("invalid verbosity %d, expected 0-5", verbosity)
	}
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(verbosity))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	switch path := ctx.String(genesisFlag.Name); path {
	case "", "devnet":
		return genesis.NewDevnet(), nil
	default:
		gen, err := genesis.LoadCustomGenesis(path)
		if err != nil {
			return nil, err
		}
		return genesis.NewCustomNet(gen)
	}
}

// parseCall builds the clause of the call command.
func parseCall(ctx *cli.Context, gene *genesis.Genesis) (token.Address, *txruntime.Clause, error) {
	caller := gene.Owner()
	if s := ctx.String(callerFlag.Name); s != "" {
		addr, err := token.ParseAddress(s)
		if err != nil {
			return token.Address{}, nil, errors.WithMessage(err, callerFlag.Name)
		}
		caller = *addr
	}

	contract := ctx.String(contractFlag.Name)
	to, ok := builtin.ContractByName(contract)
	if !ok {
		addr, err := token.ParseAddress(contract)
		if err != nil {
			return token.Address{}, nil, errors.Errorf("%s: unknown engine %q", contractFlag.Name, contract)
		}
		to = *addr
	}

	method := ctx.String(methodFlag.Name)
	if method == "" {
		return token.Address{}, nil, errors.Errorf("%s is required", methodFlag.Name)
	}
	args := json.RawMessage(ctx.String(argsFlag.Name))
	if !json.Valid(args) {
		return token.Address{}, nil, errors.Errorf("%s: invalid JSON", argsFlag.Name)
	}
	return caller, &txruntime.Clause{To: to, Method: method, Args: args}, nil
}

func withTimeout(h http.Handler, timeout time.Duration) http.Handler {
	if timeout == 0 {
		return h
	}
	timed := http.TimeoutHandler(h, timeout, "request timeout")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// subscriptions are long lived and need the raw connection
		if websocket.IsWebSocketUpgrade(r) {
			h.ServeHTTP(w, r)
			return
		}
		timed.ServeHTTP(w, r)
	})
}

func newAtomicBool(v bool) *atomic.Bool {
	b := new(atomic.Bool)
	b.Store(v)
	return b
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// checkClockOffset warns when the local clock drifts from NTP time, once per ntpInterval.
func checkClockOffset(ctx context.Context) {
	ticker := time.NewTicker(ntpInterval)
	defer ticker.Stop()
	for {
		resp, err := ntp.Query(ntpServer)
		if err != nil {
			logger.Debug("failed to access NTP", "err", err)
		} else if resp.ClockOffset > maxClockOffset || resp.ClockOffset < -maxClockOffset {
			logger.Warn("clock offset detected", "offset", resp.ClockOffset)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.vechain.tokencore")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.tokencore")
		} else {
			return filepath.Join(home, ".org.vechain.tokencore")
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
