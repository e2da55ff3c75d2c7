// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokencore/genesis"
	"github.com/vechain/tokencore/logdb"
	"github.com/vechain/tokencore/lvldb"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/token"
)

type stores struct {
	dir    string
	mainDB *lvldb.LevelDB
	logDB  *logdb.LogDB
}

func (s *stores) Close() {
	logger.Info("closing log database...")
	if err := s.logDB.Close(); err != nil {
		logger.Warn("failed to close log database", "err", err)
	}
	logger.Info("closing main database...")
	if err := s.mainDB.Close(); err != nil {
		logger.Warn("failed to close main database", "err", err)
	}
}

func openStores(ctx *cli.Context, gene *genesis.Genesis) (*stores, error) {
	if ctx.Bool(inMemoryFlag.Name) {
		mainDB, err := lvldb.NewMem()
		if err != nil {
			return nil, errors.WithMessage(err, "open main database")
		}
		logDB, err := logdb.NewMem()
		if err != nil {
			mainDB.Close()
			return nil, errors.WithMessage(err, "open log database")
		}
		return &stores{"Memory", mainDB, logDB}, nil
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, gene.Name())
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}

	mainDB, err := lvldb.New(filepath.Join(instanceDir, "main.db"), lvldb.Options{
		CacheSize:              ctx.Int(cacheFlag.Name),
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "open main database")
	}
	logDB, err := logdb.New(filepath.Join(instanceDir, "events.db"))
	if err != nil {
		mainDB.Close()
		return nil, errors.WithMessage(err, "open log database")
	}
	return &stores{instanceDir, mainDB, logDB}, nil
}

// bootstrap writes the genesis state unless the store already holds one.
func bootstrap(rt *runtime.Runtime, gene *genesis.Genesis) error {
	ok, err := rt.Bootstrapped()
	if err != nil {
		return err
	}
	if ok {
		now, err := rt.Now()
		if err != nil {
			return err
		}
		logger.Info("resuming existing state", "network", gene.Name(), "lastTime", now)
		return nil
	}
	if err := gene.Build(rt); err != nil {
		return errors.WithMessage(err, "build genesis")
	}
	logger.Info("genesis state written", "network", gene.Name(), "owner", gene.Owner())
	return nil
}

func startServer(ctx context.Context, group *errgroup.Group, name, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "%s server", name)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func printStartupMessage(gene *genesis.Genesis, instanceDir, apiURL, metricsURL string) {
	if metricsURL == "" {
		metricsURL = "disabled"
	}
	info := fmt.Sprintf(`Starting tokencore %v
    Network      [ %v ]
    Owner        [ %v ]
    Launch time  [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		fullVersion(),
		gene.Name(),
		gene.Owner(),
		time.Unix(int64(gene.LaunchTime()), 0).UTC(),
		instanceDir,
		apiURL,
		metricsURL)

	if gene.Name() == "devnet" {
		info += `┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
		for _, a := range genesis.DevAccounts() {
			info += fmt.Sprintf(`
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`, a.Address, token.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)))
		}
		info += `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘
`
	}
	fmt.Print(info)
}
