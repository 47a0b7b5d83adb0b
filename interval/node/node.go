/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"errors"
	"os"

	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/hyperledger-labs/zk-interval/interval/services/cache"
	"github.com/hyperledger-labs/zk-interval/interval/services/config"
	"github.com/hyperledger-labs/zk-interval/interval/services/logging"
	"github.com/hyperledger-labs/zk-interval/interval/services/metrics"
	"github.com/hyperledger-labs/zk-interval/interval/services/server"
	"github.com/hyperledger-labs/zk-interval/interval/services/storage"
	fmetrics "github.com/hyperledger/fabric-lib-go/common/metrics"
	errors2 "github.com/pkg/errors"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/grouper"
	"go.uber.org/dig"
)

// Node instantiates all dependencies of the verification service.
type Node struct {
	C *dig.Container // Allow for overwriting dependencies
}

func New(c *config.Configuration) (*Node, error) {
	if err := logging.Init(c.Logging); err != nil {
		return nil, err
	}
	container := dig.New()
	err := errors.Join(
		container.Provide(func() *config.Configuration { return c }),
		container.Provide(func() logging.Logger { return logging.MustGetLogger("node") }),
		container.Provide(func(c *config.Configuration) (fmetrics.Provider, error) {
			return metrics.NewProvider(c.Metrics.Provider)
		}),
		container.Provide(func(p fmetrics.Provider, c *config.Configuration) (*metrics.Metrics, metrics.Reporter) {
			m := metrics.NewMetrics(p, c.Metrics.Namespace)
			return m, metrics.NewReporter(m)
		}),
		container.Provide(newCache),
		container.Provide(newStore),
		container.Provide(func(c *config.Configuration, store server.Store, verifications cache.Cache[*rangeproof.Result], m *metrics.Metrics) *server.Server {
			return server.New(server.Config{
				Address:         c.Server.Address,
				ReadTimeout:     c.Server.ReadTimeout,
				WriteTimeout:    c.Server.WriteTimeout,
				ShutdownTimeout: c.Server.ShutdownTimeout,
			}, store, verifications, m)
		}),
	)
	if err != nil {
		return nil, errors2.Wrap(err, "failed to assemble node")
	}
	return &Node{C: container}, nil
}

// Runner returns the ordered group of processes making up the node.
func (n *Node) Runner() (ifrit.Runner, error) {
	var members grouper.Members
	err := n.C.Invoke(func(s *server.Server, logger logging.Logger) {
		logger.Infof("starting verification service")
		members = append(members, grouper.Member{Name: "server", Runner: s})
	})
	if err != nil {
		return nil, errors2.Wrap(err, "failed to build the service")
	}
	return grouper.NewOrdered(os.Interrupt, members), nil
}

// Server returns the HTTP server once built.
func (n *Node) Server() (*server.Server, error) {
	var s *server.Server
	err := n.C.Invoke(func(srv *server.Server) { s = srv })
	return s, err
}

// Close releases the proof store, if any.
func (n *Node) Close() error {
	return n.C.Invoke(func(store server.Store, r metrics.Reporter, logger logging.Logger) error {
		logger.Infof("shutting down\n%s", r.Summary())
		if s, ok := store.(*storage.Store); ok {
			return s.Close()
		}
		return nil
	})
}

func newCache(c *config.Configuration) (cache.Cache[*rangeproof.Result], error) {
	if !c.Cache.Enabled {
		return cache.NewNoCache[*rangeproof.Result](), nil
	}
	return cache.NewRistrettoCache[*rangeproof.Result](cache.Config{
		NumCounters: c.Cache.NumCounters,
		MaxCost:     c.Cache.MaxCost,
		BufferItems: c.Cache.BufferItems,
	})
}

func newStore(c *config.Configuration) (server.Store, error) {
	if !c.Storage.Enabled {
		return nil, nil
	}
	s, err := storage.Open(storage.Opts{
		Driver:       c.Storage.Driver,
		DataSource:   c.Storage.DataSource,
		TablePrefix:  c.Storage.TablePrefix,
		MaxOpenConns: c.Storage.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
