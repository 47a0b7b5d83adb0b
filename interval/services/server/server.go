/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"math/big"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hyperledger-labs/zk-interval/interval/core/encoding/datum"
	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/hyperledger-labs/zk-interval/interval/services/cache"
	"github.com/hyperledger-labs/zk-interval/interval/services/logging"
	"github.com/hyperledger-labs/zk-interval/interval/services/metrics"
	"github.com/hyperledger-labs/zk-interval/interval/services/storage"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = logging.MustGetLogger()

// Store persists generated proofs.
type Store interface {
	Put(ctx context.Context, r *storage.Record) (string, error)
	Get(ctx context.Context, id string) (*storage.Record, error)
}

type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server exposes proof generation and verification over HTTP.
type Server struct {
	config  Config
	store   Store
	cache   cache.Cache[*rangeproof.Result]
	metrics *metrics.Metrics
	engine  *gin.Engine

	addr net.Addr
}

// New builds the routes. A nil store disables persistence and a nil cache disables caching.
func New(config Config, store Store, c cache.Cache[*rangeproof.Result], m *metrics.Metrics) *Server {
	if c == nil {
		c = cache.NewNoCache[*rangeproof.Result]()
	}
	s := &Server{config: config, store: store, cache: c, metrics: m}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.track)
	v1 := engine.Group("/v1")
	v1.POST("/proofs", s.prove)
	v1.POST("/proofs/verify", s.verify)
	v1.GET("/proofs/:id", s.get)
	v1.GET("/params", s.params)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine = engine
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listening address once the server is ready.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Run serves until a signal arrives. It implements ifrit.Runner.
func (s *Server) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on [%s]", s.config.Address)
	}
	s.addr = listener.Addr()
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	logger.Infof("serving on [%s]", s.addr)
	close(ready)

	select {
	case sig := <-signals:
		logger.Infof("received [%s], shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return errors.Wrap(err, "failed to shut down")
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server failed")
	}
}

func (s *Server) track(c *gin.Context) {
	s.metrics.IncrementRequests()
	defer s.metrics.DecrementRequests()
	c.Next()
}

func (s *Server) prove(c *gin.Context) {
	req := &ProveRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	value, lower, upper, err := parseBounds(req.Value, req.Lower, req.Upper)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	prover, err := rangeproof.NewProver(value, lower, upper)
	if err != nil {
		if rangeproof.IsDomainError(err) {
			s.metrics.GenerationFailures.Add(1)
			s.fail(c, http.StatusBadRequest, err)
			return
		}
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	proof, err := prover.Prove()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.metrics.ProofsGenerated.Add(1)

	verifier, err := rangeproof.NewVerifier(prover.Lower, prover.Upper)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	wire := proof.ToWire()
	resp := &ProveResponse{
		Lower: prover.Lower.String(),
		Upper: prover.Upper.String(),
		Proof: wire,
		Valid: verifier.Verify(proof),
	}
	if req.Datum {
		resp.Datum = datum.FromWire(wire, prover.Lower, prover.Upper)
	}

	if s.store != nil {
		raw, err := proof.Serialize()
		if err != nil {
			s.fail(c, http.StatusInternalServerError, err)
			return
		}
		resp.ID, err = s.store.Put(c.Request.Context(), &storage.Record{
			Lower: prover.Lower,
			Upper: prover.Upper,
			Proof: raw,
			Valid: resp.Valid,
		})
		if err != nil {
			s.fail(c, http.StatusInternalServerError, err)
			return
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) verify(c *gin.Context) {
	req := &VerifyRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	_, lower, upper, err := parseBounds("", req.Lower, req.Upper)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	verifier, err := rangeproof.NewVerifier(lower, upper)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	proof, err := rangeproof.FromWire(req.Proof)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	raw, err := proof.Serialize()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	start := time.Now()
	res, cached, err := s.cache.GetOrLoad(cache.VerificationKey(raw, verifier.Lower, verifier.Upper), func() (*rangeproof.Result, error) {
		return verifier.Check(proof), nil
	})
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if !cached {
		s.metrics.AddVerification(time.Since(start), res.Valid())
	}
	c.JSON(http.StatusOK, &VerifyResponse{Valid: res.Valid(), Checks: res, Cached: cached})
}

func (s *Server) get(c *gin.Context) {
	if s.store == nil {
		s.fail(c, http.StatusNotFound, errors.New("proof storage is disabled"))
		return
	}
	r, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.fail(c, http.StatusNotFound, err)
			return
		}
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, &RecordResponse{
		ID:        r.ID,
		Lower:     r.Lower.String(),
		Upper:     r.Upper.String(),
		Valid:     r.Valid,
		CreatedAt: r.CreatedAt.Unix(),
		Proof:     r.Proof,
	})
}

func (s *Server) params(c *gin.Context) {
	c.JSON(http.StatusOK, math.NewPublicParams())
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Errorf("request [%s] failed: %+v", c.FullPath(), err)
	} else {
		logger.Debugf("request [%s] rejected: %s", c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, &ErrorResponse{Error: err.Error()})
}

func parseBounds(value, lower, upper string) (*big.Int, *big.Int, *big.Int, error) {
	v, err := parseInt("value", value)
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := parseInt("lower bound", lower)
	if err != nil {
		return nil, nil, nil, err
	}
	u, err := parseInt("upper bound", upper)
	if err != nil {
		return nil, nil, nil, err
	}
	return v, l, u, nil
}
