/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hyperledger-labs/zk-interval/interval/core/math"
	"github.com/hyperledger-labs/zk-interval/interval/core/rangeproof"
	"github.com/hyperledger-labs/zk-interval/interval/services/cache"
	"github.com/hyperledger-labs/zk-interval/interval/services/metrics"
	"github.com/hyperledger-labs/zk-interval/interval/services/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tedsuo/ifrit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	server  *Server
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, withStore bool) *fixture {
	t.Helper()
	var store Store
	if withStore {
		s, err := storage.Open(storage.Opts{Driver: storage.SQLite, DataSource: filepath.Join(t.TempDir(), "proofs.db")})
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		store = s
	}
	c, err := cache.NewDefaultRistrettoCache[*rangeproof.Result]()
	require.NoError(t, err)
	m := metrics.NewMetrics(metrics.NewMemoryProvider(), "test")
	return &fixture{
		server:  New(Config{Address: "127.0.0.1:0", ShutdownTimeout: time.Second}, store, c, m),
		metrics: m,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestProveAndVerify(t *testing.T) {
	f := newFixture(t, true)

	proved := &ProveResponse{}
	code := f.do(t, http.MethodPost, "/v1/proofs", &ProveRequest{Value: "21", Lower: "18", Upper: "25", Datum: true}, proved)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, proved.Valid)
	assert.NotEmpty(t, proved.ID)
	assert.Equal(t, "18", proved.Lower)
	assert.Equal(t, "25", proved.Upper)
	require.NotNil(t, proved.Datum)

	verified := &VerifyResponse{}
	code = f.do(t, http.MethodPost, "/v1/proofs/verify", &VerifyRequest{Proof: proved.Proof, Lower: "18", Upper: "25"}, verified)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, verified.Valid)
	assert.False(t, verified.Cached)
	assert.Equal(t, rangeproof.Result{Upper: true, Lower: true, Pairing: true}, *verified.Checks)

	code = f.do(t, http.MethodPost, "/v1/proofs/verify", &VerifyRequest{Proof: proved.Proof, Lower: "18", Upper: "25"}, verified)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, verified.Cached)

	code = f.do(t, http.MethodPost, "/v1/proofs/verify", &VerifyRequest{Proof: proved.Proof, Lower: "19", Upper: "25"}, verified)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, verified.Valid)
	assert.False(t, verified.Checks.Lower)
	assert.True(t, verified.Checks.Upper)

	record := &RecordResponse{}
	code = f.do(t, http.MethodGet, "/v1/proofs/"+proved.ID, nil, record)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, proved.ID, record.ID)
	assert.True(t, record.Valid)
	stored := &rangeproof.Wire{}
	require.NoError(t, json.Unmarshal(record.Proof, stored))
	assert.Equal(t, proved.Proof, stored)

	summary := metrics.NewReporter(f.metrics).Summary()
	assert.Contains(t, summary, "Proofs generated 1, rejected requests 0")
	assert.Contains(t, summary, "Proofs verified 2")
}

func TestProveRejectsInvalidInput(t *testing.T) {
	f := newFixture(t, false)

	for _, req := range []*ProveRequest{
		{Value: "17", Lower: "18", Upper: "25"},
		{Value: "26", Lower: "18", Upper: "25"},
		{Value: "1", Upper: math.FieldOrder.String()},
		{Value: "1", Lower: "-1"},
		{Value: "twenty"},
		{},
	} {
		resp := &ErrorResponse{}
		code := f.do(t, http.MethodPost, "/v1/proofs", req, resp)
		assert.Equal(t, http.StatusBadRequest, code, fmt.Sprintf("%+v", req))
		assert.NotEmpty(t, resp.Error)
	}

	resp := &ErrorResponse{}
	code := f.do(t, http.MethodPost, "/v1/proofs", &ProveRequest{Value: "17", Lower: "18", Upper: "25"}, resp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, rangeproof.ErrBelowLowerBound.Error())
	assert.Contains(t, metrics.NewReporter(f.metrics).Summary(), "rejected requests 5")
}

func TestVerifyRejectsMalformedProofs(t *testing.T) {
	f := newFixture(t, false)

	proved := &ProveResponse{}
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/proofs", &ProveRequest{Value: "3"}, proved))
	assert.Empty(t, proved.ID)

	broken := *proved.Proof
	broken.Y = "zz"
	resp := &ErrorResponse{}
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/proofs/verify", &VerifyRequest{Proof: &broken}, resp))
	assert.Contains(t, resp.Error, rangeproof.ErrDecoding.Error())

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/proofs/verify", &VerifyRequest{Proof: proved.Proof, Lower: "-2"}, resp))
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/proofs/verify", map[string]string{"lower": "1"}, resp))
}

func TestGetRecord(t *testing.T) {
	resp := &ErrorResponse{}
	assert.Equal(t, http.StatusNotFound, newFixture(t, false).do(t, http.MethodGet, "/v1/proofs/abc", nil, resp))
	assert.Contains(t, resp.Error, "disabled")
	assert.Equal(t, http.StatusNotFound, newFixture(t, true).do(t, http.MethodGet, "/v1/proofs/abc", nil, resp))
	assert.Contains(t, resp.Error, storage.ErrNotFound.Error())
}

func TestParams(t *testing.T) {
	pp := &math.PublicParams{}
	assert.Equal(t, http.StatusOK, newFixture(t, false).do(t, http.MethodGet, "/v1/params", nil, pp))
	assert.Equal(t, *math.NewPublicParams(), *pp)
}

func TestRunner(t *testing.T) {
	f := newFixture(t, false)
	process := ifrit.Invoke(f.server)

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/params", f.server.Addr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(fmt.Sprintf("http://%s/metrics", f.server.Addr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	process.Signal(os.Interrupt)
	select {
	case err := <-process.Wait():
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
