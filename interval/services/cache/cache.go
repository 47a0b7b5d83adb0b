/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cache

import (
	"encoding/hex"
	"math/big"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hyperledger-labs/zk-interval/interval/core/fiatshamir"
	"golang.org/x/sync/singleflight"
)

const (
	// ZeroCost with this ristretto uses the Cost function defined in its configuration
	ZeroCost = 0

	DefaultNumCounters = 1e6
	DefaultMaxCost     = 1e8
	DefaultBufferItems = 64
)

// Cache stores values by key and deduplicates concurrent loads of the same key.
type Cache[T any] interface {
	Get(key string) (T, bool)
	GetOrLoad(key string, loader func() (T, error)) (T, bool, error)
	Add(key string, value T)
	Delete(key string)
}

// Config sizes the ristretto cache. Zero fields take the defaults.
type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
}

// VerificationKey identifies a verification by the serialized proof and the bounds it is checked against.
func VerificationKey(proof []byte, lower, upper *big.Int) string {
	return hex.EncodeToString(fiatshamir.Sum(proof, []byte{0}, lower.Bytes(), []byte{0}, upper.Bytes()))
}

type ristrettoCache[T any] struct {
	cache *ristretto.Cache[string, T]
	sfg   singleflight.Group
}

func NewRistrettoCache[T any](c Config) (*ristrettoCache[T], error) {
	if c.NumCounters == 0 {
		c.NumCounters = DefaultNumCounters
	}
	if c.MaxCost == 0 {
		c.MaxCost = DefaultMaxCost
	}
	if c.BufferItems == 0 {
		c.BufferItems = DefaultBufferItems
	}
	rCache, err := ristretto.NewCache[string, T](&ristretto.Config[string, T]{
		NumCounters: c.NumCounters,
		MaxCost:     c.MaxCost,
		BufferItems: c.BufferItems,
		Cost: func(value T) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, err
	}
	return &ristrettoCache[T]{cache: rCache}, nil
}

func NewDefaultRistrettoCache[T any]() (*ristrettoCache[T], error) {
	return NewRistrettoCache[T](Config{})
}

func (c *ristrettoCache[T]) Get(key string) (T, bool) {
	return c.cache.Get(key)
}

func (c *ristrettoCache[T]) Add(key string, value T) {
	c.cache.Set(key, value, ZeroCost)
	c.cache.Wait()
}

func (c *ristrettoCache[T]) Delete(key string) {
	c.cache.Del(key)
	c.cache.Wait()
}

func (c *ristrettoCache[T]) Clear() {
	c.cache.Clear()
	c.cache.Wait()
}

// GetOrLoad reports whether the value was already cached.
func (c *ristrettoCache[T]) GetOrLoad(key string, loader func() (T, error)) (T, bool, error) {
	var zero T

	if value, found := c.Get(key); found {
		return value, true, nil
	}

	res, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		newValue, loadErr := loader()
		if loadErr != nil {
			return nil, loadErr
		}
		c.Add(key, newValue)
		return newValue, nil
	})
	if err != nil {
		return zero, false, err
	}
	return res.(T), false, nil
}
