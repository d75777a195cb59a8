// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package abicache caches the expensive parts of working with a contract
// description: compiling a Parameter's type descriptor into a TypeComponent
// tree, and hashing an Entry's canonical signature into its selector/topic.
// Both are pure functions of their input, so an LRU keyed on the raw type
// string (or entry signature) is safe to share across an entire process.
package abicache

import (
	"context"
	"time"

	"github.com/hyperledger/go-evm-abi/pkg/abi"
	"github.com/karlseguin/ccache"
)

// Cache memoizes compiled type trees and derived selectors/topics for an
// ABI, so repeated encode/decode calls against the same contract
// description don't re-walk the same type grammar every time.
type Cache struct {
	types     *ccache.Cache
	selectors *ccache.Cache
	ttl       time.Duration
}

// Config mirrors the size/ttl options exposed on abiconfig.CacheConfig.
type Config struct {
	Size int64
	TTL  string
}

// New builds a Cache from a Config. An unparsable TTL falls back to 1 hour -
// this is operator-supplied configuration, not contract data, so a conservative
// default beats failing the whole process on a typo.
func New(conf Config) *Cache {
	ttl, err := time.ParseDuration(conf.TTL)
	if err != nil {
		ttl = time.Hour
	}
	size := conf.Size
	if size <= 0 {
		size = 250
	}
	return &Cache{
		types:     ccache.New(ccache.Configure().MaxSize(size)),
		selectors: ccache.New(ccache.Configure().MaxSize(size)),
		ttl:       ttl,
	}
}

// TypeComponentTree returns the (cached) compiled type tree for a parameter
// array, keyed on its JSON-equivalent type signature.
func (c *Cache) TypeComponentTree(ctx context.Context, key string, pa abi.ParameterArray) (abi.TypeComponent, error) {
	item := c.types.Get(key)
	if item != nil && !item.Expired() {
		return item.Value().(abi.TypeComponent), nil
	}
	tc, err := pa.TypeComponentTreeCtx(ctx)
	if err != nil {
		return nil, err
	}
	c.types.Set(key, tc, c.ttl)
	return tc, nil
}

// Selector returns the (cached) 4 byte function selector for an entry, keyed
// on its canonical signature.
func (c *Cache) Selector(ctx context.Context, e *abi.Entry) ([]byte, error) {
	sig, err := e.SignatureCtx(ctx)
	if err != nil {
		return nil, err
	}
	item := c.selectors.Get(sig)
	if item != nil && !item.Expired() {
		return item.Value().([]byte), nil
	}
	id, err := e.SelectorCtx(ctx)
	if err != nil {
		return nil, err
	}
	c.selectors.Set(sig, id, c.ttl)
	return id, nil
}
