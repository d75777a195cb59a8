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

// Package abiconfig declares the viper-backed configuration sections for
// the ABI codec CLI: where the contract description comes from, how
// strictly to decode, and how the cache behind it is sized.
package abiconfig

import (
	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/spf13/viper"
)

var ffc = config.AddRootKey

var (
	// StrictDecoding rejects malformed bool slots instead of silently truthy-coercing them
	StrictDecoding = ffc("decode.strict")
	// DefaultTupleFormat controls how decoded tuples/parameter lists are rendered to JSON
	DefaultTupleFormat = ffc("serialize.tupleFormat")
)

var ABISourceConfig config.Section

var CacheConfig config.Section

const (
	// ABISourcePath is the filesystem path (or "-" for stdin) of the contract description to load
	ABISourcePath = "path"
	// ABISourceWatch is registered (default false) but no command reads it; the watch command always watches ABISourcePath
	ABISourceWatch = "watch"
	// ABISourceSchemaFile optionally points at a JSON Schema document used to validate the description before parsing
	ABISourceSchemaFile = "schemaFile"
	// ABISourceURL optionally fetches the contract description over HTTP instead of from the filesystem
	ABISourceURL = "url"
)

const (
	// CacheSize is the maximum number of compiled type trees / selectors to retain
	CacheSize = "size"
	// CacheTTL is how long an unused cache entry is retained
	CacheTTL = "ttl"
)

func setDefaults() {
	viper.SetDefault(string(StrictDecoding), true)
	viper.SetDefault(string(DefaultTupleFormat), "objects")
}

func Reset() {
	config.RootConfigReset(setDefaults)

	ABISourceConfig = config.RootSection("source")
	ABISourceConfig.AddKnownKey(ABISourcePath)
	ABISourceConfig.AddKnownKey(ABISourceWatch, false)
	ABISourceConfig.AddKnownKey(ABISourceSchemaFile)
	ABISourceConfig.AddKnownKey(ABISourceURL)

	CacheConfig = config.RootSection("cache")
	CacheConfig.AddKnownKey(CacheSize, 250)
	CacheConfig.AddKnownKey(CacheTTL, "24h")
}
