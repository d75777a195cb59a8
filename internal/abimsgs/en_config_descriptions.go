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

package abimsgs

import "github.com/hyperledger/firefly-common/pkg/i18n"

var ffc = i18n.FFC

//revive:disable
var (
	ConfigDecodeStrict           = ffc("config.decode.strict", "Reject malformed bool slots instead of silently truthy-coercing them", "boolean")
	ConfigSerializeTupleFormat   = ffc("config.serialize.tupleFormat", "Default tuple serialization format: objects / flatArrays / selfDescribingArrays", "string")
	ConfigSourcePath             = ffc("config.source.path", "Filesystem path of the contract description to load, or - for stdin", "string")
	ConfigSourceWatch            = ffc("config.source.watch", "Not read by any command; the watch command always watches source.path", "boolean")
	ConfigSourceSchemaFile       = ffc("config.source.schemaFile", "JSON Schema document used to validate the contract description before parsing", "string")
	ConfigSourceURL              = ffc("config.source.url", "Fetch the contract description over HTTP instead of from the filesystem", "string")
	ConfigCacheSize              = ffc("config.cache.size", "Maximum number of compiled type trees / selectors to retain", "number")
	ConfigCacheTTL               = ffc("config.cache.ttl", "How long to retain an unused cache entry", "duration")
)
