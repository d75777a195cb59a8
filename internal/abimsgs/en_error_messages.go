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

// Package abimsgs is the i18n error catalogue for the ABI codec. Every
// message is tagged with the taxonomy kind it belongs to (GrammarError,
// ValueTypeMismatch, and so on) so the catalogue doubles as documentation
// of the error taxonomy.
package abimsgs

import "github.com/hyperledger/firefly-common/pkg/i18n"

var ffe = i18n.FFE

//revive:disable
var (
	// GrammarError - malformed type descriptor or parameter list
	MsgUnknownBaseType        = ffe("FF23000", "Unknown base type '%s' in type descriptor '%s'")
	MsgInvalidSizeSuffix      = ffe("FF23001", "Invalid size suffix '%s' for type '%s': %s")
	MsgMissingSizeSuffix      = ffe("FF23002", "Type '%s' requires a size suffix: %s")
	MsgUnexpectedSizeSuffix   = ffe("FF23003", "Type '%s' does not accept a size suffix, found '%s'")
	MsgInvalidArrayDimension  = ffe("FF23004", "Invalid array dimension in '%s': must be a positive integer or empty")
	MsgUnbalancedBrackets     = ffe("FF23005", "Unbalanced brackets/parentheses in '%s'")
	MsgEmptyTypeString        = ffe("FF23006", "Empty type string")
	MsgTupleComponentMismatch = ffe("FF23007", "Tuple type '%s' has %d declared components but %d were supplied")
	MsgUnexpectedToken        = ffe("FF23008", "Unexpected token '%s' at position %d in '%s'")
	MsgMissingCloseParen      = ffe("FF23009", "Missing closing parenthesis in '%s'")
	MsgDuplicateIndexedFlag   = ffe("FF23010", "'indexed' specified more than once in '%s'")
	MsgIndexedNotAllowed      = ffe("FF23011", "'indexed' is only valid on event input parameters: '%s'")

	// ValueTypeMismatch / ArityError - value does not fit its parameter's shape
	MsgWrongShapeForType    = ffe("FF23020", "Expected a value assignable to %s, got %T (%v) at %s")
	MsgFixedArrayArity      = ffe("FF23021", "Fixed array %s requires exactly %d elements, got %d at %s")
	MsgTupleArity           = ffe("FF23022", "Tuple %s requires exactly %d components, got %d at %s")
	MsgMissingTupleKey      = ffe("FF23023", "Missing value for tuple component '%s' at %s")
	MsgTupleNeedsArrayOrMap = ffe("FF23024", "Tuple value must be an ordered sequence or a name-keyed mapping at %s")
	MsgMissingValue         = ffe("FF23025", "Missing value for parameter at %s")
	MsgUnparsedType         = ffe("FF23026", "Parameter type has not been validated/parsed: %s")
	MsgInvalidNumberString  = ffe("FF23027", "Invalid number string '%s'")
	MsgNumberPrecisionLoss  = ffe("FF23028", "Value '%s' cannot be represented as an integer without loss of precision")
	MsgInvalidJSONNumberType = ffe("FF23029", "Cannot parse an integer from JSON type %T")

	// ValueRangeError - value is the right shape but outside the encodable range
	MsgIntegerOutOfRange = ffe("FF23040", "Integer value does not fit in %s at %s")
	MsgBytesLengthWrong  = ffe("FF23041", "Expected exactly %d bytes for %s, got %d at %s")
	MsgAddressLengthWrong = ffe("FF23042", "Expected exactly 20 bytes for an address at %s, got %d")

	// PackedUnsupported
	MsgPackedTupleUnsupported = ffe("FF23050", "Tuples are not supported in packed encoding: %s")
	MsgPackedNestedArray      = ffe("FF23051", "Nested arrays are not supported in packed encoding: %s")

	// DecodeBoundsError / DecodeMalformed
	MsgDecodeOffsetOutOfBounds = ffe("FF23060", "Offset %d for %s points outside the %d byte buffer")
	MsgDecodeLengthOutOfBounds = ffe("FF23061", "Claimed length %d for %s exceeds available buffer (%d bytes remaining)")
	MsgDecodeHeadNotAligned    = ffe("FF23062", "Buffer of %d bytes is not a multiple of 32 bytes in the head region")
	MsgDecodeBoolMalformed     = ffe("FF23063", "Non-zero high bytes in bool slot at %s (strict mode)")
	MsgDecodeArrayCountHuge    = ffe("FF23064", "Array count %s is too large to be a sane allocation at %s")
	MsgDecodeCountTooLarge     = ffe("FF23065", "Array/bytes count at %s exceeds 32 bits")

	// ExternalError - propagated from a collaborator
	MsgKeccakFailed      = ffe("FF23080", "Keccak-256 hashing failed: %s")
	MsgJSONReadFailed    = ffe("FF23081", "Failed to parse contract description JSON: %s")
	MsgSchemaInvalid     = ffe("FF23082", "Contract description failed JSON Schema validation: %s")
	MsgFetchFailed       = ffe("FF23083", "Failed to fetch contract description from %s: %s")
	MsgWatchFailed       = ffe("FF23084", "Failed to watch contract description source %s: %s")

	// Selector/call helpers
	MsgSelectorMismatch  = ffe("FF23090", "Call data selector %s does not match expected selector %s for %s")
	MsgCallDataTooShort  = ffe("FF23091", "Call data of %d bytes is too short to contain a 4 byte selector")
	MsgAnonymousNoTopic  = ffe("FF23092", "Anonymous events do not have a topic hash")
	MsgNotEnoughTopics   = ffe("FF23093", "Event '%s' requires %d indexed topics (plus selector if not anonymous), got %d")
	MsgDynamicIndexedArg = ffe("FF23094", "Indexed parameter '%s' has a dynamic type - only its topic hash is recoverable, not its original value")
	MsgUnknownTupleFormat = ffe("FF23095", "Unknown tuple serialization format: %d")

	// CLI/config
	MsgConfigReadFailed = ffe("FF23096", "Failed to read configuration: %s")
)
