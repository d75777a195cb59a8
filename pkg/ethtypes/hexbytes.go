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

package ethtypes

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// HexBytes is a byte slice that JSON-marshals with an 0x prefix, and
// unmarshals plain hex or 0x-prefixed hex. The ABI decoder returns plain
// []byte for "bytes" and "bytesN" values, not HexBytes.
type HexBytes []byte

func (h *HexBytes) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return i18n.NewError(nil, abimsgs.MsgBytesLengthWrong, 0, s, 0)
	}
	*h = decoded
	return nil
}

func (h HexBytes) String() string {
	return "0x" + hex.EncodeToString(h)
}

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

// MustNewHexBytes parses s, panicking on failure - for use in test fixtures
// and constants, never on a value-tree hot path.
func MustNewHexBytes(s string) HexBytes {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		panic(err)
	}
	return b
}
