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
	"encoding/json"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// HexInteger is a JSON rendering of a *big.Int as an 0x hex string. The ABI
// output serializer does not use it; it has its own hex integer serializer.
// It parses flexibly: 0x hex, plain decimal string, or a JSON number.
type HexInteger big.Int

func (h *HexInteger) String() string {
	return "0x" + (*big.Int)(h).Text(16)
}

func (h HexInteger) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

func (h *HexInteger) UnmarshalJSON(b []byte) error {
	var i interface{}
	_ = json.Unmarshal(b, &i)
	switch i := i.(type) {
	case float64:
		*h = HexInteger(*big.NewInt(int64(i)))
		return nil
	case string:
		bi, ok := new(big.Int).SetString(i, 0)
		if !ok {
			return i18n.NewError(nil, abimsgs.MsgWrongShapeForType, "integer", i, i, "<json>")
		}
		*h = HexInteger(*bi)
		return nil
	default:
		return i18n.NewError(nil, abimsgs.MsgWrongShapeForType, "integer", i, i, "<json>")
	}
}

// BigInt returns the *big.Int this value wraps (or zero if h is nil).
func (h *HexInteger) BigInt() *big.Int {
	if h == nil {
		return new(big.Int)
	}
	return (*big.Int)(h)
}
