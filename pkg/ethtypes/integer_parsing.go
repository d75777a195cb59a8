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
	"bytes"
	"context"
	"encoding/json"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// BigIntegerFromString parses s using Go's default base-0 integer parsing
// (0x means hex, 0 means octal, no prefix means decimal), falling back to
// float parsing for values like "1e18" provided they carry no fractional
// component once reduced.
func BigIntegerFromString(ctx context.Context, s string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(s, 0)
	if !ok {
		f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
		if err != nil {
			return nil, i18n.NewError(ctx, abimsgs.MsgInvalidNumberString, s)
		}
		i, accuracy := f.Int(i)
		if accuracy != big.Exact {
			return nil, i18n.NewError(ctx, abimsgs.MsgNumberPrecisionLoss, s)
		}
		return i, nil
	}
	return i, nil
}

// UnmarshalBigInt parses a JSON number or string into a *big.Int, preserving
// full precision (decoding into float64, the encoding/json default, loses
// precision above 2^53).
func UnmarshalBigInt(ctx context.Context, b []byte) (*big.Int, error) {
	var i interface{}
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	if err := d.Decode(&i); err != nil {
		return nil, err
	}
	switch i := i.(type) {
	case json.Number:
		return BigIntegerFromString(ctx, i.String())
	case string:
		return BigIntegerFromString(ctx, i)
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidJSONNumberType, i)
	}
}
