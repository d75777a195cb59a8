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

package abi

import (
	"context"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// EncodeABIDataPacked serializes a value tree using Solidity's
// abi.encodePacked rules: every element is written at its natural byte
// width with no padding or head/tail indirection, and elements are simply
// concatenated. Tuples and arrays-of-arrays are rejected, matching
// Solidity's own restriction (their packed layout would be ambiguous to
// reverse).
func (cv *ComponentValue) EncodeABIDataPacked() ([]byte, error) {
	return cv.EncodeABIDataPackedCtx(context.Background())
}

func (cv *ComponentValue) EncodeABIDataPackedCtx(ctx context.Context) ([]byte, error) {
	out := make([]byte, 0, 64)
	for _, child := range cv.Children {
		b, err := encodePackedValue(ctx, "", child, false)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func encodePackedValue(ctx context.Context, breadcrumbs string, cv *ComponentValue, insideArray bool) ([]byte, error) {
	tc, ok := cv.Component.(*typeComponent)
	if !ok || tc == nil {
		return nil, i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
	switch tc.cType {
	case TupleComponent:
		return nil, i18n.NewError(ctx, abimsgs.MsgPackedTupleUnsupported, tc.String())
	case FixedArrayComponent, DynamicArrayComponent:
		if insideArray {
			return nil, i18n.NewError(ctx, abimsgs.MsgPackedNestedArray, tc.String())
		}
		out := make([]byte, 0, 32*len(cv.Children))
		for _, child := range cv.Children {
			b, err := encodePackedValue(ctx, breadcrumbs, child, true)
			if err != nil {
				return nil, err
			}
			// Packed arrays still pad each element to 32 bytes - only the
			// top level tuple drops padding between top-level arguments.
			padded := b
			if len(b) < 32 {
				padded = make([]byte, 32)
				copy(padded[32-len(b):], b)
			}
			out = append(out, padded...)
		}
		return out, nil
	case ElementaryComponent:
		return encodePackedElementary(ctx, breadcrumbs, tc, cv.Value)
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
}

func encodePackedElementary(ctx context.Context, breadcrumbs string, tc *typeComponent, value interface{}) ([]byte, error) {
	switch tc.elementaryType {
	case ElementaryTypeInt:
		i, ok := value.(*big.Int)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if !checkSignedIntFits(i, tc.m) {
			return nil, i18n.NewError(ctx, abimsgs.MsgIntegerOutOfRange, tc.String(), breadcrumbs)
		}
		full := SerializeInt256TwosComplementBytes(i)
		return full[32-(tc.m/8):], nil
	case ElementaryTypeUint:
		i, ok := value.(*big.Int)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if i.Sign() < 0 || i.BitLen() > int(tc.m) {
			return nil, i18n.NewError(ctx, abimsgs.MsgIntegerOutOfRange, tc.String(), breadcrumbs)
		}
		b := make([]byte, tc.m/8)
		i.FillBytes(b)
		return b, nil
	case ElementaryTypeAddress:
		i, ok := value.(*big.Int)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		b := make([]byte, 20)
		i.FillBytes(b)
		return b, nil
	case ElementaryTypeBool:
		bv, ok := value.(bool)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "bool", value, value, breadcrumbs)
		}
		if bv {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case ElementaryTypeBytes:
		b, ok := value.([]byte)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		return b, nil
	case ElementaryTypeString:
		sv, ok := value.(string)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "string", value, value, breadcrumbs)
		}
		return []byte(sv), nil
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownBaseType, tc.elementaryType, breadcrumbs)
	}
}
