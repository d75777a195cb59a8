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
	"fmt"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// arrayChildBreadcrumbs builds the dotted/bracketed diagnostic path for the
// i'th element of an array, so a range/arity error deep in a nested tree
// names the exact element it came from instead of repeating the parent path.
func arrayChildBreadcrumbs(breadcrumbs string, i int) string {
	return fmt.Sprintf("%s[%d]", breadcrumbs, i)
}

// tupleChildBreadcrumbs builds the diagnostic path for the i'th field of a
// tuple, preferring the field's declared name and falling back to its index
// when the parameter has none.
func tupleChildBreadcrumbs(breadcrumbs string, types []*typeComponent, i int) string {
	if i < len(types) && types[i].keyName != "" {
		return fmt.Sprintf("%s.%s", breadcrumbs, types[i].keyName)
	}
	return fmt.Sprintf("%s.%d", breadcrumbs, i)
}

// BindValue coerces external data (e.g. unmarshalled JSON) into a value tree
// against pa's compiled type tree, with no range/arity strictness applied
// beyond what is needed to resolve the right Go representation. This is the
// "shape" half of binding - call ValidateValue afterwards if you need the
// stricter range/arity checks before encoding.
func (pa ParameterArray) BindValue(ctx context.Context, input interface{}) (*ComponentValue, error) {
	return pa.ParseExternalDataCtx(ctx, input)
}

// ValidateValue walks an already-bound value tree and confirms every leaf
// value fits the numeric range and byte length its elementary type demands,
// and that every array/tuple has the arity its type tree requires. Encoding
// re-checks ranges as it serializes, but ValidateValue lets a caller
// validate without paying for (or risking partial) encoding.
func (cv *ComponentValue) ValidateValue() error {
	return cv.ValidateValueCtx(context.Background())
}

func (cv *ComponentValue) ValidateValueCtx(ctx context.Context) error {
	return validateValue(ctx, "", cv)
}

func validateValue(ctx context.Context, breadcrumbs string, cv *ComponentValue) error {
	if cv == nil || cv.Component == nil {
		return i18n.NewError(ctx, abimsgs.MsgMissingValue, breadcrumbs)
	}
	tc, ok := cv.Component.(*typeComponent)
	if !ok {
		return i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
	switch tc.cType {
	case ElementaryComponent:
		return validateElementaryValue(ctx, breadcrumbs, tc, cv.Value)
	case FixedArrayComponent:
		if len(cv.Children) != tc.arrayLength {
			return i18n.NewError(ctx, abimsgs.MsgFixedArrayArity, tc.String(), tc.arrayLength, len(cv.Children), breadcrumbs)
		}
		return validateArrayChildren(ctx, breadcrumbs, cv.Children)
	case DynamicArrayComponent:
		return validateArrayChildren(ctx, breadcrumbs, cv.Children)
	case TupleComponent:
		if len(cv.Children) != len(tc.tupleChildren) {
			return i18n.NewError(ctx, abimsgs.MsgTupleArity, tc.String(), len(tc.tupleChildren), len(cv.Children), breadcrumbs)
		}
		return validateTupleChildren(ctx, breadcrumbs, tc.tupleChildren, cv.Children)
	default:
		return i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
}

func validateArrayChildren(ctx context.Context, breadcrumbs string, children []*ComponentValue) error {
	for i, child := range children {
		if err := validateValue(ctx, arrayChildBreadcrumbs(breadcrumbs, i), child); err != nil {
			return err
		}
	}
	return nil
}

func validateTupleChildren(ctx context.Context, breadcrumbs string, types []*typeComponent, children []*ComponentValue) error {
	for i, child := range children {
		if err := validateValue(ctx, tupleChildBreadcrumbs(breadcrumbs, types, i), child); err != nil {
			return err
		}
	}
	return nil
}

func validateElementaryValue(ctx context.Context, breadcrumbs string, tc *typeComponent, value interface{}) error {
	switch tc.elementaryType {
	case ElementaryTypeInt:
		i, ok := value.(*big.Int)
		if !ok {
			return i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if !checkSignedIntFits(i, tc.m) {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOutOfRange, tc.String(), breadcrumbs)
		}
	case ElementaryTypeUint:
		i, ok := value.(*big.Int)
		if !ok {
			return i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if i.Sign() < 0 || i.BitLen() > int(tc.m) {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOutOfRange, tc.String(), breadcrumbs)
		}
	case ElementaryTypeAddress:
		i, ok := value.(*big.Int)
		if !ok {
			return i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if i.Sign() < 0 || i.BitLen() > 160 {
			return i18n.NewError(ctx, abimsgs.MsgAddressLengthWrong, breadcrumbs, (i.BitLen()+7)/8)
		}
	case ElementaryTypeBool:
		if _, ok := value.(bool); !ok {
			return i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "bool", value, value, breadcrumbs)
		}
	case ElementaryTypeBytes:
		b, ok := value.([]byte)
		if !ok {
			return i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if tc.elementarySuffix != "" && len(b) != int(tc.m) {
			return i18n.NewError(ctx, abimsgs.MsgBytesLengthWrong, int(tc.m), tc.String(), len(b), breadcrumbs)
		}
	case ElementaryTypeString:
		if _, ok := value.(string); !ok {
			return i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "string", value, value, breadcrumbs)
		}
	default:
		return i18n.NewError(ctx, abimsgs.MsgUnknownBaseType, tc.elementaryType, breadcrumbs)
	}
	return nil
}
