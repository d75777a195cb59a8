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
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

var (
	int64Type    = reflect.TypeOf(int64(0))
	stringerType = reflect.TypeOf(new(fmt.Stringer)).Elem()
)

// ComponentValue is a value-tree node: the data bound (or decoded) against
// one node of a TypeComponent tree. Leaf nodes carry a Value; tuple and
// array nodes carry Children in declared/decoded order.
type ComponentValue struct {
	Component TypeComponent
	Leaf      bool
	Children  []*ComponentValue
	Value     interface{}
}

func getPtrValOrNil(v interface{}) interface{} {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Interface()
	}
	return nil
}

func getStringIfConvertible(v interface{}) (string, bool) {
	vt := reflect.TypeOf(v)
	if vt == nil {
		return "", false
	}
	if vt.Kind() == reflect.String {
		return reflect.ValueOf(v).String(), true
	}
	if vt.Implements(stringerType) {
		return v.(fmt.Stringer).String(), true
	}
	return "", false
}

func getBytesIfConvertible(v interface{}) []byte {
	vt := reflect.TypeOf(v)
	if vt == nil {
		return nil
	}
	if vt.Kind() == reflect.Slice && vt.Elem().Kind() == reflect.Uint8 {
		return reflect.ValueOf(v).Bytes()
	}
	return nil
}

func getInt64IfConvertible(v interface{}) (int64, bool) {
	vt := reflect.TypeOf(v)
	if vt == nil {
		return 0, false
	}
	if vt.ConvertibleTo(int64Type) {
		return reflect.ValueOf(v).Convert(int64Type).Interface().(int64), true
	}
	return 0, false
}

// getIntegerFromInterface coerces a bunch of Go types - the ones that show up
// after an ordinary encoding/json.Unmarshal into interface{}, plus the raw Go
// numeric types - into a *big.Int.
func getIntegerFromInterface(ctx context.Context, desc string, v interface{}) (*big.Int, error) {
	i := new(big.Int)
	switch vt := v.(type) {
	case string:
		i, ok := i.SetString(vt, 0)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "integer", v, v, desc)
		}
		return i, nil
	case *big.Int:
		return vt, nil
	case float64:
		i.SetInt64(int64(vt))
		return i, nil
	case float32:
		i.SetInt64(int64(vt))
		return i, nil
	case int64:
		i.SetInt64(vt)
		return i, nil
	case int32:
		i.SetInt64(int64(vt))
		return i, nil
	case int16:
		i.SetInt64(int64(vt))
		return i, nil
	case int8:
		i.SetInt64(int64(vt))
		return i, nil
	case int:
		i.SetInt64(int64(vt))
		return i, nil
	case uint64:
		i.SetInt64(int64(vt))
		return i, nil
	case uint32:
		i.SetInt64(int64(vt))
		return i, nil
	case uint16:
		i.SetInt64(int64(vt))
		return i, nil
	case uint8:
		i.SetInt64(int64(vt))
		return i, nil
	case uint:
		i.SetInt64(int64(vt))
		return i, nil
	default:
		if str, ok := getStringIfConvertible(v); ok {
			return getIntegerFromInterface(ctx, desc, str)
		}
		vi := getPtrValOrNil(v)
		if vi != nil {
			return getIntegerFromInterface(ctx, desc, vi)
		}
		if i64, ok := getInt64IfConvertible(v); ok {
			return getIntegerFromInterface(ctx, desc, i64)
		}
		return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "integer", v, v, desc)
	}
}

// getBoolFromInterface handles bool or string values - no attempt is made to
// map integer types to bool (0/1 is not a documented coercion).
func getBoolFromInterface(ctx context.Context, desc string, v interface{}) (bool, error) {
	switch vt := v.(type) {
	case bool:
		return vt, nil
	case string:
		return strings.EqualFold(vt, "true"), nil
	default:
		if str, ok := getStringIfConvertible(v); ok {
			return getBoolFromInterface(ctx, desc, str)
		}
		vi := getPtrValOrNil(v)
		if vi != nil {
			return getBoolFromInterface(ctx, desc, vi)
		}
		return false, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "bool", v, v, desc)
	}
}

// getStringFromInterface converts a string, fmt.Stringer or []byte into a
// string directly - no hex decoding is attempted.
func getStringFromInterface(ctx context.Context, desc string, v interface{}) (string, error) {
	switch vt := v.(type) {
	case string:
		return vt, nil
	case []byte:
		return string(vt), nil
	default:
		if str, ok := getStringIfConvertible(v); ok {
			return str, nil
		}
		vi := getPtrValOrNil(v)
		if vi != nil {
			return getStringFromInterface(ctx, desc, vi)
		}
		return "", i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "string", v, v, desc)
	}
}

// getBytesFromInterface converts raw []byte, or hex (with or without 0x
// prefix) encoded strings, into a byte slice.
func getBytesFromInterface(ctx context.Context, desc string, v interface{}) ([]byte, error) {
	switch vt := v.(type) {
	case []byte:
		return vt, nil
	case string:
		trimmed := strings.TrimPrefix(vt, "0x")
		hb, err := hex.DecodeString(trimmed)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, abimsgs.MsgWrongShapeForType, "bytes", v, v, desc)
		}
		return hb, nil
	default:
		if ba := getBytesIfConvertible(v); ba != nil {
			return ba, nil
		}
		if str, ok := getStringIfConvertible(v); ok {
			return getBytesFromInterface(ctx, desc, str)
		}
		vi := getPtrValOrNil(v)
		if vi != nil {
			return getBytesFromInterface(ctx, desc, vi)
		}
		return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "bytes", v, v, desc)
	}
}

func getInterfaceArray(input interface{}) []interface{} {
	iArray, ok := input.([]interface{})
	if !ok {
		iv := reflect.ValueOf(input)
		iArray = make([]interface{}, iv.Len())
		for i := 0; i < iv.Len(); i++ {
			iArray[i] = iv.Index(i).Interface()
		}
	}
	return iArray
}

func getStringInterfaceMap(ctx context.Context, breadcrumbs string, input interface{}) (map[string]interface{}, error) {
	iMap, ok := input.(map[string]interface{})
	if !ok {
		iv := reflect.ValueOf(input)
		iMap = make(map[string]interface{}, iv.Len())
		iter := iv.MapRange()
		for iter.Next() {
			k, err := getStringFromInterface(ctx, breadcrumbs, iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			iMap[k] = iter.Value().Interface()
		}
	}
	return iMap, nil
}

// bindElementaryValue coerces input into the Go representation the encoder
// expects for tc's elementary type: *big.Int for int/uint/address, bool,
// []byte for bytesN/bytes, string for string.
func bindElementaryValue(ctx context.Context, desc string, tc *typeComponent, input interface{}) (interface{}, error) {
	switch tc.elementaryType {
	case ElementaryTypeAddress:
		// Addresses are hex: a raw byte slice, or a string with or without "0x"
		switch vt := input.(type) {
		case []byte:
			return new(big.Int).SetBytes(vt), nil
		case string:
			if !strings.HasPrefix(vt, "0x") && !strings.HasPrefix(vt, "0X") {
				input = "0x" + vt
			}
		}
		return getIntegerFromInterface(ctx, desc, input)
	case ElementaryTypeInt, ElementaryTypeUint:
		return getIntegerFromInterface(ctx, desc, input)
	case ElementaryTypeBool:
		return getBoolFromInterface(ctx, desc, input)
	case ElementaryTypeBytes:
		return getBytesFromInterface(ctx, desc, input)
	case ElementaryTypeString:
		return getStringFromInterface(ctx, desc, input)
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownBaseType, tc.elementaryType, desc)
	}
}

// walkInput binds an arbitrary Go value (typically the result of
// encoding/json.Unmarshal into interface{}) against a compiled type tree,
// producing a value tree with no range checking performed. Use ValidateValue
// to additionally check arity and numeric range before encoding.
func walkInput(ctx context.Context, breadcrumbs string, input interface{}, component *typeComponent) (cv *ComponentValue, err error) {
	if input == nil {
		return nil, i18n.NewError(ctx, abimsgs.MsgMissingValue, breadcrumbs)
	}
	switch component.cType {
	case ElementaryComponent:
		value, err := bindElementaryValue(ctx, breadcrumbs, component, input)
		if err != nil {
			return nil, err
		}
		return &ComponentValue{
			Component: component,
			Value:     value,
			Leaf:      true,
		}, nil
	case FixedArrayComponent, DynamicArrayComponent:
		return walkArrayInput(ctx, breadcrumbs, input, component)
	case TupleComponent:
		return walkTupleInput(ctx, breadcrumbs, input, component)
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
}

func walkArrayInput(ctx context.Context, breadcrumbs string, input interface{}, component *typeComponent) (cv *ComponentValue, err error) {
	vt := reflect.TypeOf(input)
	if vt == nil || vt.Kind() != reflect.Slice {
		return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "array", input, input, breadcrumbs)
	}
	iArray := getInterfaceArray(input)
	if component.cType == FixedArrayComponent && len(iArray) != component.arrayLength {
		return nil, i18n.NewError(ctx, abimsgs.MsgFixedArrayArity, component.String(), component.arrayLength, len(iArray), breadcrumbs)
	}
	cv = &ComponentValue{
		Component: component,
		Children:  make([]*ComponentValue, len(iArray)),
	}
	for i, v := range iArray {
		childBreadcrumbs := fmt.Sprintf("%s[%d]", breadcrumbs, i)
		cv.Children[i], err = walkInput(ctx, childBreadcrumbs, v, component.arrayChild)
		if err != nil {
			return nil, err
		}
	}
	return cv, nil
}

func walkTupleInputArray(ctx context.Context, breadcrumbs string, input interface{}, component *typeComponent) (cv *ComponentValue, err error) {
	iArray := getInterfaceArray(input)
	if len(iArray) != len(component.tupleChildren) {
		return nil, i18n.NewError(ctx, abimsgs.MsgTupleArity, component.String(), len(component.tupleChildren), len(iArray), breadcrumbs)
	}
	cv = &ComponentValue{
		Component: component,
		Children:  make([]*ComponentValue, len(iArray)),
	}
	for i, v := range iArray {
		childBreadcrumbs := fmt.Sprintf("%s.%d", breadcrumbs, i)
		cv.Children[i], err = walkInput(ctx, childBreadcrumbs, v, component.tupleChildren[i])
		if err != nil {
			return nil, err
		}
	}
	return cv, nil
}

func walkTupleInput(ctx context.Context, breadcrumbs string, input interface{}, component *typeComponent) (cv *ComponentValue, err error) {
	vt := reflect.TypeOf(input)
	if vt != nil && vt.Kind() == reflect.Slice {
		return walkTupleInputArray(ctx, breadcrumbs, input, component)
	}
	if vt == nil || vt.Kind() != reflect.Map {
		return nil, i18n.NewError(ctx, abimsgs.MsgTupleNeedsArrayOrMap, breadcrumbs)
	}
	iMap, err := getStringInterfaceMap(ctx, breadcrumbs, input)
	if err != nil {
		return nil, err
	}
	cv = &ComponentValue{
		Component: component,
		Children:  make([]*ComponentValue, len(component.tupleChildren)),
	}
	for i, tupleChild := range component.tupleChildren {
		if tupleChild.keyName == "" {
			return nil, i18n.NewError(ctx, abimsgs.MsgMissingTupleKey, fmt.Sprintf("%d", i), breadcrumbs)
		}
		childBreadcrumbs := fmt.Sprintf("%s.%s", breadcrumbs, tupleChild.keyName)
		v, ok := iMap[tupleChild.keyName]
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgMissingTupleKey, tupleChild.keyName, childBreadcrumbs)
		}
		cv.Children[i], err = walkInput(ctx, childBreadcrumbs, v, tupleChild)
		if err != nil {
			return nil, err
		}
	}
	return cv, nil
}
