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
	"strconv"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// TypeComponent is a modelled representation of a component of an ABI type
// descriptor. We don't stop at the tuple level - we go down through array
// dimensions too. Example "((uint256,string[2],string[])[][3][],string)" becomes:
//   - tuple1
//   - variable size array
//   - fixed size [3] array
//   - variable size array
//   - tuple2
//   - uint256
//   - fixed size [2] array
//   - string
//   - variable size array
//   - string
//   - string
//
// This mirrors the shape a JSON value would need to have to supply values for it.
type TypeComponent interface {
	String() string                     // the canonical signature for this level of the tree
	KeyName() string                    // the parameter name at this level, empty if none was supplied
	ComponentType() ComponentType       // classification of the component (tuple, array or elementary)
	ElementaryType() ElementaryTypeInfo // only non-nil for elementary components
	ArrayChild() TypeComponent          // only non-nil for array components
	ArrayLength() int                   // only meaningful for fixed array components
	TupleChildren() []TypeComponent     // only non-nil for tuple components
}

type typeComponent struct {
	cType            ComponentType
	keyName          string
	elementaryType   *elementaryTypeInfo
	elementarySuffix string
	m                uint16
	arrayLength      int
	arrayChild       *typeComponent
	tupleChildren    []*typeComponent
}

// elementaryTypeInfo defines the string parsing rules for one of the base
// types in the grammar.
type elementaryTypeInfo struct {
	name          string
	suffixType    suffixType
	defaultSuffix string
	mMin          uint16
	mMax          uint16
	mMod          uint16
}

// ElementaryTypeInfo represents the rules for an elementary type recognised
// by the grammar, used when reporting grammar errors.
type ElementaryTypeInfo interface {
	String() string
}

func (et *elementaryTypeInfo) String() string {
	switch et.suffixType {
	case suffixTypeMOptional, suffixTypeMRequired:
		s := fmt.Sprintf("%s<M> (%d <= M <= %d)", et.name, et.mMin, et.mMax)
		if et.mMod != 0 {
			s = fmt.Sprintf("%s (M mod %d == 0)", s, et.mMod)
		}
		if et.suffixType == suffixTypeMOptional {
			s = fmt.Sprintf("%s / %s", et.name, s)
		}
		if et.defaultSuffix != "" {
			s = fmt.Sprintf("%s (%s == %s%s)", s, et.name, et.name, et.defaultSuffix)
		}
		return s
	default:
		return et.name
	}
}

var elementaryTypes = map[string]*elementaryTypeInfo{}

func registerElementaryType(et elementaryTypeInfo) ElementaryTypeInfo {
	elementaryTypes[et.name] = &et
	return &et
}

// The base type vocabulary this codec understands. Deliberately narrower than
// Solidity's full type system: no "fixed"/"ufixed" (no general numeric
// conversion of arbitrary precision-shifted types is in scope), and no
// "function" selector type.
var (
	ElementaryTypeInt = registerElementaryType(elementaryTypeInfo{
		name:          "int",
		suffixType:    suffixTypeMRequired,
		defaultSuffix: "256",
		mMin:          8,
		mMax:          256,
		mMod:          8,
	})
	ElementaryTypeUint = registerElementaryType(elementaryTypeInfo{
		name:          "uint",
		suffixType:    suffixTypeMRequired,
		defaultSuffix: "256",
		mMin:          8,
		mMax:          256,
		mMod:          8,
	})
	ElementaryTypeAddress = registerElementaryType(elementaryTypeInfo{
		name:       "address",
		suffixType: suffixTypeNone,
	})
	ElementaryTypeBool = registerElementaryType(elementaryTypeInfo{
		name:       "bool",
		suffixType: suffixTypeNone,
	})
	ElementaryTypeBytes = registerElementaryType(elementaryTypeInfo{
		name:       "bytes",
		suffixType: suffixTypeMOptional, // "bytes" without a suffix is the dynamic variant
		mMin:       1,
		mMax:       32,
	})
	ElementaryTypeString = registerElementaryType(elementaryTypeInfo{
		name:       "string",
		suffixType: suffixTypeNone,
	})
	ElementaryTypeTuple = registerElementaryType(elementaryTypeInfo{
		name:       "tuple",
		suffixType: suffixTypeNone,
	})
)

type suffixType int

const (
	suffixTypeNone      suffixType = iota // no suffix possible - "address", "bool"
	suffixTypeMOptional                   // single dimension suffix, optional - "bytes"/"bytes32"
	suffixTypeMRequired                   // single dimension suffix, required - "uint256"
)

// ComponentType classifies a node in the compiled type tree.
type ComponentType int

const (
	ElementaryComponent ComponentType = iota
	FixedArrayComponent
	DynamicArrayComponent
	TupleComponent
)

func (tc *typeComponent) String() string {
	switch tc.cType {
	case ElementaryComponent:
		return fmt.Sprintf("%s%s", tc.elementaryType.name, tc.elementarySuffix)
	case FixedArrayComponent:
		return fmt.Sprintf("%s[%d]", tc.arrayChild.String(), tc.arrayLength)
	case DynamicArrayComponent:
		return fmt.Sprintf("%s[]", tc.arrayChild.String())
	case TupleComponent:
		buff := new(strings.Builder)
		buff.WriteByte('(')
		for i, child := range tc.tupleChildren {
			if i > 0 {
				buff.WriteByte(',')
			}
			buff.WriteString(child.String())
		}
		buff.WriteByte(')')
		return buff.String()
	default:
		return ""
	}
}

func (tc *typeComponent) KeyName() string                { return tc.keyName }
func (tc *typeComponent) ComponentType() ComponentType    { return tc.cType }
func (tc *typeComponent) ElementaryType() ElementaryTypeInfo {
	if tc.elementaryType == nil {
		return nil
	}
	return tc.elementaryType
}
func (tc *typeComponent) ArrayChild() TypeComponent { return tc.arrayChild }
func (tc *typeComponent) ArrayLength() int          { return tc.arrayLength }

func (tc *typeComponent) TupleChildren() []TypeComponent {
	children := make([]TypeComponent, len(tc.tupleChildren))
	for i, c := range tc.tupleChildren {
		children[i] = c
	}
	return children
}

// parseABIParameterComponents compiles a Parameter's textual type (and its
// nested Components, for tuples) into a typeComponent tree.
func (p *Parameter) parseABIParameterComponents(ctx context.Context) (tc *typeComponent, err error) {
	abiTypeString := p.Type
	if abiTypeString == "" {
		return nil, i18n.NewError(ctx, abimsgs.MsgEmptyTypeString)
	}

	etBuilder := new(strings.Builder)
	for _, r := range abiTypeString {
		if r >= 'a' && r <= 'z' {
			etBuilder.WriteRune(r)
		} else {
			break
		}
	}
	etStr := etBuilder.String()
	et, ok := elementaryTypes[etStr]
	if !ok {
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownBaseType, etStr, abiTypeString)
	}

	suffix, arrays := splitElementaryTypeSuffix(abiTypeString, len(etStr))
	if suffix == "" {
		suffix = et.defaultSuffix
	}

	if et == ElementaryTypeTuple {
		tc = &typeComponent{
			cType:         TupleComponent,
			keyName:       p.Name,
			tupleChildren: make([]*typeComponent, len(p.Components)),
		}
		if len(p.Components) == 0 {
			return nil, i18n.NewError(ctx, abimsgs.MsgTupleComponentMismatch, abiTypeString, 0, 0)
		}
		for i, c := range p.Components {
			if tc.tupleChildren[i], err = c.parseABIParameterComponents(ctx); err != nil {
				return nil, err
			}
		}
	} else {
		tc = &typeComponent{
			cType:            ElementaryComponent,
			keyName:          p.Name,
			elementaryType:   et,
			elementarySuffix: suffix,
		}
		switch et.suffixType {
		case suffixTypeNone:
			if suffix != "" {
				return nil, i18n.NewError(ctx, abimsgs.MsgUnexpectedSizeSuffix, etStr, suffix)
			}
		case suffixTypeMRequired:
			if suffix == "" {
				return nil, i18n.NewError(ctx, abimsgs.MsgMissingSizeSuffix, etStr, abiTypeString)
			}
			if err := parseMSuffix(ctx, abiTypeString, tc, suffix); err != nil {
				return nil, err
			}
		case suffixTypeMOptional:
			if suffix != "" {
				if err := parseMSuffix(ctx, abiTypeString, tc, suffix); err != nil {
					return nil, err
				}
			}
		}
	}

	if arrays != "" {
		wrapped, err := parseArrays(ctx, abiTypeString, tc, arrays)
		if err != nil {
			return nil, err
		}
		wrapped.keyName = p.Name
		return wrapped, nil
	}

	return tc, nil
}

// splitElementaryTypeSuffix splits out the "256" from "[8][]" in "uint256[8][]".
func splitElementaryTypeSuffix(abiTypeString string, pos int) (string, string) {
	suffix := new(strings.Builder)
	for ; pos < len(abiTypeString) && abiTypeString[pos] != '['; pos++ {
		suffix.WriteByte(abiTypeString[pos])
	}
	arrays := new(strings.Builder)
	for ; pos < len(abiTypeString); pos++ {
		arrays.WriteByte(abiTypeString[pos])
	}
	return suffix.String(), arrays.String()
}

// parseMSuffix parses the "256" in "uint256" against the <M> rules for an elementary type.
func parseMSuffix(ctx context.Context, abiTypeString string, ec *typeComponent, suffix string) error {
	val, err := strconv.ParseUint(suffix, 10, 16)
	if err != nil {
		return i18n.WrapError(ctx, err, abimsgs.MsgInvalidSizeSuffix, suffix, abiTypeString, err.Error())
	}
	ec.m = uint16(val)
	if ec.m < ec.elementaryType.mMin || ec.m > ec.elementaryType.mMax {
		return i18n.NewError(ctx, abimsgs.MsgInvalidSizeSuffix, suffix, abiTypeString, ec.elementaryType.String())
	}
	if ec.elementaryType.mMod != 0 && (ec.m%ec.elementaryType.mMod) != 0 {
		return i18n.NewError(ctx, abimsgs.MsgInvalidSizeSuffix, suffix, abiTypeString, ec.elementaryType.String())
	}
	return nil
}

// parseArrayM parses the "8" in "uint256[8]" for a fixed length array dimension.
func parseArrayM(ctx context.Context, abiTypeString string, ac *typeComponent, mStr string) error {
	val, err := strconv.ParseUint(mStr, 10, 32)
	if err != nil {
		return i18n.WrapError(ctx, err, abimsgs.MsgInvalidArrayDimension, abiTypeString)
	}
	if val == 0 {
		return i18n.NewError(ctx, abimsgs.MsgInvalidArrayDimension, abiTypeString)
	}
	ac.arrayLength = int(val)
	return nil
}

// parseArrays recursively wraps child in array dimensions from left to right,
// e.g. for "uint256[8][]" it wraps uint256 in [8], then wraps that in [].
func parseArrays(ctx context.Context, abiTypeString string, child *typeComponent, suffix string) (*typeComponent, error) {
	pos := 0
	if pos >= len(suffix) || suffix[pos] != '[' {
		return nil, i18n.NewError(ctx, abimsgs.MsgUnbalancedBrackets, abiTypeString)
	}
	mStr := new(strings.Builder)
	for pos++; pos < len(suffix) && suffix[pos] != ']'; pos++ {
		mStr.WriteByte(suffix[pos])
	}
	if pos >= len(suffix) {
		return nil, i18n.NewError(ctx, abimsgs.MsgUnbalancedBrackets, abiTypeString)
	}
	pos++

	var ac *typeComponent
	if mStr.Len() == 0 {
		ac = &typeComponent{
			cType:      DynamicArrayComponent,
			arrayChild: child,
		}
	} else {
		ac = &typeComponent{
			cType:      FixedArrayComponent,
			arrayChild: child,
		}
		if err := parseArrayM(ctx, abiTypeString, ac, mStr.String()); err != nil {
			return nil, err
		}
	}

	if pos < len(suffix) {
		return parseArrays(ctx, abiTypeString, ac, suffix[pos:])
	}
	return ac, nil
}

// isDynamicType reports whether a component's ABI encoding has a variable
// length (affects head/tail placement).
func isDynamicType(tc *typeComponent) bool {
	switch tc.cType {
	case TupleComponent:
		for _, childType := range tc.tupleChildren {
			if isDynamicType(childType) {
				return true
			}
		}
		return false
	case DynamicArrayComponent:
		return true
	case FixedArrayComponent:
		return isDynamicType(tc.arrayChild)
	case ElementaryComponent:
		tName := tc.elementaryType.name
		return tName == "string" || (tName == "bytes" && tc.elementarySuffix == "")
	default:
		return false
	}
}
