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

// slotBuffer accumulates 32 byte head/tail slots while an encode walk is in
// progress. Every element it is given is padded/truncated to 32 bytes before
// being appended, matching the EVM calling convention's fixed slot width.
type slotBuffer struct {
	slots [][]byte
}

func (sb *slotBuffer) writeSlot(b []byte) {
	slot := make([]byte, 32)
	copy(slot, b)
	sb.slots = append(sb.slots, slot)
}

func (sb *slotBuffer) writeBytes(b []byte) {
	for i := 0; i < len(b); i += 32 {
		end := i + 32
		if end > len(b) {
			end = len(b)
		}
		sb.writeSlot(b[i:end])
	}
}

func (sb *slotBuffer) len() int {
	return len(sb.slots) * 32
}

func (sb *slotBuffer) bytes() []byte {
	out := make([]byte, 0, sb.len())
	for _, s := range sb.slots {
		out = append(out, s...)
	}
	return out
}

// EncodeABIData serializes a value tree into ABI calling-convention bytes -
// the head/tail layout Solidity uses for function arguments, return values
// and tuples. cv must already have been bound (and typically validated)
// against a compiled type tree.
func (cv *ComponentValue) EncodeABIData() ([]byte, error) {
	return cv.EncodeABIDataCtx(context.Background())
}

func (cv *ComponentValue) EncodeABIDataCtx(ctx context.Context) ([]byte, error) {
	sb := &slotBuffer{}
	if err := encodeABIElement(ctx, "", sb, cv); err != nil {
		return nil, err
	}
	return sb.bytes(), nil
}

// encodeABIElement appends cv's encoding directly to sb - used for the
// top-level tuple (the parameter list itself) and for nested tuples/arrays
// that are statically sized, where there is no separate head/tail split at
// this level.
func encodeABIElement(ctx context.Context, breadcrumbs string, sb *slotBuffer, cv *ComponentValue) error {
	tc, ok := cv.Component.(*typeComponent)
	if !ok || tc == nil {
		return i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
	switch tc.cType {
	case ElementaryComponent:
		b, err := encodeElementaryValue(ctx, breadcrumbs, tc, cv.Value)
		if err != nil {
			return err
		}
		sb.writeSlot(b)
		return nil
	case TupleComponent:
		return encodeTupleChildren(ctx, breadcrumbs, sb, tc.tupleChildren, cv.Children)
	case FixedArrayComponent:
		return encodeFixedArrayChildren(ctx, breadcrumbs, sb, tc, cv.Children)
	case DynamicArrayComponent:
		return i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	default:
		return i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
}

// encodeHeadTailChild writes the head-slot contribution of one child
// (either its value inline, or a relative offset into the caller's own tail
// region) and returns the bytes that should be appended to that tail region.
func encodeHeadTailChild(ctx context.Context, breadcrumbs string, headSB *slotBuffer, tailBytesSoFar int, headSlotCount int, child *ComponentValue) (tail []byte, err error) {
	tc, ok := child.Component.(*typeComponent)
	if !ok || tc == nil {
		return nil, i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
	if !isDynamicType(tc) {
		tmp := &slotBuffer{}
		if err := encodeABIElement(ctx, breadcrumbs, tmp, child); err != nil {
			return nil, err
		}
		headSB.slots = append(headSB.slots, tmp.slots...)
		return nil, nil
	}
	offset := headSlotCount*32 + tailBytesSoFar
	off := new(big.Int).SetInt64(int64(offset))
	headSB.writeSlot(SerializeInt256TwosComplementBytes(off))
	tailBuf := &slotBuffer{}
	if err := encodeDynamicValue(ctx, breadcrumbs, tailBuf, child); err != nil {
		return nil, err
	}
	return tailBuf.bytes(), nil
}

// encodeTupleChildren implements the standard head/tail walk shared by the
// top level parameter list and nested tuples: static children go straight
// into the head, dynamic children leave a relative offset in the head and
// their data in the tail.
func encodeTupleChildren(ctx context.Context, breadcrumbs string, sb *slotBuffer, types []*typeComponent, children []*ComponentValue) error {
	if len(types) != len(children) {
		return i18n.NewError(ctx, abimsgs.MsgTupleArity, "tuple", len(types), len(children), breadcrumbs)
	}
	// The head size counts every slot of a static child (a static fixed
	// array or tuple takes more than one), and one slot per dynamic child.
	headSlots := 0
	for i, child := range children {
		if isDynamicType(types[i]) {
			headSlots++
			continue
		}
		tmp := &slotBuffer{}
		if err := encodeABIElement(ctx, tupleChildBreadcrumbs(breadcrumbs, types, i), tmp, child); err != nil {
			return err
		}
		headSlots += len(tmp.slots)
	}
	headSB := &slotBuffer{}
	var tails [][]byte
	tailLen := 0
	for i, child := range children {
		tail, err := encodeHeadTailChild(ctx, tupleChildBreadcrumbs(breadcrumbs, types, i), headSB, tailLen, headSlots, child)
		if err != nil {
			return err
		}
		tails = append(tails, tail)
		tailLen += len(tail)
	}
	sb.slots = append(sb.slots, headSB.slots...)
	for _, tail := range tails {
		sb.writeBytes(tail)
	}
	return nil
}

func encodeFixedArrayChildren(ctx context.Context, breadcrumbs string, sb *slotBuffer, tc *typeComponent, children []*ComponentValue) error {
	if len(children) != tc.arrayLength {
		return i18n.NewError(ctx, abimsgs.MsgFixedArrayArity, tc.String(), tc.arrayLength, len(children), breadcrumbs)
	}
	if !isDynamicType(tc.arrayChild) {
		for i, child := range children {
			if err := encodeABIElement(ctx, arrayChildBreadcrumbs(breadcrumbs, i), sb, child); err != nil {
				return err
			}
		}
		return nil
	}
	headSB := &slotBuffer{}
	var tails [][]byte
	tailLen := 0
	for i, child := range children {
		tail, err := encodeHeadTailChild(ctx, arrayChildBreadcrumbs(breadcrumbs, i), headSB, tailLen, tc.arrayLength, child)
		if err != nil {
			return err
		}
		tails = append(tails, tail)
		tailLen += len(tail)
	}
	sb.slots = append(sb.slots, headSB.slots...)
	for _, tail := range tails {
		sb.writeBytes(tail)
	}
	return nil
}

// encodeDynamicValue serializes a value known to be dynamically sized: a
// dynamic array (length-prefixed elements, head/tail among themselves), or a
// dynamic elementary type (bytes/string, length-prefixed raw bytes).
func encodeDynamicValue(ctx context.Context, breadcrumbs string, sb *slotBuffer, cv *ComponentValue) error {
	tc, ok := cv.Component.(*typeComponent)
	if !ok || tc == nil {
		return i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
	switch tc.cType {
	case DynamicArrayComponent:
		count := new(big.Int).SetInt64(int64(len(cv.Children)))
		sb.writeSlot(SerializeInt256TwosComplementBytes(count))
		headSB := &slotBuffer{}
		var tails [][]byte
		tailLen := 0
		for i, child := range cv.Children {
			tail, err := encodeHeadTailChild(ctx, arrayChildBreadcrumbs(breadcrumbs, i), headSB, tailLen, len(cv.Children), child)
			if err != nil {
				return err
			}
			tails = append(tails, tail)
			tailLen += len(tail)
		}
		sb.slots = append(sb.slots, headSB.slots...)
		for _, tail := range tails {
			sb.writeBytes(tail)
		}
		return nil
	case ElementaryComponent:
		b, err := encodeElementaryBytesLike(ctx, breadcrumbs, tc, cv.Value)
		if err != nil {
			return err
		}
		count := new(big.Int).SetInt64(int64(len(b)))
		sb.writeSlot(SerializeInt256TwosComplementBytes(count))
		sb.writeBytes(b)
		return nil
	default:
		return encodeABIElement(ctx, breadcrumbs, sb, cv)
	}
}

func encodeElementaryBytesLike(ctx context.Context, breadcrumbs string, tc *typeComponent, value interface{}) ([]byte, error) {
	switch tc.elementaryType {
	case ElementaryTypeBytes:
		b, ok := value.([]byte)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		return b, nil
	case ElementaryTypeString:
		s, ok := value.(string)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "string", value, value, breadcrumbs)
		}
		return []byte(s), nil
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownBaseType, tc.elementaryType, breadcrumbs)
	}
}

// encodeElementaryValue serializes a single 32 byte slot for every
// statically sized elementary type: int/uint/address/bool, or a fixed
// length bytesN (right-padded).
func encodeElementaryValue(ctx context.Context, breadcrumbs string, tc *typeComponent, value interface{}) ([]byte, error) {
	switch tc.elementaryType {
	case ElementaryTypeInt:
		i, ok := value.(*big.Int)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if !checkSignedIntFits(i, tc.m) {
			return nil, i18n.NewError(ctx, abimsgs.MsgIntegerOutOfRange, tc.String(), breadcrumbs)
		}
		return SerializeInt256TwosComplementBytes(i), nil
	case ElementaryTypeUint:
		i, ok := value.(*big.Int)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if i.Sign() < 0 || i.BitLen() > int(tc.m) {
			return nil, i18n.NewError(ctx, abimsgs.MsgIntegerOutOfRange, tc.String(), breadcrumbs)
		}
		b := make([]byte, 32)
		return i.FillBytes(b), nil
	case ElementaryTypeAddress:
		i, ok := value.(*big.Int)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if i.Sign() < 0 || i.BitLen() > 160 {
			return nil, i18n.NewError(ctx, abimsgs.MsgAddressLengthWrong, breadcrumbs, (i.BitLen()+7)/8)
		}
		b := make([]byte, 32)
		return i.FillBytes(b), nil
	case ElementaryTypeBool:
		bv, ok := value.(bool)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, "bool", value, value, breadcrumbs)
		}
		b := make([]byte, 32)
		if bv {
			b[31] = 1
		}
		return b, nil
	case ElementaryTypeBytes:
		b, ok := value.([]byte)
		if !ok {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongShapeForType, tc.String(), value, value, breadcrumbs)
		}
		if len(b) != int(tc.m) {
			return nil, i18n.NewError(ctx, abimsgs.MsgBytesLengthWrong, int(tc.m), tc.String(), len(b), breadcrumbs)
		}
		slot := make([]byte, 32)
		copy(slot, b)
		return slot, nil
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownBaseType, tc.elementaryType, breadcrumbs)
	}
}
