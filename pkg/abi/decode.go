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
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

type strictDecodeKey struct{}

// WithStrictDecoding controls whether the decoder rejects a non-zero high
// byte pattern in a bool slot (strict == true, the default behaviour when no
// value has been set in ctx) or silently treats any non-zero slot as true.
func WithStrictDecoding(ctx context.Context, strict bool) context.Context {
	return context.WithValue(ctx, strictDecodeKey{}, strict)
}

func isStrictDecoding(ctx context.Context) bool {
	v := ctx.Value(strictDecodeKey{})
	if v == nil {
		return true
	}
	return v.(bool)
}

// maxSaneArrayCount bounds array/bytes length fields read from untrusted
// buffers so a crafted large count cannot trigger a huge allocation attempt.
const maxSaneArrayCount = 1 << 24

// decodeABIElement is the main entry point: it looks at the component kind
// in hand, and determines whether to consume data from the head and/or tail
// depending on whether the type is statically or dynamically sized.
func decodeABIElement(ctx context.Context, breadcrumbs string, block []byte, headStart, headPosition int, component *typeComponent) (headBytesRead int, cv *ComponentValue, err error) {
	switch component.cType {
	case ElementaryComponent:
		cv, err := decodeElementaryValue(ctx, breadcrumbs, block, headStart, headPosition, component)
		if err != nil {
			return -1, nil, err
		}
		return 32, cv, err
	case FixedArrayComponent:
		headBytesRead, cv, err := decodeABIFixedArrayBytes(ctx, breadcrumbs, block, headStart, headPosition, component)
		if err != nil {
			return -1, nil, err
		}
		return headBytesRead, cv, err
	case DynamicArrayComponent:
		dataOffset, err := decodeABILength(ctx, breadcrumbs, block, headPosition)
		if err != nil {
			return -1, nil, err
		}
		dataOffset = headStart + dataOffset
		cv, err := decodeABIDynamicArrayBytes(ctx, breadcrumbs, block, dataOffset, component)
		if err != nil {
			return -1, nil, err
		}
		return 32, cv, err
	case TupleComponent:
		if isDynamicType(component) {
			if headPosition+32 > len(block) {
				return -1, nil, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, headPosition, breadcrumbs, len(block))
			}
			offset := int(binary.BigEndian.Uint64(block[headPosition+24 : headPosition+32]))
			absOffset := headStart + offset
			if absOffset > len(block) {
				return -1, nil, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, absOffset, breadcrumbs, len(block))
			}
			_, cv, err := walkTupleABIBytes(ctx, breadcrumbs, block, absOffset, absOffset, component)
			if err != nil {
				return -1, nil, err
			}
			return 32, cv, nil
		}
		return walkTupleABIBytes(ctx, breadcrumbs, block, headStart, headPosition, component)
	default:
		return -1, nil, i18n.NewError(ctx, abimsgs.MsgUnparsedType, breadcrumbs)
	}
}

func decodeElementaryValue(ctx context.Context, desc string, block []byte, headStart, headPosition int, component *typeComponent) (cv *ComponentValue, err error) {
	switch component.elementaryType {
	case ElementaryTypeInt:
		return decodeABISignedInt(ctx, desc, block, headPosition, component)
	case ElementaryTypeUint, ElementaryTypeAddress:
		return decodeABIUnsignedInt(ctx, desc, block, headPosition, component)
	case ElementaryTypeBool:
		return decodeABIBool(ctx, desc, block, headPosition, component)
	case ElementaryTypeBytes:
		return decodeABIBytes(ctx, desc, block, headStart, headPosition, component)
	case ElementaryTypeString:
		return decodeABIString(ctx, desc, block, headStart, headPosition, component)
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownBaseType, component.elementaryType, desc)
	}
}

func decodeABISignedInt(ctx context.Context, desc string, block []byte, headPosition int, component *typeComponent) (cv *ComponentValue, err error) {
	cv = &ComponentValue{Component: component, Leaf: true}
	if headPosition+32 > len(block) {
		return nil, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, headPosition, desc, len(block))
	}
	cv.Value = ParseInt256TwosComplementBytes(block[headPosition : headPosition+32])
	return cv, nil
}

func decodeABIUnsignedInt(ctx context.Context, desc string, block []byte, headPosition int, component *typeComponent) (cv *ComponentValue, err error) {
	cv = &ComponentValue{Component: component, Leaf: true}
	if headPosition+32 > len(block) {
		return nil, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, headPosition, desc, len(block))
	}
	cv.Value = new(big.Int).SetBytes(block[headPosition : headPosition+32])
	return cv, nil
}

func decodeABIBool(ctx context.Context, desc string, block []byte, headPosition int, component *typeComponent) (cv *ComponentValue, err error) {
	if headPosition+32 > len(block) {
		return nil, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, headPosition, desc, len(block))
	}
	slot := block[headPosition : headPosition+32]
	nonZero := false
	for _, b := range slot[:31] {
		if b != 0 {
			nonZero = true
			break
		}
	}
	if nonZero && isStrictDecoding(ctx) {
		return nil, i18n.NewError(ctx, abimsgs.MsgDecodeBoolMalformed, desc)
	}
	return &ComponentValue{Component: component, Leaf: true, Value: slot[31] != 0}, nil
}

func decodeABILength(ctx context.Context, desc string, block []byte, offset int) (count int, err error) {
	if offset+32 > len(block) {
		return -1, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, offset, desc, len(block))
	}
	i := new(big.Int).SetBytes(block[offset : offset+32])
	if i.BitLen() > 32 {
		return -1, i18n.NewError(ctx, abimsgs.MsgDecodeCountTooLarge, desc)
	}
	count = int(i.Int64())
	if count > maxSaneArrayCount {
		return -1, i18n.NewError(ctx, abimsgs.MsgDecodeArrayCountHuge, i.Text(10), desc)
	}
	return count, nil
}

func decodeABIBytes(ctx context.Context, desc string, block []byte, headStart, headPosition int, component *typeComponent) (cv *ComponentValue, err error) {
	var byteLength int
	dataOffset := headPosition
	if component.m == 0 {
		dataOffset, err = decodeABILength(ctx, desc, block, headPosition)
		if err != nil {
			return nil, err
		}
		dataOffset = headStart + dataOffset
		byteLength, err = decodeABILength(ctx, desc, block, dataOffset)
		if err != nil {
			return nil, err
		}
		dataOffset += 32
	} else {
		byteLength = int(component.m)
	}
	if dataOffset+byteLength > len(block) {
		return nil, i18n.NewError(ctx, abimsgs.MsgDecodeLengthOutOfBounds, byteLength, desc, len(block)-dataOffset)
	}
	b := make([]byte, byteLength)
	copy(b, block[dataOffset:])
	return &ComponentValue{Component: component, Leaf: true, Value: b}, nil
}

func decodeABIString(ctx context.Context, desc string, block []byte, headStart, headPosition int, component *typeComponent) (cv *ComponentValue, err error) {
	cv, err = decodeABIBytes(ctx, desc, block, headStart, headPosition, component)
	if err != nil {
		return nil, err
	}
	cv.Value = string(cv.Value.([]byte))
	return cv, nil
}

// decodeABIFixedArrayBytes decodes a fixed-length array. A fixed array of a
// static type is laid out inline in the head; a fixed array of a dynamic
// type carries a single head offset and lays its elements out as their own
// tail region, in the same way a dynamic array does.
func decodeABIFixedArrayBytes(ctx context.Context, breadcrumbs string, block []byte, headStart, headPosition int, component *typeComponent) (headBytesRead int, cv *ComponentValue, err error) {
	cv = &ComponentValue{
		Component: component,
		Children:  make([]*ComponentValue, component.arrayLength),
	}

	if isDynamicType(component.arrayChild) {
		if headPosition+32 > len(block) {
			return -1, nil, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, headPosition, breadcrumbs, len(block))
		}
		offset := int(binary.BigEndian.Uint64(block[headPosition+24 : headPosition+32]))
		absOffset := headStart + offset
		if absOffset > len(block) {
			return -1, nil, i18n.NewError(ctx, abimsgs.MsgDecodeOffsetOutOfBounds, absOffset, breadcrumbs, len(block))
		}
		elemPos := 0
		for i := 0; i < component.arrayLength; i++ {
			childHeadBytes, child, err := decodeABIElement(ctx, fmt.Sprintf("%s[fix,i:%d]", breadcrumbs, i),
				block, absOffset, absOffset+elemPos, component.arrayChild)
			if err != nil {
				return -1, nil, err
			}
			cv.Children[i] = child
			elemPos += childHeadBytes
		}
		return 32, cv, nil
	}

	if headPosition+32*component.arrayLength > len(block) {
		return -1, nil, i18n.NewError(ctx, abimsgs.MsgDecodeLengthOutOfBounds, 32*component.arrayLength, breadcrumbs, len(block)-headPosition)
	}
	headBytesRead = 0
	for i := 0; i < component.arrayLength; i++ {
		childHeadBytes, child, err := decodeABIElement(ctx, fmt.Sprintf("%s[fix,i:%d]", breadcrumbs, i),
			block, headStart, headPosition, component.arrayChild)
		if err != nil {
			return -1, nil, err
		}
		cv.Children[i] = child
		headBytesRead += childHeadBytes
		headPosition += childHeadBytes
	}
	return headBytesRead, cv, nil
}

func decodeABIDynamicArrayBytes(ctx context.Context, breadcrumbs string, block []byte, dataOffset int, component *typeComponent) (cv *ComponentValue, err error) {
	arrayLength, err := decodeABILength(ctx, breadcrumbs, block, dataOffset)
	if err != nil {
		return nil, err
	}
	dataOffset += 32
	dataStart := dataOffset
	cv = &ComponentValue{
		Component: component,
		Children:  make([]*ComponentValue, arrayLength),
	}
	for i := 0; i < arrayLength; i++ {
		childHeadBytes, child, err := decodeABIElement(ctx, fmt.Sprintf("%s[dyn,i:%d]", breadcrumbs, i),
			block, dataStart, dataOffset, component.arrayChild)
		if err != nil {
			return nil, err
		}
		cv.Children[i] = child
		dataOffset += childHeadBytes
	}
	return cv, nil
}

func walkTupleABIBytes(ctx context.Context, breadcrumbs string, block []byte, headStart, headPosition int, component *typeComponent) (headBytesRead int, cv *ComponentValue, err error) {
	cv = &ComponentValue{
		Component: component,
		Children:  make([]*ComponentValue, len(component.tupleChildren)),
	}
	headBytesRead = 0
	for i, child := range component.tupleChildren {
		childHeadBytes, childCv, err := decodeABIElement(ctx, fmt.Sprintf("%s.%d", breadcrumbs, i),
			block, headStart, headPosition, child)
		if err != nil {
			return -1, nil, err
		}
		cv.Children[i] = childCv
		headBytesRead += childHeadBytes
		headPosition += childHeadBytes
	}
	return headBytesRead, cv, nil
}
