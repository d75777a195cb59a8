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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementaryTypeInfoRules(t *testing.T) {
	assert.Equal(t, "int<M> (8 <= M <= 256) (M mod 8 == 0) (int == int256)", ElementaryTypeInt.String())
	assert.Equal(t, "uint<M> (8 <= M <= 256) (M mod 8 == 0) (uint == uint256)", ElementaryTypeUint.String())
	assert.Equal(t, "address", ElementaryTypeAddress.String())
	assert.Equal(t, "bool", ElementaryTypeBool.String())
	assert.Equal(t, "bytes / bytes<M> (1 <= M <= 32)", ElementaryTypeBytes.String())
	assert.Equal(t, "string", ElementaryTypeString.String())
}

func TestParseSimpleTypes(t *testing.T) {
	for _, typ := range []string{"uint256", "int8", "address", "bool", "bytes32", "bytes", "string"} {
		p := &Parameter{Name: "v", Type: typ}
		tc, err := p.parseABIParameterComponents(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, typ, tc.String())
	}
}

func TestParseUintDefaultSuffix(t *testing.T) {
	p := &Parameter{Name: "v", Type: "uint"}
	tc, err := p.parseABIParameterComponents(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "uint256", tc.String())
}

func TestParseArrays(t *testing.T) {
	p := &Parameter{Name: "v", Type: "uint256[3][]"}
	tc, err := p.parseABIParameterComponents(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "uint256[3][]", tc.String())
	assert.Equal(t, DynamicArrayComponent, tc.cType)
	assert.Equal(t, FixedArrayComponent, tc.arrayChild.cType)
	assert.Equal(t, 3, tc.arrayChild.arrayLength)
}

func TestParseTuple(t *testing.T) {
	p := &Parameter{
		Name: "v",
		Type: "tuple",
		Components: ParameterArray{
			{Name: "a", Type: "uint256"},
			{Name: "b", Type: "string"},
		},
	}
	tc, err := p.parseABIParameterComponents(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "(uint256,string)", tc.String())
	assert.Equal(t, "a", tc.tupleChildren[0].keyName)
}

func TestParseEmptyTupleFails(t *testing.T) {
	p := &Parameter{Name: "v", Type: "tuple"}
	_, err := p.parseABIParameterComponents(context.Background())
	assert.ErrorContains(t, err, "FF23007")
}

func TestParseUnknownType(t *testing.T) {
	p := &Parameter{Name: "v", Type: "fixed128x18"}
	_, err := p.parseABIParameterComponents(context.Background())
	assert.ErrorContains(t, err, "FF23000")
}

func TestParseBadSizeSuffix(t *testing.T) {
	p := &Parameter{Name: "v", Type: "uint7"}
	_, err := p.parseABIParameterComponents(context.Background())
	assert.ErrorContains(t, err, "FF23001")
}

func TestIsDynamicType(t *testing.T) {
	tc, err := (&Parameter{Type: "string"}).parseABIParameterComponents(context.Background())
	assert.NoError(t, err)
	assert.True(t, isDynamicType(tc))

	tc, err = (&Parameter{Type: "uint256[4]"}).parseABIParameterComponents(context.Background())
	assert.NoError(t, err)
	assert.False(t, isDynamicType(tc))

	tc, err = (&Parameter{Type: "string[4]"}).parseABIParameterComponents(context.Background())
	assert.NoError(t, err)
	assert.True(t, isDynamicType(tc))
}
