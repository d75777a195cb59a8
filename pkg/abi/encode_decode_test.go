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
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseEntry(t *testing.T, j string) *Entry {
	var e Entry
	assert.NoError(t, json.Unmarshal([]byte(j), &e))
	assert.NoError(t, e.Validate())
	return &e
}

func TestEncodeDecodeSimpleFunction(t *testing.T) {
	e := parseEntry(t, `{
		"type": "function",
		"name": "transfer",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	}`)

	cv, err := e.Inputs.ParseExternalData(map[string]interface{}{
		"to":     "0x0102030405060708091011121314151617181920",
		"amount": "1000000000000000000",
	})
	assert.NoError(t, err)
	assert.NoError(t, cv.ValidateValue())

	data, err := e.EncodeCallData(cv)
	assert.NoError(t, err)
	assert.Len(t, data, 4+32+32)

	decoded, err := e.DecodeABIInputs(data)
	assert.NoError(t, err)

	s := NewSerializer()
	out, err := s.SerializeInterface(decoded)
	assert.NoError(t, err)
	m := out.(map[string]interface{})
	assert.Equal(t, "1000000000000000000", m["amount"])
}

func TestEncodeDecodeDynamicArrayOfStrings(t *testing.T) {
	pa := ParameterArray{{Name: "items", Type: "string[]"}}
	assert.NoError(t, pa.Validate())

	cv, err := pa.ParseExternalData([]interface{}{
		[]interface{}{"hello", "world", "!"},
	})
	assert.NoError(t, err)

	b, err := cv.EncodeABIData()
	assert.NoError(t, err)

	decoded, err := pa.DecodeABIData(b, 0)
	assert.NoError(t, err)

	s := NewSerializer()
	s.SetFormattingMode(FormatAsFlatArrays)
	out, err := s.SerializeInterface(decoded)
	assert.NoError(t, err)
	arr := out.([]interface{})
	items := arr[0].([]interface{})
	assert.Equal(t, []interface{}{"hello", "world", "!"}, items)
}

func TestEncodeDecodeNestedTuple(t *testing.T) {
	pa := ParameterArray{{
		Name: "order",
		Type: "tuple",
		Components: ParameterArray{
			{Name: "id", Type: "uint256"},
			{Name: "tags", Type: "bytes32[2]"},
		},
	}}
	assert.NoError(t, pa.Validate())

	cv, err := pa.ParseExternalData([]interface{}{
		map[string]interface{}{
			"id": 42,
			"tags": []interface{}{
				"0x0100000000000000000000000000000000000000000000000000000000000000",
				"0x0200000000000000000000000000000000000000000000000000000000000000",
			},
		},
	})
	assert.NoError(t, err)
	assert.NoError(t, cv.ValidateValue())

	b, err := cv.EncodeABIData()
	assert.NoError(t, err)
	assert.Len(t, b, 32*3) // static tuple: id + 2 fixed bytes32 slots

	decoded, err := pa.DecodeABIData(b, 0)
	assert.NoError(t, err)

	s := NewSerializer()
	out, err := s.SerializeInterface(decoded)
	assert.NoError(t, err)
	m := out.(map[string]interface{})
	order := m["order"].(map[string]interface{})
	assert.Equal(t, "42", order["id"])
}

func TestEncodeDecodeNestedTupleWithDynamicField(t *testing.T) {
	pa := ParameterArray{
		{Name: "flag", Type: "bool"},
		{Name: "order", Type: "tuple", Components: ParameterArray{
			{Name: "id", Type: "string"},
			{Name: "balance", Type: "uint256"},
		}},
	}
	assert.NoError(t, pa.Validate())

	cv, err := pa.ParseExternalData([]interface{}{
		true,
		map[string]interface{}{
			"id":      "order-42",
			"balance": "7",
		},
	})
	assert.NoError(t, err)
	assert.NoError(t, cv.ValidateValue())

	b, err := cv.EncodeABIData()
	assert.NoError(t, err)

	decoded, err := pa.DecodeABIData(b, 0)
	assert.NoError(t, err)

	s := NewSerializer()
	out, err := s.SerializeInterface(decoded)
	assert.NoError(t, err)
	m := out.(map[string]interface{})
	assert.Equal(t, true, m["flag"])
	order := m["order"].(map[string]interface{})
	assert.Equal(t, "order-42", order["id"])
	assert.Equal(t, "7", order["balance"])
}

func TestEncodeDecodeArrayOfDynamicTuples(t *testing.T) {
	pa := ParameterArray{{
		Name: "orders", Type: "tuple[]",
		Components: ParameterArray{
			{Name: "id", Type: "string"},
			{Name: "balance", Type: "uint256"},
		},
	}}
	assert.NoError(t, pa.Validate())

	cv, err := pa.ParseExternalData([]interface{}{
		[]interface{}{
			map[string]interface{}{"id": "a", "balance": "1"},
			map[string]interface{}{"id": "bb", "balance": "2"},
		},
	})
	assert.NoError(t, err)
	assert.NoError(t, cv.ValidateValue())

	b, err := cv.EncodeABIData()
	assert.NoError(t, err)

	decoded, err := pa.DecodeABIData(b, 0)
	assert.NoError(t, err)

	s := NewSerializer()
	s.SetFormattingMode(FormatAsFlatArrays)
	out, err := s.SerializeInterface(decoded)
	assert.NoError(t, err)
	arr := out.([]interface{})
	orders := arr[0].([]interface{})
	assert.Len(t, orders, 2)
	first := orders[0].([]interface{})
	assert.Equal(t, "a", first[0])
	assert.Equal(t, "1", first[1])
	second := orders[1].([]interface{})
	assert.Equal(t, "bb", second[0])
	assert.Equal(t, "2", second[1])
}

func TestValidateValueBreadcrumbsIdentifyNestedField(t *testing.T) {
	pa := ParameterArray{{
		Name: "order", Type: "tuple",
		Components: ParameterArray{
			{Name: "id", Type: "uint256"},
			{Name: "amount", Type: "uint8"},
		},
	}}
	assert.NoError(t, pa.Validate())

	cv, err := pa.ParseExternalData([]interface{}{
		map[string]interface{}{"id": "1", "amount": "1000"},
	})
	assert.NoError(t, err)

	err = cv.ValidateValue()
	assert.Error(t, err)
	assert.ErrorContains(t, err, ".order.amount")
}

func TestDecodeOffsetOutOfBounds(t *testing.T) {
	pa := ParameterArray{{Name: "v", Type: "uint256"}}
	assert.NoError(t, pa.Validate())
	_, err := pa.DecodeABIData([]byte{0x01, 0x02}, 0)
	assert.ErrorContains(t, err, "FF23060")
}

func TestEncodeIntegerOutOfRange(t *testing.T) {
	pa := ParameterArray{{Name: "v", Type: "uint8"}}
	assert.NoError(t, pa.Validate())
	cv, err := pa.ParseExternalData([]interface{}{"1000"})
	assert.NoError(t, err)
	assert.ErrorContains(t, cv.ValidateValue(), "FF23040")
	_, err = cv.EncodeABIData()
	assert.ErrorContains(t, err, "FF23040")
}

func TestEncodePackedConcatenatesNoPadding(t *testing.T) {
	pa := ParameterArray{{Name: "a", Type: "uint8"}, {Name: "b", Type: "bool"}}
	assert.NoError(t, pa.Validate())
	cv, err := pa.ParseExternalData([]interface{}{7, true})
	assert.NoError(t, err)

	b, err := cv.EncodeABIDataPacked()
	assert.NoError(t, err)
	assert.Equal(t, "0701", hex.EncodeToString(b))
}

func TestEncodePackedRejectsTuple(t *testing.T) {
	pa := ParameterArray{{
		Name: "t", Type: "tuple",
		Components: ParameterArray{{Name: "a", Type: "uint256"}},
	}}
	assert.NoError(t, pa.Validate())
	cv, err := pa.ParseExternalData([]interface{}{map[string]interface{}{"a": 1}})
	assert.NoError(t, err)
	_, err = cv.EncodeABIDataPacked()
	assert.ErrorContains(t, err, "FF23050")
}
