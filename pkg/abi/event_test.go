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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEventDataMixedIndexed(t *testing.T) {
	e := parseEntry(t, `{
		"type": "event",
		"name": "Transfer",
		"inputs": [
			{"name": "from", "type": "address", "indexed": true},
			{"name": "to", "type": "address", "indexed": true},
			{"name": "value", "type": "uint256", "indexed": false}
		]
	}`)

	topic0, err := e.TopicHash()
	assert.NoError(t, err)

	fromSlot := make([]byte, 32)
	fromSlot[31] = 0xaa
	toSlot := make([]byte, 32)
	toSlot[31] = 0xbb

	value := ParameterArray{{Name: "value", Type: "uint256"}}
	valueCV, err := value.ParseExternalData([]interface{}{"42"})
	assert.NoError(t, err)
	data, err := valueCV.EncodeABIData()
	assert.NoError(t, err)

	cv, err := e.DecodeEventData([][]byte{topic0, fromSlot, toSlot}, data)
	assert.NoError(t, err)

	assert.Equal(t, big.NewInt(0xaa), cv.Children[0].Value)
	assert.Equal(t, big.NewInt(0xbb), cv.Children[1].Value)
	assert.Equal(t, big.NewInt(42), cv.Children[2].Value)
}

func TestDecodeEventDataNotEnoughTopics(t *testing.T) {
	e := parseEntry(t, `{
		"type": "event",
		"name": "Transfer",
		"inputs": [{"name": "from", "type": "address", "indexed": true}]
	}`)
	_, err := e.DecodeEventData([][]byte{}, nil)
	assert.ErrorContains(t, err, "FF23093")
}

func TestDecodeEventDataDynamicIndexedIsTopicOnly(t *testing.T) {
	e := parseEntry(t, `{
		"type": "event",
		"name": "Logged",
		"inputs": [{"name": "tag", "type": "string", "indexed": true}]
	}`)
	topic0, err := e.TopicHash()
	assert.NoError(t, err)
	tagTopic := make([]byte, 32)
	tagTopic[0] = 0x01

	cv, err := e.DecodeEventData([][]byte{topic0, tagTopic}, nil)
	assert.NoError(t, err)
	assert.Equal(t, tagTopic, cv.Children[0].Value)
}

func TestDecodeEventDataSerializesThroughSerializer(t *testing.T) {
	e := parseEntry(t, `{
		"type": "event",
		"name": "Transfer",
		"inputs": [
			{"name": "from", "type": "address", "indexed": true},
			{"name": "to", "type": "address", "indexed": true},
			{"name": "value", "type": "uint256", "indexed": false}
		]
	}`)

	topic0, err := e.TopicHash()
	assert.NoError(t, err)

	fromSlot := make([]byte, 32)
	fromSlot[31] = 0xaa
	toSlot := make([]byte, 32)
	toSlot[31] = 0xbb

	value := ParameterArray{{Name: "value", Type: "uint256"}}
	valueCV, err := value.ParseExternalData([]interface{}{"42"})
	assert.NoError(t, err)
	data, err := valueCV.EncodeABIData()
	assert.NoError(t, err)

	cv, err := e.DecodeEventData([][]byte{topic0, fromSlot, toSlot}, data)
	assert.NoError(t, err)

	s := NewSerializer()
	out, err := s.SerializeInterfaceCtx(context.Background(), cv)
	assert.NoError(t, err)

	m, ok := out.(map[string]interface{})
	assert.True(t, ok, "expected decoded event to serialize as an object, got %T", out)
	assert.Equal(t, "00000000000000000000000000000000000000aa", m["from"])
	assert.Equal(t, "00000000000000000000000000000000000000bb", m["to"])
	assert.Equal(t, "42", m["value"])
}
