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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorKnownValue(t *testing.T) {
	// transfer(address,uint256) - the well known ERC-20 selector.
	e := parseEntry(t, `{
		"type": "function",
		"name": "transfer",
		"inputs": [{"name": "to", "type": "address"}, {"name": "value", "type": "uint256"}]
	}`)
	sig, err := e.Signature()
	assert.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", sig)
	assert.Equal(t, "a9059cbb", e.ID())
}

func TestTopicHashAndAnonymous(t *testing.T) {
	e := parseEntry(t, `{
		"type": "event",
		"name": "Transfer",
		"inputs": [
			{"name": "from", "type": "address", "indexed": true},
			{"name": "to", "type": "address", "indexed": true},
			{"name": "value", "type": "uint256", "indexed": false}
		]
	}`)
	topic, err := e.TopicHash()
	assert.NoError(t, err)
	assert.Len(t, topic, 32)
	topicAgain, err := e.TopicHash()
	assert.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(topic), hex.EncodeToString(topicAgain))

	e.Anonymous = true
	_, err = e.TopicHash()
	assert.ErrorContains(t, err, "FF23092")
}

func TestSolidityDef(t *testing.T) {
	e := parseEntry(t, `{
		"type": "function",
		"name": "approve",
		"stateMutability": "nonpayable",
		"inputs": [{"name": "spender", "type": "address"}, {"name": "amount", "type": "uint256"}],
		"outputs": [{"name": "", "type": "bool"}]
	}`)
	def, err := e.SolidityDef()
	assert.NoError(t, err)
	assert.Equal(t, "function approve(address spender, uint256 amount) returns (bool)", def)
}

func TestIndexedOnlyAllowedOnEvents(t *testing.T) {
	e := &Entry{
		Type:   Function,
		Name:   "foo",
		Inputs: ParameterArray{{Name: "a", Type: "uint256", Indexed: true}},
	}
	err := e.Validate()
	assert.ErrorContains(t, err, "FF23011")
}
