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

package ethtypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressCheckSum(t *testing.T) {

	testStruct := struct {
		Addr1 Address `json:"addr1"`
		Addr2 Address `json:"addr2"`
	}{}

	testData := `{
		"addr1": "0x3CCb85578722B5B9250C1a76b4967166a6Ff7B8b",
		"addr2": "162534E1aE19712499CE4CB05263D074D7F7aF90"
	}`

	err := json.Unmarshal([]byte(testData), &testStruct)
	assert.NoError(t, err)

	assert.Equal(t, "0x3CCb85578722B5B9250C1a76b4967166a6Ff7B8b", testStruct.Addr1.String())
	assert.Equal(t, "0x162534E1aE19712499CE4CB05263D074D7F7aF90", testStruct.Addr2.String())
	assert.Equal(t, "3ccb85578722b5b9250c1a76b4967166a6ff7b8b", testStruct.Addr1.PlainHex())

	jsonSerialized, err := json.Marshal(&testStruct)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"addr1": "0x3CCb85578722B5B9250C1a76b4967166a6Ff7B8b",
		"addr2": "0x162534E1aE19712499CE4CB05263D074D7F7aF90"
	}`, string(jsonSerialized))
}

func TestAddressFailLen(t *testing.T) {

	testStruct := struct {
		Addr1 Address `json:"addr1"`
	}{}

	testData := `{
		"addr1": "0x00"
	}`

	err := json.Unmarshal([]byte(testData), &testStruct)
	assert.Regexp(t, "FF23042", err)
}

func TestAddressFailNonHex(t *testing.T) {

	testStruct := struct {
		Addr1 Address `json:"addr1"`
	}{}

	testData := `{
		"addr1": "wrong"
	}`

	err := json.Unmarshal([]byte(testData), &testStruct)
	assert.Regexp(t, "FF23042", err)
}

func TestAddressFailNonString(t *testing.T) {

	testStruct := struct {
		Addr1 Address `json:"addr1"`
	}{}

	testData := `{
		"addr1": {}
	}`

	err := json.Unmarshal([]byte(testData), &testStruct)
	assert.Error(t, err)
}

func TestNewAddressConstructors(t *testing.T) {
	a, err := NewAddress("0x162534E1aE19712499CE4CB05263D074D7F7aF90")
	assert.NoError(t, err)
	assert.Equal(t, "0x162534E1aE19712499CE4CB05263D074D7F7aF90", a.String())

	assert.Panics(t, func() {
		MustNewAddress("not-hex")
	})
}
