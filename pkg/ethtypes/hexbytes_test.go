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

func TestHexBytes(t *testing.T) {

	testStruct := struct {
		H1 HexBytes `json:"h1"`
		H2 HexBytes `json:"h2"`
	}{}

	testData := `{
		"h1": "0xabcd1234",
		"h2": "FEEDBEEF"
	}`

	err := json.Unmarshal([]byte(testData), &testStruct)
	assert.NoError(t, err)

	assert.Equal(t, "0xabcd1234", testStruct.H1.String())
	assert.Equal(t, "0xfeedbeef", testStruct.H2.String())

	jsonSerialized, err := json.Marshal(&testStruct)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"h1": "0xabcd1234",
		"h2": "0xfeedbeef"
	}`, string(jsonSerialized))
}

func TestHexBytesFailNonHex(t *testing.T) {

	testStruct := struct {
		H1 HexBytes `json:"h1"`
	}{}

	testData := `{
		"h1": "wrong"
	}`

	err := json.Unmarshal([]byte(testData), &testStruct)
	assert.Regexp(t, "FF23041", err)
}

func TestHexBytesFailNonString(t *testing.T) {

	testStruct := struct {
		H1 HexBytes `json:"h1"`
	}{}

	testData := `{
		"h1": {}
	}`

	err := json.Unmarshal([]byte(testData), &testStruct)
	assert.Error(t, err)
}

func TestHexBytesConstructor(t *testing.T) {
	assert.Equal(t, HexBytes{0x01, 0x02}, MustNewHexBytes("0x0102"))
	assert.Panics(t, func() {
		MustNewHexBytes("!wrong")
	})
}
