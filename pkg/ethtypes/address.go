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
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
	"golang.org/x/crypto/sha3"

	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Address is a 20 byte Ethereum address. It marshals to JSON using the EIP-55
// mixed-case checksum encoding, and unmarshals from a JSON string of hex with
// or without the 0x prefix. The ABI decoder does not produce this type:
// decoded "address" values are *big.Int.
type Address [20]byte

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return a.SetStringCtx(nil, s)
}

// SetStringCtx parses s (with or without 0x prefix) into the address.
func (a *Address) SetStringCtx(ctx i18n.Ctx, s string) error {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return i18n.WrapError(ctx, err, abimsgs.MsgAddressLengthWrong, s, 0)
	}
	if len(b) != 20 {
		return i18n.NewError(ctx, abimsgs.MsgAddressLengthWrong, s, len(b))
	}
	copy(a[0:20], b)
	return nil
}

// SetString is the context-free convenience form of SetStringCtx.
func (a *Address) SetString(s string) error {
	return a.SetStringCtx(nil, s)
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// String renders the EIP-55 mixed-case checksum address.
// https://eips.ethereum.org/EIPS/eip-55
func (a Address) String() string {
	hexAddr := hex.EncodeToString(a[0:20])
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(hexAddr))
	hexHash := hex.EncodeToString(hash.Sum(nil))

	buff := strings.Builder{}
	buff.WriteString("0x")
	for i := 0; i < 40; i++ {
		hexHashDigit, _ := strconv.ParseInt(string([]byte{hexHash[i]}), 16, 64)
		if hexHashDigit >= 8 {
			buff.WriteRune(unicode.ToUpper(rune(hexAddr[i])))
		} else {
			buff.WriteRune(unicode.ToLower(rune(hexAddr[i])))
		}
	}
	return buff.String()
}

// PlainHex renders the address as lower-case hex without a 0x prefix or checksum.
func (a Address) PlainHex() string {
	return hex.EncodeToString(a[0:20])
}

// Bytes returns a copy of the 20 raw bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, 20)
	copy(b, a[:])
	return b
}

func NewAddress(s string) (*Address, error) {
	return NewAddressCtx(nil, s)
}

func NewAddressCtx(ctx i18n.Ctx, s string) (*Address, error) {
	a := new(Address)
	return a, a.SetStringCtx(ctx, s)
}

func MustNewAddress(s string) *Address {
	a, err := NewAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}
