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

import "math/big"

var singleBit = big.NewInt(1)
var oneMoreThanMaxUint256 = new(big.Int).Lsh(singleBit, 256)             // 2^256
var fullBits256 = new(big.Int).Sub(oneMoreThanMaxUint256, big.NewInt(1)) // all ones for 256 bits
var oneThen255Zeros = new(big.Int).Lsh(singleBit, 255)

// checkSignedIntFits reports whether i fits in a signed integer of bits bits
// (two's complement range [-2^(bits-1), 2^(bits-1)-1]).
func checkSignedIntFits(i *big.Int, bits uint16) bool {
	max := new(big.Int).Lsh(singleBit, uint(bits-1))
	min := new(big.Int).Neg(max)
	return i.Cmp(min) >= 0 && i.Cmp(new(big.Int).Sub(max, singleBit)) <= 0
}

// SerializeInt256TwosComplementBytes renders i (positive or negative) as a
// 32 byte two's complement big-endian slot.
func SerializeInt256TwosComplementBytes(i *big.Int) []byte {
	// Go has no direct two's complement byte serialization, but AND against
	// a full-ones mask yields the bit pattern we want for the width we pick.
	tcI := new(big.Int).And(i, fullBits256)
	b := make([]byte, 32)
	return tcI.FillBytes(b)
}

// ParseInt256TwosComplementBytes interprets a 32 byte big-endian slot as a
// two's complement signed integer.
func ParseInt256TwosComplementBytes(b []byte) *big.Int {
	i := new(big.Int).SetBytes(b)
	if i.Cmp(oneThen255Zeros) < 0 {
		return i
	}
	i.Sub(i, oneMoreThanMaxUint256)
	return i
}
