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

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// DecodeEventData reconstructs an event's parameter value tree from its log
// topics and data. Non-indexed parameters are decoded from data in the
// normal head/tail way; indexed parameters of a static type are decoded
// directly from their topic slot. An indexed parameter of a dynamic type
// (string, bytes, array or tuple) only has its topic hash available in the
// log - EVM events never emit the original value for those, so the returned
// ComponentValue carries the raw 32 byte topic hash instead.
func (e *Entry) DecodeEventData(topics [][]byte, data []byte) (*ComponentValue, error) {
	return e.DecodeEventDataCtx(context.Background(), topics, data)
}

func (e *Entry) DecodeEventDataCtx(ctx context.Context, topics [][]byte, data []byte) (*ComponentValue, error) {
	topicIdx := 0
	if !e.Anonymous {
		topicIdx = 1 // topics[0] is the event selector topic hash
	}

	var nonIndexed ParameterArray
	for _, p := range e.Inputs {
		if !p.Indexed {
			nonIndexed = append(nonIndexed, p)
		}
	}
	dataCV, err := nonIndexed.DecodeABIDataCtx(ctx, data, 0)
	if err != nil {
		return nil, err
	}

	tupleType, err := e.Inputs.TypeComponentTreeCtx(ctx)
	if err != nil {
		return nil, err
	}
	result := &ComponentValue{
		Component: tupleType,
		Children:  make([]*ComponentValue, len(e.Inputs)),
	}
	dataChildIdx := 0
	for i, p := range e.Inputs {
		if !p.Indexed {
			result.Children[i] = dataCV.Children[dataChildIdx]
			dataChildIdx++
			continue
		}
		if topicIdx >= len(topics) {
			return nil, i18n.NewError(ctx, abimsgs.MsgNotEnoughTopics, e.Name, countIndexed(e.Inputs), len(topics))
		}
		topic := topics[topicIdx]
		topicIdx++

		tc, err := p.typeComponentTreeCtx(ctx)
		if err != nil {
			return nil, err
		}
		if isDynamicType(tc) {
			result.Children[i] = &ComponentValue{Component: tc, Leaf: true, Value: topic}
			continue
		}
		_, cv, err := decodeABIElement(ctx, p.Name, topic, 0, 0, tc)
		if err != nil {
			return nil, err
		}
		result.Children[i] = cv
	}
	return result, nil
}

func countIndexed(pa ParameterArray) int {
	n := 0
	for _, p := range pa {
		if p.Indexed {
			n++
		}
	}
	return n
}
