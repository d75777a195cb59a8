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
	"encoding/hex"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
	"golang.org/x/crypto/sha3"
)

// keccak256 is the sole hashing collaborator this codec relies on - selector
// and topic derivation are defined in terms of it, nothing else.
func keccak256(ctx context.Context, b []byte) ([]byte, error) {
	hash := sha3.NewLegacyKeccak256()
	if _, err := hash.Write(b); err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgKeccakFailed, err)
	}
	return hash.Sum(nil), nil
}

// Selector returns the 4 byte function selector: the first 4 bytes of the
// keccak-256 hash of the canonical signature.
func (e *Entry) Selector() ([]byte, error) {
	return e.SelectorCtx(context.Background())
}

func (e *Entry) SelectorCtx(ctx context.Context) ([]byte, error) {
	sig, err := e.SignatureCtx(ctx)
	if err != nil {
		return nil, err
	}
	k, err := keccak256(ctx, []byte(sig))
	if err != nil {
		return nil, err
	}
	return k[0:4], nil
}

// ID is a convenience accessor for the hex-encoded selector (no 0x prefix),
// returning the empty string on failure.
func (e *Entry) ID() string {
	id, err := e.Selector()
	if err != nil {
		return ""
	}
	return hex.EncodeToString(id)
}

// TopicHash returns the 32 byte event topic hash - the full keccak-256 of the
// canonical signature, used as topic[0] for non-anonymous events.
func (e *Entry) TopicHash() ([]byte, error) {
	return e.TopicHashCtx(context.Background())
}

func (e *Entry) TopicHashCtx(ctx context.Context) ([]byte, error) {
	if e.Anonymous {
		return nil, i18n.NewError(ctx, abimsgs.MsgAnonymousNoTopic)
	}
	sig, err := e.SignatureCtx(ctx)
	if err != nil {
		return nil, err
	}
	return keccak256(ctx, []byte(sig))
}

// SolidityDef renders a human readable "function foo(...)" / "event Foo(...)"
// declaration for the entry, including inline tuple shapes.
func (e *Entry) SolidityDef() (string, error) {
	return e.SolidityDefCtx(context.Background())
}

func (e *Entry) SolidityDefCtx(ctx context.Context) (string, error) {
	buff := new(strings.Builder)
	buff.WriteString(string(e.Type))
	if e.Name != "" {
		buff.WriteRune(' ')
		buff.WriteString(e.Name)
	}
	buff.WriteRune('(')
	if err := e.Inputs.solStringCtx(ctx, buff); err != nil {
		return "", err
	}
	buff.WriteRune(')')
	if e.Type == Event && e.Anonymous {
		buff.WriteString(" anonymous")
	}
	if e.Type != Event && e.StateMutability != "" && e.StateMutability != NonPayable {
		buff.WriteRune(' ')
		buff.WriteString(string(e.StateMutability))
	}
	if len(e.Outputs) > 0 {
		buff.WriteString(" returns (")
		if err := e.Outputs.solStringCtx(ctx, buff); err != nil {
			return "", err
		}
		buff.WriteRune(')')
	}
	return buff.String(), nil
}

// SolString renders the parameter list the way it would appear inside a
// Solidity declaration's parentheses - "uint256 amount, address recipient".
func (pa ParameterArray) SolString() (string, error) {
	return pa.SolStringCtx(context.Background())
}

func (pa ParameterArray) SolStringCtx(ctx context.Context) (string, error) {
	buff := new(strings.Builder)
	if err := pa.solStringCtx(ctx, buff); err != nil {
		return "", err
	}
	return buff.String(), nil
}

func (pa ParameterArray) solStringCtx(ctx context.Context, buff *strings.Builder) error {
	for i, p := range pa {
		if i > 0 {
			buff.WriteString(", ")
		}
		s, err := p.SignatureStringCtx(ctx)
		if err != nil {
			return err
		}
		buff.WriteString(s)
		if p.Indexed {
			buff.WriteString(" indexed")
		}
		if p.Name != "" {
			buff.WriteRune(' ')
			buff.WriteString(p.Name)
		}
	}
	return nil
}
