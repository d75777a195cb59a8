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

/*
Package abi encodes and decodes EVM calling-convention binary data: the
arguments and return values of contract functions, and the topics/data of
event logs.

A high level summary of the API:

	                     [ ABI ]        - parse a contract description, using the Go model of the JSON format
	                        ↓
	                    (Validate)      - every parameter's type descriptor is compiled
	                        ↓
	            [ TypeComponent tree ]  - a tree of elementary/array/tuple components
	                        ↓
	[ JSON ] → [ ComponentValue tree ]  - combine the type tree with data to get a value tree
	                        ↓
	                     (encode)       - serialize the value tree to ABI bytes
	                        ↓
	              [ ABI encoded bytes ]
	                        ↓
	                     (decode)       - parse ABI bytes back into a value tree
	                        ↓
	[ JSON ] ← [ ComponentValue tree ]

Coercion of external (e.g. JSON-sourced) data into a value tree is flexible:

  - Bytes/addresses: hex with or without "0x", or a raw byte slice
  - Numbers: base-10 string, "0x" hex string, or a JSON number; negative
    numbers are supported for signed types
  - Booleans: bool, or the strings "true"/"false"
  - Strings: a string, a fmt.Stringer, or a raw byte slice (used as-is)

Serialization of a value tree back to JSON is pluggable:

  - Tuple layout: object-keyed, flat array, or self-describing array
    ({"name":...,"type":...,"value":...})
  - Integers: base-10 string, "0x" hex string, or a JSON number where safe
  - Bytes: hex with or without "0x" prefix
*/
package abi

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
)

// ABI is an ordered list of function, constructor, event and error
// descriptions - the external interface of an EVM smart contract.
type ABI []*Entry

// EntryType is an enum of the possible ABI entry types.
type EntryType string

const (
	Function    EntryType = "function"
	Constructor EntryType = "constructor"
	Receive     EntryType = "receive"
	Fallback    EntryType = "fallback"
	Event       EntryType = "event"
	Error       EntryType = "error"
)

type StateMutability string

const (
	Pure       StateMutability = "pure"
	View       StateMutability = "view"
	Payable    StateMutability = "payable"
	NonPayable StateMutability = "nonpayable"
)

type ParameterArray []*Parameter

// Entry is an individual function, constructor, event or error description.
type Entry struct {
	Type            EntryType       `json:"type,omitempty"`
	Name            string          `json:"name,omitempty"`
	Payable         bool            `json:"payable,omitempty"`
	Constant        bool            `json:"constant,omitempty"`
	Anonymous       bool            `json:"anonymous,omitempty"` // Events only: no topic[0] selector is emitted
	StateMutability StateMutability `json:"stateMutability,omitempty"`
	Inputs          ParameterArray  `json:"inputs"`
	Outputs         ParameterArray  `json:"outputs,omitempty"`
}

// Parameter is a single typed input, output or event field.
type Parameter struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	InternalType string         `json:"internalType,omitempty"`
	Components   ParameterArray `json:"components,omitempty"`
	Indexed      bool           `json:"indexed,omitempty"` // Events only

	parsed *typeComponent
}

func (e *Entry) IsFunction() bool {
	switch e.Type {
	case Function, Constructor, Receive, Fallback:
		return true
	default:
		return false
	}
}

// Validate compiles the type tree of every input/output parameter.
func (a ABI) Validate() (err error) {
	return a.ValidateCtx(context.Background())
}

func (a ABI) ValidateCtx(ctx context.Context) (err error) {
	for _, e := range a {
		if err := e.ValidateCtx(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Functions indexes the ABI's function-like entries by name. Overloaded
// functions are not distinguishable by name alone - callers needing that
// should walk the ABI directly.
func (a ABI) Functions() map[string]*Entry {
	m := make(map[string]*Entry)
	for _, e := range a {
		if e.Name != "" && e.IsFunction() {
			m[e.Name] = e
		}
	}
	return m
}

func (a ABI) Events() map[string]*Entry {
	m := make(map[string]*Entry)
	for _, e := range a {
		if e.Name != "" && e.Type == Event {
			m[e.Name] = e
		}
	}
	return m
}

func (e *Entry) Validate() (err error) {
	return e.ValidateCtx(context.Background())
}

func (e *Entry) ValidateCtx(ctx context.Context) (err error) {
	for _, input := range e.Inputs {
		if input.Indexed && e.Type != Event {
			return i18n.NewError(ctx, abimsgs.MsgIndexedNotAllowed, input.Name)
		}
		if err := input.ValidateCtx(ctx); err != nil {
			return err
		}
	}
	for _, output := range e.Outputs {
		if err := output.ValidateCtx(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ParseJSON parses external JSON data against the parameter array's compiled
// type tree, producing a value tree ready for EncodeABIData.
func (pa ParameterArray) ParseJSON(data []byte) (*ComponentValue, error) {
	return pa.ParseJSONCtx(context.Background(), data)
}

func (pa ParameterArray) ParseJSONCtx(ctx context.Context, data []byte) (*ComponentValue, error) {
	var jsonTree interface{}
	if err := json.Unmarshal(data, &jsonTree); err != nil {
		return nil, err
	}
	return pa.ParseExternalDataCtx(ctx, jsonTree)
}

// ParseExternalData traverses an already-unmarshalled Go value (e.g. from
// encoding/json, or hand-built maps/slices) against the compiled type tree.
func (pa ParameterArray) ParseExternalData(input interface{}) (cv *ComponentValue, err error) {
	return pa.ParseExternalDataCtx(context.Background(), input)
}

// TypeComponentTree returns the tuple-rooted type tree for the parameter array.
func (pa ParameterArray) TypeComponentTree() (component TypeComponent, err error) {
	return pa.TypeComponentTreeCtx(context.Background())
}

func (pa ParameterArray) TypeComponentTreeCtx(ctx context.Context) (tc TypeComponent, err error) {
	component := &typeComponent{
		cType:         TupleComponent,
		tupleChildren: make([]*typeComponent, len(pa)),
	}
	for i, p := range pa {
		if component.tupleChildren[i], err = p.typeComponentTreeCtx(ctx); err != nil {
			return nil, err
		}
	}
	return component, nil
}

func (pa ParameterArray) ParseExternalDataCtx(ctx context.Context, input interface{}) (cv *ComponentValue, err error) {
	component, err := pa.TypeComponentTreeCtx(ctx)
	if err != nil {
		return nil, err
	}
	return walkInput(ctx, "", input, component.(*typeComponent))
}

// DecodeABIData decodes ABI bytes against the parameter array's type tree,
// starting at offset (callers pass the post-selector offset for call data).
func (pa ParameterArray) DecodeABIData(b []byte, offset int) (cv *ComponentValue, err error) {
	return pa.DecodeABIDataCtx(context.Background(), b, offset)
}

func (pa ParameterArray) DecodeABIDataCtx(ctx context.Context, b []byte, offset int) (cv *ComponentValue, err error) {
	component, err := pa.TypeComponentTreeCtx(ctx)
	if err != nil {
		return nil, err
	}
	_, cv, err = walkTupleABIBytes(ctx, "", b, offset, offset, component.(*typeComponent))
	return cv, err
}

// String returns the signature string, logging (but swallowing) any error
// from an implicit Validate.
func (e *Entry) String() string {
	s, err := e.Signature()
	if err != nil {
		log.L(context.Background()).Warnf("ABI signature generation failed: %s", err)
	}
	return s
}

// Signature renders the canonical "name(type1,type2,...)" signature string.
func (e *Entry) Signature() (string, error) {
	return e.SignatureCtx(context.Background())
}

func (e *Entry) SignatureCtx(ctx context.Context) (string, error) {
	buff := new(strings.Builder)
	buff.WriteString(e.Name)
	buff.WriteRune('(')
	for i, p := range e.Inputs {
		if i > 0 {
			buff.WriteRune(',')
		}
		s, err := p.SignatureStringCtx(ctx)
		if err != nil {
			return "", err
		}
		buff.WriteString(s)
	}
	buff.WriteRune(')')
	return buff.String(), nil
}

// EncodeCallData serializes the entry's inputs, prefixed with its 4 byte
// function selector.
func (e *Entry) EncodeCallData(cv *ComponentValue) ([]byte, error) {
	return e.EncodeCallDataCtx(context.Background(), cv)
}

func (e *Entry) EncodeCallDataCtx(ctx context.Context, cv *ComponentValue) ([]byte, error) {
	id, err := e.SelectorCtx(ctx)
	if err != nil {
		return nil, err
	}
	cvData, err := cv.EncodeABIDataCtx(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(id)+len(cvData))
	copy(data, id)
	copy(data[len(id):], cvData)
	return data, nil
}

// DecodeABIInputs verifies the call data's function selector prefix and
// decodes the remaining bytes as this entry's inputs.
func (e *Entry) DecodeABIInputs(b []byte) (*ComponentValue, error) {
	return e.DecodeABIInputsCtx(context.Background(), b)
}

func (e *Entry) DecodeABIInputsCtx(ctx context.Context, b []byte) (*ComponentValue, error) {
	id, err := e.SelectorCtx(ctx)
	if err != nil {
		return nil, err
	}
	if len(b) < 4 {
		return nil, i18n.NewError(ctx, abimsgs.MsgCallDataTooShort, len(b))
	}
	if !bytes.Equal(id, b[0:4]) {
		return nil, i18n.NewError(ctx, abimsgs.MsgSelectorMismatch, hex.EncodeToString(b[0:4]), hex.EncodeToString(id), e.String())
	}
	return e.Inputs.DecodeABIDataCtx(ctx, b, 4)
}

// Validate compiles the parameter's type descriptor (and those of any
// nested tuple Components) into a type tree.
func (p *Parameter) Validate() (err error) {
	return p.ValidateCtx(context.Background())
}

func (p *Parameter) ValidateCtx(ctx context.Context) (err error) {
	p.parsed, err = p.parseABIParameterComponents(ctx)
	return err
}

// SignatureString returns the canonical type signature for this parameter,
// calling Validate on your behalf if it has not already run.
func (p *Parameter) SignatureString() (s string, err error) {
	return p.SignatureStringCtx(context.Background())
}

func (p *Parameter) SignatureStringCtx(ctx context.Context) (string, error) {
	tc, err := p.TypeComponentTreeCtx(ctx)
	if err != nil {
		return "", err
	}
	return tc.String(), nil
}

func (p *Parameter) String() string {
	s, err := p.SignatureString()
	if err != nil {
		log.L(context.Background()).Warnf("ABI signature generation failed: %s", err)
	}
	return s
}

// TypeComponentTree returns the compiled type tree for the parameter,
// calling Validate on your behalf if it has not already run.
func (p *Parameter) TypeComponentTree() (TypeComponent, error) {
	return p.TypeComponentTreeCtx(context.Background())
}

func (p *Parameter) TypeComponentTreeCtx(ctx context.Context) (TypeComponent, error) {
	tc, err := p.typeComponentTreeCtx(ctx)
	return TypeComponent(tc), err
}

func (p *Parameter) typeComponentTreeCtx(ctx context.Context) (*typeComponent, error) {
	if p.parsed == nil {
		if err := p.ValidateCtx(ctx); err != nil {
			return nil, err
		}
	}
	return p.parsed, nil
}
