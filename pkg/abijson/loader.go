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

// Package abijson reads a contract description from the filesystem or over
// HTTP and hands it to pkg/abi - it owns none of the type grammar or
// encoding semantics, only getting a JSON document (optionally checked
// against a JSON Schema) into an abi.ABI.
package abijson

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
	"github.com/hyperledger/go-evm-abi/pkg/abi"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Loader reads and (optionally) schema-validates a contract description.
type Loader struct {
	schema *jsonschema.Schema
	client *resty.Client
}

// NewLoader creates a Loader. schemaFile may be empty to skip validation.
func NewLoader(schemaFile string) (*Loader, error) {
	l := &Loader{client: resty.New()}
	if schemaFile != "" {
		s, err := jsonschema.Compile(schemaFile)
		if err != nil {
			return nil, i18n.NewError(context.Background(), abimsgs.MsgSchemaInvalid, err)
		}
		l.schema = s
	}
	return l, nil
}

// LoadFile reads a contract description from a filesystem path, or stdin if
// path is "-".
func (l *Loader) LoadFile(ctx context.Context, path string) (abi.ABI, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, abimsgs.MsgJSONReadFailed, err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgJSONReadFailed, err)
	}
	return l.parse(ctx, b)
}

// LoadURL fetches a contract description over HTTP.
func (l *Loader) LoadURL(ctx context.Context, url string) (abi.ABI, error) {
	res, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgFetchFailed, url, err)
	}
	if res.IsError() {
		return nil, i18n.NewError(ctx, abimsgs.MsgFetchFailed, url, res.Status())
	}
	return l.parse(ctx, res.Body())
}

func (l *Loader) parse(ctx context.Context, b []byte) (abi.ABI, error) {
	if l.schema != nil {
		var v interface{}
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, i18n.WrapError(ctx, err, abimsgs.MsgJSONReadFailed, err)
		}
		if err := l.schema.Validate(v); err != nil {
			return nil, i18n.WrapError(ctx, err, abimsgs.MsgSchemaInvalid, err)
		}
	}
	var a abi.ABI
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&a); err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgJSONReadFailed, err)
	}
	if err := a.ValidateCtx(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
