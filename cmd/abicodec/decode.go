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

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/hyperledger/go-evm-abi/internal/abiconfig"
	"github.com/hyperledger/go-evm-abi/pkg/abi"
	"github.com/spf13/cobra"
)

var (
	decodeMethod string
	decodeStrict bool
)

func decodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <calldata-hex>",
		Short: "Decode call data (selector + arguments) according to the configured contract description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := prepareContext()
			if err != nil {
				return err
			}
			strict := config.GetBool(abiconfig.StrictDecoding)
			if cmd.Flags().Changed("strict") {
				strict = decodeStrict
			}
			ctx = abi.WithStrictDecoding(ctx, strict)

			b, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("invalid hex call data: %w", err)
			}

			a, _, err := loadContractABI(ctx)
			if err != nil {
				return err
			}
			e, err := findEntry(a.Functions(), decodeMethod)
			if err != nil {
				return err
			}

			cv, err := e.DecodeABIInputsCtx(ctx, b)
			if err != nil {
				return err
			}

			s := abi.NewSerializer().SetFormattingMode(formattingMode(config.GetString(abiconfig.DefaultTupleFormat)))
			out, err := s.SerializeJSONCtx(ctx, cv)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&decodeMethod, "method", "m", "", "name of the function to decode against (required if the contract description has more than one)")
	cmd.Flags().BoolVar(&decodeStrict, "strict", true, "reject malformed bool slots instead of silently truthy-coercing them")
	return cmd
}
