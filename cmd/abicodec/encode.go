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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	encodeMethod string
	encodePacked bool
)

func encodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [params.json]",
		Short: "Encode JSON parameters into call data for a function, using the configured contract description",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := prepareContext()
			if err != nil {
				return err
			}
			a, _, err := loadContractABI(ctx)
			if err != nil {
				return err
			}
			e, err := findEntry(a.Functions(), encodeMethod)
			if err != nil {
				return err
			}

			b, err := readArgOrStdin(args)
			if err != nil {
				return err
			}
			var params interface{}
			if err := json.Unmarshal(b, &params); err != nil {
				return fmt.Errorf("invalid JSON parameters: %w", err)
			}

			cv, err := e.Inputs.BindValue(ctx, params)
			if err != nil {
				return err
			}
			if err := cv.ValidateValueCtx(ctx); err != nil {
				return err
			}

			var data []byte
			if encodePacked {
				data, err = cv.EncodeABIDataPackedCtx(ctx)
			} else {
				data, err = e.EncodeCallDataCtx(ctx, cv)
			}
			if err != nil {
				return err
			}
			fmt.Println("0x" + hex.EncodeToString(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&encodeMethod, "method", "m", "", "name of the function to encode (required if the contract description has more than one)")
	cmd.Flags().BoolVar(&encodePacked, "packed", false, "use non-standard packed encoding instead of the standard head/tail layout")
	return cmd
}

func readArgOrStdin(args []string) ([]byte, error) {
	if len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
