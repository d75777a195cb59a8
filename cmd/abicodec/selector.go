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
	"fmt"

	"github.com/spf13/cobra"
)

var selectorMethod string

func selectorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selector",
		Short: "Print the canonical signature and 4 byte selector of a function",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := prepareContext()
			if err != nil {
				return err
			}
			a, cache, err := loadContractABI(ctx)
			if err != nil {
				return err
			}
			e, err := findEntry(a.Functions(), selectorMethod)
			if err != nil {
				return err
			}
			sig, err := e.SignatureCtx(ctx)
			if err != nil {
				return err
			}
			id, err := cache.Selector(ctx, e)
			if err != nil {
				return err
			}
			fmt.Printf("%s => 0x%x\n", sig, id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&selectorMethod, "method", "m", "", "name of the function (required if the contract description has more than one)")
	return cmd
}
