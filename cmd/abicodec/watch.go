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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/go-evm-abi/internal/abiconfig"
	"github.com/hyperledger/go-evm-abi/pkg/abi"
	"github.com/hyperledger/go-evm-abi/pkg/abicache"
	"github.com/hyperledger/go-evm-abi/pkg/abijson"
	"github.com/spf13/cobra"
)

var watchSigs = make(chan os.Signal, 1)

func watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the configured contract description file and log when the compiled type/selector cache is invalidated",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			prepared, err := prepareContext()
			if err != nil {
				return err
			}
			ctx = log.WithLogger(ctx, log.L(prepared))

			path := abiconfig.ABISourceConfig.GetString(abiconfig.ABISourcePath)
			if path == "" || path == "-" {
				return fmt.Errorf("watch requires a real filesystem path configured for source.path")
			}

			loader, err := abijson.NewLoader(abiconfig.ABISourceConfig.GetString(abiconfig.ABISourceSchemaFile))
			if err != nil {
				return err
			}
			cache := abicache.New(abicache.Config{
				Size: int64(abiconfig.CacheConfig.GetInt(abiconfig.CacheSize)),
				TTL:  abiconfig.CacheConfig.GetString(abiconfig.CacheTTL),
			})

			reload := func(ctx context.Context) (abi.ABI, error) {
				a, err := loader.LoadFile(ctx, path)
				if err != nil {
					return nil, err
				}
				log.L(ctx).Infof("Reloaded contract description from %s (%d entries)", path, len(a))
				return a, nil
			}
			if _, err := reload(ctx); err != nil {
				return err
			}

			watcher, err := abicache.NewWatcher(ctx, cache, path, reload)
			if err != nil {
				return err
			}

			signal.Notify(watchSigs, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-watchSigs
				log.L(ctx).Infof("Shutting down due to %s", sig.String())
				cancel()
			}()

			watcher.WaitStop()
			return nil
		},
	}
	return cmd
}
