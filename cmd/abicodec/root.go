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

	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/go-evm-abi/internal/abiconfig"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
	"github.com/hyperledger/go-evm-abi/pkg/abi"
	"github.com/hyperledger/go-evm-abi/pkg/abicache"
	"github.com/hyperledger/go-evm-abi/pkg/abijson"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abicodec",
	Short: "EVM ABI calling-convention codec",
	Long:  ``,
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(configCommand())
	rootCmd.AddCommand(encodeCommand())
	rootCmd.AddCommand(decodeCommand())
	rootCmd.AddCommand(selectorCommand())
	rootCmd.AddCommand(topicCommand())
	rootCmd.AddCommand(watchCommand())
}

// Execute runs the root command - the single entry point called from main().
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	abiconfig.Reset()
}

// prepareContext reads configuration and wires up logging the same way for
// every subcommand, returning a context that carries the logger.
func prepareContext() (context.Context, error) {
	initConfig()
	err := config.ReadConfig("abicodec", cfgFile)

	ctx := context.Background()
	ctx = log.WithLogger(ctx, logrus.WithField("pid", fmt.Sprintf("%d", os.Getpid())))
	ctx = log.WithLogger(ctx, logrus.WithField("prefix", "abicodec"))
	config.SetupLogging(ctx)

	if err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgConfigReadFailed, err)
	}
	return ctx, nil
}

// loadContractABI loads the contract description according to the configured
// source (filesystem path or URL, optionally schema-validated), and builds
// the compiled-type/selector cache that sits in front of it.
func loadContractABI(ctx context.Context) (abi.ABI, *abicache.Cache, error) {
	loader, err := abijson.NewLoader(abiconfig.ABISourceConfig.GetString(abiconfig.ABISourceSchemaFile))
	if err != nil {
		return nil, nil, err
	}

	var a abi.ABI
	if url := abiconfig.ABISourceConfig.GetString(abiconfig.ABISourceURL); url != "" {
		a, err = loader.LoadURL(ctx, url)
	} else {
		a, err = loader.LoadFile(ctx, abiconfig.ABISourceConfig.GetString(abiconfig.ABISourcePath))
	}
	if err != nil {
		return nil, nil, err
	}

	cache := abicache.New(abicache.Config{
		Size: int64(abiconfig.CacheConfig.GetInt(abiconfig.CacheSize)),
		TTL:  abiconfig.CacheConfig.GetString(abiconfig.CacheTTL),
	})
	return a, cache, nil
}

// formattingMode maps the configured serialize.tupleFormat string onto the
// abi package's FormattingMode enum, defaulting to FormatAsObjects for an
// unrecognized value.
func formattingMode(name string) abi.FormattingMode {
	switch name {
	case "flatArrays":
		return abi.FormatAsFlatArrays
	case "selfDescribingArrays":
		return abi.FormatAsSelfDescribingArrays
	default:
		return abi.FormatAsObjects
	}
}

// findEntry locates the Entry with the given name within the set of entries
// of the given kind (functions or events), returning an error if the ABI
// contains more than one candidate and method was left blank.
func findEntry(entries map[string]*abi.Entry, method string) (*abi.Entry, error) {
	if method != "" {
		e, ok := entries[method]
		if !ok {
			return nil, fmt.Errorf("no entry named '%s' found in the contract description", method)
		}
		return e, nil
	}
	if len(entries) != 1 {
		return nil, fmt.Errorf("contract description has %d candidates - specify one with --method", len(entries))
	}
	for _, e := range entries {
		return e, nil
	}
	return nil, fmt.Errorf("contract description has no entries")
}
