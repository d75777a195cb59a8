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
	"strings"

	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/hyperledger/go-evm-abi/internal/abiconfig"
	"github.com/hyperledger/go-evm-abi/pkg/abi"
	"github.com/spf13/cobra"
)

var topicEvent string

func topicCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Print the topic hash of an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := prepareContext()
			if err != nil {
				return err
			}
			a, _, err := loadContractABI(ctx)
			if err != nil {
				return err
			}
			e, err := findEntry(a.Events(), topicEvent)
			if err != nil {
				return err
			}
			topic, err := e.TopicHashCtx(ctx)
			if err != nil {
				return err
			}
			fmt.Println("0x" + hex.EncodeToString(topic))
			return nil
		},
	}
	cmd.Flags().StringVarP(&topicEvent, "event", "e", "", "name of the event (required if the contract description has more than one)")
	return cmd
}

var (
	decodeEventName   string
	decodeEventTopics string
)

func init() {
	rootCmd.AddCommand(decodeEventCommand())
}

func decodeEventCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode-event <data-hex>",
		Short: "Decode an event log's data and topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := prepareContext()
			if err != nil {
				return err
			}
			a, _, err := loadContractABI(ctx)
			if err != nil {
				return err
			}
			e, err := findEntry(a.Events(), decodeEventName)
			if err != nil {
				return err
			}

			data, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("invalid hex event data: %w", err)
			}
			var topics [][]byte
			for _, t := range strings.Split(decodeEventTopics, ",") {
				t = strings.TrimSpace(strings.TrimPrefix(t, "0x"))
				if t == "" {
					continue
				}
				tb, err := hex.DecodeString(t)
				if err != nil {
					return fmt.Errorf("invalid hex topic '%s': %w", t, err)
				}
				topics = append(topics, tb)
			}

			cv, err := e.DecodeEventDataCtx(ctx, topics, data)
			if err != nil {
				return err
			}

			s := abi.NewSerializer().SetFormattingMode(formattingMode(config.GetString(abiconfig.DefaultTupleFormat)))
			out, err := s.SerializeInterfaceCtx(ctx, cv)
			if err != nil {
				return err
			}
			b, err := json.Marshal(out)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&decodeEventName, "event", "e", "", "name of the event (required if the contract description has more than one)")
	cmd.Flags().StringVarP(&decodeEventTopics, "topics", "t", "", "comma separated list of topic hashes, topic[0] first (include the event selector topic unless anonymous)")
	return cmd
}
