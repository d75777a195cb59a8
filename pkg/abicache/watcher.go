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

package abicache

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/go-evm-abi/internal/abimsgs"
	"github.com/hyperledger/go-evm-abi/pkg/abi"
)

// ReloadFunc reloads a contract description from its source (a file or URL)
// and returns the freshly parsed ABI.
type ReloadFunc func(ctx context.Context) (abi.ABI, error)

// Watcher reloads a contract description whenever the file behind it
// changes, clearing the Cache so the next lookup recompiles against the new
// type grammar rather than serving a stale entry.
type Watcher struct {
	cache  *Cache
	reload ReloadFunc
	done   chan struct{}
}

// NewWatcher starts watching path for changes, invoking reload and clearing
// cache whenever the file is written.
func NewWatcher(ctx context.Context, cache *Cache, path string, reload ReloadFunc) (*Watcher, error) {
	w := &Watcher{cache: cache, reload: reload, done: make(chan struct{})}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgWatchFailed, path, err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgWatchFailed, path, err)
	}
	go w.loop(ctx, watcher)
	return w, nil
}

func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(w.done)
	defer watcher.Close()
	for {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("ABI watcher exiting")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			log.L(ctx).Debugf("ABI source event [%s]: %s", event.Op, event.Name)
			if _, err := w.reload(ctx); err != nil {
				log.L(ctx).Errorf("Failed to reload contract description: %s", err)
				continue
			}
			w.cache.types.Clear()
			w.cache.selectors.Clear()
		case err, ok := <-watcher.Errors:
			if ok {
				log.L(ctx).Errorf("ABI watcher error: %s", err)
			}
		}
	}
}

// WaitStop blocks until the watcher's goroutine has exited (call after
// cancelling the ctx passed to NewWatcher).
func (w *Watcher) WaitStop() {
	<-w.done
}
