/*
 * Copyright 2024 The Tax Graph Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package engine

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/taxgraph/engine/types"
)

// zlogger backs types.Logger with rs/zerolog -- the logging dependency
// named in r3e-network-service_layer's go.mod; the teacher itself only
// names a Logger field and DefaultLogger() (types/config.go) without
// shipping a concrete implementation in the retrieved source, so the
// default here is grounded on the sibling repo's stack instead.
type zlogger struct {
	z zerolog.Logger
}

// NewLogger returns the default Logger: zerolog writing console-formatted
// output to stderr at info level.
func NewLogger() types.Logger {
	return &zlogger{z: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel).With().Timestamp().Logger()}
}

func (l *zlogger) Debug(msg string, kv ...any) { l.event(l.z.Debug(), msg, kv) }
func (l *zlogger) Info(msg string, kv ...any)  { l.event(l.z.Info(), msg, kv) }
func (l *zlogger) Warn(msg string, kv ...any)  { l.event(l.z.Warn(), msg, kv) }
func (l *zlogger) Error(msg string, kv ...any) { l.event(l.z.Error(), msg, kv) }

func (l *zlogger) event(e *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	e.Msg(msg)
}
