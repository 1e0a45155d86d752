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

// Package engine is the facade a host application wires up: it glues
// registry.Builder, session.Session, and the aspect/scripting/ingress
// packages behind one Config built with functional options, the same
// shape as the teacher's types.Config + types.Option (types/config.go,
// engine/config.go).
package engine

import (
	"github.com/taxgraph/engine/aspect"
	"github.com/taxgraph/engine/types"
)

// Config holds everything a Session needs beyond the registry itself.
// Build one with NewConfig and zero or more Options.
type Config struct {
	Logger        types.Logger
	BuildAspects  []aspect.BuildAspect
	EvalAspects   aspect.List
	MetricsLabels map[string]string
}

// Option mutates a Config during construction, mirroring the teacher's
// functional-options convention (types.Option in types/config.go).
type Option func(*Config)

// NewConfig applies opts over sensible defaults: a zerolog-backed Logger
// at info level, the built-in Metrics eval aspect, and the built-in
// Validator build aspect (the teacher's BuiltinsAspects in
// engine/config.go does the same). WithEvalAspects adds to the Metrics
// aspect; WithBuildAspects replaces the build set, Validator included.
func NewConfig(opts ...Option) Config {
	c := Config{
		Logger: NewLogger(),
		EvalAspects: aspect.List{
			&aspect.Metrics{},
		},
		BuildAspects: []aspect.BuildAspect{
			&aspect.Validator{RequireOwnerPrefix: true},
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger overrides the default zerolog Logger.
func WithLogger(l types.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithEvalAspects appends additional per-node evaluation aspects (spec
// §4.3.3 wraps every node with aspect.List.Around) alongside the
// built-in Metrics aspect.
func WithEvalAspects(extra ...aspect.EvalAspect) Option {
	return func(c *Config) { c.EvalAspects = append(c.EvalAspects, extra...) }
}

// WithBuildAspects replaces the registry-build aspect set. Pass the
// built-in Validator explicitly if it should still run.
func WithBuildAspects(aspects ...aspect.BuildAspect) Option {
	return func(c *Config) { c.BuildAspects = aspects }
}

// WithMetricsLabels attaches static labels (e.g. {"deployment": "prod"})
// future metrics exporters can fold into every sample; unused by the
// Metrics aspect itself today but threaded through so a host can extend
// it without another Config field.
func WithMetricsLabels(labels map[string]string) Option {
	return func(c *Config) { c.MetricsLabels = labels }
}
