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

// Package mqtt is a concrete external transport for streaming
// InputEvents into an engine.Session over MQTT (spec §6 "External
// Interfaces"), built on eclipse/paho.mqtt.golang -- named in the
// teacher's go.mod as an endpoint dependency but never exercised in the
// retrieved source slice (the upstream project ships an mqtt endpoint
// component this repo's slice didn't include).
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/taxgraph/engine/engine"
	"github.com/taxgraph/engine/types"
)

// wireEvent is the JSON shape published on the input topic.
type wireEvent struct {
	InstanceID string      `json:"instanceId"`
	Value      wireValue   `json:"value"`
	Source     string      `json:"source"`
	Timestamp  string      `json:"timestamp"`
}

type wireValue struct {
	Type string  `json:"type"`
	Null bool    `json:"null,omitempty"`
	// Raw carries the payload in whatever shape Type implies: a JSON
	// number for currency/percentage/number, an integer for integer, a
	// string for string/enum/date ("2006-01-02"), a bool for boolean.
	// Decoding specifics live in decodeValue below.
	Raw json.RawMessage `json:"raw,omitempty"`
}

// Subscriber listens on one MQTT topic for InputEvents, feeds each into
// sess.Process, and republishes the EvalResult on a result topic.
type Subscriber struct {
	client      paho.Client
	session     *engine.Session
	inputTopic  string
	resultTopic string
	logger      types.Logger
}

// Config parameterizes a Subscriber's broker connection and topics.
type Config struct {
	BrokerURL   string
	ClientID    string
	InputTopic  string
	ResultTopic string
	Logger      types.Logger
}

// NewSubscriber connects to cfg.BrokerURL and subscribes to
// cfg.InputTopic, dispatching every decoded payload to sess.Process.
func NewSubscriber(cfg Config, sess *engine.Session) (*Subscriber, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	s := &Subscriber{session: sess, inputTopic: cfg.InputTopic, resultTopic: cfg.ResultTopic, logger: logger}

	opts := paho.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	opts.SetDefaultPublishHandler(s.handle)

	s.client = paho.NewClient(opts)
	if tok := s.client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("taxgraph/ingress/mqtt: connect: %w", tok.Error())
	}
	if tok := s.client.Subscribe(cfg.InputTopic, 1, s.handle); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("taxgraph/ingress/mqtt: subscribe: %w", tok.Error())
	}
	return s, nil
}

func (s *Subscriber) handle(_ paho.Client, msg paho.Message) {
	var wire wireEvent
	if err := json.Unmarshal(msg.Payload(), &wire); err != nil {
		s.logger.Error("taxgraph/ingress/mqtt: malformed payload", "error", err.Error())
		return
	}
	event, err := decodeEvent(wire)
	if err != nil {
		s.logger.Error("taxgraph/ingress/mqtt: decode event", "error", err.Error())
		return
	}

	result := s.session.Process(event)
	s.publishResult(result)
}

func (s *Subscriber) publishResult(result types.EvalResult) {
	if s.resultTopic == "" {
		return
	}
	payload, err := json.Marshal(struct {
		Outcome    string   `json:"outcome"`
		ChangedIDs []string `json:"changedIds"`
	}{
		Outcome:    string(result.Outcome),
		ChangedIDs: stringIDs(result.ChangedIDs),
	})
	if err != nil {
		s.logger.Error("taxgraph/ingress/mqtt: marshal result", "error", err.Error())
		return
	}
	tok := s.client.Publish(s.resultTopic, 1, false, payload)
	tok.Wait()
}

// Close disconnects from the broker, waiting up to 250ms for in-flight
// publishes to drain.
func (s *Subscriber) Close() {
	s.client.Disconnect(250)
}

func stringIDs(ids []types.InstanceID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
