// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"sync"

	"github.com/jcodagnone/wardcheck/session"
)

// Event is one presentation update, delivered to the client with the next
// response.
type Event struct {
	Type    string `json:"type"` // status, result, marker, map, confirm
	Payload any    `json:"payload"`
}

// eventQueue is a session.Presenter buffering the updates for the client.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
}

func (q *eventQueue) push(typ string, payload any) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, Event{Type: typ, Payload: payload})
}

// drain returns the pending events and clears the queue.
func (q *eventQueue) drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil

	if events == nil {
		events = []Event{}
	}

	return events
}

func (q *eventQueue) ShowStatus(s session.Status) { q.push("status", s) }
func (q *eventQueue) ShowResult(r session.Result) { q.push("result", r) }
func (q *eventQueue) ShowMarker(m session.Marker) { q.push("marker", m) }
func (q *eventQueue) ShowMap(v session.MapView)   { q.push("map", v) }
func (q *eventQueue) Confirm(msg string)          { q.push("confirm", msg) }
