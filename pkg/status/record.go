// Copyright 2026 The Caliper Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Package status defines the normalized outcome record of one dispatched
// benchmark request.
package status

import (
	"time"
)

// Code is the terminal state of a request.
type Code int8

const (
	// Unset means the request has not finished yet.
	Unset Code = iota
	// Success means the backend confirmed the request.
	Success
	// Failed means the request failed, either in the backend or before
	// reaching it.
	Failed
)

// String implements fmt.Stringer.
func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unset"
	}
}

// Record holds the outcome of one logical request. A record is created when
// the dispatcher accepts the request and is never reused. Once the status is
// confirmed as Success or Failed it is terminal.
type Record struct {
	id       string
	code     Code
	result   []byte
	verified bool

	timeCreated  time.Time
	timeFinished time.Time

	diagnostics map[string]any
}

// NewRecord creates a record stamped with the current time.
func NewRecord() *Record {
	return NewRecordAt(time.Now())
}

// NewRecordAt creates a record with an explicit creation timestamp, so that
// every record of one batch can share the batch's creation time.
func NewRecordAt(created time.Time) *Record {
	return &Record{timeCreated: created}
}

// ConfirmSuccess marks the record as successfully committed. The transaction
// id is assigned only here, after a successful call attempt. No-op if the
// record already reached a terminal status.
func (r *Record) ConfirmSuccess(id string, result []byte) {
	if r.code != Unset {
		return
	}
	r.code = Success
	r.id = id
	r.result = result
	r.verified = true
	r.timeFinished = time.Now()
}

// ConfirmFailed marks the record as failed with an empty result. The failure
// is a confirmed outcome, not a retry candidate. No-op if the record already
// reached a terminal status.
func (r *Record) ConfirmFailed() {
	if r.code != Unset {
		return
	}
	r.code = Failed
	r.result = nil
	r.verified = true
	r.timeFinished = time.Now()
}

// ID returns the backend-assigned transaction id, empty until ConfirmSuccess.
func (r *Record) ID() string { return r.id }

// Status returns the terminal state, Unset while in flight.
func (r *Record) Status() Code { return r.code }

// IsSuccess reports whether the record finished successfully.
func (r *Record) IsSuccess() bool { return r.code == Success }

// Result returns the opaque backend payload.
func (r *Record) Result() []byte { return r.result }

// Verified reports whether the outcome is confirmed.
func (r *Record) Verified() bool { return r.verified }

// TimeCreated returns the moment the dispatcher accepted the request.
func (r *Record) TimeCreated() time.Time { return r.timeCreated }

// TimeFinished returns the moment a terminal status was set.
func (r *Record) TimeFinished() time.Time { return r.timeFinished }

// SetDiagnostic attaches a named diagnostic field, e.g. the request kind.
func (r *Record) SetDiagnostic(key string, value any) {
	if r.diagnostics == nil {
		r.diagnostics = make(map[string]any, 4)
	}
	r.diagnostics[key] = value
}

// Diagnostic returns a named diagnostic field.
func (r *Record) Diagnostic(key string) (any, bool) {
	v, ok := r.diagnostics[key]
	return v, ok
}
