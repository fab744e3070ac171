// Package payment drives a single rental payment through an escrow-style
// "pay now, confirm later" workflow: initiation, processing, success,
// with a single retry edge back to initiation on failure. The package is
// pure state bookkeeping; collecting payment details, talking to the
// gateway and persisting sessions are all collaborator concerns.
package payment

import "time"

// Stage is one state of the payment workflow.
type Stage string

const (
	StageInitiation Stage = "initiation"
	StageProcessing Stage = "processing"
	StageSuccess    Stage = "success"
)

// Details is the payload the tenant confirms at initiation. The workflow
// stores and forwards it; field validation belongs to the collaborator
// that collected it.
type Details struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Method string `json:"method" validate:"required"`
	Payer  string `json:"payer,omitempty"`
}

// Transaction is the settlement payload reported by the payment backend
// once funds are captured.
type Transaction struct {
	ID          string    `json:"id" validate:"required"`
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

// Failure is the error payload carried by a failed payment signal. It is
// surfaced to the tenant so they can retry with a fresh submit.
type Failure struct {
	Message string `json:"message"`
}

// Session is the ephemeral state of one attempted rental payment. A
// session lives in one UI context at a time; callers must serialize
// transitions on it. Discarding an abandoned session is the caller's
// job, the workflow holds no cleanup obligation.
type Session struct {
	PropertyRef string       `json:"propertyRef"`
	Stage       Stage        `json:"stage"`
	Reference   string       `json:"reference,omitempty"`
	Details     *Details     `json:"details,omitempty"`
	Transaction *Transaction `json:"transaction,omitempty"`
	LastError   *Failure     `json:"lastError,omitempty"`
}

// NewSession starts a checkout for the given property in the initiation
// stage.
func NewSession(propertyRef string) *Session {
	return &Session{PropertyRef: propertyRef, Stage: StageInitiation}
}

// Submit moves the session from initiation to processing, storing the
// confirmed payment details. It reports false and changes nothing if the
// session is not in initiation. Each submit is a fresh attempt, so any
// error from a previous failed attempt is cleared.
func (s *Session) Submit(d Details) bool {
	if s.Stage != StageInitiation {
		return false
	}
	s.Details = &d
	s.LastError = nil
	s.Stage = StageProcessing
	return true
}

// Confirm applies the backend's settlement signal, moving the session
// from processing to success and retaining the transaction payload for
// receipt display. Signals arriving when the session is not in
// processing are ignored: confirm and fail are at-most-once per
// processing entry, and a late duplicate must not re-fire.
func (s *Session) Confirm(tx Transaction) bool {
	if s.Stage != StageProcessing {
		return false
	}
	s.Transaction = &tx
	s.Stage = StageSuccess
	return true
}

// Fail applies the backend's failure signal, recording the error and
// returning the session to initiation so the tenant sees the payment
// form again. There is no automatic retry; the next attempt is a new
// explicit Submit. Out-of-stage signals are ignored like in Confirm.
func (s *Session) Fail(f Failure) bool {
	if s.Stage != StageProcessing {
		return false
	}
	s.LastError = &f
	s.Stage = StageInitiation
	return true
}

// Done reports whether the session reached its terminal stage. There is
// no transition out of success; viewing the receipt is a separate flow.
func (s *Session) Done() bool {
	return s.Stage == StageSuccess
}
