package payment

import "testing"

func TestNewSessionStartsAtInitiation(t *testing.T) {
	s := NewSession("PROP1001")
	if s.Stage != StageInitiation {
		t.Fatalf("new session stage = %s, want %s", s.Stage, StageInitiation)
	}
	if s.PropertyRef != "PROP1001" {
		t.Fatalf("propertyRef = %s, want PROP1001", s.PropertyRef)
	}
}

func TestSubmitMovesToProcessing(t *testing.T) {
	s := NewSession("PROP1001")
	if !s.Submit(Details{Amount: 1800000, Method: "card"}) {
		t.Fatalf("submit from initiation should apply")
	}
	if s.Stage != StageProcessing {
		t.Fatalf("stage after submit = %s, want %s", s.Stage, StageProcessing)
	}
	if s.Details == nil || s.Details.Amount != 1800000 {
		t.Fatalf("details not retained: %+v", s.Details)
	}
}

func TestConfirmMovesToSuccessAndKeepsTransaction(t *testing.T) {
	s := NewSession("PROP1001")
	s.Submit(Details{Amount: 1800000, Method: "card"})
	if !s.Confirm(Transaction{ID: "tx-1"}) {
		t.Fatalf("confirm from processing should apply")
	}
	if s.Stage != StageSuccess || !s.Done() {
		t.Fatalf("stage after confirm = %s, want %s", s.Stage, StageSuccess)
	}
	if s.Transaction == nil || s.Transaction.ID != "tx-1" {
		t.Fatalf("transaction not retained: %+v", s.Transaction)
	}
}

func TestFailReturnsToInitiationWithError(t *testing.T) {
	s := NewSession("PROP1001")
	s.Submit(Details{Amount: 1800000, Method: "card"})
	if !s.Fail(Failure{Message: "card declined"}) {
		t.Fatalf("fail from processing should apply")
	}
	if s.Stage != StageInitiation {
		t.Fatalf("stage after fail = %s, want %s", s.Stage, StageInitiation)
	}
	if s.LastError == nil || s.LastError.Message != "card declined" {
		t.Fatalf("lastError not retained: %+v", s.LastError)
	}
}

func TestSignalsOutsideProcessingAreNoOps(t *testing.T) {
	// Confirm/fail before any submit: session still in initiation.
	s := NewSession("PROP1001")
	if s.Confirm(Transaction{ID: "early"}) {
		t.Fatalf("confirm from initiation must be ignored")
	}
	if s.Fail(Failure{Message: "early"}) {
		t.Fatalf("fail from initiation must be ignored")
	}
	if s.Stage != StageInitiation || s.Transaction != nil || s.LastError != nil {
		t.Fatalf("no-op signals mutated session: %+v", s)
	}

	// Duplicate signals after settlement: session already in success.
	s.Submit(Details{Amount: 100, Method: "card"})
	s.Confirm(Transaction{ID: "tx-1"})
	if s.Confirm(Transaction{ID: "tx-dup"}) {
		t.Fatalf("second confirm must be ignored")
	}
	if s.Fail(Failure{Message: "late fail"}) {
		t.Fatalf("fail after success must be ignored")
	}
	if s.Transaction.ID != "tx-1" || s.LastError != nil || s.Stage != StageSuccess {
		t.Fatalf("late signals mutated settled session: %+v", s)
	}

	// Submit cannot re-enter a settled session.
	if s.Submit(Details{Amount: 100, Method: "card"}) {
		t.Fatalf("submit after success must be ignored")
	}
}

func TestRetryAfterFailure(t *testing.T) {
	s := NewSession("PROP1001")

	if !s.Submit(Details{Amount: 1800000, Method: "card"}) {
		t.Fatalf("first submit should apply")
	}
	if s.Stage != StageProcessing {
		t.Fatalf("stage = %s, want %s", s.Stage, StageProcessing)
	}

	if !s.Fail(Failure{Message: "card declined"}) {
		t.Fatalf("fail should apply")
	}
	if s.Stage != StageInitiation || s.LastError.Message != "card declined" {
		t.Fatalf("after fail: stage=%s lastError=%+v", s.Stage, s.LastError)
	}

	if !s.Submit(Details{Amount: 1800000, Method: "card"}) {
		t.Fatalf("retry submit should apply")
	}
	if s.Stage != StageProcessing {
		t.Fatalf("stage after retry = %s, want %s", s.Stage, StageProcessing)
	}
	if s.LastError != nil {
		t.Fatalf("fresh submit should clear previous error, got %+v", s.LastError)
	}

	if !s.Confirm(Transaction{ID: "tx-1"}) {
		t.Fatalf("confirm should apply")
	}
	if s.Stage != StageSuccess || s.Transaction.ID != "tx-1" {
		t.Fatalf("after confirm: stage=%s tx=%+v", s.Stage, s.Transaction)
	}
}
