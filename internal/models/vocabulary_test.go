package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVocabulary(t *testing.T) {
	vocab := &Vocabulary{
		Categories: map[string]string{"1": "Dining", "2": "Housing"},
		Tags:       map[string]string{"1": "Dining-lunch", "2": "Dining-dinner", "3": "Housing-rent"},
	}

	if !vocab.HasCategory("Dining") {
		t.Error("Expected Dining to be a known category")
	}
	if vocab.HasCategory("dining") {
		t.Error("Expected category lookup to be case sensitive")
	}
	if !vocab.HasTag("Housing-rent") {
		t.Error("Expected Housing-rent to be a known tag")
	}
	if vocab.HasTag("Housing-water") {
		t.Error("Expected Housing-water to be unknown")
	}

	if diff := cmp.Diff([]string{"Dining", "Housing"}, vocab.CategoryNames()); diff != "" {
		t.Errorf("CategoryNames() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dining-dinner", "Dining-lunch"}, vocab.FamilyTags("Dining")); diff != "" {
		t.Errorf("FamilyTags() mismatch (-want +got):\n%s", diff)
	}
	if got := vocab.FamilyTags("Travel"); len(got) != 0 {
		t.Errorf("FamilyTags(Travel) = %v, expected none", got)
	}
}

func TestNewBatchResult(t *testing.T) {
	draft := TransactionDraft{Description: "lunch"}
	outcomes := []RecordOutcome{
		SuccessOutcome(draft, []byte(`{}`)),
		ValidationErrorOutcome(draft, "bad category"),
		SubmissionErrorOutcome(draft, "timeout"),
	}

	result := NewBatchResult("b1", false, outcomes)
	if result.SuccessCount != 1 || result.ErrorCount != 2 {
		t.Errorf("counts = %d/%d, expected 1/2", result.SuccessCount, result.ErrorCount)
	}
	if result.SuccessCount+result.ErrorCount != len(result.Outcomes) {
		t.Error("Expected counts to cover every outcome")
	}
	if outcomes[1].Status != OutcomeValidationError || outcomes[2].Status != OutcomeSubmissionError {
		t.Errorf("unexpected statuses %q, %q", outcomes[1].Status, outcomes[2].Status)
	}
}
