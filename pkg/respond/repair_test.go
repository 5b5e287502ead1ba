package respond

import (
	"encoding/json"
	"testing"
)

func TestRepair_BalancedUnchanged(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"a":[1,2,{"b":"c"}]}`,
		`{"text":"braces in strings { [ don't count"}`,
		``,
	}
	for _, in := range inputs {
		if got := Repair(in); got != in {
			t.Errorf("Repair(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestRepair_AppendsMissingClosers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		missing int
	}{
		{"one object", `{"a":1`, 1},
		{"object in array", `{"exits":[{"direction":"north"`, 3},
		{"nested arrays", `[[[`, 3},
		{"array then object", `{"items":["sword"`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repair(tt.input)
			if len(got) != len(tt.input)+tt.missing {
				t.Errorf("Repair added %d characters, want %d: %q", len(got)-len(tt.input), tt.missing, got)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("repaired fragment is not valid JSON: %q", got)
			}
		})
	}
}

func TestRepair_ClosesUnterminatedString(t *testing.T) {
	got := Repair(`{"narrationText":"cut off mid-sent`)
	if !json.Valid([]byte(got)) {
		t.Fatalf("repaired fragment is not valid JSON: %q", got)
	}

	var decoded struct {
		NarrationText string `json:"narrationText"`
	}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.NarrationText != "cut off mid-sent" {
		t.Errorf("narrationText = %q", decoded.NarrationText)
	}
}

func TestRepair_TrailingBackslashInString(t *testing.T) {
	got := Repair(`{"text":"ends with \`)
	if !json.Valid([]byte(got)) {
		t.Errorf("repaired fragment is not valid JSON: %q", got)
	}
}

func TestRepair_EscapedQuotesDoNotTerminateString(t *testing.T) {
	got := Repair(`{"text":"she said \"wait`)
	if !json.Valid([]byte(got)) {
		t.Errorf("repaired fragment is not valid JSON: %q", got)
	}
}

func TestRepair_Idempotent(t *testing.T) {
	once := Repair(`{"a":[{"b":1`)
	twice := Repair(once)
	if once != twice {
		t.Errorf("Repair not idempotent: %q vs %q", once, twice)
	}
}
