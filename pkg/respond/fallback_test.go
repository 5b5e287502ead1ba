package respond

import "testing"

func TestSalvage_ExtractsNarrationField(t *testing.T) {
	// Unparseable even after repair would be the caller's situation; the
	// narration field is still recoverable.
	raw := `{"responseType":"fullScene","narrationText":"You squeeze through the crack,"locationId":}`
	if got := Salvage(raw); got != "You squeeze through the crack," {
		t.Errorf("Salvage() = %q", got)
	}
}

func TestSalvage_ApologyForOpaqueJSON(t *testing.T) {
	raw := `{"locationId": 42, "exits": }`
	if got := Salvage(raw); got != ApologyNarration {
		t.Errorf("Salvage() = %q, want apology", got)
	}
}

func TestSalvage_PlainTextPassesThrough(t *testing.T) {
	raw := "The cave narrows ahead."
	if got := Salvage(raw); got != raw {
		t.Errorf("Salvage() = %q, want input unchanged", got)
	}
}

// The player must never see raw JSON, whatever tier fires.
func TestSalvage_NeverReturnsJSON(t *testing.T) {
	inputs := []string{
		`{"locationId":"x"}`,
		`{`,
		`{"narrationText":""}`,
	}
	for _, in := range inputs {
		got := Salvage(in)
		if got != ApologyNarration {
			t.Errorf("Salvage(%q) = %q, want apology", in, got)
		}
	}
}
