package textfilter

import "testing"

func TestApplyReplacesWords(t *testing.T) {
	f := New(true)

	tests := []struct {
		in   string
		want string
	}{
		{"What the hell is that?", "What the heck is that?"},
		{"Damn, the bridge is out.", "Dang, the bridge is out."},
		{"DAMN the torpedoes", "DANG the torpedoes"},
		{"The troll shouts bullshit at you.", "The troll shouts nonsense at you."},
		// Word boundaries: embedded matches stay untouched.
		{"The classic assassin waits.", "The classic assassin waits."},
		{"Hello there.", "Hello there."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := f.Apply(tt.in); got != tt.want {
			t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyDisabledPassesThrough(t *testing.T) {
	f := New(false)
	in := "Damn, the bridge is out."
	if got := f.Apply(in); got != in {
		t.Errorf("Apply(%q) = %q, want untouched", in, got)
	}
}

// Fragments are filtered independently; a flagged word split across two
// fragments passes through, which is the accepted cost of streaming.
func TestApplyPerFragment(t *testing.T) {
	f := New(true)
	a, b := f.Apply("da"), f.Apply("mn")
	if a+b != "damn" {
		t.Errorf("split fragments = %q + %q, expected pass-through", a, b)
	}
}

func TestRatingRequiresFilter(t *testing.T) {
	tests := []struct {
		rating string
		want   bool
	}{
		{"G", true},
		{"PG", true},
		{"PG13", true},
		{"PG-13", true},
		{"pg-13", true},
		{" pg ", true},
		{"R", false},
		{"M", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := RatingRequiresFilter(tt.rating); got != tt.want {
			t.Errorf("RatingRequiresFilter(%q) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
