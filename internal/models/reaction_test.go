package models

import "testing"

func TestParseReaction(t *testing.T) {
	tests := []struct {
		in   string
		want Reaction
		ok   bool
	}{
		{"like", ReactionLike, true},
		{" Heart ", ReactionHeart, true},
		{"&#128557;", ReactionCry, true},
		{"angry", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseReaction(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseReaction(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReactionsHaveEmoji(t *testing.T) {
	rs := Reactions()
	if len(rs) != 5 {
		t.Fatalf("Expected 5 reactions, got %d", len(rs))
	}
	for _, r := range rs {
		if !r.Valid() || r.Emoji() == "" {
			t.Errorf("Reaction %q has no emoji", r)
		}
	}
}

func TestComposeFullName(t *testing.T) {
	a := Author{FirstName: "Jane", LastName: "Doe"}
	a.ComposeFullName()
	if a.FullName != "Jane Doe" {
		t.Errorf("Expected Jane Doe, got %q", a.FullName)
	}

	a = Author{FirstName: "Jane", FullName: "J. D."}
	a.ComposeFullName()
	if a.FullName != "J. D." {
		t.Errorf("Explicit full name was overwritten: %q", a.FullName)
	}
}
