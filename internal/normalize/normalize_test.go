package normalize

import (
	"reflect"
	"testing"
)

func TestProcessStripPunctuation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantText   string
		wantTokens []string
	}{
		{
			name:       "punctuation removed and case folded",
			input:      "What is Machine-Learning?",
			wantText:   "what is machinelearning",
			wantTokens: []string{"what", "is", "machinelearning"},
		},
		{
			name:       "whitespace runs collapsed",
			input:      "   Hello   World  ",
			wantText:   "hello world",
			wantTokens: []string{"hello", "world"},
		},
		{
			name:       "underscores and digits survive",
			input:      "what_is gpt4?",
			wantText:   "what_is gpt4",
			wantTokens: []string{"what_is", "gpt4"},
		},
		{
			name:     "punctuation only normalizes to empty",
			input:    "?!...;;;",
			wantText: "",
		},
		{
			name:     "empty input",
			input:    "",
			wantText: "",
		},
		{
			name:       "tabs and newlines are separators",
			input:      "why\tis\nthe sky blue",
			wantText:   "why is the sky blue",
			wantTokens: []string{"why", "is", "the", "sky", "blue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Process(tt.input, StripPunctuation)
			if got.Text != tt.wantText {
				t.Errorf("text: expected %q, got %q", tt.wantText, got.Text)
			}
			if len(tt.wantTokens) != 0 && !reflect.DeepEqual(got.Tokens, tt.wantTokens) {
				t.Errorf("tokens: expected %v, got %v", tt.wantTokens, got.Tokens)
			}
			if got.TokenCount() != len(got.Tokens) {
				t.Errorf("token count %d does not match tokens %v", got.TokenCount(), got.Tokens)
			}
		})
	}
}

func TestProcessKeepPunctuation(t *testing.T) {
	got := Process("What is Machine-Learning?", KeepPunctuation)
	if got.Text != "what is machine-learning?" {
		t.Errorf("expected punctuation preserved, got %q", got.Text)
	}
	if got.TokenCount() != 3 {
		t.Errorf("expected 3 tokens, got %d", got.TokenCount())
	}
}

func TestProcessIdempotent(t *testing.T) {
	inputs := []string{
		"What is Machine-Learning?",
		"   Hello   World  ",
		"?!...",
		"",
		"plain question already clean",
		"MiXeD\tCase\n\nAnd   Spaces!!!",
	}
	for _, mode := range []Mode{StripPunctuation, KeepPunctuation} {
		for _, in := range inputs {
			once := Process(in, mode)
			twice := Process(once.Text, mode)
			if twice.Text != once.Text {
				t.Errorf("mode %v: not idempotent for %q: %q != %q", mode, in, twice.Text, once.Text)
			}
			if !reflect.DeepEqual(twice.Tokens, once.Tokens) {
				t.Errorf("mode %v: tokens drifted for %q: %v != %v", mode, in, twice.Tokens, once.Tokens)
			}
		}
	}
}

func TestProcessTokensMatchSplit(t *testing.T) {
	got := Process("  How   many GPUs does;; a cluster need? ", StripPunctuation)
	if got.Text == "" {
		t.Fatal("expected non-empty normalized text")
	}
	resplit := Process(got.Text, StripPunctuation).Tokens
	if !reflect.DeepEqual(resplit, got.Tokens) {
		t.Errorf("tokens %v are not the whitespace split of %q", got.Tokens, got.Text)
	}
}
