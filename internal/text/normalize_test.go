package text

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  any
		expect string
	}{
		{name: "lowercases", input: "Software Engineer", expect: "software engineer"},
		{name: "strips tags", input: "<b>Go</b> Developer", expect: "go developer"},
		{name: "strips digits and punctuation", input: "San Francisco, CA 94105", expect: "san francisco ca "},
		{name: "keeps whitespace", input: "a\tb\nc", expect: "a\tb\nc"},
		{name: "keeps information separators", input: "a\x1cb\x1fc", expect: "a\x1cb\x1fc"},
		{name: "keeps unicode spaces", input: "a\u00a0b\u2003c", expect: "a\u00a0b\u2003c"},
		{name: "drops non ascii letters", input: "Zürich", expect: "zrich"},
		{name: "empty", input: "", expect: ""},
		{name: "nil", input: nil, expect: ""},
		{name: "number", input: 42, expect: ""},
		{name: "bool", input: true, expect: "true"},
		{name: "unclosed tag kept as text", input: "a < b", expect: "a  b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Senior <i>Backend</i> Engineer (Go/Rust)",
		"Remote - New York, NY",
		"  C++ & C# Developer  ",
		"",
		"<<nested>> tags>",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("normalize is not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestLower(t *testing.T) {
	t.Parallel()

	if got := Lower("Remote - New York"); got != "remote - new york" {
		t.Fatalf("unexpected lower result: %q", got)
	}
}
