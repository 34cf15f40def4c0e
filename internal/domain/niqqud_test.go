package domain

import "testing"

func TestIsNiqqudMark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    rune
		want bool
	}{
		{name: "etnahta, range start", r: '֑', want: true},
		{name: "qamats", r: 'ָ', want: true},
		{name: "dagesh", r: 'ּ', want: true},
		{name: "qamats qatan, range end", r: 'ׇ', want: true},
		{name: "maqaf inside range", r: '־', want: true},
		{name: "hebrew letter alef", r: 'א', want: false},
		{name: "hebrew letter tav", r: 'ת', want: false},
		{name: "latin letter", r: 'a', want: false},
		{name: "space", r: ' ', want: false},
		{name: "one below range", r: '֐', want: false},
		{name: "one above range", r: '׈', want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsNiqqudMark(tt.r); got != tt.want {
				t.Errorf("IsNiqqudMark(%U) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestRemoveNiqqud(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no niqqud unchanged", input: "שלום עולם", want: "שלום עולם"},
		{name: "strips vowel points", input: "שָׁלוֹם", want: "שלום"},
		{name: "mixed words", input: "שָׁלוֹם עולם", want: "שלום עולם"},
		{name: "punctuation preserved", input: "שָׁלוֹם, עוֹלָם!", want: "שלום, עולם!"},
		{name: "non-hebrew preserved", input: "hello שָׁלוֹם 123", want: "hello שלום 123"},
		{name: "whitespace preserved", input: "  שָׁלוֹם\nעוֹלָם", want: "  שלום\nעולם"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RemoveNiqqud(tt.input); got != tt.want {
				t.Errorf("RemoveNiqqud(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRemoveNiqqud_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "שָׁלוֹם עוֹלָם", "דַּנִי קָם", "plain text"}
	for _, input := range inputs {
		once := RemoveNiqqud(input)
		twice := RemoveNiqqud(once)
		if once != twice {
			t.Errorf("RemoveNiqqud not idempotent for %q: %q != %q", input, once, twice)
		}
		for _, r := range once {
			if IsNiqqudMark(r) {
				t.Errorf("RemoveNiqqud(%q) still contains mark %U", input, r)
			}
		}
	}
}

func TestDetectNiqqud(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  NiqqudStatus
	}{
		{name: "empty", input: "", want: NiqqudNone},
		{name: "whitespace only", input: "   ", want: NiqqudNone},
		{name: "non-hebrew only", input: "hello world 42", want: NiqqudNone},
		{name: "plain hebrew", input: "שלום עולם", want: NiqqudNone},
		{name: "half vocalized is partial", input: "שָׁלוֹם שלום", want: NiqqudPartial},
		{name: "all vocalized is full", input: "שָׁלוֹם שָׁלוֹם שָׁלוֹם", want: NiqqudFull},
		{name: "single vocalized word is full", input: "שָׁלוֹם", want: NiqqudFull},
		{name: "four of five is full", input: "שָׁלוֹם עוֹלָם טוֹב מְאֹד שלום", want: NiqqudFull},
		{name: "three of five is partial", input: "שָׁלוֹם עוֹלָם טוֹב מאד שלום", want: NiqqudPartial},
		{name: "non-hebrew tokens ignored", input: "hello שָׁלוֹם world", want: NiqqudFull},
		{name: "stripped text is none", input: RemoveNiqqud("שָׁלוֹם עוֹלָם"), want: NiqqudNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectNiqqud(tt.input); got != tt.want {
				t.Errorf("DetectNiqqud(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHasNiqqud_IsFullyNiqqud(t *testing.T) {
	t.Parallel()

	if HasNiqqud("שלום עולם") {
		t.Error("HasNiqqud(plain) = true")
	}
	if !HasNiqqud("שָׁלוֹם שלום") {
		t.Error("HasNiqqud(partial) = false")
	}
	if IsFullyNiqqud("שָׁלוֹם שלום") {
		t.Error("IsFullyNiqqud(partial) = true")
	}
	if !IsFullyNiqqud("שָׁלוֹם עוֹלָם") {
		t.Error("IsFullyNiqqud(full) = false")
	}
}
