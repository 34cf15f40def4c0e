package domain

import "testing"

func TestNewTextCache(t *testing.T) {
	t.Parallel()

	c := NewTextCache("שָׁלוֹם עולם")
	if c.Original != "שָׁלוֹם עולם" {
		t.Errorf("Original = %q", c.Original)
	}
	if c.Clean != "שלום עולם" {
		t.Errorf("Clean = %q, want stripped original", c.Clean)
	}
	if c.HasFull() {
		t.Error("new cache should have no full form")
	}
}

func TestTextCache_Form(t *testing.T) {
	t.Parallel()

	c := TextCache{Original: "שָׁלוֹם שלום", Clean: "שלום שלום", Full: "שָׁלוֹם שָׁלוֹם"}

	tests := []struct {
		mode   DisplayMode
		want   string
		wantOK bool
	}{
		{mode: DisplayOriginal, want: "שָׁלוֹם שלום", wantOK: true},
		{mode: DisplayClean, want: "שלום שלום", wantOK: true},
		{mode: DisplayFull, want: "שָׁלוֹם שָׁלוֹם", wantOK: true},
	}
	for _, tt := range tests {
		got, ok := c.Form(tt.mode)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Form(%v) = (%q, %v), want (%q, %v)", tt.mode, got, ok, tt.want, tt.wantOK)
		}
	}

	c.Full = ""
	if _, ok := c.Form(DisplayFull); ok {
		t.Error("Form(full) should report absent when Full is empty")
	}
}

func TestTextCache_MatchesAnyForm(t *testing.T) {
	t.Parallel()

	c := TextCache{Original: "שָׁלוֹם שלום", Clean: "שלום שלום", Full: "שָׁלוֹם שָׁלוֹם"}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "original", text: "שָׁלוֹם שלום", want: true},
		{name: "clean", text: "שלום שלום", want: true},
		{name: "full", text: "שָׁלוֹם שָׁלוֹם", want: true},
		{name: "trimmed match", text: "  שלום שלום\n", want: true},
		{name: "genuine edit", text: "שלום חדש", want: false},
	}
	for _, tt := range tests {
		if got := c.MatchesAnyForm(tt.text); got != tt.want {
			t.Errorf("%s: MatchesAnyForm(%q) = %v, want %v", tt.name, tt.text, got, tt.want)
		}
	}
}

func TestSyllableWord(t *testing.T) {
	t.Parallel()

	w := NewSyllableWord([]string{"דַּ", "נִי"})
	if w.Word != "דני" {
		t.Errorf("canonical word = %q, want stripped concatenation", w.Word)
	}

	stripped := w.Stripped()
	if len(stripped.Syllables) != 2 {
		t.Fatalf("stripped syllable count = %d", len(stripped.Syllables))
	}
	for _, s := range stripped.Syllables {
		if HasNiqqud(s) {
			t.Errorf("stripped syllable %q still vocalized", s)
		}
	}
	// Source word untouched.
	if w.Syllables[0] != "דַּ" {
		t.Error("Stripped must not mutate the receiver")
	}
}
