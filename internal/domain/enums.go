package domain

// NiqqudStatus classifies how vocalized a text is.
type NiqqudStatus string

const (
	NiqqudNone    NiqqudStatus = "NONE"
	NiqqudPartial NiqqudStatus = "PARTIAL"
	NiqqudFull    NiqqudStatus = "FULL"
)

func (s NiqqudStatus) String() string { return string(s) }

func (s NiqqudStatus) IsValid() bool {
	switch s {
	case NiqqudNone, NiqqudPartial, NiqqudFull:
		return true
	}
	return false
}

// DisplayMode identifies which of the three cached text forms is shown.
type DisplayMode string

const (
	DisplayOriginal DisplayMode = "ORIGINAL"
	DisplayClean    DisplayMode = "CLEAN"
	DisplayFull     DisplayMode = "FULL"
)

func (m DisplayMode) String() string { return string(m) }

func (m DisplayMode) IsValid() bool {
	switch m {
	case DisplayOriginal, DisplayClean, DisplayFull:
		return true
	}
	return false
}

// TargetState records which form "restore vocalization" should produce.
// A reader who started from partially vocalized text toggles back to the
// original, not to the fully vocalized form.
type TargetState string

const (
	TargetOriginal TargetState = "ORIGINAL"
	TargetFull     TargetState = "FULL"
)

func (t TargetState) String() string { return string(t) }

func (t TargetState) IsValid() bool {
	switch t {
	case TargetOriginal, TargetFull:
		return true
	}
	return false
}

// NavMode is the hierarchical navigation granularity.
type NavMode string

const (
	NavWords     NavMode = "WORDS"
	NavSyllables NavMode = "SYLLABLES"
	NavLetters   NavMode = "LETTERS"
)

func (m NavMode) String() string { return string(m) }

func (m NavMode) IsValid() bool {
	switch m {
	case NavWords, NavSyllables, NavLetters:
		return true
	}
	return false
}
