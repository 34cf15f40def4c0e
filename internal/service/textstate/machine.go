// Package textstate implements the three-form text cache and its display
// state machine. The transitions are pure functions over an immutable
// State that return side-effect intents; Service executes the intents
// (provider calls, persistence, display updates).
package textstate

import (
	"strings"

	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

// State is the engine's view of one text: the three-form cache (nil until
// the first toggle), the form currently displayed, the form a "restore
// vocalization" toggle should produce, and the classifier status of the
// text as originally entered.
type State struct {
	Cache  *domain.TextCache
	Mode   domain.DisplayMode
	Target domain.TargetState
	Status domain.NiqqudStatus
}

// PromptVariant selects the provider prompt for a vocalization call.
type PromptVariant string

const (
	// VariantFresh vocalizes text that has no niqqud at all.
	VariantFresh PromptVariant = "FRESH"
	// VariantCompletion finishes a partially pointed text, keeping the
	// marks it already has.
	VariantCompletion PromptVariant = "COMPLETION"
)

// Intent is a side effect requested by a transition.
type Intent interface{ isIntent() }

// ShowText asks the adapter to display text in the given mode.
type ShowText struct {
	Text string
	Mode domain.DisplayMode
}

// CallProvider asks the adapter to request vocalization of Text.
// Fingerprint identifies the text the call was issued for; a reply whose
// fingerprint no longer matches the current text must be discarded.
type CallProvider struct {
	Variant     PromptVariant
	Text        string
	Fingerprint string
}

// PersistCache asks the adapter to store the three-form cache.
type PersistCache struct {
	Cache domain.TextCache
}

func (ShowText) isIntent()     {}
func (CallProvider) isIntent() {}
func (PersistCache) isIntent() {}

// ApplyExternalTextChange reconciles the state with a text that changed
// outside the engine. Echoes of internal toggles (the new text matches a
// cached form) keep the cache; a fully vocalized replacement rebuilds it;
// anything else drops it.
func ApplyExternalTextChange(s State, newText string) (State, []Intent) {
	if domain.IsFullyNiqqud(newText) {
		if s.Cache != nil && trimEq(newText, s.Cache.Full) {
			// Same full form again: keep the recorded original, which may
			// have been partially vocalized.
			s.Mode = domain.DisplayFull
			s.Target = domain.TargetFull
			return s, nil
		}
		cache := domain.NewTextCache(newText)
		cache.Full = newText
		s.Cache = &cache
		s.Mode = domain.DisplayFull
		s.Target = domain.TargetFull
		s.Status = domain.NiqqudFull
		return s, []Intent{PersistCache{Cache: cache}}
	}

	if s.Cache != nil && s.Cache.MatchesAnyForm(newText) {
		// Echo of an internal toggle, not a genuine edit.
		s.Mode = matchedMode(*s.Cache, newText)
		return s, nil
	}

	// Genuine edit: the cache no longer describes this text.
	s.Cache = nil
	s.Mode = domain.DisplayOriginal
	s.Status = domain.DetectNiqqud(newText)
	if s.Status == domain.NiqqudNone {
		s.Target = domain.TargetFull
	} else {
		s.Target = domain.TargetOriginal
	}
	return s, nil
}

// RemoveNiqqud displays the niqqud-stripped form, creating the cache on
// first use.
func RemoveNiqqud(s State, current string) (State, []Intent, error) {
	if strings.TrimSpace(current) == "" {
		return s, nil, domain.ErrEmptyInput
	}

	if s.Cache != nil {
		s.Mode = domain.DisplayClean
		return s, []Intent{ShowText{Text: s.Cache.Clean, Mode: domain.DisplayClean}}, nil
	}

	cache := domain.NewTextCache(current)
	s.Cache = &cache
	s.Mode = domain.DisplayClean
	s.Status = domain.DetectNiqqud(current)
	if s.Target == "" {
		if s.Status == domain.NiqqudNone {
			s.Target = domain.TargetFull
		} else {
			s.Target = domain.TargetOriginal
		}
	}
	return s, []Intent{
		ShowText{Text: cache.Clean, Mode: domain.DisplayClean},
		PersistCache{Cache: cache},
	}, nil
}

// AddNiqqud displays the fully vocalized form: from the cache when
// available, otherwise by requesting a fresh vocalization from the
// provider. Cache hits must short-circuit the network call.
func AddNiqqud(s State, current string) (State, []Intent, error) {
	return requestFull(s, current, VariantFresh)
}

// CompleteNiqqud is AddNiqqud for a text whose original form already had
// partial niqqud; the provider is asked to complete, not replace.
func CompleteNiqqud(s State, current string) (State, []Intent, error) {
	return requestFull(s, current, VariantCompletion)
}

func requestFull(s State, current string, variant PromptVariant) (State, []Intent, error) {
	if strings.TrimSpace(current) == "" {
		return s, nil, domain.ErrEmptyInput
	}

	if s.Cache != nil && s.Cache.HasFull() {
		s.Mode = domain.DisplayFull
		s.Target = domain.TargetFull
		return s, []Intent{ShowText{Text: s.Cache.Full, Mode: domain.DisplayFull}}, nil
	}

	text := current
	if variant == VariantCompletion && s.Cache != nil {
		// Completion needs the partially pointed original, not whatever
		// form happens to be on screen.
		text = s.Cache.Original
	}

	// The tag uses the stripped form so that toggling between forms of the
	// same text does not invalidate an in-flight call, while a genuine
	// edit does.
	return s, []Intent{CallProvider{
		Variant:     variant,
		Text:        text,
		Fingerprint: domain.Fingerprint(domain.RemoveNiqqud(text)),
	}}, nil
}

// AcceptVocalized validates a provider reply for requestText and, on
// acceptance, records it as the full form. Rejects with a typed error
// when the reply is empty, does not reduce to the input when stripped,
// or carries no niqqud at all.
func AcceptVocalized(s State, requestText, reply string) (State, []Intent, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return s, nil, domain.ErrProviderEmptyResponse
	}
	if !domain.HasNiqqud(reply) {
		return s, nil, domain.ErrNoVocalization
	}

	strippedReply := domain.NormalizeText(domain.RemoveNiqqud(reply))
	strippedInput := domain.NormalizeText(domain.RemoveNiqqud(requestText))
	if strippedReply != strippedInput {
		return s, nil, domain.ErrNoVocalization
	}

	if s.Cache != nil && domain.NormalizeText(s.Cache.Clean) == strippedInput {
		cache := *s.Cache
		cache.Full = reply
		s.Cache = &cache
	} else {
		cache := domain.NewTextCache(requestText)
		cache.Full = reply
		s.Cache = &cache
		s.Status = domain.DetectNiqqud(requestText)
	}
	s.Mode = domain.DisplayFull
	s.Target = domain.TargetFull

	return s, []Intent{
		ShowText{Text: reply, Mode: domain.DisplayFull},
		PersistCache{Cache: *s.Cache},
	}, nil
}

// SwitchToOriginal displays the cached original form. No-op without a cache.
func SwitchToOriginal(s State) (State, []Intent) {
	if s.Cache == nil {
		return s, nil
	}
	s.Mode = domain.DisplayOriginal
	s.Target = domain.TargetOriginal
	return s, []Intent{ShowText{Text: s.Cache.Original, Mode: domain.DisplayOriginal}}
}

// SwitchToClean displays the cached stripped form. No-op without a cache.
func SwitchToClean(s State) (State, []Intent) {
	if s.Cache == nil {
		return s, nil
	}
	s.Mode = domain.DisplayClean
	return s, []Intent{ShowText{Text: s.Cache.Clean, Mode: domain.DisplayClean}}
}

// SwitchToFull displays the cached full form. No-op when it has not been
// recorded yet.
func SwitchToFull(s State) (State, []Intent) {
	if s.Cache == nil || !s.Cache.HasFull() {
		return s, nil
	}
	s.Mode = domain.DisplayFull
	s.Target = domain.TargetFull
	return s, []Intent{ShowText{Text: s.Cache.Full, Mode: domain.DisplayFull}}
}

// ToggleNiqqud flips between the vocalized and unvocalized views of the
// currently displayed text.
func ToggleNiqqud(s State, current string) (State, []Intent, error) {
	if strings.TrimSpace(current) == "" {
		return s, nil, domain.ErrEmptyInput
	}

	if domain.HasNiqqud(current) {
		return RemoveNiqqud(s, current)
	}

	if s.Target == domain.TargetOriginal {
		next, intents := SwitchToOriginal(s)
		return next, intents, nil
	}

	// Target is full (or not yet recorded, which means the text never had
	// niqqud to return to).
	if s.Cache != nil && s.Cache.HasFull() {
		next, intents := SwitchToFull(s)
		return next, intents, nil
	}
	if s.Status == domain.NiqqudPartial {
		return CompleteNiqqud(s, current)
	}
	return AddNiqqud(s, current)
}

func trimEq(a, b string) bool {
	return b != "" && strings.TrimSpace(a) == strings.TrimSpace(b)
}

func matchedMode(c domain.TextCache, text string) domain.DisplayMode {
	t := strings.TrimSpace(text)
	switch {
	case c.Full != "" && t == strings.TrimSpace(c.Full):
		return domain.DisplayFull
	case t == strings.TrimSpace(c.Original):
		return domain.DisplayOriginal
	default:
		return domain.DisplayClean
	}
}
