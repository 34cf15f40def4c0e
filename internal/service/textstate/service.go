package textstate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/heartmarshall/myhebrew-backend/internal/adapter/kvstore"
	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

// cacheSchemaVersion invalidates persisted caches when the JSON layout
// changes.
const cacheSchemaVersion = 1

type cacheEnvelope struct {
	Version int              `json:"version"`
	Cache   domain.TextCache `json:"cache"`
}

// EncodeCache serializes a cache into its store key and value. The key is
// derived from the clean form so every form of the same text maps to one
// entry.
func EncodeCache(cache domain.TextCache) (key, value string, err error) {
	raw, err := json.Marshal(cacheEnvelope{Version: cacheSchemaVersion, Cache: cache})
	if err != nil {
		return "", "", err
	}
	return kvstore.NiqqudCachePrefix + domain.Fingerprint(cache.Clean), string(raw), nil
}

// CacheKey returns the store key under which the cache for text lives.
func CacheKey(text string) string {
	return kvstore.NiqqudCachePrefix + domain.Fingerprint(domain.RemoveNiqqud(text))
}

// DecodeCache parses a stored cache value. It returns false on a malformed
// value or a schema version mismatch.
func DecodeCache(raw string) (domain.TextCache, bool) {
	var env cacheEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || env.Version != cacheSchemaVersion {
		return domain.TextCache{}, false
	}
	return env.Cache, true
}

// vocalizer is the provider capability the service needs.
type vocalizer interface {
	Vocalize(ctx context.Context, text string) (string, error)
	Complete(ctx context.Context, text string) (string, error)
}

// Service owns the text state for one reader session and executes the
// machine's intents: provider calls with response validation and stale
// discarding, best-effort persistence, and display tracking.
type Service struct {
	log      *slog.Logger
	provider vocalizer
	store    kvstore.Store

	mu        sync.Mutex
	state     State
	current   string // text currently displayed
	currentFP string // fingerprint of the stripped current text
}

// NewService creates a text-state service.
func NewService(logger *slog.Logger, provider vocalizer, store kvstore.Store) *Service {
	return &Service{
		log:      logger.With("service", "textstate"),
		provider: provider,
		store:    store,
	}
}

// Snapshot is the externally visible engine state.
type Snapshot struct {
	Text    string              `json:"text"`
	Mode    domain.DisplayMode  `json:"mode,omitempty"`
	Target  domain.TargetState  `json:"target,omitempty"`
	Status  domain.NiqqudStatus `json:"status"`
	HasFull bool                `json:"has_full"`
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Text:    s.current,
		Mode:    s.state.Mode,
		Target:  s.state.Target,
		Status:  s.state.Status,
		HasFull: s.state.Cache != nil && s.state.Cache.HasFull(),
	}
}

// Snapshot returns the current engine state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Cache returns a copy of the three-form cache, or nil if none exists.
func (s *Service) Cache() *domain.TextCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Cache == nil {
		return nil
	}
	c := *s.state.Cache
	return &c
}

// Mode returns the currently displayed form.
func (s *Service) Mode() domain.DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Mode
}

// SetText applies an external text replacement. When the cache is dropped,
// a previously persisted cache for the same stripped text is restored, so
// a reader returning to a text keeps its vocalized form across restarts.
func (s *Service) SetText(ctx context.Context, text string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, intents := ApplyExternalTextChange(s.state, text)
	s.state = next
	s.setCurrentLocked(text)

	if s.state.Cache == nil {
		if cache, ok := s.loadPersisted(ctx, text); ok {
			s.state.Cache = &cache
			s.log.DebugContext(ctx, "restored persisted niqqud cache")
		}
	}

	s.runSyncIntents(ctx, intents)
	return s.snapshotLocked()
}

// RemoveNiqqud displays the stripped form of the current text.
func (s *Service) RemoveNiqqud(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, intents, err := RemoveNiqqud(s.state, s.current)
	if err != nil {
		return s.snapshotLocked(), err
	}
	s.state = next
	s.runSyncIntents(ctx, intents)
	return s.snapshotLocked(), nil
}

// AddNiqqud displays the fully vocalized form, calling the provider on a
// cache miss.
func (s *Service) AddNiqqud(ctx context.Context) (Snapshot, error) {
	return s.vocalize(ctx, AddNiqqud)
}

// CompleteNiqqud completes a partially pointed text's niqqud.
func (s *Service) CompleteNiqqud(ctx context.Context) (Snapshot, error) {
	return s.vocalize(ctx, CompleteNiqqud)
}

// ToggleNiqqud flips between the vocalized and unvocalized views.
func (s *Service) ToggleNiqqud(ctx context.Context) (Snapshot, error) {
	return s.vocalize(ctx, ToggleNiqqud)
}

// SwitchTo displays the requested cached form; no-op if absent.
func (s *Service) SwitchTo(ctx context.Context, mode domain.DisplayMode) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next    State
		intents []Intent
	)
	switch mode {
	case domain.DisplayOriginal:
		next, intents = SwitchToOriginal(s.state)
	case domain.DisplayClean:
		next, intents = SwitchToClean(s.state)
	case domain.DisplayFull:
		next, intents = SwitchToFull(s.state)
	default:
		return s.snapshotLocked()
	}
	s.state = next
	s.runSyncIntents(ctx, intents)
	return s.snapshotLocked()
}

type transition func(State, string) (State, []Intent, error)

// vocalize runs a transition that may produce a provider call, executes
// it, and applies the validated reply — unless the text changed while the
// call was in flight, in which case the reply is discarded.
func (s *Service) vocalize(ctx context.Context, t transition) (Snapshot, error) {
	s.mu.Lock()

	next, intents, err := t(s.state, s.current)
	if err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}
	s.state = next

	var call *CallProvider
	for _, intent := range intents {
		if c, ok := intent.(CallProvider); ok {
			call = &c
			continue
		}
		s.runSyncIntent(ctx, intent)
	}

	if call == nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	// Provider round-trip happens unlocked; at most one call per
	// operation, no automatic retry.
	reply, err := s.callProvider(ctx, *call)
	if err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentFP != call.Fingerprint {
		s.log.WarnContext(ctx, "discarding stale vocalization reply",
			slog.String("request_fp", call.Fingerprint),
			slog.String("current_fp", s.currentFP),
		)
		return s.snapshotLocked(), domain.ErrStaleResponse
	}

	next, intents, err = AcceptVocalized(s.state, call.Text, reply)
	if err != nil {
		return s.snapshotLocked(), err
	}
	s.state = next
	s.runSyncIntents(ctx, intents)
	return s.snapshotLocked(), nil
}

func (s *Service) callProvider(ctx context.Context, call CallProvider) (string, error) {
	switch call.Variant {
	case VariantCompletion:
		return s.provider.Complete(ctx, call.Text)
	default:
		return s.provider.Vocalize(ctx, call.Text)
	}
}

func (s *Service) runSyncIntents(ctx context.Context, intents []Intent) {
	for _, intent := range intents {
		s.runSyncIntent(ctx, intent)
	}
}

func (s *Service) runSyncIntent(ctx context.Context, intent Intent) {
	switch it := intent.(type) {
	case ShowText:
		s.setCurrentLocked(it.Text)
	case PersistCache:
		s.persistCache(ctx, it.Cache)
	case CallProvider:
		// Handled by vocalize; reaching here is a programming error.
		s.log.Error("unexpected provider intent in sync path")
	}
}

func (s *Service) setCurrentLocked(text string) {
	s.current = text
	s.currentFP = domain.Fingerprint(domain.RemoveNiqqud(text))
}

// persistCache writes the cache best-effort; failures are logged, never
// surfaced, and never block the display update.
func (s *Service) persistCache(ctx context.Context, cache domain.TextCache) {
	key, value, err := EncodeCache(cache)
	if err != nil {
		s.log.WarnContext(ctx, "marshal niqqud cache", slog.String("error", err.Error()))
		return
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		s.log.WarnContext(ctx, "persist niqqud cache", slog.String("error", err.Error()))
	}
}

func (s *Service) loadPersisted(ctx context.Context, text string) (domain.TextCache, bool) {
	raw, err := s.store.Get(ctx, CacheKey(text))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "load niqqud cache", slog.String("error", err.Error()))
		}
		return domain.TextCache{}, false
	}

	cache, ok := DecodeCache(raw)
	if !ok || !cache.MatchesAnyForm(text) {
		return domain.TextCache{}, false
	}
	return cache, true
}

// ErrorKind maps an engine error to its wire name. Unknown errors map to
// "internal".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrMissingModel):
		return "missing_model_selection"
	case errors.Is(err, domain.ErrProviderEmptyResponse):
		return "provider_empty_response"
	case errors.Is(err, domain.ErrNoVocalization):
		return "provider_no_vocalization"
	case errors.Is(err, domain.ErrUnparsableSyllables):
		return "provider_unparsable_syllables"
	case errors.Is(err, domain.ErrCacheInconsistency):
		return "cache_inconsistency"
	case errors.Is(err, domain.ErrStaleResponse):
		return "stale_response"
	case errors.Is(err, domain.ErrProvider):
		return "provider_http_error"
	default:
		return "internal"
	}
}
