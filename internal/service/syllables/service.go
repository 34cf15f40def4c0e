// Package syllables acquires and caches the word→syllables tree for a
// text and reprojects it onto the displayed text form.
package syllables

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/heartmarshall/myhebrew-backend/internal/adapter/kvstore"
	"github.com/heartmarshall/myhebrew-backend/internal/domain"
	"github.com/heartmarshall/myhebrew-backend/internal/parser"
)

// treeSchemaVersion invalidates persisted trees when the JSON layout
// changes.
const treeSchemaVersion = 1

type treeEnvelope struct {
	Version int                  `json:"version"`
	Data    domain.SyllablesData `json:"data"`
}

// syllabifier is the provider capability the service needs.
type syllabifier interface {
	Syllabify(ctx context.Context, text string) (string, error)
}

// Service fetches syllable trees with a fingerprint-keyed cache in front
// of the provider. A cache hit must prevent a duplicate provider call; a
// reply for a text that is no longer current is discarded.
type Service struct {
	log      *slog.Logger
	provider syllabifier
	store    kvstore.Store

	mu        sync.Mutex
	currentFP string
}

// NewService creates a syllables service.
func NewService(logger *slog.Logger, provider syllabifier, store kvstore.Store) *Service {
	return &Service{
		log:      logger.With("service", "syllables"),
		provider: provider,
		store:    store,
	}
}

// SetCurrentText records the text currently on screen; replies for any
// other text are discarded from now on. The tag is taken from the stripped
// form so every display form of one text carries the same tag.
func (s *Service) SetCurrentText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFP = domain.Fingerprint(domain.RemoveNiqqud(text))
}

// Get returns the syllable tree for text, from cache when possible.
// text must be the fully vocalized form; the tree is keyed by its
// fingerprint.
func (s *Service) Get(ctx context.Context, text string) (*domain.SyllablesData, error) {
	if domain.NormalizeText(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	fp := domain.Fingerprint(text)
	key := kvstore.SyllableTreePrefix + fp

	if data, ok := s.loadCached(ctx, key); ok {
		s.log.DebugContext(ctx, "syllable tree cache hit", slog.String("fingerprint", fp))
		return data, nil
	}

	raw, err := s.provider.Syllabify(ctx, text)
	if err != nil {
		return nil, err
	}

	data, warnings := parser.ParseSyllableResponse(raw)
	if data == nil {
		return nil, domain.ErrUnparsableSyllables
	}
	for _, w := range warnings {
		s.log.WarnContext(ctx, "syllabification warning", slog.String("warning", w))
	}

	s.persist(ctx, key, data)

	requestFP := domain.Fingerprint(domain.RemoveNiqqud(text))
	s.mu.Lock()
	current := s.currentFP
	s.mu.Unlock()
	if current != "" && current != requestFP {
		s.log.WarnContext(ctx, "discarding stale syllabification reply",
			slog.String("request_fp", requestFP),
			slog.String("current_fp", current),
		)
		return nil, domain.ErrStaleResponse
	}

	return data, nil
}

// Reconciled returns the tree for the full text projected onto the given
// display mode. Returns domain.ErrCacheInconsistency when alignment is
// impossible.
func (s *Service) Reconciled(ctx context.Context, fullText string, mode domain.DisplayMode, cache *domain.TextCache) (*domain.SyllablesData, error) {
	tree, err := s.Get(ctx, fullText)
	if err != nil {
		return nil, err
	}

	out := ApplyDisplayMode(tree, mode, cache)
	if out == nil {
		return nil, domain.ErrCacheInconsistency
	}
	return out, nil
}

func (s *Service) loadCached(ctx context.Context, key string) (*domain.SyllablesData, bool) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "load syllable tree", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var env treeEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || env.Version != treeSchemaVersion {
		return nil, false
	}
	if len(env.Data.Words) == 0 {
		return nil, false
	}
	return &env.Data, true
}

// persist writes the tree best-effort; failures are logged, never surfaced.
func (s *Service) persist(ctx context.Context, key string, data *domain.SyllablesData) {
	raw, err := json.Marshal(treeEnvelope{Version: treeSchemaVersion, Data: *data})
	if err != nil {
		s.log.WarnContext(ctx, "marshal syllable tree", slog.String("error", err.Error()))
		return
	}
	if err := s.store.Set(ctx, key, string(raw)); err != nil {
		s.log.WarnContext(ctx, "persist syllable tree", slog.String("error", err.Error()))
	}
}
