package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/heartmarshall/myhebrew-backend/internal/adapter/kvstore"
	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

// Highlighter receives the focus after every mutation so the display can
// mark it. A nil position means nothing is focused.
type Highlighter interface {
	HighlightPosition(pos *domain.NavigationPosition)
}

// Service owns the navigation position for the text on screen. Every
// mutation is persisted best-effort under a single well-known key and
// pushed to the highlighter. All operations on empty text are no-ops
// returning nil.
type Service struct {
	log   *slog.Logger
	store kvstore.Store

	mu          sync.Mutex
	doc         Document
	pos         *domain.NavigationPosition
	highlighter Highlighter

	// Last syllable tree and the stripped-text fingerprint it belongs
	// to, kept so form toggles do not lose syllable granularity.
	tree   *domain.SyllablesData
	treeFP string
}

// NewService creates a navigation service.
func NewService(logger *slog.Logger, store kvstore.Store) *Service {
	return &Service{
		log:   logger.With("service", "navigation"),
		store: store,
	}
}

// SetHighlighter attaches the display-side highlighter. Optional; the
// service works without one.
func (s *Service) SetHighlighter(h Highlighter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlighter = h
}

// SetText replaces the navigable document. A previously persisted
// position is restored (clamped into the new bounds) so a reader picks
// up where they left off; empty or whitespace-only text deactivates
// navigation entirely.
//
// A nil tree does not discard syllable granularity when text is another
// form of the same content: the last tree is reused as long as the
// stripped fingerprint matches.
func (s *Service) SetText(ctx context.Context, text string, tree *domain.SyllablesData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.NormalizeText(text) == "" {
		s.doc = Document{}
		s.tree, s.treeFP = nil, ""
		s.setPosition(nil)
		return
	}

	fp := domain.Fingerprint(domain.RemoveNiqqud(text))
	switch {
	case tree != nil:
		s.tree, s.treeFP = tree, fp
	case s.treeFP == fp:
		tree = s.tree
	default:
		s.tree, s.treeFP = nil, ""
	}

	s.doc = NewDocument(text, tree)

	pos := s.loadPersisted(ctx)
	if pos == nil {
		pos = &domain.NavigationPosition{Mode: domain.NavWords}
	}
	clamped := Clamp(s.doc, *pos)
	s.setPosition(&clamped)
	s.persist(ctx, clamped)
}

// GetCurrentPosition returns the current focus, or nil when navigation
// is inactive.
func (s *Service) GetCurrentPosition() *domain.NavigationPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos == nil {
		return nil
	}
	p := *s.pos
	return &p
}

// FocusNext moves one unit forward at the current granularity.
func (s *Service) FocusNext(ctx context.Context) *domain.NavigationPosition {
	return s.mutate(ctx, func(pos domain.NavigationPosition) domain.NavigationPosition {
		return Next(s.doc, pos)
	})
}

// FocusPrev moves one unit backward at the current granularity.
func (s *Service) FocusPrev(ctx context.Context) *domain.NavigationPosition {
	return s.mutate(ctx, func(pos domain.NavigationPosition) domain.NavigationPosition {
		return Prev(s.doc, pos)
	})
}

// FocusUp moves to the line above via the layout.
func (s *Service) FocusUp(ctx context.Context, layout Layout) *domain.NavigationPosition {
	return s.mutate(ctx, func(pos domain.NavigationPosition) domain.NavigationPosition {
		return VerticalStep(s.doc, layout, pos, -1)
	})
}

// FocusDown moves to the line below via the layout.
func (s *Service) FocusDown(ctx context.Context, layout Layout) *domain.NavigationPosition {
	return s.mutate(ctx, func(pos domain.NavigationPosition) domain.NavigationPosition {
		return VerticalStep(s.doc, layout, pos, 1)
	})
}

// Highlight jumps straight to a position, clamped into valid bounds.
func (s *Service) Highlight(ctx context.Context, target domain.NavigationPosition) *domain.NavigationPosition {
	return s.mutate(ctx, func(domain.NavigationPosition) domain.NavigationPosition {
		return Clamp(s.doc, target)
	})
}

// SetMode switches granularity, keeping the current word.
func (s *Service) SetMode(ctx context.Context, mode domain.NavMode) *domain.NavigationPosition {
	return s.mutate(ctx, func(pos domain.NavigationPosition) domain.NavigationPosition {
		return SwitchMode(s.doc, pos, mode)
	})
}

// ResetPosition returns to the start of the document in the current
// granularity.
func (s *Service) ResetPosition(ctx context.Context) *domain.NavigationPosition {
	return s.mutate(ctx, func(pos domain.NavigationPosition) domain.NavigationPosition {
		return Reset(pos.Mode)
	})
}

// ClearHighlight deactivates navigation: the position becomes nil, the
// persisted entry is removed and the highlighter is told to clear.
func (s *Service) ClearHighlight(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setPosition(nil)
	if err := s.store.Remove(ctx, kvstore.NavigationPositionKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.WarnContext(ctx, "remove persisted position", slog.String("error", err.Error()))
	}
}

// mutate runs a transition over the current position, then persists and
// highlights the result. Inactive navigation stays inactive.
func (s *Service) mutate(ctx context.Context, fn func(domain.NavigationPosition) domain.NavigationPosition) *domain.NavigationPosition {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos == nil || s.doc.WordCount() == 0 {
		return nil
	}

	next := fn(*s.pos)
	s.setPosition(&next)
	s.persist(ctx, next)

	p := next
	return &p
}

// setPosition updates the focus and notifies the highlighter. Callers
// hold s.mu.
func (s *Service) setPosition(pos *domain.NavigationPosition) {
	s.pos = pos
	if s.highlighter != nil {
		s.highlighter.HighlightPosition(pos)
	}
}

func (s *Service) loadPersisted(ctx context.Context) *domain.NavigationPosition {
	raw, err := s.store.Get(ctx, kvstore.NavigationPositionKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "load persisted position", slog.String("error", err.Error()))
		}
		return nil
	}

	var pos domain.NavigationPosition
	if err := json.Unmarshal([]byte(raw), &pos); err != nil || !pos.Mode.IsValid() {
		return nil
	}
	return &pos
}

// persist writes the position best-effort; failures are logged, never
// surfaced. Callers hold s.mu.
func (s *Service) persist(ctx context.Context, pos domain.NavigationPosition) {
	raw, err := json.Marshal(pos)
	if err != nil {
		s.log.WarnContext(ctx, "marshal position", slog.String("error", err.Error()))
		return
	}
	if err := s.store.Set(ctx, kvstore.NavigationPositionKey, string(raw)); err != nil {
		s.log.WarnContext(ctx, "persist position", slog.String("error", err.Error()))
	}
}
