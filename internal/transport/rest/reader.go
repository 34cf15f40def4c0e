package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/heartmarshall/myhebrew-backend/internal/domain"
	"github.com/heartmarshall/myhebrew-backend/internal/service/navigation"
	"github.com/heartmarshall/myhebrew-backend/internal/service/textstate"
)

// textService defines the minimal text-state interface needed by ReaderHandler.
type textService interface {
	SetText(ctx context.Context, text string) textstate.Snapshot
	Snapshot() textstate.Snapshot
	Cache() *domain.TextCache
	Mode() domain.DisplayMode
	RemoveNiqqud(ctx context.Context) (textstate.Snapshot, error)
	AddNiqqud(ctx context.Context) (textstate.Snapshot, error)
	CompleteNiqqud(ctx context.Context) (textstate.Snapshot, error)
	ToggleNiqqud(ctx context.Context) (textstate.Snapshot, error)
	SwitchTo(ctx context.Context, mode domain.DisplayMode) textstate.Snapshot
}

// syllableService defines the minimal syllable interface needed by ReaderHandler.
type syllableService interface {
	SetCurrentText(text string)
	Reconciled(ctx context.Context, fullText string, mode domain.DisplayMode, cache *domain.TextCache) (*domain.SyllablesData, error)
}

// navService defines the minimal navigation interface needed by ReaderHandler.
type navService interface {
	SetText(ctx context.Context, text string, tree *domain.SyllablesData)
	GetCurrentPosition() *domain.NavigationPosition
	FocusNext(ctx context.Context) *domain.NavigationPosition
	FocusPrev(ctx context.Context) *domain.NavigationPosition
	FocusUp(ctx context.Context, layout navigation.Layout) *domain.NavigationPosition
	FocusDown(ctx context.Context, layout navigation.Layout) *domain.NavigationPosition
	Highlight(ctx context.Context, target domain.NavigationPosition) *domain.NavigationPosition
	SetMode(ctx context.Context, mode domain.NavMode) *domain.NavigationPosition
	ResetPosition(ctx context.Context) *domain.NavigationPosition
	ClearHighlight(ctx context.Context)
}

// ReaderHandler serves the reading-engine REST endpoints.
type ReaderHandler struct {
	text      textService
	syllables syllableService
	nav       navService
	maxLen    int
	log       *slog.Logger
}

// NewReaderHandler creates a ReaderHandler. maxLen caps accepted text
// length in runes; zero disables the cap.
func NewReaderHandler(text textService, syllables syllableService, nav navService, maxLen int, logger *slog.Logger) *ReaderHandler {
	return &ReaderHandler{
		text:      text,
		syllables: syllables,
		nav:       nav,
		maxLen:    maxLen,
		log:       logger.With("handler", "reader"),
	}
}

type setTextRequest struct {
	Text string `json:"text"`
}

type displayModeRequest struct {
	Mode string `json:"mode"`
}

type navigateRequest struct {
	Direction string `json:"direction"`
	// Lines describes the current visual layout, outermost first, as
	// word indexes per line. Required for up/down, ignored otherwise.
	Lines [][]int `json:"lines,omitempty"`
}

type navModeRequest struct {
	Mode string `json:"mode"`
}

type highlightRequest struct {
	Position domain.NavigationPosition `json:"position"`
}

type positionResponse struct {
	Position *domain.NavigationPosition `json:"position"`
}

type syllablesResponse struct {
	Words []domain.SyllableWord `json:"words"`
}

// GetText handles GET /v1/text.
func (h *ReaderHandler) GetText(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.text.Snapshot())
}

// SetText handles POST /v1/text. The new text replaces whatever the
// engine was tracking; dependent caches re-key off its fingerprint.
func (h *ReaderHandler) SetText(w http.ResponseWriter, r *http.Request) {
	var req setTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if h.maxLen > 0 && utf8.RuneCountInString(req.Text) > h.maxLen {
		writeError(w, http.StatusRequestEntityTooLarge, "text_too_long", "text exceeds the configured length limit")
		return
	}

	snap := h.text.SetText(r.Context(), req.Text)
	h.syllables.SetCurrentText(snap.Text)
	h.nav.SetText(r.Context(), snap.Text, nil)

	writeJSON(w, http.StatusOK, snap)
}

// ToggleNiqqud handles POST /v1/niqqud/toggle.
func (h *ReaderHandler) ToggleNiqqud(w http.ResponseWriter, r *http.Request) {
	h.runTextOp(w, r, h.text.ToggleNiqqud)
}

// AddNiqqud handles POST /v1/niqqud/add.
func (h *ReaderHandler) AddNiqqud(w http.ResponseWriter, r *http.Request) {
	h.runTextOp(w, r, h.text.AddNiqqud)
}

// RemoveNiqqud handles POST /v1/niqqud/remove.
func (h *ReaderHandler) RemoveNiqqud(w http.ResponseWriter, r *http.Request) {
	h.runTextOp(w, r, h.text.RemoveNiqqud)
}

// CompleteNiqqud handles POST /v1/niqqud/complete.
func (h *ReaderHandler) CompleteNiqqud(w http.ResponseWriter, r *http.Request) {
	h.runTextOp(w, r, h.text.CompleteNiqqud)
}

func (h *ReaderHandler) runTextOp(w http.ResponseWriter, r *http.Request, op func(context.Context) (textstate.Snapshot, error)) {
	snap, err := op(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.syllables.SetCurrentText(snap.Text)
	h.nav.SetText(r.Context(), snap.Text, nil)
	writeJSON(w, http.StatusOK, snap)
}

// SetDisplayMode handles POST /v1/display-mode.
func (h *ReaderHandler) SetDisplayMode(w http.ResponseWriter, r *http.Request) {
	var req displayModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	mode := domain.DisplayMode(req.Mode)
	if !mode.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid_request", "unknown display mode")
		return
	}

	snap := h.text.SwitchTo(r.Context(), mode)
	h.syllables.SetCurrentText(snap.Text)
	h.nav.SetText(r.Context(), snap.Text, nil)
	writeJSON(w, http.StatusOK, snap)
}

// GetSyllables handles GET /v1/syllables: the syllable tree for the full
// form, reprojected onto the current display mode. Requires a fully
// vocalized form to divide.
func (h *ReaderHandler) GetSyllables(w http.ResponseWriter, r *http.Request) {
	cache := h.text.Cache()
	snap := h.text.Snapshot()

	full := ""
	switch {
	case cache != nil && cache.HasFull():
		full = cache.Full
	case domain.IsFullyNiqqud(snap.Text):
		full = snap.Text
	default:
		writeError(w, http.StatusConflict, "no_vocalized_text", "vocalize the text before requesting syllables")
		return
	}

	tree, err := h.syllables.Reconciled(r.Context(), full, h.text.Mode(), cache)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// The navigation document follows what is on screen.
	h.nav.SetText(r.Context(), snap.Text, tree)

	writeJSON(w, http.StatusOK, syllablesResponse{Words: tree.Words})
}

// Navigate handles POST /v1/navigation/step.
func (h *ReaderHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	var pos *domain.NavigationPosition
	switch req.Direction {
	case "next":
		pos = h.nav.FocusNext(r.Context())
	case "prev":
		pos = h.nav.FocusPrev(r.Context())
	case "up":
		pos = h.nav.FocusUp(r.Context(), linesLayout(req.Lines))
	case "down":
		pos = h.nav.FocusDown(r.Context(), linesLayout(req.Lines))
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "unknown direction")
		return
	}

	writeJSON(w, http.StatusOK, positionResponse{Position: pos})
}

// SetNavMode handles POST /v1/navigation/mode.
func (h *ReaderHandler) SetNavMode(w http.ResponseWriter, r *http.Request) {
	var req navModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	mode := domain.NavMode(req.Mode)
	if !mode.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid_request", "unknown granularity")
		return
	}

	writeJSON(w, http.StatusOK, positionResponse{Position: h.nav.SetMode(r.Context(), mode)})
}

// Highlight handles POST /v1/navigation/highlight.
func (h *ReaderHandler) Highlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, positionResponse{Position: h.nav.Highlight(r.Context(), req.Position)})
}

// ResetPosition handles POST /v1/navigation/reset.
func (h *ReaderHandler) ResetPosition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, positionResponse{Position: h.nav.ResetPosition(r.Context())})
}

// GetPosition handles GET /v1/navigation/position.
func (h *ReaderHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, positionResponse{Position: h.nav.GetCurrentPosition()})
}

// ClearPosition handles DELETE /v1/navigation/position.
func (h *ReaderHandler) ClearPosition(w http.ResponseWriter, r *http.Request) {
	h.nav.ClearHighlight(r.Context())
	writeJSON(w, http.StatusOK, positionResponse{Position: nil})
}

func (h *ReaderHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	kind := textstate.ErrorKind(err)

	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, kind, err.Error())
	case errors.Is(err, domain.ErrMissingCredential), errors.Is(err, domain.ErrMissingModel):
		writeError(w, http.StatusServiceUnavailable, kind, err.Error())
	case errors.Is(err, domain.ErrStaleResponse), errors.Is(err, domain.ErrCacheInconsistency):
		writeError(w, http.StatusConflict, kind, err.Error())
	case errors.Is(err, domain.ErrProvider),
		errors.Is(err, domain.ErrProviderEmptyResponse),
		errors.Is(err, domain.ErrNoVocalization),
		errors.Is(err, domain.ErrUnparsableSyllables):
		writeError(w, http.StatusBadGateway, kind, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, kind, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// linesLayout adapts the layout a client reports in a navigate request.
type linesLayout [][]int

func (l linesLayout) LineOf(wordIndex int) int {
	for i, line := range l {
		for _, w := range line {
			if w == wordIndex {
				return i
			}
		}
	}
	return -1
}

func (l linesLayout) WordsOnLine(lineID int) []int {
	if lineID < 0 || lineID >= len(l) {
		return nil
	}
	return l[lineID]
}
