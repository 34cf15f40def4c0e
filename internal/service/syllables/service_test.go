package syllables

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myhebrew-backend/internal/adapter/kvstore"
	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

type mockSyllabifier struct {
	SyllabifyFunc func(ctx context.Context, text string) (string, error)
	calls         int
}

func (m *mockSyllabifier) Syllabify(ctx context.Context, text string) (string, error) {
	m.calls++
	if m.SyllabifyFunc != nil {
		return m.SyllabifyFunc(ctx, text)
	}
	return "", domain.ErrProviderEmptyResponse
}

func newTestService(provider *mockSyllabifier) *Service {
	return NewService(slog.New(slog.DiscardHandler), provider, kvstore.NewMemory())
}

func TestService_GetParsesAndCaches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := &mockSyllabifier{
		SyllabifyFunc: func(_ context.Context, text string) (string, error) {
			assert.Equal(t, "דַּנִי קָם", text)
			return "דַּ-נִי\nקָם", nil
		},
	}
	svc := newTestService(provider)

	data, err := svc.Get(ctx, "דַּנִי קָם")
	require.NoError(t, err)
	require.Len(t, data.Words, 2)
	assert.Equal(t, "דני", data.Words[0].Word)

	// Second call is served from the cache.
	data, err = svc.Get(ctx, "דַּנִי קָם")
	require.NoError(t, err)
	require.Len(t, data.Words, 2)
	assert.Equal(t, 1, provider.calls, "cache hit must prevent a duplicate provider call")
}

func TestService_GetUnparsable(t *testing.T) {
	t.Parallel()

	provider := &mockSyllabifier{
		SyllabifyFunc: func(context.Context, string) (string, error) {
			return "I cannot divide this text, here is why...", nil
		},
	}
	svc := newTestService(provider)

	_, err := svc.Get(context.Background(), "דַּנִי קָם")
	require.ErrorIs(t, err, domain.ErrUnparsableSyllables)
}

func TestService_GetEmptyText(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockSyllabifier{})
	_, err := svc.Get(context.Background(), "  \n ")
	require.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestService_GetDiscardsStaleReply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var svc *Service
	provider := &mockSyllabifier{
		SyllabifyFunc: func(context.Context, string) (string, error) {
			// The reader moved on to another text mid-flight.
			svc.SetCurrentText("טקסט אחר")
			return "דַּ-נִי\nקָם", nil
		},
	}
	svc = newTestService(provider)
	svc.SetCurrentText("דַּנִי קָם")

	_, err := svc.Get(ctx, "דַּנִי קָם")
	require.ErrorIs(t, err, domain.ErrStaleResponse)

	// The parsed tree was still cached under its own fingerprint, so
	// returning to the text needs no new provider call.
	svc.SetCurrentText("דַּנִי קָם")
	data, err := svc.Get(ctx, "דַּנִי קָם")
	require.NoError(t, err)
	assert.Len(t, data.Words, 2)
	assert.Equal(t, 1, provider.calls)
}

func TestService_GetAcceptsReplyForDisplayedForm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := &mockSyllabifier{
		SyllabifyFunc: func(context.Context, string) (string, error) {
			return "דַּ-נִי\nקָם", nil
		},
	}
	svc := newTestService(provider)

	// The screen shows the clean form while the tree is requested for the
	// vocalized form of the same text. That is one text, not a switch.
	svc.SetCurrentText("דני קם")
	data, err := svc.Get(ctx, "דַּנִי קָם")
	require.NoError(t, err)
	require.Len(t, data.Words, 2)

	svc.SetCurrentText("דַּנִי קָם")
	data, err = svc.Get(ctx, "דַּנִי קָם")
	require.NoError(t, err)
	require.Len(t, data.Words, 2)
	assert.Equal(t, 1, provider.calls)
}

func TestService_Reconciled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := &mockSyllabifier{
		SyllabifyFunc: func(context.Context, string) (string, error) {
			return "דַּ-נִי\nקָם", nil
		},
	}
	svc := newTestService(provider)

	cache := reconcileCache()
	data, err := svc.Reconciled(ctx, cache.Full, domain.DisplayOriginal, cache)
	require.NoError(t, err)
	require.Len(t, data.Words, 2)
	assert.Equal(t, []string{"קם"}, data.Words[1].Syllables)

	// Misaligned cache surfaces as a typed error.
	bad := &domain.TextCache{Original: "אחד שתיים שלוש", Clean: "אחד שתיים שלוש", Full: cache.Full}
	_, err = svc.Reconciled(ctx, cache.Full, domain.DisplayOriginal, bad)
	require.ErrorIs(t, err, domain.ErrCacheInconsistency)
}
