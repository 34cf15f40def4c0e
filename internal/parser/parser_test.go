package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

func TestParseSyllableResponse_Basic(t *testing.T) {
	t.Parallel()

	data, warnings := ParseSyllableResponse("דַּ-נִי\nקָם")
	require.NotNil(t, data)
	require.Len(t, data.Words, 2)

	assert.Equal(t, []string{"דַּ", "נִי"}, data.Words[0].Syllables)
	assert.Equal(t, "דני", data.Words[0].Word)
	assert.Equal(t, []string{"קָם"}, data.Words[1].Syllables)
	assert.Equal(t, "קם", data.Words[1].Word)
	assert.Empty(t, warnings)
}

func TestParseSyllableResponse_Empty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "\n\n", "```\n```"} {
		data, _ := ParseSyllableResponse(raw)
		assert.Nil(t, data, "raw=%q", raw)
	}
}

func TestParseSyllableResponse_CodeFence(t *testing.T) {
	t.Parallel()

	data, _ := ParseSyllableResponse("```\nדַּ-נִי\nקָם\n```")
	require.NotNil(t, data)
	assert.Len(t, data.Words, 2)

	// Language tag on the fence line is dropped with it.
	data, _ = ParseSyllableResponse("```text\nשָׁ-לוֹם\n```")
	require.NotNil(t, data)
	require.Len(t, data.Words, 1)
	assert.Equal(t, []string{"שָׁ", "לוֹם"}, data.Words[0].Syllables)
}

func TestParseSyllableResponse_CommentaryDropped(t *testing.T) {
	t.Parallel()

	raw := "Here is the syllable division:\n# comment\n// another\nדַּ-נִי\nלהלן החלוקה:\nקָם"
	data, _ := ParseSyllableResponse(raw)
	require.NotNil(t, data)
	require.Len(t, data.Words, 2)
	assert.Equal(t, "דני", data.Words[0].Word)
	assert.Equal(t, "קם", data.Words[1].Word)
}

func TestParseSyllableResponse_AsteriskDelimiter(t *testing.T) {
	t.Parallel()

	data, _ := ParseSyllableResponse("דַּ*נִי")
	require.NotNil(t, data)
	require.Len(t, data.Words, 1)
	assert.Equal(t, []string{"דַּ", "נִי"}, data.Words[0].Syllables)
}

func TestParseSyllableResponse_HyphenPrecedesAsterisk(t *testing.T) {
	t.Parallel()

	// When both appear, hyphen wins and asterisk stays inside the syllable.
	data, _ := ParseSyllableResponse("דַּ-נִ*י")
	require.NotNil(t, data)
	require.Len(t, data.Words, 1)
	assert.Equal(t, []string{"דַּ", "נִ*י"}, data.Words[0].Syllables)
}

func TestParseSyllableResponse_MultipleWordsPerLine(t *testing.T) {
	t.Parallel()

	data, _ := ParseSyllableResponse("דַּ-נִי קָם שָׁ-לוֹם")
	require.NotNil(t, data)
	require.Len(t, data.Words, 3)
	assert.Equal(t, "קם", data.Words[1].Word)
}

func TestParseSyllableResponse_TrailingHyphen(t *testing.T) {
	t.Parallel()

	data, _ := ParseSyllableResponse("דַּ-נִי-")
	require.NotNil(t, data)
	require.Len(t, data.Words, 1)
	assert.Equal(t, []string{"דַּ", "נִי"}, data.Words[0].Syllables)
}

func TestParseSyllableResponse_SingleSyllableWarning(t *testing.T) {
	t.Parallel()

	data, warnings := ParseSyllableResponse("שָׁלוֹם\nעוֹלָם\nטוֹב")
	require.NotNil(t, data)
	require.Len(t, data.Words, 3)
	assert.Contains(t, warnings, WarnSingleSyllables)

	// A single one-syllable word is fine: nothing to divide.
	data, warnings = ParseSyllableResponse("קָם")
	require.NotNil(t, data)
	assert.Empty(t, warnings)

	// Any multi-syllable word silences the warning.
	data, warnings = ParseSyllableResponse("שָׁ-לוֹם\nקָם")
	require.NotNil(t, data)
	assert.Empty(t, warnings)
}

func TestParseSyllableResponse_CanonicalWordStripped(t *testing.T) {
	t.Parallel()

	data, _ := ParseSyllableResponse("שָׁ-לוֹם")
	require.NotNil(t, data)
	require.Len(t, data.Words, 1)
	assert.Equal(t, domain.NiqqudNone, domain.DetectNiqqud(data.Words[0].Word))
}
