package claude

// Built-in prompt templates. Each carries a {text} placeholder; config can
// override any of them. The fresh and completion variants differ because a
// partially pointed text must keep its existing marks untouched.

const defaultSystemPrompt = `You are an expert in Hebrew vocalization (niqqud) and syllabification. You follow output format instructions exactly and never add explanations.`

const defaultVocalizePrompt = `Add full niqqud (vowel points) to the following Hebrew text.

Rules:
- Return ONLY the vocalized text, nothing else
- Keep every word, space, line break, and punctuation mark exactly as in the input
- Do not add, remove, or reorder words

Text:
{text}`

const defaultCompletePrompt = `The following Hebrew text is partially vocalized. Complete the niqqud so that every word is fully pointed.

Rules:
- Keep the existing niqqud marks exactly as they are
- Add marks only to the unpointed words
- Return ONLY the vocalized text, nothing else
- Keep every word, space, line break, and punctuation mark exactly as in the input

Text:
{text}`

const defaultSyllabifyPrompt = `Divide the following vocalized Hebrew text into syllables.

Rules:
- Output one word per line, in the original word order
- Separate syllables within a word with a hyphen (-)
- Keep all niqqud marks attached to their letters
- Output ONLY the divided words, no explanations, no numbering

Text:
{text}`
