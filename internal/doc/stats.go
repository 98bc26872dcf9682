package doc

import (
	"strings"
	"unicode/utf8"
)

// TextContent is extracted document text with basic counts.
type TextContent struct {
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
	PageCount *int   `json:"page_count"`
}

// Statistics combines the file descriptor with content-derived counts.
type Statistics struct {
	FileInfo     Descriptor   `json:"file_info"`
	ContentStats ContentStats `json:"content_stats"`
}

type ContentStats struct {
	WordCount               int     `json:"word_count"`
	CharacterCount          int     `json:"character_count"`
	LineCount               int     `json:"line_count"`
	ParagraphCount          int     `json:"paragraph_count"`
	SentenceCount           int     `json:"sentence_count"`
	AverageWordsPerSentence float64 `json:"average_words_per_sentence"`
	AverageCharsPerWord     float64 `json:"average_chars_per_word"`
}

// NewTextContent counts words and characters in content. Page counts
// would require layout knowledge this layer does not have, so PageCount
// stays nil.
func NewTextContent(content string) TextContent {
	return TextContent{
		Content:   content,
		WordCount: len(strings.Fields(content)),
		CharCount: utf8.RuneCountInString(content),
	}
}

// Analyze derives content statistics. Paragraphs are blank-line
// separated, sentences split on ./!/?, and both averages use min-1
// denominators so empty content yields zeros rather than NaN.
func Analyze(content string) ContentStats {
	words := len(strings.Fields(content))
	chars := utf8.RuneCountInString(content)
	lines := strings.Split(content, "\n")

	var paragraphs int
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	normalized := strings.NewReplacer("!", ".", "?", ".").Replace(content)
	var sentences int
	for _, s := range strings.Split(normalized, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	return ContentStats{
		WordCount:               words,
		CharacterCount:          chars,
		LineCount:               len(lines),
		ParagraphCount:          paragraphs,
		SentenceCount:           sentences,
		AverageWordsPerSentence: float64(words) / float64(max(sentences, 1)),
		AverageCharsPerWord:     float64(chars) / float64(max(words, 1)),
	}
}

// MatchContext returns up to contextChars of text surrounding the first
// case-insensitive occurrence of query, with ellipses marking truncation.
func MatchContext(content, query string, contextChars int) string {
	pos := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if pos < 0 {
		return ""
	}
	start := max(pos-contextChars/2, 0)
	end := min(pos+len(query)+contextChars/2, len(content))

	ctx := content[start:end]
	if start > 0 {
		ctx = "..." + ctx
	}
	if end < len(content) {
		ctx = ctx + "..."
	}
	return ctx
}
