package feedback

import "strings"

var sentenceEnders = []rune{'.', '!', '?'}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SentenceCount counts sentence-ending punctuation runs in text.
// A non-empty text with no terminator still counts as one sentence.
func SentenceCount(text string) int {
	count := 0
	inSentence := false
	for _, r := range text {
		if isSentenceEnder(r) {
			if inSentence {
				count++
				inSentence = false
			}
			continue
		}
		if !isSpaceOnly(r) {
			inSentence = true
		}
	}
	if inSentence {
		count++
	}
	if count == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return count
}

func isSentenceEnder(r rune) bool {
	for _, e := range sentenceEnders {
		if r == e {
			return true
		}
	}
	return false
}

func isSpaceOnly(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
