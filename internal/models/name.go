package models

import (
	"strings"
	"unicode/utf8"

	"github.com/Rana718/orgseed/internal/schema"
)

// TruncateName fits text into the name columns. Text of at most
// schema.NameMaxLength characters is returned unchanged. Longer text has its
// whitespace collapsed and trailing words dropped until it fits, with no
// marker appended. A single word that is too long on its own is cut. Invalid
// UTF-8 sequences are dropped.
func TruncateName(text string) string {
	return shorten(text, schema.NameMaxLength)
}

func shorten(text string, width int) string {
	text = strings.ToValidUTF8(text, "")
	if utf8.RuneCountInString(text) <= width {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	first := []rune(words[0])
	if len(first) > width {
		return string(first[:width])
	}

	var b strings.Builder
	length := 0
	for i, word := range words {
		n := utf8.RuneCountInString(word)
		if i > 0 {
			n++
		}
		if length+n > width {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
		length += n
	}
	return b.String()
}
