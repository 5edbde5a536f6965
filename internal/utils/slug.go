package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Slugify lowercases s and joins its words with '-'. Han characters are
// transliterated to pinyin, one word per character; everything that is not a
// letter or digit separates words and is dropped.
func Slugify(s string) string {
	words := make([]string, 0)
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			words = append(words, pinyin.LazyConvert(string(r), nil)...)
		case r == '\'' || r == '’':
			// "Women's" -> "womens"
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			current.WriteRune(unicode.ToLower(r))
		default:
			flush()
		}
	}
	flush()

	return strings.Join(words, "-")
}
