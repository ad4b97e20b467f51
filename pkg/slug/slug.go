package slug

import (
	"crypto/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// letters that do not decompose into a base letter plus combining marks
var specialLetters = map[rune]string{
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'þ': "th", 'Þ': "TH",
}

type options struct {
	separator  string
	maxLength  int
	suffixLen  int
	lowercase  bool
	replace    map[string]string
	stripChars string
}

// Option configures slug generation.
type Option func(*options)

// Separator sets the word separator (default "-").
func Separator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// MaxLength limits the slug to n runes, suffix included. Zero means unlimited.
func MaxLength(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxLength = n
		}
	}
}

// WithSuffix appends a random lowercase alphanumeric suffix of n characters.
func WithSuffix(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.suffixLen = n
		}
	}
}

// Lowercase controls case folding (default true).
func Lowercase(lower bool) Option {
	return func(o *options) {
		o.lowercase = lower
	}
}

// CustomReplace substitutes substrings before normalization.
// Replacements are applied in key length order, longest first.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) {
		o.replace = replacements
	}
}

// StripChars removes the given characters before normalization.
func StripChars(chars string) Option {
	return func(o *options) {
		o.stripChars = chars
	}
}

// Make converts s into a URL-safe slug.
func Make(s string, opts ...Option) string {
	o := options{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&o)
	}

	s = applyReplacements(s, o.replace)
	if o.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	s = removeDiacritics(s)
	if o.lowercase {
		s = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	slug := b.String()

	if o.suffixLen > 0 {
		suffix := randomSuffix(o.suffixLen)
		if o.maxLength > 0 {
			slug = truncate(slug, o.maxLength-utf8.RuneCountInString(suffix)-utf8.RuneCountInString(o.separator), o.separator)
		}
		if slug == "" {
			return suffix
		}
		return slug + o.separator + suffix
	}

	if o.maxLength > 0 {
		slug = truncate(slug, o.maxLength, o.separator)
	}
	return slug
}

func applyReplacements(s string, replace map[string]string) string {
	if len(replace) == 0 {
		return s
	}
	keys := make([]string, 0, len(replace))
	for k := range replace {
		if k != "" {
			keys = append(keys, k)
		}
	}
	// longest first so "C++" wins over "+"
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && len(keys[j]) > len(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	for _, k := range keys {
		s = strings.ReplaceAll(s, k, " "+replace[k]+" ")
	}
	return s
}

func removeDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := specialLetters[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return out
}

// truncate cuts s to at most n runes without leaving a trailing separator.
func truncate(s string, n int, sep string) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:n]), sep)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = suffixAlphabet[int(buf[i])%len(suffixAlphabet)]
	}
	return string(buf)
}
