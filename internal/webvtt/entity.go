package webvtt

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var namedEntities = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"lrm":  '‎',
	"rlm":  '‏',
	"nbsp": ' ',
}

// DecodeEntities decodes the small, fixed set of XML/HTML entities WebVTT
// cue text actually uses: the six named entities above, plus decimal
// and hex numeric character references. Anything else starting with '&'
// is passed through unchanged.
func DecodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end == -1 {
			b.WriteString(s[i:])
			break
		}
		end += i
		body := s[i+1 : end]
		if r, ok := decodeEntityBody(body); ok {
			b.WriteRune(r)
			i = end + 1
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func decodeEntityBody(body string) (rune, bool) {
	if body == "" {
		return 0, false
	}
	if body[0] == '#' {
		return decodeNumericEntity(body[1:])
	}
	if r, ok := namedEntities[body]; ok {
		return r, true
	}
	return 0, false
}

func decodeNumericEntity(digits string) (rune, bool) {
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return utf8.RuneError, true
	}
	return r, true
}
