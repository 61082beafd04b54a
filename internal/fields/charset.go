package fields

import (
	"fmt"
	"strings"
)

// Charset selects one of the fixed character ranges.
type Charset int

const (
	CharsetAlphabet Charset = iota
	CharsetAlphaNumeric
	CharsetHex
	CharsetSpace
	CharsetUpperCase
	CharsetLowerCase
	CharsetPunctuation
	CharsetCaptcha
)

var charsetNames = map[Charset]string{
	CharsetAlphabet:     "alphabet",
	CharsetAlphaNumeric: "alphanumeric",
	CharsetHex:          "hex",
	CharsetSpace:        "space",
	CharsetUpperCase:    "uppercase",
	CharsetLowerCase:    "lowercase",
	CharsetPunctuation:  "punctuation",
	CharsetCaptcha:      "captcha",
}

// Charsets lists every fixed range in declaration order.
func Charsets() []Charset {
	return []Charset{
		CharsetAlphabet, CharsetAlphaNumeric, CharsetHex, CharsetSpace,
		CharsetUpperCase, CharsetLowerCase, CharsetPunctuation, CharsetCaptcha,
	}
}

func (c Charset) String() string {
	if name, ok := charsetNames[c]; ok {
		return name
	}
	return fmt.Sprintf("charset(%d)", int(c))
}

// ParseCharset is the inverse of Charset.String.
func ParseCharset(s string) (Charset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range charsetNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown charset %q", ErrInvalidConfiguration, s)
}

// Chars returns the character set of c.
//
// The alphabet ranges stop at uppercase F. Generated data has always used
// that set, so it is kept as is.
func (c Charset) Chars() string {
	switch c {
	case CharsetAlphabet:
		return Sequence('a', 'z') + Sequence('A', 'F')
	case CharsetAlphaNumeric:
		return Sequence('0', '9') + Sequence('a', 'z') + Sequence('A', 'F')
	case CharsetHex:
		return Sequence('0', '9') + Sequence('A', 'F')
	case CharsetSpace:
		return " \t\n\r\v\f"
	case CharsetUpperCase:
		return Sequence('A', 'Z')
	case CharsetLowerCase:
		return Sequence('a', 'z')
	case CharsetPunctuation:
		return "`~!@#$%^&*()_+|\\=-{}[];':\",./<>?"
	case CharsetCaptcha:
		return "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"
	default:
		return ""
	}
}

// NewCharsetField returns a RangedField over the fixed range of c.
func NewCharsetField(c Charset, minLength, maxLength int) (*RangedField, error) {
	if _, ok := charsetNames[c]; !ok {
		return nil, fmt.Errorf("%w: unknown charset %d", ErrInvalidConfiguration, int(c))
	}
	return NewRangedField(c.Chars(), minLength, maxLength)
}

func NewAlphabetField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetAlphabet, minLength, maxLength)
}

func NewAlphaNumericField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetAlphaNumeric, minLength, maxLength)
}

func NewHexField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetHex, minLength, maxLength)
}

func NewSpaceField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetSpace, minLength, maxLength)
}

func NewUpperCaseAlphabetField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetUpperCase, minLength, maxLength)
}

func NewLowerCaseAlphabetField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetLowerCase, minLength, maxLength)
}

func NewPunctuationField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetPunctuation, minLength, maxLength)
}

// NewCaptchaField draws from characters that are hard to confuse with one
// another: no 0, 1, I, O, l or o.
func NewCaptchaField(minLength, maxLength int) (*RangedField, error) {
	return NewCharsetField(CharsetCaptcha, minLength, maxLength)
}
