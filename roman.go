// Package roman converts between integers and canonical Roman numerals.
//
// Encode writes a value in [1, Max] with the greedy subtractive notation
// (M, CM, D, CD, C, XC, L, XL, X, IX, V, IV, I). Decode accepts only strings
// Encode itself would produce: lowercase, reordered or non-minimal numerals
// such as "IIII" or "VV" are rejected.
//
//	s, _ := roman.Encode(1984) // "MCMLXXXIV"
//	n, _ := roman.Decode("XIV") // 14
//
// Every failure matches ErrInvalidInput with errors.Is, and one of
// ErrOutOfRange, ErrUnrecognizedSymbol or ErrNonCanonical for the cause.
package roman

import "github.com/aalvaropc/roman/internal/domain"

// Max is the largest value Encode accepts.
const Max = domain.MaxClassic

var (
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrOutOfRange         = domain.ErrOutOfRange
	ErrUnrecognizedSymbol = domain.ErrUnrecognizedSymbol
	ErrNonCanonical       = domain.ErrNonCanonical
)

// Encode returns the canonical Roman numeral for n, which must be in [1, Max].
func Encode(n int) (string, error) {
	return domain.Encode(n)
}

// Decode returns the value of a canonical Roman numeral.
func Decode(s string) (int, error) {
	return domain.Decode(s)
}
